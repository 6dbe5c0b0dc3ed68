package prodosmeta

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/arthur-debert/p8prep/pkg/errors"
)

// SidecarName is the per-directory metadata file used when the
// filesystem cannot hold extended attributes.
const SidecarName = ".prodos8.tags.json"

// SidecarTagger stores tags in a JSON sidecar file per directory,
// keyed by file basename. It mirrors the xattr store's observable
// behavior: setting a tag on a missing file is an error, and a
// rename carries the tags along.
type SidecarTagger struct{}

// NewSidecarTagger returns the sidecar-file store.
func NewSidecarTagger() *SidecarTagger {
	return &SidecarTagger{}
}

type sidecarIndex map[string]map[string]string

func sidecarPath(path string) string {
	return filepath.Join(filepath.Dir(path), SidecarName)
}

func loadSidecar(path string) (sidecarIndex, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return sidecarIndex{}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrXattrGet, "reading sidecar %s", path)
	}
	idx := sidecarIndex{}
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, errors.Wrapf(err, errors.ErrXattrGet, "parsing sidecar %s", path)
	}
	return idx, nil
}

func saveSidecar(path string, idx sidecarIndex) error {
	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return errors.Wrapf(err, errors.ErrXattrSet, "encoding sidecar %s", path)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".sidecar-*")
	if err != nil {
		return errors.Wrapf(err, errors.ErrXattrSet, "staging sidecar %s", path)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return errors.Wrapf(err, errors.ErrXattrSet, "writing sidecar %s", path)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrapf(err, errors.ErrXattrSet, "closing sidecar %s", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrapf(err, errors.ErrXattrSet, "replacing sidecar %s", path)
	}
	return nil
}

// Set records one attribute for path's basename in the directory sidecar.
func (s *SidecarTagger) Set(path, key, value string) error {
	if _, err := os.Lstat(path); err != nil {
		return errors.Wrapf(err, errors.ErrXattrSet, "setting %s on %s", key, path).
			WithDetail("path", path).
			WithDetail("key", key)
	}

	sc := sidecarPath(path)
	idx, err := loadSidecar(sc)
	if err != nil {
		return err
	}

	name := filepath.Base(path)
	if idx[name] == nil {
		idx[name] = map[string]string{}
	}
	idx[name][key] = value

	return saveSidecar(sc, idx)
}

// Get reads one attribute from the directory sidecar.
func (s *SidecarTagger) Get(path, key string) (string, bool, error) {
	idx, err := loadSidecar(sidecarPath(path))
	if err != nil {
		return "", false, err
	}
	entry, ok := idx[filepath.Base(path)]
	if !ok {
		return "", false, nil
	}
	value, ok := entry[key]
	return value, ok, nil
}

// Rename moves the sidecar entry for oldPath to newPath, across
// directories if needed. A missing entry is not an error.
func (s *SidecarTagger) Rename(oldPath, newPath string) error {
	oldSc := sidecarPath(oldPath)
	idx, err := loadSidecar(oldSc)
	if err != nil {
		return err
	}

	oldName := filepath.Base(oldPath)
	entry, ok := idx[oldName]
	if !ok {
		return nil
	}
	delete(idx, oldName)

	newSc := sidecarPath(newPath)
	if newSc == oldSc {
		idx[filepath.Base(newPath)] = entry
		return saveSidecar(oldSc, idx)
	}

	destIdx, err := loadSidecar(newSc)
	if err != nil {
		return err
	}
	destIdx[filepath.Base(newPath)] = entry

	if err := saveSidecar(newSc, destIdx); err != nil {
		return err
	}
	return saveSidecar(oldSc, idx)
}
