// Package system locates the bootable ProDOS system file inside an
// extracted volume.
package system

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/p8prep/pkg/errors"
	"github.com/arthur-debert/p8prep/pkg/logging"
	"github.com/arthur-debert/p8prep/pkg/prodosmeta"
)

// ValidateImagePath checks the disk image extension. Only .2mg images
// are supported.
func ValidateImagePath(path string) error {
	if strings.HasSuffix(strings.ToLower(path), ".2mg") {
		return nil
	}
	return errors.Newf(errors.ErrInvalidInput,
		"unsupported disk image extension, currently only .2mg format is supported: %s", path).
		WithDetail("path", path)
}

// ValidateSystemFile reports whether path is a usable system file: it
// exists and is non-empty. ProDOS system files (type $FF) need not start
// with a JMP; ProDOS jumps to $2000 unconditionally after loading.
func ValidateSystemFile(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileRead, "stat %s", path).
			WithDetail("path", path)
	}
	return info.Size() > 0, nil
}

// Discover finds the single bootable system file under volumeDir.
// Files named *.SYSTEM or *.SYS (case-insensitive) are preferred; if
// none qualify, files whose file_type tag is "ff" are considered.
// Exactly one candidate must remain, otherwise discovery fails listing
// what was found.
func Discover(volumeDir string, tg prodosmeta.Tagger) (string, error) {
	logger := logging.GetLogger("system")

	candidates, err := discoverByExtension(volumeDir)
	if err != nil {
		return "", err
	}

	if len(candidates) == 0 {
		candidates, err = discoverByFileType(volumeDir, tg)
		if err != nil {
			return "", err
		}
	}

	if len(candidates) == 0 {
		return "", errors.Newf(errors.ErrSystemNotFound,
			"no system file found in %s; expected .SYSTEM/.SYS file or file with type $FF",
			volumeDir).WithDetail("volumeDir", volumeDir)
	}
	if len(candidates) > 1 {
		return "", errors.Newf(errors.ErrSystemAmbiguous,
			"ambiguous system file discovery, multiple candidates found: %s",
			strings.Join(candidates, ", ")).
			WithDetail("candidates", candidates)
	}

	logger.Info().Str("systemFile", candidates[0]).Msg("system file discovered")
	return candidates[0], nil
}

func discoverByExtension(volumeDir string) ([]string, error) {
	var candidates []string
	err := filepath.WalkDir(volumeDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileRead, "walking %s", path)
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		name := strings.ToLower(d.Name())
		if !strings.HasSuffix(name, ".system") && !strings.HasSuffix(name, ".sys") {
			return nil
		}

		ok, err := ValidateSystemFile(path)
		if err != nil {
			// File vanished or unreadable mid-walk; not a candidate.
			return nil
		}
		if ok {
			candidates = append(candidates, path)
		}
		return nil
	})
	return candidates, err
}

func discoverByFileType(volumeDir string, tg prodosmeta.Tagger) ([]string, error) {
	var candidates []string
	err := filepath.WalkDir(volumeDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileRead, "walking %s", path)
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		fileType, ok, err := tg.Get(path, prodosmeta.KeyFileType)
		if err != nil || !ok {
			return nil
		}
		if strings.ToLower(strings.TrimSpace(fileType)) != "ff" {
			return nil
		}

		valid, err := ValidateSystemFile(path)
		if err != nil {
			return nil
		}
		if valid {
			candidates = append(candidates, path)
		}
		return nil
	})
	return candidates, err
}
