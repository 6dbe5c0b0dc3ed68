package cadius

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/p8prep/pkg/errors"
	"github.com/arthur-debert/p8prep/pkg/logging"
	"github.com/arthur-debert/p8prep/pkg/prodosmeta"
)

// ConvertToXattrs walks dir and, for every regular file named with a
// cadius #TTAAAA suffix, records file_type and aux_type in the metadata
// store and strips the suffix from the name. keepNames leaves the
// filenames untouched. Symlinks are skipped.
func ConvertToXattrs(dir string, tg prodosmeta.Tagger, keepNames bool) error {
	logger := logging.GetLogger("cadius")

	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileRead, "walking %s", path)
		}
		if d.IsDir() || d.Type()&fs.ModeSymlink != 0 {
			return nil
		}

		parsed, ok := ParseSuffix(d.Name())
		if !ok {
			return nil
		}

		if err := tg.Set(path, prodosmeta.KeyFileType, prodosmeta.FormatByte(parsed.FileType)); err != nil {
			return err
		}
		if err := tg.Set(path, prodosmeta.KeyAuxType, prodosmeta.FormatWord(parsed.AuxType)); err != nil {
			return err
		}

		if keepNames {
			return nil
		}

		dest := filepath.Join(filepath.Dir(path), parsed.Stem)
		if _, err := os.Lstat(dest); err == nil {
			return errors.Newf(errors.ErrMoveConflict, "rename target exists: %s", dest).
				WithDetail("source", path).
				WithDetail("destination", dest)
		}
		if err := os.Rename(path, dest); err != nil {
			return errors.Wrapf(err, errors.ErrFileMove, "renaming %s to %s", path, dest)
		}
		if err := tg.Rename(path, dest); err != nil {
			return err
		}

		logger.Debug().
			Str("path", dest).
			Str("fileType", prodosmeta.FormatByte(parsed.FileType)).
			Str("auxType", prodosmeta.FormatWord(parsed.AuxType)).
			Msg("converted cadius suffix to tags")
		return nil
	})
}

// ConvertToSuffixes is the inverse pass: every regular file carrying
// file_type and aux_type tags is renamed with the matching #TTAAAA
// suffix appended. Files already suffixed are rewritten only when
// overwrite is set; files without tags are skipped.
func ConvertToSuffixes(dir string, tg prodosmeta.Tagger, uppercase, overwrite bool) error {
	logger := logging.GetLogger("cadius")

	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileRead, "walking %s", path)
		}
		if d.IsDir() || d.Type()&fs.ModeSymlink != 0 {
			return nil
		}

		ftStr, ok, err := tg.Get(path, prodosmeta.KeyFileType)
		if err != nil || !ok {
			return err
		}
		auxStr, ok, err := tg.Get(path, prodosmeta.KeyAuxType)
		if err != nil || !ok {
			return err
		}

		ft, err := prodosmeta.ParseByte(ftStr)
		if err != nil {
			return err
		}
		aux, err := prodosmeta.ParseWord(auxStr)
		if err != nil {
			return err
		}

		baseName := d.Name()
		if existing, hasSuffix := ParseSuffix(baseName); hasSuffix {
			if !overwrite {
				return nil
			}
			baseName = existing.Stem
		}

		dest := filepath.Join(filepath.Dir(path), baseName+FormatSuffix(ft, aux, uppercase))
		if dest == path {
			return nil
		}
		if _, err := os.Lstat(dest); err == nil {
			return errors.Newf(errors.ErrMoveConflict, "rename target exists: %s", dest).
				WithDetail("source", path).
				WithDetail("destination", dest)
		}
		if err := os.Rename(path, dest); err != nil {
			return errors.Wrapf(err, errors.ErrFileMove, "renaming %s to %s", path, dest)
		}
		if err := tg.Rename(path, dest); err != nil {
			return err
		}

		logger.Debug().Str("path", dest).Msg("applied cadius suffix from tags")
		return nil
	})
}
