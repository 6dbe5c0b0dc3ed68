// Package convert performs all-or-nothing in-place conversion of host
// text files to ProDOS TEXT format. The visible file is only ever
// mutated by a single same-directory rename, so a failure at any step
// leaves content, permissions, and metadata exactly as they were.
package convert

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/p8prep/pkg/errors"
	"github.com/arthur-debert/p8prep/pkg/logging"
	"github.com/arthur-debert/p8prep/pkg/prodosmeta"
	"github.com/arthur-debert/p8prep/pkg/textconv"
)

// stagingPattern names the temporary file created next to the target.
const stagingPattern = ".p8prep-staging-*"

// FileInPlace converts the file at path in place: line endings are
// normalized to CR, content is forced to 7-bit ASCII per mode, the full
// ProDOS tag set (text type, zero aux, seedling storage, access) is
// attached, and the original permission bits are preserved.
//
// The transformed bytes are written to a staging file in the same
// directory and promoted with an atomic rename as the final step. On any
// failure the staging file is removed best-effort and the original file
// is untouched; a cleanup failure never masks the primary error.
func FileInPlace(path string, mode textconv.Mode, access string, tg prodosmeta.Tagger) error {
	logger := logging.GetLogger("convert")

	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileRead, "stat %s", path).WithDetail("path", path)
	}
	perm := info.Mode().Perm()

	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileRead, "reading %s", path).WithDetail("path", path)
	}

	// Transform before anything is written; a strict-mode encoding
	// failure aborts with zero filesystem effect.
	transformed, err := textconv.ConvertToASCII(textconv.NormalizeLineEndings(data), mode)
	if err != nil {
		return err
	}

	// Staging file must live in the same directory so the final
	// rename is a same-device atomic replace.
	staging, err := os.CreateTemp(filepath.Dir(path), stagingPattern)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "creating staging file for %s", path).
			WithDetail("path", path)
	}
	stagingName := staging.Name()

	committed := false
	defer func() {
		if !committed {
			if rmErr := os.Remove(stagingName); rmErr != nil && !os.IsNotExist(rmErr) {
				logger.Warn().Err(rmErr).Str("staging", stagingName).
					Msg("failed to clean up staging file")
			}
		}
	}()

	if _, err := staging.Write(transformed); err != nil {
		_ = staging.Close()
		return errors.Wrapf(err, errors.ErrFileWrite, "writing staging file for %s", path).
			WithDetail("path", path).
			WithDetail("staging", stagingName)
	}
	if err := staging.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "closing staging file for %s", path).
			WithDetail("path", path).
			WithDetail("staging", stagingName)
	}
	if err := os.Chmod(stagingName, perm); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "applying permissions to staging file for %s", path).
			WithDetail("path", path).
			WithDetail("staging", stagingName)
	}

	// Tags go on the staging file; the original is still untouched if
	// any attribute fails to attach.
	if err := prodosmeta.Apply(tg, stagingName, prodosmeta.TextDefaults(access)); err != nil {
		return err
	}

	if err := os.Rename(stagingName, path); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "replacing %s", path).
			WithDetail("path", path).
			WithDetail("staging", stagingName)
	}
	committed = true

	// Carry tags across the rename for stores that key by path.
	if err := tg.Rename(stagingName, path); err != nil {
		return err
	}

	logger.Debug().
		Str("path", path).
		Str("mode", mode.String()).
		Int("bytes", len(transformed)).
		Msg("converted file in place")

	return nil
}
