package setup

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/p8prep/pkg/convert"
	"github.com/arthur-debert/p8prep/pkg/errors"
	"github.com/arthur-debert/p8prep/pkg/logging"
	"github.com/arthur-debert/p8prep/pkg/prodosmeta"
	"github.com/arthur-debert/p8prep/pkg/textconv"
)

// TextMapping names a host file to import and its destination inside
// the volume.
type TextMapping struct {
	Source string
	Dest   string
}

// ParseTextMapping parses a SRC[:DEST] argument. Without a destination
// the source basename is used.
func ParseTextMapping(spec string) (TextMapping, error) {
	if spec == "" || spec == ":" {
		return TextMapping{}, errors.New(errors.ErrInvalidInput, "invalid text mapping: empty source")
	}
	if strings.HasPrefix(spec, ":") {
		return TextMapping{}, errors.New(errors.ErrInvalidInput, "invalid text mapping: missing source")
	}

	if idx := strings.Index(spec, ":"); idx >= 0 {
		src, dest := spec[:idx], spec[idx+1:]
		if src == "" {
			return TextMapping{}, errors.New(errors.ErrInvalidInput, "invalid text mapping: empty source")
		}
		if dest == "" {
			return TextMapping{}, errors.New(errors.ErrInvalidInput, "invalid text mapping: empty destination")
		}
		return TextMapping{Source: src, Dest: dest}, nil
	}

	return TextMapping{Source: spec, Dest: filepath.Base(spec)}, nil
}

// ImportTextFiles copies each host file into the volume and converts it
// in place to ProDOS TEXT format. Each file is fully imported and
// converted before the next begins.
func ImportTextFiles(mappings []TextMapping, volumeDir string, mode textconv.Mode, access string, tg prodosmeta.Tagger) error {
	logger := logging.GetLogger("setup")

	for _, m := range mappings {
		destPath := filepath.Join(volumeDir, m.Dest)

		if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate,
				"creating parent directory for %s", destPath)
		}
		if err := copyFile(m.Source, destPath); err != nil {
			return err
		}
		if err := convert.FileInPlace(destPath, mode, access, tg); err != nil {
			return err
		}

		logger.Info().
			Str("source", m.Source).
			Str("destination", destPath).
			Msg("imported and converted text file")
	}
	return nil
}

// copyFile copies content and permission bits.
func copyFile(src, dest string) error {
	info, err := os.Stat(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileRead, "stat %s", src).WithDetail("path", src)
	}

	in, err := os.Open(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileRead, "opening %s", src).WithDetail("path", src)
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "creating %s", dest).WithDetail("path", dest)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return errors.Wrapf(err, errors.ErrFileWrite, "copying %s to %s", src, dest)
	}
	if err := out.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "closing %s", dest)
	}
	return nil
}
