// Package rearrange reorganizes an extracted volume tree according to a
// declarative list of glob mappings. Expansion turns patterns into
// concrete moves; execution validates the whole batch before the first
// rename, so a conflict anywhere means zero mutations.
package rearrange

import (
	goerrors "errors"
	"os"
	"path/filepath"
	"syscall"

	"github.com/arthur-debert/p8prep/pkg/errors"
	"github.com/arthur-debert/p8prep/pkg/logging"
)

// Mapping is one user-authored rearrangement rule. From is a glob
// pattern resolved against the tree root; To is either an explicit
// destination name or, with a trailing separator, a destination
// directory.
type Mapping struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Move is a concrete source/destination pair produced by expansion.
type Move struct {
	Source      string
	Destination string
}

// Rearrange performs the moves as a single logical batch: every move is
// validated (source present, destination absent) before any filesystem
// mutation. Once execution starts there is no rollback; the validate/
// execute window is not guarded against concurrent tree mutation, which
// is out of contract.
func Rearrange(root string, moves []Move) error {
	logger := logging.GetLogger("rearrange")

	// Phase 1: validate the entire list, zero mutations.
	for _, mv := range moves {
		if _, err := os.Lstat(mv.Source); err != nil {
			if os.IsNotExist(err) {
				return errors.Newf(errors.ErrMoveSourceMissing,
					"source file does not exist: %s", mv.Source).
					WithDetail("source", mv.Source)
			}
			return errors.Wrapf(err, errors.ErrMoveSourceMissing, "checking source %s", mv.Source)
		}
	}
	for _, mv := range moves {
		if _, err := os.Lstat(mv.Destination); err == nil {
			return errors.Newf(errors.ErrMoveConflict,
				"destination already exists: %s", mv.Destination).
				WithDetail("destination", mv.Destination)
		} else if !os.IsNotExist(err) {
			return errors.Wrapf(err, errors.ErrMoveConflict, "checking destination %s", mv.Destination)
		}
	}

	// Phase 2: execute in validated order.
	for _, mv := range moves {
		if err := os.MkdirAll(filepath.Dir(mv.Destination), 0755); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate,
				"creating parent directory for %s", mv.Destination).
				WithDetail("destination", mv.Destination)
		}
		if err := moveFile(mv.Source, mv.Destination); err != nil {
			return errors.Wrapf(err, errors.ErrFileMove,
				"moving %s to %s", mv.Source, mv.Destination).
				WithDetail("source", mv.Source).
				WithDetail("destination", mv.Destination)
		}
		logger.Debug().
			Str("source", mv.Source).
			Str("destination", mv.Destination).
			Msg("moved file")
	}

	logger.Info().Str("root", root).Int("moves", len(moves)).Msg("rearrangement complete")
	return nil
}

// moveFile renames source to dest, falling back to copy+remove when the
// two sit on different devices (a bind mount inside the tree).
func moveFile(source, dest string) error {
	err := os.Rename(source, dest)
	if err == nil || !goerrors.Is(err, syscall.EXDEV) {
		return err
	}

	info, err := os.Stat(source)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return err
	}
	if err := os.WriteFile(dest, data, info.Mode().Perm()); err != nil {
		return err
	}
	return os.Remove(source)
}
