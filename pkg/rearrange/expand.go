package rearrange

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/arthur-debert/p8prep/pkg/errors"
	"github.com/arthur-debert/p8prep/pkg/logging"
	"github.com/arthur-debert/p8prep/pkg/paths"
)

// Expand resolves mappings against the tree root into concrete moves,
// in input order. A mapping with no matches contributes nothing. A
// trailing separator on To names a destination directory; every match's
// own basename is appended. Otherwise To names a single explicit file
// and more than one match is an ambiguity error. Matches within one
// mapping follow directory enumeration order, which is not contractual.
func Expand(root string, mappings []Mapping) ([]Move, error) {
	logger := logging.GetLogger("rearrange")

	var moves []Move
	for _, m := range mappings {
		fromPattern, err := paths.NormalizePattern(m.From)
		if err != nil {
			return nil, err
		}

		matches, err := globTree(root, fromPattern)
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			logger.Debug().Str("pattern", m.From).Msg("pattern matched nothing, skipping")
			continue
		}

		toDirectory := strings.HasSuffix(m.To, "/")

		if !toDirectory && len(matches) > 1 {
			return nil, errors.Newf(errors.ErrMappingAmbiguous,
				"glob pattern %q matches %d files but destination %q is not a directory "+
					"(does not end with /); cannot map multiple files to a single filename",
				fromPattern, len(matches), m.To).
				WithDetail("pattern", fromPattern).
				WithDetail("matches", len(matches)).
				WithDetail("destination", m.To)
		}

		if toDirectory {
			base := strings.TrimSuffix(m.To, "/")
			if base != "" {
				if base, err = paths.NormalizePattern(base); err != nil {
					return nil, err
				}
			}
			for _, src := range matches {
				moves = append(moves, Move{
					Source:      src,
					Destination: filepath.Join(root, base, filepath.Base(src)),
				})
			}
		} else {
			to, err := paths.NormalizePattern(m.To)
			if err != nil {
				return nil, err
			}
			moves = append(moves, Move{
				Source:      matches[0],
				Destination: filepath.Join(root, to),
			})
		}
	}

	return moves, nil
}

// globTree matches a pattern against the tree by walking it one path
// segment at a time over explicit directory listings. '*' matches within
// a single segment only; it never crosses a separator.
func globTree(root, pattern string) ([]string, error) {
	segments := strings.Split(pattern, "/")

	current := []string{root}
	for i, segment := range segments {
		if segment == "" {
			return nil, errors.Newf(errors.ErrInvalidPattern,
				"pattern %q contains an empty segment", pattern)
		}

		g, err := glob.Compile(segment)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidPattern,
				"invalid glob segment %q in pattern %q", segment, pattern)
		}

		last := i == len(segments)-1
		var next []string
		for _, dir := range current {
			entries, err := os.ReadDir(dir)
			if err != nil {
				// A vanished intermediate directory means no matches
				// down this branch, same as an empty listing.
				if os.IsNotExist(err) {
					continue
				}
				return nil, errors.Wrapf(err, errors.ErrFileRead, "listing %s", dir)
			}
			for _, entry := range entries {
				if !g.Match(entry.Name()) {
					continue
				}
				full := filepath.Join(dir, entry.Name())
				if last {
					next = append(next, full)
				} else if entry.IsDir() {
					next = append(next, full)
				}
			}
		}

		current = next
		if len(current) == 0 {
			return nil, nil
		}
	}

	return current, nil
}
