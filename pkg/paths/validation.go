// Package paths validates and normalizes path strings before they reach
// the filesystem or a subprocess argv.
package paths

import (
	"strings"

	"github.com/arthur-debert/p8prep/pkg/errors"
)

// unsafeChars are shell-active characters rejected in any path that is
// handed to a subprocess.
const unsafeChars = ";|&$`\n\r><(){}"

// ValidateSafePath rejects path strings containing shell metacharacters.
// paramName identifies the offending parameter in the error message.
func ValidateSafePath(path, paramName string) error {
	if path == "" {
		return errors.Newf(errors.ErrUnsafePath, "%s cannot be empty", paramName)
	}
	if strings.Contains(path, "\x00") {
		return errors.Newf(errors.ErrUnsafePath, "%s contains null bytes", paramName)
	}
	if idx := strings.IndexAny(path, unsafeChars); idx >= 0 {
		return errors.Newf(errors.ErrUnsafePath,
			"%s contains shell metacharacter %q which is not allowed", paramName, path[idx]).
			WithDetail("path", path)
	}
	return nil
}

// NormalizePattern prepares a mapping pattern for resolution against a
// tree root. Exactly one leading separator is stripped (absolute-style
// notation is relative to the root, it never escapes it). Patterns with
// multiple leading separators or ".." segments are invalid input.
func NormalizePattern(pattern string) (string, error) {
	if pattern == "" {
		return "", errors.New(errors.ErrInvalidPattern, "pattern cannot be empty")
	}

	stripped := strings.TrimPrefix(pattern, "/")
	if strings.HasPrefix(stripped, "/") {
		return "", errors.Newf(errors.ErrInvalidPattern,
			"pattern %q has multiple leading separators", pattern)
	}

	for _, seg := range strings.Split(stripped, "/") {
		if seg == ".." {
			return "", errors.Newf(errors.ErrInvalidPattern,
				"pattern %q contains a '..' segment", pattern)
		}
	}

	return stripped, nil
}
