//go:build !linux && !darwin

package prodosmeta

import "github.com/arthur-debert/p8prep/pkg/errors"

// XattrTagger is unavailable on platforms without user extended
// attributes; Detect falls back to the sidecar store there.
type XattrTagger struct{}

// NewXattrTagger returns a stub store that reports no xattr support.
func NewXattrTagger() *XattrTagger {
	return &XattrTagger{}
}

func (x *XattrTagger) Set(path, key, value string) error {
	return errors.Newf(errors.ErrXattrSet, "extended attributes not supported on this platform")
}

func (x *XattrTagger) Get(path, key string) (string, bool, error) {
	return "", false, nil
}

func (x *XattrTagger) Rename(oldPath, newPath string) error {
	return nil
}

func (x *XattrTagger) Supported(path string) bool {
	return false
}
