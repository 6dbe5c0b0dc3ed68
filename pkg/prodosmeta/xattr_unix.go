//go:build linux || darwin

package prodosmeta

import (
	"github.com/arthur-debert/p8prep/pkg/errors"
	"golang.org/x/sys/unix"
)

// XattrTagger stores tags as native extended attributes.
type XattrTagger struct{}

// NewXattrTagger returns the native extended-attribute store.
func NewXattrTagger() *XattrTagger {
	return &XattrTagger{}
}

// Set attaches one attribute via setxattr.
func (x *XattrTagger) Set(path, key, value string) error {
	if err := unix.Setxattr(path, key, []byte(value), 0); err != nil {
		return errors.Wrapf(err, errors.ErrXattrSet, "setting %s on %s", key, path).
			WithDetail("path", path).
			WithDetail("key", key)
	}
	return nil
}

// Get reads one attribute via getxattr. A missing attribute or a
// filesystem without xattr support reports absence, not an error.
func (x *XattrTagger) Get(path, key string) (string, bool, error) {
	buf := make([]byte, 256)
	for {
		n, err := unix.Getxattr(path, key, buf)
		if err == unix.ERANGE {
			buf = make([]byte, len(buf)*2)
			continue
		}
		if err != nil {
			if isXattrMissing(err) {
				return "", false, nil
			}
			return "", false, errors.Wrapf(err, errors.ErrXattrGet, "reading %s from %s", key, path).
				WithDetail("path", path).
				WithDetail("key", key)
		}
		return string(buf[:n]), true, nil
	}
}

// Rename is a no-op: extended attributes travel with the inode.
func (x *XattrTagger) Rename(oldPath, newPath string) error {
	return nil
}

// Supported probes whether path's filesystem accepts user xattrs by
// round-tripping a probe attribute.
func (x *XattrTagger) Supported(path string) bool {
	const probe = "user.p8prep.probe"
	if err := unix.Setxattr(path, probe, []byte("1"), 0); err != nil {
		return false
	}
	_ = unix.Removexattr(path, probe)
	return true
}
