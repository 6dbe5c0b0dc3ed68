package prodosmeta

import "golang.org/x/sys/unix"

// On Linux a missing attribute is ENODATA; filesystems without xattr
// support report ENOTSUP.
func isXattrMissing(err error) bool {
	return err == unix.ENODATA || err == unix.ENOTSUP
}
