package prodosmeta

import "golang.org/x/sys/unix"

// On Darwin a missing attribute is ENOATTR; filesystems without xattr
// support report ENOTSUP.
func isXattrMissing(err error) bool {
	return err == unix.ENOATTR || err == unix.ENOTSUP
}
