// Package prodosmeta attaches ProDOS per-file metadata to host files as
// out-of-band key/value tags under the user.prodos8. namespace. The native
// store is extended attributes; filesystems without xattr support fall
// back to a per-directory sidecar file holding the same keys.
package prodosmeta

import (
	"fmt"
	"regexp"

	"github.com/arthur-debert/p8prep/pkg/errors"
)

// Attribute names shared with the emulator's filing layer.
const (
	XattrPrefix    = "user.prodos8."
	KeyFileType    = XattrPrefix + "file_type"
	KeyAuxType     = XattrPrefix + "aux_type"
	KeyStorageType = XattrPrefix + "storage_type"
	KeyAccess      = XattrPrefix + "access"
)

// Well-known ProDOS file and storage type values.
const (
	FileTypeText   byte = 0x04
	FileTypeBinary byte = 0x06
	FileTypeSystem byte = 0xFF

	// StorageSeedling is the single-block storage type written for
	// freshly imported files.
	StorageSeedling byte = 0x01
)

// DefaultAccess is the 8-character access descriptor written when the
// caller does not supply one: destroy/rename enabled, no backup needed,
// write and read enabled.
const DefaultAccess = "dn-..-wr"

// TagSet is the full metadata tag set attached to a converted file.
type TagSet struct {
	FileType    byte
	AuxType     uint16
	StorageType byte
	Access      string
}

// TextDefaults returns the tag set applied to imported text files.
// An empty access string selects DefaultAccess.
func TextDefaults(access string) TagSet {
	if access == "" {
		access = DefaultAccess
	}
	return TagSet{
		FileType:    FileTypeText,
		AuxType:     0x0000,
		StorageType: StorageSeedling,
		Access:      access,
	}
}

// FormatByte renders a byte value as 2 lowercase hex characters.
func FormatByte(v byte) string {
	return fmt.Sprintf("%02x", v)
}

// FormatWord renders a word value as 4 lowercase hex characters.
func FormatWord(v uint16) string {
	return fmt.Sprintf("%04x", v)
}

var (
	hexByteRe = regexp.MustCompile(`^[0-9a-fA-F]{2}$`)
	hexWordRe = regexp.MustCompile(`^[0-9a-fA-F]{4}$`)
)

// ParseByte parses a 2-hex-character attribute value.
func ParseByte(s string) (byte, error) {
	if !hexByteRe.MatchString(s) {
		return 0, errors.Newf(errors.ErrInvalidInput, "not a 2-char hex byte: %q", s)
	}
	var v byte
	if _, err := fmt.Sscanf(s, "%02x", &v); err != nil {
		return 0, errors.Wrapf(err, errors.ErrInvalidInput, "parsing hex byte %q", s)
	}
	return v, nil
}

// ParseWord parses a 4-hex-character attribute value.
func ParseWord(s string) (uint16, error) {
	if !hexWordRe.MatchString(s) {
		return 0, errors.Newf(errors.ErrInvalidInput, "not a 4-char hex word: %q", s)
	}
	var v uint16
	if _, err := fmt.Sscanf(s, "%04x", &v); err != nil {
		return 0, errors.Wrapf(err, errors.ErrInvalidInput, "parsing hex word %q", s)
	}
	return v, nil
}

// Tagger is the out-of-band metadata store. Set and Get operate on a
// single attribute; Rename carries tags across a path change for stores
// where tags do not travel with the file itself.
type Tagger interface {
	// Set attaches one attribute to path. Failure surfaces the
	// underlying I/O error; callers must treat it as fatal for the
	// operation in progress.
	Set(path, key, value string) error

	// Get reads one attribute. The boolean reports whether the
	// attribute is present; an absent attribute is not an error.
	Get(path, key string) (string, bool, error)

	// Rename moves any tags attached to oldPath so they are
	// observable at newPath. The xattr store is a no-op here because
	// attributes travel with the inode.
	Rename(oldPath, newPath string) error
}

// Apply attaches the complete tag set to path, one attribute at a time,
// in a fixed order. The first failure aborts and is returned as-is.
func Apply(tg Tagger, path string, tags TagSet) error {
	access := tags.Access
	if access == "" {
		access = DefaultAccess
	}
	pairs := []struct{ key, value string }{
		{KeyFileType, FormatByte(tags.FileType)},
		{KeyAuxType, FormatWord(tags.AuxType)},
		{KeyStorageType, FormatByte(tags.StorageType)},
		{KeyAccess, access},
	}
	for _, p := range pairs {
		if err := tg.Set(path, p.key, p.value); err != nil {
			return err
		}
	}
	return nil
}

// Read collects the full tag set from path. Missing attributes are
// reported via the boolean, not as errors.
func Read(tg Tagger, path string) (TagSet, bool, error) {
	ftStr, ok, err := tg.Get(path, KeyFileType)
	if err != nil || !ok {
		return TagSet{}, false, err
	}
	auxStr, ok, err := tg.Get(path, KeyAuxType)
	if err != nil || !ok {
		return TagSet{}, false, err
	}

	ft, err := ParseByte(ftStr)
	if err != nil {
		return TagSet{}, false, err
	}
	aux, err := ParseWord(auxStr)
	if err != nil {
		return TagSet{}, false, err
	}

	tags := TagSet{FileType: ft, AuxType: aux}

	if stStr, ok, err := tg.Get(path, KeyStorageType); err != nil {
		return TagSet{}, false, err
	} else if ok {
		st, err := ParseByte(stStr)
		if err != nil {
			return TagSet{}, false, err
		}
		tags.StorageType = st
	}

	if access, ok, err := tg.Get(path, KeyAccess); err != nil {
		return TagSet{}, false, err
	} else if ok {
		tags.Access = access
	}

	return tags, true, nil
}
