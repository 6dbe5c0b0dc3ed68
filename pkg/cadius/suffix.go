// Package cadius bridges between cadius conventions and this tool's
// metadata store. Cadius encodes ProDOS type metadata in host filenames
// as a NAME#TTAAAA suffix (TT file type byte, AAAA aux type word); the
// emulator reads the same values from user.prodos8.* tags. The package
// also wraps the cadius executable for disk image extraction.
package cadius

import (
	"fmt"
	"regexp"
	"strconv"
)

var suffixRe = regexp.MustCompile(`^(.*)#([0-9A-Fa-f]{2})([0-9A-Fa-f]{4})$`)

// ParsedName is a filename with its cadius suffix decoded.
type ParsedName struct {
	Stem     string
	FileType byte
	AuxType  uint16
}

// ParseSuffix decodes a NAME#TTAAAA filename. The boolean reports
// whether the name carries a suffix at all.
func ParseSuffix(name string) (ParsedName, bool) {
	m := suffixRe.FindStringSubmatch(name)
	if m == nil {
		return ParsedName{}, false
	}
	ft, err := strconv.ParseUint(m[2], 16, 8)
	if err != nil {
		return ParsedName{}, false
	}
	aux, err := strconv.ParseUint(m[3], 16, 16)
	if err != nil {
		return ParsedName{}, false
	}
	return ParsedName{Stem: m[1], FileType: byte(ft), AuxType: uint16(aux)}, true
}

// FormatSuffix renders a #TTAAAA suffix. Cadius itself writes uppercase
// hex; lowercase is available for tooling that expects it.
func FormatSuffix(fileType byte, auxType uint16, uppercase bool) string {
	if uppercase {
		return fmt.Sprintf("#%02X%04X", fileType, auxType)
	}
	return fmt.Sprintf("#%02x%04x", fileType, auxType)
}
