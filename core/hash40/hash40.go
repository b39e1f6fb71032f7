package hash40

import (
	"fmt"
	"hash/crc32"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Mask keeps the 40 significant bits of a hash.
const Mask = 0xFF_FFFF_FFFF

// Hash40 is a length-tagged CRC-32 of a lowercased path or path component.
type Hash40 uint64

// Root is the hash of the synthetic root folder "/".
var Root = New("/")

// Separator is the hash of the path separator used when joining components.
var Separator = New("/")

// New hashes s after lowercasing it.
func New(s string) Hash40 {
	// cases.Caser keeps state between calls, so one is built per hash.
	lowered := cases.Lower(language.Und).String(s)
	crc := crc32.ChecksumIEEE([]byte(lowered))
	return Hash40(uint64(len(lowered)&0xFF)<<32 | uint64(crc))
}

// Parse accepts either a hexadecimal hash ("0x0a1b2c3d4e") or a plain string,
// which is hashed.
func Parse(s string) (Hash40, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err := strconv.ParseUint(s[2:], 16, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid hash %q: %w", s, err)
		}
		if v > Mask {
			return 0, fmt.Errorf("invalid hash %q: exceeds 40 bits", s)
		}
		return Hash40(v), nil
	}
	return New(s), nil
}

// Len returns the length tag of the hash.
func (h Hash40) Len() int {
	return int(h>>32) & 0xFF
}

// CRC returns the checksum half of the hash.
func (h Hash40) CRC() uint32 {
	return uint32(h)
}

// Concat returns the hash of the concatenation of the strings behind h and other.
func (h Hash40) Concat(other Hash40) Hash40 {
	crc := combine(h.CRC(), other.CRC(), int64(other.Len()))
	length := (h.Len() + other.Len()) & 0xFF
	return Hash40(uint64(length)<<32 | uint64(crc))
}

// Join appends component with a "/" separator. The zero hash joins without one,
// so Hash40(0).Join(c) == c.
func (h Hash40) Join(component Hash40) Hash40 {
	if h == 0 {
		return component
	}
	return h.Concat(Separator).Concat(component)
}

// String formats the hash as a 10 digit hexadecimal value.
func (h Hash40) String() string {
	return fmt.Sprintf("0x%010x", uint64(h))
}

// MarshalText lets hashes be used as JSON object keys and values.
func (h Hash40) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText accepts the forms understood by Parse.
func (h *Hash40) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*h = v
	return nil
}
