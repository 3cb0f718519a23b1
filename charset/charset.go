// Package charset provides the source encoding objects the lexer scans under.
//
// An Encoding knows how long each character is, whether the encoding agrees
// with ASCII on the low 128 bytes, and how to decode a single character for
// case checks. Conversion between encodings is delegated to golang.org/x/text.
package charset

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/japanese"
)

// ErrUnknownEncoding is returned by Lookup for names it cannot resolve.
var ErrUnknownEncoding = errors.New("unknown encoding name")

type family int

const (
	familySingle family = iota
	familyASCII
	familyBinary
	familyUTF8
	familySJIS
	familyEUCJP
	familyDoubleByte
	familyGB18030
	familyWide
)

// Encoding describes a named source encoding.
type Encoding struct {
	name            string
	family          family
	asciiCompatible bool
	codec           encoding.Encoding
}

var (
	UTF8       = &Encoding{name: "UTF-8", family: familyUTF8, asciiCompatible: true}
	USASCII    = &Encoding{name: "US-ASCII", family: familyASCII, asciiCompatible: true}
	Binary     = &Encoding{name: "ASCII-8BIT", family: familyBinary, asciiCompatible: true}
	ShiftJIS   = &Encoding{name: "Shift_JIS", family: familySJIS, asciiCompatible: true, codec: japanese.ShiftJIS}
	EUCJP      = &Encoding{name: "EUC-JP", family: familyEUCJP, asciiCompatible: true, codec: japanese.EUCJP}
	Windows31J = &Encoding{name: "Windows-31J", family: familySJIS, asciiCompatible: true, codec: japanese.ShiftJIS}
)

// aliases holds the names that do not resolve through the IANA index or that
// resolve to a different encoding object there.
var aliases = map[string]*Encoding{
	"utf-8":          UTF8,
	"utf8":           UTF8,
	"cp65001":        UTF8,
	"us-ascii":       USASCII,
	"ascii":          USASCII,
	"ansi_x3.4-1968": USASCII,
	"646":            USASCII,
	"ascii-8bit":     Binary,
	"binary":         Binary,
	"shift_jis":      ShiftJIS,
	"sjis":           Windows31J,
	"windows-31j":    Windows31J,
	"cp932":          Windows31J,
	"cswindows31j":   Windows31J,
	"pck":            Windows31J,
	"euc-jp":         EUCJP,
	"eucjp":          EUCJP,
}

// Lookup resolves an encoding name case-insensitively.
func Lookup(name string) (*Encoding, error) {
	if enc, ok := aliases[strings.ToLower(name)]; ok {
		return enc, nil
	}
	codec, err := ianaindex.IANA.Encoding(name)
	if err != nil || codec == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEncoding, name)
	}
	canonical, err := ianaindex.IANA.Name(codec)
	if err != nil {
		canonical = name
	}
	enc := &Encoding{name: canonical, codec: codec}
	enc.family = familyOf(canonical)
	enc.asciiCompatible = enc.family != familyWide && probeASCII(codec)
	return enc, nil
}

// MustLookup is like Lookup but panics on unknown names.
func MustLookup(name string) *Encoding {
	enc, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	return enc
}

func familyOf(canonical string) family {
	upper := strings.ToUpper(canonical)
	switch {
	case strings.HasPrefix(upper, "UTF-16"), strings.HasPrefix(upper, "UTF-32"),
		strings.HasPrefix(upper, "ISO-2022"), upper == "HZ-GB-2312":
		return familyWide
	case upper == "SHIFT_JIS" || upper == "WINDOWS-31J":
		return familySJIS
	case upper == "EUC-JP":
		return familyEUCJP
	case upper == "GB18030":
		return familyGB18030
	case upper == "GBK" || upper == "GB2312" || upper == "EUC-KR" || upper == "BIG5":
		return familyDoubleByte
	}
	return familySingle
}

// probeASCII decodes the ASCII range and reports whether it maps onto itself.
func probeASCII(codec encoding.Encoding) bool {
	ascii := make([]byte, 0x80)
	for i := range ascii {
		ascii[i] = byte(i)
	}
	decoded, err := codec.NewDecoder().Bytes(ascii)
	if err != nil {
		return false
	}
	return string(decoded) == string(ascii)
}

// Name returns the canonical encoding name.
func (e *Encoding) Name() string { return e.name }

func (e *Encoding) String() string { return e.name }

// ASCIICompatible reports whether bytes below 0x80 mean ASCII in this encoding.
func (e *Encoding) ASCIICompatible() bool { return e.asciiCompatible }

// IsUnicode reports whether the encoding is UTF-8 or its US-ASCII subset.
func (e *Encoding) IsUnicode() bool {
	return e.family == familyUTF8 || e.family == familyASCII
}

// IsUTF8 reports whether the encoding is UTF-8.
func (e *Encoding) IsUTF8() bool { return e.family == familyUTF8 }

// CharLen returns the byte length of the character starting at b[0], or -1
// when the bytes do not form a valid character.
func (e *Encoding) CharLen(b []byte) int {
	if len(b) == 0 {
		return -1
	}
	c := b[0]
	switch e.family {
	case familyBinary, familySingle:
		return 1
	case familyASCII:
		if c >= 0x80 {
			return -1
		}
		return 1
	case familyUTF8:
		if c < utf8.RuneSelf {
			return 1
		}
		r, n := utf8.DecodeRune(b)
		if r == utf8.RuneError && n <= 1 {
			return -1
		}
		return n
	case familySJIS:
		switch {
		case c < 0x80 || (c >= 0xA1 && c <= 0xDF):
			return 1
		case (c >= 0x81 && c <= 0x9F) || (c >= 0xE0 && c <= 0xFC):
			if len(b) < 2 || !sjisTrail(b[1]) {
				return -1
			}
			return 2
		}
		return -1
	case familyEUCJP:
		switch {
		case c < 0x80:
			return 1
		case c == 0x8E:
			if len(b) < 2 || b[1] < 0xA1 || b[1] > 0xDF {
				return -1
			}
			return 2
		case c == 0x8F:
			if len(b) < 3 || !eucByte(b[1]) || !eucByte(b[2]) {
				return -1
			}
			return 3
		case eucByte(c):
			if len(b) < 2 || !eucByte(b[1]) {
				return -1
			}
			return 2
		}
		return -1
	case familyDoubleByte:
		if c < 0x80 {
			return 1
		}
		if c < 0x81 || c == 0xFF || len(b) < 2 || b[1] < 0x40 || b[1] == 0x7F || b[1] == 0xFF {
			return -1
		}
		return 2
	case familyGB18030:
		if c < 0x80 {
			return 1
		}
		if c < 0x81 || c == 0xFF || len(b) < 2 {
			return -1
		}
		if b[1] >= 0x30 && b[1] <= 0x39 {
			if len(b) < 4 || b[2] < 0x81 || b[2] == 0xFF || b[3] < 0x30 || b[3] > 0x39 {
				return -1
			}
			return 4
		}
		if b[1] < 0x40 || b[1] == 0x7F || b[1] == 0xFF {
			return -1
		}
		return 2
	}
	// Wide encodings are never scanned byte-wise; treat each unit as opaque.
	return 1
}

func sjisTrail(c byte) bool {
	return (c >= 0x40 && c <= 0x7E) || (c >= 0x80 && c <= 0xFC)
}

func eucByte(c byte) bool { return c >= 0xA1 && c <= 0xFE }

// Valid reports whether b is a sequence of complete, valid characters.
func (e *Encoding) Valid(b []byte) bool {
	for len(b) > 0 {
		n := e.CharLen(b)
		if n < 0 {
			return false
		}
		b = b[n:]
	}
	return true
}

// DecodeRune decodes the first character of b to a Unicode code point.
// It returns utf8.RuneError when the character has no Unicode mapping.
func (e *Encoding) DecodeRune(b []byte) (rune, int) {
	n := e.CharLen(b)
	if n < 0 {
		return utf8.RuneError, 1
	}
	if b[0] < utf8.RuneSelf && e.asciiCompatible {
		return rune(b[0]), 1
	}
	switch {
	case e.family == familyUTF8:
		return utf8.DecodeRune(b)
	case e.codec == nil:
		return utf8.RuneError, n
	}
	decoded, err := e.codec.NewDecoder().Bytes(b[:n])
	if err != nil {
		return utf8.RuneError, n
	}
	r, _ := utf8.DecodeRune(decoded)
	return r, n
}

// IsUpper reports whether the character starting at b is an uppercase letter.
func (e *Encoding) IsUpper(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	if b[0] < utf8.RuneSelf {
		return b[0] >= 'A' && b[0] <= 'Z'
	}
	r, _ := e.DecodeRune(b)
	return r != utf8.RuneError && (unicode.IsUpper(r) || unicode.IsTitle(r))
}

// Names lists the encodings that resolve without consulting the IANA index.
func Names() []string {
	var names []string
	for _, enc := range []*Encoding{UTF8, USASCII, Binary, ShiftJIS, Windows31J, EUCJP} {
		names = append(names, enc.name)
	}
	return names
}
