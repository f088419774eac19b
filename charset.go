package bbsdecode

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Charsets maps the names accepted by [LookupCharset] to their character maps.
// A nil map means the stream is UTF-8 or plain 8-bit and every high byte prints.
var Charsets = map[string]*charmap.Charmap{
	"cp437":        charmap.CodePage437,
	"ibm437":       charmap.CodePage437,
	"cp850":        charmap.CodePage850,
	"iso-8859-1":   charmap.ISO8859_1,
	"latin1":       charmap.ISO8859_1,
	"iso-8859-15":  charmap.ISO8859_15,
	"windows-1252": charmap.Windows1252,
	"macintosh":    charmap.Macintosh,
	"utf-8":        nil,
	"utf8":         nil,
	"":             nil,
}

// LookupCharset returns the character map for a name such as "cp437".
func LookupCharset(name string) (*charmap.Charmap, error) {
	cs, ok := Charsets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrCharset, name)
	}
	return cs, nil
}

// printTable marks the bytes that print while in the ground state.
type printTable [256]bool

// newPrintTable builds the table for a charset.
// ASCII 0x20 to 0x7e always print. High bytes print when the charset
// decodes them to a graphic rune, or always when charset is nil.
// IBM Code Page 437 also prints the C0 bytes that are not controls,
// these are the PC-DOS glyphs such as ☺ and ♥.
func newPrintTable(charset *charmap.Charmap) printTable {
	var t printTable
	for b := 0x20; b < DEL; b++ {
		t[b] = true
	}
	pcdos := charset == charmap.CodePage437
	if pcdos {
		for b := 0x01; b < 0x20; b++ {
			t[b] = !isControl(byte(b))
		}
	}
	for b := 0x80; b <= 0xff; b++ {
		if charset == nil || charset == charmap.XUserDefined {
			t[b] = true
			continue
		}
		r := charset.DecodeByte(byte(b))
		t[b] = r != utf8.RuneError && !unicode.IsControl(r)
	}
	return t
}

// isControl reports whether b is a C0 control the parsers act on.
func isControl(b byte) bool {
	switch b {
	case BEL, BS, HT, LF, FF, CR, SO, CAN, EOF, ESC:
		return true
	}
	return false
}

// DecodeText converts printed bytes to UTF-8 using the charset.
// IBM Code Page 437 control bytes become their PC-DOS glyphs.
// A nil charset returns the bytes unchanged.
func DecodeText(charset *charmap.Charmap, p []byte) string {
	if charset == nil || charset == charmap.XUserDefined {
		return string(p)
	}
	var sb strings.Builder
	sb.Grow(len(p))
	pcdos := charset == charmap.CodePage437
	for _, b := range p {
		if pcdos && b < 0x20 {
			sb.WriteRune(dosGlyphs[b])
			continue
		}
		sb.WriteRune(charset.DecodeByte(b))
	}
	return sb.String()
}

// dosGlyphs are the IBM PC glyphs drawn for C0 bytes.
var dosGlyphs = [32]rune{
	' ', '☺', '☻', '♥', '♦', '♣', '♠', '•', '◘', '○', '◙', '♂', '♀', '♪', '♫', '☼',
	'►', '◄', '↕', '‼', '¶', '§', '▬', '↨', '↑', '↓', '→', '←', '∟', '↔', '▲', '▼',
}
