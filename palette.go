package bbsdecode

import (
	"fmt"
	"strconv"
)

// Palette sets the ANSI 4-bit color codes to a colorset of RGB values.
// The ANSI standard never formalized color values and it was left to the system to determine.
// Wikipedia has a [useful table] of the common palettes.
//
// [useful table]: https://en.wikipedia.org/wiki/ANSI_escape_code#3-bit_and_4-bit
type Palette uint

const (
	CGA16   Palette = iota // Color Graphics Adapter colorset defined by IBM for the PC in 1981
	Xterm16                // Xterm terminal emulator program for the X Window System colorset from the mid-1980s
)

// Hex is a color code represented as hexadecimal numeric value.
// These are often 6 digit values RRGGBB (red, green, blue),
// however, certain values can be shortened to 3 digit values.
//
// For example, the code of CGA red "aa0000" (red: aa, green: 00, blue: 00) can shortened to "a00".
type Hex string

const (
	CBlack    Hex = "000"    // black
	CRed      Hex = "a00"    // red
	CGreen    Hex = "0a0"    // green
	CBrown    Hex = "a50"    // yellow
	CBlue     Hex = "00a"    // blue
	CMagenta  Hex = "a0a"    // magenta
	CCyan     Hex = "0aa"    // cyan
	CGray     Hex = "aaa"    // white
	CDarkGray Hex = "555"    // bright black
	CLRed     Hex = "f55"    // bright red
	CLGreen   Hex = "5f5"    // bright green
	CYellow   Hex = "ff5"    // bright yellow
	CLBlue    Hex = "55f"    // bright blue
	CLMagenta Hex = "f5f"    // bright magenta
	CLCyan    Hex = "5ff"    // bright cyan
	CWhite    Hex = "fff"    // bright white
	XBlack    Hex = "000"    // black
	XMarron   Hex = "800000" // red
	XGreen    Hex = "008000" // green
	XOlive    Hex = "808000" // yellow
	XNavy     Hex = "000080" // blue
	XPurple   Hex = "800080" // magenta
	XTeal     Hex = "008080" // cyan
	XSilver   Hex = "c0c0c0" // white
	XGray     Hex = "808080" // bright black
	XRed      Hex = "f00"    // bright red
	XLime     Hex = "0f0"    // bright green
	XYellow   Hex = "ff0"    // bright yellow
	XBlue     Hex = "00f"    // bright blue
	XFuchsia  Hex = "f0f"    // bright magenta
	XAqua     Hex = "0ff"    // bright cyan
	XWhite    Hex = "fff"    // bright white
)

func CGA() [16]Hex {
	return [16]Hex{
		CBlack, CRed, CGreen, CBrown, CBlue, CMagenta, CCyan, CGray,
		CDarkGray, CLRed, CLGreen, CYellow, CLBlue, CLMagenta, CLCyan, CWhite,
	}
}

func Xterm() [16]Hex {
	return [16]Hex{
		XBlack, XMarron, XGreen, XOlive, XNavy, XPurple, XTeal, XSilver,
		XGray, XRed, XLime, XYellow, XBlue, XFuchsia, XAqua, XWhite,
	}
}

// RGB returns the red, green and blue values of the hex code.
// Both the 3 and 6 digit forms are accepted, ok is false for anything else.
func (h Hex) RGB() (uint8, uint8, uint8, bool) {
	s := string(h)
	if len(s) == 3 { //nolint:mnd
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 { //nolint:mnd
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), true //nolint:gosec,mnd
}

// Hex returns the color as a hex code using the palette for the system colors.
// The default color returns a blank string as its value is left to the terminal.
func (c Color) Hex(p Palette) Hex {
	switch c.Kind {
	case ColorBase:
		return XtermHex(int(c.Index), p)
	case ColorExtended:
		return XtermHex(int(c.Index), p)
	case ColorRGB:
		return RGBHex(int(c.R), int(c.G), int(c.B))
	}
	return ""
}

// RGBHex converts red, green, blue values into a "true color" hex code.
// Values are clamped to 0 and 255.
func RGBHex(r, g, b int) Hex {
	const hi = 255
	return Hex(fmt.Sprintf("%02x%02x%02x", clamp(r, 0, hi), clamp(g, 0, hi), clamp(b, 0, hi)))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// BasicHex takes a standard color code and returns a corresponding hexadecimal string.
// When bright is toggled, a lighter color variant is used.
// Codes are values between 0 and 7, and any invalid codes returns a blank string.
//
//nolint:mnd
func BasicHex(code int, bright bool, p Palette) Hex {
	const first, last = 0, 7
	if code < first || code > last {
		return ""
	}
	index := code
	if bright {
		index = code + 8
	}
	switch p {
	case CGA16:
		return CGA()[index]
	case Xterm16:
		return Xterm()[index]
	}
	return ""
}

// XtermHex takes a Xterm color code and returns the corresponding RBG values
// as a hexadecimal string.
// Codes are values between 0 and 255, and any invalid codes return a blank string.
// The Palette is only used for basic colors codes between 0 and 15.
//
//nolint:mnd
func XtermHex(code int, p Palette) Hex {
	if code < 0 || code > 255 {
		return ""
	}
	if code <= 7 {
		return BasicHex(code, false, p)
	}
	if code <= 15 {
		return BasicHex(code-8, true, p)
	}
	r, g, b := XtermColors(code)
	return RGBHex(r, g, b)
}

// XtermColors takes a Xterm non-system color code and returns the corresponding RGB values.
// The code values begin at 16 and finish at 255.
// If a code is out of range, then the returned RGB values will be -1, which are invalid.
//
// Some helpful links, [256 colors cheat sheet], [Xterm Colors], and [8-bit colors wiki].
//
// [256 colors cheat sheet]: https://www.ditig.com/256-colors-cheat-sheet
// [Xterm Colors]: https://lucianofedericopereira.github.io/xterm-colors-cheat-sheet
// [8-bit colors wiki]: https://en.wikipedia.org/wiki/ANSI_escape_code#8-bit
func XtermColors(code int) (int, int, int) {
	if code >= 16 && code <= 231 {
		return XtermColor(code)
	}
	if code >= 232 && code <= 255 {
		return XtermGray(code)
	}
	return -1, -1, -1
}

// XtermColor returns the RGB values for the 6×6×6 Xterm color cube.
//
//nolint:mnd
func XtermColor(code int) (int, int, int) {
	c := code - 16
	calc := func(c int) int {
		if c == 0 {
			return 0
		}
		return 55 + c*40
	}
	return calc(c / 36), calc((c % 36) / 6), calc(c % 6)
}

// XtermGray returns the RGB values for the Xterm greyscale colors.
//
//nolint:mnd
func XtermGray(code int) (int, int, int) {
	v := 8 + (code-232)*10
	return v, v, v
}
