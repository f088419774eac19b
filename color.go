package bbsdecode

import (
	"fmt"
	"strconv"
)

// ColorKind tells how a [Color] value is interpreted.
type ColorKind uint8

const (
	ColorDefault  ColorKind = iota // ColorDefault is the terminal's own default color
	ColorBase                      // ColorBase is one of the 16 system colors
	ColorExtended                  // ColorExtended is an xterm 256 color index
	ColorRGB                       // ColorRGB is a 24-bit true color
)

// Color is a foreground or background color selected by SGR.
type Color struct {
	Kind    ColorKind
	Index   uint8 // Index is used by ColorBase and ColorExtended
	R, G, B uint8 // R, G and B are used by ColorRGB
}

// DefaultColor is SGR 39 and SGR 49.
var DefaultColor = Color{}

// Base returns a system color, 0 to 7 are the normal colors in ANSI order
// (black, red, green, yellow, blue, magenta, cyan, white) and 8 to 15 are bright.
//
// ANSI order is not the DOS and CGA attribute order, where 1 is blue and
// 4 is red. SGR 31 is Base(1). Callers that index a DOS palette must swap
// bits 0 and 2 of the index, or use [Color.Hex] with [CGA16].
func Base(i uint8) Color { return Color{Kind: ColorBase, Index: i} }

// Extended returns an xterm 256 color.
func Extended(i uint8) Color { return Color{Kind: ColorExtended, Index: i} }

// RGB returns a true color.
func RGB(r, g, b uint8) Color { return Color{Kind: ColorRGB, R: r, G: g, B: b} }

func (c Color) String() string {
	switch c.Kind {
	case ColorBase:
		return fmt.Sprintf("Base(%d)", c.Index)
	case ColorExtended:
		return fmt.Sprintf("Extended(%d)", c.Index)
	case ColorRGB:
		return fmt.Sprintf("Rgb(%d,%d,%d)", c.R, c.G, c.B)
	}
	return "Default"
}

// SgrAttribute is a single text attribute change selected by SGR, CSI Ps m.
type SgrAttribute interface {
	isSgrAttribute()
}

// Intensity is the weight of the text.
type Intensity uint8

const (
	IntensityNormal Intensity = iota
	IntensityBold
	IntensityFaint
)

// Underline is the style of underlined text.
type Underline uint8

const (
	UnderlineOff Underline = iota
	UnderlineSingle
	UnderlineDouble
)

// Blink is the speed of blinking text.
type Blink uint8

const (
	BlinkOff Blink = iota
	BlinkSlow
	BlinkRapid
)

// Frame decorates the text cell.
type Frame uint8

const (
	FrameOff Frame = iota
	FrameFramed
	FrameEncircled
)

// Ideogram is one of the SGR 60 to 65 ideogram attributes, 65 turns them off.
type Ideogram uint8

const (
	IdeogramUnderline Ideogram = iota
	IdeogramDoubleUnderline
	IdeogramOverline
	IdeogramDoubleOverline
	IdeogramStress
	IdeogramOff
)

func (i Intensity) String() string { return enumName(i, "Normal", "Bold", "Faint") }
func (u Underline) String() string { return enumName(u, "Off", "Single", "Double") }
func (b Blink) String() string     { return enumName(b, "Off", "Slow", "Rapid") }
func (f Frame) String() string     { return enumName(f, "Off", "Framed", "Encircled") }

// enumName returns names[v] or the number for an unnamed value.
func enumName[T ~uint8](v T, names ...string) string {
	if int(v) < len(names) {
		return names[v]
	}
	return strconv.Itoa(int(v))
}

type (
	SgrReset      struct{}                  // SgrReset is SGR 0
	SgrIntensity  struct{ Value Intensity } // SgrIntensity is SGR 1, 2 and 22
	SgrItalic     struct{ On bool }         // SgrItalic is SGR 3 and 23
	SgrUnderline  struct{ Style Underline } // SgrUnderline is SGR 4, 21 and 24
	SgrBlink      struct{ Speed Blink }     // SgrBlink is SGR 5, 6 and 25
	SgrInverse    struct{ On bool }         // SgrInverse is SGR 7 and 27
	SgrConcealed  struct{ On bool }         // SgrConcealed is SGR 8 and 28
	SgrCrossedOut struct{ On bool }         // SgrCrossedOut is SGR 9 and 29
	SgrFont       struct{ Font uint8 }      // SgrFont is SGR 10 to 19, where 10 is the primary font
	SgrFraktur    struct{}                  // SgrFraktur is SGR 20
	SgrFrame      struct{ Style Frame }     // SgrFrame is SGR 51, 52 and 54
	SgrOverlined  struct{ On bool }         // SgrOverlined is SGR 53 and 55
	SgrIdeogram   struct{ Value Ideogram }  // SgrIdeogram is SGR 60 to 65
	SgrForeground struct{ Color Color }     // SgrForeground is SGR 30 to 39, 90 to 97
	SgrBackground struct{ Color Color }     // SgrBackground is SGR 40 to 49, 100 to 107
)

func (SgrReset) isSgrAttribute()      {}
func (SgrIntensity) isSgrAttribute()  {}
func (SgrItalic) isSgrAttribute()     {}
func (SgrUnderline) isSgrAttribute()  {}
func (SgrBlink) isSgrAttribute()      {}
func (SgrInverse) isSgrAttribute()    {}
func (SgrConcealed) isSgrAttribute()  {}
func (SgrCrossedOut) isSgrAttribute() {}
func (SgrFont) isSgrAttribute()       {}
func (SgrFraktur) isSgrAttribute()    {}
func (SgrFrame) isSgrAttribute()      {}
func (SgrOverlined) isSgrAttribute()  {}
func (SgrIdeogram) isSgrAttribute()   {}
func (SgrForeground) isSgrAttribute() {}
func (SgrBackground) isSgrAttribute() {}
