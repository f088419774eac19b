package bbsdecode_test

import (
	"fmt"
	"testing"

	"github.com/bengarrett/bbsdecode"
	"github.com/nalgeon/be"
)

func ExampleXtermHex() {
	fmt.Println(bbsdecode.XtermHex(1, bbsdecode.CGA16))
	fmt.Println(bbsdecode.XtermHex(1, bbsdecode.Xterm16))
	fmt.Println(bbsdecode.XtermHex(196, bbsdecode.CGA16))
	// Output: a00
	// 800000
	// ff0000
}

func TestBasicHex(t *testing.T) {
	t.Parallel()
	be.Equal(t, bbsdecode.BasicHex(-1, false, bbsdecode.CGA16), bbsdecode.Hex(""))
	be.Equal(t, bbsdecode.BasicHex(8, false, bbsdecode.CGA16), bbsdecode.Hex(""))
	be.Equal(t, bbsdecode.BasicHex(3, false, bbsdecode.CGA16), bbsdecode.CBrown)
	be.Equal(t, bbsdecode.BasicHex(3, true, bbsdecode.CGA16), bbsdecode.CYellow)
	be.Equal(t, bbsdecode.BasicHex(3, true, bbsdecode.Xterm16), bbsdecode.XYellow)
	be.Equal(t, bbsdecode.BasicHex(0, false, bbsdecode.Palette(9)), bbsdecode.Hex(""))
}

func TestXtermColors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		code    int
		r, g, b int
		hex     bbsdecode.Hex
	}{
		{0, -1, -1, -1, "000"},
		{16, 0, 0, 0, "000000"},
		{195, 215, 255, 255, "d7ffff"},
		{196, 255, 0, 0, "ff0000"},
		{231, 255, 255, 255, "ffffff"},
		{232, 8, 8, 8, "080808"},
		{255, 238, 238, 238, "eeeeee"},
	}
	for _, tt := range tests {
		r, g, b := bbsdecode.XtermColors(tt.code)
		be.Equal(t, []int{r, g, b}, []int{tt.r, tt.g, tt.b})
		be.Equal(t, bbsdecode.XtermHex(tt.code, bbsdecode.CGA16), tt.hex)
	}
	be.Equal(t, bbsdecode.XtermHex(256, bbsdecode.CGA16), bbsdecode.Hex(""))
}

func TestRGBHex(t *testing.T) {
	t.Parallel()
	be.Equal(t, bbsdecode.RGBHex(0, 175, 135), bbsdecode.Hex("00af87"))
	be.Equal(t, bbsdecode.RGBHex(-5, 300, 16), bbsdecode.Hex("00ff10"))
}

func TestHexRGB(t *testing.T) {
	t.Parallel()
	r, g, b, ok := bbsdecode.CRed.RGB()
	be.True(t, ok)
	be.Equal(t, []uint8{r, g, b}, []uint8{0xaa, 0, 0})
	r, g, b, ok = bbsdecode.XTeal.RGB()
	be.True(t, ok)
	be.Equal(t, []uint8{r, g, b}, []uint8{0, 0x80, 0x80})
	_, _, _, ok = bbsdecode.Hex("12345").RGB()
	be.True(t, !ok)
	_, _, _, ok = bbsdecode.Hex("zzz").RGB()
	be.True(t, !ok)
}

func TestColorHex(t *testing.T) {
	t.Parallel()
	// ANSI order, SGR 31 is red and SGR 34 is blue
	be.Equal(t, ansi("\x1b[31m").Commands(), []any{sgr(bbsdecode.SgrForeground{Color: bbsdecode.Base(1)})})
	be.Equal(t, bbsdecode.Base(1).Hex(bbsdecode.CGA16), bbsdecode.CRed)
	be.Equal(t, bbsdecode.Base(4).Hex(bbsdecode.CGA16), bbsdecode.CBlue)
	be.Equal(t, bbsdecode.Base(9).Hex(bbsdecode.CGA16), bbsdecode.CLRed)
	be.Equal(t, bbsdecode.Base(9).Hex(bbsdecode.Xterm16), bbsdecode.XRed)
	be.Equal(t, bbsdecode.Extended(232).Hex(bbsdecode.CGA16), bbsdecode.Hex("080808"))
	be.Equal(t, bbsdecode.RGB(1, 2, 3).Hex(bbsdecode.CGA16), bbsdecode.Hex("010203"))
	be.Equal(t, bbsdecode.DefaultColor.Hex(bbsdecode.CGA16), bbsdecode.Hex(""))
}

func TestColorString(t *testing.T) {
	t.Parallel()
	be.Equal(t, bbsdecode.Base(1).String(), "Base(1)")
	be.Equal(t, bbsdecode.DefaultColor.String(), "Default")
}
