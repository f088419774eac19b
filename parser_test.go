package bbsdecode_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/bengarrett/bbsdecode"
	"github.com/nalgeon/be"
)

// decode parses the input with a fresh parser in a single call and flushes it.
func decode(cfg bbsdecode.Config, input string) *bbsdecode.Recorder {
	rec := &bbsdecode.Recorder{}
	p := bbsdecode.NewParser(cfg)
	p.Parse([]byte(input), rec)
	p.Flush(rec)
	return rec
}

func ansi(input string) *bbsdecode.Recorder {
	return decode(bbsdecode.DefaultConfig(), input)
}

func sgr(attr bbsdecode.SgrAttribute) bbsdecode.CsiSelectGraphicRendition {
	return bbsdecode.CsiSelectGraphicRendition{Attr: attr}
}

func ExampleParser() {
	rec := &bbsdecode.Recorder{}
	p := bbsdecode.NewParser(bbsdecode.DefaultConfig())
	p.Parse([]byte("Hello \x1B[1;31mRed\x1B[m World"), rec)
	p.Flush(rec)
	fmt.Println(rec.Text())
	for _, cmd := range rec.Commands() {
		fmt.Printf("%+v\n", cmd)
	}
	// Output: Hello Red World
	// {Attr:{Value:Bold}}
	// {Attr:{Color:Base(1)}}
	// {Attr:{}}
}

func ExampleDecode() {
	rec := &bbsdecode.Recorder{}
	r := strings.NewReader("\x1b[2J\x1b[10;20HBBS")
	p := bbsdecode.NewParser(bbsdecode.DefaultConfig())
	if err := bbsdecode.Decode(context.Background(), r, p, rec, 3); err != nil {
		fmt.Println(err)
	}
	fmt.Printf("%+v\n", rec.Commands())
	fmt.Println(rec.Text())
	// Output: [{Mode:All} {Row:10 Col:20}]
	// BBS
}

func TestMixedContent(t *testing.T) {
	t.Parallel()
	rec := ansi("Hello \x1B[1;31mRed\x1B[m World")
	be.Equal(t, rec.Text(), "Hello Red World")
	be.Equal(t, rec.Commands(), []any{
		sgr(bbsdecode.SgrIntensity{Value: bbsdecode.IntensityBold}),
		sgr(bbsdecode.SgrForeground{Color: bbsdecode.Base(1)}),
		sgr(bbsdecode.SgrReset{}),
	})
	be.Equal(t, len(rec.Errors()), 0)
}

func TestDeterminism(t *testing.T) {
	t.Parallel()
	for _, input := range corpus {
		be.Equal(t, ansi(input).Events, ansi(input).Events)
	}
}

// corpus covers every kind of sequence the parser decodes.
var corpus = []string{
	"Hello \x1b[1;31mRed\x1b[m World\r\n",
	"\x1b]0;title\x07\x1b]4;1;rgb:ff/00/80\x1b\\\x1b]8;;http://example.com\x07link",
	"\x1bP0;0;0!zHELLO\x1b\\\x1b[0*z\x1b[?63;1n",
	"\x1bP1;0;1!z!3;41;\x1b\\\x1b[1*z",
	"\x1b[NT120O4L4CDE#F-G.P32.\x0e after music",
	"\x1b[38;5;93m\x1b[48:2::1:2:3m\x1b[4:3m\x1b[38;2;1m",
	"\x1b_apc payload\x1b\\\x1bPq#0;2;0;0;0~-\x1b\\",
	"\x1b[?25;1000h\x1b[99J\x1b[s\x1b[1;80s\x1b[5 q\x1b[8;25;80t",
	"\x01\x02\xae\xaf\x1b[1A\x1b[B\x1b[3C\x1b[D\x1b[H\x1b[;5f\x07\x08\x09\x0c\x7f",
	"\x1b[12\x18A\x1b[1\x1b[2J\x1b[=1n\x1b[$w\x1b[0;9*r\x1b[5~",
	"\x1b[",
	"\x0eT120",
}

func TestChunking(t *testing.T) {
	t.Parallel()
	for _, input := range corpus {
		want := ansi(input).Events
		for i := range len(input) + 1 {
			rec := &bbsdecode.Recorder{}
			p := bbsdecode.NewParser(bbsdecode.DefaultConfig())
			p.Parse([]byte(input[:i]), rec)
			p.Parse([]byte(input[i:]), rec)
			p.Flush(rec)
			be.Equal(t, rec.Events, want)
		}
		rec := &bbsdecode.Recorder{}
		p := bbsdecode.NewParser(bbsdecode.DefaultConfig())
		for i := range len(input) {
			p.Parse([]byte{input[i]}, rec)
		}
		p.Flush(rec)
		be.Equal(t, rec.Events, want)
	}
}

func TestDefaultParameters(t *testing.T) {
	t.Parallel()
	be.Equal(t, ansi("\x1b[H").Commands(), ansi("\x1b[1;1H").Commands())
	be.Equal(t, ansi("\x1b[K").Commands(), ansi("\x1b[0K").Commands())
	be.Equal(t, ansi("\x1b[;5H").Commands(), []any{bbsdecode.CsiCursorPosition{Row: 1, Col: 5}})
	be.Equal(t, ansi("\x1b[A").Commands(), []any{bbsdecode.CsiMoveCursor{Direction: bbsdecode.Up, N: 1}})
	// an explicit zero is passed on
	be.Equal(t, ansi("\x1b[0C").Commands(), []any{bbsdecode.CsiMoveCursor{Direction: bbsdecode.Right, N: 0}})
	be.Equal(t, ansi("\x1b[r").Commands(), []any{bbsdecode.ResetMargins{}})
}

func TestFanOut(t *testing.T) {
	t.Parallel()
	be.Equal(t, ansi("\x1b[?25;1000h").Commands(), []any{
		bbsdecode.CsiDecPrivateModeSet{Mode: bbsdecode.CursorVisible},
		bbsdecode.CsiDecPrivateModeSet{Mode: bbsdecode.VT200Mouse},
	})
	be.Equal(t, ansi("\x1b[?7l").Commands(), []any{
		bbsdecode.CsiDecPrivateModeReset{Mode: bbsdecode.AutoWrap},
	})
	// modes past the parameter limit are dropped with a warning
	rec := ansi("\x1b[?" + strings.Repeat("25;", 39) + "25h")
	be.Equal(t, len(rec.Commands()), 32)
	errs := rec.Errors()
	be.Equal(t, len(errs), 1)
	be.Equal(t, errs[0].Level, bbsdecode.LevelWarning)
	be.Err(t, errs[0].Err, bbsdecode.ErrMalformedSequence)
	be.True(t, !bbsdecode.ParseParams(strings.Repeat("1;", 31)+"1").Dropped())
	be.True(t, bbsdecode.ParseParams(strings.Repeat("1;", 32)+"1").Dropped())
}

func TestInvalidParameter(t *testing.T) {
	t.Parallel()
	rec := ansi("\x1b[99J")
	be.Equal(t, rec.Commands(), []any{bbsdecode.CsiEraseInDisplay{Mode: bbsdecode.DisplayCursorToEnd}})
	errs := rec.Errors()
	be.Equal(t, len(errs), 1)
	be.Equal(t, errs[0].Level, bbsdecode.LevelError)
	be.Err(t, errs[0].Err, bbsdecode.ErrInvalidParameter)
	var ip *bbsdecode.InvalidParameter
	be.True(t, errors.As(errs[0].Err, &ip))
	be.Equal(t, ip.Command, "CsiEraseInDisplay")
	be.Equal(t, ip.Value, "99")

	rec = ansi("\x1b[99n")
	be.Equal(t, len(rec.Errors()), 1)
	be.Equal(t, len(rec.Commands()), 0)

	rec = ansi("\x1b[4;99;4h")
	be.Equal(t, len(rec.Errors()), 1)
	be.Equal(t, rec.Commands(), []any{
		bbsdecode.CsiSetMode{Mode: bbsdecode.InsertReplace},
		bbsdecode.CsiSetMode{Mode: bbsdecode.InsertReplace},
	})
}

func TestIncomplete(t *testing.T) {
	t.Parallel()
	rec := ansi("\x1b[12")
	errs := rec.Errors()
	be.Equal(t, len(errs), 1)
	be.Equal(t, errs[0].Level, bbsdecode.LevelWarning)
	var is *bbsdecode.IncompleteSequence
	be.True(t, errors.As(errs[0].Err, &is))
	be.Equal(t, is.State, "CsiParam")

	rec = ansi("\x0eT12")
	be.True(t, errors.As(rec.Errors()[0].Err, &is))
	be.Equal(t, is.State, "AnsiMusic/SetTempo")
}

func TestCancel(t *testing.T) {
	t.Parallel()
	rec := ansi("\x1b[12\x18A")
	be.Equal(t, rec.Text(), "A")
	be.Equal(t, len(rec.Commands()), 0)
	// ESC restarts a sequence
	be.Equal(t, ansi("\x1b[1\x1b[2J").Commands(), []any{bbsdecode.CsiEraseInDisplay{Mode: bbsdecode.DisplayAll}})
	// C0 controls inside a sequence still run
	be.Equal(t, ansi("\x1b[\r1A").Commands(), []any{
		bbsdecode.CarriageReturn{},
		bbsdecode.CsiMoveCursor{Direction: bbsdecode.Up, N: 1},
	})
}

func TestBrokenSequence(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		want  []any
		text  string
	}{
		{"late private marker", "\x1b[1?after", nil, "after"},
		{"bad intermediate", "\x1b[1 \"after", nil, "after"},
		{"digit after intermediate", "\x1b[1!2after", nil, "after"},
		{"bare apostrophe", "\x1b['after", []any{bbsdecode.CsiHorizontalPositionAbsolute{N: 1}}, "after"},
		{"apostrophe", "\x1b[7'after", []any{bbsdecode.CsiHorizontalPositionAbsolute{N: 7}}, "after"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := ansi(tt.input)
			be.Equal(t, rec.Commands(), tt.want)
			be.Equal(t, rec.Text(), tt.text)
			be.Equal(t, len(rec.Errors()), 0)
		})
	}
}

func TestSaturation(t *testing.T) {
	t.Parallel()
	be.Equal(t, ansi("\x1b[99999999999999999999A").Commands(), []any{
		bbsdecode.CsiMoveCursor{Direction: bbsdecode.Up, N: bbsdecode.MaxParam},
	})
	p := bbsdecode.ParseParams("99999999999999;1")
	be.Equal(t, p.Get(0, 0), bbsdecode.MaxParam)
	be.Equal(t, p.String(), "65535;1")
}

func TestNoPanic(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewPCG(1, 2))
	alphabet := []byte("\x1b\x0e\x07\x18[]P_\\;:?=<>*$ 0123456789ABCDEFGHJKLMNOPmhlnqrstuxyz~|#&@,xyr+-.G")
	input := make([]byte, 1<<16)
	for i := range input {
		if r.IntN(4) == 0 {
			input[i] = byte(r.IntN(256))
			continue
		}
		input[i] = alphabet[r.IntN(len(alphabet))]
	}
	cfg := bbsdecode.DefaultConfig()
	cfg.Music = bbsdecode.MusicBoth
	for _, p := range []bbsdecode.CommandParser{
		bbsdecode.NewParser(cfg),
		bbsdecode.NewIgsParser(cfg),
		bbsdecode.NewVT52Parser(bbsdecode.VT52Mixed),
		bbsdecode.NewAvatarParser(cfg),
	} {
		rec := &bbsdecode.Recorder{}
		p.Parse(input, rec)
		p.Flush(rec)
		rec.Reset()
		p.Parse([]byte("ok"), rec)
		be.Equal(t, rec.Text(), "ok")
	}
}

func TestStrings(t *testing.T) {
	t.Parallel()
	rec := ansi("\x1b]0;BBS\x07\x1b]2;Window\x1b\\\x1b]8;id=1;http://example.com\x07\x1b]4;1;rgb:ff/00/80;2;#abc\x07")
	be.Equal(t, rec.Commands(), []any{
		bbsdecode.SetTitle{Title: "BBS"},
		bbsdecode.SetWindowTitle{Title: "Window"},
		bbsdecode.Hyperlink{Params: "id=1", URI: "http://example.com"},
		bbsdecode.SetPaletteColor{Index: 1, R: 255, G: 0, B: 128},
		bbsdecode.SetPaletteColor{Index: 2, R: 0xaa, G: 0xbb, B: 0xcc},
	})
	rec = ansi("\x1b]4;1;red\x07\x1b]nope\x07")
	be.Equal(t, len(rec.Errors()), 2)

	rec = ansi("\x1b_hello\x1b\\\x1bPCTerm:Font:1:AAEC\x1b\\\x1bP0;1q#0~\x1b\\")
	be.Equal(t, rec.Commands(), []any{
		bbsdecode.ApsData("hello"),
		bbsdecode.LoadFont{Slot: 1, Data: []byte{0, 1, 2}},
		bbsdecode.Sixel{VerticalScale: 2, Transparent: true, Data: []byte("#0~")},
	})
}

func TestMaxString(t *testing.T) {
	t.Parallel()
	cfg := bbsdecode.DefaultConfig()
	cfg.MaxString = 4
	rec := decode(cfg, "\x1b]0;abcdef\x07after")
	be.Equal(t, len(rec.Commands()), 0)
	be.Equal(t, len(rec.Errors()), 1)
	be.Err(t, rec.Errors()[0].Err, bbsdecode.ErrMalformedSequence)
	be.Equal(t, rec.Text(), "after")
}

func TestMacros(t *testing.T) {
	t.Parallel()
	rec := ansi("\x1bP0;0;0!zHello\x1b\\\x1bP1;0;0!zWorld\x1b\\\x1b[?63;1n")
	be.Equal(t, rec.Commands(), []any{bbsdecode.RequestMemoryChecksumReport{ID: 1, Sum: 0x03FC}})

	rec = ansi("\x1bP0;0;0!z\x1b[1m\x1b\\\x1b[0*z")
	be.Equal(t, rec.Commands(), []any{sgr(bbsdecode.SgrIntensity{Value: bbsdecode.IntensityBold})})

	rec = ansi("\x1bP1;0;1!z1B5B324A\x1b\\\x1bP2;0;1!z!3;41;\x1b\\\x1b[1*z\x1b[2*z\x1b[9*z")
	be.Equal(t, rec.Commands(), []any{bbsdecode.CsiEraseInDisplay{Mode: bbsdecode.DisplayAll}})
	be.Equal(t, rec.Text(), "AAA")

	// a macro that invokes itself stops at the nesting limit
	rec = ansi("\x1bP3;0;0!zx\x1b[3*z\x1b\\\x1b[3*z")
	be.Equal(t, rec.Text(), "xxxxxxxx")
}

func TestMacroFanOut(t *testing.T) {
	t.Parallel()
	// each level invokes the macro 20 times, 20^8 expansions without a limit
	body := strings.Repeat("\x1b[0*z", 20) + "\x1b[A"
	cfg := bbsdecode.DefaultConfig()
	cfg.MaxString = 4096
	rec := decode(cfg, "\x1bP0;0;0!z"+body+"\x1b\\\x1b[0*z\x1b[0*zdone")
	be.Equal(t, rec.Text(), "done")
	be.True(t, len(rec.Commands()) > 0)
	be.True(t, len(rec.Commands()) <= 4096/len(body))
	errs := rec.Errors()
	be.Equal(t, len(errs), 1)
	be.Equal(t, errs[0].Level, bbsdecode.LevelWarning)
	be.Err(t, errs[0].Err, bbsdecode.ErrMalformedSequence)

	// the allowance is renewed by the next call
	p := bbsdecode.NewParser(cfg)
	rec = &bbsdecode.Recorder{}
	p.Parse([]byte("\x1bP0;0;0!z\x1b[A\x1b\\"), rec)
	for range 3 {
		p.Parse([]byte("\x1b[0*z"), rec)
	}
	be.Equal(t, len(rec.Commands()), 3)
	be.Equal(t, len(rec.Errors()), 0)
}

func TestExtensions(t *testing.T) {
	t.Parallel()
	be.Equal(t, ansi("\x1b[5 q").Commands(), []any{
		bbsdecode.CsiSetCaretStyle{Blinking: true, Shape: bbsdecode.CaretBar},
	})
	be.Equal(t, ansi("\x1b[8;25;200t").Commands(), []any{
		bbsdecode.CsiResizeTerminal{Height: 25, Width: 132},
	})
	be.Equal(t, ansi("\x1b[1;255;0;0t").Commands(), []any{
		sgr(bbsdecode.SgrForeground{Color: bbsdecode.RGB(255, 0, 0)}),
	})
	be.Equal(t, ansi("\x1b[0;40 D").Commands(), []any{bbsdecode.CsiFontSelection{Slot: 0, Font: 40}})
	be.Equal(t, ansi("\x1b[0;8*r").Commands(), []any{
		bbsdecode.CsiSelectCommunicationSpeed{Line: bbsdecode.CommHostTransmit, Baud: 38400},
	})
	be.Equal(t, ansi("\x1b[5n\x1b[6n\x1b[255n\x1b[c\x1b[>c\x1b[<c").Commands(), []any{
		bbsdecode.RequestDeviceStatusReport{},
		bbsdecode.RequestCursorPositionReport{},
		bbsdecode.RequestScreenSizeReport{},
		bbsdecode.RequestDeviceAttributes{},
		bbsdecode.RequestSecondaryDeviceAttributes{},
		bbsdecode.RequestExtendedDeviceAttributes{},
	})
	be.Equal(t, ansi("\x1b[1;2;3;4r").Commands(), []any{
		bbsdecode.CsiSetScrollingRegion{Top: 1, Bottom: 2, Left: 3, Right: 4},
	})
}

func TestSpecialKeyRoundTrip(t *testing.T) {
	t.Parallel()
	for _, key := range bbsdecode.SpecialKeys() {
		seq := key.ToSequence()
		be.True(t, seq != "")
		be.Equal(t, ansi(seq).Commands(), []any{bbsdecode.CsiSpecialKey{Key: key}})
	}
}

func TestCodePage(t *testing.T) {
	t.Parallel()
	rec := ansi("\x01\x02\x07\xae")
	be.Equal(t, rec.Text(), "\x01\x02\xae")
	be.Equal(t, rec.Commands(), []any{bbsdecode.Bell{}})
	be.Equal(t, bbsdecode.DecodeText(bbsdecode.DefaultConfig().Charset, []byte(rec.Text())), "☺☻«")

	cfg := bbsdecode.DefaultConfig()
	cfg.Charset = nil
	rec = decode(cfg, "\x01é")
	be.Equal(t, rec.Text(), "é")
}

func TestDecode(t *testing.T) {
	t.Parallel()
	rec := &bbsdecode.Recorder{}
	p := bbsdecode.NewParser(bbsdecode.DefaultConfig())
	be.Err(t, bbsdecode.Decode(t.Context(), nil, p, rec, 0), bbsdecode.ErrReader)
	be.Err(t, bbsdecode.Decode(t.Context(), strings.NewReader(""), nil, rec, 0), bbsdecode.ErrParser)
	be.Err(t, bbsdecode.Decode(t.Context(), strings.NewReader(""), p, nil, 0), bbsdecode.ErrSink)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	err := bbsdecode.Decode(ctx, strings.NewReader("text"), p, rec, 0)
	be.Err(t, err, context.Canceled)
}
