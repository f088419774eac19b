package bbsdecode_test

import (
	"fmt"
	"testing"

	"github.com/bengarrett/bbsdecode"
	"github.com/nalgeon/be"
)

func vt52(mode bbsdecode.VT52Mode, input string) *bbsdecode.Recorder {
	rec := &bbsdecode.Recorder{}
	p := bbsdecode.NewVT52Parser(mode)
	p.Parse([]byte(input), rec)
	p.Flush(rec)
	return rec
}

func ExampleVT52Parser() {
	rec := &bbsdecode.Recorder{}
	p := bbsdecode.NewVT52Parser(bbsdecode.VT52Standard)
	p.Parse([]byte("\x1bE\x1bY%*Hi\x1bb1"), rec)
	p.Flush(rec)
	for _, cmd := range rec.Commands() {
		fmt.Printf("%+v\n", cmd)
	}
	fmt.Println(rec.Text())
	// Output: {Mode:All}
	// {Row:1 Col:1}
	// {Row:6 Col:11}
	// {Attr:{Color:Base(1)}}
	// Hi
}

func TestVT52Parser(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		want  []any
	}{
		{"cursor", "\x1bA\x1bB\x1bC\x1bD", []any{
			bbsdecode.CsiMoveCursor{Direction: bbsdecode.Up, N: 1},
			bbsdecode.CsiMoveCursor{Direction: bbsdecode.Down, N: 1},
			bbsdecode.CsiMoveCursor{Direction: bbsdecode.Right, N: 1},
			bbsdecode.CsiMoveCursor{Direction: bbsdecode.Left, N: 1},
		}},
		{"home", "\x1bH", []any{bbsdecode.CsiCursorPosition{Row: 1, Col: 1}}},
		{"erase", "\x1bJ\x1bK\x1bd\x1bo\x1bl", []any{
			bbsdecode.CsiEraseInDisplay{Mode: bbsdecode.DisplayCursorToEnd},
			bbsdecode.CsiEraseInLine{Mode: bbsdecode.LineCursorToEnd},
			bbsdecode.CsiEraseInDisplay{Mode: bbsdecode.DisplayStartToCursor},
			bbsdecode.CsiEraseInLine{Mode: bbsdecode.LineStartToCursor},
			bbsdecode.CsiEraseInLine{Mode: bbsdecode.LineAll},
		}},
		{"lines", "\x1bL\x1bM\x1bI", []any{
			bbsdecode.CsiInsertLine{N: 1},
			bbsdecode.CsiDeleteLine{N: 1},
			bbsdecode.EscReverseIndex{},
		}},
		{"cursor modes", "\x1be\x1bf\x1bv\x1bw", []any{
			bbsdecode.CsiDecPrivateModeSet{Mode: bbsdecode.CursorVisible},
			bbsdecode.CsiDecPrivateModeReset{Mode: bbsdecode.CursorVisible},
			bbsdecode.CsiDecPrivateModeSet{Mode: bbsdecode.AutoWrap},
			bbsdecode.CsiDecPrivateModeReset{Mode: bbsdecode.AutoWrap},
		}},
		{"save restore", "\x1bj\x1bk", []any{
			bbsdecode.CsiSaveCursorPosition{},
			bbsdecode.CsiRestoreCursorPosition{},
		}},
		{"insert count", "\x1bi\x03\x1bi\x00", []any{bbsdecode.CsiInsertLine{N: 3}}},
		{"colour bytes", "\x01\x1bc4", []any{
			sgr(bbsdecode.SgrForeground{Color: bbsdecode.Base(1)}),
			sgr(bbsdecode.SgrBackground{Color: bbsdecode.Base(4)}),
		}},
		{"reverse video", "\x1bp\x1b3\x02\x1bq\x1b3\x02", []any{
			sgr(bbsdecode.SgrBackground{Color: bbsdecode.Base(2)}),
			sgr(bbsdecode.SgrForeground{Color: bbsdecode.Base(2)}),
		}},
		{"controls", "\b\r\n\x0c", []any{
			bbsdecode.Backspace{},
			bbsdecode.CarriageReturn{},
			bbsdecode.LineFeed{},
			bbsdecode.Backspace{},
		}},
		{"unknown escape", "\x1bz", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := vt52(bbsdecode.VT52Mixed, tt.input)
			be.Equal(t, rec.Commands(), tt.want)
			be.Equal(t, len(rec.Errors()), 0)
		})
	}
}

func TestVT52Modes(t *testing.T) {
	t.Parallel()
	// the Atari ST places the cursor with raw bytes
	rec := vt52(bbsdecode.VT52Atari, "\x1bY\x05\x0a")
	be.Equal(t, rec.Commands(), []any{bbsdecode.CsiCursorPosition{Row: 6, Col: 11}})
	rec = vt52(bbsdecode.VT52Atari, "\x1bb1")
	be.Equal(t, len(rec.Commands()), 0)
	be.Err(t, rec.Errors()[0].Err, bbsdecode.ErrInvalidParameter)

	// a standard VT52 has no colour control codes
	rec = vt52(bbsdecode.VT52Standard, "\x01\x1bb\x01")
	be.Equal(t, len(rec.Commands()), 0)
	be.Equal(t, len(rec.Errors()), 1)

	rec = vt52(bbsdecode.VT52Standard, "\x1bY\x01")
	be.Equal(t, rec.Errors()[0].Level, bbsdecode.LevelError)
	be.Equal(t, bbsdecode.VT52Atari.String(), "atari")
}

func TestVT52Text(t *testing.T) {
	t.Parallel()
	rec := vt52(bbsdecode.VT52Mixed, "Hello\x1bCWorld\x1bY")
	be.Equal(t, rec.Events, []any{
		bbsdecode.Printed("Hello"),
		bbsdecode.CsiMoveCursor{Direction: bbsdecode.Right, N: 1},
		bbsdecode.Printed("World"),
		bbsdecode.Reported{
			Err:   &bbsdecode.IncompleteSequence{State: "VT52/ReadCursorLine"},
			Level: bbsdecode.LevelWarning,
		},
	})
}

func TestVT52Chunking(t *testing.T) {
	t.Parallel()
	input := "AB\x1bY%*\x1bb1\x1bi\x02C\x1bp\x03D"
	want := vt52(bbsdecode.VT52Mixed, input).Events
	for i := range len(input) + 1 {
		rec := &bbsdecode.Recorder{}
		p := bbsdecode.NewVT52Parser(bbsdecode.VT52Mixed)
		p.Parse([]byte(input[:i]), rec)
		p.Parse([]byte(input[i:]), rec)
		p.Flush(rec)
		be.Equal(t, rec.Events, want)
	}
}
