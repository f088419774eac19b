package bbsdecode_test

import (
	"fmt"
	"testing"

	"github.com/bengarrett/bbsdecode"
	"github.com/nalgeon/be"
)

func avatar(input string) *bbsdecode.Recorder {
	rec := &bbsdecode.Recorder{}
	p := bbsdecode.NewAvatarParser(bbsdecode.DefaultConfig())
	p.Parse([]byte(input), rec)
	p.Flush(rec)
	return rec
}

func ExampleAvatarParser() {
	rec := &bbsdecode.Recorder{}
	p := bbsdecode.NewAvatarParser(bbsdecode.DefaultConfig())
	p.Parse([]byte("\x16\x01\x1fHi\x19-\x05\x16\x08\x02\x03"), rec)
	p.Flush(rec)
	for _, cmd := range rec.Commands() {
		fmt.Printf("%+v\n", cmd)
	}
	fmt.Println(rec.Text())
	// Output: {Attr:{Color:Base(15)}}
	// {Attr:{Color:Base(4)}}
	// {Row:2 Col:3}
	// Hi-----
}

func TestAvatar(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		want  []any
	}{
		{"dos attribute", "\x16\x01\x4e", []any{
			sgr(bbsdecode.SgrForeground{Color: bbsdecode.Base(11)}),
			sgr(bbsdecode.SgrBackground{Color: bbsdecode.Base(1)}),
		}},
		{"ice background", "\x16\x01\x90", []any{
			sgr(bbsdecode.SgrForeground{Color: bbsdecode.Base(0)}),
			sgr(bbsdecode.SgrBackground{Color: bbsdecode.Base(12)}),
		}},
		{"blink", "\x16\x02", []any{sgr(bbsdecode.SgrBlink{Speed: bbsdecode.BlinkSlow})}},
		{"cursor", "\x16\x03\x16\x04\x16\x05\x16\x06", []any{
			bbsdecode.CsiMoveCursor{Direction: bbsdecode.Up, N: 1},
			bbsdecode.CsiMoveCursor{Direction: bbsdecode.Down, N: 1},
			bbsdecode.CsiMoveCursor{Direction: bbsdecode.Left, N: 1},
			bbsdecode.CsiMoveCursor{Direction: bbsdecode.Right, N: 1},
		}},
		{"clear to end of line", "\x16\x07", []any{bbsdecode.CsiEraseInLine{Mode: bbsdecode.LineCursorToEnd}}},
		{"goto", "\x16\x08\x0a\x28", []any{bbsdecode.CsiCursorPosition{Row: 10, Col: 40}}},
		{"clear screen", "\x0c", []any{bbsdecode.FormFeed{}}},
		{"ansi", "\x1b[2J\x16\x03\x1b[1m", []any{
			bbsdecode.CsiEraseInDisplay{Mode: bbsdecode.DisplayAll},
			bbsdecode.CsiMoveCursor{Direction: bbsdecode.Up, N: 1},
			sgr(bbsdecode.SgrIntensity{Value: bbsdecode.IntensityBold}),
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := avatar(tt.input)
			be.Equal(t, rec.Commands(), tt.want)
			be.Equal(t, len(rec.Errors()), 0)
		})
	}
}

func TestAvatarRepeat(t *testing.T) {
	t.Parallel()
	be.Equal(t, avatar("a\x19b\x04c").Text(), "abbbbc")
	be.Equal(t, avatar("\x19b\x00c").Text(), "c")
	// ^Y inside an ANSI sequence is not a repeat
	rec := avatar("\x1b[1\x19;31m")
	be.Equal(t, rec.Commands(), []any{
		sgr(bbsdecode.SgrIntensity{Value: bbsdecode.IntensityBold}),
		sgr(bbsdecode.SgrForeground{Color: bbsdecode.Base(1)}),
	})
	be.Equal(t, rec.Text(), "")
}

func TestAvatarErrors(t *testing.T) {
	t.Parallel()
	rec := avatar("\x16\x7fA")
	be.Equal(t, rec.Text(), "A")
	errs := rec.Errors()
	be.Equal(t, len(errs), 1)
	be.Equal(t, errs[0].Level, bbsdecode.LevelWarning)
	be.Err(t, errs[0].Err, bbsdecode.ErrInvalidParameter)

	rec = avatar("\x16\x08\x01")
	be.Equal(t, rec.Errors(), []bbsdecode.Reported{{
		Err:   &bbsdecode.IncompleteSequence{State: "Avatar/ReadGotoCol"},
		Level: bbsdecode.LevelWarning,
	}})
}

func TestAvatarChunking(t *testing.T) {
	t.Parallel()
	input := "AB\x16\x01\x1f\x1b[2J\x19x\x03C\x16\x08\x05\x06\x1b[1;3\x19m"
	want := avatar(input).Events
	for i := range len(input) + 1 {
		rec := &bbsdecode.Recorder{}
		p := bbsdecode.NewAvatarParser(bbsdecode.DefaultConfig())
		p.Parse([]byte(input[:i]), rec)
		p.Parse([]byte(input[i:]), rec)
		p.Flush(rec)
		be.Equal(t, rec.Events, want)
	}
}
