package bbsdecode

import (
	"bytes"
	"strconv"
)

const (
	avtCommand = 0x16 // ^V introduces an Avatar command
	avtRepeat  = 0x19 // ^Y repeats a character
)

type avatarState uint8

const (
	avatarGround avatarState = iota
	avatarCommand
	avatarColor
	avatarRow
	avatarCol
	avatarRepeatChar
	avatarRepeatCount
)

var avatarStateNames = [...]string{
	"Ground", "ReadCommand", "ReadColor", "ReadGotoRow", "ReadGotoCol", "ReadRepeatChar", "ReadRepeatCount",
}

func (s avatarState) String() string {
	if int(s) < len(avatarStateNames) {
		return avatarStateNames[s]
	}
	return "avatarState(" + strconv.Itoa(int(s)) + ")"
}

// AvatarParser decodes AVT/0, the Advanced Video Attribute Terminal
// Assembler and Recreator of FidoNet BBSes.
//
// ^V starts a command, ^V^A attr sets the colours from a DOS attribute
// byte, ^V^H row col places the cursor and ^Y char count repeats a
// character. Everything else, ANSI sequences included, goes to an
// ANSI [Parser], so ^V and ^Y inside an open ANSI sequence are not commands.
// An AvatarParser is not safe for concurrent use.
type AvatarParser struct {
	ansi  *Parser
	state avatarState
	row   byte
	char  byte
}

// NewAvatarParser returns a parser in the ground state.
func NewAvatarParser(cfg Config) *AvatarParser {
	return &AvatarParser{ansi: NewParser(cfg)}
}

// Parse decodes the chunk, reporting everything it finds to sink.
func (p *AvatarParser) Parse(input []byte, sink CommandSink) {
	start := 0
	for i, b := range input {
		if p.state == avatarGround {
			if b != avtCommand && b != avtRepeat {
				continue
			}
			p.ansi.Parse(input[start:i], sink)
			start = i
			if p.ansi.State() != StateGround {
				continue
			}
		}
		start = i + 1
		p.next(b, sink)
	}
	if p.state == avatarGround {
		p.ansi.Parse(input[start:], sink)
	}
}

// Flush reports a command that is still open and flushes the ANSI parser.
func (p *AvatarParser) Flush(sink CommandSink) {
	if p.state != avatarGround {
		sink.ReportError(&IncompleteSequence{State: "Avatar/" + p.state.String()}, LevelWarning)
	}
	p.state = avatarGround
	p.ansi.Flush(sink)
}

//nolint:cyclop
func (p *AvatarParser) next(b byte, sink CommandSink) {
	state := p.state
	p.state = avatarGround
	switch state {
	case avatarGround:
		switch b {
		case avtCommand:
			p.state = avatarCommand
		case avtRepeat:
			p.state = avatarRepeatChar
		}
	case avatarCommand:
		p.command(b, sink)
	case avatarColor:
		fg, bg := dosAttribute(b)
		sink.Emit(CsiSelectGraphicRendition{Attr: SgrForeground{Base(fg)}})
		sink.Emit(CsiSelectGraphicRendition{Attr: SgrBackground{Base(bg)}})
	case avatarRow:
		p.row = b
		p.state = avatarCol
	case avatarCol:
		sink.Emit(CsiCursorPosition{Row: uint16(p.row), Col: uint16(b)})
	case avatarRepeatChar:
		p.char = b
		p.state = avatarRepeatCount
	case avatarRepeatCount:
		if b > 0 {
			sink.Print(bytes.Repeat([]byte{p.char}, int(b)))
		}
	}
}

//nolint:mnd
func (p *AvatarParser) command(b byte, sink CommandSink) {
	switch b {
	case 1:
		p.state = avatarColor
	case 2:
		sink.Emit(CsiSelectGraphicRendition{Attr: SgrBlink{BlinkSlow}})
	case 3:
		sink.Emit(CsiMoveCursor{Direction: Up, N: 1})
	case 4:
		sink.Emit(CsiMoveCursor{Direction: Down, N: 1})
	case 5:
		sink.Emit(CsiMoveCursor{Direction: Left, N: 1})
	case 6:
		sink.Emit(CsiMoveCursor{Direction: Right, N: 1})
	case 7:
		sink.Emit(CsiEraseInLine{Mode: LineCursorToEnd})
	case 8:
		p.state = avatarRow
	default:
		sink.ReportError(invalid("Avatar", int(b), "a command from 1 to 8"), LevelWarning)
	}
}

// dosAttribute splits a DOS attribute byte into foreground and background
// colours in ANSI order. Bit 3 is the bright foreground and bit 7 the
// bright background of iCE colour.
func dosAttribute(attr byte) (uint8, uint8) {
	return dosColor(attr & 0x0f), dosColor(attr >> 4) //nolint:mnd
}

// dosColor swaps the red and blue bits of a DOS colour index.
func dosColor(i uint8) uint8 {
	return i&^5 | (i&1)<<2 | (i&4)>>2 //nolint:mnd
}
