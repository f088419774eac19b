package bbsdecode

import (
	"fmt"
	"strconv"
)

// ParserState is the state of the ANSI state machine between two bytes.
type ParserState uint8

const (
	StateGround          ParserState = iota // StateGround prints text and runs C0 controls
	StateEscape                             // StateEscape follows ESC
	StateCsiEntry                           // StateCsiEntry follows ESC [
	StateCsiParam                           // StateCsiParam collects parameters
	StateCsiIntermediate                    // StateCsiIntermediate collected an intermediate byte
	StateOscString                          // StateOscString collects an OSC payload
	StateOscEscape                          // StateOscEscape follows ESC inside an OSC payload
	StateDcsString                          // StateDcsString collects a DCS payload
	StateDcsEscape                          // StateDcsEscape follows ESC inside a DCS payload
	StateApcString                          // StateApcString collects an APC payload
	StateApcEscape                          // StateApcEscape follows ESC inside an APC payload
	StateMusic                              // StateMusic decodes ANSI Music
)

var stateNames = [...]string{
	"Ground", "Escape", "CsiEntry", "CsiParam", "CsiIntermediate",
	"OscString", "OscEscape", "DcsString", "DcsEscape", "ApcString", "ApcEscape", "AnsiMusic",
}

func (s ParserState) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "ParserState(" + strconv.Itoa(int(s)) + ")"
}

// maxMacroDepth limits macros that invoke other macros.
const maxMacroDepth = 8

// Parser decodes ANSI/ECMA-48 streams.
// A Parser is not safe for concurrent use, use one parser per connection.
type Parser struct {
	cfg      Config
	print    printTable
	state    ParserState
	params   Params
	private  byte
	inter    byte
	buf      []byte
	overflow bool
	music    music
	macros   map[int][]byte
	depth    int
	replay   int // macro bytes left to replay in this Parse call
}

// NewParser returns a parser in the ground state.
func NewParser(cfg Config) *Parser {
	if cfg.MaxString <= 0 {
		cfg.MaxString = DefaultMaxString
	}
	return &Parser{
		cfg:    cfg,
		print:  newPrintTable(cfg.Charset),
		music:  newMusic(cfg.LenientMusic),
		macros: make(map[int][]byte),
	}
}

// State returns the current state.
func (p *Parser) State() ParserState {
	return p.state
}

// MusicState returns the state of the music decoder.
func (p *Parser) MusicState() MusicState {
	return p.music.state
}

// Parse decodes the chunk, reporting everything it finds to sink.
// A sequence left open at the end of the chunk continues with the next call.
func (p *Parser) Parse(input []byte, sink CommandSink) {
	if p.depth == 0 {
		p.replay = p.cfg.MaxString
	}
	start := -1
	for i, b := range input {
		if p.state == StateGround {
			if p.print[b] {
				if start < 0 {
					start = i
				}
				continue
			}
			if start >= 0 {
				sink.Print(input[start:i])
				start = -1
			}
			p.ground(b, sink)
			continue
		}
		p.next(b, sink)
	}
	if start >= 0 {
		sink.Print(input[start:])
	}
}

// Flush reports a sequence that is still open and returns to the ground state.
func (p *Parser) Flush(sink CommandSink) {
	if p.state != StateGround {
		state := p.state.String()
		if p.state == StateMusic {
			state += "/" + p.music.state.String()
		}
		sink.ReportError(&IncompleteSequence{State: state}, LevelWarning)
	}
	if p.state == StateMusic {
		p.music.abandon()
	}
	p.reset()
}

func (p *Parser) reset() {
	p.state = StateGround
	p.params.reset()
	p.private = 0
	p.inter = 0
	p.buf = p.buf[:0]
	p.overflow = false
}

func (p *Parser) next(b byte, sink CommandSink) {
	switch p.state {
	case StateEscape:
		p.escape(b, sink)
	case StateCsiEntry, StateCsiParam, StateCsiIntermediate:
		p.csi(b, sink)
	case StateOscString, StateDcsString, StateApcString:
		p.str(b, sink)
	case StateOscEscape, StateDcsEscape, StateApcEscape:
		p.strEscape(b, sink)
	case StateMusic:
		p.playMusic(b, sink)
	case StateGround:
		p.ground(b, sink)
	}
}

// ground handles a byte that does not print.
func (p *Parser) ground(b byte, sink CommandSink) {
	switch b {
	case ESC:
		p.state = StateEscape
	case SO:
		if p.cfg.Music != MusicOff {
			p.startMusic(false)
		}
	default:
		p.execute(b, sink)
	}
}

// execute runs a C0 control or DEL. Other controls are ignored.
func (p *Parser) execute(b byte, sink CommandSink) {
	switch b {
	case BEL:
		sink.Emit(Bell{})
	case BS:
		sink.Emit(Backspace{})
	case HT:
		sink.Emit(Tab{})
	case LF:
		sink.Emit(LineFeed{})
	case FF:
		sink.Emit(FormFeed{})
	case CR:
		sink.Emit(CarriageReturn{})
	case DEL:
		sink.Emit(Delete{})
	}
}

func (p *Parser) escape(b byte, sink CommandSink) {
	p.state = StateGround
	switch b {
	case '[':
		p.params.reset()
		p.private = 0
		p.inter = 0
		p.state = StateCsiEntry
	case ']':
		p.beginString(StateOscString)
	case 'P':
		p.beginString(StateDcsString)
	case '_':
		p.beginString(StateApcString)
	case 'D':
		sink.Emit(EscIndex{})
	case 'E':
		sink.Emit(EscNextLine{})
	case 'H':
		sink.Emit(EscSetTab{})
	case 'M':
		sink.Emit(EscReverseIndex{})
	case '7':
		sink.Emit(EscSaveCursor{})
	case '8':
		sink.Emit(EscRestoreCursor{})
	case 'c':
		sink.Emit(EscReset{})
	case ESC:
		p.state = StateEscape
	case CAN, EOF:
	default:
		if b < 0x20 { //nolint:mnd
			p.state = StateEscape
			p.execute(b, sink)
			return
		}
		sink.ReportError(malformed(fmt.Sprintf("unknown escape sequence ESC %q", rune(b))), LevelWarning)
	}
}

// csi collects a control sequence. A byte that breaks the grammar drops
// the sequence and the parser returns to the ground state.
//
//nolint:cyclop
func (p *Parser) csi(b byte, sink CommandSink) {
	switch {
	case b == ESC:
		p.state = StateEscape
		return
	case b == CAN || b == EOF:
		p.reset()
		return
	case b < 0x20: //nolint:mnd
		p.execute(b, sink)
		return
	case b == DEL:
		return
	}
	final := b >= 0x40 && b <= 0x7e
	switch p.state {
	case StateCsiEntry, StateCsiParam:
		switch {
		case isDigit(b):
			p.params.digit(b)
			p.state = StateCsiParam
		case b == ';' || b == ':':
			p.params.separator(b)
			p.state = StateCsiParam
		case b >= '<' && b <= '?':
			if p.state != StateCsiEntry {
				p.reset()
				return
			}
			p.private = b
			p.state = StateCsiParam
		case b == '\'' && p.private == 0:
			p.dispatch(b, sink)
		case b >= 0x20 && b <= 0x2f:
			p.inter = b
			p.state = StateCsiIntermediate
		case final:
			p.dispatch(b, sink)
		default:
			p.reset()
		}
	case StateCsiIntermediate:
		if final {
			p.dispatch(b, sink)
			return
		}
		p.reset()
	}
}

func (p *Parser) beginString(s ParserState) {
	p.buf = p.buf[:0]
	p.overflow = false
	p.state = s
}

// collect appends to the string payload, reporting once when it overflows.
func (p *Parser) collect(sink CommandSink, bs ...byte) {
	if p.overflow {
		return
	}
	if len(p.buf)+len(bs) > p.cfg.MaxString {
		p.overflow = true
		sink.ReportError(malformed("string payload exceeds "+strconv.Itoa(p.cfg.MaxString)+" bytes"), LevelWarning)
		return
	}
	p.buf = append(p.buf, bs...)
}

func (p *Parser) str(b byte, sink CommandSink) {
	switch {
	case b == ESC:
		p.state++ // each string state is followed by its escape state
	case b == BEL && p.state == StateOscString:
		p.endString(StateOscString, sink)
	case b == CAN || b == EOF:
		p.reset()
	default:
		p.collect(sink, b)
	}
}

// strEscape follows an ESC inside a string. ESC \ ends the string,
// anything else is kept as part of the payload.
func (p *Parser) strEscape(b byte, sink CommandSink) {
	kind := p.state - 1
	switch b {
	case '\\':
		p.endString(kind, sink)
	case ESC:
		p.collect(sink, ESC)
	default:
		p.collect(sink, ESC, b)
		p.state = kind
	}
}

func (p *Parser) endString(kind ParserState, sink CommandSink) {
	defer p.reset()
	if p.overflow {
		return
	}
	switch kind {
	case StateOscString:
		p.osc(sink)
	case StateDcsString:
		p.dcs(sink)
	case StateApcString:
		sink.Aps(p.buf)
	}
}

func (p *Parser) startMusic(style bool) {
	p.music.begin(style)
	p.state = StateMusic
}

func (p *Parser) playMusic(b byte, sink CommandSink) {
	switch p.music.feed(b) {
	case musicEnd:
		sink.PlayMusic(p.music.take())
		p.state = StateGround
	case musicAbort:
		p.music.abandon()
		p.state = StateGround
	case musicNext:
	}
}

// invoke parses a stored macro as if it arrived from the stream.
// The bytes replayed by one call to Parse never exceed MaxString.
func (p *Parser) invoke(id int, sink CommandSink) {
	data, ok := p.macros[id]
	if !ok || p.depth >= maxMacroDepth || p.replay < 0 {
		return
	}
	if len(data) > p.replay {
		p.replay = -1
		sink.ReportError(malformed("macro expansion exceeds "+strconv.Itoa(p.cfg.MaxString)+" bytes"), LevelWarning)
		return
	}
	p.replay -= len(data)
	p.depth++
	p.Parse(data, sink)
	p.depth--
}
