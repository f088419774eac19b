package bbsdecode

import "strconv"

// VT52Mode selects the colour and cursor encodings of a [VT52Parser].
type VT52Mode uint8

const (
	VT52Mixed    VT52Mode = iota // VT52Mixed accepts the Atari ST and the VT52 colour bytes
	VT52Atari                    // VT52Atari uses the raw bytes of the Atari ST TOS
	VT52Standard                 // VT52Standard uses the printable bytes of the DEC VT52
)

func (m VT52Mode) String() string {
	switch m {
	case VT52Mixed:
		return "mixed"
	case VT52Atari:
		return "atari"
	case VT52Standard:
		return "standard"
	}
	return "VT52Mode(" + strconv.Itoa(int(m)) + ")"
}

type vt52State uint8

const (
	vt52Ground vt52State = iota
	vt52Escape
	vt52FgColor
	vt52BgColor
	vt52CursorLine
	vt52CursorRow
	vt52InsertCount
)

var vt52StateNames = [...]string{
	"Default", "Escape", "ReadFgColor", "ReadBgColor", "ReadCursorLine", "ReadCursorRow", "ReadInsertLineCount",
}

func (s vt52State) String() string {
	if int(s) < len(vt52StateNames) {
		return vt52StateNames[s]
	}
	return "vt52State(" + strconv.Itoa(int(s)) + ")"
}

// VT52Parser decodes the DEC VT52 terminal and the Atari ST text layer.
// Sequences are ESC followed by a letter, ESC Y line column places the
// cursor and ESC b and ESC c select the colours.
// A VT52Parser is not safe for concurrent use.
type VT52Parser struct {
	mode    VT52Mode
	state   vt52State
	line    int
	reverse bool
}

// NewVT52Parser returns a parser in the default state.
func NewVT52Parser(mode VT52Mode) *VT52Parser {
	return &VT52Parser{mode: mode}
}

// Mode returns the colour and cursor encoding.
func (p *VT52Parser) Mode() VT52Mode {
	return p.mode
}

// Parse decodes the chunk, reporting everything it finds to sink.
func (p *VT52Parser) Parse(input []byte, sink CommandSink) {
	start := -1
	for i, b := range input {
		if p.state == vt52Ground && b >= 0x20 { //nolint:mnd
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			sink.Print(input[start:i])
			start = -1
		}
		p.next(b, sink)
	}
	if start >= 0 {
		sink.Print(input[start:])
	}
}

// Flush reports a sequence that is still open and returns to the default state.
// Reverse video is kept.
func (p *VT52Parser) Flush(sink CommandSink) {
	if p.state != vt52Ground {
		sink.ReportError(&IncompleteSequence{State: "VT52/" + p.state.String()}, LevelWarning)
	}
	p.state = vt52Ground
}

//nolint:cyclop
func (p *VT52Parser) next(b byte, sink CommandSink) {
	state := p.state
	p.state = vt52Ground
	switch state {
	case vt52Ground:
		p.ground(b, sink)
	case vt52Escape:
		p.escape(b, sink)
	case vt52FgColor, vt52BgColor:
		c, ok := vt52Color(b, p.mode)
		if !ok {
			sink.ReportError(invalid("VT52Color", int(b), p.colorRange()), LevelError)
			return
		}
		p.sgr(Base(c), state == vt52BgColor, sink)
	case vt52CursorLine:
		line, ok := vt52Line(b, p.mode)
		if !ok {
			sink.ReportError(invalid("VT52CursorPosition", int(b), "a line byte"), LevelError)
			return
		}
		p.line = line
		p.state = vt52CursorRow
	case vt52CursorRow:
		col, ok := vt52Column(b, p.mode)
		if !ok {
			sink.ReportError(invalid("VT52CursorPosition", int(b), "a column byte"), LevelError)
			return
		}
		sink.Emit(CsiCursorPosition{Row: uint16(p.line), Col: uint16(col)}) //nolint:gosec
	case vt52InsertCount:
		if b > 0 {
			sink.Emit(CsiInsertLine{N: uint16(b)})
		}
	}
}

func (p *VT52Parser) ground(b byte, sink CommandSink) {
	switch b {
	case ESC:
		p.state = vt52Escape
	case BS, VT, FF:
		sink.Emit(Backspace{})
	case CR:
		sink.Emit(CarriageReturn{})
	case LF:
		sink.Emit(LineFeed{})
	default:
		if b <= 0x0f && p.mode != VT52Standard { //nolint:mnd
			p.sgr(Base(b), false, sink)
		}
	}
}

func (p *VT52Parser) escape(b byte, sink CommandSink) {
	if vt52Command(b, sink) {
		return
	}
	switch b {
	case 'Y':
		p.state = vt52CursorLine
	case '3', 'b':
		p.state = vt52FgColor
	case '4', 'c':
		p.state = vt52BgColor
	case 'i':
		p.state = vt52InsertCount
	case 'p':
		p.reverse = true
	case 'q':
		p.reverse = false
	}
}

func (p *VT52Parser) sgr(c Color, background bool, sink CommandSink) {
	if background != p.reverse {
		sink.Emit(CsiSelectGraphicRendition{Attr: SgrBackground{c}})
		return
	}
	sink.Emit(CsiSelectGraphicRendition{Attr: SgrForeground{c}})
}

func (p *VT52Parser) colorRange() string {
	switch p.mode {
	case VT52Atari:
		return "a colour code 0x00 to 0x0f"
	case VT52Standard:
		return "a colour digit '0' to '?'"
	}
	return "a colour code 0x00 to 0x0f or '0' to '?'"
}

// vt52Command emits the VT52 escape sequences that take no argument
// and reports whether b was one of them.
//
//nolint:cyclop
func vt52Command(b byte, sink CommandSink) bool {
	switch b {
	case 'A':
		sink.Emit(CsiMoveCursor{Direction: Up, N: 1})
	case 'B':
		sink.Emit(CsiMoveCursor{Direction: Down, N: 1})
	case 'C':
		sink.Emit(CsiMoveCursor{Direction: Right, N: 1})
	case 'D':
		sink.Emit(CsiMoveCursor{Direction: Left, N: 1})
	case 'E':
		sink.Emit(CsiEraseInDisplay{Mode: DisplayAll})
		sink.Emit(CsiCursorPosition{Row: 1, Col: 1})
	case 'H':
		sink.Emit(CsiCursorPosition{Row: 1, Col: 1})
	case 'I':
		sink.Emit(EscReverseIndex{})
	case 'J':
		sink.Emit(CsiEraseInDisplay{Mode: DisplayCursorToEnd})
	case 'K':
		sink.Emit(CsiEraseInLine{Mode: LineCursorToEnd})
	case 'L':
		sink.Emit(CsiInsertLine{N: 1})
	case 'M':
		sink.Emit(CsiDeleteLine{N: 1})
	case 'd':
		sink.Emit(CsiEraseInDisplay{Mode: DisplayStartToCursor})
	case 'e':
		sink.Emit(CsiDecPrivateModeSet{Mode: CursorVisible})
	case 'f':
		sink.Emit(CsiDecPrivateModeReset{Mode: CursorVisible})
	case 'j':
		sink.Emit(CsiSaveCursorPosition{})
	case 'k':
		sink.Emit(CsiRestoreCursorPosition{})
	case 'l':
		sink.Emit(CsiEraseInLine{Mode: LineAll})
	case 'o':
		sink.Emit(CsiEraseInLine{Mode: LineStartToCursor})
	case 'v':
		sink.Emit(CsiDecPrivateModeSet{Mode: AutoWrap})
	case 'w':
		sink.Emit(CsiDecPrivateModeReset{Mode: AutoWrap})
	default:
		return false
	}
	return true
}

// vt52Color decodes the colour byte of ESC b and ESC c, a TOS colour
// code 0x00 to 0x0f or a VT52 digit '0' to '?'.
func vt52Color(b byte, mode VT52Mode) (uint8, bool) {
	switch {
	case b <= 0x0f && mode != VT52Standard: //nolint:mnd
		return b, true
	case b >= '0' && b <= '0'+15 && mode != VT52Atari:
		return b - '0', true
	}
	return 0, false
}

// vt52Line returns the 1 based line of ESC Y.
func vt52Line(b byte, mode VT52Mode) (int, bool) {
	if mode == VT52Atari {
		return int(b) + 1, b <= 25 //nolint:mnd
	}
	return int(b-' ') + 1, b >= ' ' && b <= '8'
}

// vt52Column returns the 1 based column of ESC Y.
func vt52Column(b byte, mode VT52Mode) (int, bool) {
	if mode == VT52Atari {
		return int(b) + 1, b <= 132 //nolint:mnd
	}
	return int(b-' ') + 1, b >= ' ' && b <= 'p'
}
