package bbsdecode

import (
	"strconv"
	"strings"
)

// IgsState is the state of the IGS state machine between two bytes.
type IgsState uint8

const (
	IgsDefault             IgsState = iota // IgsDefault prints text and runs controls
	IgsGotG                                // IgsGotG follows a 'G'
	IgsGotIgsStart                         // IgsGotIgsStart follows G# or a ':' terminator
	IgsReadParams                          // IgsReadParams collects command parameters
	IgsReadTextString                      // IgsReadTextString collects the text of W
	IgsReadLoopTokens                      // IgsReadLoopTokens collects a loop command
	IgsReadZoneString                      // IgsReadZoneString collects the string of X 4
	IgsReadFillPattern                     // IgsReadFillPattern collects the pattern of X 7
	IgsEscape                              // IgsEscape follows a VT52 ESC
	IgsReadFgColor                         // IgsReadFgColor follows ESC b
	IgsReadBgColor                         // IgsReadBgColor follows ESC c
	IgsReadCursorLine                      // IgsReadCursorLine follows ESC Y
	IgsReadCursorRow                       // IgsReadCursorRow follows ESC Y line
	IgsReadInsertLineCount                 // IgsReadInsertLineCount follows ESC i
)

var igsStateNames = [...]string{
	"Default", "GotG", "GotIgsStart", "ReadParams", "ReadTextString", "ReadLoopTokens",
	"ReadZoneString", "ReadFillPattern", "Escape", "ReadFgColor", "ReadBgColor",
	"ReadCursorLine", "ReadCursorRow", "ReadInsertLineCount",
}

func (s IgsState) String() string {
	if int(s) < len(igsStateNames) {
		return igsStateNames[s]
	}
	return "IgsState(" + strconv.Itoa(int(s)) + ")"
}

// IgsParser decodes the Atari ST Interactive Graphics System.
//
// Commands start with G# followed by a command letter, its parameters and
// a ':' terminator, as in G#L>0,0,100,100:. Several commands can share one G#.
// Text outside of commands prints, and the VT52 escape sequences of the
// Atari ST text layer are decoded into terminal commands.
// An IgsParser is not safe for concurrent use.
type IgsParser struct {
	cfg     Config
	state   IgsState
	letter  byte
	params  []int
	cur     int
	digits  bool
	text    []byte
	loop    loopReader
	line    int
	reverse bool
	skipLF  bool
	short   bool // short is set for ESC m, which ends with its terminator
}

// NewIgsParser returns a parser in the default state.
func NewIgsParser(cfg Config) *IgsParser {
	if cfg.MaxString <= 0 {
		cfg.MaxString = DefaultMaxString
	}
	if cfg.Bounds == (ParameterBounds{}) {
		cfg.Bounds = DefaultBounds
	}
	return &IgsParser{cfg: cfg}
}

// State returns the current state.
func (p *IgsParser) State() IgsState {
	return p.state
}

// Bounds returns the range used to resolve random loop parameters.
func (p *IgsParser) Bounds() ParameterBounds {
	return p.cfg.Bounds
}

// Parse decodes the chunk, reporting everything it finds to sink.
func (p *IgsParser) Parse(input []byte, sink CommandSink) {
	start := -1
	for i, b := range input {
		if p.state == IgsDefault && b >= 0x20 && b != 'G' { //nolint:mnd
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

// Flush reports a command that is still open and returns to the default state.
// A pending 'G' prints, and a stream ending after a ':' terminator is complete.
// Reverse video is kept.
func (p *IgsParser) Flush(sink CommandSink) {
	switch p.state {
	case IgsDefault, IgsGotIgsStart:
	case IgsGotG:
		sink.Print([]byte{'G'})
	default:
		sink.ReportError(&IncompleteSequence{State: "IGS/" + p.state.String()}, LevelWarning)
	}
	p.reset()
	p.loop.reset()
	p.state = IgsDefault
	p.skipLF = false
	p.short = false
}

func (p *IgsParser) reset() {
	p.params = p.params[:0]
	p.cur = 0
	p.digits = false
	p.text = p.text[:0]
}

//nolint:cyclop
func (p *IgsParser) next(b byte, sink CommandSink) {
	switch p.state {
	case IgsDefault:
		p.ground(b, sink)
	case IgsGotG:
		p.state = IgsDefault
		if b == '#' {
			p.skipLF = true
			p.reset()
			p.state = IgsGotIgsStart
			return
		}
		sink.Print([]byte{'G'})
		p.ground(b, sink)
	case IgsGotIgsStart:
		p.command(b, sink)
	case IgsReadParams:
		p.param(b, sink)
	case IgsReadTextString, IgsReadZoneString, IgsReadFillPattern:
		p.str(b, sink)
	case IgsReadLoopTokens:
		p.loopToken(b, sink)
	case IgsEscape:
		p.escape(b, sink)
	case IgsReadFgColor, IgsReadBgColor:
		p.color(b, sink)
	case IgsReadCursorLine:
		p.state = IgsDefault
		line, ok := vt52Line(b, VT52Mixed)
		if !ok {
			sink.ReportError(invalid("VT52CursorPosition", int(b), "a line byte from ' ' to '8'"), LevelError)
			return
		}
		p.line = line
		p.state = IgsReadCursorRow
	case IgsReadCursorRow:
		p.state = IgsDefault
		col, ok := vt52Column(b, VT52Mixed)
		if !ok {
			sink.ReportError(invalid("VT52CursorPosition", int(b), "a column byte from ' ' to 'p'"), LevelError)
			return
		}
		sink.Emit(CsiCursorPosition{Row: uint16(p.line), Col: uint16(col)}) //nolint:gosec
	case IgsReadInsertLineCount:
		p.state = IgsDefault
		sink.Emit(CsiInsertLine{N: uint16(b)})
	}
}

// ground handles a byte of the default state that does not print.
func (p *IgsParser) ground(b byte, sink CommandSink) {
	switch b {
	case 'G':
		p.state = IgsGotG
	case ESC:
		p.state = IgsEscape
	case BS, VT, FF:
		sink.Emit(Backspace{})
	case CR:
		sink.Emit(CarriageReturn{})
	case LF:
		if p.skipLF {
			p.skipLF = false
			return
		}
		sink.Emit(LineFeed{})
	default:
		switch {
		case b <= 0x0f: //nolint:mnd
			// TOS colour codes
			p.sgr(Base(b), false, sink)
		case b < 0x20: //nolint:mnd
		default:
			sink.Print([]byte{b})
		}
	}
}

// sgr emits a colour, swapping foreground and background in reverse video.
func (p *IgsParser) sgr(c Color, background bool, sink CommandSink) {
	if background != p.reverse {
		sink.Emit(CsiSelectGraphicRendition{Attr: SgrBackground{c}})
		return
	}
	sink.Emit(CsiSelectGraphicRendition{Attr: SgrForeground{c}})
}

// command reads the letter after G# or after a ':' terminator.
func (p *IgsParser) command(b byte, sink CommandSink) {
	p.reset()
	p.short = false
	switch {
	case b == '&':
		p.loop.reset()
		p.state = IgsReadLoopTokens
		return
	case b == CR:
		p.state = IgsDefault
		return
	case b == LF:
		p.skipLF = false
		p.state = IgsDefault
		return
	}
	if _, ok := igsBuilders[b]; ok {
		p.letter = b
		p.state = IgsReadParams
		return
	}
	p.state = IgsDefault
	if b < 0x20 { //nolint:mnd
		p.ground(b, sink)
		return
	}
	sink.ReportError(&InvalidParameter{
		Command:  "IGS",
		Value:    strconv.QuoteRune(rune(b)),
		Expected: "an IGS command letter",
	}, LevelError)
}

func (p *IgsParser) push() {
	p.params = append(p.params, p.cur)
	p.cur = 0
	p.digits = false
}

//nolint:cyclop
func (p *IgsParser) param(b byte, sink CommandSink) {
	switch {
	case isDigit(b):
		p.cur = accumulate(p.cur, b)
		p.digits = true
	case b == ',':
		p.push()
		p.textStart()
	case b == '@' && p.letter == 'W':
		p.push()
		if p.textStart() {
			return
		}
		sink.ReportError(invalid("IGS W", len(p.params), "2 parameters before the text"), LevelError)
		p.reset()
		p.state = IgsDefault
	case b == ':':
		p.push()
		p.emit(sink)
		p.state = IgsGotIgsStart
		if p.short {
			p.short = false
			p.state = IgsDefault
		}
	case b == '#' && p.letter == 'G' && len(p.params) == 0 && !p.digits:
		// G#G# repeats the introducer
		p.state = IgsGotIgsStart
	case b == ' ' || b == '>' || b == CR || b == LF || b == '_':
	default:
		name := "IGS"
		if p.letter == 'X' {
			name = "ExtendedCommand"
		}
		sink.ReportError(&InvalidParameter{
			Command:  name,
			Value:    strconv.QuoteRune(rune(b)),
			Expected: "a digit, ',' or ':'",
		}, LevelError)
		p.reset()
		p.state = IgsDefault
	}
}

// textStart switches to reading a string once the numeric parameters
// in front of it were read: x,y for W, 4,id,x1,y1,x2,y2,length for X 4
// and 7,pattern for X 7.
//
//nolint:mnd
func (p *IgsParser) textStart() bool {
	n := len(p.params)
	switch {
	case p.letter == 'W' && n == 2:
		p.state = IgsReadTextString
	case p.letter == 'X' && n == 7 && p.params[0] == 4:
		p.state = IgsReadZoneString
	case p.letter == 'X' && n == 2 && p.params[0] == 7:
		p.state = IgsReadFillPattern
	default:
		return false
	}
	p.text = p.text[:0]
	return true
}

// str collects the string of W, X 4 or X 7. W ends at '@',
// the others at ':'. A line feed ends all of them.
func (p *IgsParser) str(b byte, sink CommandSink) {
	end := byte(':')
	if p.state == IgsReadTextString {
		end = '@'
	}
	if b != end && b != LF {
		if len(p.text) < p.cfg.MaxString {
			p.text = append(p.text, b)
		}
		return
	}
	p.emit(sink)
	p.state = IgsGotIgsStart
	if b == LF {
		p.skipLF = false
		p.state = IgsDefault
	}
}

// emit builds the command from the collected parameters.
func (p *IgsParser) emit(sink CommandSink) {
	defer p.reset()
	if cmd := BuildIgs(p.letter, p.params, string(p.text)); cmd != nil {
		sink.EmitIGS(cmd)
		return
	}
	need, _ := IgsMinParams(p.letter)
	name := "IGS " + string(p.letter)
	if len(p.params) < need {
		sink.ReportError(invalid(name, len(p.params), "at least "+strconv.Itoa(need)+" parameters"), LevelWarning)
		return
	}
	sink.ReportError(invalid(name, p.params[0], "a known sub-command"), LevelWarning)
}

// escape decodes the VT52 sequences of the Atari ST.
func (p *IgsParser) escape(b byte, sink CommandSink) {
	p.state = IgsDefault
	if vt52Command(b, sink) {
		return
	}
	switch b {
	case 'Y':
		p.state = IgsReadCursorLine
	case '3', 'b':
		p.state = IgsReadFgColor
	case '4', 'c':
		p.state = IgsReadBgColor
	case 'p':
		p.reverse = true
	case 'q':
		p.reverse = false
	case 'i':
		p.state = IgsReadInsertLineCount
	case 'r':
		sink.EmitIGS(RememberCursor{})
	case 'm':
		// ESC m is the short form of G#m
		p.reset()
		p.letter = 'm'
		p.short = true
		p.state = IgsReadParams
	}
}

// color reads the colour byte of ESC b and ESC c, either a TOS colour
// code 0x00 to 0x0f or a VT52 digit '0' to '?'.
func (p *IgsParser) color(b byte, sink CommandSink) {
	background := p.state == IgsReadBgColor
	p.state = IgsDefault
	c, ok := vt52Color(b, VT52Mixed)
	if !ok {
		name := "VT52ForegroundColor"
		if background {
			name = "VT52BackgroundColor"
		}
		sink.ReportError(invalid(name, int(b), "a colour code 0x00 to 0x0f"), LevelError)
		return
	}
	p.sgr(Base(c), background, sink)
}

// loopHeader is the number of fields before the loop parameters:
// from, to, step, delay, target and the parameter count.
const loopHeader = 6

// loopReader tokenizes G#&>from,to,step,delay,target,count,params:.
type loopReader struct {
	header []string
	buf    []byte
	chain  bool
	params []LoopParamToken
	values int
}

func (l *loopReader) reset() {
	l.header = l.header[:0]
	l.buf = l.buf[:0]
	l.chain = false
	l.params = nil
	l.values = 0
}

// push closes the current token.
func (l *loopReader) push() {
	if len(l.buf) == 0 {
		return
	}
	tok := string(l.buf)
	l.buf = l.buf[:0]
	switch len(l.header) {
	case loopHeader:
		t := paramToken(tok)
		if _, text := t.(Text); !text {
			l.values++
		}
		l.params = append(l.params, t)
	case loopHeader - 2: //nolint:mnd
		target, rest := splitTarget(tok)
		l.header = append(l.header, target)
		if rest != "" {
			l.header = append(l.header, rest)
		}
	default:
		l.header = append(l.header, tok)
	}
}

// count returns the parameter count field.
func (l *loopReader) count() int {
	return max(loopInt(l.header[5]), 0) //nolint:mnd
}

func (l *loopReader) command() LoopCommandData {
	target, mods := parseTarget(l.header[4])
	return LoopCommandData{
		From:       loopInt(l.header[0]),
		To:         loopInt(l.header[1]),
		Step:       loopInt(l.header[2]),
		Delay:      loopInt(l.header[3]),
		Target:     target,
		Modifiers:  mods,
		ParamCount: l.count(),
		Params:     l.params,
	}
}

//nolint:cyclop
func (p *IgsParser) loopToken(b byte, sink CommandSink) {
	l := &p.loop
	switch b {
	case ':', LF:
		l.push()
		if len(l.header) < loopHeader {
			sink.ReportError(invalid("LoopCommand", len(l.header), "6 parameters"), LevelError)
			l.reset()
			p.state = IgsDefault
			return
		}
		if b == ':' && l.values < l.count() {
			l.params = append(l.params, GroupSeparator{})
			return
		}
		p.runLoop(sink)
		p.state = IgsGotIgsStart
		if b == LF {
			p.skipLF = false
			p.state = IgsDefault
		}
	case ',':
		if !l.chain {
			l.push()
		}
	case '@':
		if len(l.header) == loopHeader {
			l.params = append(l.params, Text(l.buf))
			l.buf = l.buf[:0]
			return
		}
		l.buf = append(l.buf, b)
		l.chain = false
	case ' ', CR, '_':
	case '>':
		if len(l.buf) == 0 && len(l.header) == loopHeader-2 {
			l.buf = append(l.buf, b)
			l.chain = true
		}
	default:
		if len(l.buf) < p.cfg.MaxString {
			l.buf = append(l.buf, b)
		}
	}
}

// runLoop hands the loop to the sink, or expands it when RunLoops is set.
func (p *IgsParser) runLoop(sink CommandSink) {
	data := p.loop.command()
	p.loop.reset()
	if p.cfg.RunLoops {
		data.Run(sink, p.cfg.Bounds)
		return
	}
	sink.EmitIGS(data)
}

// splitTarget separates the target field and its modifiers from a parameter
// count written without a comma, as in L|4.
func splitTarget(tok string) (string, string) {
	end := 1
	if tok[0] == '>' {
		if i := strings.IndexByte(tok, '@'); i > 0 {
			end = i + 1
		}
	}
	for end < len(tok) && (tok[end] == '|' || tok[end] == '@') {
		end++
	}
	return tok[:end], tok[end:]
}

func parseTarget(s string) (LoopTarget, LoopModifiers) {
	var mods LoopModifiers
	target := Single(s[0])
	rest := s[1:]
	if s[0] == '>' {
		if i := strings.IndexByte(s, '@'); i > 0 {
			target = ChainGang(s[1:i])
			rest = s[i+1:]
		}
	}
	for i := range len(rest) {
		switch rest[i] {
		case '|':
			mods.XorStepping = true
		case '@':
			mods.RefreshText = true
		}
	}
	return target, mods
}

// paramToken classifies one loop parameter.
func paramToken(s string) LoopParamToken {
	switch s {
	case "x":
		return StepForward{}
	case "y":
		return StepReverse{}
	case "r", "R":
		return Random{}
	}
	var op ExprOp
	switch s[0] {
	case '+':
		op = OpAdd
	case '-':
		op = OpSubtract
	case '!':
		op = OpSubtractStep
	default:
		if n, ok := parseLoopInt(s); ok {
			return Number(n)
		}
		return Text(s)
	}
	if k, ok := parseLoopInt(s[1:]); ok {
		return Expr{Op: op, K: k}
	}
	return Text(s)
}

// loopInt parses a header field, anything unreadable is 0.
func loopInt(s string) int {
	n, _ := parseLoopInt(s)
	return n
}

// parseLoopInt parses an optionally signed number, saturating at ±MaxParam.
func parseLoopInt(s string) (int, bool) {
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	if s == "" {
		return 0, false
	}
	n := 0
	for i := range len(s) {
		if !isDigit(s[i]) {
			return 0, false
		}
		n = accumulate(n, s[i])
	}
	if neg {
		n = -n
	}
	return n, true
}
