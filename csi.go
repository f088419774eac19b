package bbsdecode

import "strconv"

// dispatch runs the control sequence selected by the private marker,
// the intermediate byte and the final byte. Unknown combinations are ignored.
func (p *Parser) dispatch(final byte, sink CommandSink) {
	p.params.finish()
	if p.params.Dropped() {
		sink.ReportError(malformed("more than "+strconv.Itoa(maxParams)+" parameters"), LevelWarning)
	}
	args, private, inter := p.params, p.private, p.inter
	p.state = StateGround
	p.private = 0
	p.inter = 0
	switch {
	case private == 0 && inter == 0:
		p.csiFinal(final, args, sink)
	case private == '?' && inter == 0:
		p.csiPrivate(final, args, sink)
	case private == '?' && inter == '$' && final == 'p':
		sink.Request(RequestDecPrivateModeReport{Mode: args.u16(0, 0)})
	case private == '=' && inter == 0:
		csiEquals(final, args, sink)
	case private == '>' && inter == 0 && final == 'c':
		sink.Request(RequestSecondaryDeviceAttributes{})
	case private == '<' && inter == 0 && final == 'c':
		sink.Request(RequestExtendedDeviceAttributes{})
	case private == 0 && inter == ' ':
		csiSpace(final, args, sink)
	case private == 0 && inter == '*':
		p.csiAsterisk(final, args, sink)
	case private == 0 && inter == '$':
		csiDollar(final, args, sink)
	}
}

// count returns a count parameter, 1 when it is empty.
func count(p Params) uint16 {
	return p.u16(0, 1)
}

//nolint:cyclop,funlen,gocyclo,mnd
func (p *Parser) csiFinal(final byte, args Params, sink CommandSink) {
	switch final {
	case 'A', 'k':
		sink.Emit(CsiMoveCursor{Direction: Up, N: count(args)})
	case 'B':
		sink.Emit(CsiMoveCursor{Direction: Down, N: count(args)})
	case 'C':
		sink.Emit(CsiMoveCursor{Direction: Right, N: count(args)})
	case 'D', 'j':
		sink.Emit(CsiMoveCursor{Direction: Left, N: count(args)})
	case 'E':
		sink.Emit(CsiCursorNextLine{N: count(args)})
	case 'F':
		sink.Emit(CsiCursorPreviousLine{N: count(args)})
	case 'G':
		sink.Emit(CsiCursorHorizontalAbsolute{N: count(args)})
	case 'd':
		sink.Emit(CsiLinePositionAbsolute{N: count(args)})
	case 'e':
		sink.Emit(CsiLinePositionForward{N: count(args)})
	case 'a':
		sink.Emit(CsiCharacterPositionForward{N: count(args)})
	case '\'':
		sink.Emit(CsiHorizontalPositionAbsolute{N: count(args)})
	case 'H', 'f':
		sink.Emit(CsiCursorPosition{Row: args.u16(0, 1), Col: args.u16(1, 1)})
	case 'J':
		v := args.Get(0, 0)
		mode, ok := eraseInDisplayMode(v)
		if !ok {
			sink.ReportError(invalid("CsiEraseInDisplay", v, "0 to 3"), LevelError)
		}
		sink.Emit(CsiEraseInDisplay{Mode: mode})
	case 'K':
		v := args.Get(0, 0)
		mode, ok := eraseInLineMode(v)
		if !ok {
			sink.ReportError(invalid("CsiEraseInLine", v, "0 to 2"), LevelError)
		}
		sink.Emit(CsiEraseInLine{Mode: mode})
	case 'S':
		sink.Emit(CsiScroll{Direction: Up, N: count(args)})
	case 'T':
		sink.Emit(CsiScroll{Direction: Down, N: count(args)})
	case 'm':
		SGR(args, sink)
	case 'r':
		margins(args, sink)
	case 's':
		if args.Len() == 2 {
			sink.Emit(SetLeftRightMargin{Left: args.u16(0, 1), Right: args.u16(1, 1)})
			return
		}
		sink.Emit(CsiSaveCursorPosition{})
	case 'u':
		sink.Emit(CsiRestoreCursorPosition{})
	case '@':
		sink.Emit(CsiInsertCharacter{N: count(args)})
	case 'P':
		sink.Emit(CsiDeleteCharacter{N: count(args)})
	case 'X':
		sink.Emit(CsiEraseCharacter{N: count(args)})
	case 'L':
		sink.Emit(CsiInsertLine{N: count(args)})
	case 'M':
		if p.cfg.Music.onCsiM() {
			p.startMusic(true)
			return
		}
		sink.Emit(CsiDeleteLine{N: count(args)})
	case 'N':
		if p.cfg.Music.onCsiN() {
			p.startMusic(true)
		}
	case '|':
		if p.cfg.Music != MusicOff {
			p.startMusic(true)
		}
	case 'b':
		sink.Emit(CsiRepeatPrecedingCharacter{N: count(args)})
	case 'g':
		if args.Get(0, 0) == 0 {
			sink.Emit(CsiClearTabulation{})
			return
		}
		sink.Emit(CsiClearAllTabs{})
	case 'Y':
		sink.Emit(CsiCursorLineTabulationForward{N: count(args)})
	case 'Z':
		sink.Emit(CsiCursorBackwardTabulation{N: count(args)})
	case 't':
		window(args, sink)
	case '~':
		if key, ok := specialKey(args.Get(0, 0)); ok {
			sink.Emit(CsiSpecialKey{Key: key})
		}
	case 'c':
		sink.Request(RequestDeviceAttributes{})
	case 'n':
		switch v := args.Get(0, 0); v {
		case 5:
			sink.Request(RequestDeviceStatusReport{})
		case 6:
			sink.Request(RequestCursorPositionReport{})
		case 255:
			sink.Request(RequestScreenSizeReport{})
		default:
			sink.ReportError(invalid("CsiDeviceStatusReport", v, "5, 6 or 255"), LevelError)
		}
	case 'h', 'l':
		set := final == 'h'
		for i := range args.Len() {
			v := args.Get(i, 0)
			mode, ok := ansiMode(v)
			switch {
			case !ok && set:
				sink.ReportError(invalid("CsiSetMode", v, ""), LevelError)
			case !ok:
				sink.ReportError(invalid("CsiResetMode", v, ""), LevelError)
			case set:
				sink.Emit(CsiSetMode{Mode: mode})
			default:
				sink.Emit(CsiResetMode{Mode: mode})
			}
		}
	}
}

// margins decodes DECSTBM and its four sided variant.
//
//nolint:mnd
func margins(args Params, sink CommandSink) {
	switch args.Len() {
	case 0:
		sink.Emit(ResetMargins{})
	case 1, 2:
		sink.Emit(SetTopBottomMargin{Top: args.u16(0, 1), Bottom: args.u16(1, 0)})
	default:
		sink.Emit(CsiSetScrollingRegion{
			Top:    args.u16(0, 1),
			Bottom: args.u16(1, 0),
			Left:   args.u16(2, 1),
			Right:  args.u16(3, MaxParam),
		})
	}
}

// window decodes the xterm window resize and the PabloDraw 24-bit color.
//
//nolint:mnd
func window(args Params, sink CommandSink) {
	switch args.Len() {
	case 3:
		if args.Get(0, 0) != 8 {
			break
		}
		sink.Emit(CsiResizeTerminal{
			Height: uint16(clamp(args.Get(1, 1), 1, 60)),  //nolint:gosec
			Width:  uint16(clamp(args.Get(2, 1), 1, 132)), //nolint:gosec
		})
		return
	case 4:
		c := RGB(component(args, 1), component(args, 2), component(args, 3))
		switch args.Get(0, 0) {
		case 0:
			sink.Emit(CsiSelectGraphicRendition{Attr: SgrBackground{c}})
			return
		case 1:
			sink.Emit(CsiSelectGraphicRendition{Attr: SgrForeground{c}})
			return
		}
	}
	sink.ReportError(malformed("unknown window manipulation CSI "+args.String()+" t"), LevelError)
}

//nolint:mnd
func (p *Parser) csiPrivate(final byte, args Params, sink CommandSink) {
	switch final {
	case 'h', 'l':
		set := final == 'h'
		for i := range args.Len() {
			v := args.Get(i, 0)
			mode, ok := decPrivateMode(v)
			switch {
			case !ok && set:
				sink.ReportError(invalid("CsiDecPrivateModeSet", v, ""), LevelError)
			case !ok:
				sink.ReportError(invalid("CsiDecPrivateModeReset", v, ""), LevelError)
			case set:
				sink.Emit(CsiDecPrivateModeSet{Mode: mode})
			default:
				sink.Emit(CsiDecPrivateModeReset{Mode: mode})
			}
		}
	case 'n':
		switch args.Get(0, 0) {
		case 62:
			sink.Request(RequestMacroSpaceReport{})
		case 63:
			sink.Request(RequestMemoryChecksumReport{ID: args.u16(1, 0), Sum: p.macroChecksum()})
		}
	}
}

// macroChecksum is the 16-bit sum of every stored macro byte.
func (p *Parser) macroChecksum() uint16 {
	var sum uint16
	for _, data := range p.macros {
		for _, b := range data {
			sum += uint16(b)
		}
	}
	return sum
}

//nolint:mnd
func csiEquals(final byte, args Params, sink CommandSink) {
	switch final {
	case 'n':
		switch args.Get(0, 1) {
		case 1:
			sink.Request(RequestFontStateReport{})
		case 2:
			sink.Request(RequestFontModeReport{})
		case 3:
			sink.Request(RequestFontDimensionReport{})
		}
	case 'm':
		v := args.Get(0, 0)
		margin, ok := marginType(v)
		if !ok {
			sink.ReportError(invalid("CsiSetSpecificMargin", v, "0 to 3"), LevelError)
			return
		}
		sink.Emit(CsiSetSpecificMargin{Margin: margin, Value: args.u16(1, 0)})
	}
}

func csiSpace(final byte, args Params, sink CommandSink) {
	switch final {
	case 'A':
		sink.Emit(CsiScroll{Direction: Right, N: count(args)})
	case '@':
		sink.Emit(CsiScroll{Direction: Left, N: count(args)})
	case 'd':
		if args.Get(0, 0) == 0 {
			sink.Emit(CsiClearTabulation{})
			return
		}
		sink.Emit(CsiClearAllTabs{})
	case 'q':
		blinking, shape := caretStyle(args.Get(0, 0))
		sink.Emit(CsiSetCaretStyle{Blinking: blinking, Shape: shape})
	case 'D':
		sink.Emit(CsiFontSelection{Slot: args.u16(0, 0), Font: args.u16(1, 0)})
	}
}

func (p *Parser) csiAsterisk(final byte, args Params, sink CommandSink) {
	switch final {
	case 'z':
		p.invoke(args.Get(0, 0), sink)
	case 'r':
		line := communicationLine(args.Get(0, 0))
		v := args.Get(1, 0)
		baud, ok := baudEmulation(v)
		if !ok {
			sink.ReportError(invalid("CsiSelectCommunicationSpeed", v, "0 to 11"), LevelError)
			return
		}
		sink.Emit(CsiSelectCommunicationSpeed{Line: line, Baud: baud})
	case 'y':
		sink.Request(RequestChecksumRectangularArea{
			ID:     args.u16(0, 0),
			Page:   args.u16(1, 0),
			Top:    args.u16(2, 1),
			Left:   args.u16(3, 1),
			Bottom: args.u16(4, 1),
			Right:  args.u16(5, 1),
		})
	}
}

//nolint:mnd
func csiDollar(final byte, args Params, sink CommandSink) {
	switch final {
	case 'p':
		sink.Request(RequestAnsiModeReport{Mode: args.u16(0, 0)})
	case 'w':
		sink.Request(RequestTabStopReport{})
	case 'x':
		sink.Emit(CsiFillRectangularArea{
			Char:   args.u16(0, ' '),
			Top:    args.u16(1, 1),
			Left:   args.u16(2, 1),
			Bottom: args.u16(3, 1),
			Right:  args.u16(4, 1),
		})
	case 'z':
		sink.Emit(CsiEraseRectangularArea{
			Top:    args.u16(0, 1),
			Left:   args.u16(1, 1),
			Bottom: args.u16(2, 1),
			Right:  args.u16(3, 1),
		})
	case '{':
		sink.Emit(CsiSelectiveEraseRectangularArea{
			Top:    args.u16(0, 1),
			Left:   args.u16(1, 1),
			Bottom: args.u16(2, 1),
			Right:  args.u16(3, 1),
		})
	}
}
