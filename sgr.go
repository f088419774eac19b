package bbsdecode

import "strconv"

const sgrCommand = "CsiSelectGraphicRendition"

// sgrTable maps the SGR codes 0 to 107 to their attribute.
// Nil entries are undefined, 38 and 48 are decoded separately.
var sgrTable = [108]SgrAttribute{ //nolint:gochecknoglobals
	0:  SgrReset{},
	1:  SgrIntensity{IntensityBold},
	2:  SgrIntensity{IntensityFaint},
	3:  SgrItalic{true},
	4:  SgrUnderline{UnderlineSingle},
	5:  SgrBlink{BlinkSlow},
	6:  SgrBlink{BlinkRapid},
	7:  SgrInverse{true},
	8:  SgrConcealed{true},
	9:  SgrCrossedOut{true},
	10: SgrFont{0},
	11: SgrFont{1},
	12: SgrFont{2},
	13: SgrFont{3},
	14: SgrFont{4},
	15: SgrFont{5},
	16: SgrFont{6},
	17: SgrFont{7},
	18: SgrFont{8},
	19: SgrFont{9},
	20: SgrFraktur{},
	21: SgrUnderline{UnderlineDouble},
	22: SgrIntensity{IntensityNormal},
	23: SgrItalic{false},
	24: SgrUnderline{UnderlineOff},
	25: SgrBlink{BlinkOff},
	27: SgrInverse{false},
	28: SgrConcealed{false},
	29: SgrCrossedOut{false},
	39: SgrForeground{DefaultColor},
	49: SgrBackground{DefaultColor},
	51: SgrFrame{FrameFramed},
	52: SgrFrame{FrameEncircled},
	53: SgrOverlined{true},
	54: SgrFrame{FrameOff},
	55: SgrOverlined{false},
	60: SgrIdeogram{IdeogramUnderline},
	61: SgrIdeogram{IdeogramDoubleUnderline},
	62: SgrIdeogram{IdeogramOverline},
	63: SgrIdeogram{IdeogramDoubleOverline},
	64: SgrIdeogram{IdeogramStress},
	65: SgrIdeogram{IdeogramOff},
}

//nolint:gochecknoinits,mnd
func init() {
	for i := range uint8(8) {
		sgrTable[30+i] = SgrForeground{Base(i)}
		sgrTable[40+i] = SgrBackground{Base(i)}
		sgrTable[90+i] = SgrForeground{Base(8 + i)}
		sgrTable[100+i] = SgrBackground{Base(8 + i)}
	}
}

// SGR decodes the parameters of a CSI ... m sequence and emits one
// [CsiSelectGraphicRendition] per attribute, left to right.
// An empty parameter list is a reset.
//
//nolint:mnd
func SGR(p Params, sink CommandSink) {
	if p.Len() == 0 {
		sink.Emit(CsiSelectGraphicRendition{Attr: SgrReset{}})
		return
	}
	for i := 0; i < p.Len(); {
		code := p.Get(i, 0)
		switch code {
		case 38, 48:
			i = extendedColor(p, i, code == 48, sink)
			continue
		case 4:
			if p.Sub(i + 1) {
				sink.Emit(CsiSelectGraphicRendition{Attr: SgrUnderline{underlineStyle(p.Get(i+1, 0))}})
				i = skipSubs(p, i+1)
				continue
			}
		}
		if code < len(sgrTable) && sgrTable[code] != nil {
			sink.Emit(CsiSelectGraphicRendition{Attr: sgrTable[code]})
		} else {
			sink.ReportError(&InvalidParameter{
				Command:  sgrCommand,
				Value:    strconv.Itoa(code),
				Expected: "an SGR attribute code",
			}, LevelWarning)
		}
		i = skipSubs(p, i+1)
	}
}

// skipSubs returns the index of the first parameter from i that is not
// a colon sub-parameter.
func skipSubs(p Params, i int) int {
	for p.Sub(i) {
		i++
	}
	return i
}

//nolint:mnd
func underlineStyle(v int) Underline {
	switch v {
	case 0:
		return UnderlineOff
	case 2:
		return UnderlineDouble
	}
	return UnderlineSingle
}

// extendedColor decodes 38 and 48 starting at index i and returns the index
// of the next attribute. Both the semicolon forms 5;N and 2;R;G;B and the
// colon forms :5:N, :2:R:G:B and :2:CS:R:G:B are accepted.
//
//nolint:mnd
func extendedColor(p Params, i int, background bool, sink CommandSink) int {
	emit := func(c Color) {
		if background {
			sink.Emit(CsiSelectGraphicRendition{Attr: SgrBackground{c}})
			return
		}
		sink.Emit(CsiSelectGraphicRendition{Attr: SgrForeground{c}})
	}
	colon := p.Sub(i + 1)
	// a truncated color skips the 38 or 48 alone, its colon sub-parameters
	// go with it
	truncated := func(end int) int {
		code, form := 38, "38;5;n or 38;2;r;g;b"
		if background {
			code, form = 48, "48;5;n or 48;2;r;g;b"
		}
		sink.ReportError(invalid(sgrCommand, code, form), LevelError)
		if colon {
			return end
		}
		return i + 1
	}
	if i+1 >= p.Len() {
		return truncated(p.Len())
	}
	mode := p.Get(i+1, 0)
	args := i + 2
	end := p.Len()
	if colon {
		end = skipSubs(p, i+1)
	}
	n := end - args
	switch mode {
	case 5:
		if n < 1 {
			return truncated(end)
		}
		emit(Extended(uint8(clamp(p.Get(args, 0), 0, 255)))) //nolint:gosec
		if colon {
			return end
		}
		return args + 1
	case 2:
		if colon && n >= 4 {
			args++ // skip the color space id
			n--
		}
		if n < 3 {
			return truncated(end)
		}
		emit(RGB(component(p, args), component(p, args+1), component(p, args+2)))
		if colon {
			return end
		}
		return args + 3
	}
	sink.ReportError(&InvalidParameter{
		Command:  sgrCommand,
		Value:    strconv.Itoa(mode),
		Expected: "5 (256-color) or 2 (RGB)",
	}, LevelError)
	if colon {
		return end
	}
	return i + 2
}

func component(p Params, i int) uint8 {
	return uint8(clamp(p.Get(i, 0), 0, 255)) //nolint:gosec,mnd
}
