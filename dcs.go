package bbsdecode

import (
	"bytes"
	"encoding/base64"
	"strconv"
)

var ctermFont = []byte("CTerm:Font:")

// dcs decodes the buffered DCS payload.
// It is either a CTerm font, a macro definition or a sixel image.
//
//nolint:mnd
func (p *Parser) dcs(sink CommandSink) {
	if rest, ok := bytes.CutPrefix(p.buf, ctermFont); ok {
		loadFont(rest, sink)
		return
	}
	var args Params
	i := 0
	for ; i < len(p.buf); i++ {
		b := p.buf[i]
		switch {
		case isDigit(b):
			args.digit(b)
			continue
		case b == ';':
			args.separator(b)
			continue
		}
		break
	}
	args.finish()
	data := p.buf[i:]
	switch {
	case bytes.HasPrefix(data, []byte("!z")):
		p.defineMacro(args, data[2:])
	case bytes.HasPrefix(data, []byte("q")):
		sink.DeviceControl(Sixel{
			VerticalScale: sixelScale(args),
			Transparent:   args.Get(1, 0) == 1,
			Data:          bytes.Clone(data[1:]),
		})
	default:
		sink.ReportError(malformed("unknown or malformed DCS sequence"), LevelWarning)
	}
}

// loadFont decodes slot:base64.
func loadFont(rest []byte, sink CommandSink) {
	slot, data, ok := bytes.Cut(rest, []byte{':'})
	n, err := strconv.Atoi(string(slot))
	if !ok || err != nil || n < 0 {
		sink.ReportError(malformed("unknown or malformed DCS sequence"), LevelError)
		return
	}
	font, err := base64.StdEncoding.DecodeString(string(data))
	if err != nil {
		sink.ReportError(malformed("invalid base64 in DCS font data"), LevelError)
		return
	}
	sink.DeviceControl(LoadFont{Slot: n, Data: font})
}

// sixelScale is the pixel aspect ratio selected by the first parameter.
//
//nolint:mnd
func sixelScale(args Params) int {
	v, ok := args.Value(0)
	if !ok {
		return 2
	}
	switch v {
	case 0, 1, 5, 6:
		return 2
	case 2:
		return 5
	case 3, 4:
		return 3
	}
	return 1
}

// defineMacro stores a DECDMAC macro, DCS Pid ; Pdt ; Pen ! z data ST.
// Pdt 1 clears every macro first. Pen 0 is text, 1 is hex with !count;hex;
// repeats. Other encodings are ignored.
func (p *Parser) defineMacro(args Params, data []byte) {
	id := args.Get(0, 0)
	if args.Get(1, 0) == 1 {
		clear(p.macros)
	}
	switch args.Get(2, 0) {
	case 0:
		p.macros[id] = bytes.Clone(data)
	case 1:
		if decoded, ok := hexMacro(data, p.cfg.MaxString); ok {
			p.macros[id] = decoded
		}
	}
}

// hexMacro decodes hex pairs with !count;hex; repeat groups.
// The result is cut at limit bytes.
func hexMacro(data []byte, limit int) ([]byte, bool) {
	var out []byte
	repeat, start, inRepeat := 0, 0, false
	expand := func() {
		chunk := bytes.Clone(out[start:])
		for n := 1; n < repeat && len(out) < limit; n++ {
			out = append(out, chunk...)
		}
	}
	for i := 0; i < len(data); {
		switch {
		case data[i] == '!':
			i++
			repeat = 0
			for i < len(data) && isDigit(data[i]) {
				repeat = accumulate(repeat, data[i])
				i++
			}
			if i < len(data) && data[i] == ';' {
				i++
				inRepeat = true
				start = len(out)
			}
		case inRepeat && data[i] == ';':
			expand()
			inRepeat = false
			i++
		case i+1 < len(data):
			hi, ok1 := hexDigit(data[i])
			lo, ok2 := hexDigit(data[i+1])
			if !ok1 || !ok2 {
				return nil, false
			}
			out = append(out, hi<<4|lo)
			i += 2
		default:
			i++
		}
	}
	if inRepeat {
		expand()
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, true
}

func hexDigit(b byte) (byte, bool) {
	switch {
	case '0' <= b && b <= '9':
		return b - '0', true
	case 'a' <= b && b <= 'f':
		return b - 'a' + 10, true //nolint:mnd
	case 'A' <= b && b <= 'F':
		return b - 'A' + 10, true //nolint:mnd
	}
	return 0, false
}
