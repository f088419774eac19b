package bbsdecode

import (
	"bytes"
	"strconv"
	"strings"
)

// osc decodes the buffered OSC payload, Ps ; Pt.
//
//nolint:mnd
func (p *Parser) osc(sink CommandSink) {
	ps, pt, found := bytes.Cut(p.buf, []byte{';'})
	if !found {
		sink.ReportError(malformed("OSC without a parameter separator"), LevelWarning)
		return
	}
	n, err := strconv.Atoi(string(ps))
	if err != nil {
		sink.ReportError(malformed("OSC with a non-numeric command "+strconv.Quote(string(ps))), LevelWarning)
		return
	}
	switch n {
	case 0:
		sink.OperatingSystemCommand(SetTitle{Title: string(pt)})
	case 1:
		sink.OperatingSystemCommand(SetIconName{Name: string(pt)})
	case 2:
		sink.OperatingSystemCommand(SetWindowTitle{Title: string(pt)})
	case 4:
		palette(string(pt), sink)
	case 8:
		params, uri, ok := strings.Cut(string(pt), ";")
		if !ok {
			sink.ReportError(malformed("OSC 8 hyperlink without a URI"), LevelWarning)
			return
		}
		sink.OperatingSystemCommand(Hyperlink{Params: params, URI: uri})
	default:
		sink.ReportError(malformed("unknown OSC "+strconv.Itoa(n)), LevelWarning)
	}
}

// palette decodes the index;color pairs of OSC 4.
func palette(pt string, sink CommandSink) {
	fields := strings.Split(pt, ";")
	if len(fields)%2 != 0 {
		sink.ReportError(malformed("OSC 4 requires index and color pairs"), LevelWarning)
		return
	}
	for i := 0; i < len(fields); i += 2 {
		index, err := strconv.Atoi(fields[i])
		if err != nil || index < 0 || index > 255 {
			sink.ReportError(&InvalidParameter{
				Command:  "SetPaletteColor",
				Value:    fields[i],
				Expected: "0 to 255",
			}, LevelError)
			continue
		}
		r, g, b, ok := colorSpec(fields[i+1])
		if !ok {
			sink.ReportError(malformed("OSC 4 color "+strconv.Quote(fields[i+1])), LevelWarning)
			continue
		}
		sink.OperatingSystemCommand(SetPaletteColor{Index: uint8(index), R: r, G: g, B: b}) //nolint:gosec
	}
}

// colorSpec decodes the X11 forms rgb:r/g/b, with one to four hex digits
// per component, and #rgb or #rrggbb.
func colorSpec(s string) (uint8, uint8, uint8, bool) {
	if hex, ok := strings.CutPrefix(s, "#"); ok {
		return Hex(hex).RGB()
	}
	rest, ok := strings.CutPrefix(strings.ToLower(s), "rgb:")
	if !ok {
		return 0, 0, 0, false
	}
	parts := strings.Split(rest, "/")
	if len(parts) != 3 { //nolint:mnd
		return 0, 0, 0, false
	}
	var rgb [3]uint8
	for i, part := range parts {
		v, ok := scaleHex(part)
		if !ok {
			return 0, 0, 0, false
		}
		rgb[i] = v
	}
	return rgb[0], rgb[1], rgb[2], true
}

// scaleHex converts a 1 to 4 digit hex component to 8 bits.
func scaleHex(s string) (uint8, bool) {
	if len(s) < 1 || len(s) > 4 {
		return 0, false
	}
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, false
	}
	hi := uint64(1)<<(4*len(s)) - 1
	return uint8(v * 255 / hi), true //nolint:gosec,mnd
}
