package bbsdecode

import (
	"strconv"
	"strings"
)

// maxParams caps the parameters kept for one sequence. Extra values are
// dropped and [Params.Dropped] reports it.
const maxParams = 32

// Params is the numeric parameter list of a control sequence.
// Values saturate at [MaxParam]. An empty parameter, such as the first
// value of "CSI ;5H", is stored as -1 and reads back as the command default.
type Params struct {
	vals    []int
	colon   []bool // colon[i] is true when vals[i] followed a ':' separator
	cur     int
	digits  bool
	started bool
	nextSub bool
	dropped bool
}

// ParseParams decodes a parameter string such as "38;5;93" or "4:2".
// Bytes other than digits and separators are ignored.
func ParseParams(s string) Params {
	var p Params
	for i := range len(s) {
		b := s[i]
		switch {
		case '0' <= b && b <= '9':
			p.digit(b)
		case b == ';' || b == ':':
			p.separator(b)
		}
	}
	p.finish()
	return p
}

func (p *Params) reset() {
	p.vals = p.vals[:0]
	p.colon = p.colon[:0]
	p.cur = 0
	p.digits = false
	p.started = false
	p.nextSub = false
	p.dropped = false
}

func (p *Params) digit(b byte) {
	p.started = true
	p.digits = true
	p.cur = min(p.cur*10+int(b-'0'), MaxParam) //nolint:mnd
}

func (p *Params) separator(b byte) {
	p.started = true
	p.push()
	p.nextSub = b == ':'
}

func (p *Params) push() {
	v := -1
	if p.digits {
		v = p.cur
	}
	if len(p.vals) < maxParams {
		p.vals = append(p.vals, v)
		p.colon = append(p.colon, p.nextSub)
	} else {
		p.dropped = true
	}
	p.cur = 0
	p.digits = false
	p.nextSub = false
}

// finish closes the last parameter once the final byte arrives.
func (p *Params) finish() {
	if p.started {
		p.push()
		p.started = false
	}
}

// Len returns the number of parameters, including empty ones.
func (p Params) Len() int { return len(p.vals) }

// Value returns parameter i and true, or false when it is missing or empty.
func (p Params) Value(i int) (int, bool) {
	if i < 0 || i >= len(p.vals) || p.vals[i] < 0 {
		return 0, false
	}
	return p.vals[i], true
}

// Get returns parameter i or def when it is missing or empty.
func (p Params) Get(i, def int) int {
	if v, ok := p.Value(i); ok {
		return v
	}
	return def
}

// Dropped reports whether values past the parameter limit were discarded.
func (p Params) Dropped() bool { return p.dropped }

// Sub reports whether parameter i is a colon separated sub-parameter.
func (p Params) Sub(i int) bool {
	return i >= 0 && i < len(p.colon) && p.colon[i]
}

// String returns the parameters in their written form.
func (p Params) String() string {
	var sb strings.Builder
	for i, v := range p.vals {
		if i > 0 {
			if p.colon[i] {
				sb.WriteByte(':')
			} else {
				sb.WriteByte(';')
			}
		}
		if v >= 0 {
			sb.WriteString(strconv.Itoa(v))
		}
	}
	return sb.String()
}

func (p Params) u16(i, def int) uint16 {
	return uint16(p.Get(i, def)) //nolint:gosec
}
