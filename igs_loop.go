package bbsdecode

import (
	"strconv"
	"strings"
)

// LoopTarget is the command repeated by a loop, either one command letter
// or a chain gang of letters selected by the loop counter.
type LoopTarget struct {
	Commands []byte // Commands holds one letter, or the letters of a chain gang
	Chain    bool   // Chain is set for a chain gang, written >XYZ@
}

// Single returns the target of a loop over one command letter.
func Single(letter byte) LoopTarget {
	return LoopTarget{Commands: []byte{letter}}
}

// ChainGang returns the target of a loop over several command letters.
func ChainGang(letters string) LoopTarget {
	return LoopTarget{Commands: []byte(letters), Chain: true}
}

// Letter returns the command letter used when the counter is current.
// A chain gang picks the letter at |current| mod its length.
func (t LoopTarget) Letter(current int) (byte, bool) {
	n := len(t.Commands)
	if n == 0 {
		return 0, false
	}
	if !t.Chain {
		return t.Commands[0], true
	}
	if current < 0 {
		current = -current
	}
	return t.Commands[current%n], true
}

func (t LoopTarget) String() string {
	if t.Chain {
		return ">" + string(t.Commands) + "@"
	}
	return string(t.Commands)
}

// LoopModifiers are the flags written after the target letter.
type LoopModifiers struct {
	XorStepping bool // XorStepping is '|', draw every iteration in XOR mode
	RefreshText bool // RefreshText is '@', W fetches new text each iteration
}

func (m LoopModifiers) String() string {
	s := ""
	if m.XorStepping {
		s += "|"
	}
	if m.RefreshText {
		s += "@"
	}
	return s
}

// LoopParamToken is one token of the loop parameter stream.
// The set of implementations is closed, use a type switch to handle them.
type LoopParamToken interface {
	isLoopParamToken()
	String() string
}

// ExprOp is the operator of an [Expr] token.
type ExprOp uint8

const (
	OpAdd          ExprOp = iota // OpAdd is +k, the counter plus k
	OpSubtract                   // OpSubtract is -k, the counter minus k
	OpSubtractStep               // OpSubtractStep is !k, k minus the counter
)

// Loop parameter tokens.
type (
	Number         int      // Number is a constant
	StepForward    struct{} // StepForward is x, the loop counter
	StepReverse    struct{} // StepReverse is y, the counter reflected from the other end
	Random         struct{} // Random is r, a value from the random bounds
	GroupSeparator struct{} // GroupSeparator is ':' inside the parameters
	Text           string   // Text is a string for W, written up to '@'
	// Expr is +k, -k or !k.
	Expr struct {
		Op ExprOp
		K  int
	}
)

func (Number) isLoopParamToken()         {}
func (StepForward) isLoopParamToken()    {}
func (StepReverse) isLoopParamToken()    {}
func (Random) isLoopParamToken()         {}
func (GroupSeparator) isLoopParamToken() {}
func (Text) isLoopParamToken()           {}
func (Expr) isLoopParamToken()           {}

func (n Number) String() string       { return strconv.Itoa(int(n)) }
func (StepForward) String() string    { return "x" }
func (StepReverse) String() string    { return "y" }
func (Random) String() string         { return "r" }
func (GroupSeparator) String() string { return ":" }
func (t Text) String() string         { return string(t) + "@" }

func (e Expr) String() string {
	ops := [...]string{"+", "-", "!"}
	op := "+"
	if int(e.Op) < len(ops) {
		op = ops[e.Op]
	}
	return op + strconv.Itoa(e.K)
}

// LoopCommandData is the IGS loop, G#&>from,to,step,delay,target,count,params:.
// It is emitted as an [IgsCommand] and expanded with [LoopCommandData.Run].
type LoopCommandData struct {
	From, To, Step int
	Delay          int // Delay is in 1/200 s ticks, it is never slept on here
	Target         LoopTarget
	Modifiers      LoopModifiers
	ParamCount     int // ParamCount is the number of values used per iteration
	Params         []LoopParamToken
}

// IterationCount returns the number of iterations, |to-from| / |step| + 1.
// A zero step never iterates.
func (l LoopCommandData) IterationCount() int {
	if l.Step == 0 {
		return 0
	}
	return abs(l.To-l.From)/abs(l.Step) + 1
}

// Run expands the loop, sending every generated command to sink.
//
// The counter runs from From to To inclusive, stepping by |Step| in the
// direction of To. Each iteration takes ParamCount values from the parameter
// stream, wrapping to its start when it runs out, and builds the target
// command from them. Separators and texts do not count as values.
// An iteration whose values are too few for its command emits nothing.
func (l LoopCommandData) Run(sink CommandSink, bounds ParameterBounds) {
	n := l.IterationCount()
	if n == 0 {
		return
	}
	step := abs(l.Step)
	if l.From > l.To {
		step = -step
	}
	cur := cursor{tokens: l.Params}
	current := l.From
	for range n {
		letter, ok := l.Target.Letter(current)
		if !ok {
			return
		}
		values, text := cur.take(l.ParamCount, func(tok LoopParamToken) int {
			return l.resolve(tok, current, bounds)
		})
		if cmd := BuildIgs(letter, values, text); cmd != nil {
			sink.EmitIGS(cmd)
		}
		current += step
	}
}

// resolve substitutes the counter into a token.
func (l LoopCommandData) resolve(tok LoopParamToken, current int, bounds ParameterBounds) int {
	switch t := tok.(type) {
	case Number:
		return int(t)
	case StepForward:
		return current
	case StepReverse:
		return l.To + l.From - current
	case Random:
		return bounds.Mid()
	case Expr:
		switch t.Op {
		case OpAdd:
			return current + t.K
		case OpSubtract:
			return current - t.K
		case OpSubtractStep:
			return t.K - current
		}
	}
	return 0
}

// String returns the loop in its G# wire form.
func (l LoopCommandData) String() string {
	var sb strings.Builder
	sb.WriteString("G#&>")
	sb.WriteString(joinInts([]int{l.From, l.To, l.Step, l.Delay}))
	sb.WriteByte(',')
	sb.WriteString(l.Target.String())
	mods := l.Modifiers.String()
	sb.WriteString(mods)
	if mods == "" {
		sb.WriteByte(',')
	}
	sb.WriteString(strconv.Itoa(l.ParamCount))
	sep := true
	for _, tok := range l.Params {
		if _, ok := tok.(GroupSeparator); ok {
			sb.WriteByte(':')
			sep = false
			continue
		}
		if sep {
			sb.WriteByte(',')
		}
		sb.WriteString(tok.String())
		sep = true
	}
	sb.WriteByte(':')
	return sb.String()
}

// cursor reads the parameter stream cyclically.
type cursor struct {
	tokens []LoopParamToken
	pos    int
}

// take reads n values, skipping separators and remembering the last text.
func (c *cursor) take(n int, value func(LoopParamToken) int) ([]int, string) {
	var text string
	values := make([]int, 0, max(n, 0))
	skipped := 0
	for len(values) < n && skipped <= len(c.tokens) {
		if len(c.tokens) == 0 {
			break
		}
		tok := c.tokens[c.pos]
		c.pos = (c.pos + 1) % len(c.tokens)
		switch t := tok.(type) {
		case GroupSeparator:
			skipped++
			continue
		case Text:
			text = string(t)
			skipped++
			continue
		}
		skipped = 0
		values = append(values, value(tok))
	}
	return values, text
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
