package bbsdecode

import (
	"fmt"
	"strconv"
	"strings"
)

// IgsCommand is a decoded IGS graphics command.
// String returns the command in its G# wire form, so a decoded command can be
// sent again or compared against the input.
// The set of implementations is closed, use a type switch to handle them.
type IgsCommand interface {
	fmt.Stringer
	isIgsCommand()
}

// Drawing.
type (
	// Box is B, a rectangle with optional rounded corners.
	Box struct {
		X1, Y1, X2, Y2 int
		Rounded        bool
	}
	// Line is L.
	Line struct {
		X1, Y1, X2, Y2 int
	}
	// LineDrawTo is D, a line from the last point.
	LineDrawTo struct {
		X, Y int
	}
	// Circle is O.
	Circle struct {
		X, Y, Radius int
	}
	// Ellipse is Q.
	Ellipse struct {
		X, Y, XRadius, YRadius int
	}
	// Arc is K.
	Arc struct {
		X, Y, Radius, StartAngle, EndAngle int
	}
	// EllipticalArc is J.
	EllipticalArc struct {
		X, Y, XRadius, YRadius, StartAngle, EndAngle int
	}
	// PieSlice is V.
	PieSlice struct {
		X, Y, Radius, StartAngle, EndAngle int
	}
	// EllipticalPieSlice is Y.
	EllipticalPieSlice struct {
		X, Y, XRadius, YRadius, StartAngle, EndAngle int
	}
	// PolyLine is z, the points are x,y pairs.
	PolyLine struct {
		Points []int
	}
	// PolyFill is f, a filled polygon of x,y pairs.
	PolyFill struct {
		Points []int
	}
	// FloodFill is F.
	FloodFill struct {
		X, Y int
	}
	// PolymarkerPlot is P.
	PolymarkerPlot struct {
		X, Y int
	}
	// RoundedRectangles is U.
	RoundedRectangles struct {
		X1, Y1, X2, Y2 int
		Fill           bool
	}
	// FilledRectangle is Z.
	FilledRectangle struct {
		X1, Y1, X2, Y2 int
	}
	// GrabScreen is G, a blit between screen and memory.
	GrabScreen struct {
		BlitType, Mode int
		Params         []int
	}
)

// Pens, colours and styles.
type (
	ColorSet       struct{ Pen, Color int }            // ColorSet is C
	SetPenColor    struct{ Pen, Red, Green, Blue int } // SetPenColor is S, components 0 to 7
	LineStyle      struct{ Kind, Style, Value int }    // LineStyle is T
	DrawingMode    struct{ Mode int }                  // DrawingMode is M, 1 replace to 4 reverse transparent
	HollowSet      struct{ Enabled bool }              // HollowSet is H
	GraphicScaling struct{ Mode int }                  // GraphicScaling is g
	SetResolution  struct{ Resolution, Palette int }   // SetResolution is R
	Initialize     struct{ Mode int }                  // Initialize is I
	ScreenClear    struct{ Mode int }                  // ScreenClear is s
	// AttributeForFills is A.
	AttributeForFills struct {
		PatternType, PatternIndex int
		Border                    bool
	}
)

// Text.
type (
	// WriteText is W, text drawn at a pixel position.
	WriteText struct {
		X, Y int
		Text string
	}
	TextEffects    struct{ Effects, Size, Rotation int } // TextEffects is E
	Cursor         struct{ Mode int }                    // Cursor is k
	PositionCursor struct{ X, Y int }                    // PositionCursor is p
	RememberCursor struct{ Value int }                   // RememberCursor is r
	InverseVideo   struct{ Enabled bool }                // InverseVideo is v
	LineWrap       struct{ Enabled bool }                // LineWrap is w
	DeleteLine     struct{ Count int }                   // DeleteLine is d
	InsertLine     struct{ Mode, Count int }             // InsertLine is i
	ClearLine      struct{ Mode int }                    // ClearLine is l
	CursorMotion   struct{ Direction, Count int }        // CursorMotion is m
)

// Sound and timing.
type (
	BellsAndWhistles   struct{ Sound int }    // BellsAndWhistles is b, a built in sound effect
	StopAllSound       struct{}               // StopAllSound is b 21
	RestoreSoundEffect struct{ Sound int }    // RestoreSoundEffect is b 22
	SetEffectLoops     struct{ Count int }    // SetEffectLoops is b 23
	Noise              struct{ Params []int } // Noise is N
	PauseSeconds       struct{ Seconds int }  // PauseSeconds is t
	VsyncPause         struct{ Vsyncs int }   // VsyncPause is q
	// AlterSoundEffect is b 20, it changes one element of a sound effect.
	AlterSoundEffect struct {
		PlayFlag, Sound, Element, Negative, Thousands, Hundreds int
	}
	// ChipMusic is n, a note on the sound chip.
	ChipMusic struct {
		Effect, Voice, Volume, Pitch, Timing, StopType int
	}
)

// Input and queries.
type (
	// InputCommand is <.
	InputCommand struct {
		InputType int
		Params    []int
	}
	AskIG struct{ Query int } // AskIG is ?
)

// Extended commands, X.
type (
	// SprayPaint is X 0.
	SprayPaint struct {
		X, Y, Width, Height, Density int
	}
	SetColorRegister struct{ Register, Value int } // SetColorRegister is X 1
	// DefineZone is X 4, a mouse zone with a string sent when clicked.
	// Zone ids 9997 to 9999 clear the zones or toggle loopback and carry no area.
	DefineZone struct {
		ZoneID         int
		X1, Y1, X2, Y2 int
		Length         int
		Text           string
	}
	LeftMouseButton struct{ Mode int } // LeftMouseButton is X 6
	// LoadFillPattern is X 7, the pattern data is the raw text up to ':'.
	LoadFillPattern struct {
		Pattern int
		Data    string
	}
	// RotateColorRegisters is X 8.
	RotateColorRegisters struct {
		StartReg, EndReg, Count, Delay int
	}
	SetDrawtoBegin struct{ X, Y int } // SetDrawtoBegin is X 10
	// ExtendedCommand is an X command carried as plain numbers:
	// the random range, right mouse macros, flow control, MIDI buffers,
	// bitblit memory and colour palettes.
	ExtendedCommand struct {
		Kind   ExtendedKind
		Params []int
	}
)

// ExtendedKind is the first parameter of an [ExtendedCommand].
type ExtendedKind int

const (
	XSetRandomRange    ExtendedKind = 2
	XRightMouseMacro   ExtendedKind = 3
	XFlowControl       ExtendedKind = 5
	XLoadMidiBuffer    ExtendedKind = 9
	XLoadBitblitMemory ExtendedKind = 11
	XLoadColorPalette  ExtendedKind = 12
)

func (k ExtendedKind) String() string {
	switch k {
	case XSetRandomRange:
		return "SetRandomRange"
	case XRightMouseMacro:
		return "RightMouseMacro"
	case XFlowControl:
		return "FlowControl"
	case XLoadMidiBuffer:
		return "LoadMidiBuffer"
	case XLoadBitblitMemory:
		return "LoadBitblitMemory"
	case XLoadColorPalette:
		return "LoadColorPalette"
	}
	return "ExtendedKind(" + strconv.Itoa(int(k)) + ")"
}

func (Box) isIgsCommand()                  {}
func (Line) isIgsCommand()                 {}
func (LineDrawTo) isIgsCommand()           {}
func (Circle) isIgsCommand()               {}
func (Ellipse) isIgsCommand()              {}
func (Arc) isIgsCommand()                  {}
func (EllipticalArc) isIgsCommand()        {}
func (PieSlice) isIgsCommand()             {}
func (EllipticalPieSlice) isIgsCommand()   {}
func (PolyLine) isIgsCommand()             {}
func (PolyFill) isIgsCommand()             {}
func (FloodFill) isIgsCommand()            {}
func (PolymarkerPlot) isIgsCommand()       {}
func (RoundedRectangles) isIgsCommand()    {}
func (FilledRectangle) isIgsCommand()      {}
func (GrabScreen) isIgsCommand()           {}
func (ColorSet) isIgsCommand()             {}
func (SetPenColor) isIgsCommand()          {}
func (AttributeForFills) isIgsCommand()    {}
func (LineStyle) isIgsCommand()            {}
func (DrawingMode) isIgsCommand()          {}
func (HollowSet) isIgsCommand()            {}
func (GraphicScaling) isIgsCommand()       {}
func (SetResolution) isIgsCommand()        {}
func (Initialize) isIgsCommand()           {}
func (ScreenClear) isIgsCommand()          {}
func (WriteText) isIgsCommand()            {}
func (TextEffects) isIgsCommand()          {}
func (Cursor) isIgsCommand()               {}
func (PositionCursor) isIgsCommand()       {}
func (RememberCursor) isIgsCommand()       {}
func (InverseVideo) isIgsCommand()         {}
func (LineWrap) isIgsCommand()             {}
func (DeleteLine) isIgsCommand()           {}
func (InsertLine) isIgsCommand()           {}
func (ClearLine) isIgsCommand()            {}
func (CursorMotion) isIgsCommand()         {}
func (BellsAndWhistles) isIgsCommand()     {}
func (AlterSoundEffect) isIgsCommand()     {}
func (StopAllSound) isIgsCommand()         {}
func (RestoreSoundEffect) isIgsCommand()   {}
func (SetEffectLoops) isIgsCommand()       {}
func (Noise) isIgsCommand()                {}
func (ChipMusic) isIgsCommand()            {}
func (PauseSeconds) isIgsCommand()         {}
func (VsyncPause) isIgsCommand()           {}
func (InputCommand) isIgsCommand()         {}
func (AskIG) isIgsCommand()                {}
func (SprayPaint) isIgsCommand()           {}
func (SetColorRegister) isIgsCommand()     {}
func (DefineZone) isIgsCommand()           {}
func (LeftMouseButton) isIgsCommand()      {}
func (LoadFillPattern) isIgsCommand()      {}
func (RotateColorRegisters) isIgsCommand() {}
func (SetDrawtoBegin) isIgsCommand()       {}
func (ExtendedCommand) isIgsCommand()      {}
func (LoopCommandData) isIgsCommand()      {}

// igs writes a command letter and its parameters as G#c>a,b,c:.
func igs(letter byte, args ...int) string {
	var sb strings.Builder
	sb.WriteString("G#")
	sb.WriteByte(letter)
	sb.WriteByte('>')
	sb.WriteString(joinInts(args))
	sb.WriteByte(':')
	return sb.String()
}

func joinInts(args []int) string {
	s := make([]string, len(args))
	for i, v := range args {
		s[i] = strconv.Itoa(v)
	}
	return strings.Join(s, ",")
}

func bit(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (c Box) String() string {
	return igs('B', c.X1, c.Y1, c.X2, c.Y2, bit(c.Rounded))
}
func (c Line) String() string       { return igs('L', c.X1, c.Y1, c.X2, c.Y2) }
func (c LineDrawTo) String() string { return igs('D', c.X, c.Y) }
func (c Circle) String() string     { return igs('O', c.X, c.Y, c.Radius) }
func (c Ellipse) String() string    { return igs('Q', c.X, c.Y, c.XRadius, c.YRadius) }
func (c Arc) String() string {
	return igs('K', c.X, c.Y, c.Radius, c.StartAngle, c.EndAngle)
}
func (c EllipticalArc) String() string {
	return igs('J', c.X, c.Y, c.XRadius, c.YRadius, c.StartAngle, c.EndAngle)
}
func (c PieSlice) String() string {
	return igs('V', c.X, c.Y, c.Radius, c.StartAngle, c.EndAngle)
}
func (c EllipticalPieSlice) String() string {
	return igs('Y', c.X, c.Y, c.XRadius, c.YRadius, c.StartAngle, c.EndAngle)
}
func (c PolyLine) String() string {
	return igs('z', append([]int{len(c.Points) / 2}, c.Points...)...) //nolint:mnd
}
func (c PolyFill) String() string {
	return igs('f', append([]int{len(c.Points) / 2}, c.Points...)...) //nolint:mnd
}
func (c FloodFill) String() string      { return igs('F', c.X, c.Y) }
func (c PolymarkerPlot) String() string { return igs('P', c.X, c.Y) }
func (c RoundedRectangles) String() string {
	return igs('U', c.X1, c.Y1, c.X2, c.Y2, bit(c.Fill))
}
func (c FilledRectangle) String() string { return igs('Z', c.X1, c.Y1, c.X2, c.Y2) }
func (c GrabScreen) String() string {
	return igs('G', append([]int{c.BlitType, c.Mode}, c.Params...)...)
}
func (c ColorSet) String() string    { return igs('C', c.Pen, c.Color) }
func (c SetPenColor) String() string { return igs('S', c.Pen, c.Red, c.Green, c.Blue) }
func (c AttributeForFills) String() string {
	return igs('A', c.PatternType, c.PatternIndex, bit(c.Border))
}
func (c LineStyle) String() string      { return igs('T', c.Kind, c.Style, c.Value) }
func (c DrawingMode) String() string    { return igs('M', c.Mode) }
func (c HollowSet) String() string      { return igs('H', bit(c.Enabled)) }
func (c GraphicScaling) String() string { return igs('g', c.Mode) }
func (c SetResolution) String() string  { return igs('R', c.Resolution, c.Palette) }
func (c Initialize) String() string     { return igs('I', c.Mode) }
func (c ScreenClear) String() string    { return igs('s', c.Mode) }

// String writes the text form W>x,y,text@, the text ends at the '@'.
func (c WriteText) String() string {
	return "G#W>" + strconv.Itoa(c.X) + "," + strconv.Itoa(c.Y) + "," + c.Text + "@"
}
func (c TextEffects) String() string    { return igs('E', c.Effects, c.Size, c.Rotation) }
func (c Cursor) String() string         { return igs('k', c.Mode) }
func (c PositionCursor) String() string { return igs('p', c.X, c.Y) }
func (c RememberCursor) String() string { return igs('r', c.Value) }
func (c InverseVideo) String() string   { return igs('v', bit(c.Enabled)) }
func (c LineWrap) String() string       { return igs('w', bit(c.Enabled)) }
func (c DeleteLine) String() string     { return igs('d', c.Count) }
func (c InsertLine) String() string     { return igs('i', c.Mode, c.Count) }
func (c ClearLine) String() string      { return igs('l', c.Mode) }
func (c CursorMotion) String() string   { return igs('m', c.Direction, c.Count) }

func (c BellsAndWhistles) String() string { return igs('b', c.Sound) }
func (c AlterSoundEffect) String() string {
	return igs('b', 20, c.PlayFlag, c.Sound, c.Element, c.Negative, c.Thousands, c.Hundreds) //nolint:mnd
}
func (StopAllSound) String() string         { return igs('b', 21) } //nolint:mnd
func (c RestoreSoundEffect) String() string { return igs('b', 22, c.Sound) } //nolint:mnd
func (c SetEffectLoops) String() string     { return igs('b', 23, c.Count) } //nolint:mnd
func (c Noise) String() string              { return igs('N', c.Params...) }
func (c ChipMusic) String() string {
	return igs('n', c.Effect, c.Voice, c.Volume, c.Pitch, c.Timing, c.StopType)
}
func (c PauseSeconds) String() string { return igs('t', c.Seconds) }
func (c VsyncPause) String() string   { return igs('q', c.Vsyncs) }

func (c InputCommand) String() string {
	return igs('<', append([]int{c.InputType}, c.Params...)...)
}
func (c AskIG) String() string { return igs('?', c.Query) }

func (c SprayPaint) String() string {
	return igs('X', 0, c.X, c.Y, c.Width, c.Height, c.Density)
}
func (c SetColorRegister) String() string { return igs('X', 1, c.Register, c.Value) }

//nolint:mnd
func (c DefineZone) String() string {
	if c.ZoneID >= 9997 && c.ZoneID <= 9999 {
		return igs('X', 4, c.ZoneID)
	}
	return "G#X>4," + joinInts([]int{c.ZoneID, c.X1, c.Y1, c.X2, c.Y2, c.Length}) + "," + c.Text + ":"
}
func (c LeftMouseButton) String() string { return igs('X', 6, c.Mode) } //nolint:mnd
func (c LoadFillPattern) String() string {
	return "G#X>7," + strconv.Itoa(c.Pattern) + "," + c.Data + ":"
}
func (c RotateColorRegisters) String() string {
	return igs('X', 8, c.StartReg, c.EndReg, c.Count, c.Delay) //nolint:mnd
}
func (c SetDrawtoBegin) String() string { return igs('X', 10, c.X, c.Y) } //nolint:mnd
func (c ExtendedCommand) String() string {
	return igs('X', append([]int{int(c.Kind)}, c.Params...)...)
}

// igsBuilder materializes a command from its numeric parameters.
// A command is only built when at least min parameters are present.
type igsBuilder struct {
	min   int
	build func(a []int, text string) IgsCommand
}

// BuildIgs resolves a command letter and its parameters to a command.
// It returns nil for an unknown letter, too few parameters or an
// unknown sub-command.
func BuildIgs(letter byte, a []int, text string) IgsCommand {
	b, ok := igsBuilders[letter]
	if !ok || len(a) < b.min {
		return nil
	}
	return b.build(a, text)
}

// IgsMinParams returns the number of parameters the command letter requires
// and false when the letter is not an IGS command.
func IgsMinParams(letter byte) (int, bool) {
	b, ok := igsBuilders[letter]
	return b.min, ok
}

//nolint:gochecknoglobals,mnd
var igsBuilders = map[byte]igsBuilder{
	'A': {3, func(a []int, _ string) IgsCommand { return AttributeForFills{a[0], a[1], a[2] != 0} }},
	'B': {4, func(a []int, _ string) IgsCommand {
		return Box{X1: a[0], Y1: a[1], X2: a[2], Y2: a[3], Rounded: len(a) > 4 && a[4] != 0}
	}},
	'C': {2, func(a []int, _ string) IgsCommand { return ColorSet{a[0], a[1]} }},
	'D': {2, func(a []int, _ string) IgsCommand { return LineDrawTo{a[0], a[1]} }},
	'E': {3, func(a []int, _ string) IgsCommand { return TextEffects{a[0], a[1], a[2]} }},
	'F': {2, func(a []int, _ string) IgsCommand { return FloodFill{a[0], a[1]} }},
	'G': {2, func(a []int, _ string) IgsCommand { return GrabScreen{a[0], a[1], clone(a[2:])} }},
	'H': {1, func(a []int, _ string) IgsCommand { return HollowSet{a[0] != 0} }},
	'I': {1, func(a []int, _ string) IgsCommand { return Initialize{a[0]} }},
	'J': {6, func(a []int, _ string) IgsCommand { return EllipticalArc{a[0], a[1], a[2], a[3], a[4], a[5]} }},
	'K': {5, func(a []int, _ string) IgsCommand { return Arc{a[0], a[1], a[2], a[3], a[4]} }},
	'L': {4, func(a []int, _ string) IgsCommand { return Line{a[0], a[1], a[2], a[3]} }},
	'M': {1, func(a []int, _ string) IgsCommand { return DrawingMode{a[0]} }},
	'N': {1, func(a []int, _ string) IgsCommand { return Noise{clone(a)} }},
	'O': {3, func(a []int, _ string) IgsCommand { return Circle{a[0], a[1], a[2]} }},
	'P': {2, func(a []int, _ string) IgsCommand { return PolymarkerPlot{a[0], a[1]} }},
	'Q': {4, func(a []int, _ string) IgsCommand { return Ellipse{a[0], a[1], a[2], a[3]} }},
	'R': {2, func(a []int, _ string) IgsCommand { return SetResolution{a[0], a[1]} }},
	'S': {4, func(a []int, _ string) IgsCommand { return SetPenColor{a[0], a[1], a[2], a[3]} }},
	'T': {3, func(a []int, _ string) IgsCommand { return LineStyle{a[0], a[1], a[2]} }},
	'U': {5, func(a []int, _ string) IgsCommand { return RoundedRectangles{a[0], a[1], a[2], a[3], a[4] != 0} }},
	'V': {5, func(a []int, _ string) IgsCommand { return PieSlice{a[0], a[1], a[2], a[3], a[4]} }},
	'W': {2, func(a []int, text string) IgsCommand { return WriteText{a[0], a[1], text} }},
	'X': {1, extended},
	'Y': {6, func(a []int, _ string) IgsCommand { return EllipticalPieSlice{a[0], a[1], a[2], a[3], a[4], a[5]} }},
	'Z': {4, func(a []int, _ string) IgsCommand { return FilledRectangle{a[0], a[1], a[2], a[3]} }},
	'b': {1, sound},
	'd': {1, func(a []int, _ string) IgsCommand { return DeleteLine{a[0]} }},
	'f': {1, func(a []int, _ string) IgsCommand { return polygon(a, false) }},
	'g': {1, func(a []int, _ string) IgsCommand { return GraphicScaling{a[0]} }},
	'i': {2, func(a []int, _ string) IgsCommand { return InsertLine{a[0], a[1]} }},
	'k': {1, func(a []int, _ string) IgsCommand { return Cursor{a[0]} }},
	'l': {1, func(a []int, _ string) IgsCommand { return ClearLine{a[0]} }},
	'm': {2, func(a []int, _ string) IgsCommand { return CursorMotion{a[0], a[1]} }},
	'n': {6, func(a []int, _ string) IgsCommand { return ChipMusic{a[0], a[1], a[2], a[3], a[4], a[5]} }},
	'p': {2, func(a []int, _ string) IgsCommand { return PositionCursor{a[0], a[1]} }},
	'q': {1, func(a []int, _ string) IgsCommand { return VsyncPause{a[0]} }},
	'r': {1, func(a []int, _ string) IgsCommand { return RememberCursor{a[0]} }},
	's': {1, func(a []int, _ string) IgsCommand { return ScreenClear{a[0]} }},
	't': {1, func(a []int, _ string) IgsCommand { return PauseSeconds{a[0]} }},
	'v': {1, func(a []int, _ string) IgsCommand { return InverseVideo{a[0] != 0} }},
	'w': {1, func(a []int, _ string) IgsCommand { return LineWrap{a[0] != 0} }},
	'z': {1, func(a []int, _ string) IgsCommand { return polygon(a, true) }},
	'<': {1, func(a []int, _ string) IgsCommand { return InputCommand{a[0], clone(a[1:])} }},
	'?': {1, func(a []int, _ string) IgsCommand { return AskIG{a[0]} }},
}

func clone(a []int) []int {
	if len(a) == 0 {
		return nil
	}
	return append([]int(nil), a...)
}

// polygon reads the point count followed by that many x,y pairs.
func polygon(a []int, line bool) IgsCommand {
	n := a[0]
	if n < 0 || len(a) < 1+2*n {
		return nil
	}
	points := clone(a[1 : 1+2*n])
	if line {
		return PolyLine{points}
	}
	return PolyFill{points}
}

//nolint:mnd
func sound(a []int, _ string) IgsCommand {
	switch a[0] {
	case 20:
		if len(a) < 7 {
			return nil
		}
		return AlterSoundEffect{a[1], a[2], a[3], a[4], a[5], a[6]}
	case 21:
		return StopAllSound{}
	case 22:
		if len(a) < 2 {
			return nil
		}
		return RestoreSoundEffect{a[1]}
	case 23:
		if len(a) < 2 {
			return nil
		}
		return SetEffectLoops{a[1]}
	}
	return BellsAndWhistles{a[0]}
}

//nolint:mnd,cyclop
func extended(a []int, text string) IgsCommand {
	need := func(n int) bool { return len(a) >= n }
	switch kind := a[0]; kind {
	case 0:
		if need(6) {
			return SprayPaint{a[1], a[2], a[3], a[4], a[5]}
		}
	case 1:
		if need(3) {
			return SetColorRegister{a[1], a[2]}
		}
	case 4:
		switch {
		case need(7):
			return DefineZone{ZoneID: a[1], X1: a[2], Y1: a[3], X2: a[4], Y2: a[5], Length: a[6], Text: text}
		case need(2):
			return DefineZone{ZoneID: a[1]}
		}
	case 6:
		if need(2) {
			return LeftMouseButton{a[1]}
		}
	case 7:
		if need(2) {
			return LoadFillPattern{Pattern: a[1], Data: text}
		}
	case 8:
		if need(5) {
			return RotateColorRegisters{a[1], a[2], a[3], a[4]}
		}
	case 10:
		if need(3) {
			return SetDrawtoBegin{a[1], a[2]}
		}
	case 2, 3, 5, 9, 11, 12:
		return ExtendedCommand{Kind: ExtendedKind(kind), Params: clone(a[1:])}
	}
	return nil
}
