package bbsdecode

import (
	"fmt"
	"strconv"
)

// Direction of a cursor movement or scroll.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	}
	return "Direction(" + strconv.Itoa(int(d)) + ")"
}

// EraseInDisplayMode is the parameter of ED, CSI Ps J.
type EraseInDisplayMode uint8

const (
	DisplayCursorToEnd      EraseInDisplayMode = iota // 0, cursor to end of screen
	DisplayStartToCursor                              // 1, start of screen to cursor
	DisplayAll                                        // 2, entire screen
	DisplayAllAndScrollback                           // 3, entire screen and scrollback
)

func (m EraseInDisplayMode) String() string {
	return enumName(m, "CursorToEnd", "StartToCursor", "All", "AllAndScrollback")
}

func eraseInDisplayMode(v int) (EraseInDisplayMode, bool) {
	if v < 0 || v > int(DisplayAllAndScrollback) {
		return DisplayCursorToEnd, false
	}
	return EraseInDisplayMode(v), true
}

// EraseInLineMode is the parameter of EL, CSI Ps K.
type EraseInLineMode uint8

const (
	LineCursorToEnd  EraseInLineMode = iota // 0, cursor to end of line
	LineStartToCursor                       // 1, start of line to cursor
	LineAll                                 // 2, entire line
)

func (m EraseInLineMode) String() string {
	return enumName(m, "CursorToEnd", "StartToCursor", "All")
}

func eraseInLineMode(v int) (EraseInLineMode, bool) {
	if v < 0 || v > int(LineAll) {
		return LineCursorToEnd, false
	}
	return EraseInLineMode(v), true
}

// AnsiMode is a standard mode toggled by SM and RM, CSI Ps h and CSI Ps l.
type AnsiMode uint16

// InsertReplace is IRM, the only ANSI mode used by BBS terminals.
const InsertReplace AnsiMode = 4

func ansiMode(v int) (AnsiMode, bool) {
	if v == int(InsertReplace) {
		return InsertReplace, true
	}
	return 0, false
}

func (m AnsiMode) String() string {
	if m == InsertReplace {
		return "InsertReplace"
	}
	return "AnsiMode(" + strconv.Itoa(int(m)) + ")"
}

// DecPrivateMode is a DEC private mode toggled by CSI ? Ps h and CSI ? Ps l.
type DecPrivateMode uint16

const (
	SmoothScroll        DecPrivateMode = 4
	OriginMode          DecPrivateMode = 6
	AutoWrap            DecPrivateMode = 7
	X10Mouse            DecPrivateMode = 9
	CursorVisible       DecPrivateMode = 25
	IceColors           DecPrivateMode = 33
	CursorBlinking      DecPrivateMode = 35
	LeftRightMargin     DecPrivateMode = 69
	VT200Mouse          DecPrivateMode = 1000
	VT200HighlightMouse DecPrivateMode = 1001
	ButtonEventMouse    DecPrivateMode = 1002
	AnyEventMouse       DecPrivateMode = 1003
	FocusEvent          DecPrivateMode = 1004
	ExtendedMouseUTF8   DecPrivateMode = 1005
	ExtendedMouseSGR    DecPrivateMode = 1006
	AlternateScroll     DecPrivateMode = 1007
	ExtendedMouseURXVT  DecPrivateMode = 1015
	ExtendedMousePixel  DecPrivateMode = 1016
)

var decPrivateModes = map[DecPrivateMode]string{
	SmoothScroll:        "SmoothScroll",
	OriginMode:          "OriginMode",
	AutoWrap:            "AutoWrap",
	X10Mouse:            "X10Mouse",
	CursorVisible:       "CursorVisible",
	IceColors:           "IceColors",
	CursorBlinking:      "CursorBlinking",
	LeftRightMargin:     "LeftRightMargin",
	VT200Mouse:          "VT200Mouse",
	VT200HighlightMouse: "VT200HighlightMouse",
	ButtonEventMouse:    "ButtonEventMouse",
	AnyEventMouse:       "AnyEventMouse",
	FocusEvent:          "FocusEvent",
	ExtendedMouseUTF8:   "ExtendedMouseUTF8",
	ExtendedMouseSGR:    "ExtendedMouseSGR",
	AlternateScroll:     "AlternateScroll",
	ExtendedMouseURXVT:  "ExtendedMouseURXVT",
	ExtendedMousePixel:  "ExtendedMousePixel",
}

func decPrivateMode(v int) (DecPrivateMode, bool) {
	if v < 0 || v > MaxParam {
		return 0, false
	}
	m := DecPrivateMode(v)
	_, ok := decPrivateModes[m]
	return m, ok
}

func (m DecPrivateMode) String() string {
	if s, ok := decPrivateModes[m]; ok {
		return s
	}
	return "DecPrivateMode(" + strconv.Itoa(int(m)) + ")"
}

// CaretShape is the cursor shape selected by DECSCUSR, CSI Ps SP q.
type CaretShape uint8

const (
	CaretBlock CaretShape = iota
	CaretUnderline
	CaretBar
)

func (c CaretShape) String() string {
	switch c {
	case CaretBlock:
		return "Block"
	case CaretUnderline:
		return "Underline"
	case CaretBar:
		return "Bar"
	}
	return "CaretShape(" + strconv.Itoa(int(c)) + ")"
}

// caretStyle returns the blinking state and shape of a DECSCUSR value.
// Unknown values fall back to a blinking block.
//
//nolint:mnd
func caretStyle(v int) (bool, CaretShape) {
	switch v {
	case 2:
		return false, CaretBlock
	case 3:
		return true, CaretUnderline
	case 4:
		return false, CaretUnderline
	case 5:
		return true, CaretBar
	case 6:
		return false, CaretBar
	}
	return true, CaretBlock
}

// SpecialKey is a key reported with CSI Pn ~.
type SpecialKey uint8

const (
	KeyHome SpecialKey = iota + 1
	KeyInsert
	KeyDelete
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// SpecialKeys lists every key in declaration order.
func SpecialKeys() []SpecialKey {
	keys := make([]SpecialKey, 0, KeyF12)
	for k := KeyHome; k <= KeyF12; k++ {
		keys = append(keys, k)
	}
	return keys
}

var keyCodes = map[SpecialKey]int{
	KeyHome: 7, KeyInsert: 2, KeyDelete: 3, KeyEnd: 8, KeyPageUp: 5, KeyPageDown: 6,
	KeyF1: 11, KeyF2: 12, KeyF3: 13, KeyF4: 14, KeyF5: 15,
	KeyF6: 17, KeyF7: 18, KeyF8: 19, KeyF9: 20, KeyF10: 21,
	KeyF11: 23, KeyF12: 24,
}

var keyNames = [...]string{
	"", "Home", "Insert", "Delete", "End", "PageUp", "PageDown",
	"F1", "F2", "F3", "F4", "F5", "F6", "F7", "F8", "F9", "F10", "F11", "F12",
}

//nolint:mnd
func specialKey(v int) (SpecialKey, bool) {
	switch v {
	case 1, 7:
		return KeyHome, true
	case 2:
		return KeyInsert, true
	case 3:
		return KeyDelete, true
	case 4, 8:
		return KeyEnd, true
	case 5:
		return KeyPageUp, true
	case 6:
		return KeyPageDown, true
	}
	for k, code := range keyCodes {
		if code == v && k >= KeyF1 {
			return k, true
		}
	}
	return 0, false
}

// ToSequence returns the escape sequence a terminal sends for the key.
func (k SpecialKey) ToSequence() string {
	code, ok := keyCodes[k]
	if !ok {
		return ""
	}
	return fmt.Sprintf("\x1b[%d~", code)
}

func (k SpecialKey) String() string {
	if k >= KeyHome && k <= KeyF12 {
		return keyNames[k]
	}
	return "SpecialKey(" + strconv.Itoa(int(k)) + ")"
}

// CommunicationLine is the first parameter of CSI Ps1 ; Ps2 * r.
type CommunicationLine uint8

const (
	CommHostTransmit CommunicationLine = iota
	CommHostReceive
	CommPrinter
	CommModemHi
	CommModemLo
)

//nolint:mnd
func communicationLine(v int) CommunicationLine {
	switch v {
	case 2:
		return CommHostReceive
	case 3:
		return CommPrinter
	case 4:
		return CommModemHi
	case 5:
		return CommModemLo
	}
	return CommHostTransmit
}

// BaudEmulation is the emulated line speed in bits per second.
// Zero turns the emulation off.
type BaudEmulation uint32

var baudRates = [...]BaudEmulation{0, 300, 600, 1200, 2400, 4800, 9600, 19200, 38400, 57600, 76800, 115200}

func baudEmulation(v int) (BaudEmulation, bool) {
	if v < 0 || v >= len(baudRates) {
		return 0, false
	}
	return baudRates[v], true
}

// MarginType selects the edge set by CSI = Ps ; Pn m.
type MarginType uint8

const (
	MarginTop MarginType = iota
	MarginBottom
	MarginLeft
	MarginRight
)

func marginType(v int) (MarginType, bool) {
	if v < 0 || v > int(MarginRight) {
		return 0, false
	}
	return MarginType(v), true
}
