package bbsdecode

// TerminalRequest is a query the host expects the terminal to answer.
type TerminalRequest interface {
	isTerminalRequest()
}

type (
	RequestDeviceAttributes          struct{} // RequestDeviceAttributes is DA, CSI c
	RequestSecondaryDeviceAttributes struct{} // RequestSecondaryDeviceAttributes is CSI > c
	RequestExtendedDeviceAttributes  struct{} // RequestExtendedDeviceAttributes is the SyncTERM CSI < c
	RequestDeviceStatusReport        struct{} // RequestDeviceStatusReport is DSR, CSI 5 n
	RequestCursorPositionReport      struct{} // RequestCursorPositionReport is CPR, CSI 6 n
	RequestScreenSizeReport          struct{} // RequestScreenSizeReport is CSI 255 n
	RequestMacroSpaceReport          struct{} // RequestMacroSpaceReport is DECMSR, CSI ? 62 n
	// RequestMemoryChecksumReport is DECCKSR, CSI ? 63 ; Pid n.
	// Sum is the 16-bit sum of every stored macro byte.
	RequestMemoryChecksumReport struct {
		ID  uint16
		Sum uint16
	}
	// RequestChecksumRectangularArea is DECRQCRA, CSI Pid ; Pp ; Pt ; Pl ; Pb ; Pr * y.
	RequestChecksumRectangularArea struct {
		ID, Page                 uint16
		Top, Left, Bottom, Right uint16
	}
	RequestTabStopReport        struct{}              // RequestTabStopReport is DECRQTSR, CSI $ w
	RequestFontStateReport      struct{}              // RequestFontStateReport is CSI = 1 n
	RequestFontModeReport       struct{}              // RequestFontModeReport is CSI = 2 n
	RequestFontDimensionReport  struct{}              // RequestFontDimensionReport is CSI = 3 n
	RequestAnsiModeReport       struct{ Mode uint16 } // RequestAnsiModeReport is DECRQM, CSI Ps $ p
	RequestDecPrivateModeReport struct{ Mode uint16 } // RequestDecPrivateModeReport is DECRQM, CSI ? Ps $ p
)

func (RequestDeviceAttributes) isTerminalRequest()          {}
func (RequestSecondaryDeviceAttributes) isTerminalRequest() {}
func (RequestExtendedDeviceAttributes) isTerminalRequest()  {}
func (RequestDeviceStatusReport) isTerminalRequest()        {}
func (RequestCursorPositionReport) isTerminalRequest()      {}
func (RequestScreenSizeReport) isTerminalRequest()          {}
func (RequestMacroSpaceReport) isTerminalRequest()          {}
func (RequestMemoryChecksumReport) isTerminalRequest()      {}
func (RequestChecksumRectangularArea) isTerminalRequest()   {}
func (RequestTabStopReport) isTerminalRequest()             {}
func (RequestFontStateReport) isTerminalRequest()           {}
func (RequestFontModeReport) isTerminalRequest()            {}
func (RequestFontDimensionReport) isTerminalRequest()       {}
func (RequestAnsiModeReport) isTerminalRequest()            {}
func (RequestDecPrivateModeReport) isTerminalRequest()      {}

// DeviceControlString is a decoded DCS payload.
type DeviceControlString interface {
	isDeviceControlString()
}

// LoadFont is the CTerm font upload, DCS CTerm:Font:slot:base64 ST.
type LoadFont struct {
	Slot int
	Data []byte
}

// Sixel is a sixel image, DCS P1 ; P2 q data ST.
type Sixel struct {
	VerticalScale int  // VerticalScale is the pixel aspect ratio selected by P1
	Transparent   bool // Transparent is true when P2 is 1
	Data          []byte
}

func (LoadFont) isDeviceControlString() {}
func (Sixel) isDeviceControlString()    {}

// OperatingSystemCommand is a decoded OSC payload.
type OperatingSystemCommand interface {
	isOperatingSystemCommand()
}

type (
	SetTitle       struct{ Title string } // SetTitle is OSC 0
	SetIconName    struct{ Name string }  // SetIconName is OSC 1
	SetWindowTitle struct{ Title string } // SetWindowTitle is OSC 2
	// Hyperlink is OSC 8 ; params ; uri.
	// An empty URI closes the link.
	Hyperlink struct {
		Params string
		URI    string
	}
	// SetPaletteColor is OSC 4 ; index ; rgb:rr/gg/bb.
	SetPaletteColor struct {
		Index   uint8
		R, G, B uint8
	}
)

func (SetTitle) isOperatingSystemCommand()        {}
func (SetIconName) isOperatingSystemCommand()     {}
func (SetWindowTitle) isOperatingSystemCommand()  {}
func (Hyperlink) isOperatingSystemCommand()       {}
func (SetPaletteColor) isOperatingSystemCommand() {}
