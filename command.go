package bbsdecode

// TerminalCommand is a decoded control function.
// The set of implementations is closed, use a type switch to handle them.
type TerminalCommand interface {
	isTerminalCommand()
}

// C0 controls and single character ESC finals.
type (
	Bell             struct{} // Bell is BEL
	Backspace        struct{} // Backspace is BS
	Tab              struct{} // Tab is HT
	LineFeed         struct{} // LineFeed is LF
	FormFeed         struct{} // FormFeed is FF
	CarriageReturn   struct{} // CarriageReturn is CR
	Delete           struct{} // Delete is DEL
	EscIndex         struct{} // EscIndex is IND, ESC D
	EscNextLine      struct{} // EscNextLine is NEL, ESC E
	EscSetTab        struct{} // EscSetTab is HTS, ESC H
	EscReverseIndex  struct{} // EscReverseIndex is RI, ESC M
	EscSaveCursor    struct{} // EscSaveCursor is DECSC, ESC 7
	EscRestoreCursor struct{} // EscRestoreCursor is DECRC, ESC 8
	EscReset         struct{} // EscReset is RIS, ESC c
)

// Cursor movement.
type (
	// CsiMoveCursor is CUU, CUD, CUF and CUB, CSI Pn A to D.
	CsiMoveCursor struct {
		Direction Direction
		N         uint16
	}
	CsiCursorNextLine              struct{ N uint16 } // CsiCursorNextLine is CNL, CSI Pn E
	CsiCursorPreviousLine          struct{ N uint16 } // CsiCursorPreviousLine is CPL, CSI Pn F
	CsiCursorHorizontalAbsolute    struct{ N uint16 } // CsiCursorHorizontalAbsolute is CHA, CSI Pn G
	CsiLinePositionAbsolute        struct{ N uint16 } // CsiLinePositionAbsolute is VPA, CSI Pn d
	CsiLinePositionForward         struct{ N uint16 } // CsiLinePositionForward is VPR, CSI Pn e
	CsiCharacterPositionForward    struct{ N uint16 } // CsiCharacterPositionForward is HPR, CSI Pn a
	CsiHorizontalPositionAbsolute  struct{ N uint16 } // CsiHorizontalPositionAbsolute is HPA, CSI Pn '
	CsiCursorLineTabulationForward struct{ N uint16 } // CsiCursorLineTabulationForward is CVT, CSI Pn Y
	CsiCursorBackwardTabulation    struct{ N uint16 } // CsiCursorBackwardTabulation is CBT, CSI Pn Z
	// CsiCursorPosition is CUP and HVP, CSI Pr ; Pc H.
	// Both values are 1-based.
	CsiCursorPosition struct {
		Row, Col uint16
	}
	CsiSaveCursorPosition    struct{} // CsiSaveCursorPosition is SCOSC, CSI s
	CsiRestoreCursorPosition struct{} // CsiRestoreCursorPosition is SCORC, CSI u
)

// Erasing and editing.
type (
	CsiEraseInDisplay           struct{ Mode EraseInDisplayMode } // CsiEraseInDisplay is ED, CSI Ps J
	CsiEraseInLine              struct{ Mode EraseInLineMode }    // CsiEraseInLine is EL, CSI Ps K
	CsiInsertCharacter          struct{ N uint16 }                // CsiInsertCharacter is ICH, CSI Pn @
	CsiDeleteCharacter          struct{ N uint16 }                // CsiDeleteCharacter is DCH, CSI Pn P
	CsiEraseCharacter           struct{ N uint16 }                // CsiEraseCharacter is ECH, CSI Pn X
	CsiInsertLine               struct{ N uint16 }                // CsiInsertLine is IL, CSI Pn L
	CsiDeleteLine               struct{ N uint16 }                // CsiDeleteLine is DL, CSI Pn M
	CsiRepeatPrecedingCharacter struct{ N uint16 }                // CsiRepeatPrecedingCharacter is REP, CSI Pn b
	CsiClearTabulation          struct{}                          // CsiClearTabulation is TBC, CSI 0 g
	CsiClearAllTabs             struct{}                          // CsiClearAllTabs is TBC, CSI 3 g
	// CsiFillRectangularArea is DECFRA, CSI Pch ; Pt ; Pl ; Pb ; Pr $ x.
	CsiFillRectangularArea struct {
		Char                     uint16
		Top, Left, Bottom, Right uint16
	}
	// CsiEraseRectangularArea is DECERA, CSI Pt ; Pl ; Pb ; Pr $ z.
	CsiEraseRectangularArea struct {
		Top, Left, Bottom, Right uint16
	}
	// CsiSelectiveEraseRectangularArea is DECSERA, CSI Pt ; Pl ; Pb ; Pr $ {.
	CsiSelectiveEraseRectangularArea struct {
		Top, Left, Bottom, Right uint16
	}
)

// Scrolling and margins.
type (
	// CsiScroll is SU and SD, CSI Pn S and CSI Pn T,
	// plus SR and SL, CSI Pn SP A and CSI Pn SP @.
	CsiScroll struct {
		Direction Direction
		N         uint16
	}
	ResetMargins struct{} // ResetMargins is DECSTBM without parameters
	// SetTopBottomMargin is DECSTBM, CSI Pt ; Pb r.
	SetTopBottomMargin struct {
		Top, Bottom uint16
	}
	// SetLeftRightMargin is DECSLRM, CSI Pl ; Pr s.
	SetLeftRightMargin struct {
		Left, Right uint16
	}
	// CsiSetScrollingRegion is the four sided DECSTBM, CSI Pt ; Pb ; Pl ; Pr r.
	CsiSetScrollingRegion struct {
		Top, Bottom, Left, Right uint16
	}
	// CsiSetSpecificMargin is the SyncTERM CSI = Ps ; Pn m.
	CsiSetSpecificMargin struct {
		Margin MarginType
		Value  uint16
	}
)

// Attributes and modes.
type (
	CsiSelectGraphicRendition struct{ Attr SgrAttribute }   // CsiSelectGraphicRendition is one SGR attribute
	CsiSetMode                struct{ Mode AnsiMode }       // CsiSetMode is SM, CSI Ps h
	CsiResetMode              struct{ Mode AnsiMode }       // CsiResetMode is RM, CSI Ps l
	CsiDecPrivateModeSet      struct{ Mode DecPrivateMode } // CsiDecPrivateModeSet is DECSET, CSI ? Ps h
	CsiDecPrivateModeReset    struct{ Mode DecPrivateMode } // CsiDecPrivateModeReset is DECRST, CSI ? Ps l
)

// BBS and emulator extensions.
type (
	// CsiSetCaretStyle is DECSCUSR, CSI Ps SP q.
	CsiSetCaretStyle struct {
		Blinking bool
		Shape    CaretShape
	}
	// CsiFontSelection is the CTerm font selection, CSI Ps1 ; Ps2 SP D.
	CsiFontSelection struct {
		Slot uint16
		Font uint16
	}
	// CsiResizeTerminal is the xterm window size, CSI 8 ; Ph ; Pw t.
	CsiResizeTerminal struct {
		Height, Width uint16
	}
	CsiSpecialKey struct{ Key SpecialKey } // CsiSpecialKey is a key sequence, CSI Pn ~
	// CsiSelectCommunicationSpeed is DECSCS, CSI Ps1 ; Ps2 * r.
	CsiSelectCommunicationSpeed struct {
		Line CommunicationLine
		Baud BaudEmulation
	}
)

func (Bell) isTerminalCommand()                             {}
func (Backspace) isTerminalCommand()                        {}
func (Tab) isTerminalCommand()                              {}
func (LineFeed) isTerminalCommand()                         {}
func (FormFeed) isTerminalCommand()                         {}
func (CarriageReturn) isTerminalCommand()                   {}
func (Delete) isTerminalCommand()                           {}
func (EscIndex) isTerminalCommand()                         {}
func (EscNextLine) isTerminalCommand()                      {}
func (EscSetTab) isTerminalCommand()                        {}
func (EscReverseIndex) isTerminalCommand()                  {}
func (EscSaveCursor) isTerminalCommand()                    {}
func (EscRestoreCursor) isTerminalCommand()                 {}
func (EscReset) isTerminalCommand()                         {}
func (CsiMoveCursor) isTerminalCommand()                    {}
func (CsiCursorNextLine) isTerminalCommand()                {}
func (CsiCursorPreviousLine) isTerminalCommand()            {}
func (CsiCursorHorizontalAbsolute) isTerminalCommand()      {}
func (CsiLinePositionAbsolute) isTerminalCommand()          {}
func (CsiLinePositionForward) isTerminalCommand()           {}
func (CsiCharacterPositionForward) isTerminalCommand()      {}
func (CsiHorizontalPositionAbsolute) isTerminalCommand()    {}
func (CsiCursorLineTabulationForward) isTerminalCommand()   {}
func (CsiCursorBackwardTabulation) isTerminalCommand()      {}
func (CsiCursorPosition) isTerminalCommand()                {}
func (CsiSaveCursorPosition) isTerminalCommand()            {}
func (CsiRestoreCursorPosition) isTerminalCommand()         {}
func (CsiEraseInDisplay) isTerminalCommand()                {}
func (CsiEraseInLine) isTerminalCommand()                   {}
func (CsiInsertCharacter) isTerminalCommand()               {}
func (CsiDeleteCharacter) isTerminalCommand()               {}
func (CsiEraseCharacter) isTerminalCommand()                {}
func (CsiInsertLine) isTerminalCommand()                    {}
func (CsiDeleteLine) isTerminalCommand()                    {}
func (CsiRepeatPrecedingCharacter) isTerminalCommand()      {}
func (CsiClearTabulation) isTerminalCommand()               {}
func (CsiClearAllTabs) isTerminalCommand()                  {}
func (CsiFillRectangularArea) isTerminalCommand()           {}
func (CsiEraseRectangularArea) isTerminalCommand()          {}
func (CsiSelectiveEraseRectangularArea) isTerminalCommand() {}
func (CsiScroll) isTerminalCommand()                        {}
func (ResetMargins) isTerminalCommand()                     {}
func (SetTopBottomMargin) isTerminalCommand()               {}
func (SetLeftRightMargin) isTerminalCommand()               {}
func (CsiSetScrollingRegion) isTerminalCommand()            {}
func (CsiSetSpecificMargin) isTerminalCommand()             {}
func (CsiSelectGraphicRendition) isTerminalCommand()        {}
func (CsiSetMode) isTerminalCommand()                       {}
func (CsiResetMode) isTerminalCommand()                     {}
func (CsiDecPrivateModeSet) isTerminalCommand()             {}
func (CsiDecPrivateModeReset) isTerminalCommand()           {}
func (CsiSetCaretStyle) isTerminalCommand()                 {}
func (CsiFontSelection) isTerminalCommand()                 {}
func (CsiResizeTerminal) isTerminalCommand()                {}
func (CsiSpecialKey) isTerminalCommand()                    {}
func (CsiSelectCommunicationSpeed) isTerminalCommand()      {}
