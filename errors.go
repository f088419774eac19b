package bbsdecode

import (
	"fmt"
	"strconv"
)

// ErrorLevel is the severity of a reported [ParseError].
type ErrorLevel uint8

const (
	LevelWarning ErrorLevel = iota // LevelWarning is a tolerated oddity in the stream
	LevelError                     // LevelError is an invalid or malformed sequence
)

func (l ErrorLevel) String() string {
	switch l {
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	}
	return "level(" + strconv.Itoa(int(l)) + ")"
}

// ParseError is a recoverable problem found in the stream.
// It is informational, the parser has already recovered when it is reported.
// Use errors.Is with [ErrInvalidParameter], [ErrIncompleteSequence]
// or [ErrMalformedSequence] to test the kind.
type ParseError interface {
	error
	parseError()
}

// InvalidParameter is a parameter outside the range of its command.
type InvalidParameter struct {
	Command  string // Command is the name of the command, for example "CsiEraseInDisplay"
	Value    string // Value is the offending parameter as written in the stream
	Expected string // Expected optionally describes the valid values
}

func (e *InvalidParameter) Error() string {
	if e.Expected == "" {
		return fmt.Sprintf("%s: %s %s", ErrInvalidParameter, e.Command, e.Value)
	}
	return fmt.Sprintf("%s: %s %s, expected %s", ErrInvalidParameter, e.Command, e.Value, e.Expected)
}

func (e *InvalidParameter) Unwrap() error { return ErrInvalidParameter }
func (e *InvalidParameter) parseError()   {}

// IncompleteSequence is a sequence that was still open when the stream ended.
type IncompleteSequence struct {
	State string // State names where the parser stopped
}

func (e *IncompleteSequence) Error() string {
	return fmt.Sprintf("%s: in %s", ErrIncompleteSequence, e.State)
}

func (e *IncompleteSequence) Unwrap() error { return ErrIncompleteSequence }
func (e *IncompleteSequence) parseError()   {}

// MalformedSequence is a sequence whose structure could not be decoded.
type MalformedSequence struct {
	Description string
}

func (e *MalformedSequence) Error() string {
	return fmt.Sprintf("%s: %s", ErrMalformedSequence, e.Description)
}

func (e *MalformedSequence) Unwrap() error { return ErrMalformedSequence }
func (e *MalformedSequence) parseError()   {}

func invalid(command string, value int, expected string) *InvalidParameter {
	return &InvalidParameter{Command: command, Value: strconv.Itoa(value), Expected: expected}
}

func malformed(description string) *MalformedSequence {
	return &MalformedSequence{Description: description}
}
