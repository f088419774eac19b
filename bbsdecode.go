// Package bbsdecode classifies the byte streams sent by BBS-era terminals
// into printable text, typed terminal commands and recoverable parse errors.
//
// [Parser] decodes ANSI/ECMA-48 control sequences (CSI, OSC, DCS, APC and
// ESC finals) including SGR text attributes, the BBS extensions used by
// SyncTERM, PabloDraw and CTerm, and the SO delimited ANSI Music language.
// [IgsParser] decodes the Atari ST Interactive Graphics System with its
// VT52 text layer and loop commands. [VT52Parser] decodes plain VT52 and
// [AvatarParser] decodes AVT/0 in front of an ANSI parser.
//
// Parsers are incremental. Input can be split at any byte offset across
// Parse calls and the sink receives the same commands as for one call.
// Nothing is rendered, the results are handed to a [CommandSink].
package bbsdecode

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
)

var (
	ErrReader      = errors.New("reader is nil")
	ErrParser      = errors.New("parser is nil")
	ErrSink        = errors.New("sink is nil")
	ErrCharset     = errors.New("unknown charset")
	ErrMusicOption = errors.New("unknown music option")

	ErrInvalidParameter   = errors.New("invalid parameter")
	ErrIncompleteSequence = errors.New("incomplete sequence")
	ErrMalformedSequence  = errors.New("malformed sequence")
)

const (
	NUL = 0x00 // NUL is an ASCII null character
	BEL = 0x07 // BEL rings the terminal bell
	BS  = 0x08 // BS is a backspace
	HT  = 0x09 // HT is a horizontal tab
	LF  = 0x0a // LF is a line feed
	VT  = 0x0b // VT is a vertical tab
	FF  = 0x0c // FF is a form feed
	CR  = 0x0d // CR is a carriage return
	SO  = 0x0e // SO is shift out, which toggles ANSI Music
	CAN = 0x18 // CAN cancels an escape sequence
	EOF = 0x1a // EOF is the MS-DOS end-of-file character value
	ESC = 0x1b // ESC is the escape control character code
	DEL = 0x7f // DEL is the delete character

	// MaxParam is the saturation value of every numeric accumulator.
	MaxParam = 65535
)

// CommandParser is implemented by the protocol parsers.
//
// Parse consumes a chunk of input and reports everything it decodes to sink.
// Incomplete sequences are kept and finished by a later call.
// Flush ends the stream, reporting any unfinished sequence as
// an [IncompleteSequence] and returning the parser to its ground state.
type CommandParser interface {
	Parse(p []byte, sink CommandSink)
	Flush(sink CommandSink)
}

// DefaultChunk is the read size used by [Decode] when size is <= 0.
const DefaultChunk = 4096

// Decode reads r in chunks of size bytes, feeding each chunk to the parser.
// The parser is flushed once r returns io.EOF.
// Cancelling ctx stops the decode between chunks.
func Decode(ctx context.Context, r io.Reader, p CommandParser, sink CommandSink, size int) error {
	if r == nil {
		return ErrReader
	}
	if p == nil {
		return ErrParser
	}
	if sink == nil {
		return ErrSink
	}
	if size <= 0 {
		size = DefaultChunk
	}
	br := bufio.NewReaderSize(r, size)
	buf := make([]byte, size)
	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("decode cancelled: %w", err)
		}
		n, err := br.Read(buf)
		if n > 0 {
			p.Parse(buf[:n], sink)
		}
		if errors.Is(err, io.EOF) {
			p.Flush(sink)
			return nil
		}
		if err != nil {
			return fmt.Errorf("decode reader: %w", err)
		}
	}
}
