package bbsdecode

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// MusicOption selects which sequences start ANSI Music.
// The SO control and CSI | start music for every option except MusicOff.
type MusicOption uint8

const (
	MusicOff         MusicOption = iota // MusicOff treats music sequences as regular controls
	MusicConflicting                    // MusicConflicting also starts music on CSI M, overriding delete line
	MusicBanana                         // MusicBanana also starts music on CSI N, the BananaCom convention
	MusicBoth                           // MusicBoth starts music on both CSI M and CSI N
)

var musicOptions = [...]string{"off", "conflicting", "banana", "both"}

func (m MusicOption) String() string {
	if int(m) < len(musicOptions) {
		return musicOptions[m]
	}
	return fmt.Sprintf("MusicOption(%d)", m)
}

// ParseMusicOption returns the option for a name such as "banana".
func ParseMusicOption(s string) (MusicOption, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, opt := range musicOptions {
		if opt == name {
			return MusicOption(i), nil
		}
	}
	return MusicOff, fmt.Errorf("%w: %q", ErrMusicOption, s)
}

func (m MusicOption) onCsiM() bool { return m == MusicConflicting || m == MusicBoth }
func (m MusicOption) onCsiN() bool { return m == MusicBanana || m == MusicBoth }

// ParameterBounds is the range used to resolve random IGS loop parameters.
type ParameterBounds struct {
	Min, Max int
}

// DefaultBounds are the IGS defaults, 0 to 199.
var DefaultBounds = ParameterBounds{Min: 0, Max: 199}

// Mid returns the midpoint of the bounds.
func (b ParameterBounds) Mid() int {
	lo, hi := min(b.Min, b.Max), max(b.Min, b.Max)
	return lo + (hi-lo)/2 //nolint:mnd
}

// DefaultMaxString is the default limit of a buffered OSC, DCS or APC payload.
const DefaultMaxString = 1 << 20

// Config holds the parser options.
type Config struct {
	// Charset decides which high bytes print. IBM Code Page 437 also prints
	// the unused C0 bytes as PC-DOS glyphs. Nil treats the input as UTF-8.
	Charset *charmap.Charmap
	// Music selects the sequences that start ANSI Music.
	Music MusicOption
	// LenientMusic keeps a music block alive when an octave command is followed
	// by an invalid byte, instead of abandoning the whole block.
	LenientMusic bool
	// MaxString limits buffered OSC, DCS and APC payloads. Zero uses DefaultMaxString.
	MaxString int
	// Bounds are the initial random IGS loop parameter bounds.
	Bounds ParameterBounds
	// RunLoops expands IGS loop commands into the commands they generate.
	RunLoops bool
}

// DefaultConfig returns the configuration for CP437 ANSI art.
func DefaultConfig() Config {
	return Config{
		Charset:   charmap.CodePage437,
		Music:     MusicBanana,
		MaxString: DefaultMaxString,
		Bounds:    DefaultBounds,
	}
}
