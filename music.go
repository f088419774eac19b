package bbsdecode

import (
	"strconv"
	"time"
)

// FREQ holds the note frequencies in hertz, C2 at index 0 to B8 at index 83.
// A4, 440 Hz, is at index 33.
var FREQ = [84]float32{ //nolint:gochecknoglobals
	65.4064, 69.2957, 73.4162, 77.7817, 82.4069, 87.3071, 92.4986, 97.9989, 103.8262, 110.0000, 116.5409, 123.4708,
	130.8128, 138.5913, 146.8324, 155.5635, 164.8138, 174.6141, 184.9972, 195.9977, 207.6523, 220.0000, 233.0819, 246.9417,
	261.6256, 277.1826, 293.6648, 311.1270, 329.6276, 349.2282, 369.9944, 391.9954, 415.3047, 440.0000, 466.1638, 493.8833,
	523.2511, 554.3653, 587.3295, 622.2540, 659.2551, 698.4565, 739.9888, 783.9909, 830.6094, 880.0000, 932.3275, 987.7666,
	1046.5023, 1108.7305, 1174.6591, 1244.5079, 1318.5102, 1396.9129, 1479.9777, 1567.9817, 1661.2188, 1760.0000, 1864.6550, 1975.5332,
	2093.0045, 2217.4610, 2349.3181, 2489.0159, 2637.0205, 2793.8259, 2959.9554, 3135.9635, 3322.4376, 3520.0000, 3729.3101, 3951.0664,
	4186.0090, 4434.9221, 4698.6363, 4978.0317, 5274.0409, 5587.6517, 5919.9108, 6271.9270, 6644.8752, 7040.0000, 7458.6202, 7902.1328,
}

// Music defaults, restored for every new parser.
const (
	DefaultTempo  = 120
	DefaultLength = 4
	DefaultOctave = 5
)

// MusicStyle is the articulation set by the MF, MB, MN, ML and MS commands.
type MusicStyle uint8

const (
	MusicForeground MusicStyle = iota // MusicForeground plays while the terminal waits
	MusicBackground                   // MusicBackground plays while the terminal continues
	MusicNormal                       // MusicNormal rests 1/8 of each note
	MusicLegato                       // MusicLegato plays each note for its full length
	MusicStaccato                     // MusicStaccato rests 1/4 of each note
)

var musicStyles = [...]string{"Foreground", "Background", "Normal", "Legato", "Staccato"}

func (s MusicStyle) String() string {
	if int(s) < len(musicStyles) {
		return musicStyles[s]
	}
	return "MusicStyle(" + strconv.Itoa(int(s)) + ")"
}

// Gap returns the silence that follows a note of duration d.
//
//nolint:mnd
func (s MusicStyle) Gap(d time.Duration) time.Duration {
	switch s {
	case MusicLegato:
		return 0
	case MusicStaccato:
		return d / 4
	}
	return d / 8
}

// MusicAction is one step of an [AnsiMusic] block.
type MusicAction interface {
	isMusicAction()
	Duration() time.Duration
}

// PlayNote sounds a note.
// Length is the note length denominator, 4 is a quarter note.
type PlayNote struct {
	Frequency float32
	Tempo     uint32
	Length    uint32
	Dotted    bool
}

// Duration is 240000 / (tempo × length) milliseconds, or 360000 / (tempo × length)
// for a dotted note.
//
//nolint:mnd
func (n PlayNote) Duration() time.Duration {
	whole := 240000
	if n.Dotted {
		whole = 360000
	}
	return noteDuration(whole, n.Tempo, n.Length)
}

// Pause is a rest.
type Pause struct {
	Tempo  uint32
	Length uint32
}

// Duration is 240000 / (tempo × length) milliseconds.
func (p Pause) Duration() time.Duration {
	return noteDuration(240000, p.Tempo, p.Length) //nolint:mnd
}

// SetStyle changes the articulation of the notes that follow.
type SetStyle struct {
	Style MusicStyle
}

// Duration is always zero.
func (SetStyle) Duration() time.Duration { return 0 }

func (PlayNote) isMusicAction() {}
func (Pause) isMusicAction()    {}
func (SetStyle) isMusicAction() {}

func noteDuration(whole int, tempo, length uint32) time.Duration {
	div := int64(tempo) * int64(length)
	if div == 0 {
		return 0
	}
	return time.Duration(int64(whole)/div) * time.Millisecond
}

// AnsiMusic is a complete music block, from its opening sequence to the closing SO.
type AnsiMusic struct {
	Actions []MusicAction
}

// Duration returns the total playing time of the block.
func (m AnsiMusic) Duration() time.Duration {
	var d time.Duration
	for _, a := range m.Actions {
		d += a.Duration()
	}
	return d
}

// MusicState is the position of the music decoder within a token.
type MusicState uint8

const (
	MusicDefault          MusicState = iota // MusicDefault waits for a command letter
	MusicParseStyle                         // MusicParseStyle follows M
	MusicSetTempo                           // MusicSetTempo follows T
	MusicSetOctave                          // MusicSetOctave follows O
	MusicNote                               // MusicNote follows a note letter
	MusicPlayNoteByNumber                   // MusicPlayNoteByNumber follows N
	MusicSetLength                          // MusicSetLength follows L
	MusicPause                              // MusicPause follows P
)

var musicStates = [...]string{
	"Default", "ParseMusicStyle", "SetTempo", "SetOctave", "Note", "PlayNoteByNumber", "SetLength", "Pause",
}

func (s MusicState) String() string {
	if int(s) < len(musicStates) {
		return musicStates[s]
	}
	return "MusicState(" + strconv.Itoa(int(s)) + ")"
}

// musicResult tells the parser what happened to a music byte.
type musicResult uint8

const (
	musicNext  musicResult = iota // the block continues
	musicEnd                      // SO closed the block
	musicAbort                    // an invalid byte abandoned the block
)

// semitones of the note letters A to G.
var semitones = [7]int{9, 11, 0, 2, 4, 5, 7}

// music decodes the ANSI Music language one byte at a time.
// Tempo, length and style persist between blocks, the octave is reset.
type music struct {
	state   MusicState
	acc     int
	note    int
	dotted  bool
	octave  int
	tempo   int
	length  int
	lenient bool
	actions []MusicAction
}

func newMusic(lenient bool) music {
	return music{
		octave:  DefaultOctave,
		tempo:   DefaultTempo,
		length:  DefaultLength,
		lenient: lenient,
	}
}

// begin opens a block. Blocks opened by a CSI sequence may start with a style letter.
func (m *music) begin(style bool) {
	m.actions = nil
	m.acc = 0
	m.dotted = false
	m.state = MusicDefault
	if style {
		m.state = MusicParseStyle
	}
}

// take returns the finished block and resets the octave.
func (m *music) take() AnsiMusic {
	block := AnsiMusic{Actions: m.actions}
	m.abandon()
	return block
}

func (m *music) abandon() {
	m.actions = nil
	m.state = MusicDefault
	m.octave = DefaultOctave
	m.acc = 0
	m.dotted = false
}

func (m *music) push(a MusicAction) {
	m.actions = append(m.actions, a)
}

func accumulate(acc int, b byte) int {
	return min(acc*10+int(b-'0'), MaxParam) //nolint:mnd
}

func isDigit(b byte) bool { return '0' <= b && b <= '9' }

// feed decodes one byte.
//
//nolint:cyclop,mnd
func (m *music) feed(b byte) musicResult {
	switch m.state {
	case MusicParseStyle:
		m.state = MusicDefault
		switch b {
		case 'F':
			m.push(SetStyle{Style: MusicForeground})
		case 'B':
			m.push(SetStyle{Style: MusicBackground})
		case 'N':
			m.push(SetStyle{Style: MusicNormal})
		case 'L':
			m.push(SetStyle{Style: MusicLegato})
		case 'S':
			m.push(SetStyle{Style: MusicStaccato})
		default:
			return m.idle(b)
		}
	case MusicSetTempo:
		if isDigit(b) {
			m.acc = accumulate(m.acc, b)
			return musicNext
		}
		m.tempo = clamp(m.acc, 32, 255)
		return m.idle(b)
	case MusicSetOctave:
		if b >= '0' && b <= '6' {
			m.octave = int(b - '0')
			m.state = MusicDefault
			return musicNext
		}
		if m.lenient {
			m.state = MusicDefault
			return musicNext
		}
		return musicAbort
	case MusicNote:
		switch {
		case b == '+' || b == '#':
			if m.note+1 < len(FREQ) {
				m.note++
			}
		case b == '-':
			if m.note > 0 {
				m.note--
			}
		case isDigit(b):
			m.acc = accumulate(m.acc, b)
		case b == '.':
			m.acc = m.acc * 3 / 2
			m.dotted = true
		default:
			length := m.acc
			if length == 0 {
				length = m.length
			}
			m.play(m.note+(m.octave-2)*12, length, m.dotted)
			return m.idle(b)
		}
	case MusicPlayNoteByNumber:
		if isDigit(b) {
			m.acc = accumulate(m.acc, b)
			return musicNext
		}
		m.play(m.acc-16, m.length, false)
		return m.idle(b)
	case MusicSetLength, MusicPause:
		switch {
		case isDigit(b):
			m.acc = accumulate(m.acc, b)
			return musicNext
		case b == '.':
			m.acc = m.acc * 3 / 2
			return musicNext
		}
		n := clamp(m.acc, 1, 64)
		if m.state == MusicPause {
			m.push(Pause{Tempo: uint32(m.tempo), Length: uint32(n)}) //nolint:gosec
		} else {
			m.length = n
		}
		return m.idle(b)
	default:
		return m.idle(b)
	}
	return musicNext
}

// play appends a note using a frequency table index clamped to the table.
func (m *music) play(index, length int, dotted bool) {
	index = clamp(index, 0, len(FREQ)-1)
	m.push(PlayNote{
		Frequency: FREQ[index],
		Tempo:     uint32(m.tempo), //nolint:gosec
		Length:    uint32(length), //nolint:gosec
		Dotted:    dotted,
	})
	m.dotted = false
}

// idle handles a byte in the default state.
func (m *music) idle(b byte) musicResult {
	m.state = MusicDefault
	m.acc = 0
	switch b {
	case SO:
		return musicEnd
	case 'T':
		m.state = MusicSetTempo
	case 'L':
		m.state = MusicSetLength
	case 'O':
		m.state = MusicSetOctave
	case 'M':
		m.state = MusicParseStyle
	case 'N':
		m.state = MusicPlayNoteByNumber
	case 'P':
		m.state = MusicPause
	case 'A', 'B', 'C', 'D', 'E', 'F', 'G':
		m.note = semitones[b-'A']
		m.dotted = false
		m.state = MusicNote
	case '<':
		m.octave = max(m.octave-1, 0)
	case '>':
		m.octave = min(m.octave+1, 6) //nolint:mnd
	}
	return musicNext
}
