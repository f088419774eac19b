// Package dump writes the decoded events of a BBS stream as readable lines.
package dump

import (
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/bengarrett/bbsdecode"
	"github.com/fatih/color"
	"golang.org/x/text/encoding/charmap"
)

// Options change how a Writer formats the events.
type Options struct {
	Charset *charmap.Charmap  // Charset decodes printed text, nil is UTF-8
	Palette bbsdecode.Palette // Palette shows the system colors of SGR swatches
	Color   bool              // Color highlights the output with ANSI colors
	Text    bool              // Text includes the printed text, otherwise only its length
}

// Counts is the number of events of each kind.
type Counts struct {
	Text, Commands, Requests, Strings, Music, IGS, Warnings, Errors int
}

// Writer is a [bbsdecode.CommandSink] that writes one line per event.
// Text printed between two events is joined into a single line.
// The first write error stops the output and is returned by Err.
type Writer struct {
	w      io.Writer
	opts   Options
	text   []byte
	err    error
	counts Counts

	label, warn, fail, dim *color.Color
}

// New returns a Writer that writes to w.
func New(w io.Writer, opts Options) *Writer {
	if w == nil {
		w = io.Discard
	}
	d := &Writer{
		w:     w,
		opts:  opts,
		label: color.New(color.FgCyan),
		warn:  color.New(color.FgYellow, color.Bold),
		fail:  color.New(color.FgRed, color.Bold),
		dim:   color.New(color.FgHiBlack),
	}
	for _, c := range []*color.Color{d.label, d.warn, d.fail, d.dim} {
		d.toggle(c)
	}
	return d
}

// toggle turns c off when color is not wanted. Otherwise c keeps the
// terminal detection of the color package, so piped output stays plain.
func (d *Writer) toggle(c *color.Color) *color.Color {
	if !d.opts.Color {
		c.DisableColor()
	}
	return c
}

// Err returns the first write error.
func (d *Writer) Err() error {
	return d.err
}

// Counts returns the number of events written so far.
func (d *Writer) Counts() Counts {
	return d.counts
}

// Close writes any pending text.
func (d *Writer) Close() error {
	d.flush()
	return d.err
}

func (d *Writer) line(kind string, c *color.Color, body string) {
	d.flush()
	d.write(kind, c, body)
}

func (d *Writer) write(kind string, c *color.Color, body string) {
	if d.err != nil {
		return
	}
	_, d.err = fmt.Fprintf(d.w, "%s %s\n", c.Sprintf("%-6s", kind), body)
}

func (d *Writer) flush() {
	if len(d.text) == 0 {
		return
	}
	d.counts.Text++
	s := bbsdecode.DecodeText(d.opts.Charset, d.text)
	body := strconv.Itoa(len(d.text)) + " bytes"
	if d.opts.Text {
		body = strconv.Quote(s)
	}
	d.text = d.text[:0]
	d.write("text", d.dim, body)
}

func (d *Writer) Print(text []byte) {
	d.text = append(d.text, text...)
}

func (d *Writer) Emit(cmd bbsdecode.TerminalCommand) {
	d.counts.Commands++
	body := describe(cmd)
	if sgr, ok := cmd.(bbsdecode.CsiSelectGraphicRendition); ok {
		body = describe(sgr.Attr) + d.swatch(sgr.Attr)
	}
	d.line("cmd", d.label, body)
}

func (d *Writer) Request(req bbsdecode.TerminalRequest) {
	d.counts.Requests++
	d.line("req", d.label, describe(req))
}

func (d *Writer) DeviceControl(dcs bbsdecode.DeviceControlString) {
	d.counts.Strings++
	var body string
	switch v := dcs.(type) {
	case bbsdecode.LoadFont:
		body = fmt.Sprintf("LoadFont{Slot:%d Data:%d bytes}", v.Slot, len(v.Data))
	case bbsdecode.Sixel:
		body = fmt.Sprintf("Sixel{VerticalScale:%d Transparent:%t Data:%d bytes}",
			v.VerticalScale, v.Transparent, len(v.Data))
	default:
		body = describe(dcs)
	}
	d.line("dcs", d.label, body)
}

func (d *Writer) OperatingSystemCommand(osc bbsdecode.OperatingSystemCommand) {
	d.counts.Strings++
	body := describe(osc)
	if pc, ok := osc.(bbsdecode.SetPaletteColor); ok {
		body += d.block(int(pc.R), int(pc.G), int(pc.B))
	}
	d.line("osc", d.label, body)
}

func (d *Writer) Aps(data []byte) {
	d.counts.Strings++
	d.line("apc", d.label, strconv.Quote(string(data)))
}

func (d *Writer) PlayMusic(music bbsdecode.AnsiMusic) {
	d.counts.Music++
	notes := 0
	for _, a := range music.Actions {
		if _, ok := a.(bbsdecode.PlayNote); ok {
			notes++
		}
	}
	d.line("music", d.label, fmt.Sprintf("%d actions, %d notes, %s",
		len(music.Actions), notes, music.Duration()))
}

func (d *Writer) EmitIGS(cmd bbsdecode.IgsCommand) {
	d.counts.IGS++
	d.line("igs", d.label, describe(cmd))
}

func (d *Writer) ReportError(err bbsdecode.ParseError, level bbsdecode.ErrorLevel) {
	c := d.warn
	kind := "warn"
	if level == bbsdecode.LevelError {
		c, kind = d.fail, "error"
		d.counts.Errors++
	} else {
		d.counts.Warnings++
	}
	d.line(kind, c, err.Error())
}

// swatch returns a colored block for a foreground or background change.
func (d *Writer) swatch(attr bbsdecode.SgrAttribute) string {
	var c bbsdecode.Color
	switch v := attr.(type) {
	case bbsdecode.SgrForeground:
		c = v.Color
	case bbsdecode.SgrBackground:
		c = v.Color
	default:
		return ""
	}
	hex := c.Hex(d.opts.Palette)
	r, g, b, ok := hex.RGB()
	if !ok {
		return ""
	}
	return " #" + string(hex) + d.block(int(r), int(g), int(b))
}

func (d *Writer) block(r, g, b int) string {
	if !d.opts.Color {
		return ""
	}
	return " " + d.toggle(color.RGB(r, g, b)).Sprint("██")
}

// describe returns the type name and fields of a decoded value.
func describe(v any) string {
	if v == nil {
		return "<nil>"
	}
	name := reflect.TypeOf(v).Name()
	s := fmt.Sprintf("%+v", v)
	if strings.HasPrefix(s, "{") {
		return name + s
	}
	return name + "(" + s + ")"
}
