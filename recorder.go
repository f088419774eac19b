package bbsdecode

import "strings"

// Printed is recorded for Print, adjacent text is joined.
type Printed string

// ApsData is recorded for Aps.
type ApsData string

// Reported is recorded for ReportError.
type Reported struct {
	Err   ParseError
	Level ErrorLevel
}

// Recorder is a [CommandSink] that keeps every call in order.
// Events holds [Printed], [ApsData], [Reported] and the commands, requests,
// strings, music and IGS commands as they were given to the sink.
// Text split over several Print calls is recorded as one [Printed], so the
// events do not depend on how the input was chunked.
type Recorder struct {
	Events []any
}

// Errors returns the recorded parse errors.
func (r *Recorder) Errors() []Reported {
	var errs []Reported
	for _, e := range r.Events {
		if rep, ok := e.(Reported); ok {
			errs = append(errs, rep)
		}
	}
	return errs
}

// Commands returns the recorded events other than text and errors.
func (r *Recorder) Commands() []any {
	var cmds []any
	for _, e := range r.Events {
		switch e.(type) {
		case Printed, Reported:
			continue
		}
		cmds = append(cmds, e)
	}
	return cmds
}

// Text returns all printed text.
func (r *Recorder) Text() string {
	var sb strings.Builder
	for _, e := range r.Events {
		if p, ok := e.(Printed); ok {
			sb.WriteString(string(p))
		}
	}
	return sb.String()
}

// Reset drops the recorded events.
func (r *Recorder) Reset() {
	r.Events = r.Events[:0]
}

func (r *Recorder) Print(text []byte) {
	if n := len(r.Events); n > 0 {
		if last, ok := r.Events[n-1].(Printed); ok {
			r.Events[n-1] = last + Printed(text)
			return
		}
	}
	r.Events = append(r.Events, Printed(text))
}

func (r *Recorder) Emit(cmd TerminalCommand)                          { r.Events = append(r.Events, cmd) }
func (r *Recorder) Request(req TerminalRequest)                       { r.Events = append(r.Events, req) }
func (r *Recorder) DeviceControl(dcs DeviceControlString)             { r.Events = append(r.Events, dcs) }
func (r *Recorder) OperatingSystemCommand(osc OperatingSystemCommand) { r.Events = append(r.Events, osc) }
func (r *Recorder) Aps(data []byte)                                   { r.Events = append(r.Events, ApsData(data)) }
func (r *Recorder) PlayMusic(music AnsiMusic)                         { r.Events = append(r.Events, music) }
func (r *Recorder) EmitIGS(cmd IgsCommand)                            { r.Events = append(r.Events, cmd) }

func (r *Recorder) ReportError(err ParseError, level ErrorLevel) {
	r.Events = append(r.Events, Reported{Err: err, Level: level})
}
