package bbsdecode

// CommandSink receives everything a parser decodes.
//
// Byte slices given to Print and Aps belong to the parser and are only valid
// for the duration of the call. Copy them to keep them.
type CommandSink interface {
	Print(text []byte)
	Emit(cmd TerminalCommand)
	Request(req TerminalRequest)
	DeviceControl(dcs DeviceControlString)
	OperatingSystemCommand(osc OperatingSystemCommand)
	Aps(data []byte)
	ReportError(err ParseError, level ErrorLevel)
	PlayMusic(music AnsiMusic)
	EmitIGS(cmd IgsCommand)
}

// NopSink discards everything.
// Embed it to implement only the methods of interest.
type NopSink struct{}

func (NopSink) Print([]byte)                                  {}
func (NopSink) Emit(TerminalCommand)                          {}
func (NopSink) Request(TerminalRequest)                       {}
func (NopSink) DeviceControl(DeviceControlString)             {}
func (NopSink) OperatingSystemCommand(OperatingSystemCommand) {}
func (NopSink) Aps([]byte)                                    {}
func (NopSink) ReportError(ParseError, ErrorLevel)            {}
func (NopSink) PlayMusic(AnsiMusic)                           {}
func (NopSink) EmitIGS(IgsCommand)                            {}
