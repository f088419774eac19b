package bbsdecode

import (
	"context"
	"errors"
	"log/slog"
)

// LogSink passes every call to the wrapped sink and also logs parse errors.
// Warnings are logged at slog.LevelWarn and errors at slog.LevelError.
type LogSink struct {
	CommandSink
	Logger *slog.Logger // Logger is used instead of slog.Default when set
}

// NewLogSink wraps sink, a nil logger logs to slog.Default.
func NewLogSink(sink CommandSink, logger *slog.Logger) *LogSink {
	if sink == nil {
		sink = NopSink{}
	}
	return &LogSink{CommandSink: sink, Logger: logger}
}

func (s *LogSink) ReportError(err ParseError, level ErrorLevel) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	lvl := slog.LevelWarn
	if level == LevelError {
		lvl = slog.LevelError
	}
	logger.LogAttrs(context.Background(), lvl, "parse", errorAttrs(err)...)
	s.CommandSink.ReportError(err, level)
}

func errorAttrs(err ParseError) []slog.Attr {
	var (
		ip *InvalidParameter
		is *IncompleteSequence
		ms *MalformedSequence
	)
	switch {
	case errors.As(err, &ip):
		attrs := []slog.Attr{slog.String("command", ip.Command), slog.String("value", ip.Value)}
		if ip.Expected != "" {
			attrs = append(attrs, slog.String("expected", ip.Expected))
		}
		return attrs
	case errors.As(err, &is):
		return []slog.Attr{slog.String("state", is.State)}
	case errors.As(err, &ms):
		return []slog.Attr{slog.String("description", ms.Description)}
	}
	return []slog.Attr{slog.String("err", err.Error())}
}
