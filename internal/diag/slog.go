package diag

import "log/slog"

// SlogSink emits each diagnostic as a structured slog.Warn line whose
// message is the dotted event name "diag.<kind>" (e.g.
// "diag.file_too_large"), with "path" and "message" attributes.
type SlogSink struct {
	Logger *slog.Logger
}

func NewSlogSink(logger *slog.Logger) *SlogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogSink{Logger: logger}
}

func (s *SlogSink) Emit(d Diagnostic) {
	s.Logger.Warn("diag."+string(d.Kind), "path", d.Path, "message", d.Message)
}
