package audit

import (
	"context"
	"log/slog"
)

// LogSink writes audit entries as structured log lines.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink creates a LogSink. A nil logger uses slog.Default at write time.
func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Write(ctx context.Context, e Entry) error {
	logger := s.logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "audit",
		"audit_id", e.ID,
		"action", e.Action,
		"severity", e.Severity,
		"value", e.Value,
		"record_id", e.RecordID,
		"ip", e.IPAddress,
		"request_id", e.RequestID,
	)
	return nil
}
