// Package audit records mutations of the string registry.
//
// Entries are fanned out to one or more sinks. A slog sink is always
// present; a PostgreSQL sink is added when a database is configured.
// The audit trail is append-only history and is never used to rebuild
// the registry.
package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Action represents the type of action being audited.
type Action string

const (
	ActionCreate Action = "string_create"
	ActionDelete Action = "string_delete"
)

// Severity represents the severity level of an audit entry.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Entry represents a single audit log entry.
type Entry struct {
	ID        string    `json:"id"`
	Action    Action    `json:"action"`
	Severity  Severity  `json:"severity"`
	Value     string    `json:"value"`
	RecordID  string    `json:"recordId,omitempty"`
	IPAddress string    `json:"ipAddress,omitempty"`
	UserAgent string    `json:"userAgent,omitempty"`
	RequestID string    `json:"requestId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Params contains parameters for creating an audit log entry.
type Params struct {
	Action   Action
	Value    string
	RecordID string
}

// Sink stores audit entries.
type Sink interface {
	Write(ctx context.Context, e Entry) error
}

// Recorder builds entries and hands them to every sink.
// Sink failures are logged and never returned: auditing must not fail a
// request whose mutation already succeeded.
type Recorder struct {
	sinks   []Sink
	timeout time.Duration
	now     func() time.Time
}

// NewRecorder creates a Recorder writing to sinks. Each write is bounded by
// timeout when it is positive.
func NewRecorder(timeout time.Duration, sinks ...Sink) *Recorder {
	return &Recorder{
		sinks:   sinks,
		timeout: timeout,
		now:     time.Now,
	}
}

// Record creates an entry from params and request metadata in ctx and writes it.
func (r *Recorder) Record(ctx context.Context, params Params) Entry {
	e := Entry{
		ID:        uuid.NewString(),
		Action:    params.Action,
		Severity:  determineSeverity(params.Action),
		Value:     params.Value,
		RecordID:  params.RecordID,
		IPAddress: IPAddressFromContext(ctx),
		UserAgent: UserAgentFromContext(ctx),
		RequestID: RequestIDFromContext(ctx),
		CreatedAt: r.now().UTC(),
	}

	for _, sink := range r.sinks {
		writeCtx, cancel := ctx, context.CancelFunc(func() {})
		if r.timeout > 0 {
			writeCtx, cancel = context.WithTimeout(ctx, r.timeout)
		}
		if err := sink.Write(writeCtx, e); err != nil {
			slog.Error("audit write failed",
				"sink", sinkName(sink),
				"action", e.Action,
				"audit_id", e.ID,
				"error", err,
			)
		}
		cancel()
	}

	return e
}

// determineSeverity returns the appropriate severity for an action.
func determineSeverity(action Action) Severity {
	switch action {
	case ActionDelete:
		return SeverityHigh
	case ActionCreate:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

func sinkName(s Sink) string {
	switch s.(type) {
	case *LogSink:
		return "log"
	case *PostgresSink:
		return "postgres"
	default:
		return "custom"
	}
}
