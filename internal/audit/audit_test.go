package audit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memorySink struct {
	mu      sync.Mutex
	entries []Entry
	err     error
	ctxErr  error
}

func (m *memorySink) Write(ctx context.Context, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, e)
	if _, ok := ctx.Deadline(); !ok {
		m.ctxErr = errors.New("no deadline")
	}
	return m.err
}

func TestRecorder_Record(t *testing.T) {
	sink := &memorySink{}
	rec := NewRecorder(time.Second, sink)
	rec.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }

	ctx := ContextWithIPAddress(context.Background(), "10.0.0.1")
	ctx = ContextWithUserAgent(ctx, "curl/8")
	ctx = ContextWithRequestID(ctx, "req-1")

	e := rec.Record(ctx, Params{Action: ActionCreate, Value: "level", RecordID: "abc"})

	require.Len(t, sink.entries, 1)
	assert.Equal(t, e, sink.entries[0])
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, ActionCreate, e.Action)
	assert.Equal(t, SeverityMedium, e.Severity)
	assert.Equal(t, "level", e.Value)
	assert.Equal(t, "abc", e.RecordID)
	assert.Equal(t, "10.0.0.1", e.IPAddress)
	assert.Equal(t, "curl/8", e.UserAgent)
	assert.Equal(t, "req-1", e.RequestID)
	assert.Equal(t, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), e.CreatedAt)
	assert.NoError(t, sink.ctxErr, "write context should carry the configured timeout")
}

func TestRecorder_SinkFailureDoesNotStopOthers(t *testing.T) {
	failing := &memorySink{err: errors.New("boom")}
	ok := &memorySink{}
	rec := NewRecorder(time.Second, failing, ok)

	rec.Record(context.Background(), Params{Action: ActionDelete, Value: "x"})

	assert.Len(t, failing.entries, 1)
	assert.Len(t, ok.entries, 1)
	assert.Equal(t, SeverityHigh, ok.entries[0].Severity)
}

func TestDetermineSeverity(t *testing.T) {
	assert.Equal(t, SeverityMedium, determineSeverity(ActionCreate))
	assert.Equal(t, SeverityHigh, determineSeverity(ActionDelete))
	assert.Equal(t, SeverityLow, determineSeverity(Action("other")))
}

func TestContext_EmptyWhenUnset(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, IPAddressFromContext(ctx))
	assert.Empty(t, UserAgentFromContext(ctx))
	assert.Empty(t, RequestIDFromContext(ctx))
}

func TestLogSink_Write(t *testing.T) {
	assert.NoError(t, NewLogSink(nil).Write(context.Background(), Entry{ID: "1", Action: ActionCreate}))
}
