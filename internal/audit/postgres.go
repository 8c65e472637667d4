package audit

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of database operations the audit sink needs.
// Satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
}

const createTableSQL = `
CREATE TABLE IF NOT EXISTS string_audit_log (
	id          UUID PRIMARY KEY,
	action      TEXT NOT NULL,
	severity    TEXT NOT NULL,
	value       TEXT NOT NULL,
	record_id   TEXT,
	ip_address  TEXT,
	user_agent  TEXT,
	request_id  TEXT,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS string_audit_log_created_at_idx ON string_audit_log (created_at);
`

const insertSQL = `
INSERT INTO string_audit_log
	(id, action, severity, value, record_id, ip_address, user_agent, request_id, created_at)
VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), $9)`

const purgeSQL = `
DELETE FROM string_audit_log
WHERE created_at < now() - make_interval(days => $1)`

// PostgresSink appends audit entries to the string_audit_log table.
type PostgresSink struct {
	db DBTX
}

// NewPostgresSink creates a sink on db. Call EnsureSchema before the first write.
func NewPostgresSink(db DBTX) *PostgresSink {
	return &PostgresSink{db: db}
}

// EnsureSchema creates the audit table and index if they do not exist.
func (s *PostgresSink) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, createTableSQL); err != nil {
		return fmt.Errorf("create audit table: %w", err)
	}
	return nil
}

func (s *PostgresSink) Write(ctx context.Context, e Entry) error {
	_, err := s.db.Exec(ctx, insertSQL,
		e.ID,
		string(e.Action),
		string(e.Severity),
		e.Value,
		e.RecordID,
		e.IPAddress,
		e.UserAgent,
		e.RequestID,
		e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// Purge deletes entries older than retentionDays and returns the count removed.
func (s *PostgresSink) Purge(ctx context.Context, retentionDays int) (int64, error) {
	tag, err := s.db.Exec(ctx, purgeSQL, retentionDays)
	if err != nil {
		return 0, fmt.Errorf("purge audit entries: %w", err)
	}
	return tag.RowsAffected(), nil
}
