// Package sqlite provides the SQLite-backed audit event store.
package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"database/sql"

	sqlitemigrate "github.com/louisbranch/conhotel/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/conhotel/internal/storage"
	"github.com/louisbranch/conhotel/internal/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store persists audit events in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite audit store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// AppendAuditEvent stores one audit event.
func (s *Store) AppendAuditEvent(ctx context.Context, event storage.AuditEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(event.Operation) == "" {
		return fmt.Errorf("audit operation is required")
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO audit_events (timestamp, severity, operation, guild_id, actor_id, subject, detail)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		toMillis(event.Timestamp),
		event.Severity,
		event.Operation,
		event.GuildID,
		event.ActorID,
		event.Subject,
		event.Detail,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// ListAuditEvents returns the most recent audit events, newest first.
func (s *Store) ListAuditEvents(ctx context.Context, limit int) ([]storage.AuditEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT timestamp, severity, operation, guild_id, actor_id, subject, detail
		 FROM audit_events ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	var events []storage.AuditEvent
	for rows.Next() {
		var (
			event     storage.AuditEvent
			timestamp int64
		)
		if err := rows.Scan(
			&timestamp,
			&event.Severity,
			&event.Operation,
			&event.GuildID,
			&event.ActorID,
			&event.Subject,
			&event.Detail,
		); err != nil {
			return nil, fmt.Errorf("scan audit event row: %w", err)
		}
		event.Timestamp = fromMillis(timestamp)
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit event rows: %w", err)
	}
	return events, nil
}
