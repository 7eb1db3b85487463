// Package storage defines shared storage contracts for the bot's stores.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// AuditEvent records one operational event for the audit trail.
type AuditEvent struct {
	Timestamp time.Time
	Severity  string
	Operation string
	GuildID   string
	ActorID   string
	Subject   string
	Detail    string
}

// AuditStore persists audit events.
type AuditStore interface {
	AppendAuditEvent(ctx context.Context, event AuditEvent) error
}
