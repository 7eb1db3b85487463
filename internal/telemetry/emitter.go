// Package telemetry records operational audit events for bot commands.
package telemetry

import (
	"context"
	"log"
	"time"

	"github.com/louisbranch/conhotel/internal/storage"
)

// Severity describes the audit severity level.
type Severity string

const (
	SeverityInfo  Severity = "INFO"
	SeverityWarn  Severity = "WARN"
	SeverityError Severity = "ERROR"
)

// Emitter records operational audit events.
type Emitter struct {
	store storage.AuditStore
	clock func() time.Time
}

// NewEmitter creates a new audit emitter. A nil store yields a no-op emitter.
func NewEmitter(store storage.AuditStore) *Emitter {
	return &Emitter{store: store, clock: time.Now}
}

// Emit records an audit event. It is a no-op when the store is nil, and an
// append failure is logged rather than surfaced: auditing must never fail a
// command.
func (e *Emitter) Emit(ctx context.Context, event storage.AuditEvent) {
	if e == nil || e.store == nil {
		return
	}
	if event.Timestamp.IsZero() {
		if e.clock == nil {
			event.Timestamp = time.Now().UTC()
		} else {
			event.Timestamp = e.clock().UTC()
		}
	}
	if err := e.store.AppendAuditEvent(ctx, event); err != nil {
		log.Printf("append audit event %s: %v", event.Operation, err)
	}
}
