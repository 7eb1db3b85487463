package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/louisbranch/conhotel/internal/storage"
)

type recordingAuditStore struct {
	events []storage.AuditEvent
}

func (r *recordingAuditStore) AppendAuditEvent(ctx context.Context, event storage.AuditEvent) error {
	r.events = append(r.events, event)
	return nil
}

func TestEmitFillsTimestamp(t *testing.T) {
	store := &recordingAuditStore{}
	emitter := NewEmitter(store)
	fixed := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)
	emitter.clock = func() time.Time { return fixed }

	emitter.Emit(context.Background(), storage.AuditEvent{Operation: "create_room"})

	if len(store.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(store.events))
	}
	if !store.events[0].Timestamp.Equal(fixed) {
		t.Fatalf("expected timestamp %v, got %v", fixed, store.events[0].Timestamp)
	}
}

func TestEmitPreservesExplicitTimestamp(t *testing.T) {
	store := &recordingAuditStore{}
	emitter := NewEmitter(store)
	explicit := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	emitter.Emit(context.Background(), storage.AuditEvent{Operation: "remove_room", Timestamp: explicit})

	if !store.events[0].Timestamp.Equal(explicit) {
		t.Fatalf("expected timestamp %v, got %v", explicit, store.events[0].Timestamp)
	}
}

func TestEmitNilStoreIsNoop(t *testing.T) {
	emitter := NewEmitter(nil)
	emitter.Emit(context.Background(), storage.AuditEvent{Operation: "create_room"})

	var nilEmitter *Emitter
	nilEmitter.Emit(context.Background(), storage.AuditEvent{Operation: "create_room"})
}
