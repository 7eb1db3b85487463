// Package bbolt provides the transactional durable store backing the bot.
//
// The store exposes four root maps (rooms, room channels, admin roles and
// events) through a scoped transaction handle. Mutations made inside an
// Update callback commit atomically when the callback returns nil and roll
// back when it returns an error. BoltDB admits a single writer transaction
// at a time, so concurrent commands serialize their mutations here.
package bbolt

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/conhotel/internal/storage"
	"go.etcd.io/bbolt"
)

const (
	roomsBucket        = "rooms"
	roomChannelsBucket = "room_channels"
	adminRolesBucket   = "admin_roles"
	eventsBucket       = "events"
)

// rootBuckets lists every root map the current schema expects. Open creates
// any bucket absent from an older file so schema additions never require a
// manual upgrade.
var rootBuckets = []string{roomsBucket, roomChannelsBucket, adminRolesBucket, eventsBucket}

// Store provides a BoltDB-backed transactional key-value store.
type Store struct {
	db *bbolt.DB
}

// Open opens a BoltDB-backed store at the provided path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	db, err := bbolt.Open(cleanPath, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}

	store := &Store{db: db}
	if err := store.ensureBuckets(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying BoltDB database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Update runs fn inside a writer transaction. Returning an error from fn
// discards every mutation made through the handle.
func (s *Store) Update(ctx context.Context, fn func(tx *Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return fn(&Tx{tx: tx})
	})
}

// View runs fn inside a read-only transaction.
func (s *Store) View(ctx context.Context, fn func(tx *Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}
	return s.db.View(func(tx *bbolt.Tx) error {
		return fn(&Tx{tx: tx})
	})
}

func (s *Store) ensureBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range rootBuckets {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("create %s bucket: %w", name, err)
			}
		}
		return nil
	})
}

// Tx is the scoped handle over the root maps for one transaction.
type Tx struct {
	tx *bbolt.Tx
}

// Rooms returns the room records map, keyed by "{hotel}-{room_number}".
func (t *Tx) Rooms() Map {
	return Map{name: roomsBucket, bucket: t.tx.Bucket([]byte(roomsBucket))}
}

// RoomChannels returns the guild-to-room-channel map, keyed by guild ID.
func (t *Tx) RoomChannels() Map {
	return Map{name: roomChannelsBucket, bucket: t.tx.Bucket([]byte(roomChannelsBucket))}
}

// AdminRoles returns the guild-to-admin-role map, keyed by guild ID.
func (t *Tx) AdminRoles() Map {
	return Map{name: adminRolesBucket, bucket: t.tx.Bucket([]byte(adminRolesBucket))}
}

// Events returns the event records map, keyed by text channel ID.
func (t *Tx) Events() Map {
	return Map{name: eventsBucket, bucket: t.tx.Bucket([]byte(eventsBucket))}
}

// Map is one root mapping inside an open transaction. Values are
// JSON-encoded; key iteration follows the byte order of keys, which gives
// callers a stable traversal order.
type Map struct {
	name   string
	bucket *bbolt.Bucket
}

// Get decodes the value stored under key into value. Returns
// storage.ErrNotFound when the key is absent.
func (m Map) Get(key string, value any) error {
	if m.bucket == nil {
		return fmt.Errorf("%s bucket is missing", m.name)
	}
	payload := m.bucket.Get([]byte(key))
	if payload == nil {
		return storage.ErrNotFound
	}
	if err := json.Unmarshal(payload, value); err != nil {
		return fmt.Errorf("unmarshal %s record: %w", m.name, err)
	}
	return nil
}

// Exists reports whether a record is stored under key.
func (m Map) Exists(key string) bool {
	if m.bucket == nil {
		return false
	}
	return m.bucket.Get([]byte(key)) != nil
}

// Put encodes value and stores it under key, overwriting any prior record.
func (m Map) Put(key string, value any) error {
	if m.bucket == nil {
		return fmt.Errorf("%s bucket is missing", m.name)
	}
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("%s key is required", m.name)
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s record: %w", m.name, err)
	}
	return m.bucket.Put([]byte(key), payload)
}

// Delete removes the record stored under key. Deleting an absent key is not
// an error.
func (m Map) Delete(key string) error {
	if m.bucket == nil {
		return fmt.Errorf("%s bucket is missing", m.name)
	}
	return m.bucket.Delete([]byte(key))
}

// ForEach visits every record in key byte order. The raw payload passed to
// fn is only valid for the duration of the call.
func (m Map) ForEach(fn func(key string, payload []byte) error) error {
	if m.bucket == nil {
		return fmt.Errorf("%s bucket is missing", m.name)
	}
	return m.bucket.ForEach(func(k, v []byte) error {
		return fn(string(k), v)
	})
}
