package rooms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/louisbranch/conhotel/internal/actor"
	apperrors "github.com/louisbranch/conhotel/internal/errors"
	"github.com/louisbranch/conhotel/internal/storage"
	"github.com/louisbranch/conhotel/internal/storage/bbolt"
	"github.com/louisbranch/conhotel/internal/telemetry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// autocompleteLimit caps the autocomplete feed at the platform's choice limit.
const autocompleteLimit = 25

// Registry implements room operations over the transactional store. Each
// operation opens one store transaction; card edits after a committed
// mutation happen post-commit and are not part of the atomicity boundary.
type Registry struct {
	store  *bbolt.Store
	cards  CardRenderer
	audit  *telemetry.Emitter
	tracer trace.Tracer
	clock  func() time.Time
}

// NewRegistry creates a room registry over the store and card renderer.
func NewRegistry(store *bbolt.Store, cards CardRenderer, audit *telemetry.Emitter) *Registry {
	return &Registry{
		store:  store,
		cards:  cards,
		audit:  audit,
		tracer: otel.Tracer("conhotel/rooms"),
		clock:  time.Now,
	}
}

func (r *Registry) now() time.Time {
	if r.clock == nil {
		return time.Now().UTC()
	}
	return r.clock().UTC()
}

// SetRoomChannel stores the channel where status cards are posted for the
// guild. Overwrites any previous setting.
func (r *Registry) SetRoomChannel(ctx context.Context, act actor.Actor, guildID, channelID string) error {
	ctx, span := r.tracer.Start(ctx, "rooms.SetRoomChannel")
	defer span.End()

	if !act.Can(actor.CapabilityManageChannels) {
		return apperrors.New(apperrors.CodeManageChannelsRequired, "set room channel requires manage channels")
	}
	err := r.store.Update(ctx, func(tx *bbolt.Tx) error {
		return tx.RoomChannels().Put(guildID, channelID)
	})
	if err != nil {
		return err
	}
	r.emit(ctx, telemetry.SeverityInfo, "set_room_channel", guildID, act.ID, channelID, "")
	return nil
}

// SetAdminRole stores the role empowered to bypass membership checks for the
// guild. Returns the previously configured role ID, empty when none was set.
func (r *Registry) SetAdminRole(ctx context.Context, act actor.Actor, guildID, roleID string) (string, error) {
	ctx, span := r.tracer.Start(ctx, "rooms.SetAdminRole")
	defer span.End()

	if !act.Can(actor.CapabilityAdministrator) {
		return "", apperrors.New(apperrors.CodeAdministratorRequired, "set admin role requires administrator")
	}
	var previous string
	err := r.store.Update(ctx, func(tx *bbolt.Tx) error {
		if err := tx.AdminRoles().Get(guildID, &previous); err != nil && !errors.Is(err, storage.ErrNotFound) {
			return err
		}
		return tx.AdminRoles().Put(guildID, roleID)
	})
	if err != nil {
		return "", err
	}
	r.emit(ctx, telemetry.SeverityInfo, "set_admin_role", guildID, act.ID, roleID, "previous="+previous)
	return previous, nil
}

// AdminRole returns the configured admin role ID for the guild, empty when
// none is set.
func (r *Registry) AdminRole(ctx context.Context, guildID string) (string, error) {
	var roleID string
	err := r.store.View(ctx, func(tx *bbolt.Tx) error {
		err := tx.AdminRoles().Get(guildID, &roleID)
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		return err
	})
	return roleID, err
}

// CreateRoom builds a new room record with the requestor as sole member and
// posts its status card. The card post happens inside the transaction: a
// failed post aborts the create.
func (r *Registry) CreateRoom(ctx context.Context, act actor.Actor, guildID, hotel string, roomNumber int, name string) (Room, error) {
	ctx, span := r.tracer.Start(ctx, "rooms.CreateRoom")
	defer span.End()

	if !act.Can(actor.CapabilityManageChannels) {
		return Room{}, apperrors.New(apperrors.CodeManageChannelsRequired, "create room requires manage channels")
	}

	var created Room
	err := r.store.Update(ctx, func(tx *bbolt.Tx) error {
		key := Key(hotel, roomNumber)
		if tx.Rooms().Exists(key) {
			return apperrors.WithMetadata(apperrors.CodeRoomExists, "room already exists", map[string]string{
				"Hotel":      hotel,
				"RoomNumber": strconv.Itoa(roomNumber),
			})
		}
		var channelID string
		if err := tx.RoomChannels().Get(guildID, &channelID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return apperrors.New(apperrors.CodeRoomChannelUnset, "no room channel configured for guild")
			}
			return err
		}

		room := Room{
			Hotel:      hotel,
			RoomNumber: roomNumber,
			Name:       name,
			Members:    []string{act.ID},
			Status:     StatusOpen,
			Vibe:       VibeChill,
			UpdatedAt:  r.now(),
		}
		ref, err := r.cards.Post(ctx, channelID, room)
		if err != nil {
			return err
		}
		room.Card = ref
		if err := tx.Rooms().Put(key, room); err != nil {
			return err
		}
		created = room
		return nil
	})
	if err != nil {
		return Room{}, err
	}
	r.emit(ctx, telemetry.SeverityInfo, "create_room", guildID, act.ID, created.Key(), "")
	return created, nil
}

// FindRoom resolves a room for the user. Lookup precedence: display name,
// then hotel+room-number composite key, then the first room the user belongs
// to in stable key order. A nothing-found result is (zero, false, nil), not
// an error.
func (r *Registry) FindRoom(ctx context.Context, userID, name, hotel string, roomNumber int, requireMembership bool) (Room, bool, error) {
	var (
		found Room
		ok    bool
	)
	err := r.store.View(ctx, func(tx *bbolt.Tx) error {
		var err error
		found, ok, err = findRoom(tx, userID, name, hotel, roomNumber, requireMembership)
		return err
	})
	if err != nil {
		return Room{}, false, err
	}
	return found, ok, nil
}

// findRoom is the transaction-scoped lookup shared by registry operations.
func findRoom(tx *bbolt.Tx, userID, name, hotel string, roomNumber int, requireMembership bool) (Room, bool, error) {
	if name != "" {
		var (
			match Room
			ok    bool
		)
		err := tx.Rooms().ForEach(func(key string, payload []byte) error {
			if ok {
				return nil
			}
			var room Room
			if err := decodeRoom(payload, &room); err != nil {
				return err
			}
			if room.Name != name {
				return nil
			}
			if requireMembership && !room.HasMember(userID) {
				return nil
			}
			match = room
			ok = true
			return nil
		})
		return match, ok, err
	}

	if hotel != "" && roomNumber != 0 {
		var room Room
		err := tx.Rooms().Get(Key(hotel, roomNumber), &room)
		if errors.Is(err, storage.ErrNotFound) {
			return Room{}, false, nil
		}
		if err != nil {
			return Room{}, false, err
		}
		if requireMembership && !room.HasMember(userID) {
			return Room{}, false, nil
		}
		return room, true, nil
	}

	if !requireMembership {
		return Room{}, false, nil
	}
	var (
		match Room
		ok    bool
	)
	err := tx.Rooms().ForEach(func(key string, payload []byte) error {
		if ok {
			return nil
		}
		var room Room
		if err := decodeRoom(payload, &room); err != nil {
			return err
		}
		if room.HasMember(userID) {
			match = room
			ok = true
		}
		return nil
	})
	return match, ok, err
}

func decodeRoom(payload []byte, room *Room) error {
	if err := json.Unmarshal(payload, room); err != nil {
		return fmt.Errorf("unmarshal room record: %w", err)
	}
	return nil
}

// AddPerson appends the target to a room's membership. Admin-role holders
// may target any room; other actors must already be members of the room
// the locator resolves.
func (r *Registry) AddPerson(ctx context.Context, act actor.Actor, targetID, hotel string, roomNumber int) (Room, error) {
	ctx, span := r.tracer.Start(ctx, "rooms.AddPerson")
	defer span.End()

	var updated Room
	err := r.store.Update(ctx, func(tx *bbolt.Tx) error {
		isAdmin := holdsAdminRole(tx, act)
		room, ok, err := findRoom(tx, act.ID, "", hotel, roomNumber, !isAdmin)
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.New(apperrors.CodeRoomNotFound, "no room resolved for add person")
		}
		if room.HasMember(targetID) {
			return apperrors.New(apperrors.CodePersonAlreadyInRoom, "person already in room")
		}
		room.Members = append(room.Members, targetID)
		room.UpdatedAt = r.now()
		if err := tx.Rooms().Put(room.Key(), room); err != nil {
			return err
		}
		updated = room
		return nil
	})
	if err != nil {
		return Room{}, err
	}
	r.refreshCard(ctx, act, "add_person_to_room", updated)
	return updated, nil
}

// UpdateStatus overwrites the room's status and vibe. Admin-role holders may
// reach any room; other actors must be members.
func (r *Registry) UpdateStatus(ctx context.Context, act actor.Actor, status Status, vibe Vibe, name, hotel string, roomNumber int) (Room, error) {
	ctx, span := r.tracer.Start(ctx, "rooms.UpdateStatus")
	defer span.End()

	var updated Room
	err := r.store.Update(ctx, func(tx *bbolt.Tx) error {
		isAdmin := holdsAdminRole(tx, act)
		room, ok, err := findRoom(tx, act.ID, name, hotel, roomNumber, !isAdmin)
		if err != nil {
			return err
		}
		if !ok {
			if isAdmin {
				return apperrors.New(apperrors.CodeRoomNotFound, "no room resolved for status update")
			}
			return apperrors.New(apperrors.CodeNotRoomMember, "actor does not belong to a room")
		}
		room.Status = status
		room.Vibe = vibe
		room.UpdatedAt = r.now()
		if err := tx.Rooms().Put(room.Key(), room); err != nil {
			return err
		}
		updated = room
		return nil
	})
	if err != nil {
		return Room{}, err
	}
	r.refreshCard(ctx, act, "update_room_status", updated)
	return updated, nil
}

// UpdateInfo renames or re-keys a room. Requires the admin role; there is no
// membership fallback. Zero-valued new fields are left unchanged; when the
// composite key changes the record moves to the new key in the same
// transaction.
func (r *Registry) UpdateInfo(ctx context.Context, act actor.Actor, oldHotel string, oldRoomNumber int, newHotel string, newRoomNumber int, newName string) (Room, error) {
	ctx, span := r.tracer.Start(ctx, "rooms.UpdateInfo")
	defer span.End()

	var updated Room
	err := r.store.Update(ctx, func(tx *bbolt.Tx) error {
		if !holdsAdminRole(tx, act) {
			return apperrors.New(apperrors.CodeAdminRoleRequired, "update room info requires admin role")
		}

		oldKey := Key(oldHotel, oldRoomNumber)
		var room Room
		if err := tx.Rooms().Get(oldKey, &room); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return apperrors.New(apperrors.CodeRoomNotFound, "room does not exist")
			}
			return err
		}

		if newHotel != "" {
			room.Hotel = newHotel
		}
		if newRoomNumber != 0 {
			room.RoomNumber = newRoomNumber
		}
		if newName != "" {
			room.Name = newName
		}
		room.UpdatedAt = r.now()

		newKey := room.Key()
		if newKey != oldKey {
			if err := tx.Rooms().Delete(oldKey); err != nil {
				return err
			}
		}
		if err := tx.Rooms().Put(newKey, room); err != nil {
			return err
		}
		updated = room
		return nil
	})
	if err != nil {
		return Room{}, err
	}
	r.refreshCard(ctx, act, "update_room_info", updated)
	return updated, nil
}

// RemoveRoom deletes the room's card and record. Deletion requires the admin
// role or membership; the card delete runs inside the transaction so a
// platform failure leaves the record in place.
func (r *Registry) RemoveRoom(ctx context.Context, act actor.Actor, hotel string, roomNumber int) error {
	ctx, span := r.tracer.Start(ctx, "rooms.RemoveRoom")
	defer span.End()

	key := Key(hotel, roomNumber)
	err := r.store.Update(ctx, func(tx *bbolt.Tx) error {
		var room Room
		if err := tx.Rooms().Get(key, &room); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return apperrors.New(apperrors.CodeRoomNotFound, "room does not exist")
			}
			return err
		}
		if !holdsAdminRole(tx, act) && !room.HasMember(act.ID) {
			return apperrors.New(apperrors.CodeNotRoomMember, "remove room requires admin role or membership")
		}
		if !room.Card.IsZero() {
			if err := r.cards.Delete(ctx, room.Card); err != nil {
				return err
			}
		}
		return tx.Rooms().Delete(key)
	})
	if err != nil {
		return err
	}
	r.emit(ctx, telemetry.SeverityInfo, "remove_room", act.GuildID, act.ID, key, "")
	return nil
}

// MemberRoomNames returns up to 25 display names of named rooms the user
// belongs to, substring-matched case-insensitively against partial.
func (r *Registry) MemberRoomNames(ctx context.Context, userID, partial string) ([]string, error) {
	needle := strings.ToLower(partial)
	var names []string
	err := r.store.View(ctx, func(tx *bbolt.Tx) error {
		return tx.Rooms().ForEach(func(key string, payload []byte) error {
			if len(names) >= autocompleteLimit {
				return nil
			}
			var room Room
			if err := decodeRoom(payload, &room); err != nil {
				return err
			}
			if room.Name == "" || !room.HasMember(userID) {
				return nil
			}
			if needle != "" && !strings.Contains(strings.ToLower(room.Name), needle) {
				return nil
			}
			names = append(names, room.Name)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// holdsAdminRole reports whether the actor carries the guild's configured
// admin role. Reads settings inside the operation's own transaction.
func holdsAdminRole(tx *bbolt.Tx, act actor.Actor) bool {
	var roleID string
	if err := tx.AdminRoles().Get(act.GuildID, &roleID); err != nil {
		return false
	}
	return act.HasRole(roleID)
}

// refreshCard re-renders the card after a committed mutation. Failures leave
// the stored record and the visible card divergent: they are logged and
// audited, never retried or rolled back.
func (r *Registry) refreshCard(ctx context.Context, act actor.Actor, operation string, room Room) {
	if room.Card.IsZero() {
		r.emit(ctx, telemetry.SeverityInfo, operation, act.GuildID, act.ID, room.Key(), "")
		return
	}
	if err := r.cards.Edit(ctx, room.Card, room); err != nil {
		log.Printf("%s: edit card for %s: %v", operation, room.Key(), err)
		r.emit(ctx, telemetry.SeverityWarn, operation, act.GuildID, act.ID, room.Key(), "card edit failed: "+err.Error())
		return
	}
	r.emit(ctx, telemetry.SeverityInfo, operation, act.GuildID, act.ID, room.Key(), "")
}

func (r *Registry) emit(ctx context.Context, severity telemetry.Severity, operation, guildID, actorID, subject, detail string) {
	r.audit.Emit(ctx, storage.AuditEvent{
		Severity:  string(severity),
		Operation: operation,
		GuildID:   guildID,
		ActorID:   actorID,
		Subject:   subject,
		Detail:    detail,
	})
}
