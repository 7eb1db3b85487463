package events

import (
	"context"
	"errors"
	"log"

	"github.com/louisbranch/conhotel/internal/actor"
	apperrors "github.com/louisbranch/conhotel/internal/errors"
	"github.com/louisbranch/conhotel/internal/storage"
	"github.com/louisbranch/conhotel/internal/storage/bbolt"
	"github.com/louisbranch/conhotel/internal/telemetry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Registry implements event operations over the transactional store and the
// guild resource provisioner.
type Registry struct {
	store     *bbolt.Store
	provision Provisioner
	audit     *telemetry.Emitter
	tracer    trace.Tracer
}

// NewRegistry creates an event registry over the store and provisioner.
func NewRegistry(store *bbolt.Store, provision Provisioner, audit *telemetry.Emitter) *Registry {
	return &Registry{
		store:     store,
		provision: provision,
		audit:     audit,
		tracer:    otel.Tracer("conhotel/events"),
	}
}

// CreateEvent provisions the role and channel pair for a new event and
// records it keyed by the text channel ID. Resources are provisioned before
// the record commits; a failure part way through tears down what was already
// created.
func (r *Registry) CreateEvent(ctx context.Context, act actor.Actor, roleName, channelName string) (Event, error) {
	ctx, span := r.tracer.Start(ctx, "events.CreateEvent")
	defer span.End()

	if !act.Can(actor.CapabilityCreateEvents) {
		return Event{}, apperrors.New(apperrors.CodeCreateEventsRequired, "create event requires event permissions")
	}
	if !ValidName(roleName) {
		return Event{}, apperrors.WithMetadata(apperrors.CodeInvalidName, "event role name is invalid", map[string]string{
			"Name": roleName,
		})
	}
	if !ValidName(channelName) {
		return Event{}, apperrors.WithMetadata(apperrors.CodeInvalidName, "event channel name is invalid", map[string]string{
			"Name": channelName,
		})
	}

	roleID, err := r.provision.CreateRole(ctx, act.GuildID, roleName)
	if err != nil {
		return Event{}, err
	}
	if err := r.provision.AssignRole(ctx, act.GuildID, act.ID, roleID); err != nil {
		r.teardown(ctx, act.GuildID, roleID, "", "")
		return Event{}, err
	}
	textID, err := r.provision.CreateTextChannel(ctx, act.GuildID, channelName, roleID)
	if err != nil {
		r.teardown(ctx, act.GuildID, roleID, "", "")
		return Event{}, err
	}
	voiceID, err := r.provision.CreateVoiceChannel(ctx, act.GuildID, channelName+"-vc", roleID)
	if err != nil {
		r.teardown(ctx, act.GuildID, roleID, textID, "")
		return Event{}, err
	}

	event := Event{
		OwnerID:        act.ID,
		GuildID:        act.GuildID,
		RoleName:       roleName,
		ChannelName:    channelName,
		RoleID:         roleID,
		TextChannelID:  textID,
		VoiceChannelID: voiceID,
	}
	err = r.store.Update(ctx, func(tx *bbolt.Tx) error {
		return tx.Events().Put(event.TextChannelID, event)
	})
	if err != nil {
		r.teardown(ctx, act.GuildID, roleID, textID, voiceID)
		return Event{}, err
	}
	r.emit(ctx, telemetry.SeverityInfo, "create_event", act, channelName)
	return event, nil
}

// AddPerson grants the event role to the target. The event is resolved from
// the channel the command was invoked in.
func (r *Registry) AddPerson(ctx context.Context, act actor.Actor, channelID, targetID string) (Event, error) {
	ctx, span := r.tracer.Start(ctx, "events.AddPerson")
	defer span.End()

	event, err := r.Lookup(ctx, channelID)
	if err != nil {
		return Event{}, err
	}
	if err := r.provision.AssignRole(ctx, event.GuildID, targetID, event.RoleID); err != nil {
		return Event{}, err
	}
	r.emit(ctx, telemetry.SeverityInfo, "event_add_person", act, event.ChannelName)
	return event, nil
}

// Cleanup tears down the event's channels and role, then removes the record.
// Resource deletion is best effort: a failed delete is logged and audited
// but never blocks removing the remaining resources or the record.
func (r *Registry) Cleanup(ctx context.Context, act actor.Actor, channelID string) (Event, error) {
	ctx, span := r.tracer.Start(ctx, "events.Cleanup")
	defer span.End()

	event, err := r.Lookup(ctx, channelID)
	if err != nil {
		return Event{}, err
	}

	if err := r.provision.DeleteChannel(ctx, event.VoiceChannelID); err != nil {
		log.Printf("cleanup event %s: delete voice channel: %v", event.ChannelName, err)
		r.emit(ctx, telemetry.SeverityWarn, "event_cleanup", act, "voice channel delete failed: "+err.Error())
	}
	if err := r.provision.DeleteChannel(ctx, event.TextChannelID); err != nil {
		log.Printf("cleanup event %s: delete text channel: %v", event.ChannelName, err)
		r.emit(ctx, telemetry.SeverityWarn, "event_cleanup", act, "text channel delete failed: "+err.Error())
	}
	if err := r.provision.DeleteRole(ctx, event.GuildID, event.RoleID); err != nil {
		log.Printf("cleanup event %s: delete role: %v", event.ChannelName, err)
		r.emit(ctx, telemetry.SeverityWarn, "event_cleanup", act, "role delete failed: "+err.Error())
	}

	err = r.store.Update(ctx, func(tx *bbolt.Tx) error {
		return tx.Events().Delete(event.TextChannelID)
	})
	if err != nil {
		return Event{}, err
	}
	r.emit(ctx, telemetry.SeverityInfo, "event_cleanup", act, event.ChannelName)
	return event, nil
}

// Lookup resolves the event recorded for the given text channel.
func (r *Registry) Lookup(ctx context.Context, channelID string) (Event, error) {
	var event Event
	err := r.store.View(ctx, func(tx *bbolt.Tx) error {
		return tx.Events().Get(channelID, &event)
	})
	if errors.Is(err, storage.ErrNotFound) {
		return Event{}, apperrors.New(apperrors.CodeEventNotFound, "channel has no event")
	}
	if err != nil {
		return Event{}, err
	}
	return event, nil
}

// teardown undoes a partial provisioning run. Failures are logged only; the
// original provisioning error is what the caller reports.
func (r *Registry) teardown(ctx context.Context, guildID, roleID, textID, voiceID string) {
	if voiceID != "" {
		if err := r.provision.DeleteChannel(ctx, voiceID); err != nil {
			log.Printf("teardown voice channel %s: %v", voiceID, err)
		}
	}
	if textID != "" {
		if err := r.provision.DeleteChannel(ctx, textID); err != nil {
			log.Printf("teardown text channel %s: %v", textID, err)
		}
	}
	if roleID != "" {
		if err := r.provision.DeleteRole(ctx, guildID, roleID); err != nil {
			log.Printf("teardown role %s: %v", roleID, err)
		}
	}
}

func (r *Registry) emit(ctx context.Context, severity telemetry.Severity, operation string, act actor.Actor, detail string) {
	r.audit.Emit(ctx, storage.AuditEvent{
		Severity:  string(severity),
		Operation: operation,
		GuildID:   act.GuildID,
		ActorID:   act.ID,
		Detail:    detail,
	})
}
