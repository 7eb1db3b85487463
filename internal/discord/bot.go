// Package discord adapts the room and event registries to the chat platform:
// slash command registration and dispatch, status card rendering, and event
// resource provisioning.
package discord

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/louisbranch/conhotel/internal/events"
	"github.com/louisbranch/conhotel/internal/rooms"
)

// commandTimeout bounds one command's registry and platform calls. The
// platform expects an interaction response within its own short deadline.
const commandTimeout = 15 * time.Second

type commandHandler func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate)

// Bot owns the gateway session and dispatches slash commands to the
// registries.
type Bot struct {
	session  *discordgo.Session
	rooms    *rooms.Registry
	events   *events.Registry
	guildID  string
	handlers map[string]commandHandler
}

// NewBot builds the bot over a fresh gateway session. The session is not
// opened until Start; registries are attached separately because the card
// renderer and provisioner wrap this session.
func NewBot(token, guildID string) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds

	bot := &Bot{
		session: session,
		guildID: guildID,
	}
	bot.handlers = map[string]commandHandler{
		"set_room_channel":   bot.handleSetRoomChannel,
		"set_admin_role":     bot.handleSetAdminRole,
		"create_room":        bot.handleCreateRoom,
		"add_person_to_room": bot.handleAddPersonToRoom,
		"update_room_status": bot.handleUpdateRoomStatus,
		"update_room_info":   bot.handleUpdateRoomInfo,
		"remove_room":        bot.handleRemoveRoom,
		"create_event":       bot.handleCreateEvent,
		"event_add_person":   bot.handleEventAddPerson,
		"event_cleanup":      bot.handleEventCleanup,
	}
	return bot, nil
}

// Session exposes the underlying gateway session for renderer and
// provisioner construction.
func (b *Bot) Session() *discordgo.Session {
	return b.session
}

// Attach sets the registries commands dispatch to. Must be called before
// Start.
func (b *Bot) Attach(roomRegistry *rooms.Registry, eventRegistry *events.Registry) {
	b.rooms = roomRegistry
	b.events = eventRegistry
}

// Start opens the gateway connection and overwrites the guild's slash
// commands with the current definitions.
func (b *Bot) Start() error {
	if b.rooms == nil || b.events == nil {
		return fmt.Errorf("registries are not attached")
	}
	b.session.AddHandler(b.handleInteraction)

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open gateway: %w", err)
	}

	appID := b.session.State.User.ID
	if _, err := b.session.ApplicationCommandBulkOverwrite(appID, b.guildID, commandDefinitions()); err != nil {
		_ = b.session.Close()
		return fmt.Errorf("register commands: %w", err)
	}
	log.Printf("bot connected as %s", b.session.State.User.Username)
	return nil
}

// Stop closes the gateway connection. Registered commands persist across
// restarts and are overwritten on the next Start.
func (b *Bot) Stop() error {
	return b.session.Close()
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		data := i.ApplicationCommandData()
		handler, ok := b.handlers[data.Name]
		if !ok {
			log.Printf("unknown command %s", data.Name)
			return
		}
		handler(ctx, s, i)

	case discordgo.InteractionApplicationCommandAutocomplete:
		b.handleRoomNameAutocomplete(ctx, s, i)
	}
}
