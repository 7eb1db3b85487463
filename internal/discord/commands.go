package discord

import (
	"context"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
	"github.com/louisbranch/conhotel/internal/rooms"
)

// commandDefinitions lists every slash command the bot registers.
func commandDefinitions() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "set_room_channel",
			Description: "Set the channel where room status cards are posted",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionChannel,
					Name:        "channel",
					Description: "Channel for room status cards",
					Required:    true,
					ChannelTypes: []discordgo.ChannelType{
						discordgo.ChannelTypeGuildText,
					},
				},
			},
		},
		{
			Name:        "set_admin_role",
			Description: "Set the role allowed to manage any room",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionRole,
					Name:        "role",
					Description: "Role to treat as room admins",
					Required:    true,
				},
			},
		},
		{
			Name:        "create_room",
			Description: "Create a room and post its status card",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "hotel",
					Description: "Hotel the room is in",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "room_number",
					Description: "Room number",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "name",
					Description: "Optional display name for the room",
				},
			},
		},
		{
			Name:        "add_person_to_room",
			Description: "Add a person to a room you belong to",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "person",
					Description: "Person to add",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "hotel",
					Description: "Hotel, if you belong to several rooms",
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "room_number",
					Description: "Room number, if you belong to several rooms",
				},
			},
		},
		{
			Name:        "update_room_status",
			Description: "Update a room's status and vibe",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "status",
					Description: "Who may enter",
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "Open", Value: string(rooms.StatusOpen)},
						{Name: "Ask", Value: string(rooms.StatusAsk)},
						{Name: "Do Not Disturb", Value: string(rooms.StatusDND)},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "vibe",
					Description: "Current mood",
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "OWO", Value: string(rooms.VibeOWO)},
						{Name: "Flirty", Value: string(rooms.VibeFlirty)},
						{Name: "Chill", Value: string(rooms.VibeChill)},
						{Name: "Eepy", Value: string(rooms.VibeEepy)},
					},
				},
				{
					Type:         discordgo.ApplicationCommandOptionString,
					Name:         "room_name",
					Description:  "Room name, if you belong to several rooms",
					Autocomplete: true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "hotel",
					Description: "Hotel, as an alternative to room name",
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "room_number",
					Description: "Room number, as an alternative to room name",
				},
			},
		},
		{
			Name:        "update_room_info",
			Description: "Change a room's hotel, number or name (admin role)",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "hotel",
					Description: "Current hotel",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "room_number",
					Description: "Current room number",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "new_hotel",
					Description: "New hotel",
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "new_room_number",
					Description: "New room number",
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "new_name",
					Description: "New display name",
				},
			},
		},
		{
			Name:        "remove_room",
			Description: "Remove a room and its status card",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "hotel",
					Description: "Hotel the room is in",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "room_number",
					Description: "Room number",
					Required:    true,
				},
			},
		},
		{
			Name:        "create_event",
			Description: "Create an event role with private text and voice channels",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "role_name",
					Description: "Event role name (3-30 letters, digits, _ or -)",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "channel_name",
					Description: "Event channel name (3-30 letters, digits, _ or -)",
					Required:    true,
				},
			},
		},
		{
			Name:        "event_add_person",
			Description: "Add a person to this channel's event",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "person",
					Description: "Person to add",
					Required:    true,
				},
			},
		},
		{
			Name:        "event_cleanup",
			Description: "Tear down this channel's event",
		},
	}
}

// interactionOptions indexes the command options by name.
func interactionOptions(data discordgo.ApplicationCommandInteractionData) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	options := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(data.Options))
	for _, option := range data.Options {
		options[option.Name] = option
	}
	return options
}

func stringOption(options map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	if option, ok := options[name]; ok {
		return option.StringValue()
	}
	return ""
}

func intOption(options map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) int {
	if option, ok := options[name]; ok {
		return int(option.IntValue())
	}
	return 0
}

func (b *Bot) handleSetRoomChannel(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := interactionOptions(i.ApplicationCommandData())
	channelID := options["channel"].ChannelValue(nil).ID

	if err := b.rooms.SetRoomChannel(ctx, actorFromInteraction(i), i.GuildID, channelID); err != nil {
		replyError(s, i, err)
		return
	}
	reply(s, i, fmt.Sprintf("Room status cards will be posted in <#%s>.", channelID))
}

func (b *Bot) handleSetAdminRole(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := interactionOptions(i.ApplicationCommandData())
	roleID := options["role"].RoleValue(nil, "").ID

	previous, err := b.rooms.SetAdminRole(ctx, actorFromInteraction(i), i.GuildID, roleID)
	if err != nil {
		replyError(s, i, err)
		return
	}
	if previous == "" {
		reply(s, i, fmt.Sprintf("Admin role set to <@&%s>.", roleID))
		return
	}
	reply(s, i, fmt.Sprintf("Admin role changed from <@&%s> to <@&%s>.", previous, roleID))
}

func (b *Bot) handleCreateRoom(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := interactionOptions(i.ApplicationCommandData())

	room, err := b.rooms.CreateRoom(ctx, actorFromInteraction(i), i.GuildID,
		stringOption(options, "hotel"), intOption(options, "room_number"), stringOption(options, "name"))
	if err != nil {
		replyError(s, i, err)
		return
	}
	reply(s, i, fmt.Sprintf("Room created: %s.", room.Location()))
}

func (b *Bot) handleAddPersonToRoom(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := interactionOptions(i.ApplicationCommandData())
	targetID := options["person"].UserValue(nil).ID

	room, err := b.rooms.AddPerson(ctx, actorFromInteraction(i), targetID,
		stringOption(options, "hotel"), intOption(options, "room_number"))
	if err != nil {
		replyError(s, i, err)
		return
	}
	reply(s, i, fmt.Sprintf("<@%s> added to %s.", targetID, room.Location()))
}

func (b *Bot) handleUpdateRoomStatus(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := interactionOptions(i.ApplicationCommandData())
	status := rooms.Status(stringOption(options, "status"))
	vibe := rooms.Vibe(stringOption(options, "vibe"))

	room, err := b.rooms.UpdateStatus(ctx, actorFromInteraction(i), status, vibe,
		stringOption(options, "room_name"), stringOption(options, "hotel"), intOption(options, "room_number"))
	if err != nil {
		replyError(s, i, err)
		return
	}
	display := room.Status.Display()
	reply(s, i, fmt.Sprintf("%s is now %s %s (%s).", room.Location(), display.Emoji, display.Label, room.Vibe.Display().Label))
}

func (b *Bot) handleUpdateRoomInfo(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := interactionOptions(i.ApplicationCommandData())

	room, err := b.rooms.UpdateInfo(ctx, actorFromInteraction(i),
		stringOption(options, "hotel"), intOption(options, "room_number"),
		stringOption(options, "new_hotel"), intOption(options, "new_room_number"), stringOption(options, "new_name"))
	if err != nil {
		replyError(s, i, err)
		return
	}
	summary := room.Location()
	if room.Name != "" {
		summary += " (" + room.Name + ")"
	}
	reply(s, i, fmt.Sprintf("Room updated: %s.", summary))
}

func (b *Bot) handleRemoveRoom(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := interactionOptions(i.ApplicationCommandData())
	hotel := stringOption(options, "hotel")
	roomNumber := intOption(options, "room_number")

	if err := b.rooms.RemoveRoom(ctx, actorFromInteraction(i), hotel, roomNumber); err != nil {
		replyError(s, i, err)
		return
	}
	reply(s, i, fmt.Sprintf("Room removed: %s - Room %d.", hotel, roomNumber))
}

func (b *Bot) handleCreateEvent(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := interactionOptions(i.ApplicationCommandData())

	event, err := b.events.CreateEvent(ctx, actorFromInteraction(i),
		stringOption(options, "role_name"), stringOption(options, "channel_name"))
	if err != nil {
		replyError(s, i, err)
		return
	}
	reply(s, i, fmt.Sprintf("Event %s created: <#%s>.", event.ChannelName, event.TextChannelID))
}

func (b *Bot) handleEventAddPerson(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := interactionOptions(i.ApplicationCommandData())
	targetID := options["person"].UserValue(nil).ID

	event, err := b.events.AddPerson(ctx, actorFromInteraction(i), i.ChannelID, targetID)
	if err != nil {
		replyError(s, i, err)
		return
	}
	reply(s, i, fmt.Sprintf("<@%s> added to event %s.", targetID, event.ChannelName))
}

func (b *Bot) handleEventCleanup(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	event, err := b.events.Cleanup(ctx, actorFromInteraction(i), i.ChannelID)
	if err != nil {
		replyError(s, i, err)
		return
	}
	reply(s, i, fmt.Sprintf("Event %s cleaned up.", event.ChannelName))
}

// handleRoomNameAutocomplete feeds room name choices from the invoker's
// memberships.
func (b *Bot) handleRoomNameAutocomplete(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	var partial string
	for _, option := range data.Options {
		if option.Name == "room_name" && option.Focused {
			partial = option.StringValue()
		}
	}

	act := actorFromInteraction(i)
	names, err := b.rooms.MemberRoomNames(ctx, act.ID, partial)
	if err != nil {
		names = nil
	}
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(names))
	for _, name := range names {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: name, Value: name})
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: choices},
	})
	if err != nil {
		log.Printf("respond to autocomplete: %v", err)
	}
}
