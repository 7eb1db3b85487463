package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/louisbranch/conhotel/internal/rooms"
)

// messenger is the subset of the session used for card messages.
type messenger interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEditEmbed(channelID, messageID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error
}

// Cards renders room status cards as embeds in the configured room channel.
type Cards struct {
	session messenger
}

// NewCards creates a card renderer over the session.
func NewCards(session messenger) *Cards {
	return &Cards{session: session}
}

// Post sends a fresh status card and returns its message reference.
func (c *Cards) Post(ctx context.Context, channelID string, room rooms.Room) (rooms.CardRef, error) {
	msg, err := c.session.ChannelMessageSendEmbed(channelID, cardEmbed(room), discordgo.WithContext(ctx))
	if err != nil {
		return rooms.CardRef{}, fmt.Errorf("post card: %w", err)
	}
	return rooms.CardRef{ChannelID: channelID, MessageID: msg.ID}, nil
}

// Edit replaces the card's embed with the current room snapshot.
func (c *Cards) Edit(ctx context.Context, ref rooms.CardRef, room rooms.Room) error {
	if _, err := c.session.ChannelMessageEditEmbed(ref.ChannelID, ref.MessageID, cardEmbed(room), discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("edit card: %w", err)
	}
	return nil
}

// Delete removes the card message.
func (c *Cards) Delete(ctx context.Context, ref rooms.CardRef) error {
	if err := c.session.ChannelMessageDelete(ref.ChannelID, ref.MessageID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	return nil
}

// cardEmbed builds the status card embed for a room snapshot.
func cardEmbed(room rooms.Room) *discordgo.MessageEmbed {
	status := room.Status.Display()
	vibe := room.Vibe.Display()

	title := room.Location()
	if room.Name != "" {
		title = room.Name
	}

	mentions := make([]string, 0, len(room.Members))
	for _, id := range room.Members {
		mentions = append(mentions, "<@"+id+">")
	}
	members := strings.Join(mentions, "\n")
	if members == "" {
		members = "Nobody yet"
	}

	return &discordgo.MessageEmbed{
		Title: status.Emoji + " " + title,
		Color: status.Color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Location", Value: room.Location(), Inline: true},
			{Name: "Status", Value: status.Label, Inline: true},
			{Name: "Vibe", Value: vibe.Label, Inline: true},
			{Name: "Members", Value: members},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Updated " + room.UpdatedAt.Format("2006-01-02 15:04 MST"),
		},
	}
}
