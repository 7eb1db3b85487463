package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// guildAPI is the subset of the session used to provision event resources.
type guildAPI interface {
	GuildRoleCreate(guildID string, data *discordgo.RoleParams, options ...discordgo.RequestOption) (*discordgo.Role, error)
	GuildMemberRoleAdd(guildID, userID, roleID string, options ...discordgo.RequestOption) error
	GuildChannelCreateComplex(guildID string, data discordgo.GuildChannelCreateData, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelDelete(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	GuildRoleDelete(guildID, roleID string, options ...discordgo.RequestOption) error
}

// Provisioner creates event roles and private channel pairs in the guild.
type Provisioner struct {
	session guildAPI
}

// NewProvisioner creates a provisioner over the session.
func NewProvisioner(session guildAPI) *Provisioner {
	return &Provisioner{session: session}
}

// CreateRole creates a mentionable role named after the event.
func (p *Provisioner) CreateRole(ctx context.Context, guildID, name string) (string, error) {
	mentionable := true
	role, err := p.session.GuildRoleCreate(guildID, &discordgo.RoleParams{
		Name:        name,
		Mentionable: &mentionable,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("create role %s: %w", name, err)
	}
	return role.ID, nil
}

// AssignRole grants the role to the user.
func (p *Provisioner) AssignRole(ctx context.Context, guildID, userID, roleID string) error {
	if err := p.session.GuildMemberRoleAdd(guildID, userID, roleID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("assign role: %w", err)
	}
	return nil
}

// CreateTextChannel creates a text channel visible only to role holders.
func (p *Provisioner) CreateTextChannel(ctx context.Context, guildID, name, roleID string) (string, error) {
	return p.createChannel(ctx, guildID, name, roleID, discordgo.ChannelTypeGuildText)
}

// CreateVoiceChannel creates a voice channel visible only to role holders.
func (p *Provisioner) CreateVoiceChannel(ctx context.Context, guildID, name, roleID string) (string, error) {
	return p.createChannel(ctx, guildID, name, roleID, discordgo.ChannelTypeGuildVoice)
}

func (p *Provisioner) createChannel(ctx context.Context, guildID, name, roleID string, channelType discordgo.ChannelType) (string, error) {
	channel, err := p.session.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
		Name: name,
		Type: channelType,
		// The everyone role shares the guild's ID.
		PermissionOverwrites: []*discordgo.PermissionOverwrite{
			{ID: guildID, Type: discordgo.PermissionOverwriteTypeRole, Deny: discordgo.PermissionViewChannel},
			{ID: roleID, Type: discordgo.PermissionOverwriteTypeRole, Allow: discordgo.PermissionViewChannel},
		},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("create channel %s: %w", name, err)
	}
	return channel.ID, nil
}

// DeleteChannel removes the channel.
func (p *Provisioner) DeleteChannel(ctx context.Context, channelID string) error {
	if _, err := p.session.ChannelDelete(channelID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("delete channel: %w", err)
	}
	return nil
}

// DeleteRole removes the role.
func (p *Provisioner) DeleteRole(ctx context.Context, guildID, roleID string) error {
	if err := p.session.GuildRoleDelete(guildID, roleID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("delete role: %w", err)
	}
	return nil
}
