package events

import "context"

// Provisioner creates and destroys the guild resources backing an event.
//
// Channel creation receives the event role so the implementation can scope
// visibility to role holders. All delete operations are expected to succeed
// on already-deleted resources where the platform allows it.
type Provisioner interface {
	CreateRole(ctx context.Context, guildID, name string) (roleID string, err error)
	AssignRole(ctx context.Context, guildID, userID, roleID string) error
	CreateTextChannel(ctx context.Context, guildID, name, roleID string) (channelID string, err error)
	CreateVoiceChannel(ctx context.Context, guildID, name, roleID string) (channelID string, err error)
	DeleteChannel(ctx context.Context, channelID string) error
	DeleteRole(ctx context.Context, guildID, roleID string) error
}
