// Package events implements ephemeral guild events: a dedicated role plus a
// private text and voice channel pair, torn down together when the event ends.
package events

import "regexp"

// Event is one provisioned event. Records are keyed by the text channel ID,
// which lets channel-scoped commands resolve their event from the invoking
// channel alone.
type Event struct {
	OwnerID        string `json:"owner_id"`
	GuildID        string `json:"guild_id"`
	RoleName       string `json:"role_name"`
	ChannelName    string `json:"channel_name"`
	RoleID         string `json:"role_id"`
	TextChannelID  string `json:"text_channel_id"`
	VoiceChannelID string `json:"voice_channel_id"`
}

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{3,30}$`)

// ValidName reports whether the name fits the channel naming rules: 3 to 30
// characters drawn from letters, digits, underscore and hyphen.
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}
