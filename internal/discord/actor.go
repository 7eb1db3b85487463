package discord

import (
	"github.com/bwmarrin/discordgo"
	"github.com/louisbranch/conhotel/internal/actor"
)

// actorFromInteraction resolves the invoking member into an actor for
// registry permission checks.
func actorFromInteraction(i *discordgo.InteractionCreate) actor.Actor {
	act := actor.Actor{GuildID: i.GuildID, Capabilities: actor.NewSet()}
	if i.Member == nil || i.Member.User == nil {
		return act
	}
	act.ID = i.Member.User.ID
	act.RoleIDs = i.Member.Roles
	act.Capabilities = capabilitiesFromPermissions(i.Member.Permissions)
	return act
}

// capabilitiesFromPermissions maps the member's effective permission bits to
// capabilities. Administrator implies everything.
func capabilitiesFromPermissions(permissions int64) actor.Set {
	set := actor.NewSet()
	if permissions&discordgo.PermissionAdministrator != 0 {
		return actor.NewSet(
			actor.CapabilityManageChannels,
			actor.CapabilityAdministrator,
			actor.CapabilityCreateEvents,
		)
	}
	if permissions&discordgo.PermissionManageChannels != 0 {
		set[actor.CapabilityManageChannels] = struct{}{}
	}
	if permissions&discordgo.PermissionManageEvents != 0 {
		set[actor.CapabilityCreateEvents] = struct{}{}
	}
	return set
}
