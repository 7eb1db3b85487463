package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/louisbranch/conhotel/internal/actor"
)

func TestCapabilitiesFromPermissions(t *testing.T) {
	tests := []struct {
		name        string
		permissions int64
		want        []actor.Capability
		wantAbsent  []actor.Capability
	}{
		{
			name:        "administrator grants everything",
			permissions: discordgo.PermissionAdministrator,
			want: []actor.Capability{
				actor.CapabilityManageChannels,
				actor.CapabilityAdministrator,
				actor.CapabilityCreateEvents,
			},
		},
		{
			name:        "manage channels only",
			permissions: discordgo.PermissionManageChannels,
			want:        []actor.Capability{actor.CapabilityManageChannels},
			wantAbsent:  []actor.Capability{actor.CapabilityAdministrator, actor.CapabilityCreateEvents},
		},
		{
			name:        "manage events only",
			permissions: discordgo.PermissionManageEvents,
			want:        []actor.Capability{actor.CapabilityCreateEvents},
			wantAbsent:  []actor.Capability{actor.CapabilityManageChannels, actor.CapabilityAdministrator},
		},
		{
			name:        "no permissions",
			permissions: 0,
			wantAbsent: []actor.Capability{
				actor.CapabilityManageChannels,
				actor.CapabilityAdministrator,
				actor.CapabilityCreateEvents,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := capabilitiesFromPermissions(tt.permissions)
			for _, capability := range tt.want {
				if !set.Has(capability) {
					t.Fatalf("expected %s to be granted", capability)
				}
			}
			for _, capability := range tt.wantAbsent {
				if set.Has(capability) {
					t.Fatalf("expected %s to be absent", capability)
				}
			}
		})
	}
}

func TestActorFromInteraction(t *testing.T) {
	i := &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			GuildID: "guild-1",
			Member: &discordgo.Member{
				User:        &discordgo.User{ID: "u1"},
				Roles:       []string{"role-a", "role-b"},
				Permissions: discordgo.PermissionManageChannels,
			},
		},
	}

	act := actorFromInteraction(i)
	if act.ID != "u1" || act.GuildID != "guild-1" {
		t.Fatalf("unexpected actor %+v", act)
	}
	if !act.HasRole("role-b") {
		t.Fatal("expected role-b")
	}
	if !act.Can(actor.CapabilityManageChannels) {
		t.Fatal("expected manage channels capability")
	}
}

func TestActorFromInteractionMissingMember(t *testing.T) {
	i := &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{GuildID: "guild-1"},
	}

	act := actorFromInteraction(i)
	if act.ID != "" || act.GuildID != "guild-1" {
		t.Fatalf("unexpected actor %+v", act)
	}
	if act.Can(actor.CapabilityManageChannels) {
		t.Fatal("expected no capabilities")
	}
}
