// Package actor models the invoking guild member for permission checks.
//
// The package decouples registry policy from the chat platform's role object
// model: the transport adapter resolves a member's roles and permissions into
// a capability set once, and registry checks reduce to set membership tests.
package actor

// Capability is a named permission an actor may hold via one or more roles.
type Capability string

const (
	// CapabilityManageChannels gates room-channel configuration and room creation.
	CapabilityManageChannels Capability = "manage_channels"
	// CapabilityAdministrator gates admin-role configuration.
	CapabilityAdministrator Capability = "administrator"
	// CapabilityCreateEvents gates event provisioning.
	CapabilityCreateEvents Capability = "create_events"
)

// Set is a collection of granted capabilities.
type Set map[Capability]struct{}

// NewSet builds a capability set from the provided capabilities.
func NewSet(capabilities ...Capability) Set {
	set := make(Set, len(capabilities))
	for _, capability := range capabilities {
		set[capability] = struct{}{}
	}
	return set
}

// Has reports whether the capability is granted.
func (s Set) Has(capability Capability) bool {
	_, ok := s[capability]
	return ok
}

// Actor is the guild member invoking an operation.
type Actor struct {
	ID           string
	GuildID      string
	RoleIDs      []string
	Capabilities Set
}

// Can reports whether the actor holds the capability.
func (a Actor) Can(capability Capability) bool {
	return a.Capabilities.Has(capability)
}

// HasRole reports whether the actor holds the given role.
func (a Actor) HasRole(roleID string) bool {
	if roleID == "" {
		return false
	}
	for _, id := range a.RoleIDs {
		if id == roleID {
			return true
		}
	}
	return false
}
