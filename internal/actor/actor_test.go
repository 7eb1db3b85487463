package actor

import "testing"

func TestSetHas(t *testing.T) {
	set := NewSet(CapabilityManageChannels, CapabilityCreateEvents)
	if !set.Has(CapabilityManageChannels) {
		t.Fatal("expected manage channels capability")
	}
	if set.Has(CapabilityAdministrator) {
		t.Fatal("did not expect administrator capability")
	}
}

func TestActorCanEmptySet(t *testing.T) {
	var a Actor
	if a.Can(CapabilityManageChannels) {
		t.Fatal("expected no capabilities on zero actor")
	}
}

func TestActorHasRole(t *testing.T) {
	a := Actor{RoleIDs: []string{"role-1", "role-2"}}
	if !a.HasRole("role-2") {
		t.Fatal("expected role-2")
	}
	if a.HasRole("role-3") {
		t.Fatal("did not expect role-3")
	}
	if a.HasRole("") {
		t.Fatal("empty role id must never match")
	}
}
