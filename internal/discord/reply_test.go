package discord

import (
	"errors"
	"testing"

	apperrors "github.com/louisbranch/conhotel/internal/errors"
)

func TestErrorMessageDomainError(t *testing.T) {
	err := apperrors.New(apperrors.CodeNotRoomMember, "actor does not belong to a room")
	got := errorMessage("en-US", err)
	if got != "You are not a member of this room" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestErrorMessageWithMetadata(t *testing.T) {
	err := apperrors.WithMetadata(apperrors.CodeRoomExists, "room already exists", map[string]string{
		"Hotel":      "Hilton",
		"RoomNumber": "101",
	})
	got := errorMessage("en-US", err)
	if got != "Room Hilton 101 already exists" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestErrorMessageInternalFallsBack(t *testing.T) {
	got := errorMessage("en-US", errors.New("disk on fire"))
	if got != "An unexpected error occurred" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestErrorMessageUnknownLocaleDefaults(t *testing.T) {
	err := apperrors.New(apperrors.CodeEventNotFound, "channel has no event")
	got := errorMessage("xx-XX", err)
	if got != "No event is registered for this channel" {
		t.Fatalf("unexpected message %q", got)
	}
}
