package rooms

import "testing"

func TestKey(t *testing.T) {
	if got := Key("Hilton", 101); got != "Hilton-101" {
		t.Fatalf("expected Hilton-101, got %s", got)
	}
	room := Room{Hotel: "Westin", RoomNumber: 7}
	if got := room.Key(); got != "Westin-7" {
		t.Fatalf("expected Westin-7, got %s", got)
	}
}

func TestStatusDisplay(t *testing.T) {
	tests := []struct {
		status Status
		label  string
		color  int
		emoji  string
	}{
		{StatusOpen, "Open", 0x3498db, "🟦"},
		{StatusAsk, "Ask", 0xe67e22, "🟧"},
		{StatusDND, "Do Not Disturb", 0xe74c3c, "🟥"},
	}
	for _, tt := range tests {
		d := tt.status.Display()
		if d.Label != tt.label || d.Color != tt.color || d.Emoji != tt.emoji {
			t.Fatalf("status %s: unexpected display %+v", tt.status, d)
		}
	}
}

func TestStatusDisplayUnknownFallsBack(t *testing.T) {
	d := Status("BUSY").Display()
	if d.Label != "BUSY" {
		t.Fatalf("expected raw label fallback, got %s", d.Label)
	}
	if d.Emoji != "⬜" {
		t.Fatalf("expected neutral emoji, got %s", d.Emoji)
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusOpen, StatusAsk, StatusDND} {
		if !s.Valid() {
			t.Fatalf("expected %s to be valid", s)
		}
	}
	if Status("BUSY").Valid() {
		t.Fatal("expected unknown status to be invalid")
	}
}

func TestVibeValid(t *testing.T) {
	for _, v := range []Vibe{VibeOWO, VibeFlirty, VibeChill, VibeEepy} {
		if !v.Valid() {
			t.Fatalf("expected %s to be valid", v)
		}
	}
	if Vibe("GRUMPY").Valid() {
		t.Fatal("expected unknown vibe to be invalid")
	}
}

func TestHasMember(t *testing.T) {
	room := Room{Members: []string{"u1", "u2"}}
	if !room.HasMember("u2") {
		t.Fatal("expected u2 to be a member")
	}
	if room.HasMember("u3") {
		t.Fatal("expected u3 not to be a member")
	}
}

func TestLocation(t *testing.T) {
	room := Room{Hotel: "Hilton", RoomNumber: 101}
	if got := room.Location(); got != "Hilton - Room 101" {
		t.Fatalf("unexpected location %q", got)
	}
}

func TestCardRefIsZero(t *testing.T) {
	if !(CardRef{}).IsZero() {
		t.Fatal("expected zero ref to report zero")
	}
	if (CardRef{ChannelID: "c", MessageID: "m"}).IsZero() {
		t.Fatal("expected set ref not to report zero")
	}
}
