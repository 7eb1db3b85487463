package events

import "testing"

func TestValidName(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"abc", true},
		{"room_1-A", true},
		{"abcdefghijklmnopqrstuvwxyz1234", true},
		{"ab", false},
		{"abcdefghijklmnopqrstuvwxyz12345", false},
		{"room!", false},
		{"room name", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidName(tt.name); got != tt.valid {
			t.Fatalf("ValidName(%q) = %v, want %v", tt.name, got, tt.valid)
		}
	}
}
