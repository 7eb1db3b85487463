// Package rooms implements the room registry: reservable hotel-room records
// with membership, status and a live status card.
package rooms

import (
	"fmt"
	"strconv"
	"time"
)

// Status describes who may enter a room.
type Status string

const (
	StatusOpen Status = "OPEN"
	StatusAsk  Status = "ASK"
	StatusDND  Status = "DND"
)

// Vibe is a secondary mood tag orthogonal to status.
type Vibe string

const (
	VibeOWO    Vibe = "OWO"
	VibeFlirty Vibe = "FLIRTY"
	VibeChill  Vibe = "CHILL"
	VibeEepy   Vibe = "EEPY"
)

// Display carries the presentation metadata attached to a status or vibe tag.
type Display struct {
	Label string
	Color int
	Emoji string
}

var statusDisplay = map[Status]Display{
	StatusOpen: {Label: "Open", Color: 0x3498db, Emoji: "🟦"},
	StatusAsk:  {Label: "Ask", Color: 0xe67e22, Emoji: "🟧"},
	StatusDND:  {Label: "Do Not Disturb", Color: 0xe74c3c, Emoji: "🟥"},
}

var vibeDisplay = map[Vibe]Display{
	VibeOWO:    {Label: "OWO", Color: 0x3498db},
	VibeFlirty: {Label: "Flirty", Color: 0x2ecc71},
	VibeChill:  {Label: "Chill", Color: 0xf1c40f},
	VibeEepy:   {Label: "Eepy", Color: 0xe74c3c},
}

// Display returns the presentation metadata for the status. Unknown tags get
// a neutral fallback so a corrupted record still renders.
func (s Status) Display() Display {
	if d, ok := statusDisplay[s]; ok {
		return d
	}
	return Display{Label: string(s), Color: 0x95a5a6, Emoji: "⬜"}
}

// Display returns the presentation metadata for the vibe.
func (v Vibe) Display() Display {
	if d, ok := vibeDisplay[v]; ok {
		return d
	}
	return Display{Label: string(v), Color: 0x95a5a6}
}

// Valid reports whether the status is one of the known tags.
func (s Status) Valid() bool {
	_, ok := statusDisplay[s]
	return ok
}

// Valid reports whether the vibe is one of the known tags.
func (v Vibe) Valid() bool {
	_, ok := vibeDisplay[v]
	return ok
}

// CardRef addresses the rendered status card message. The zero value means
// the card has not been posted yet; once set it is authoritative for the
// visual card until the room is deleted.
type CardRef struct {
	ChannelID string `json:"channel_id"`
	MessageID string `json:"message_id"`
}

// IsZero reports whether the reference is unset.
func (r CardRef) IsZero() bool {
	return r.ChannelID == "" && r.MessageID == ""
}

// Room is a reservable unit identified by hotel and room number.
type Room struct {
	Hotel      string    `json:"hotel"`
	RoomNumber int       `json:"room_number"`
	Name       string    `json:"name,omitempty"`
	Members    []string  `json:"members"`
	Status     Status    `json:"status"`
	Vibe       Vibe      `json:"vibe"`
	UpdatedAt  time.Time `json:"updated_at"`
	Card       CardRef   `json:"card"`
}

// Key composes the unique store key for a hotel and room number.
func Key(hotel string, roomNumber int) string {
	return fmt.Sprintf("%s-%d", hotel, roomNumber)
}

// Key returns the room's store key.
func (r Room) Key() string {
	return Key(r.Hotel, r.RoomNumber)
}

// HasMember reports whether the user belongs to the room.
func (r Room) HasMember(userID string) bool {
	for _, id := range r.Members {
		if id == userID {
			return true
		}
	}
	return false
}

// Location formats the hotel and room number for display.
func (r Room) Location() string {
	return r.Hotel + " - Room " + strconv.Itoa(r.RoomNumber)
}
