package rooms

import "context"

// CardRenderer renders a room snapshot as the externally visible status card.
//
// The renderer owns no state: it is invoked with a record snapshot and
// produces or mutates only the external message. Post returns the reference
// that addresses the card for later edits and deletion.
type CardRenderer interface {
	Post(ctx context.Context, channelID string, room Room) (CardRef, error)
	Edit(ctx context.Context, ref CardRef, room Room) error
	Delete(ctx context.Context, ref CardRef) error
}
