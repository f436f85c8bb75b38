package messages

import "github.com/automoto/ordnance/shared/catalog"

// FireInput is sent from client to server each tick with the player's aim and
// trigger state. Positions are fixed point.
type FireInput struct {
	Sequence  uint32         // Incrementing ID
	Eye       [3]int         // Eye position
	Target    [3]int         // Aim point
	Yaw       float64
	Pitch     float64
	Action    catalog.Action // ActIdle releases the trigger
	Crouching bool
	Timestamp int64 // Client timestamp (Unix ms)
}

// NewFireInput creates an idle FireInput.
func NewFireInput(seq uint32) FireInput {
	return FireInput{
		Sequence: seq,
		Action:   catalog.ActIdle,
	}
}
