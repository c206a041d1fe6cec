package client

import (
	"time"

	"github.com/tomz197/centerfire/internal/input"
)

// ClientState holds per-connection state that is not part of the simulation.
type ClientState struct {
	Input      input.Input
	Running    bool          // Client loop running
	delta      time.Duration // Frame delta time (client-side)
	isInactive bool          // Whether the client is in inactive warning state
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		Running: true,
	}
}
