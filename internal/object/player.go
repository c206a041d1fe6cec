package object

import (
	"math"

	"github.com/tomz197/centerfire/internal/physics"
)

// Player is the stationary turret at the arena center. It never moves;
// only Angle changes, following the pointer.
type Player struct {
	Width  float64
	Height float64
	// Angle is the rotation about the z axis of a body whose forward axis
	// starts along +y. Aim sets it to atan2(x, -y).
	Angle float64
}

// NewPlayer creates a player facing up.
func NewPlayer(width, height float64) *Player {
	return &Player{Width: width, Height: height}
}

// Aim rotates the player toward the world point (x, y).
func (p *Player) Aim(x, y float64) {
	p.Angle = math.Atan2(x, -y)
}

// Forward returns the unit vector toward the last aimed point.
func (p *Player) Forward() (float64, float64) {
	sin, cos := math.Sincos(p.Angle)
	return sin, -cos
}

// Corners returns the four corners of the player's body rectangle in world
// coordinates, with its long side along Forward.
func (p *Player) Corners() [4][2]float64 {
	fx, fy := p.Forward()
	heading := math.Atan2(fy, fx) - math.Pi/2
	hw, hh := p.Width/2, p.Height/2
	local := [4][2]float64{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}

	var out [4][2]float64
	for i, c := range local {
		out[i][0], out[i][1] = physics.Rotate(c[0], c[1], heading)
	}
	return out
}
