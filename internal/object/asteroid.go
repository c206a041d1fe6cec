package object

import (
	"github.com/tomz197/centerfire/internal/physics"
)

// Asteroid is a hazard drawn straight toward the arena center.
// Its direction is not stored; it is recomputed from the position every tick.
type Asteroid struct {
	ID     uint64  // Unique within a session, increasing in spawn order
	X, Y   float64 // Position (center), world coordinates
	Speed  float64 // Units per second, constant for the asteroid's lifetime
	Radius float64 // Collision/draw radius
}

// NewAsteroid creates an asteroid at (x, y).
func NewAsteroid(id uint64, x, y, speed, radius float64) *Asteroid {
	return &Asteroid{
		ID:     id,
		X:      x,
		Y:      y,
		Speed:  speed,
		Radius: radius,
	}
}

// Update moves the asteroid toward the origin by Speed*dt.
// The asteroid must not sit exactly on the origin; the loss check always
// ends the game before that can happen.
func (a *Asteroid) Update(dt float64) {
	if dt <= 0 {
		return
	}
	dx, dy := physics.TowardOrigin(a.X, a.Y)
	a.X += dx * a.Speed * dt
	a.Y += dy * a.Speed * dt
}

// DistanceToOrigin returns the distance to the arena center (the player).
func (a *Asteroid) DistanceToOrigin() float64 {
	return physics.Length(a.X, a.Y)
}
