// Package object holds the simulation entities: the arena, the player,
// asteroids and the spawner that creates them.
package object

import (
	"math/rand/v2"
)

// Rand is the random source used for spawn sampling.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	// Float64 returns a pseudo-random number in [0.0, 1.0).
	Float64() float64
}

// NewRand returns a seeded PCG source. A zero seed picks a random one.
func NewRand(seed int64) *rand.Rand {
	s := uint64(seed)
	if seed == 0 {
		s = rand.Uint64()
	}
	return rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))
}

// Arena is the fixed-size play area. World coordinates put the origin at
// the arena center with y pointing up; screen coordinates put the origin at
// the top-left corner with y pointing down.
type Arena struct {
	Width  float64
	Height float64
	Margin float64 // Width of the spawn band along every edge
}

// ScreenToWorld converts a screen point to world coordinates.
func (a Arena) ScreenToWorld(sx, sy float64) (x, y float64) {
	return sx - a.Width/2, a.Height/2 - sy
}

// WorldToScreen converts a world point to screen coordinates.
func (a Arena) WorldToScreen(x, y float64) (sx, sy float64) {
	return x + a.Width/2, a.Height/2 - y
}

// Contains reports whether a screen point lies on the arena surface.
func (a Arena) Contains(sx, sy float64) bool {
	return sx >= 0 && sx < a.Width && sy >= 0 && sy < a.Height
}
