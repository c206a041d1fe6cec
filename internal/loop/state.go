// Package loop runs the simulation: a single State advanced one frame at a
// time by Step. Front ends own the clock and the input devices; the loop
// owns everything else.
package loop

import (
	"time"

	"github.com/tomz197/centerfire/internal/loop/config"
	"github.com/tomz197/centerfire/internal/object"
)

// Phase is the lifecycle of a session.
type Phase int

const (
	PhasePlaying  Phase = iota // Systems run every frame
	PhaseGameOver              // Terminal: nothing changes any more
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// Pointer is the cursor position in screen coordinates.
// OK is false when the cursor is outside the tracked surface.
type Pointer struct {
	X, Y float64
	OK   bool
}

// PointerAt returns the pointer for a cursor at screen point (sx, sy).
// It is unavailable when the cursor is off the arena surface.
func PointerAt(a object.Arena, sx, sy float64) Pointer {
	return Pointer{X: sx, Y: sy, OK: a.Contains(sx, sy)}
}

// Frame is everything the platform hands the simulation once per frame.
type Frame struct {
	Delta   time.Duration // Time since the previous frame
	Pointer Pointer
	Fire    bool // Edge: true once per physical press
}

// State holds a whole session. It is owned by one goroutine, the one
// calling Step; front ends read it between frames to draw.
type State struct {
	Arena     object.Arena
	Player    *object.Player
	Asteroids []*object.Asteroid
	Score     int
	Phase     Phase
	Spawner   *object.AsteroidSpawner
	Reporter  Reporter

	HazardRadius float64
	Elapsed      time.Duration // Simulated play time
	Frames       uint64        // Frames stepped while playing

	toSpawn []*object.Asteroid // Added after motion, see flushSystem
	aim     struct {
		x, y float64
		ok   bool
	}
}

// NewState creates a session in PhasePlaying. reporter may be nil.
func NewState(s config.Settings, rng object.Rand, reporter Reporter) *State {
	arena := object.Arena{
		Width:  s.ArenaWidth,
		Height: s.ArenaHeight,
		Margin: s.ArenaMargin,
	}
	return &State{
		Arena:        arena,
		Player:       object.NewPlayer(s.PlayerWidth, s.PlayerHeight),
		Asteroids:    []*object.Asteroid{},
		Phase:        PhasePlaying,
		Spawner:      object.NewAsteroidSpawner(arena, rng, s.SpawnPeriod, s.MinSpeed, s.MaxSpeed, s.HazardRadius),
		Reporter:     reporter,
		HazardRadius: s.HazardRadius,
	}
}

// AddAsteroid inserts an asteroid immediately.
func (s *State) AddAsteroid(a *object.Asteroid) {
	s.Asteroids = append(s.Asteroids, a)
}

// Spawn queues an asteroid to be added once this frame's motion is done.
func (s *State) Spawn(a *object.Asteroid) {
	s.toSpawn = append(s.toSpawn, a)
}

// FlushSpawned adds all queued asteroids and clears the queue.
func (s *State) FlushSpawned() {
	s.Asteroids = append(s.Asteroids, s.toSpawn...)
	clear(s.toSpawn)
	s.toSpawn = s.toSpawn[:0]
}

// Aim returns the world point the player aimed at this frame, if any.
func (s *State) Aim() (x, y float64, ok bool) {
	return s.aim.x, s.aim.y, s.aim.ok
}

// GameOver reports whether the session has ended.
func (s *State) GameOver() bool {
	return s.Phase == PhaseGameOver
}
