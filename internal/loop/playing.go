package loop

import (
	"github.com/tomz197/centerfire/internal/physics"
)

// system is one stage of the per-frame pipeline.
type system func(s *State, f Frame)

// systems run in this order every frame while playing.
var systems = []system{
	spawnSystem,
	moveSystem,
	flushSystem,
	aimSystem,
	fireSystem,
	lossSystem,
}

// Step advances the simulation by one frame. Once the game is over it does
// nothing, so positions and score stay frozen at the moment of loss.
// A non-positive delta skips only the time-driven systems (spawn timer and
// motion); aim, fire and the loss check still run on current positions.
func (s *State) Step(f Frame) {
	if s.Phase != PhasePlaying {
		return
	}
	s.Frames++
	if f.Delta > 0 {
		s.Elapsed += f.Delta
	}
	for _, run := range systems {
		run(s, f)
	}
}

// spawnSystem ticks the spawn timer and queues at most one asteroid.
func spawnSystem(s *State, f Frame) {
	if a, ok := s.Spawner.Update(f.Delta); ok {
		s.Spawn(a)
	}
}

// moveSystem pulls every live asteroid toward the center.
func moveSystem(s *State, f Frame) {
	dt := f.Delta.Seconds()
	for _, a := range s.Asteroids {
		a.Update(dt)
	}
}

// flushSystem makes this frame's spawns live. They skip their first motion
// step and appear exactly where they were sampled.
func flushSystem(s *State, _ Frame) {
	s.FlushSpawned()
}

// aimSystem converts the pointer to world space and turns the player.
func aimSystem(s *State, f Frame) {
	s.aim.ok = f.Pointer.OK
	if !f.Pointer.OK {
		return
	}
	s.aim.x, s.aim.y = s.Arena.ScreenToWorld(f.Pointer.X, f.Pointer.Y)
	s.Player.Aim(s.aim.x, s.aim.y)
}

// fireSystem hit-tests a fire edge at the aim point. Without a pointer the
// press is dropped.
func fireSystem(s *State, f Frame) {
	if !f.Fire || !s.aim.ok {
		return
	}
	s.Fire(s.aim.x, s.aim.y)
}

// Fire destroys every asteroid strictly within the hazard radius of the
// world point (x, y) and scores one point for each. Returns the number hit.
func (s *State) Fire(x, y float64) int {
	hits := 0
	kept := s.Asteroids[:0] // reuse backing array
	for _, a := range s.Asteroids {
		if physics.PointInCircle(x, y, a.X, a.Y, s.HazardRadius) {
			hits++
			continue
		}
		kept = append(kept, a)
	}
	clear(s.Asteroids[len(kept):])
	s.Asteroids = kept
	s.Score += hits
	return hits
}

// lossSystem ends the game when any asteroid reaches the player.
func lossSystem(s *State, _ Frame) {
	for _, a := range s.Asteroids {
		if physics.PointInCircle(a.X, a.Y, 0, 0, s.HazardRadius) {
			s.endGame()
			return
		}
	}
}

// endGame moves to PhaseGameOver and reports the score. Calling it again
// is a no-op.
func (s *State) endGame() {
	if s.Phase == PhaseGameOver {
		return
	}
	s.Phase = PhaseGameOver
	if s.Reporter != nil {
		s.Reporter.GameOver(Result{Score: s.Score, Elapsed: s.Elapsed, Asteroids: len(s.Asteroids)})
	}
}
