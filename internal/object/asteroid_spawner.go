package object

import (
	"math"
	"time"
)

// SpawnTimer is a resettable countdown. Remaining never goes negative:
// the tick that reaches zero resets it to the full Period, dropping any
// overshoot.
type SpawnTimer struct {
	Period    time.Duration
	Remaining time.Duration
}

// NewSpawnTimer returns a timer with a full countdown.
func NewSpawnTimer(period time.Duration) SpawnTimer {
	return SpawnTimer{Period: period, Remaining: period}
}

// Tick advances the countdown and reports whether it fired.
// A single call fires at most once, however large dt is.
// Non-positive dt is a no-op.
func (t *SpawnTimer) Tick(dt time.Duration) bool {
	if dt <= 0 {
		return false
	}
	t.Remaining -= dt
	if t.Remaining > 0 {
		return false
	}
	t.Reset()
	return true
}

// Reset restores the full period.
func (t *SpawnTimer) Reset() {
	t.Remaining = t.Period
}

// RandomBorderPosition samples a spawn point in the arena's margin band and
// returns it in world coordinates.
//
// Each axis is sampled independently: u < 0.5 maps onto [0, margin], the rest
// onto [dim-margin, dim]. Both coordinates therefore land in an edge band,
// which clusters spawns toward the corners instead of spreading them along
// the whole perimeter.
func RandomBorderPosition(rng Rand, arena Arena) (x, y float64) {
	sx := borderCoordinate(rng.Float64(), arena.Width, arena.Margin)
	sy := borderCoordinate(rng.Float64(), arena.Height, arena.Margin)
	return sx - arena.Width/2, sy - arena.Height/2
}

func borderCoordinate(u, dim, margin float64) float64 {
	if u < 0.5 {
		return u * 2 * margin
	}
	return (u-0.5)*2*margin + dim - margin
}

// RandomSpeed samples a speed uniformly from [minSpeed, maxSpeed).
func RandomSpeed(rng Rand, minSpeed, maxSpeed float64) float64 {
	v := minSpeed + rng.Float64()*(maxSpeed-minSpeed)
	if v >= maxSpeed {
		// rounding can land on the open end
		v = math.Nextafter(maxSpeed, minSpeed)
	}
	return v
}

// AsteroidSpawner creates one asteroid every period at a random border
// position with a random inward speed.
type AsteroidSpawner struct {
	Timer    SpawnTimer
	arena    Arena
	rng      Rand
	minSpeed float64
	maxSpeed float64
	radius   float64
	nextID   uint64
}

// NewAsteroidSpawner creates a spawner with a full countdown.
func NewAsteroidSpawner(arena Arena, rng Rand, period time.Duration, minSpeed, maxSpeed, radius float64) *AsteroidSpawner {
	return &AsteroidSpawner{
		Timer:    NewSpawnTimer(period),
		arena:    arena,
		rng:      rng,
		minSpeed: minSpeed,
		maxSpeed: maxSpeed,
		radius:   radius,
		nextID:   1,
	}
}

// Update advances the timer and returns a new asteroid when it fires.
func (s *AsteroidSpawner) Update(dt time.Duration) (*Asteroid, bool) {
	if !s.Timer.Tick(dt) {
		return nil, false
	}
	x, y := RandomBorderPosition(s.rng, s.arena)
	speed := RandomSpeed(s.rng, s.minSpeed, s.maxSpeed)
	a := NewAsteroid(s.nextID, x, y, speed, s.radius)
	s.nextID++
	return a, true
}
