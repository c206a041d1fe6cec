// Package config centralizes all tunable game parameters.
package config

import (
	"errors"
	"fmt"
	"math"
	"time"

	envconfig "github.com/tomz197/centerfire/internal/config"
)

// Arena dimensions in world units. The window front end opens at exactly
// this size; the terminal front end scales it to fit.
const (
	ArenaWidth  = 800.0
	ArenaHeight = 600.0
	ArenaMargin = 50.0 // Width of the border band asteroids spawn in
)

// Player
const (
	PlayerWidth  = 25.0
	PlayerHeight = 50.0
)

// Asteroids
const (
	HazardRadius     = 50.0 // Hit-test and loss distance, also the drawn radius
	SpawnPeriod      = time.Second
	AsteroidMinSpeed = 50.0  // Units per second
	AsteroidMaxSpeed = 100.0 // Exclusive
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Max render resolution in terminal cells. Larger terminals get a border.
const (
	MaxTermWidth  = 160
	MaxTermHeight = 60
)

// ErrInvalidSettings is wrapped by every error returned from Settings.Validate.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings holds the tunables of a single game session.
type Settings struct {
	ArenaWidth   float64
	ArenaHeight  float64
	ArenaMargin  float64
	HazardRadius float64
	SpawnPeriod  time.Duration
	MinSpeed     float64
	MaxSpeed     float64
	PlayerWidth  float64
	PlayerHeight float64
	Seed         int64 // 0 picks a random seed
}

// Default returns the stock settings.
func Default() Settings {
	return Settings{
		ArenaWidth:   ArenaWidth,
		ArenaHeight:  ArenaHeight,
		ArenaMargin:  ArenaMargin,
		HazardRadius: HazardRadius,
		SpawnPeriod:  SpawnPeriod,
		MinSpeed:     AsteroidMinSpeed,
		MaxSpeed:     AsteroidMaxSpeed,
		PlayerWidth:  PlayerWidth,
		PlayerHeight: PlayerHeight,
	}
}

// FromEnv returns Default overlaid with environment variables and validated.
func FromEnv() (Settings, error) {
	s := Default()
	var errs []error
	float := func(key string, dst *float64) {
		v, err := envconfig.GetEnvFloat(key, *dst)
		if err != nil {
			errs = append(errs, err)
			return
		}
		*dst = v
	}

	float("ARENA_WIDTH", &s.ArenaWidth)
	float("ARENA_HEIGHT", &s.ArenaHeight)
	float("ARENA_MARGIN", &s.ArenaMargin)
	float("HAZARD_RADIUS", &s.HazardRadius)
	float("ASTEROID_MIN_SPEED", &s.MinSpeed)
	float("ASTEROID_MAX_SPEED", &s.MaxSpeed)

	if d, err := envconfig.GetEnvDuration("SPAWN_PERIOD", s.SpawnPeriod); err != nil {
		errs = append(errs, err)
	} else {
		s.SpawnPeriod = d
	}
	if seed, err := envconfig.GetEnvInt("RNG_SEED", s.Seed); err != nil {
		errs = append(errs, err)
	} else {
		s.Seed = seed
	}

	if err := errors.Join(errs...); err != nil {
		return s, fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	return s, s.Validate()
}

// Validate checks that the settings describe a playable arena.
func (s Settings) Validate() error {
	switch {
	case s.ArenaWidth <= 0 || s.ArenaHeight <= 0:
		return fmt.Errorf("%w: arena must be positive, got %vx%v", ErrInvalidSettings, s.ArenaWidth, s.ArenaHeight)
	case s.ArenaMargin <= 0 || s.ArenaMargin > math.Min(s.ArenaWidth, s.ArenaHeight)/2:
		return fmt.Errorf("%w: margin %v outside (0, %v]", ErrInvalidSettings, s.ArenaMargin, math.Min(s.ArenaWidth, s.ArenaHeight)/2)
	case s.HazardRadius <= 0:
		return fmt.Errorf("%w: hazard radius must be positive, got %v", ErrInvalidSettings, s.HazardRadius)
	case s.SpawnPeriod <= 0:
		return fmt.Errorf("%w: spawn period must be positive, got %v", ErrInvalidSettings, s.SpawnPeriod)
	case s.MinSpeed <= 0:
		return fmt.Errorf("%w: min speed must be positive, got %v", ErrInvalidSettings, s.MinSpeed)
	case s.MaxSpeed <= s.MinSpeed:
		return fmt.Errorf("%w: speed range [%v, %v) is empty", ErrInvalidSettings, s.MinSpeed, s.MaxSpeed)
	}
	return nil
}
