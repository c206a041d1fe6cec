package loop

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/centerfire/internal/loop/config"
	"github.com/tomz197/centerfire/internal/object"
)

// recorder collects reported results.
type recorder struct {
	results []Result
}

func (r *recorder) GameOver(res Result) {
	r.results = append(r.results, res)
}

// constRand always returns the same sample.
type constRand float64

func (r constRand) Float64() float64 { return float64(r) }

func newTestState(t *testing.T, rep Reporter) *State {
	t.Helper()
	s := config.Default()
	return NewState(s, object.NewRand(1), rep)
}

// screenAt returns a pointer aimed at the world point (x, y).
func screenAt(s *State, x, y float64) Pointer {
	sx, sy := s.Arena.WorldToScreen(x, y)
	return Pointer{X: sx, Y: sy, OK: true}
}

func TestNewStateStartsPlaying(t *testing.T) {
	s := newTestState(t, nil)
	if s.Phase != PhasePlaying {
		t.Fatalf("Phase = %v, want playing", s.Phase)
	}
	if s.Score != 0 || len(s.Asteroids) != 0 {
		t.Fatalf("score=%d asteroids=%d, want empty session", s.Score, len(s.Asteroids))
	}
	if s.Spawner.Timer.Remaining != config.SpawnPeriod {
		t.Fatalf("spawn countdown = %v, want %v", s.Spawner.Timer.Remaining, config.SpawnPeriod)
	}
}

func TestSpawnAndInwardTravel(t *testing.T) {
	s := newTestState(t, nil)

	s.Step(Frame{Delta: time.Second})
	if len(s.Asteroids) != 1 {
		t.Fatalf("asteroids after 1s = %d, want 1", len(s.Asteroids))
	}
	a := s.Asteroids[0]
	sx, sy := a.X+s.Arena.Width/2, a.Y+s.Arena.Height/2
	inBand := func(v, dim float64) bool {
		return v <= s.Arena.Margin || v >= dim-s.Arena.Margin
	}
	if !inBand(sx, s.Arena.Width) || !inBand(sy, s.Arena.Height) {
		t.Fatalf("spawned at (%v,%v), outside the margin band", a.X, a.Y)
	}
	if a.Speed < config.AsteroidMinSpeed || a.Speed >= config.AsteroidMaxSpeed {
		t.Fatalf("speed %v outside [%v, %v)", a.Speed, config.AsteroidMinSpeed, config.AsteroidMaxSpeed)
	}

	prev := a.DistanceToOrigin()
	for i := 1; i <= 20; i++ {
		s.Step(Frame{Delta: 100 * time.Millisecond})
		d := a.DistanceToOrigin()
		if d >= prev {
			t.Fatalf("tick %d: distance %v did not decrease from %v", i, d, prev)
		}
		prev = d

		// One spawn per full second of travel: ticks 10 and 20.
		want := 1 + i/10
		if i < 10 && len(s.Asteroids) != 1 {
			t.Fatalf("tick %d: second spawn before a full period, asteroids = %d", i, len(s.Asteroids))
		}
		if len(s.Asteroids) != want {
			t.Fatalf("tick %d: asteroids = %d, want %d", i, len(s.Asteroids), want)
		}
	}
	if s.Phase != PhasePlaying {
		t.Fatalf("game ended unexpectedly")
	}
}

func TestSpawnedAsteroidSkipsFirstMotion(t *testing.T) {
	s := NewState(config.Default(), constRand(0.25), nil)
	s.Step(Frame{Delta: time.Second})

	if len(s.Asteroids) != 1 {
		t.Fatalf("asteroids = %d, want 1", len(s.Asteroids))
	}
	a := s.Asteroids[0]
	if a.X != -375 || a.Y != -275 {
		t.Fatalf("asteroid at (%v,%v), want sampled point (-375,-275)", a.X, a.Y)
	}
	if a.Speed != 62.5 {
		t.Fatalf("speed = %v, want 62.5", a.Speed)
	}

	s.Step(Frame{Delta: 100 * time.Millisecond})
	if a.X == -375 && a.Y == -275 {
		t.Fatal("asteroid did not move on the following frame")
	}
}

func TestLargeTimeJumpSpawnsOnce(t *testing.T) {
	s := newTestState(t, nil)
	s.Step(Frame{Delta: 10 * time.Second})
	if len(s.Asteroids) != 1 {
		t.Fatalf("asteroids = %d, want 1", len(s.Asteroids))
	}
}

func TestNonPositiveDeltaIsNoOpTick(t *testing.T) {
	s := newTestState(t, nil)
	s.AddAsteroid(object.NewAsteroid(99, 200, 0, 80, 50))

	s.Step(Frame{Delta: 0})
	s.Step(Frame{Delta: -time.Second})

	if a := s.Asteroids[0]; a.X != 200 || a.Y != 0 {
		t.Fatalf("asteroid moved to (%v,%v)", a.X, a.Y)
	}
	if s.Spawner.Timer.Remaining != config.SpawnPeriod {
		t.Fatalf("spawn countdown advanced to %v", s.Spawner.Timer.Remaining)
	}
	if s.Elapsed != 0 {
		t.Fatalf("Elapsed = %v, want 0", s.Elapsed)
	}
}

func TestZeroDeltaStillAimsFiresAndChecksLoss(t *testing.T) {
	rep := &recorder{}
	s := newTestState(t, rep)
	s.AddAsteroid(object.NewAsteroid(1, 200, 0, 80, 50))

	s.Step(Frame{Delta: 0, Pointer: screenAt(s, 200, 0), Fire: true})
	if s.Score != 1 || len(s.Asteroids) != 0 {
		t.Fatalf("score=%d asteroids=%d, want 1 and 0", s.Score, len(s.Asteroids))
	}

	s.AddAsteroid(object.NewAsteroid(2, 0, 10, 80, 50))
	s.Step(Frame{Delta: 0})
	if !s.GameOver() || len(rep.results) != 1 {
		t.Fatalf("phase=%v reports=%d, want game over with one report", s.Phase, len(rep.results))
	}
}

func TestAimRotatesPlayer(t *testing.T) {
	s := newTestState(t, nil)

	// Screen (600, 300) is world (200, 0): straight right.
	s.Step(Frame{Pointer: Pointer{X: 600, Y: 300, OK: true}})
	if math.Abs(s.Player.Angle-math.Pi/2) > 1e-9 {
		t.Fatalf("Angle = %v, want pi/2", s.Player.Angle)
	}
	x, y, ok := s.Aim()
	if !ok || x != 200 || y != 0 {
		t.Fatalf("Aim() = (%v,%v,%v), want (200,0,true)", x, y, ok)
	}

	s.Step(Frame{})
	if math.Abs(s.Player.Angle-math.Pi/2) > 1e-9 {
		t.Fatalf("Angle changed without a pointer: %v", s.Player.Angle)
	}
	if _, _, ok := s.Aim(); ok {
		t.Fatal("Aim() ok without a pointer")
	}
}

func TestFireHitTest(t *testing.T) {
	tests := []struct {
		name      string
		pointer   func(s *State) Pointer
		wantScore int
		wantLeft  int
	}{
		{
			name:      "exact position",
			pointer:   func(s *State) Pointer { return screenAt(s, 100, 100) },
			wantScore: 1,
			wantLeft:  0,
		},
		{
			name:      "just inside radius",
			pointer:   func(s *State) Pointer { return screenAt(s, 149.9, 100) },
			wantScore: 1,
			wantLeft:  0,
		},
		{
			name:      "on the radius",
			pointer:   func(s *State) Pointer { return screenAt(s, 150, 100) },
			wantScore: 0,
			wantLeft:  1,
		},
		{
			name:      "far away",
			pointer:   func(s *State) Pointer { return screenAt(s, -200, -200) },
			wantScore: 0,
			wantLeft:  1,
		},
		{
			name: "pointer unavailable",
			pointer: func(s *State) Pointer {
				p := screenAt(s, 100, 100)
				p.OK = false
				return p
			},
			wantScore: 0,
			wantLeft:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestState(t, nil)
			s.AddAsteroid(object.NewAsteroid(1, 100, 100, 60, 50))

			s.Step(Frame{Pointer: tt.pointer(s), Fire: true})
			if s.Score != tt.wantScore {
				t.Errorf("score = %d, want %d", s.Score, tt.wantScore)
			}
			if len(s.Asteroids) != tt.wantLeft {
				t.Errorf("asteroids left = %d, want %d", len(s.Asteroids), tt.wantLeft)
			}
		})
	}
}

func TestFireWithoutEdgeDoesNothing(t *testing.T) {
	s := newTestState(t, nil)
	s.AddAsteroid(object.NewAsteroid(1, 100, 100, 60, 50))

	s.Step(Frame{Pointer: screenAt(s, 100, 100)})
	if s.Score != 0 || len(s.Asteroids) != 1 {
		t.Fatalf("hover destroyed an asteroid: score=%d left=%d", s.Score, len(s.Asteroids))
	}
}

func TestFireCountsEveryHit(t *testing.T) {
	s := newTestState(t, nil)
	s.AddAsteroid(object.NewAsteroid(1, 200, 100, 60, 50))
	s.AddAsteroid(object.NewAsteroid(2, 220, 120, 60, 50))
	s.AddAsteroid(object.NewAsteroid(3, 180, 80, 60, 50))
	s.AddAsteroid(object.NewAsteroid(4, -300, -200, 60, 50))
	s.Score = 5

	s.Step(Frame{Pointer: screenAt(s, 200, 100), Fire: true})

	if s.Score != 8 {
		t.Fatalf("score = %d, want 8", s.Score)
	}
	if len(s.Asteroids) != 1 || s.Asteroids[0].ID != 4 {
		t.Fatalf("survivors = %v, want only asteroid 4", ids(s.Asteroids))
	}

	if hits := s.Fire(200, 100); hits != 0 {
		t.Fatalf("second shot hit %d", hits)
	}
	if s.Score != 8 {
		t.Fatalf("score changed on a miss: %d", s.Score)
	}
}

func TestLossAfterApproach(t *testing.T) {
	rec := &recorder{}
	s := newTestState(t, rec)
	a := object.NewAsteroid(1, 0, 60, 50, 50)
	s.AddAsteroid(a)
	s.Score = 3

	// 60 -> 55 -> 50: not yet strictly inside the radius.
	for i := 0; i < 2; i++ {
		s.Step(Frame{Delta: 100 * time.Millisecond})
		if s.Phase != PhasePlaying {
			t.Fatalf("step %d: game over at distance %v", i, a.DistanceToOrigin())
		}
	}

	s.Step(Frame{Delta: 100 * time.Millisecond})
	if s.Phase != PhaseGameOver {
		t.Fatalf("Phase = %v at distance %v, want game over", s.Phase, a.DistanceToOrigin())
	}
	if len(rec.results) != 1 {
		t.Fatalf("reports = %d, want 1", len(rec.results))
	}
	if got := rec.results[0].Score; got != 3 {
		t.Fatalf("reported score = %d, want 3", got)
	}
	if got := rec.results[0].Elapsed; got != 300*time.Millisecond {
		t.Fatalf("reported elapsed = %v, want 300ms", got)
	}
}

func TestLossReportedOnceForSimultaneousCrossings(t *testing.T) {
	rec := &recorder{}
	s := newTestState(t, rec)
	s.AddAsteroid(object.NewAsteroid(1, 0, 10, 50, 50))
	s.AddAsteroid(object.NewAsteroid(2, 10, 0, 50, 50))
	s.AddAsteroid(object.NewAsteroid(3, -20, -20, 50, 50))

	s.Step(Frame{})
	s.Step(Frame{Delta: time.Second})

	if s.Phase != PhaseGameOver {
		t.Fatalf("Phase = %v, want game over", s.Phase)
	}
	if len(rec.results) != 1 {
		t.Fatalf("reports = %d, want 1", len(rec.results))
	}
	if rec.results[0].Asteroids != 3 {
		t.Fatalf("reported asteroids = %d, want 3", rec.results[0].Asteroids)
	}
}

func TestGameOverFreezesState(t *testing.T) {
	rec := &recorder{}
	s := newTestState(t, rec)
	s.AddAsteroid(object.NewAsteroid(1, 0, 40, 50, 50))
	s.AddAsteroid(object.NewAsteroid(2, 300, 200, 50, 50))
	s.Step(Frame{})
	if !s.GameOver() {
		t.Fatal("expected game over")
	}

	frames, score, angle := s.Frames, s.Score, s.Player.Angle
	positions := make([][2]float64, len(s.Asteroids))
	for i, a := range s.Asteroids {
		positions[i] = [2]float64{a.X, a.Y}
	}

	for i := 0; i < 50; i++ {
		s.Step(Frame{
			Delta:   time.Second,
			Pointer: screenAt(s, 300, 200),
			Fire:    true,
		})
	}

	if s.Frames != frames || s.Score != score || s.Player.Angle != angle {
		t.Fatalf("state changed after game over: frames=%d score=%d angle=%v", s.Frames, s.Score, s.Player.Angle)
	}
	if len(s.Asteroids) != len(positions) {
		t.Fatalf("asteroid count changed: %d -> %d", len(positions), len(s.Asteroids))
	}
	for i, a := range s.Asteroids {
		if a.X != positions[i][0] || a.Y != positions[i][1] {
			t.Fatalf("asteroid %d moved after game over", a.ID)
		}
	}
	if len(rec.results) != 1 {
		t.Fatalf("reports = %d, want 1", len(rec.results))
	}
}

func TestScoreNeverDecreases(t *testing.T) {
	s := newTestState(t, nil)
	prev := 0
	for i := 0; i < 300 && !s.GameOver(); i++ {
		f := Frame{Delta: 50 * time.Millisecond}
		if len(s.Asteroids) > 0 && i%7 == 0 {
			a := s.Asteroids[0]
			f.Pointer = screenAt(s, a.X, a.Y)
			f.Fire = true
		}
		s.Step(f)
		if s.Score < prev {
			t.Fatalf("frame %d: score dropped from %d to %d", i, prev, s.Score)
		}
		prev = s.Score
	}
	if prev == 0 {
		t.Fatal("expected at least one hit")
	}
}

func TestPhaseString(t *testing.T) {
	if PhasePlaying.String() != "playing" || PhaseGameOver.String() != "game over" {
		t.Fatalf("unexpected phase names %q %q", PhasePlaying, PhaseGameOver)
	}
}

func TestLogReporter(t *testing.T) {
	var buf bytes.Buffer
	rep := NewLogReporter(log.New(&buf))
	rep.GameOver(Result{Score: 7, Elapsed: 12 * time.Second, Asteroids: 2})

	out := buf.String()
	for _, want := range []string{"Game over", "score=7", "asteroids=2"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output %q missing %q", out, want)
		}
	}
}

func TestReporterFunc(t *testing.T) {
	var got Result
	s := newTestState(t, ReporterFunc(func(r Result) { got = r }))
	s.AddAsteroid(object.NewAsteroid(1, 0, 1, 50, 50))
	s.Score = 9
	s.Step(Frame{})
	if got.Score != 9 {
		t.Fatalf("reported score = %d, want 9", got.Score)
	}
}

func ids(as []*object.Asteroid) []uint64 {
	out := make([]uint64, len(as))
	for i, a := range as {
		out[i] = a.ID
	}
	return out
}

func TestPointerAt(t *testing.T) {
	arena := object.Arena{Width: 800, Height: 600, Margin: 50}
	tests := []struct {
		sx, sy float64
		want   bool
	}{
		{400, 300, true},
		{0, 0, true},
		{799, 599, true},
		{800, 300, false},
		{-1, 300, false},
		{400, 600, false},
	}
	for _, tt := range tests {
		p := PointerAt(arena, tt.sx, tt.sy)
		if p.OK != tt.want || p.X != tt.sx || p.Y != tt.sy {
			t.Errorf("PointerAt(%v, %v) = %+v, want OK=%v", tt.sx, tt.sy, p, tt.want)
		}
	}
}
