package loop

import (
	"time"

	"github.com/charmbracelet/log"
)

// Result is the final state of a session, reported once on loss.
type Result struct {
	Score     int
	Elapsed   time.Duration // Play time up to and including the loss frame
	Asteroids int           // Asteroids on the field when the game ended
}

// Reporter receives the result of a finished session.
type Reporter interface {
	GameOver(r Result)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(Result)

// GameOver calls f(r).
func (f ReporterFunc) GameOver(r Result) {
	f(r)
}

// LogReporter logs results through a charmbracelet logger.
type LogReporter struct {
	Logger *log.Logger
}

// NewLogReporter returns a reporter writing to logger, or to the default
// logger when logger is nil.
func NewLogReporter(logger *log.Logger) *LogReporter {
	if logger == nil {
		logger = log.Default()
	}
	return &LogReporter{Logger: logger}
}

// GameOver logs the final score.
func (r *LogReporter) GameOver(res Result) {
	r.Logger.Info("Game over",
		"score", res.Score,
		"elapsed", res.Elapsed.Round(time.Millisecond),
		"asteroids", res.Asteroids,
	)
}
