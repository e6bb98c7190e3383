// Package task implements the long-lived participants of the simulation:
// one Replenisher that adds coins and N Hunters that collect them.
package task

import (
	"log/slog"
	"math/rand"
	"time"

	"coinhunt/internal/core"
)

const (
	// DefaultSleepMin and DefaultSleepMax bound a hunter's pause between attempts.
	DefaultSleepMin = 100 * time.Millisecond
	DefaultSleepMax = 500 * time.Millisecond
)

type settings struct {
	logger   *slog.Logger
	printer  core.Printer
	clock    core.Clock
	runner   core.RunnerConfig
	sleepMin time.Duration
	sleepMax time.Duration
	seed     int64
}

func defaultSettings() settings {
	return settings{
		logger:   core.NopLogger(),
		printer:  core.NullPrinter,
		clock:    core.RealClock{},
		sleepMin: DefaultSleepMin,
		sleepMax: DefaultSleepMax,
		seed:     rand.Int63(),
	}
}

// Option configures a Replenisher or a Hunter. Options that do not apply
// to a task are ignored.
type Option func(*settings)

func WithLogger(l *slog.Logger) Option {
	return func(s *settings) { s.logger = l }
}

func WithPrinter(p core.Printer) Option {
	return func(s *settings) { s.printer = p }
}

func WithClock(c core.Clock) Option {
	return func(s *settings) { s.clock = c }
}

// WithMaxIterations caps the number of loop iterations; 0 means unlimited.
func WithMaxIterations(n int) Option {
	return func(s *settings) { s.runner.MaxIterations = n }
}

// WithSleepRange sets the uniform range a hunter draws its pause from.
func WithSleepRange(min, max time.Duration) Option {
	return func(s *settings) {
		s.sleepMin = min
		s.sleepMax = max
	}
}

// WithSeed makes a hunter's pauses reproducible.
func WithSeed(seed int64) Option {
	return func(s *settings) { s.seed = seed }
}

func applyOptions(opts []Option) settings {
	s := defaultSettings()
	for _, o := range opts {
		o(&s)
	}
	return s
}
