package core

import (
	"context"
	"errors"
)

var (
	// ErrMaxIterationsReached indicates the runner hit its iteration limit.
	ErrMaxIterationsReached = errors.New("max iterations reached")
	// ErrStopped indicates the run flag was observed false at the top of an iteration.
	ErrStopped = errors.New("run flag stopped")
)

// RunnerConfig controls execution behavior.
type RunnerConfig struct {
	MaxIterations int // 0 = unlimited
}

// Runner drives the polling loop of a single task: check the flag, run one
// step, repeat. A Runner is NOT safe for concurrent use; each task owns its own.
type Runner struct {
	step      func(ctx context.Context)
	flag      *RunFlag
	config    RunnerConfig
	iteration int
}

// NewRunner creates a Runner that executes step while flag is running.
func NewRunner(flag *RunFlag, config RunnerConfig, step func(ctx context.Context)) *Runner {
	return &Runner{
		step:   step,
		flag:   flag,
		config: config,
	}
}

// RunIteration executes one step.
// Returns nil on success, ErrStopped once the flag is down, or
// ErrMaxIterationsReached when the limit is hit.
func (r *Runner) RunIteration(ctx context.Context) error {
	if !r.flag.Running() {
		return ErrStopped
	}
	if r.config.MaxIterations > 0 && r.iteration >= r.config.MaxIterations {
		return ErrMaxIterationsReached
	}
	r.step(ctx)
	r.iteration++
	return nil
}

// Loop runs iterations until the flag stops or the limit is reached and
// returns the reason it stopped.
func (r *Runner) Loop(ctx context.Context) error {
	for {
		if err := r.RunIteration(ctx); err != nil {
			return err
		}
	}
}

// Iteration returns the number of completed steps.
func (r *Runner) Iteration() int {
	return r.iteration
}
