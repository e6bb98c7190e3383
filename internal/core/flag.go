package core

import (
	"context"
	"sync/atomic"
)

// RunFlag is the shared "running" flag. It is written once to request
// shutdown and read by every task at the top of each loop iteration.
//
// Stop also cancels the flag's context so that tasks parked in a sleep
// can wake up early instead of finishing the full interval.
type RunFlag struct {
	stopped atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewRunFlag returns a flag in the running state, derived from parent.
// Canceling parent does not flip the flag; only Stop does.
func NewRunFlag(parent context.Context) *RunFlag {
	ctx, cancel := context.WithCancel(context.WithoutCancel(parent))
	return &RunFlag{ctx: ctx, cancel: cancel}
}

// Running reports whether shutdown has not been requested yet.
func (f *RunFlag) Running() bool {
	return !f.stopped.Load()
}

// Stop requests shutdown. It returns true only for the call that
// actually flipped the flag.
func (f *RunFlag) Stop() bool {
	if f.stopped.Swap(true) {
		return false
	}
	f.cancel()
	return true
}

// Context is canceled once Stop has been called.
func (f *RunFlag) Context() context.Context {
	return f.ctx
}

// Done is a shorthand for Context().Done().
func (f *RunFlag) Done() <-chan struct{} {
	return f.ctx.Done()
}
