// Package coordinator runs the simulation lifecycle: spawn every task,
// wait for the deadline or an interrupt, lower the run flag, join.
package coordinator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"coinhunt/internal/core"
)

// ErrAlreadyStarted is returned when Run is called more than once.
var ErrAlreadyStarted = errors.New("controller already started")

// State is a stage of the controller lifecycle.
type State int32

const (
	Initializing State = iota
	Running
	ShuttingDown
	Terminated
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Running:
		return "running"
	case ShuttingDown:
		return "shutting down"
	case Terminated:
		return "terminated"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

// Reason tells why the controller left the Running state.
type Reason string

const (
	ReasonTimeout     Reason = "timeout"
	ReasonInterrupted Reason = "interrupted"
	ReasonTasksDone   Reason = "tasks finished"
)

// Outcome is what Run hands back once every task has been joined.
type Outcome struct {
	Reason      Reason
	Hunters     []core.Result // in identity order
	Replenisher core.Result
}

type config struct {
	logger  *slog.Logger
	printer core.Printer
}

func WithLogger(l *slog.Logger) func(*config) {
	return func(c *config) { c.logger = l }
}

func WithPrinter(p core.Printer) func(*config) {
	return func(c *config) { c.printer = p }
}

// Controller owns the run flag and the lifecycle of every task.
type Controller struct {
	reporter core.Reporter
	logger   *slog.Logger
	printer  core.Printer
	state    atomic.Int32
	started  atomic.Bool
}

func NewController(reporter core.Reporter, opts ...func(*config)) *Controller {
	c := config{
		logger:  core.NopLogger(),
		printer: core.NullPrinter,
	}
	for _, o := range opts {
		o(&c)
	}
	return &Controller{
		reporter: reporter,
		logger:   c.logger,
		printer:  c.printer,
	}
}

// State returns the current lifecycle stage.
func (c *Controller) State() State {
	return State(c.state.Load())
}

func (c *Controller) setState(ctx context.Context, s State) {
	c.state.Store(int32(s))
	c.logger.DebugContext(ctx, "controller state changed", slog.String("state", s.String()))
}

// Run spawns the replenisher and the hunters, then idles until duration
// elapses or ctx is canceled. Canceling ctx is how an interrupt reaches the
// controller. Hunters are joined in identity order, the replenisher last.
func (c *Controller) Run(ctx context.Context, duration time.Duration, replenisher core.Task, hunters []core.Task) (*Outcome, error) {
	if c.started.Swap(true) {
		return nil, ErrAlreadyStarted
	}
	c.setState(ctx, Initializing)

	flag := core.NewRunFlag(ctx)
	out := &Outcome{Hunters: make([]core.Result, len(hunters))}

	var g errgroup.Group
	c.printer.Printf("[Main] starting the replenisher and %d hunters", len(hunters))

	replDone := make(chan struct{})
	g.Go(func() error {
		defer close(replDone)
		out.Replenisher = c.runTask(ctx, core.ReplenisherID, replenisher, flag)
		return nil
	})

	hunterDone := make([]chan struct{}, len(hunters))
	for i, h := range hunters {
		done := make(chan struct{})
		hunterDone[i] = done
		g.Go(func() error {
			defer close(done)
			out.Hunters[i] = c.runTask(ctx, i, h, flag)
			return nil
		})
		c.printer.Printf("[Main] hunter %d launched", i)
	}

	allDone := make(chan struct{})
	go func() {
		_ = g.Wait()
		close(allDone)
	}()

	c.setState(ctx, Running)
	timer := time.NewTimer(duration)
	defer timer.Stop()

	select {
	case <-timer.C:
		out.Reason = ReasonTimeout
	case <-ctx.Done():
		out.Reason = ReasonInterrupted
		c.printer.Printf("[Signal] interrupt received, stopping the simulation")
	case <-allDone:
		out.Reason = ReasonTasksDone
	}

	c.setState(ctx, ShuttingDown)
	flag.Stop()
	c.printer.Printf("[Main] stopping the simulation and waiting for all tasks")

	for i, done := range hunterDone {
		<-done
		c.printer.Printf("[Main] hunter %d finished", i)
	}
	<-replDone
	c.printer.Printf("[Main] replenisher finished")
	<-allDone

	c.setState(ctx, Terminated)
	c.logger.InfoContext(ctx, "simulation finished", slog.String("reason", string(out.Reason)))
	return out, nil
}

// runTask runs one task to completion. A panic is recovered and reported so
// that shutdown never waits on a dead task.
func (c *Controller) runTask(ctx context.Context, id int, t core.Task, flag *core.RunFlag) (res core.Result) {
	res.ID = id
	defer func() {
		if r := recover(); r != nil {
			c.reporter.Report(core.Event{
				Actor:     id,
				Kind:      core.KindPanic,
				Timestamp: time.Now(),
				Error:     fmt.Sprintf("panic: %v", r),
			})
			c.logger.ErrorContext(ctx, "task panicked", slog.Int("task_id", id), slog.Any("panic", r))
		}
	}()
	return t.Run(ctx, flag, c.reporter)
}
