// Package core defines the shared vocabulary of the coin hunt simulation.
package core

import (
	"context"
	"time"
)

// Kind identifies what happened to the wallet.
type Kind string

const (
	KindTake  Kind = "take"  // a hunter withdrew one coin
	KindMiss  Kind = "miss"  // a hunter found the wallet empty
	KindAdd   Kind = "add"   // the replenisher added one coin
	KindFull  Kind = "full"  // the replenisher found the wallet at capacity
	KindPanic Kind = "panic" // a task panicked and was recovered
)

// ReplenisherID labels events emitted by the replenisher. Hunters use 0..N-1.
const ReplenisherID = -1

// Event represents a single wallet operation observed by a task.
type Event struct {
	Actor     int
	Kind      Kind
	Count     int // wallet count after the operation
	Timestamp time.Time
	Error     string
}

// Result is what a task hands back once it has returned.
type Result struct {
	ID        int
	Name      string
	Succeeded int // coins taken (hunter) or added (replenisher)
	Attempts  int
}

// Task is one long-lived participant of the simulation.
// Run returns once flag is stopped or the task hits its own limit.
type Task interface {
	Run(ctx context.Context, flag *RunFlag, rep Reporter) Result
}

// Printer receives human-readable status lines.
type Printer interface {
	Printf(format string, args ...any)
}

// NullPrinter discards all status lines.
var NullPrinter Printer = nullPrinter{}

type nullPrinter struct{}

func (nullPrinter) Printf(string, ...any) {}

// Reporter is the interface tasks use to send events to the ledger.
type Reporter interface {
	Report(Event)
}

// NullReporter discards all events.
var NullReporter Reporter = nullReporter{}

type nullReporter struct{}

func (nullReporter) Report(Event) {}
