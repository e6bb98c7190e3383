// Package ledger records wallet events and summarizes a run.
package ledger

import (
	"sync"
	"time"

	"coinhunt/internal/core"
)

// Ledger aggregates events from tasks. Every reported event is kept:
// Report blocks when the buffer is full instead of dropping, so the
// summary can be checked for conservation.
type Ledger struct {
	events    []core.Event
	ch        chan core.Event
	done      chan struct{}
	mu        sync.Mutex
	clock     core.Clock
	startTime time.Time
	endTime   time.Time
	initial   int
	capacity  int
}

// NewLedger creates a Ledger for a wallet that started with initial coins
// out of capacity, and starts its collection goroutine.
func NewLedger(initial, capacity int) *Ledger {
	return NewLedgerWithClock(initial, capacity, core.RealClock{})
}

// NewLedgerWithClock creates a Ledger with a custom clock (for testing).
func NewLedgerWithClock(initial, capacity int, clock core.Clock) *Ledger {
	l := &Ledger{
		events:    make([]core.Event, 0),
		ch:        make(chan core.Event, 1000),
		done:      make(chan struct{}),
		clock:     clock,
		startTime: clock.Now(),
		initial:   initial,
		capacity:  capacity,
	}
	go l.collect()
	return l
}

func (l *Ledger) collect() {
	for event := range l.ch {
		l.mu.Lock()
		l.events = append(l.events, event)
		l.mu.Unlock()
	}
	close(l.done)
}

// Report sends an event to the ledger. Thread-safe; must not be called after Close.
func (l *Ledger) Report(event core.Event) {
	l.ch <- event
}

// Close stops accepting events and waits until every buffered event is recorded.
func (l *Ledger) Close() {
	l.mu.Lock()
	l.endTime = l.clock.Now()
	l.mu.Unlock()
	close(l.ch)
	<-l.done
}

// Events returns a copy of collected events.
func (l *Ledger) Events() []core.Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	result := make([]core.Event, len(l.events))
	copy(result, l.events)
	return result
}

// Duration returns the run duration.
// If the ledger is closed, returns the duration from start to end.
// If still running, returns the duration from start to now.
func (l *Ledger) Duration() time.Duration {
	l.mu.Lock()
	end := l.endTime
	l.mu.Unlock()
	if !end.IsZero() {
		return end.Sub(l.startTime)
	}
	return l.clock.Since(l.startTime)
}

// Compute summarizes the events recorded so far against the wallet's
// current count.
func (l *Ledger) Compute(finalCount int) *Summary {
	return ComputeSummary(l.Events(), l.Duration(), l.initial, l.capacity, finalCount)
}
