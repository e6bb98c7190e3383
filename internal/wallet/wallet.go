// Package wallet implements the shared, capacity-bounded coin counter.
//
// All reads and writes of the count happen under a single mutex. The
// critical section is the check-and-mutate pair only; callers format and
// print the returned count after the lock has been released.
package wallet

import (
	"fmt"
	"sync"
)

// Wallet is a counter bounded to [0, capacity]. The zero value is not usable;
// create one with New.
type Wallet struct {
	mu       sync.Mutex
	count    int
	capacity int
}

// New returns a wallet holding initial coins out of capacity.
func New(capacity, initial int) (*Wallet, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("wallet capacity must be >= 1, got %d", capacity)
	}
	if initial < 0 || initial > capacity {
		return nil, fmt.Errorf("initial count %d outside [0, %d]", initial, capacity)
	}
	return &Wallet{count: initial, capacity: capacity}, nil
}

// NewFull returns a wallet filled to capacity.
func NewFull(capacity int) (*Wallet, error) {
	return New(capacity, capacity)
}

// TryTake removes one coin if any is left. It returns the count after the
// call and whether a coin was taken. An empty wallet is left unchanged.
func (w *Wallet) TryTake() (int, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.count == 0 {
		return 0, false
	}
	w.count--
	return w.count, true
}

// TryAdd adds one coin if the wallet is below capacity. It returns the count
// after the call and whether a coin was added. A full wallet is left unchanged.
func (w *Wallet) TryAdd() (int, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.count >= w.capacity {
		return w.count, false
	}
	w.count++
	return w.count, true
}

// Count returns a snapshot of the current count.
func (w *Wallet) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

// Capacity is fixed for the wallet's lifetime.
func (w *Wallet) Capacity() int {
	return w.capacity
}
