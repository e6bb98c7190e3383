// Package progress prints line-oriented status messages to the console.
package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"coinhunt/internal/ledger"
)

// Counter reports the wallet's current count.
type Counter interface {
	Count() int
}

// Progress serializes status lines from every task onto one writer and can
// print a periodic status line.
type Progress struct {
	startTime time.Time
	ledger    *ledger.Ledger
	wallet    Counter
	ticker    *time.Ticker
	stopCh    chan struct{}
	doneCh    chan struct{}
	started   atomic.Bool
	stopped   atomic.Bool
	quiet     bool
	output    io.Writer
	mu        sync.Mutex
}

func NewProgress(l *ledger.Ledger, w Counter, quiet bool) *Progress {
	return &Progress{
		ledger: l,
		wallet: w,
		quiet:  quiet,
		output: os.Stdout,
	}
}

func (p *Progress) SetOutput(w io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.output = w
}

// Start prints a status line every interval until Stop. A non-positive
// interval disables the status line.
func (p *Progress) Start(interval time.Duration) {
	if p.quiet || interval <= 0 || p.started.Swap(true) {
		return
	}
	p.startTime = time.Now()
	p.stopCh = make(chan struct{})
	p.doneCh = make(chan struct{})
	p.ticker = time.NewTicker(interval)
	go p.run()
}

func (p *Progress) run() {
	defer close(p.doneCh)
	for {
		select {
		case <-p.stopCh:
			return
		case <-p.ticker.C:
			p.printStatus()
		}
	}
}

func (p *Progress) printStatus() {
	coins := p.wallet.Count()
	s := p.ledger.Compute(coins)
	elapsed := time.Since(p.startTime).Round(time.Second)
	mins := int(elapsed.Minutes())
	secs := int(elapsed.Seconds()) % 60
	p.Printf("[Status %02d:%02d] coins=%d/%d taken=%d added=%d",
		mins, secs, coins, s.Capacity, s.Takes, s.Adds)
}

// Stop halts the status line and waits for its goroutine to exit.
func (p *Progress) Stop() {
	if !p.started.Load() || p.stopped.Swap(true) {
		return
	}
	p.ticker.Stop()
	close(p.stopCh)
	<-p.doneCh
}

func (p *Progress) Print(message string) {
	if p.quiet {
		return
	}
	p.mu.Lock()
	fmt.Fprintln(p.output, message)
	p.mu.Unlock()
}

func (p *Progress) Printf(format string, args ...any) {
	if p.quiet {
		return
	}
	p.mu.Lock()
	fmt.Fprintf(p.output, format+"\n", args...)
	p.mu.Unlock()
}
