package task

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"coinhunt/internal/core"
	"coinhunt/internal/wallet"
)

// Hunter repeatedly tries to take one coin, then pauses for a random
// interval. Its tally is owned by the hunter and never shared.
type Hunter struct {
	id     int
	wallet *wallet.Wallet
	rng    *rand.Rand
	s      settings

	collected int
	attempts  int
}

// NewHunter creates the hunter with the given identity.
func NewHunter(id int, w *wallet.Wallet, opts ...Option) *Hunter {
	s := applyOptions(opts)
	return &Hunter{
		id:     id,
		wallet: w,
		rng:    rand.New(rand.NewSource(s.seed)),
		s:      s,
	}
}

// ID returns the hunter's identity.
func (h *Hunter) ID() int {
	return h.id
}

// Run loops until flag is stopped and returns the hunter's final tally.
func (h *Hunter) Run(ctx context.Context, flag *core.RunFlag, rep core.Reporter) core.Result {
	logger := h.s.logger.With(slog.Int("hunter_id", h.id))
	h.s.printer.Printf("[Hunter %d] started", h.id)

	runner := core.NewRunner(flag, h.s.runner, func(context.Context) { h.step(ctx, flag, rep) })
	_ = runner.Loop(ctx)

	h.s.printer.Printf("[Hunter %d] collected %d coins", h.id, h.collected)
	logger.DebugContext(ctx, "hunter stopped",
		slog.Int("collected", h.collected), slog.Int("attempts", h.attempts))
	return core.Result{
		ID:        h.id,
		Name:      "hunter",
		Succeeded: h.collected,
		Attempts:  h.attempts,
	}
}

func (h *Hunter) step(ctx context.Context, flag *core.RunFlag, rep core.Reporter) {
	h.attempts++
	count, ok := h.wallet.TryTake()
	if ok {
		h.collected++
		rep.Report(core.Event{Actor: h.id, Kind: core.KindTake, Count: count, Timestamp: h.s.clock.Now()})
		h.s.printer.Printf("[Hunter %d] collected a coin, coins left: %d", h.id, count)
	} else {
		rep.Report(core.Event{Actor: h.id, Kind: core.KindMiss, Count: count, Timestamp: h.s.clock.Now()})
	}

	core.Sleep(flag.Context(), h.pause())
}

// pause draws uniformly from [sleepMin, sleepMax).
func (h *Hunter) pause() time.Duration {
	span := h.s.sleepMax - h.s.sleepMin
	if span <= 0 {
		return h.s.sleepMin
	}
	return h.s.sleepMin + time.Duration(h.rng.Int63n(int64(span)))
}
