package task

import (
	"context"
	"log/slog"

	"coinhunt/internal/core"
	"coinhunt/internal/ratelimit"
	"coinhunt/internal/wallet"
)

// Replenisher adds one coin per interval while the wallet is below capacity.
type Replenisher struct {
	wallet *wallet.Wallet
	pacer  *ratelimit.Pacer
	s      settings

	added    int
	attempts int
}

func NewReplenisher(w *wallet.Wallet, pacer *ratelimit.Pacer, opts ...Option) *Replenisher {
	return &Replenisher{
		wallet: w,
		pacer:  pacer,
		s:      applyOptions(opts),
	}
}

// Run loops until flag is stopped. Each iteration waits one interval, then
// tries to add a coin. A wait cut short by shutdown skips the add.
func (r *Replenisher) Run(ctx context.Context, flag *core.RunFlag, rep core.Reporter) core.Result {
	r.s.printer.Printf("[Replenisher] started, one coin every %v", r.pacer.Interval())

	runner := core.NewRunner(flag, r.s.runner, func(context.Context) { r.step(ctx, flag, rep) })
	_ = runner.Loop(ctx)

	r.s.logger.DebugContext(ctx, "replenisher stopped",
		slog.Int("added", r.added), slog.Int("attempts", r.attempts))
	return core.Result{
		ID:        core.ReplenisherID,
		Name:      "replenisher",
		Succeeded: r.added,
		Attempts:  r.attempts,
	}
}

func (r *Replenisher) step(ctx context.Context, flag *core.RunFlag, rep core.Reporter) {
	if err := r.pacer.Wait(flag.Context()); err != nil {
		return
	}

	r.attempts++
	count, ok := r.wallet.TryAdd()
	if !ok {
		rep.Report(core.Event{Actor: core.ReplenisherID, Kind: core.KindFull, Count: count, Timestamp: r.s.clock.Now()})
		r.s.logger.DebugContext(ctx, "wallet full, nothing added", slog.Int("coins", count))
		return
	}

	r.added++
	rep.Report(core.Event{Actor: core.ReplenisherID, Kind: core.KindAdd, Count: count, Timestamp: r.s.clock.Now()})
	r.s.printer.Printf("[Replenisher] added a coin, coins now: %d", count)
}
