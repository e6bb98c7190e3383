// Command coinhunt simulates hunters collecting coins from a shared,
// capacity-bounded wallet that a single replenisher refills.
//
// Usage:
//
//	coinhunt [flags]
//
// With no flags it runs the compiled-in scenario: a wallet of 10 coins,
// one coin added every 2s, 5 hunters, for 5 minutes or until Ctrl+C.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coinhunt/internal/config"
	"coinhunt/internal/coordinator"
	"coinhunt/internal/core"
	"coinhunt/internal/ledger"
	"coinhunt/internal/progress"
	"coinhunt/internal/ratelimit"
	"coinhunt/internal/task"
	"coinhunt/internal/wallet"
)

const (
	ExitSuccess = 0
	ExitError   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("coinhunt", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to YAML config file (optional)")
	capacity := fs.Int("capacity", 0, "wallet capacity")
	collectors := fs.Int("collectors", 0, "number of hunters")
	duration := fs.Duration("duration", 0, "simulation duration")
	replenish := fs.Duration("replenish", 0, "interval between coin additions")
	status := fs.Duration("status", 0, "print a status line at this interval (0 = off)")
	maxAttempts := fs.Int("max-attempts", 0, "max attempts per hunter (0 = unlimited)")
	output := fs.String("output", "text", "summary format: text, json")
	quiet := fs.Bool("quiet", false, "suppress per-event output")
	verbose := fs.Bool("verbose", false, "enable debug logging on stderr")
	if err := fs.Parse(args); err != nil {
		return ExitError
	}

	if *output != "text" && *output != "json" {
		fmt.Fprintf(stderr, "error: --output must be 'text' or 'json', got %q\n", *output)
		return ExitError
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.LoadConfig(*configPath); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return ExitError
		}
	}

	// Flags override config file values only when given explicitly.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "capacity":
			cfg.Capacity = *capacity
		case "collectors":
			cfg.Collectors = *collectors
		case "duration":
			cfg.Duration = *duration
		case "replenish":
			cfg.ReplenishInterval = *replenish
		case "status":
			cfg.StatusInterval = *status
		case "max-attempts":
			cfg.MaxAttempts = *maxAttempts
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return ExitError
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	w, err := wallet.New(cfg.Capacity, cfg.InitialCount())
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return ExitError
	}
	l := ledger.NewLedger(w.Count(), w.Capacity())
	prog := progress.NewProgress(l, w, *quiet)
	prog.SetOutput(stdout)

	repl := task.NewReplenisher(w, ratelimit.NewPacer(cfg.ReplenishInterval),
		task.WithLogger(logger), task.WithPrinter(prog))
	hunters := make([]core.Task, cfg.Collectors)
	for i := range hunters {
		hunters[i] = task.NewHunter(i, w,
			task.WithLogger(logger),
			task.WithPrinter(prog),
			task.WithSleepRange(cfg.SleepMin, cfg.SleepMax),
			task.WithMaxIterations(cfg.MaxAttempts))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	// Later signals stay queued on sigCh and are ignored; shutdown is
	// already under way.
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	prog.Printf("[Main] coin hunt: wallet %d/%d, %d hunters, one coin every %v, running for %v",
		w.Count(), w.Capacity(), cfg.Collectors, cfg.ReplenishInterval, cfg.Duration)

	ctrl := coordinator.NewController(l, coordinator.WithLogger(logger), coordinator.WithPrinter(prog))
	prog.Start(cfg.StatusInterval)
	start := time.Now()
	out, err := ctrl.Run(ctx, cfg.Duration, repl, hunters)
	prog.Stop()
	l.Close()
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return ExitError
	}
	logger.Debug("run complete", slog.String("reason", string(out.Reason)), slog.Duration("elapsed", time.Since(start)))

	summary := l.Compute(w.Count())
	if *output == "json" {
		ledger.FormatJSON(stdout, summary)
	} else {
		ledger.FormatText(stdout, summary)
	}
	if !summary.Conserved {
		logger.Error("coin count not conserved",
			slog.Int("takes", summary.Takes), slog.Int("adds", summary.Adds), slog.Int("final", summary.FinalCount))
	}

	prog.Print("[Main] program finished")
	return ExitSuccess
}
