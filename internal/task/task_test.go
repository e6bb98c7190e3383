package task

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"coinhunt/internal/core"
	"coinhunt/internal/ratelimit"
	"coinhunt/internal/wallet"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// recorder collects events and printed lines for assertions.
type recorder struct {
	mu     sync.Mutex
	events []core.Event
	lines  []string
}

func (r *recorder) Report(e core.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) Printf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

func (r *recorder) kinds() []core.Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make([]core.Kind, 0, len(r.events))
	for _, e := range r.events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

func (r *recorder) printed() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}

func TestHunter_CollectsUntilEmpty(t *testing.T) {
	w, err := wallet.New(10, 3)
	require.NoError(t, err)
	rec := &recorder{}

	h := NewHunter(2, w, WithSleepRange(0, 0), WithMaxIterations(5), WithPrinter(rec))
	res := h.Run(context.Background(), core.NewRunFlag(context.Background()), rec)

	assert.Equal(t, 2, res.ID)
	assert.Equal(t, "hunter", res.Name)
	assert.Equal(t, 3, res.Succeeded)
	assert.Equal(t, 5, res.Attempts)
	assert.Equal(t, 0, w.Count())
	assert.Equal(t, []core.Kind{core.KindTake, core.KindTake, core.KindTake, core.KindMiss, core.KindMiss}, rec.kinds())

	lines := rec.printed()
	require.NotEmpty(t, lines)
	assert.Equal(t, "[Hunter 2] started", lines[0])
	assert.Contains(t, lines, "[Hunter 2] collected a coin, coins left: 0")
	assert.Equal(t, "[Hunter 2] collected 3 coins", lines[len(lines)-1])
}

func TestHunter_StopsOnFlag(t *testing.T) {
	w, err := wallet.NewFull(10)
	require.NoError(t, err)
	flag := core.NewRunFlag(context.Background())

	h := NewHunter(0, w, WithSleepRange(time.Second, 2*time.Second))
	done := make(chan core.Result, 1)
	go func() { done <- h.Run(context.Background(), flag, core.NullReporter) }()

	time.Sleep(20 * time.Millisecond)
	flag.Stop()

	select {
	case res := <-done:
		assert.Equal(t, 1, res.Attempts)
		assert.Equal(t, 1, res.Succeeded)
	case <-time.After(time.Second):
		t.Fatal("hunter did not stop after the flag went down")
	}
}

func TestHunter_FlagAlreadyDown(t *testing.T) {
	w, err := wallet.NewFull(10)
	require.NoError(t, err)
	flag := core.NewRunFlag(context.Background())
	flag.Stop()
	rec := &recorder{}

	res := NewHunter(4, w, WithPrinter(rec)).Run(context.Background(), flag, rec)

	assert.Zero(t, res.Attempts)
	assert.Zero(t, res.Succeeded)
	assert.Equal(t, 10, w.Count())
	assert.Equal(t, []string{"[Hunter 4] started", "[Hunter 4] collected 0 coins"}, rec.printed())
}

func TestHunter_PauseWithinRange(t *testing.T) {
	w, err := wallet.NewFull(1)
	require.NoError(t, err)
	h := NewHunter(0, w, WithSleepRange(100*time.Millisecond, 500*time.Millisecond), WithSeed(42))

	for i := 0; i < 1000; i++ {
		d := h.pause()
		require.GreaterOrEqual(t, d, 100*time.Millisecond)
		require.Less(t, d, 500*time.Millisecond)
	}
}

func TestHunter_SeedIsReproducible(t *testing.T) {
	w, err := wallet.NewFull(1)
	require.NoError(t, err)
	a := NewHunter(0, w, WithSeed(7))
	b := NewHunter(1, w, WithSeed(7))

	for i := 0; i < 10; i++ {
		assert.Equal(t, a.pause(), b.pause())
	}
}

func TestHunter_EventTimestampsUseClock(t *testing.T) {
	w, err := wallet.NewFull(1)
	require.NoError(t, err)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rec := &recorder{}

	h := NewHunter(0, w, WithClock(core.NewFakeClock(start)), WithSleepRange(0, 0), WithMaxIterations(1))
	h.Run(context.Background(), core.NewRunFlag(context.Background()), rec)

	require.Len(t, rec.events, 1)
	assert.True(t, rec.events[0].Timestamp.Equal(start))
}

func TestReplenisher_AddsUntilFull(t *testing.T) {
	w, err := wallet.New(2, 0)
	require.NoError(t, err)
	rec := &recorder{}

	r := NewReplenisher(w, ratelimit.NewPacer(5*time.Millisecond), WithMaxIterations(3), WithPrinter(rec))
	res := r.Run(context.Background(), core.NewRunFlag(context.Background()), rec)

	assert.Equal(t, core.ReplenisherID, res.ID)
	assert.Equal(t, 2, res.Succeeded)
	assert.Equal(t, 3, res.Attempts)
	assert.Equal(t, 2, w.Count())
	assert.Equal(t, []core.Kind{core.KindAdd, core.KindAdd, core.KindFull}, rec.kinds())
	assert.Contains(t, rec.printed(), "[Replenisher] added a coin, coins now: 2")
}

func TestReplenisher_WaitsBeforeFirstAdd(t *testing.T) {
	w, err := wallet.New(5, 0)
	require.NoError(t, err)

	start := time.Now()
	NewReplenisher(w, ratelimit.NewPacer(30*time.Millisecond), WithMaxIterations(1)).
		Run(context.Background(), core.NewRunFlag(context.Background()), core.NullReporter)

	assert.GreaterOrEqual(t, time.Since(start), 25*time.Millisecond)
	assert.Equal(t, 1, w.Count())
}

func TestReplenisher_ShutdownInterruptsWait(t *testing.T) {
	w, err := wallet.New(5, 0)
	require.NoError(t, err)
	flag := core.NewRunFlag(context.Background())

	done := make(chan core.Result, 1)
	go func() {
		done <- NewReplenisher(w, ratelimit.NewPacer(10*time.Second)).Run(context.Background(), flag, core.NullReporter)
	}()

	time.Sleep(20 * time.Millisecond)
	flag.Stop()

	select {
	case res := <-done:
		assert.Zero(t, res.Attempts, "an interrupted wait must not add a coin")
		assert.Zero(t, w.Count())
	case <-time.After(time.Second):
		t.Fatal("replenisher did not stop after the flag went down")
	}
}

func TestTasks_ConcurrentConservation(t *testing.T) {
	const capacity = 10
	w, err := wallet.NewFull(capacity)
	require.NoError(t, err)
	flag := core.NewRunFlag(context.Background())
	rec := &recorder{}

	var wg sync.WaitGroup
	results := make([]core.Result, 6)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			results[id] = NewHunter(id, w, WithSleepRange(time.Millisecond, 3*time.Millisecond)).Run(context.Background(), flag, rec)
		}(i)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		results[5] = NewReplenisher(w, ratelimit.NewPacer(2*time.Millisecond)).Run(context.Background(), flag, rec)
	}()

	time.Sleep(100 * time.Millisecond)
	flag.Stop()
	wg.Wait()

	var takes int
	for _, r := range results[:5] {
		assert.GreaterOrEqual(t, r.Succeeded, 0)
		takes += r.Succeeded
	}
	adds := results[5].Succeeded
	final := w.Count()

	assert.GreaterOrEqual(t, final, 0)
	assert.LessOrEqual(t, final, capacity)
	assert.Equal(t, capacity-final, takes-adds)
	for _, e := range rec.events {
		assert.GreaterOrEqual(t, e.Count, 0)
		assert.LessOrEqual(t, e.Count, capacity)
	}
}
