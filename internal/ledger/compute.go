package ledger

import (
	"sort"
	"time"

	"coinhunt/internal/core"
)

// HunterStats is one hunter's share of the run.
type HunterStats struct {
	ID        int `json:"id"`
	Collected int `json:"collected"`
	Attempts  int `json:"attempts"`
}

// Summary is the outcome of a run.
type Summary struct {
	Duration   time.Duration
	Capacity   int
	Initial    int
	FinalCount int
	Adds       int
	FullSkips  int
	Takes      int
	Misses     int
	Panics     int
	Hunters    []HunterStats // sorted by ID
	// Conserved is true when Takes - Adds == Initial - FinalCount.
	Conserved bool
}

// ComputeSummary builds a Summary from events. Pure function, no side effects.
func ComputeSummary(events []core.Event, duration time.Duration, initial, capacity, finalCount int) *Summary {
	s := &Summary{
		Duration:   duration,
		Capacity:   capacity,
		Initial:    initial,
		FinalCount: finalCount,
		Hunters:    make([]HunterStats, 0),
	}

	byID := make(map[int]*HunterStats)
	hunter := func(id int) *HunterStats {
		h, ok := byID[id]
		if !ok {
			h = &HunterStats{ID: id}
			byID[id] = h
		}
		return h
	}

	for _, e := range events {
		switch e.Kind {
		case core.KindAdd:
			s.Adds++
		case core.KindFull:
			s.FullSkips++
		case core.KindTake:
			s.Takes++
			h := hunter(e.Actor)
			h.Collected++
			h.Attempts++
		case core.KindMiss:
			s.Misses++
			hunter(e.Actor).Attempts++
		case core.KindPanic:
			s.Panics++
		}
	}

	for _, h := range byID {
		s.Hunters = append(s.Hunters, *h)
	}
	sort.Slice(s.Hunters, func(i, j int) bool { return s.Hunters[i].ID < s.Hunters[j].ID })

	s.Conserved = s.Takes-s.Adds == initial-finalCount
	return s
}
