package ledger

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// FormatText writes the summary in human-readable format.
func FormatText(w io.Writer, s *Summary) {
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Coin Hunt - Results")
	fmt.Fprintln(w, "===================")
	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "Duration:    %v\n", s.Duration.Round(time.Millisecond))
	fmt.Fprintf(w, "Wallet:      %d / %d (started at %d)\n", s.FinalCount, s.Capacity, s.Initial)
	fmt.Fprintf(w, "Added:       %d (%d skipped while full)\n", s.Adds, s.FullSkips)
	fmt.Fprintf(w, "Taken:       %d (%d empty-handed attempts)\n", s.Takes, s.Misses)
	if s.Panics > 0 {
		fmt.Fprintf(w, "Panics:      %d\n", s.Panics)
	}
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "By Hunter:")
	for _, h := range s.Hunters {
		fmt.Fprintf(w, "  Hunter %-3d %5d coins  %5d attempts  hit rate %s\n",
			h.ID, h.Collected, h.Attempts, formatRate(h.Collected, h.Attempts))
	}
	fmt.Fprintln(w, "")
	if s.Conserved {
		fmt.Fprintln(w, "Conservation: ✓ taken - added = started - final")
	} else {
		fmt.Fprintf(w, "Conservation: ✗ taken - added = %d, started - final = %d\n",
			s.Takes-s.Adds, s.Initial-s.FinalCount)
	}
}

// FormatJSON writes the summary in JSON format.
func FormatJSON(w io.Writer, s *Summary) {
	output := struct {
		Duration   string        `json:"duration"`
		Capacity   int           `json:"capacity"`
		Initial    int           `json:"initial"`
		FinalCount int           `json:"finalCount"`
		Adds       int           `json:"adds"`
		FullSkips  int           `json:"fullSkips"`
		Takes      int           `json:"takes"`
		Misses     int           `json:"misses"`
		Panics     int           `json:"panics"`
		Conserved  bool          `json:"conserved"`
		Hunters    []HunterStats `json:"hunters"`
	}{
		Duration:   s.Duration.Round(time.Millisecond).String(),
		Capacity:   s.Capacity,
		Initial:    s.Initial,
		FinalCount: s.FinalCount,
		Adds:       s.Adds,
		FullSkips:  s.FullSkips,
		Takes:      s.Takes,
		Misses:     s.Misses,
		Panics:     s.Panics,
		Conserved:  s.Conserved,
		Hunters:    s.Hunters,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	_ = encoder.Encode(output) // stdout errors are unrecoverable
}

func formatRate(hits, attempts int) string {
	if attempts == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", float64(hits)/float64(attempts)*100)
}
