package ingest

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SkipReason explains why a symbol produced no record.
type SkipReason string

const (
	SkipInvalid SkipReason = "invalid"
	SkipNoData  SkipReason = "no data"
	SkipFault   SkipReason = "fault"
)

// Outcome is the overall result of a run.
type Outcome string

const (
	OutcomeCompleted        Outcome = "completed"
	OutcomeNothingToCombine Outcome = "nothing to combine"
	OutcomeIndexNotFound    Outcome = "index not found"
	OutcomeCancelled        Outcome = "cancelled"
	OutcomeFailed           Outcome = "failed"
)

// SkippedSymbol is one symbol the run dropped.
type SkippedSymbol struct {
	Symbol string
	Reason SkipReason
	Err    error
}

// RunReport summarizes one run of the collector.
type RunReport struct {
	RunID        string
	Index        string
	Dataset      Dataset
	Mode         OutputMode
	Date         time.Time
	Requested    []string
	Processed    []string
	Skipped      []SkippedSymbol
	Files        []string
	CombinedPath string
	Rows         int
	Outcome      Outcome
	// Err is set when the run ended without output for a reason other than an abort.
	Err          error
	StartedAt    time.Time
	FinishedAt   time.Time
}

func newRunReport(params RunParams, now time.Time) *RunReport {
	return &RunReport{
		RunID:        uuid.NewString(),
		Index:        params.Index,
		Dataset:      params.Dataset,
		Mode:         params.Mode,
		Date:         now,
		Requested:    []string{},
		Processed:    []string{},
		Skipped:      []SkippedSymbol{},
		Files:        []string{},
		CombinedPath: "",
		Rows:         0,
		Outcome:      OutcomeCompleted,
		Err:          nil,
		StartedAt:    now,
		FinishedAt:   time.Time{},
	}
}

func (r *RunReport) skip(symbol string, reason SkipReason, err error) {
	r.Skipped = append(r.Skipped, SkippedSymbol{Symbol: symbol, Reason: reason, Err: err})
}

// SkippedBy returns the symbols skipped for reason, in run order.
func (r *RunReport) SkippedBy(reason SkipReason) []string {
	out := []string{}

	for _, s := range r.Skipped {
		if s.Reason == reason {
			out = append(out, s.Symbol)
		}
	}

	return out
}

// Summary renders a short human readable description of the run.
func (r *RunReport) Summary() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s for %s: %s\n", r.Dataset, r.Mode, r.Index, r.Outcome)
	fmt.Fprintf(&b, "  requested: %d, processed: %d, skipped: %d\n", len(r.Requested), len(r.Processed), len(r.Skipped))

	for _, reason := range []SkipReason{SkipInvalid, SkipNoData, SkipFault} {
		if symbols := r.SkippedBy(reason); len(symbols) > 0 {
			fmt.Fprintf(&b, "  %s: %s\n", reason, strings.Join(symbols, ", "))
		}
	}

	if r.Err != nil {
		fmt.Fprintf(&b, "  error: %v\n", r.Err)
	}

	if r.CombinedPath != "" {
		fmt.Fprintf(&b, "  combined file: %s (%d rows)\n", r.CombinedPath, r.Rows)
	} else if len(r.Files) > 0 {
		fmt.Fprintf(&b, "  files written: %d\n", len(r.Files))
	}

	return b.String()
}
