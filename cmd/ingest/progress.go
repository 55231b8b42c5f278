package main

import (
	"io"
	"sync"

	"github.com/rxtech-lab/argo-ingest/pkg/ingest"
	"github.com/schollz/progressbar/v3"
)

// symbolProgress renders collector progress as a terminal bar.
// The bar is created on the first callback, once the symbol count is known.
type symbolProgress struct {
	mu          sync.Mutex
	out         io.Writer
	description string
	bar         *progressbar.ProgressBar
}

func newSymbolProgress(out io.Writer, description string) *symbolProgress {
	return &symbolProgress{out: out, description: description}
}

// Callback returns the ingest.OnProgress hook feeding the bar.
func (p *symbolProgress) Callback() ingest.OnProgress {
	return func(current, total float64, message string) {
		p.mu.Lock()
		defer p.mu.Unlock()

		if p.bar == nil {
			p.bar = progressbar.NewOptions(int(total),
				progressbar.OptionSetWriter(p.out),
				progressbar.OptionSetDescription(p.description),
				progressbar.OptionShowCount(),
				progressbar.OptionSetPredictTime(true),
				progressbar.OptionOnCompletion(func() { _, _ = io.WriteString(p.out, "\n") }),
			)
		}

		p.bar.Describe(p.description + " " + message)
		_ = p.bar.Set(int(current))
	}
}

// Finish completes the bar if any progress was reported.
func (p *symbolProgress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.bar != nil && !p.bar.IsFinished() {
		_ = p.bar.Finish()
	}
}
