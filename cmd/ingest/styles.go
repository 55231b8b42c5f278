package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/rxtech-lab/argo-ingest/pkg/ingest/provider"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	hintStyle  = lipgloss.NewStyle().Faint(true)
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))

	gainStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	lossStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// lastPrice renders the last traded price with its direction against the previous close.
func lastPrice(q *provider.Quote) string {
	price := fmt.Sprintf("%.2f", q.LastPrice)

	switch {
	case q.PreviousClose == 0 || q.LastPrice == q.PreviousClose:
		return price
	case q.LastPrice > q.PreviousClose:
		return gainStyle.Render(price + " ▲")
	default:
		return lossStyle.Render(price + " ▼")
	}
}
