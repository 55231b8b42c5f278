package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/rxtech-lab/argo-ingest/pkg/ingest"
)

const (
	listWidth  = 60
	listHeight = 14
	dateLayout = "02-01-2006"
)

// listItem implements list.Item for the wizard's choice lists.
type listItem struct {
	name        string
	description string
}

func (i listItem) Title() string       { return i.name }
func (i listItem) Description() string { return i.description }
func (i listItem) FilterValue() string { return i.name }

func newChoiceList(title string, items []list.Item) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true

	l := list.New(items, delegate, listWidth, listHeight)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return l
}

// NewDatasetList creates the list for the kind of data to download.
func NewDatasetList() list.Model {
	return newChoiceList("Type of data", []list.Item{
		listItem{name: string(ingest.DatasetOverview), description: "Overview fundamentals: ratios, margins, market cap"},
		listItem{name: string(ingest.DatasetDetailed), description: "Detailed fundamentals: income, balance sheet, cash flow"},
		listItem{name: string(ingest.DatasetTechnical), description: "Technical data: OHLCV price history"},
	})
}

// NewFrequencyList creates the list for statement frequency.
func NewFrequencyList() list.Model {
	return newChoiceList("Frequency", []list.Item{
		listItem{name: "annual", description: "Fiscal year statements"},
		listItem{name: "quarterly", description: "Quarterly statements"},
	})
}

// NewModeList creates the list for the save mode.
func NewModeList() list.Model {
	return newChoiceList("Save mode", []list.Item{
		listItem{name: string(ingest.OutputIndividual), description: "Separate CSV file per symbol"},
		listItem{name: string(ingest.OutputCombined), description: "One CSV for the whole index"},
	})
}

func newTextInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 40
	ti.Prompt = "> "

	return ti
}

// NewIndexInput creates the focused index name prompt.
func NewIndexInput() textinput.Model {
	ti := newTextInput("NIFTY 50", 64)
	ti.Focus()

	return ti
}

// NewYearsInput creates the prompt for the number of years of statements.
func NewYearsInput() textinput.Model {
	return newTextInput("5", 3)
}

// NewDateInput creates a date prompt whose placeholder shows the default.
func NewDateInput(def time.Time) textinput.Model {
	return newTextInput(def.Format(dateLayout), 32)
}

// View implements tea.Model.
func (m Model) View() string {
	var s strings.Builder

	switch m.state {
	case StateIndexInput:
		s.WriteString(titleStyle.Render("Argo Ingest - Index"))
		s.WriteString("\n\n")
		s.WriteString("Enter the NSE index name (e.g., NIFTY 50):\n\n")
		s.WriteString(m.indexInput.View())
		s.WriteString("\n\n")
		s.WriteString(hintStyle.Render("Press Enter to confirm, Ctrl+C to quit"))

	case StateDatasetSelect:
		s.WriteString(m.header())
		s.WriteString(m.datasetList.View())
		s.WriteString("\n")
		s.WriteString(hintStyle.Render("Press Enter to select, Esc to go back"))

	case StateFrequencySelect:
		s.WriteString(m.header())
		s.WriteString(m.frequencyList.View())
		s.WriteString("\n")
		s.WriteString(hintStyle.Render("Press Enter to select, Esc to go back"))

	case StateYearsInput:
		s.WriteString(m.header())
		s.WriteString("Number of years of data to fetch:\n\n")
		s.WriteString(m.yearsInput.View())
		s.WriteString("\n\n")
		s.WriteString(hintStyle.Render("Press Enter to confirm, Esc to go back"))

	case StateStartInput:
		s.WriteString(m.header())
		s.WriteString(fmt.Sprintf("Enter start date (e.g., 01-01-2023) [Default: %s]:\n\n", m.startInput.Placeholder))
		s.WriteString(m.startInput.View())
		s.WriteString("\n\n")
		s.WriteString(hintStyle.Render("Leave empty for the default, Esc to go back"))

	case StateEndInput:
		s.WriteString(m.header())
		s.WriteString(fmt.Sprintf("Enter end date (e.g., 31-12-2023) [Default: %s]:\n\n", m.endInput.Placeholder))
		s.WriteString(m.endInput.View())
		s.WriteString("\n\n")
		s.WriteString(hintStyle.Render("Leave empty for the default, Esc to go back"))

	case StateModeSelect:
		s.WriteString(m.header())
		s.WriteString(m.modeList.View())
		s.WriteString("\n")
		s.WriteString(hintStyle.Render("Press Enter to select, Esc to go back"))

	case StateConfirm:
		s.WriteString(titleStyle.Render("Confirm run"))
		s.WriteString("\n\n")
		s.WriteString(m.summary())
		s.WriteString("\n")
		if m.err != nil {
			s.WriteString(hintStyle.Render("Esc to go back and fix the answers, q to quit"))
		} else {
			s.WriteString(hintStyle.Render("Press Enter to start, Esc to go back, q to quit"))
		}
	}

	if m.err != nil && m.state != StateConfirm {
		s.WriteString("\n\n")
		s.WriteString(errorStyle.Render(m.err.Error()))
	}

	return s.String()
}

func (m Model) header() string {
	return titleStyle.Render("Argo Ingest - "+valueStyle.Render(m.run.Index)) + "\n\n"
}

func (m Model) summary() string {
	var s strings.Builder

	row := func(label, value string) {
		s.WriteString(fmt.Sprintf("  %-10s %s\n", label, valueStyle.Render(value)))
	}

	row("Index", m.run.Index)
	row("Data", string(m.run.Dataset))

	if m.err == nil {
		switch m.params.Dataset {
		case ingest.DatasetDetailed:
			row("Frequency", string(m.params.Frequency))
			row("Years", fmt.Sprintf("%d", m.params.Years))
		case ingest.DatasetTechnical:
			row("Range", fmt.Sprintf("%s to %s", m.params.Start.Format(dateLayout), m.params.End.Format(dateLayout)))
			row("Interval", string(m.params.Interval))
		}
	}

	row("Mode", string(m.run.Mode))

	switch {
	case m.resolved == nil && m.lookup != nil:
		row("Symbols", "resolving...")
	case m.resolved != nil && m.resolved.Err != nil:
		row("Symbols", "unknown ("+m.resolved.Err.Error()+")")
	case m.resolved != nil:
		row("Symbols", fmt.Sprintf("%d", len(m.resolved.Symbols)))
	}

	if m.err != nil {
		s.WriteString("\n")
		s.WriteString(errorStyle.Render(m.err.Error()))
		s.WriteString("\n")
	}

	return s.String()
}
