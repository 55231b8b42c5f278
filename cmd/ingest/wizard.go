package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rxtech-lab/argo-ingest/pkg/ingest"
)

// Wizard states, in prompt order.
const (
	StateIndexInput = iota
	StateDatasetSelect
	StateFrequencySelect
	StateYearsInput
	StateStartInput
	StateEndInput
	StateModeSelect
	StateConfirm
)

const lookupTimeout = 15 * time.Second

// ConstituentLookup resolves an index to its symbols for the confirmation screen.
type ConstituentLookup func(ctx context.Context, index string) ([]string, error)

// Model is the Bubble Tea model that prompts for one ingestion run.
type Model struct {
	state         int
	indexInput    textinput.Model
	datasetList   list.Model
	frequencyList list.Model
	yearsInput    textinput.Model
	startInput    textinput.Model
	endInput      textinput.Model
	modeList      list.Model

	run       ingest.RunConfig
	params    ingest.RunParams
	resolved  *IndexResolvedMsg
	lookup    ConstituentLookup
	now       func() time.Time
	err       error
	confirmed bool
	width     int
	height    int
}

// NewModel creates a wizard. lookup may be nil, in which case the index is not previewed.
func NewModel(lookup ConstituentLookup, now func() time.Time) Model {
	if now == nil {
		now = time.Now
	}

	today := now()

	return Model{
		state:         StateIndexInput,
		indexInput:    NewIndexInput(),
		datasetList:   NewDatasetList(),
		frequencyList: NewFrequencyList(),
		yearsInput:    NewYearsInput(),
		startInput:    NewDateInput(today.AddDate(0, 0, -ingest.DefaultLookbackDays)),
		endInput:      NewDateInput(today),
		modeList:      NewModeList(),
		lookup:        lookup,
		now:           now,
	}
}

// Result returns the run the user confirmed. ok is false when the wizard was abandoned.
func (m Model) Result() (ingest.RunConfig, bool) {
	return m.run, m.confirmed
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			return m.back()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for _, l := range []*list.Model{&m.datasetList, &m.frequencyList, &m.modeList} {
			l.SetSize(msg.Width, min(msg.Height-4, listHeight))
		}

		return m, nil

	case IndexResolvedMsg:
		// drop answers for an index the user has since changed
		if msg.Index == m.run.Index {
			m.resolved = &msg
		}

		return m, nil
	}

	switch m.state {
	case StateIndexInput:
		return m.updateIndexInput(msg)
	case StateDatasetSelect:
		return m.updateDatasetSelect(msg)
	case StateFrequencySelect:
		return m.updateFrequencySelect(msg)
	case StateYearsInput:
		return m.updateYearsInput(msg)
	case StateStartInput, StateEndInput:
		return m.updateDateInput(msg)
	case StateModeSelect:
		return m.updateModeSelect(msg)
	case StateConfirm:
		return m.updateConfirm(msg)
	}

	return m, nil
}

// enter switches to state and focuses its text input, if any.
func (m Model) enter(state int) (Model, tea.Cmd) {
	m.state = state
	m.err = nil

	inputs := map[int]*textinput.Model{
		StateIndexInput: &m.indexInput,
		StateYearsInput: &m.yearsInput,
		StateStartInput: &m.startInput,
		StateEndInput:   &m.endInput,
	}

	for s, input := range inputs {
		if s == state {
			input.Focus()
		} else {
			input.Blur()
		}
	}

	if _, ok := inputs[state]; ok {
		return m, textinput.Blink
	}

	return m, nil
}

func (m Model) back() (tea.Model, tea.Cmd) {
	switch m.state {
	case StateDatasetSelect:
		return m.enter(StateIndexInput)
	case StateFrequencySelect, StateStartInput:
		return m.enter(StateDatasetSelect)
	case StateYearsInput:
		return m.enter(StateFrequencySelect)
	case StateEndInput:
		return m.enter(StateStartInput)
	case StateModeSelect:
		switch m.run.Dataset {
		case ingest.DatasetDetailed:
			return m.enter(StateYearsInput)
		case ingest.DatasetTechnical:
			return m.enter(StateEndInput)
		default:
			return m.enter(StateDatasetSelect)
		}
	case StateConfirm:
		return m.enter(StateModeSelect)
	}

	return m, nil
}

func (m Model) updateIndexInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		index := strings.ToUpper(strings.TrimSpace(m.indexInput.Value()))
		if index == "" {
			m.err = fmt.Errorf("please enter an index name")

			return m, nil
		}

		m.run.Index = index
		m.resolved = nil
		next, cmd := m.enter(StateDatasetSelect)

		return next, tea.Batch(cmd, m.lookupCmd(index))
	}

	var cmd tea.Cmd
	m.indexInput, cmd = m.indexInput.Update(msg)

	return m, cmd
}

func (m Model) lookupCmd(index string) tea.Cmd {
	if m.lookup == nil {
		return nil
	}

	lookup := m.lookup

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
		defer cancel()

		symbols, err := lookup(ctx, index)

		return IndexResolvedMsg{Index: index, Symbols: symbols, Err: err}
	}
}

func (m Model) updateDatasetSelect(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		item, ok := m.datasetList.SelectedItem().(listItem)
		if !ok {
			return m, nil
		}

		m.run.Dataset = ingest.Dataset(item.name)
		m.run.Frequency, m.run.Years = "", 0
		m.run.StartDate, m.run.EndDate, m.run.Interval = "", "", ""

		switch m.run.Dataset {
		case ingest.DatasetDetailed:
			return m.enter(StateFrequencySelect)
		case ingest.DatasetTechnical:
			return m.enter(StateStartInput)
		default:
			return m.enter(StateModeSelect)
		}
	}

	var cmd tea.Cmd
	m.datasetList, cmd = m.datasetList.Update(msg)

	return m, cmd
}

func (m Model) updateFrequencySelect(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		if item, ok := m.frequencyList.SelectedItem().(listItem); ok {
			m.run.Frequency = item.name

			return m.enter(StateYearsInput)
		}
	}

	var cmd tea.Cmd
	m.frequencyList, cmd = m.frequencyList.Update(msg)

	return m, cmd
}

func (m Model) updateYearsInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		years, err := ParseYears(m.yearsInput.Value())
		if err != nil {
			m.err = err

			return m, nil
		}

		m.run.Years = years

		return m.enter(StateModeSelect)
	}

	var cmd tea.Cmd
	m.yearsInput, cmd = m.yearsInput.Update(msg)

	return m, cmd
}

// updateDateInput handles both date prompts; an empty answer keeps the default.
func (m Model) updateDateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	input, next := &m.startInput, StateEndInput
	if m.state == StateEndInput {
		input, next = &m.endInput, StateModeSelect
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		value := strings.TrimSpace(input.Value())
		if m.state == StateStartInput {
			m.run.StartDate = value
		} else {
			m.run.EndDate = value
		}

		return m.enter(next)
	}

	var cmd tea.Cmd
	*input, cmd = input.Update(msg)

	return m, cmd
}

func (m Model) updateModeSelect(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		item, ok := m.modeList.SelectedItem().(listItem)
		if !ok {
			return m, nil
		}

		m.run.Mode = ingest.OutputMode(item.name)

		next, cmd := m.enter(StateConfirm)
		next.params, next.err = next.run.Validate(next.now())

		return next, cmd
	}

	var cmd tea.Cmd
	m.modeList, cmd = m.modeList.Update(msg)

	return m, cmd
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "enter", "y":
		if m.err != nil {
			return m, nil
		}

		m.confirmed = true

		return m, tea.Quit
	case "n", "q":
		return m, tea.Quit
	}

	return m, nil
}

// ParseYears parses the years prompt.
func ParseYears(input string) (int, error) {
	years, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || years < 1 {
		return 0, fmt.Errorf("please enter a whole number of years of at least 1")
	}

	return years, nil
}
