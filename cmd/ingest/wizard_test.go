package main

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/rxtech-lab/argo-ingest/pkg/ingest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
}

func niftyLookup(_ context.Context, index string) ([]string, error) {
	if index == "NIFTY 50" {
		return []string{"TCS", "INFY"}, nil
	}

	return nil, errors.New("index not found")
}

// press feeds msg to m and returns the updated model.
func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()

	for _, msg := range msgs {
		next, _ := m.Update(msg)

		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}

	return m
}

func typed(text string) tea.Msg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func TestNewModel(t *testing.T) {
	m := NewModel(nil, fixedNow)

	assert.Equal(t, StateIndexInput, m.state)
	assert.Equal(t, "10-06-2024", m.startInput.Placeholder)
	assert.Equal(t, "15-06-2024", m.endInput.Placeholder)

	_, ok := m.Result()
	assert.False(t, ok)
}

func TestParseYears(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
		wantErr  bool
	}{
		{name: "plain", input: "5", expected: 5},
		{name: "padded", input: " 3 ", expected: 3},
		{name: "zero", input: "0", wantErr: true},
		{name: "negative", input: "-2", wantErr: true},
		{name: "words", input: "five", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			years, err := ParseYears(tt.input)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, years)
		})
	}
}

func TestOverviewFlow(t *testing.T) {
	m := NewModel(nil, fixedNow)

	m = press(t, m, typed("nifty 50"), enter)
	assert.Equal(t, StateDatasetSelect, m.state)
	assert.Equal(t, "NIFTY 50", m.run.Index)

	// overview skips straight to the save mode
	m = press(t, m, enter)
	assert.Equal(t, StateModeSelect, m.state)

	m = press(t, m, down, enter)
	assert.Equal(t, StateConfirm, m.state)
	assert.NoError(t, m.err)

	m = press(t, m, enter)

	run, ok := m.Result()
	assert.True(t, ok)
	assert.Equal(t, ingest.RunConfig{Index: "NIFTY 50", Dataset: ingest.DatasetOverview, Mode: ingest.OutputCombined}, run)
}

func TestDetailedFlow(t *testing.T) {
	m := NewModel(nil, fixedNow)

	m = press(t, m, typed("NIFTY 50"), enter, down, enter)
	assert.Equal(t, StateFrequencySelect, m.state)

	m = press(t, m, down, enter)
	assert.Equal(t, StateYearsInput, m.state)
	assert.Equal(t, "quarterly", m.run.Frequency)

	m = press(t, m, typed("zero"), enter)
	assert.Equal(t, StateYearsInput, m.state)
	assert.Error(t, m.err)

	m.yearsInput.Reset()
	m = press(t, m, typed("3"), enter)
	assert.Equal(t, StateModeSelect, m.state)
	assert.Equal(t, 3, m.run.Years)

	m = press(t, m, enter, enter)

	run, ok := m.Result()
	assert.True(t, ok)
	assert.Equal(t, ingest.DatasetDetailed, run.Dataset)
	assert.Equal(t, ingest.OutputIndividual, run.Mode)
}

func TestTechnicalFlowDefaultsDates(t *testing.T) {
	m := NewModel(nil, fixedNow)

	m = press(t, m, typed("NIFTY 50"), enter, down, down, enter)
	assert.Equal(t, StateStartInput, m.state)

	m = press(t, m, enter, enter)
	assert.Equal(t, StateModeSelect, m.state)

	m = press(t, m, enter)
	assert.Equal(t, StateConfirm, m.state)
	require.NoError(t, m.err)
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), m.params.Start)
	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), m.params.End)
}

func TestTechnicalFlowRejectsReversedRange(t *testing.T) {
	m := NewModel(nil, fixedNow)

	m = press(t, m, typed("NIFTY 50"), enter, down, down, enter)
	m = press(t, m, typed("31-12-2023"), enter, typed("01-01-2023"), enter, enter)
	assert.Equal(t, StateConfirm, m.state)
	assert.Error(t, m.err)

	// enter does nothing until the answers are fixed
	m = press(t, m, enter)
	_, ok := m.Result()
	assert.False(t, ok)

	m = press(t, m, esc)
	assert.Equal(t, StateModeSelect, m.state)
	assert.NoError(t, m.err)
}

func TestEmptyIndexIsRejected(t *testing.T) {
	m := press(t, NewModel(nil, fixedNow), enter)

	assert.Equal(t, StateIndexInput, m.state)
	assert.Error(t, m.err)
}

func TestBackNavigation(t *testing.T) {
	m := NewModel(nil, fixedNow)

	m = press(t, m, typed("NIFTY 50"), enter, down, enter, enter)
	assert.Equal(t, StateYearsInput, m.state)

	m = press(t, m, esc)
	assert.Equal(t, StateFrequencySelect, m.state)

	m = press(t, m, esc)
	assert.Equal(t, StateDatasetSelect, m.state)

	m = press(t, m, esc)
	assert.Equal(t, StateIndexInput, m.state)
	assert.True(t, m.indexInput.Focused())
}

func TestStaleLookupIsIgnored(t *testing.T) {
	m := NewModel(niftyLookup, fixedNow)
	m = press(t, m, typed("NIFTY 50"), enter)

	m = press(t, m, IndexResolvedMsg{Index: "NIFTY BANK", Symbols: []string{"HDFCBANK"}})
	assert.Nil(t, m.resolved)

	m = press(t, m, IndexResolvedMsg{Index: "NIFTY 50", Symbols: []string{"TCS", "INFY"}})
	require.NotNil(t, m.resolved)
	assert.Len(t, m.resolved.Symbols, 2)
}

func TestWizardRendersPrompts(t *testing.T) {
	m := NewModel(niftyLookup, fixedNow)
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 24))

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("Enter the NSE index name"))
	}, teatest.WithDuration(2*time.Second))

	tm.Type("NIFTY 50")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("Type of data")) && bytes.Contains(bts, []byte("technical"))
	}, teatest.WithDuration(2*time.Second))

	// overview, then individual
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("Confirm run")) && bytes.Contains(bts, []byte("Symbols"))
	}, teatest.WithDuration(2*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	final, ok := tm.FinalModel(t, teatest.WithFinalTimeout(2*time.Second)).(Model)
	require.True(t, ok)

	run, confirmed := final.Result()
	assert.True(t, confirmed)
	assert.Equal(t, "NIFTY 50", run.Index)
	assert.Equal(t, ingest.DatasetOverview, run.Dataset)
	assert.Equal(t, ingest.OutputIndividual, run.Mode)
}

func TestWizardQuit(t *testing.T) {
	tm := teatest.NewTestModel(t, NewModel(nil, fixedNow), teatest.WithInitialTermSize(80, 24))

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("Enter the NSE index name"))
	}, teatest.WithDuration(2*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})

	final, ok := tm.FinalModel(t, teatest.WithFinalTimeout(2*time.Second)).(Model)
	require.True(t, ok)

	_, confirmed := final.Result()
	assert.False(t, confirmed)
}
