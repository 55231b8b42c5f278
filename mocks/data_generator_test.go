package mocks

import (
	"testing"
	"time"

	"github.com/rxtech-lab/argo-ingest/pkg/ingest/provider"
)

func TestDataGenerator_Generate(t *testing.T) {
	gen := NewDataGenerator(42) // Fixed seed for reproducibility
	config := DefaultConfig()
	config.Count = 100

	series := gen.Generate(config)

	if len(series.Timestamps) != 100 {
		t.Fatalf("expected 100 bars, got %d", len(series.Timestamps))
	}

	if len(series.Columns) != 6 {
		t.Fatalf("expected 6 columns, got %d", len(series.Columns))
	}

	for i, header := range series.Columns {
		if header[1] != config.Ticker {
			t.Errorf("expected ticker %s in header %d, got %s", config.Ticker, i, header[1])
		}
	}

	// Verify data is in chronological order, one day apart
	for i := 1; i < len(series.Timestamps); i++ {
		if got := series.Timestamps[i].Sub(series.Timestamps[i-1]); got != 24*time.Hour {
			t.Errorf("unexpected interval at index %d: %v", i, got)
		}
	}

	// Verify High >= Low and prices are positive
	for i := range series.Timestamps {
		high := series.Values[1][i].Unwrap()
		low := series.Values[2][i].Unwrap()

		if low <= 0 || high < low {
			t.Errorf("invalid bar at index %d: H=%f L=%f", i, high, low)
		}
	}
}

func TestDataGenerator_Reproducibility(t *testing.T) {
	config := DefaultConfig()
	config.Count = 20

	a := NewDataGenerator(7).Generate(config)
	b := NewDataGenerator(7).Generate(config)

	for c := range a.Values {
		for i := range a.Values[c] {
			if a.Values[c][i].Unwrap() != b.Values[c][i].Unwrap() {
				t.Fatalf("series differ at column %d bar %d", c, i)
			}
		}
	}
}

func TestDataGenerator_MissingValues(t *testing.T) {
	config := DefaultConfig()
	config.Count = 6
	config.MissingEvery = 3

	series := NewDataGenerator(1).Generate(config)

	for i := range series.Timestamps {
		missing := series.Values[2][i].IsNone()
		if missing != ((i+1)%3 == 0) {
			t.Errorf("unexpected Low presence at bar %d: missing=%v", i, missing)
		}
	}
}

func TestDataGenerator_IntradayWithoutAdjClose(t *testing.T) {
	config := DefaultConfig()
	config.Interval = provider.IntervalFiveMinutes
	config.StartTime = time.Date(2024, 1, 2, 3, 45, 0, 0, time.UTC)
	config.AdjClose = false
	config.Count = 3

	series := NewDataGenerator(1).Generate(config)

	if !series.Intraday {
		t.Error("expected an intraday series")
	}

	if len(series.Columns) != 5 {
		t.Errorf("expected 5 columns without Adj Close, got %d", len(series.Columns))
	}

	if got := series.Timestamps[2].Sub(series.Timestamps[0]); got != 10*time.Minute {
		t.Errorf("expected 10 minutes between first and third bar, got %v", got)
	}
}
