package provider

import (
	"fmt"
	"strings"

	"github.com/polygon-io/client-go/rest/models"
)

// Interval is the bar size of a price history request.
type Interval string

const (
	IntervalOneMinute      Interval = "1m"
	IntervalTwoMinutes     Interval = "2m"
	IntervalFiveMinutes    Interval = "5m"
	IntervalFifteenMinutes Interval = "15m"
	IntervalThirtyMinutes  Interval = "30m"
	IntervalOneHour        Interval = "1h"
	IntervalOneDay         Interval = "1d"
	IntervalFiveDays       Interval = "5d"
	IntervalOneWeek        Interval = "1wk"
	IntervalOneMonth       Interval = "1mo"
	IntervalThreeMonths    Interval = "3mo"
)

// Intervals lists every supported interval.
func Intervals() []Interval {
	return []Interval{
		IntervalOneMinute,
		IntervalTwoMinutes,
		IntervalFiveMinutes,
		IntervalFifteenMinutes,
		IntervalThirtyMinutes,
		IntervalOneHour,
		IntervalOneDay,
		IntervalFiveDays,
		IntervalOneWeek,
		IntervalOneMonth,
		IntervalThreeMonths,
	}
}

// ParseInterval accepts the canonical spelling plus a few common aliases.
func ParseInterval(s string) (Interval, error) {
	normalized := strings.TrimSpace(s)
	switch normalized {
	case "60m":
		normalized = string(IntervalOneHour)
	case "1w":
		normalized = string(IntervalOneWeek)
	case "1M":
		normalized = string(IntervalOneMonth)
	case "3M":
		normalized = string(IntervalThreeMonths)
	}

	for _, interval := range Intervals() {
		if string(interval) == normalized {
			return interval, nil
		}
	}

	return "", fmt.Errorf("unsupported interval %q", s)
}

// Intraday reports whether bars of this interval carry a time of day.
func (i Interval) Intraday() bool {
	switch i {
	case IntervalOneMinute, IntervalTwoMinutes, IntervalFiveMinutes, IntervalFifteenMinutes,
		IntervalThirtyMinutes, IntervalOneHour:
		return true
	default:
		return false
	}
}

// Multiplier is the number of Timespan units per bar.
func (i Interval) Multiplier() int {
	switch i {
	case IntervalTwoMinutes:
		return 2
	case IntervalFiveMinutes, IntervalFiveDays:
		return 5
	case IntervalFifteenMinutes:
		return 15
	case IntervalThirtyMinutes:
		return 30
	case IntervalThreeMonths:
		return 3
	default:
		return 1
	}
}

// Timespan maps the interval onto the Polygon aggregate timespan.
func (i Interval) Timespan() models.Timespan {
	switch i {
	case IntervalOneMinute, IntervalTwoMinutes, IntervalFiveMinutes, IntervalFifteenMinutes, IntervalThirtyMinutes:
		return models.Minute
	case IntervalOneHour:
		return models.Hour
	case IntervalOneDay, IntervalFiveDays:
		return models.Day
	case IntervalOneWeek:
		return models.Week
	case IntervalOneMonth, IntervalThreeMonths:
		return models.Month
	default:
		return models.Day
	}
}

// Frequency is the reporting frequency of financial statements.
type Frequency string

const (
	FrequencyAnnual    Frequency = "annual"
	FrequencyQuarterly Frequency = "quarterly"
)

// ParseFrequency accepts "annual", "quarterly" and the legacy "annually".
func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "annual", "annually", "yearly":
		return FrequencyAnnual, nil
	case "quarterly", "quarter":
		return FrequencyQuarterly, nil
	default:
		return "", fmt.Errorf("frequency must be either 'annual' or 'quarterly', got %q", s)
	}
}

// Label is the value written to the Frequency column.
func (f Frequency) Label() string {
	switch f {
	case FrequencyQuarterly:
		return "Quarterly"
	default:
		return "Annual"
	}
}
