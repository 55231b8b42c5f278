package mocks

import (
	"math"
	"math/rand"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-ingest/pkg/ingest/provider"
)

// DataGenerator generates price series for tests.
type DataGenerator struct {
	rng *rand.Rand
}

// NewDataGenerator creates a new DataGenerator with the given seed.
// Use a fixed seed for reproducible results in tests.
func NewDataGenerator(seed int64) *DataGenerator {
	return &DataGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// GeneratorConfig configures how a series is generated.
type GeneratorConfig struct {
	// Ticker is the exchange-qualified ticker used in the column headers
	Ticker string
	// StartTime is the timestamp of the first bar
	StartTime time.Time
	// Interval is the bar interval; intraday intervals step by minutes, others by days
	Interval provider.Interval
	// Count is the number of bars
	Count int
	// InitialPrice is the first open
	InitialPrice float64
	// Volatility controls price movement (0.01 = 1% per bar)
	Volatility float64
	// VolumeBase is the average volume per bar
	VolumeBase float64
	// AdjClose adds an Adj Close column equal to Close
	AdjClose bool
	// MissingEvery blanks the Low of every n-th bar when positive
	MissingEvery int
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Ticker:       "TEST.NS",
		StartTime:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Interval:     provider.IntervalOneDay,
		Count:        5,
		InitialPrice: 1500.0,
		Volatility:   0.01,
		VolumeBase:   1000000,
		AdjClose:     true,
		MissingEvery: 0,
	}
}

// Generate creates a price series following a geometric Brownian motion.
func (g *DataGenerator) Generate(config GeneratorConfig) *provider.PriceSeries {
	labels := []string{"Open", "High", "Low", "Close"}
	if config.AdjClose {
		labels = append(labels, "Adj Close")
	}

	labels = append(labels, "Volume")

	series := &provider.PriceSeries{
		Intraday:   config.Interval.Intraday(),
		Timestamps: make([]time.Time, 0, config.Count),
		Columns:    make([]provider.ColumnHeader, len(labels)),
		Values:     make([][]optional.Option[float64], len(labels)),
	}

	for i, label := range labels {
		series.Columns[i] = provider.ColumnHeader{label, config.Ticker}
		series.Values[i] = make([]optional.Option[float64], 0, config.Count)
	}

	price := config.InitialPrice
	current := config.StartTime

	for i := 0; i < config.Count; i++ {
		u1 := g.rng.Float64()
		u2 := g.rng.Float64()
		z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)

		open := price

		close := open * (1 + config.Volatility*z)
		if close <= 0 {
			close = open * 0.99
		}

		high := math.Max(open, close) + math.Abs(g.rng.Float64()*config.Volatility*open*0.5)
		low := math.Min(open, close) - math.Abs(g.rng.Float64()*config.Volatility*open*0.5)
		volume := math.Round(config.VolumeBase * (0.7 + g.rng.Float64()*0.6))

		bar := map[string]optional.Option[float64]{
			"Open":      optional.Some(roundToDecimals(open, 2)),
			"High":      optional.Some(roundToDecimals(high, 2)),
			"Low":       optional.Some(roundToDecimals(low, 2)),
			"Close":     optional.Some(roundToDecimals(close, 2)),
			"Adj Close": optional.Some(roundToDecimals(close, 2)),
			"Volume":    optional.Some(volume),
		}

		if config.MissingEvery > 0 && (i+1)%config.MissingEvery == 0 {
			bar["Low"] = optional.None[float64]()
		}

		series.Timestamps = append(series.Timestamps, current)
		for c, label := range labels {
			series.Values[c] = append(series.Values[c], bar[label])
		}

		price = close
		current = next(current, config.Interval)
	}

	return series
}

func next(t time.Time, interval provider.Interval) time.Time {
	if interval.Intraday() {
		return t.Add(time.Duration(interval.Multiplier()) * minutesPer(interval))
	}

	switch interval {
	case provider.IntervalOneWeek:
		return t.AddDate(0, 0, 7)
	case provider.IntervalOneMonth:
		return t.AddDate(0, 1, 0)
	case provider.IntervalThreeMonths:
		return t.AddDate(0, 3, 0)
	case provider.IntervalFiveDays:
		return t.AddDate(0, 0, 5)
	default:
		return t.AddDate(0, 0, 1)
	}
}

func minutesPer(interval provider.Interval) time.Duration {
	if interval == provider.IntervalOneHour {
		return time.Hour
	}

	return time.Minute
}

// roundToDecimals rounds a float64 to the specified number of decimal places.
func roundToDecimals(val float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(val*pow) / pow
}
