package ingest

import (
	"context"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-ingest/pkg/errors"
	"github.com/rxtech-lab/argo-ingest/pkg/ingest/normalize"
	"github.com/rxtech-lab/argo-ingest/pkg/ingest/provider"
	"github.com/rxtech-lab/argo-ingest/pkg/ingest/table"
)

// Result is the outcome of one fetch.
// A record means data; no record and no fault means the provider had nothing; a fault means it failed.
type Result struct {
	Record optional.Option[*table.Table]
	Fault  error
}

// Found returns a Result holding record, or an empty Result when record has no rows.
func Found(record *table.Table) Result {
	if record.Empty() {
		return Empty()
	}

	return Result{Record: optional.Some(record), Fault: nil}
}

// Empty returns a Result signalling that the provider had no data.
func Empty() Result {
	return Result{Record: optional.None[*table.Table](), Fault: nil}
}

// Failed returns a Result carrying fault.
func Failed(fault error) Result {
	return Result{Record: optional.None[*table.Table](), Fault: fault}
}

// Fetcher retrieves one normalized record per symbol.
type Fetcher interface {
	Fetch(ctx context.Context, symbol string) Result
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, symbol string) Result

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, symbol string) Result {
	return f(ctx, symbol)
}

// MarketFetcher builds records from a MarketDataProvider.
type MarketFetcher struct {
	provider provider.MarketDataProvider
	suffix   string
	now      func() time.Time
}

// NewMarketFetcher creates a fetcher that qualifies symbols with suffix before calling p.
func NewMarketFetcher(p provider.MarketDataProvider, suffix string, now func() time.Time) *MarketFetcher {
	if now == nil {
		now = time.Now
	}

	return &MarketFetcher{
		provider: p,
		suffix:   suffix,
		now:      now,
	}
}

// Ticker returns the exchange-qualified ticker for symbol.
func (f *MarketFetcher) Ticker(symbol string) string {
	return symbol + f.suffix
}

// FetchOverview returns one flat row of headline fundamentals.
func (f *MarketFetcher) FetchOverview(ctx context.Context, symbol string) (result Result) {
	defer recoverFault(symbol, &result)

	overview, err := f.provider.Overview(ctx, f.Ticker(symbol))
	if err != nil {
		return fromProviderError(symbol, err)
	}

	if overview == nil {
		return Empty()
	}

	return Found(normalize.OverviewRecord(symbol, overview))
}

// FetchDetailed returns statement rows whose period ends in (current year - years) or later.
func (f *MarketFetcher) FetchDetailed(ctx context.Context, symbol string, years int, frequency provider.Frequency) (result Result) {
	defer recoverFault(symbol, &result)

	cutoff := normalize.CutoffYear(f.now(), years)
	since := time.Date(cutoff, time.January, 1, 0, 0, 0, 0, time.UTC)

	statements, err := f.provider.Statements(ctx, f.Ticker(symbol), frequency, since)
	if err != nil {
		return fromProviderError(symbol, err)
	}

	return Found(normalize.DetailedRecord(symbol, frequency, statements, cutoff))
}

// FetchHistorical returns one row per bar in [start, end].
func (f *MarketFetcher) FetchHistorical(ctx context.Context, symbol string, start, end time.Time, interval provider.Interval) (result Result) {
	defer recoverFault(symbol, &result)

	series, err := f.provider.History(ctx, f.Ticker(symbol), start, end, interval)
	if err != nil {
		return fromProviderError(symbol, err)
	}

	if series == nil || series.Empty() {
		return Empty()
	}

	return Found(normalize.HistoricalRecord(symbol, series))
}

// ForRun returns the Fetcher matching the dataset of params.
func (f *MarketFetcher) ForRun(params RunParams) Fetcher {
	switch params.Dataset {
	case DatasetDetailed:
		return FetcherFunc(func(ctx context.Context, symbol string) Result {
			return f.FetchDetailed(ctx, symbol, params.Years, params.Frequency)
		})
	case DatasetTechnical:
		return FetcherFunc(func(ctx context.Context, symbol string) Result {
			return f.FetchHistorical(ctx, symbol, params.Start, params.End, params.Interval)
		})
	default:
		return FetcherFunc(f.FetchOverview)
	}
}

func fromProviderError(symbol string, err error) Result {
	if errors.Is(err, provider.ErrNoData) {
		return Empty()
	}

	if errors.Is(err, provider.ErrUnsupported) {
		return Failed(errors.Wrapf(errors.ErrCodeProviderUnsupported, err, "fetch %s", symbol))
	}

	if errors.Is(err, provider.ErrMalformed) {
		return Failed(errors.Wrapf(errors.ErrCodeMarketDataParseFailed, err, "parse %s", symbol))
	}

	return Failed(errors.Wrapf(errors.ErrCodeMarketDataFetchFailed, err, "fetch %s", symbol))
}

func recoverFault(symbol string, result *Result) {
	if r := recover(); r != nil {
		*result = Failed(errors.Newf(errors.ErrCodeSymbolFailed, "panic while fetching %s: %v", symbol, r))
	}
}
