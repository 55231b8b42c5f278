package provider

import (
	"context"
	"errors"
	"time"

	"github.com/moznion/go-optional"
)

var (
	// ErrNoData is returned when a provider answered but has nothing for the request.
	ErrNoData = errors.New("no data")
	// ErrUnsupported is returned when a provider does not offer the requested dataset.
	ErrUnsupported = errors.New("operation not supported by provider")
	// ErrMalformed is returned when a provider answered with a payload that cannot be parsed.
	ErrMalformed = errors.New("malformed response")
)

// IndexProviderType identifies where index constituents and listings come from.
type IndexProviderType string

const (
	IndexSourceNSE  IndexProviderType = "nse"
	IndexSourceFile IndexProviderType = "file"
)

// MarketDataProviderType identifies where fundamentals and prices come from.
type MarketDataProviderType string

const (
	MarketProviderYahoo   MarketDataProviderType = "yahoo"
	MarketProviderPolygon MarketDataProviderType = "polygon"
)

// IndexProvider resolves index names to constituents and answers listing questions.
type IndexProvider interface {
	// Name returns the provider identifier used in logs.
	Name() string
	// Constituents returns the symbols of the index in the order the source lists them.
	Constituents(ctx context.Context, index string) ([]string, error)
	// Listings returns every equity listed on the exchange.
	Listings(ctx context.Context) ([]Listing, error)
	// Indices returns the names of every index the source knows.
	Indices(ctx context.Context) ([]string, error)
	// Quote returns a live quote for symbol.
	Quote(ctx context.Context, symbol string) (*Quote, error)
}

// MarketDataProvider fetches fundamentals and price history for a ticker.
// Tickers are exchange-qualified by the caller.
type MarketDataProvider interface {
	// Name returns the provider identifier used in logs.
	Name() string
	// Overview returns headline fundamentals. Missing fields are None.
	Overview(ctx context.Context, ticker string) (*Overview, error)
	// Statements returns the income statement, balance sheet and cash flow at the given
	// frequency, restricted to periods ending on or after since when the source allows it.
	Statements(ctx context.Context, ticker string, frequency Frequency, since time.Time) ([]Statement, error)
	// History returns price bars for [start, end] inclusive.
	History(ctx context.Context, ticker string, start, end time.Time, interval Interval) (*PriceSeries, error)
}

// Listing is one row of the exchange's equity list.
type Listing struct {
	Symbol string `csv:"SYMBOL"`
	Name   string `csv:"NAME OF COMPANY"`
	Series string `csv:"SERIES"`
	ISIN   string `csv:"ISIN NUMBER"`
}

// Quote is a live price snapshot.
type Quote struct {
	Symbol        string
	CompanyName   string
	LastPrice     float64
	Change        float64
	PercentChange float64
	Open          float64
	DayHigh       float64
	DayLow        float64
	PreviousClose float64
	LastUpdated   string
}

// Overview carries the headline fundamentals of one company.
type Overview struct {
	Name             optional.Option[string]
	Sector           optional.Option[string]
	Industry         optional.Option[string]
	MarketCap        optional.Option[float64]
	PERatio          optional.Option[float64]
	EPS              optional.Option[float64]
	BookValue        optional.Option[float64]
	PriceToBook      optional.Option[float64]
	DividendYield    optional.Option[float64]
	ReturnOnEquity   optional.Option[float64]
	DebtToEquity     optional.Option[float64]
	ProfitMargins    optional.Option[float64]
	OperatingMargins optional.Option[float64]
}

// StatementKind names one of the three financial statements.
type StatementKind string

const (
	IncomeStatement StatementKind = "income"
	BalanceSheet    StatementKind = "balance"
	CashFlow        StatementKind = "cashflow"
)

// Statement is a financial statement laid out with line items as rows and
// reporting periods as columns.
type Statement struct {
	Kind    StatementKind
	Periods []time.Time
	Items   []LineItem
}

// LineItem is one row of a statement. Values are aligned with Statement.Periods.
type LineItem struct {
	Name   string
	Values []optional.Option[float64]
}

// ColumnHeader is a possibly multi-level column label, outermost level first.
type ColumnHeader []string

// PriceSeries is a column-major block of price bars.
type PriceSeries struct {
	// Intraday marks series whose timestamps carry a time of day.
	Intraday   bool
	Timestamps []time.Time
	Columns    []ColumnHeader
	// Values[c][i] is the value of column c at Timestamps[i].
	Values [][]optional.Option[float64]
}

// Empty reports whether the series has no bars.
func (s *PriceSeries) Empty() bool {
	return s == nil || len(s.Timestamps) == 0
}
