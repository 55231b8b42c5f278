package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/moznion/go-optional"
	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"
	"go.uber.org/zap"
)

// PolygonAggsIterator walks aggregate bars.
type PolygonAggsIterator interface {
	Next() bool
	Item() models.Agg
	Err() error
}

// PolygonAPIClient is the subset of the Polygon REST client used here.
type PolygonAPIClient interface {
	ListAggs(ctx context.Context, params *models.ListAggsParams, options ...models.RequestOption) PolygonAggsIterator
	GetTickerDetails(ctx context.Context, params *models.GetTickerDetailsParams, options ...models.RequestOption) (*models.GetTickerDetailsResponse, error)
}

// polygonRESTClient adapts *polygon.Client to PolygonAPIClient.
type polygonRESTClient struct {
	client *polygon.Client
}

func (c *polygonRESTClient) ListAggs(ctx context.Context, params *models.ListAggsParams, options ...models.RequestOption) PolygonAggsIterator {
	return c.client.ListAggs(ctx, params, options...)
}

func (c *polygonRESTClient) GetTickerDetails(ctx context.Context, params *models.GetTickerDetailsParams, options ...models.RequestOption) (*models.GetTickerDetailsResponse, error) {
	return c.client.GetTickerDetails(ctx, params, options...)
}

// PolygonProvider reads price history and company details from Polygon.io.
// Financial statements are not offered.
type PolygonProvider struct {
	api    PolygonAPIClient
	logger *zap.Logger
}

// NewPolygonProvider creates a Polygon provider backed by the official REST client.
func NewPolygonProvider(apiKey string, logger *zap.Logger) (*PolygonProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("apiKey is required")
	}

	return NewPolygonProviderWithAPI(&polygonRESTClient{client: polygon.New(apiKey)}, logger), nil
}

// NewPolygonProviderWithAPI creates a Polygon provider over any PolygonAPIClient implementation.
func NewPolygonProviderWithAPI(api PolygonAPIClient, logger *zap.Logger) *PolygonProvider {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &PolygonProvider{
		api:    api,
		logger: logger,
	}
}

// Name implements MarketDataProvider.
func (p *PolygonProvider) Name() string {
	return string(MarketProviderPolygon)
}

// Overview implements MarketDataProvider. Only the fields Polygon reports are filled.
func (p *PolygonProvider) Overview(ctx context.Context, ticker string) (*Overview, error) {
	//nolint:exhaustruct // third-party struct with many optional fields
	resp, err := p.api.GetTickerDetails(ctx, &models.GetTickerDetailsParams{Ticker: ticker})
	if err != nil {
		if isPolygonNotFound(err) {
			return nil, fmt.Errorf("overview for %s: %w", ticker, ErrNoData)
		}

		return nil, fmt.Errorf("failed to fetch ticker details for %s: %w", ticker, err)
	}

	if resp == nil || (resp.Results.Ticker == "" && resp.Results.Name == "") {
		return nil, fmt.Errorf("overview for %s: %w", ticker, ErrNoData)
	}

	details := resp.Results
	overview := &Overview{
		Name:             optional.None[string](),
		Sector:           optional.None[string](),
		Industry:         optional.None[string](),
		MarketCap:        optional.None[float64](),
		PERatio:          optional.None[float64](),
		EPS:              optional.None[float64](),
		BookValue:        optional.None[float64](),
		PriceToBook:      optional.None[float64](),
		DividendYield:    optional.None[float64](),
		ReturnOnEquity:   optional.None[float64](),
		DebtToEquity:     optional.None[float64](),
		ProfitMargins:    optional.None[float64](),
		OperatingMargins: optional.None[float64](),
	}

	if details.Name != "" {
		overview.Name = optional.Some(details.Name)
	}

	if details.SICDescription != "" {
		overview.Industry = optional.Some(details.SICDescription)
	}

	if details.MarketCap > 0 {
		overview.MarketCap = optional.Some(details.MarketCap)
	}

	return overview, nil
}

// Statements implements MarketDataProvider.
func (p *PolygonProvider) Statements(_ context.Context, ticker string, _ Frequency, _ time.Time) ([]Statement, error) {
	return nil, fmt.Errorf("statements for %s: %w", ticker, ErrUnsupported)
}

// History implements MarketDataProvider.
func (p *PolygonProvider) History(ctx context.Context, ticker string, start, end time.Time, interval Interval) (*PriceSeries, error) {
	//nolint:exhaustruct // third-party struct with many optional fields
	params := models.ListAggsParams{
		Ticker:     ticker,
		Multiplier: interval.Multiplier(),
		Timespan:   interval.Timespan(),
		From:       models.Millis(start),
		To:         models.Millis(end.AddDate(0, 0, 1).Add(-time.Millisecond)),
	}.WithLimit(50000)

	aggs := p.api.ListAggs(ctx, params)

	series := &PriceSeries{
		Intraday:   interval.Intraday(),
		Timestamps: nil,
		Columns: []ColumnHeader{
			{"Open", ticker}, {"High", ticker}, {"Low", ticker}, {"Close", ticker}, {"Volume", ticker},
		},
		Values: make([][]optional.Option[float64], 5),
	}

	for aggs.Next() {
		agg := aggs.Item()

		at := time.Time(agg.Timestamp).UTC()
		if !series.Intraday {
			at = time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC)
		}

		series.Timestamps = append(series.Timestamps, at)

		for c, v := range []float64{agg.Open, agg.High, agg.Low, agg.Close, agg.Volume} {
			series.Values[c] = append(series.Values[c], optional.Some(v))
		}
	}

	if err := aggs.Err(); err != nil {
		if isPolygonNotFound(err) {
			return nil, fmt.Errorf("history for %s: %w", ticker, ErrNoData)
		}

		return nil, fmt.Errorf("error iterating polygon aggregates for %s: %w", ticker, err)
	}

	if series.Empty() {
		return nil, fmt.Errorf("history for %s: %w", ticker, ErrNoData)
	}

	p.logger.Debug("Fetched polygon aggregates", zap.String("ticker", ticker), zap.Int("bars", len(series.Timestamps)))

	return series, nil
}

func isPolygonNotFound(err error) bool {
	var errResp *models.ErrorResponse

	return errors.As(err, &errResp) && errResp.StatusCode == http.StatusNotFound
}
