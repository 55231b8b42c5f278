// Package ingest downloads fundamental and technical data for the constituents of a stock
// index and writes it as CSV, either one file per symbol or one combined file per run.
package ingest

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-ingest/pkg/errors"
	"github.com/rxtech-lab/argo-ingest/pkg/ingest/provider"
	"github.com/rxtech-lab/argo-ingest/pkg/ingest/writer"
	"go.uber.org/zap"
)

// DefaultExchangeSuffix qualifies NSE symbols for Yahoo Finance.
const DefaultExchangeSuffix = ".NS"

// ClientConfig holds the configuration for the ingestion client.
type ClientConfig struct {
	OutputDir      string                          `yaml:"outputDir" validate:"required"`
	MarketProvider provider.MarketDataProviderType `yaml:"marketProvider" validate:"required,oneof=yahoo polygon"`
	IndexSource    provider.IndexProviderType      `yaml:"indexSource" validate:"required,oneof=nse file"`
	IndexFile      string                          `yaml:"indexFile" validate:"required_if=IndexSource file"`
	ExchangeSuffix string                          `yaml:"exchangeSuffix"`
	PolygonAPIKey  string                          `yaml:"-" validate:"required_if=MarketProvider polygon"`
	Proxy          string                          `yaml:"proxy" validate:"omitempty,url"`
	Delay          time.Duration                   `yaml:"delay" validate:"min=0"`

	// Endpoint overrides, used to point the providers at a mock server.
	NSEBaseURL     string `yaml:"nseBaseURL,omitempty" validate:"omitempty,url"`
	NSEArchivesURL string `yaml:"nseArchivesURL,omitempty" validate:"omitempty,url"`
	YahooBaseURL   string `yaml:"yahooBaseURL,omitempty" validate:"omitempty,url"`
	YahooCookieURL string `yaml:"yahooCookieURL,omitempty" validate:"omitempty,url"`
}

// DefaultClientConfig returns the configuration used when nothing is overridden.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		OutputDir:      DefaultOutputDir,
		MarketProvider: provider.MarketProviderYahoo,
		IndexSource:    provider.IndexSourceNSE,
		IndexFile:      "",
		ExchangeSuffix: DefaultExchangeSuffix,
		PolygonAPIKey:  "",
		Proxy:          "",
		Delay:          DefaultDelay,
		NSEBaseURL:     "",
		NSEArchivesURL: "",
		YahooBaseURL:   "",
		YahooCookieURL: "",
	}
}

// SuffixFor returns the default exchange suffix for a market data provider.
func SuffixFor(providerType provider.MarketDataProviderType) string {
	if providerType == provider.MarketProviderPolygon {
		return ""
	}

	return DefaultExchangeSuffix
}

// Validate checks the configuration.
func (c ClientConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid client configuration", err)
	}

	return nil
}

// Client wires the index source, market data provider and writer together.
type Client struct {
	config     ClientConfig
	index      provider.IndexProvider
	market     provider.MarketDataProvider
	writer     writer.TableWriter
	logger     *zap.Logger
	now        func() time.Time
	onProgress OnProgress
}

// NewClient creates a new ingestion client with the given configuration.
func NewClient(config ClientConfig, logger *zap.Logger, onProgress OnProgress) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	indexProvider, err := newIndexProvider(config, logger)
	if err != nil {
		return nil, err
	}

	marketProvider, err := newMarketProvider(config, logger)
	if err != nil {
		return nil, err
	}

	return &Client{
		config:     config,
		index:      indexProvider,
		market:     marketProvider,
		writer:     writer.NewCSVWriter(),
		logger:     logger,
		now:        time.Now,
		onProgress: onProgress,
	}, nil
}

// NewClientWithProviders creates a client around already constructed collaborators.
func NewClientWithProviders(config ClientConfig, index provider.IndexProvider, market provider.MarketDataProvider, tableWriter writer.TableWriter, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		config:     config,
		index:      index,
		market:     market,
		writer:     tableWriter,
		logger:     logger,
		now:        time.Now,
		onProgress: nil,
	}
}

// SetClock replaces the clock used for defaults, cutoffs and date stamps.
func (c *Client) SetClock(now func() time.Time) {
	c.now = now
}

// SetProgress replaces the progress callback.
func (c *Client) SetProgress(onProgress OnProgress) {
	c.onProgress = onProgress
}

// Collect validates run and executes it. Input errors are returned before any network or file activity.
func (c *Client) Collect(ctx context.Context, run RunConfig) (*RunReport, error) {
	params, err := run.Validate(c.now())
	if err != nil {
		return nil, err
	}

	if !provider.Serves(string(c.config.MarketProvider), string(params.Dataset)) {
		return nil, errors.Newf(errors.ErrCodeInvalidConfiguration,
			"the %s provider does not serve the %s dataset", c.config.MarketProvider, params.Dataset)
	}

	resolver := NewIndexResolver(c.index, c.logger)
	fetcher := NewMarketFetcher(c.market, c.config.ExchangeSuffix, c.now)

	collector := NewCollector(resolver, resolver, c.writer,
		WithPacer(NewPacer(c.config.Delay)),
		WithLogger(c.logger),
		WithClock(c.now),
		WithOutputDir(c.config.OutputDir),
		WithProgress(c.onProgress),
	)

	return collector.Collect(ctx, params, fetcher.ForRun(params))
}

// Constituents returns the symbols of index as the index source lists them.
func (c *Client) Constituents(ctx context.Context, index string) ([]string, error) {
	symbols, err := c.index.Constituents(ctx, index)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeIndexSourceUnavailable, err, "failed to resolve %s", index)
	}

	if len(symbols) == 0 {
		return nil, errors.Newf(errors.ErrCodeIndexNotFound, "index %s has no constituents", index)
	}

	return symbols, nil
}

// Indices lists every index known to the index source.
func (c *Client) Indices(ctx context.Context) ([]string, error) {
	indices, err := c.index.Indices(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIndexSourceUnavailable, "failed to list indices", err)
	}

	return indices, nil
}

// Listings lists every equity listed on the exchange.
func (c *Client) Listings(ctx context.Context) ([]provider.Listing, error) {
	listings, err := c.index.Listings(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIndexSourceUnavailable, "failed to list symbols", err)
	}

	return listings, nil
}

// Quote returns a live quote for symbol from the index source.
func (c *Client) Quote(ctx context.Context, symbol string) (*provider.Quote, error) {
	quote, err := c.index.Quote(ctx, symbol)
	if err != nil {
		switch {
		case errors.Is(err, provider.ErrNoData):
			return nil, errors.Wrapf(errors.ErrCodeNoData, err, "no quote for %s", symbol)
		case errors.Is(err, provider.ErrUnsupported):
			return nil, errors.Wrapf(errors.ErrCodeProviderUnsupported, err, "%s does not serve quotes", c.index.Name())
		default:
			return nil, errors.Wrapf(errors.ErrCodeMarketDataFetchFailed, err, "failed to fetch quote for %s", symbol)
		}
	}

	return quote, nil
}

func newIndexProvider(config ClientConfig, logger *zap.Logger) (provider.IndexProvider, error) {
	switch config.IndexSource {
	case provider.IndexSourceNSE:
		opts := []provider.NSEOption{
			provider.WithNSEProxy(config.Proxy),
			provider.WithNSELogger(logger),
		}
		if config.NSEBaseURL != "" {
			opts = append(opts, provider.WithNSEBaseURL(config.NSEBaseURL))
		}

		if config.NSEArchivesURL != "" {
			opts = append(opts, provider.WithNSEArchivesURL(config.NSEArchivesURL))
		}

		nse, err := provider.NewNSEProvider(opts...)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to create NSE provider", err)
		}

		return nse, nil
	case provider.IndexSourceFile:
		fileProvider, err := provider.NewFileIndexProvider(config.IndexFile)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to load index file", err)
		}

		return fileProvider, nil
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidProvider, "unsupported index source: %s", config.IndexSource)
	}
}

func newMarketProvider(config ClientConfig, logger *zap.Logger) (provider.MarketDataProvider, error) {
	switch config.MarketProvider {
	case provider.MarketProviderYahoo:
		opts := []provider.YahooOption{
			provider.WithYahooProxy(config.Proxy),
			provider.WithYahooLogger(logger),
		}
		if config.YahooBaseURL != "" {
			opts = append(opts, provider.WithYahooBaseURL(config.YahooBaseURL))
		}

		if config.YahooCookieURL != "" {
			opts = append(opts, provider.WithYahooCookieURL(config.YahooCookieURL))
		}

		yahoo, err := provider.NewYahooProvider(opts...)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to create Yahoo provider", err)
		}

		return yahoo, nil
	case provider.MarketProviderPolygon:
		polygon, err := provider.NewPolygonProvider(config.PolygonAPIKey, logger)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to create Polygon provider", err)
		}

		return polygon, nil
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidProvider, "unsupported market data provider: %s", config.MarketProvider)
	}
}
