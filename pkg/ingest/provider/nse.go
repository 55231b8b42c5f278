package provider

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/gocarina/gocsv"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const (
	DefaultNSEBaseURL     = "https://www.nseindia.com"
	DefaultNSEArchivesURL = "https://archives.nseindia.com"

	nseEquityListPath = "/content/equities/EQUITY_L.csv"
)

// NSEProvider reads index constituents, listings and quotes from the National Stock Exchange of India.
type NSEProvider struct {
	baseURL     string
	archivesURL string
	proxy       string
	client      *http.Client
	logger      *zap.Logger

	mu     sync.Mutex
	warmed bool
}

// NSEOption configures the NSEProvider.
type NSEOption func(*NSEProvider)

// WithNSEBaseURL sets the base URL of the JSON API.
func WithNSEBaseURL(baseURL string) NSEOption {
	return func(p *NSEProvider) {
		p.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithNSEArchivesURL sets the base URL serving the equity list CSV.
func WithNSEArchivesURL(archivesURL string) NSEOption {
	return func(p *NSEProvider) {
		p.archivesURL = strings.TrimRight(archivesURL, "/")
	}
}

// WithNSEHTTPClient sets a custom HTTP client. A cookie jar is added when missing.
func WithNSEHTTPClient(client *http.Client) NSEOption {
	return func(p *NSEProvider) {
		p.client = withCookieJar(client)
	}
}

// WithNSEProxy routes requests through proxyURL.
func WithNSEProxy(proxyURL string) NSEOption {
	return func(p *NSEProvider) {
		p.proxy = proxyURL
	}
}

// WithNSELogger sets a logger.
func WithNSELogger(logger *zap.Logger) NSEOption {
	return func(p *NSEProvider) {
		p.logger = logger
	}
}

// NewNSEProvider creates an NSE index provider.
func NewNSEProvider(opts ...NSEOption) (*NSEProvider, error) {
	p := &NSEProvider{
		baseURL:     DefaultNSEBaseURL,
		archivesURL: DefaultNSEArchivesURL,
		proxy:       "",
		client:      nil,
		logger:      zap.NewNop(),
		mu:          sync.Mutex{},
		warmed:      false,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.client == nil {
		client, err := newHTTPClient(p.proxy)
		if err != nil {
			return nil, err
		}

		p.client = client
	}

	return p, nil
}

// Name implements IndexProvider.
func (p *NSEProvider) Name() string {
	return string(IndexSourceNSE)
}

// warmUp loads the home page once so the API accepts the session cookies.
func (p *NSEProvider) warmUp(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.warmed {
		return
	}

	if _, err := get(ctx, p.client, p.baseURL+"/", nil); err != nil {
		p.logger.Debug("NSE warm-up request failed", zap.Error(err))

		return
	}

	p.warmed = true
}

func (p *NSEProvider) getJSON(ctx context.Context, path string, query url.Values) ([]byte, error) {
	p.warmUp(ctx)

	rawURL := p.baseURL + path
	if len(query) > 0 {
		rawURL += "?" + query.Encode()
	}

	body, err := get(ctx, p.client, rawURL, map[string]string{
		"Accept":  "application/json",
		"Referer": p.baseURL + "/",
	})
	if err != nil {
		return nil, err
	}

	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%s: %w", path, ErrMalformed)
	}

	return body, nil
}

// Constituents implements IndexProvider. The summary row NSE returns for the index
// itself is dropped.
func (p *NSEProvider) Constituents(ctx context.Context, index string) ([]string, error) {
	body, err := p.getJSON(ctx, "/api/equity-stockIndices", url.Values{"index": []string{index}})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch constituents of %s: %w", index, err)
	}

	var symbols []string

	gjson.GetBytes(body, "data").ForEach(func(_, entry gjson.Result) bool {
		symbol := strings.TrimSpace(entry.Get("symbol").String())
		if symbol == "" || strings.EqualFold(symbol, index) || entry.Get("priority").Int() == 1 {
			return true
		}

		symbols = append(symbols, symbol)

		return true
	})

	p.logger.Debug("Fetched index constituents", zap.String("index", index), zap.Int("count", len(symbols)))

	return symbols, nil
}

// Indices implements IndexProvider.
func (p *NSEProvider) Indices(ctx context.Context) ([]string, error) {
	body, err := p.getJSON(ctx, "/api/allIndices", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch index list: %w", err)
	}

	var indices []string

	for _, name := range gjson.GetBytes(body, "data.#.index").Array() {
		if s := strings.TrimSpace(name.String()); s != "" {
			indices = append(indices, s)
		}
	}

	return indices, nil
}

// Quote implements IndexProvider.
func (p *NSEProvider) Quote(ctx context.Context, symbol string) (*Quote, error) {
	body, err := p.getJSON(ctx, "/api/quote-equity", url.Values{"symbol": []string{symbol}})
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.NotFound() {
			return nil, fmt.Errorf("quote for %s: %w", symbol, ErrNoData)
		}

		return nil, fmt.Errorf("failed to fetch quote for %s: %w", symbol, err)
	}

	parsed := gjson.ParseBytes(body)
	if !parsed.Get("info.symbol").Exists() {
		return nil, fmt.Errorf("quote for %s: %w", symbol, ErrNoData)
	}

	return &Quote{
		Symbol:        parsed.Get("info.symbol").String(),
		CompanyName:   parsed.Get("info.companyName").String(),
		LastPrice:     parsed.Get("priceInfo.lastPrice").Float(),
		Change:        parsed.Get("priceInfo.change").Float(),
		PercentChange: parsed.Get("priceInfo.pChange").Float(),
		Open:          parsed.Get("priceInfo.open").Float(),
		DayHigh:       parsed.Get("priceInfo.intraDayHighLow.max").Float(),
		DayLow:        parsed.Get("priceInfo.intraDayHighLow.min").Float(),
		PreviousClose: parsed.Get("priceInfo.previousClose").Float(),
		LastUpdated:   parsed.Get("metadata.lastUpdateTime").String(),
	}, nil
}

// Listings implements IndexProvider by reading the exchange's equity list CSV.
func (p *NSEProvider) Listings(ctx context.Context) ([]Listing, error) {
	body, err := get(ctx, p.client, p.archivesURL+nseEquityListPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch equity list: %w", err)
	}

	listings, err := ParseEquityList(body)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("Fetched equity list", zap.Int("count", len(listings)))

	return listings, nil
}

// ParseEquityList decodes the EQUITY_L.csv format. Header cells carry leading spaces.
func ParseEquityList(data []byte) ([]Listing, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var listings []Listing
	if err := gocsv.UnmarshalCSV(reader, &listings); err != nil {
		return nil, fmt.Errorf("equity list: %w: %w", ErrMalformed, err)
	}

	out := listings[:0]
	for _, listing := range listings {
		listing.Symbol = strings.ToUpper(strings.TrimSpace(listing.Symbol))
		if listing.Symbol != "" {
			out = append(out, listing)
		}
	}

	return out, nil
}
