package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/moznion/go-optional"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const (
	DefaultYahooBaseURL   = "https://query2.finance.yahoo.com"
	DefaultYahooCookieURL = "https://fc.yahoo.com"

	yahooSummaryModules = "price,summaryProfile,summaryDetail,defaultKeyStatistics,financialData"
)

// YahooProvider reads fundamentals and price history from Yahoo Finance.
type YahooProvider struct {
	baseURL   string
	cookieURL string
	proxy     string
	client    *http.Client
	logger    *zap.Logger
	now       func() time.Time

	mu    sync.Mutex
	crumb string
}

// YahooOption configures the YahooProvider.
type YahooOption func(*YahooProvider)

// WithYahooBaseURL sets the base URL of the query API.
func WithYahooBaseURL(baseURL string) YahooOption {
	return func(p *YahooProvider) {
		p.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithYahooCookieURL sets the URL visited to obtain session cookies.
func WithYahooCookieURL(cookieURL string) YahooOption {
	return func(p *YahooProvider) {
		p.cookieURL = strings.TrimRight(cookieURL, "/")
	}
}

// WithYahooHTTPClient sets a custom HTTP client. A cookie jar is added when missing.
func WithYahooHTTPClient(client *http.Client) YahooOption {
	return func(p *YahooProvider) {
		p.client = withCookieJar(client)
	}
}

// WithYahooProxy routes requests through proxyURL.
func WithYahooProxy(proxyURL string) YahooOption {
	return func(p *YahooProvider) {
		p.proxy = proxyURL
	}
}

// WithYahooLogger sets a logger.
func WithYahooLogger(logger *zap.Logger) YahooOption {
	return func(p *YahooProvider) {
		p.logger = logger
	}
}

// WithYahooClock sets the clock used for the upper bound of statement requests.
func WithYahooClock(now func() time.Time) YahooOption {
	return func(p *YahooProvider) {
		p.now = now
	}
}

// NewYahooProvider creates a Yahoo Finance market data provider.
func NewYahooProvider(opts ...YahooOption) (*YahooProvider, error) {
	p := &YahooProvider{
		baseURL:   DefaultYahooBaseURL,
		cookieURL: DefaultYahooCookieURL,
		proxy:     "",
		client:    nil,
		logger:    zap.NewNop(),
		now:       time.Now,
		mu:        sync.Mutex{},
		crumb:     "",
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

// Name implements MarketDataProvider.
func (p *YahooProvider) Name() string {
	return string(MarketProviderYahoo)
}

// ensureCrumb obtains the session cookie and the crumb the summary endpoint requires.
func (p *YahooProvider) ensureCrumb(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.crumb != "" {
		return p.crumb, nil
	}

	// The cookie endpoint answers 404 but still sets the session cookie.
	if _, err := get(ctx, p.client, p.cookieURL+"/", nil); err != nil {
		var statusErr *StatusError
		if !errors.As(err, &statusErr) {
			return "", fmt.Errorf("failed to obtain yahoo session cookie: %w", err)
		}
	}

	body, err := get(ctx, p.client, p.baseURL+"/v1/test/getcrumb", nil)
	if err != nil {
		return "", fmt.Errorf("failed to obtain yahoo crumb: %w", err)
	}

	crumb := strings.TrimSpace(string(body))
	if crumb == "" || strings.ContainsAny(crumb, "<{") {
		return "", fmt.Errorf("yahoo returned an invalid crumb")
	}

	p.crumb = crumb

	return crumb, nil
}

func (p *YahooProvider) resetCrumb() {
	p.mu.Lock()
	p.crumb = ""
	p.mu.Unlock()
}

// Overview implements MarketDataProvider.
func (p *YahooProvider) Overview(ctx context.Context, ticker string) (*Overview, error) {
	crumb, err := p.ensureCrumb(ctx)
	if err != nil {
		return nil, err
	}

	query := url.Values{
		"modules": []string{yahooSummaryModules},
		"crumb":   []string{crumb},
	}
	rawURL := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?%s", p.baseURL, url.PathEscape(ticker), query.Encode())

	body, err := get(ctx, p.client, rawURL, nil)
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			switch statusErr.StatusCode {
			case http.StatusNotFound:
				return nil, fmt.Errorf("overview for %s: %w", ticker, ErrNoData)
			case http.StatusUnauthorized, http.StatusForbidden:
				p.resetCrumb()
			}
		}

		return nil, fmt.Errorf("failed to fetch overview for %s: %w", ticker, err)
	}

	result := gjson.GetBytes(body, "quoteSummary.result.0")
	if !result.Exists() {
		return nil, fmt.Errorf("overview for %s: %w", ticker, ErrNoData)
	}

	p.logger.Debug("Fetched overview", zap.String("ticker", ticker))

	return parseOverview(result), nil
}

func parseOverview(result gjson.Result) *Overview {
	longName := optionalString(result.Get("price.longName"))
	if longName.IsNone() {
		longName = optionalString(result.Get("price.shortName"))
	}

	marketCap := optionalRaw(result.Get("price.marketCap"))
	if marketCap.IsNone() {
		marketCap = optionalRaw(result.Get("summaryDetail.marketCap"))
	}

	profitMargins := optionalRaw(result.Get("financialData.profitMargins"))
	if profitMargins.IsNone() {
		profitMargins = optionalRaw(result.Get("defaultKeyStatistics.profitMargins"))
	}

	return &Overview{
		Name:             longName,
		Sector:           optionalString(result.Get("summaryProfile.sector")),
		Industry:         optionalString(result.Get("summaryProfile.industry")),
		MarketCap:        marketCap,
		PERatio:          optionalRaw(result.Get("summaryDetail.trailingPE")),
		EPS:              optionalRaw(result.Get("defaultKeyStatistics.trailingEps")),
		BookValue:        optionalRaw(result.Get("defaultKeyStatistics.bookValue")),
		PriceToBook:      optionalRaw(result.Get("defaultKeyStatistics.priceToBook")),
		DividendYield:    optionalRaw(result.Get("summaryDetail.dividendYield")),
		ReturnOnEquity:   optionalRaw(result.Get("financialData.returnOnEquity")),
		DebtToEquity:     optionalRaw(result.Get("financialData.debtToEquity")),
		ProfitMargins:    profitMargins,
		OperatingMargins: optionalRaw(result.Get("financialData.operatingMargins")),
	}
}

// optionalRaw reads a Yahoo {"raw": ..., "fmt": ...} value, or a bare number.
func optionalRaw(v gjson.Result) optional.Option[float64] {
	if v.IsObject() {
		v = v.Get("raw")
	}

	if v.Type != gjson.Number {
		return optional.None[float64]()
	}

	return optional.Some(v.Float())
}

func optionalString(v gjson.Result) optional.Option[string] {
	s := strings.TrimSpace(v.String())
	if !v.Exists() || v.Type == gjson.Null || s == "" {
		return optional.None[string]()
	}

	return optional.Some(s)
}
