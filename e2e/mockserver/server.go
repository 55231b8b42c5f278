// Package mockserver provides a mock NSE and Yahoo Finance server for testing.
// One listener serves both sets of endpoints so every provider base URL can point at it.
package mockserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
)

const (
	// Crumb is the crumb handed out by /v1/test/getcrumb.
	Crumb = "mock-crumb"

	sessionCookie = "A3"
)

// Listing is one row of the mock equity list.
type Listing struct {
	Symbol string
	Name   string
	Series string
	ISIN   string
}

// Quote is the live quote served for a symbol.
type Quote struct {
	LastPrice     float64
	Change        float64
	PercentChange float64
	Open          float64
	DayHigh       float64
	DayLow        float64
	PreviousClose float64
}

// Point is one reported value of a fundamentals time series.
type Point struct {
	AsOf  string
	Value float64
}

// Bar is one chart bar. Zero AdjClose is served as null.
type Bar struct {
	Time     time.Time
	Open     float64
	High     float64
	Low      float64
	Close    float64
	AdjClose float64
	Volume   float64
}

// Company is the Yahoo data served for one exchange-qualified ticker.
type Company struct {
	Name     string
	Sector   string
	Industry string
	// Summary maps "module.field" (e.g. "summaryDetail.trailingPE") to a raw value.
	Summary map[string]float64
	// Fundamentals maps a series type (e.g. "annualTotalRevenue") to its points.
	Fundamentals map[string][]Point
	Bars         []Bar
}

// ServerConfig holds configuration for the mock server.
type ServerConfig struct {
	// Indices maps an index name to its constituents.
	Indices map[string][]string
	// Listings is the exchange equity list.
	Listings []Listing
	// Quotes maps a bare symbol to its live quote.
	Quotes map[string]Quote
	// Companies maps a Yahoo ticker (e.g. "INFY.NS") to its data.
	Companies map[string]*Company
}

// MockMarketServer serves canned NSE and Yahoo Finance responses.
type MockMarketServer struct {
	mu sync.RWMutex

	httpServer *http.Server
	listener   net.Listener

	config   ServerConfig
	failures map[string]int
	requests map[string]int
}

// NewMockMarketServer creates a new mock server.
func NewMockMarketServer(config ServerConfig) *MockMarketServer {
	if config.Indices == nil {
		config.Indices = make(map[string][]string)
	}

	if config.Quotes == nil {
		config.Quotes = make(map[string]Quote)
	}

	if config.Companies == nil {
		config.Companies = make(map[string]*Company)
	}

	return &MockMarketServer{
		mu:         sync.RWMutex{},
		httpServer: nil,
		listener:   nil,
		config:     config,
		failures:   make(map[string]int),
		requests:   make(map[string]int),
	}
}

// Start starts the mock server on the given address.
// If address is empty or ":0", a random available port is used.
func (s *MockMarketServer) Start(address string) error {
	if address == "" {
		address = ":0"
	}

	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}

	s.listener = listener

	router := mux.NewRouter()
	router.Use(s.countRequests)

	// Session
	router.HandleFunc("/", s.handleHome).Methods("GET")

	// NSE
	router.HandleFunc("/api/equity-stockIndices", s.handleIndexConstituents).Methods("GET")
	router.HandleFunc("/api/allIndices", s.handleAllIndices).Methods("GET")
	router.HandleFunc("/api/quote-equity", s.handleQuote).Methods("GET")
	router.HandleFunc("/content/equities/EQUITY_L.csv", s.handleEquityList).Methods("GET")

	// Yahoo Finance
	router.HandleFunc("/v1/test/getcrumb", s.handleCrumb).Methods("GET")
	router.HandleFunc("/v10/finance/quoteSummary/{ticker}", s.handleQuoteSummary).Methods("GET")
	router.HandleFunc("/ws/fundamentals-timeseries/v1/finance/timeseries/{ticker}", s.handleTimeseries).Methods("GET")
	router.HandleFunc("/v8/finance/chart/{ticker}", s.handleChart).Methods("GET")

	s.httpServer = &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	server := s.httpServer

	go func() {
		if err := server.Serve(listener); err != http.ErrServerClosed {
			fmt.Printf("HTTP server error: %v\n", err)
		}
	}()

	return nil
}

// Stop stops the mock server.
func (s *MockMarketServer) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := s.httpServer.Shutdown(ctx)
	s.httpServer = nil

	return err
}

// Address returns the address the server is listening on.
func (s *MockMarketServer) Address() string {
	if s.listener == nil {
		return ""
	}

	return s.listener.Addr().String()
}

// BaseURL returns the base URL for the server.
func (s *MockMarketServer) BaseURL() string {
	return "http://" + s.Address()
}

// FailTicker makes every Yahoo endpoint answer status for ticker.
func (s *MockMarketServer) FailTicker(ticker string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failures[ticker] = status
}

// Requests returns how many requests were made to path.
func (s *MockMarketServer) Requests(path string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.requests[path]
}

func (s *MockMarketServer) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests[r.URL.Path]++
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (s *MockMarketServer) failure(ticker string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status, ok := s.failures[ticker]

	return status, ok
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *MockMarketServer) handleHome(w http.ResponseWriter, _ *http.Request) {
	//nolint:exhaustruct // only the fields a session cookie needs
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "session", Path: "/"})
	w.Header().Set("Content-Type", "text/html")
	_, _ = w.Write([]byte("<html></html>"))
}

func (s *MockMarketServer) handleIndexConstituents(w http.ResponseWriter, r *http.Request) {
	index := r.URL.Query().Get("index")

	s.mu.RLock()
	symbols, ok := s.config.Indices[index]
	s.mu.RUnlock()

	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{})

		return
	}

	data := []map[string]any{{"symbol": index, "priority": 1, "lastPrice": 22000.5}}
	for _, symbol := range symbols {
		data = append(data, map[string]any{"symbol": symbol, "priority": 0, "lastPrice": 1000.0})
	}

	writeJSON(w, http.StatusOK, map[string]any{"name": index, "data": data})
}

func (s *MockMarketServer) handleAllIndices(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	names := make([]string, 0, len(s.config.Indices))

	for name := range s.config.Indices {
		names = append(names, name)
	}
	s.mu.RUnlock()

	sort.Strings(names)

	data := make([]map[string]any, 0, len(names))
	for _, name := range names {
		data = append(data, map[string]any{"index": name, "indexSymbol": name, "last": 1000.0})
	}

	writeJSON(w, http.StatusOK, map[string]any{"data": data})
}

func (s *MockMarketServer) handleQuote(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(r.URL.Query().Get("symbol"))

	s.mu.RLock()
	quote, ok := s.config.Quotes[symbol]

	name := ""
	for _, listing := range s.config.Listings {
		if listing.Symbol == symbol {
			name = listing.Name
		}
	}
	s.mu.RUnlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{})

		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"info": map[string]any{"symbol": symbol, "companyName": name},
		"priceInfo": map[string]any{
			"lastPrice":       quote.LastPrice,
			"change":          quote.Change,
			"pChange":         quote.PercentChange,
			"open":            quote.Open,
			"previousClose":   quote.PreviousClose,
			"intraDayHighLow": map[string]any{"min": quote.DayLow, "max": quote.DayHigh},
		},
		"metadata": map[string]any{"lastUpdateTime": "14-Jun-2024 16:00:00"},
	})
}

func (s *MockMarketServer) handleEquityList(w http.ResponseWriter, _ *http.Request) {
	var b strings.Builder

	b.WriteString("SYMBOL,NAME OF COMPANY, SERIES, DATE OF LISTING, PAID UP VALUE, MARKET LOT, ISIN NUMBER, FACE VALUE\n")

	s.mu.RLock()
	for _, listing := range s.config.Listings {
		series := listing.Series
		if series == "" {
			series = "EQ"
		}

		fmt.Fprintf(&b, "%s,%s,%s,01-JAN-2000,5,1,%s,5\n", listing.Symbol, listing.Name, series, listing.ISIN)
	}
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "text/csv")
	_, _ = w.Write([]byte(b.String()))
}

func (s *MockMarketServer) handleCrumb(w http.ResponseWriter, r *http.Request) {
	if _, err := r.Cookie(sessionCookie); err != nil {
		w.WriteHeader(http.StatusUnauthorized)

		return
	}

	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte(Crumb))
}

func (s *MockMarketServer) company(ticker string) (*Company, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	company, ok := s.config.Companies[ticker]

	return company, ok
}

func (s *MockMarketServer) handleQuoteSummary(w http.ResponseWriter, r *http.Request) {
	ticker := mux.Vars(r)["ticker"]

	if status, ok := s.failure(ticker); ok {
		writeJSON(w, status, map[string]any{"quoteSummary": map[string]any{"result": nil, "error": map[string]any{"code": "Internal", "description": "failure"}}})

		return
	}

	if r.URL.Query().Get("crumb") != Crumb {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"finance": map[string]any{"error": map[string]any{"code": "Unauthorized", "description": "Invalid Crumb"}}})

		return
	}

	company, ok := s.company(ticker)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"quoteSummary": map[string]any{
			"result": nil,
			"error":  map[string]any{"code": "Not Found", "description": "Quote not found for ticker symbol: " + ticker},
		}})

		return
	}

	modules := map[string]map[string]any{
		"price":                {"longName": company.Name},
		"summaryProfile":       {"sector": company.Sector, "industry": company.Industry},
		"summaryDetail":        {},
		"defaultKeyStatistics": {},
		"financialData":        {},
	}

	for key, value := range company.Summary {
		module, field, found := strings.Cut(key, ".")
		if !found {
			continue
		}

		if _, ok := modules[module]; !ok {
			modules[module] = map[string]any{}
		}

		modules[module][field] = map[string]any{"raw": value, "fmt": strconv.FormatFloat(value, 'f', 2, 64)}
	}

	writeJSON(w, http.StatusOK, map[string]any{"quoteSummary": map[string]any{"result": []any{modules}, "error": nil}})
}

func (s *MockMarketServer) handleTimeseries(w http.ResponseWriter, r *http.Request) {
	ticker := mux.Vars(r)["ticker"]

	if status, ok := s.failure(ticker); ok {
		writeJSON(w, status, map[string]any{"timeseries": map[string]any{"result": nil, "error": "failure"}})

		return
	}

	company, _ := s.company(ticker)

	var results []any

	for _, typ := range strings.Split(r.URL.Query().Get("type"), ",") {
		if typ == "" {
			continue
		}

		result := map[string]any{"meta": map[string]any{"symbol": []string{ticker}, "type": []string{typ}}}

		if company != nil {
			if points, ok := company.Fundamentals[typ]; ok && len(points) > 0 {
				timestamps := make([]int64, 0, len(points))
				entries := make([]any, 0, len(points))

				for _, point := range points {
					if date, err := time.Parse("2006-01-02", point.AsOf); err == nil {
						timestamps = append(timestamps, date.Unix())
					}

					entries = append(entries, map[string]any{
						"asOfDate":     point.AsOf,
						"periodType":   "12M",
						"currencyCode": "INR",
						"reportedValue": map[string]any{
							"raw": point.Value,
							"fmt": strconv.FormatFloat(point.Value, 'f', -1, 64),
						},
					})
				}

				result["timestamp"] = timestamps
				result[typ] = entries
			}
		}

		results = append(results, result)
	}

	writeJSON(w, http.StatusOK, map[string]any{"timeseries": map[string]any{"result": results, "error": nil}})
}

func (s *MockMarketServer) handleChart(w http.ResponseWriter, r *http.Request) {
	ticker := mux.Vars(r)["ticker"]

	if status, ok := s.failure(ticker); ok {
		writeJSON(w, status, map[string]any{"chart": map[string]any{"result": nil, "error": map[string]any{"code": "Internal", "description": "failure"}}})

		return
	}

	company, ok := s.company(ticker)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"chart": map[string]any{
			"result": nil,
			"error":  map[string]any{"code": "Not Found", "description": "No data found, symbol may be delisted"},
		}})

		return
	}

	period1, _ := strconv.ParseInt(r.URL.Query().Get("period1"), 10, 64)
	period2, _ := strconv.ParseInt(r.URL.Query().Get("period2"), 10, 64)

	var (
		timestamps                           []int64
		opens, highs, lows, closes, adjusted []any
		volumes                              []any
	)

	for _, bar := range company.Bars {
		ts := bar.Time.Unix()
		if ts < period1 || (period2 > 0 && ts >= period2) {
			continue
		}

		timestamps = append(timestamps, ts)
		opens = append(opens, bar.Open)
		highs = append(highs, bar.High)
		lows = append(lows, bar.Low)
		closes = append(closes, bar.Close)
		volumes = append(volumes, bar.Volume)

		if bar.AdjClose == 0 {
			adjusted = append(adjusted, nil)
		} else {
			adjusted = append(adjusted, bar.AdjClose)
		}
	}

	result := map[string]any{
		"meta": map[string]any{
			"symbol":               ticker,
			"currency":             "INR",
			"exchangeTimezoneName": "Asia/Kolkata",
			"timezone":             "IST",
			"gmtoffset":            19800,
		},
		"timestamp": timestamps,
		"indicators": map[string]any{
			"quote": []any{map[string]any{
				"open":   opens,
				"high":   highs,
				"low":    lows,
				"close":  closes,
				"volume": volumes,
			}},
			"adjclose": []any{map[string]any{"adjclose": adjusted}},
		},
	}

	writeJSON(w, http.StatusOK, map[string]any{"chart": map[string]any{"result": []any{result}, "error": nil}})
}
