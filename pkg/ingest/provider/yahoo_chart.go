package provider

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/moznion/go-optional"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Chart fields in output order. Adj Close is only present for daily and longer bars.
var yahooChartFields = []struct {
	label string
	path  string
}{
	{label: "Open", path: "indicators.quote.0.open"},
	{label: "High", path: "indicators.quote.0.high"},
	{label: "Low", path: "indicators.quote.0.low"},
	{label: "Close", path: "indicators.quote.0.close"},
	{label: "Adj Close", path: "indicators.adjclose.0.adjclose"},
	{label: "Volume", path: "indicators.quote.0.volume"},
}

// History implements MarketDataProvider. The range is inclusive of end.
func (p *YahooProvider) History(ctx context.Context, ticker string, start, end time.Time, interval Interval) (*PriceSeries, error) {
	query := url.Values{
		"period1":              []string{strconv.FormatInt(start.Unix(), 10)},
		"period2":              []string{strconv.FormatInt(end.AddDate(0, 0, 1).Unix(), 10)},
		"interval":             []string{string(interval)},
		"includeAdjustedClose": []string{"true"},
		"events":               []string{"div,splits"},
	}
	rawURL := fmt.Sprintf("%s/v8/finance/chart/%s?%s", p.baseURL, url.PathEscape(ticker), query.Encode())

	body, err := get(ctx, p.client, rawURL, nil)
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.NotFound() {
			return nil, fmt.Errorf("history for %s: %w", ticker, ErrNoData)
		}

		return nil, fmt.Errorf("failed to fetch history for %s: %w", ticker, err)
	}

	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("history for %s: %w", ticker, ErrMalformed)
	}

	if chartErr := gjson.GetBytes(body, "chart.error"); chartErr.IsObject() {
		if strings.EqualFold(chartErr.Get("code").String(), "Not Found") {
			return nil, fmt.Errorf("history for %s: %w", ticker, ErrNoData)
		}

		return nil, fmt.Errorf("yahoo chart error for %s: %s", ticker, chartErr.Get("description").String())
	}

	series := parseChart(gjson.GetBytes(body, "chart.result.0"), ticker, start, end, interval)
	if series.Empty() {
		return nil, fmt.Errorf("history for %s: %w", ticker, ErrNoData)
	}

	p.logger.Debug("Fetched history", zap.String("ticker", ticker), zap.Int("bars", len(series.Timestamps)))

	return series, nil
}

// parseChart converts a chart result into a series. Bars outside [start, end] by
// exchange-local date and bars without any price are dropped.
func parseChart(result gjson.Result, ticker string, start, end time.Time, interval Interval) *PriceSeries {
	loc := chartLocation(result.Get("meta"))
	firstDay := start.Format("2006-01-02")
	lastDay := end.Format("2006-01-02")

	type column struct {
		header ColumnHeader
		values []gjson.Result
	}

	var columns []column

	for _, field := range yahooChartFields {
		v := result.Get(field.path)
		if !v.IsArray() {
			continue
		}

		columns = append(columns, column{header: ColumnHeader{field.label, ticker}, values: v.Array()})
	}

	series := &PriceSeries{
		Intraday:   interval.Intraday(),
		Timestamps: nil,
		Columns:    make([]ColumnHeader, len(columns)),
		Values:     make([][]optional.Option[float64], len(columns)),
	}

	for c, col := range columns {
		series.Columns[c] = col.header
	}

	for i, ts := range result.Get("timestamp").Array() {
		at := time.Unix(ts.Int(), 0).In(loc)

		day := at.Format("2006-01-02")
		if day < firstDay || day > lastDay {
			continue
		}

		row := make([]optional.Option[float64], len(columns))
		priced := false

		for c, col := range columns {
			row[c] = optional.None[float64]()

			if i < len(col.values) && col.values[i].Type == gjson.Number {
				row[c] = optional.Some(col.values[i].Float())

				if col.header[0] != "Volume" {
					priced = true
				}
			}
		}

		if !priced {
			continue
		}

		if !series.Intraday {
			at = time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC)
		}

		series.Timestamps = append(series.Timestamps, at)

		for c := range columns {
			series.Values[c] = append(series.Values[c], row[c])
		}
	}

	return series
}

func chartLocation(meta gjson.Result) *time.Location {
	if name := meta.Get("exchangeTimezoneName").String(); name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}

	offset := int(meta.Get("gmtoffset").Int())
	if offset == 0 {
		return time.UTC
	}

	return time.FixedZone(meta.Get("timezone").String(), offset)
}
