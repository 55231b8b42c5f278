package provider

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/moznion/go-optional"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Line items requested per statement, in output order.
var yahooStatementKeys = map[StatementKind][]string{
	IncomeStatement: {
		"TotalRevenue", "CostOfRevenue", "GrossProfit", "ResearchAndDevelopment",
		"SellingGeneralAndAdministration", "OperatingExpense", "OperatingIncome",
		"InterestExpense", "PretaxIncome", "TaxProvision", "NetIncome",
		"NetIncomeCommonStockholders", "BasicEPS", "DilutedEPS", "EBIT", "EBITDA",
	},
	BalanceSheet: {
		"TotalAssets", "CurrentAssets", "CashAndCashEquivalents", "AccountsReceivable",
		"Inventory", "NetPPE", "Goodwill", "TotalLiabilitiesNetMinorityInterest",
		"CurrentLiabilities", "LongTermDebt", "TotalDebt", "StockholdersEquity",
		"RetainedEarnings", "CommonStock", "WorkingCapital", "ShareIssued",
	},
	CashFlow: {
		"OperatingCashFlow", "InvestingCashFlow", "FinancingCashFlow", "FreeCashFlow",
		"CapitalExpenditure", "DepreciationAndAmortization", "ChangeInWorkingCapital",
		"IssuanceOfDebt", "RepaymentOfDebt", "RepurchaseOfCapitalStock", "CashDividendsPaid",
		"BeginningCashPosition", "EndCashPosition",
	},
}

// Earliest period requested when the caller does not restrict the range.
var yahooTimeseriesEpoch = time.Date(2016, 12, 31, 0, 0, 0, 0, time.UTC)

// Statements implements MarketDataProvider using the fundamentals time series endpoint.
func (p *YahooProvider) Statements(ctx context.Context, ticker string, frequency Frequency, since time.Time) ([]Statement, error) {
	prefix, err := yahooFrequencyPrefix(frequency)
	if err != nil {
		return nil, err
	}

	if since.IsZero() {
		since = yahooTimeseriesEpoch
	}

	var statements []Statement

	for _, kind := range []StatementKind{IncomeStatement, BalanceSheet, CashFlow} {
		statement, err := p.statement(ctx, ticker, kind, prefix, since)
		if err != nil {
			if errors.Is(err, ErrNoData) {
				p.logger.Debug("Statement not available", zap.String("ticker", ticker), zap.String("statement", string(kind)))

				continue
			}

			return nil, err
		}

		statements = append(statements, statement)
	}

	if len(statements) == 0 {
		return nil, fmt.Errorf("statements for %s: %w", ticker, ErrNoData)
	}

	return statements, nil
}

func (p *YahooProvider) statement(ctx context.Context, ticker string, kind StatementKind, prefix string, since time.Time) (Statement, error) {
	keys := yahooStatementKeys[kind]
	types := make([]string, len(keys))

	for i, key := range keys {
		types[i] = prefix + key
	}

	query := url.Values{
		"symbol":  []string{ticker},
		"type":    []string{strings.Join(types, ",")},
		"period1": []string{strconv.FormatInt(since.Unix(), 10)},
		"period2": []string{strconv.FormatInt(p.now().Unix(), 10)},
	}
	rawURL := fmt.Sprintf("%s/ws/fundamentals-timeseries/v1/finance/timeseries/%s?%s",
		p.baseURL, url.PathEscape(ticker), query.Encode())

	body, err := get(ctx, p.client, rawURL, nil)
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.NotFound() {
			return Statement{}, ErrNoData
		}

		return Statement{}, fmt.Errorf("failed to fetch %s statement for %s: %w", kind, ticker, err)
	}

	if !gjson.ValidBytes(body) {
		return Statement{}, fmt.Errorf("%s statement for %s: %w", kind, ticker, ErrMalformed)
	}

	statement, ok := parseTimeseries(gjson.GetBytes(body, "timeseries.result"), kind, prefix, keys)
	if !ok {
		return Statement{}, ErrNoData
	}

	return statement, nil
}

// parseTimeseries folds the per-line-item series into a statement. It reports false
// when no line item has a value.
func parseTimeseries(results gjson.Result, kind StatementKind, prefix string, keys []string) (Statement, bool) {
	byKey := make(map[string]map[string]float64)
	periodSet := make(map[string]time.Time)

	results.ForEach(func(_, result gjson.Result) bool {
		typ := result.Get("meta.type.0").String()
		if !strings.HasPrefix(typ, prefix) {
			return true
		}

		values := make(map[string]float64)

		result.Get(typ).ForEach(func(_, entry gjson.Result) bool {
			raw := entry.Get("reportedValue.raw")
			asOf := entry.Get("asOfDate").String()

			if raw.Type != gjson.Number || asOf == "" {
				return true
			}

			date, err := time.Parse("2006-01-02", asOf)
			if err != nil {
				return true
			}

			values[asOf] = raw.Float()
			periodSet[asOf] = date

			return true
		})

		if len(values) > 0 {
			byKey[strings.TrimPrefix(typ, prefix)] = values
		}

		return true
	})

	if len(byKey) == 0 {
		return Statement{}, false
	}

	dates := make([]string, 0, len(periodSet))
	for asOf := range periodSet {
		dates = append(dates, asOf)
	}

	// Newest period first, matching the usual statement layout.
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	statement := Statement{
		Kind:    kind,
		Periods: make([]time.Time, len(dates)),
		Items:   nil,
	}

	for i, asOf := range dates {
		statement.Periods[i] = periodSet[asOf]
	}

	for _, key := range keys {
		values, ok := byKey[key]
		if !ok {
			continue
		}

		item := LineItem{Name: SplitCamelCase(key), Values: make([]optional.Option[float64], len(dates))}
		for i, asOf := range dates {
			if v, ok := values[asOf]; ok {
				item.Values[i] = optional.Some(v)
			} else {
				item.Values[i] = optional.None[float64]()
			}
		}

		statement.Items = append(statement.Items, item)
	}

	return statement, true
}

func yahooFrequencyPrefix(frequency Frequency) (string, error) {
	switch frequency {
	case FrequencyAnnual:
		return "annual", nil
	case FrequencyQuarterly:
		return "quarterly", nil
	default:
		return "", fmt.Errorf("unsupported frequency %q", frequency)
	}
}

// SplitCamelCase turns "NetIncomeCommonStockholders" into "Net Income Common Stockholders".
// Acronyms stay together: "BasicEPS" becomes "Basic EPS".
func SplitCamelCase(s string) string {
	runes := []rune(s)

	var b strings.Builder

	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteRune(' ')
			}
		}

		b.WriteRune(r)
	}

	return b.String()
}
