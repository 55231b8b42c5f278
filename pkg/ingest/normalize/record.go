package normalize

import (
	"github.com/rxtech-lab/argo-ingest/pkg/ingest/provider"
	"github.com/rxtech-lab/argo-ingest/pkg/ingest/table"
)

// Column names shared by every record shape.
const (
	ColumnSymbol    = "Symbol"
	ColumnDate      = "Date"
	ColumnDatetime  = "Datetime"
	ColumnFrequency = "Frequency"
)

// Prefixes applied to statement line items when statements are joined.
var statementPrefixes = map[provider.StatementKind]string{
	provider.IncomeStatement: "IS_",
	provider.BalanceSheet:    "BS_",
	provider.CashFlow:        "CF_",
}

// statementOrder fixes the column order of the joined record.
var statementOrder = []provider.StatementKind{
	provider.IncomeStatement,
	provider.BalanceSheet,
	provider.CashFlow,
}

// Transpose lays a statement out with one row per period and one column per line item.
// The period end goes in the Date column.
func Transpose(statement provider.Statement) *table.Table {
	columns := make([]string, 0, len(statement.Items)+1)
	columns = append(columns, ColumnDate)

	for _, item := range statement.Items {
		columns = append(columns, item.Name)
	}

	tbl := table.New(columns...)

	for p, period := range statement.Periods {
		row := table.Row{ColumnDate: table.Text(FormatDate(period))}

		for _, item := range statement.Items {
			if p < len(item.Values) {
				row[item.Name] = table.FromOptionalFloat(item.Values[p])
			} else {
				row[item.Name] = table.Unknown()
			}
		}

		tbl.Append(row)
	}

	return tbl
}

// PrefixColumns returns a copy of tbl with prefix prepended to every column except keep.
func PrefixColumns(tbl *table.Table, prefix string, keep ...string) *table.Table {
	kept := make(map[string]bool, len(keep))
	for _, k := range keep {
		kept[k] = true
	}

	rename := func(column string) string {
		if kept[column] {
			return column
		}

		return prefix + column
	}

	columns := tbl.Columns()
	renamed := make([]string, len(columns))

	for i, column := range columns {
		renamed[i] = rename(column)
	}

	out := table.New(renamed...)

	for _, row := range tbl.Rows() {
		next := make(table.Row, len(row))
		for column, cell := range row {
			next[rename(column)] = cell
		}

		out.Append(next)
	}

	return out
}

// FlattenHeaders keeps the outermost label of each header.
func FlattenHeaders(headers []provider.ColumnHeader) []string {
	out := make([]string, len(headers))

	for i, header := range headers {
		if len(header) > 0 {
			out[i] = header[0]
		}
	}

	return out
}

// OverviewRecord builds the single-row overview record.
func OverviewRecord(symbol string, overview *provider.Overview) *table.Table {
	tbl := table.New(
		"symbol", "name", "sector", "industry", "marketCap", "peRatio", "eps", "bookValue",
		"priceToBook", "dividendYield", "returnOnEquity", "debtToEquity", "profitMargins",
		"operatingMargins",
	)

	tbl.Append(table.Row{
		"symbol":           table.Text(symbol),
		"name":             table.FromOptionalString(overview.Name),
		"sector":           table.FromOptionalString(overview.Sector),
		"industry":         table.FromOptionalString(overview.Industry),
		"marketCap":        table.FromOptionalFloat(overview.MarketCap),
		"peRatio":          table.FromOptionalFloat(overview.PERatio),
		"eps":              table.FromOptionalFloat(overview.EPS),
		"bookValue":        table.FromOptionalFloat(overview.BookValue),
		"priceToBook":      table.FromOptionalFloat(overview.PriceToBook),
		"dividendYield":    table.FromOptionalFloat(overview.DividendYield),
		"returnOnEquity":   table.FromOptionalFloat(overview.ReturnOnEquity),
		"debtToEquity":     table.FromOptionalFloat(overview.DebtToEquity),
		"profitMargins":    table.FromOptionalFloat(overview.ProfitMargins),
		"operatingMargins": table.FromOptionalFloat(overview.OperatingMargins),
	})

	return tbl
}

// DetailedRecord joins the statements into one row per period end. Periods before
// cutoffYear are dropped, rows are sorted by date and tagged with the symbol and frequency.
// The result is empty when no statement has a period in range.
func DetailedRecord(symbol string, frequency provider.Frequency, statements []provider.Statement, cutoffYear int) *table.Table {
	byKind := make(map[provider.StatementKind]provider.Statement, len(statements))
	for _, statement := range statements {
		byKind[statement.Kind] = statement
	}

	parts := make([]*table.Table, 0, len(statementOrder))

	for _, kind := range statementOrder {
		statement, ok := byKind[kind]
		if !ok {
			continue
		}

		filtered := FilterSince(Transpose(statement), ColumnDate, cutoffYear)
		parts = append(parts, PrefixColumns(filtered, statementPrefixes[kind], ColumnDate))
	}

	joined := table.OuterJoin(ColumnDate, parts...)
	if joined.Empty() {
		return joined
	}

	return joined.
		SortBy(ColumnDate).
		WithColumn(ColumnSymbol, table.Text(symbol)).
		WithColumn(ColumnFrequency, table.Text(frequency.Label())).
		MoveFront(ColumnDate)
}

// HistoricalRecord builds one row per bar: Date (or Datetime for intraday series),
// the flattened price columns, then Symbol.
func HistoricalRecord(symbol string, series *provider.PriceSeries) *table.Table {
	timeColumn := ColumnDate
	layout := DateLayout

	if series.Intraday {
		timeColumn = ColumnDatetime
		layout = DateTimeLayout
	}

	names := FlattenHeaders(series.Columns)
	tbl := table.New(append([]string{timeColumn}, names...)...)

	for i, ts := range series.Timestamps {
		row := table.Row{timeColumn: table.Text(ts.Format(layout))}

		for c, name := range names {
			if c < len(series.Values) && i < len(series.Values[c]) {
				row[name] = table.FromOptionalFloat(series.Values[c][i])
			} else {
				row[name] = table.Unknown()
			}
		}

		tbl.Append(row)
	}

	return tbl.WithColumn(ColumnSymbol, table.Text(symbol))
}
