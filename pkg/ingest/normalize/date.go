// Package normalize turns provider payloads into the flat tables written to disk
// and parses the loosely formatted dates users type.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/rxtech-lab/argo-ingest/pkg/errors"
	"github.com/rxtech-lab/argo-ingest/pkg/ingest/table"
)

// DateLayout is the standard date format used in file names and Date columns.
const DateLayout = "2006-01-02"

// DateTimeLayout is used for intraday Datetime columns.
const DateTimeLayout = "2006-01-02 15:04:05"

// Day-first layouts are tried before the lenient fallback so that 05-01-2024 is 5 January.
var dateLayouts = []string{
	DateLayout,
	"2-1-2006",
	"2/1/2006",
	"2.1.2006",
	"2006/1/2",
	"20060102",
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"Jan 2 2006",
	DateTimeLayout,
	time.RFC3339,
}

var daysAgoPattern = regexp.MustCompile(`^(\d+)\s+days?\s+ago$`)

// ParseDate parses a user-entered date. Relative words are resolved against now.
func ParseDate(input string, now time.Time) (time.Time, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return time.Time{}, errors.New(errors.ErrCodeInvalidDate, "could not parse date: empty input")
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	switch lower := strings.ToLower(s); {
	case lower == "today" || lower == "now":
		return today, nil
	case lower == "yesterday":
		return today.AddDate(0, 0, -1), nil
	case daysAgoPattern.MatchString(lower):
		n, err := strconv.Atoi(daysAgoPattern.FindStringSubmatch(lower)[1])
		if err != nil {
			return time.Time{}, errors.Wrapf(errors.ErrCodeInvalidDate, err, "could not parse date: %s", input)
		}

		return today.AddDate(0, 0, -n), nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}

	t, err := dateparse.ParseIn(s, time.UTC, dateparse.PreferMonthFirst(false))
	if err != nil {
		return time.Time{}, errors.Wrapf(errors.ErrCodeInvalidDate, err, "could not parse date: %s", input)
	}

	return t, nil
}

// StandardizeDate parses input and renders it as YYYY-MM-DD. Standard input is returned unchanged.
func StandardizeDate(input string, now time.Time) (string, error) {
	t, err := ParseDate(input, now)
	if err != nil {
		return "", err
	}

	return FormatDate(t), nil
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// CutoffYear is the earliest period-end year kept when looking back years from now.
func CutoffYear(now time.Time, years int) int {
	return now.Year() - years
}

// FilterSince keeps rows whose column holds a date in cutoffYear or later.
// Rows with a missing or unparseable date are dropped.
func FilterSince(tbl *table.Table, column string, cutoffYear int) *table.Table {
	return tbl.Filter(func(row table.Row) bool {
		cell := row.Get(column)
		if !cell.Known() {
			return false
		}

		t, err := time.Parse(DateLayout, cell.String())
		if err != nil {
			return false
		}

		return t.Year() >= cutoffYear
	})
}
