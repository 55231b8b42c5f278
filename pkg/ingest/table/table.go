// Package table holds the in-memory record shape passed between fetchers,
// the collector and the output writer: an ordered set of named columns and
// rows of optional cells.
package table

import (
	"math"
	"sort"
	"strconv"

	"github.com/moznion/go-optional"
	"github.com/shopspring/decimal"
)

// Cell is a single value of a row. An unknown cell is rendered as an empty field.
type Cell struct {
	value optional.Option[string]
}

// Text creates a known text cell.
func Text(s string) Cell {
	return Cell{value: optional.Some(s)}
}

// Number creates a numeric cell. NaN and infinities become unknown.
func Number(v float64) Cell {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Unknown()
	}

	return Cell{value: optional.Some(decimal.NewFromFloat(v).String())}
}

// Integer creates an integral numeric cell.
func Integer(v int64) Cell {
	return Cell{value: optional.Some(strconv.FormatInt(v, 10))}
}

// Unknown creates a cell with no value.
func Unknown() Cell {
	return Cell{value: optional.None[string]()}
}

// FromOptionalFloat converts an optional provider value into a cell.
func FromOptionalFloat(v optional.Option[float64]) Cell {
	if v.IsNone() {
		return Unknown()
	}

	return Number(v.Unwrap())
}

// FromOptionalString converts an optional provider value into a cell.
func FromOptionalString(v optional.Option[string]) Cell {
	if v.IsNone() {
		return Unknown()
	}

	return Text(v.Unwrap())
}

// Known reports whether the cell has a value.
func (c Cell) Known() bool {
	return c.value.IsSome()
}

// String returns the rendered value, or an empty string for unknown cells.
func (c Cell) String() string {
	return c.value.TakeOr("")
}

// Row maps column names to cells. Missing columns read as unknown.
type Row map[string]Cell

// Get returns the cell for column, or an unknown cell.
func (r Row) Get(column string) Cell {
	cell, ok := r[column]
	if !ok {
		return Unknown()
	}

	return cell
}

// Table is an ordered list of rows sharing an ordered list of columns.
type Table struct {
	columns []string
	index   map[string]int
	rows    []Row
}

// New creates an empty table with the given columns. Duplicate names are ignored.
func New(columns ...string) *Table {
	t := &Table{
		columns: nil,
		index:   make(map[string]int, len(columns)),
		rows:    nil,
	}

	for _, column := range columns {
		t.AddColumn(column)
	}

	return t
}

// Columns returns a copy of the column names in order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)

	return out
}

// HasColumn reports whether column exists.
func (t *Table) HasColumn(column string) bool {
	_, ok := t.index[column]

	return ok
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool {
	return t == nil || len(t.rows) == 0
}

// AddColumn appends a column if it does not exist yet.
func (t *Table) AddColumn(column string) {
	if _, ok := t.index[column]; ok {
		return
	}

	t.index[column] = len(t.columns)
	t.columns = append(t.columns, column)
}

// Append adds a row. Columns the table does not know yet are added in sorted order
// so the result does not depend on map iteration.
func (t *Table) Append(row Row) {
	var missing []string

	for column := range row {
		if !t.HasColumn(column) {
			missing = append(missing, column)
		}
	}

	sort.Strings(missing)

	for _, column := range missing {
		t.AddColumn(column)
	}

	stored := make(Row, len(row))
	for column, cell := range row {
		stored[column] = cell
	}

	t.rows = append(t.rows, stored)
}

// Rows returns the rows in order. The returned rows must not be modified.
func (t *Table) Rows() []Row {
	return t.rows
}

// Row returns the i-th row.
func (t *Table) Row(i int) Row {
	return t.rows[i]
}

// WithColumn sets column to the same cell on every row, adding the column if needed.
func (t *Table) WithColumn(column string, cell Cell) *Table {
	t.AddColumn(column)

	for _, row := range t.rows {
		row[column] = cell
	}

	return t
}

// MoveFront reorders the columns so that the given ones come first, in the given order.
// Unknown names are ignored.
func (t *Table) MoveFront(columns ...string) *Table {
	front := make([]string, 0, len(columns))
	seen := make(map[string]bool, len(columns))

	for _, column := range columns {
		if t.HasColumn(column) && !seen[column] {
			front = append(front, column)
			seen[column] = true
		}
	}

	reordered := front
	for _, column := range t.columns {
		if !seen[column] {
			reordered = append(reordered, column)
		}
	}

	t.columns = reordered
	for i, column := range t.columns {
		t.index[column] = i
	}

	return t
}

// Filter returns a new table with the rows for which keep returns true.
func (t *Table) Filter(keep func(Row) bool) *Table {
	out := New(t.columns...)

	for _, row := range t.rows {
		if keep(row) {
			out.rows = append(out.rows, row)
		}
	}

	return out
}

// SortBy sorts rows by the string value of column. The sort is stable and
// unknown cells sort last.
func (t *Table) SortBy(column string) *Table {
	sort.SliceStable(t.rows, func(i, j int) bool {
		a, b := t.rows[i].Get(column), t.rows[j].Get(column)
		if !a.Known() {
			return false
		}

		if !b.Known() {
			return true
		}

		return a.String() < b.String()
	})

	return t
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := New(t.columns...)

	for _, row := range t.rows {
		out.Append(row)
	}

	return out
}

// Records renders the header followed by every row, in column order.
func (t *Table) Records() [][]string {
	records := make([][]string, 0, len(t.rows)+1)
	records = append(records, t.Columns())

	for _, row := range t.rows {
		record := make([]string, len(t.columns))
		for i, column := range t.columns {
			record[i] = row.Get(column).String()
		}

		records = append(records, record)
	}

	return records
}

// Concat stacks tables row-wise. The result carries the union of the columns in
// first-seen order; cells a table does not have are unknown.
func Concat(tables ...*Table) *Table {
	out := New()

	for _, t := range tables {
		if t == nil {
			continue
		}

		for _, column := range t.columns {
			out.AddColumn(column)
		}

		out.rows = append(out.rows, t.Clone().rows...)
	}

	return out
}

// OuterJoin merges tables on the key column. Every key present in any table yields
// one row; columns a table contributes are unknown for keys it lacks. Rows whose key
// is unknown are dropped. Output rows follow first-seen key order.
func OuterJoin(key string, tables ...*Table) *Table {
	out := New(key)
	byKey := make(map[string]Row)

	var order []string

	for _, t := range tables {
		if t == nil {
			continue
		}

		for _, column := range t.columns {
			out.AddColumn(column)
		}

		for _, row := range t.rows {
			k := row.Get(key)
			if !k.Known() {
				continue
			}

			merged, ok := byKey[k.String()]
			if !ok {
				merged = Row{key: k}
				byKey[k.String()] = merged
				order = append(order, k.String())
			}

			for column, cell := range row {
				if column == key {
					continue
				}

				if existing, ok := merged[column]; ok && existing.Known() && !cell.Known() {
					continue
				}

				merged[column] = cell
			}
		}
	}

	for _, k := range order {
		out.rows = append(out.rows, byKey[k])
	}

	return out
}
