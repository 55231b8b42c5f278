package table

import (
	"math"
	"testing"

	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/suite"
)

type TableTestSuite struct {
	suite.Suite
}

func TestTableSuite(t *testing.T) {
	suite.Run(t, new(TableTestSuite))
}

func (suite *TableTestSuite) TestCellRendering() {
	tests := []struct {
		name     string
		cell     Cell
		known    bool
		expected string
	}{
		{name: "text", cell: Text("Infosys"), known: true, expected: "Infosys"},
		{name: "large number stays in plain notation", cell: Number(6.45e12), known: true, expected: "6450000000000"},
		{name: "fraction", cell: Number(0.2734), known: true, expected: "0.2734"},
		{name: "integer", cell: Integer(1200345), known: true, expected: "1200345"},
		{name: "NaN is unknown", cell: Number(math.NaN()), known: false, expected: ""},
		{name: "infinity is unknown", cell: Number(math.Inf(1)), known: false, expected: ""},
		{name: "unknown", cell: Unknown(), known: false, expected: ""},
		{name: "optional float some", cell: FromOptionalFloat(optional.Some(25.5)), known: true, expected: "25.5"},
		{name: "optional float none", cell: FromOptionalFloat(optional.None[float64]()), known: false, expected: ""},
		{name: "optional string none", cell: FromOptionalString(optional.None[string]()), known: false, expected: ""},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			suite.Equal(tc.known, tc.cell.Known())
			suite.Equal(tc.expected, tc.cell.String())
		})
	}
}

func (suite *TableTestSuite) TestAppendAddsMissingColumnsSorted() {
	tbl := New("Date")
	tbl.Append(Row{"Date": Text("2024-01-01"), "b": Integer(2), "a": Integer(1)})

	suite.Equal([]string{"Date", "a", "b"}, tbl.Columns())
	suite.Equal(1, tbl.Len())
	suite.False(tbl.Empty())
}

func (suite *TableTestSuite) TestEmpty() {
	var nilTable *Table
	suite.True(nilTable.Empty())
	suite.True(New("a").Empty())
}

func (suite *TableTestSuite) TestWithColumnAndMoveFront() {
	tbl := New("Open", "Close")
	tbl.Append(Row{"Open": Number(10), "Close": Number(11)})
	tbl.Append(Row{"Open": Number(12), "Close": Number(13)})

	tbl.WithColumn("Symbol", Text("INFY")).MoveFront("Symbol", "missing")

	suite.Equal([]string{"Symbol", "Open", "Close"}, tbl.Columns())
	suite.Equal([]string{"INFY", "INFY"}, columnStrings(tbl, "Symbol"))
}

func (suite *TableTestSuite) TestFilterAndSort() {
	tbl := New("Date", "v")
	tbl.Append(Row{"Date": Text("2023-03-31"), "v": Integer(3)})
	tbl.Append(Row{"Date": Text("2021-03-31"), "v": Integer(1)})
	tbl.Append(Row{"v": Integer(9)})
	tbl.Append(Row{"Date": Text("2022-03-31"), "v": Integer(2)})

	filtered := tbl.Filter(func(r Row) bool { return r.Get("v").String() != "3" })
	suite.Equal(3, filtered.Len())
	suite.Equal(4, tbl.Len())

	tbl.SortBy("Date")
	suite.Equal([]string{"2021-03-31", "2022-03-31", "2023-03-31", ""}, columnStrings(tbl, "Date"))
}

func (suite *TableTestSuite) TestRecords() {
	tbl := New("Symbol", "name", "peRatio")
	tbl.Append(Row{"Symbol": Text("INFY"), "name": Text("Infosys Limited")})

	suite.Equal([][]string{
		{"Symbol", "name", "peRatio"},
		{"INFY", "Infosys Limited", ""},
	}, tbl.Records())
}

func (suite *TableTestSuite) TestConcatUnionsColumnsInFirstSeenOrder() {
	first := New("Symbol", "a")
	first.Append(Row{"Symbol": Text("TCS"), "a": Integer(1)})

	second := New("Symbol", "b", "a")
	second.Append(Row{"Symbol": Text("INFY"), "b": Integer(2), "a": Integer(3)})

	combined := Concat(first, nil, second)

	suite.Equal([]string{"Symbol", "a", "b"}, combined.Columns())
	suite.Equal(2, combined.Len())
	suite.Equal([][]string{
		{"Symbol", "a", "b"},
		{"TCS", "1", ""},
		{"INFY", "3", "2"},
	}, combined.Records())
}

func (suite *TableTestSuite) TestConcatDoesNotAliasInputs() {
	first := New("a")
	first.Append(Row{"a": Integer(1)})

	combined := Concat(first)
	combined.WithColumn("a", Integer(5))

	suite.Equal("1", first.Row(0).Get("a").String())
}

func (suite *TableTestSuite) TestOuterJoinKeepsPeriodsMissingFromOneSide() {
	income := New("Date", "IS_Revenue")
	income.Append(Row{"Date": Text("2022-03-31"), "IS_Revenue": Number(100)})
	income.Append(Row{"Date": Text("2023-03-31"), "IS_Revenue": Number(120)})

	balance := New("Date", "BS_Total Assets")
	balance.Append(Row{"Date": Text("2023-03-31"), "BS_Total Assets": Number(900)})
	balance.Append(Row{"Date": Text("2024-03-31"), "BS_Total Assets": Number(950)})
	balance.Append(Row{"BS_Total Assets": Number(1)})

	joined := OuterJoin("Date", income, balance)

	suite.Equal([]string{"Date", "IS_Revenue", "BS_Total Assets"}, joined.Columns())
	suite.Equal([][]string{
		{"Date", "IS_Revenue", "BS_Total Assets"},
		{"2022-03-31", "100", ""},
		{"2023-03-31", "120", "900"},
		{"2024-03-31", "", "950"},
	}, joined.Records())
}

func (suite *TableTestSuite) TestOuterJoinKnownValueWins() {
	a := New("Date", "x")
	a.Append(Row{"Date": Text("2023-03-31"), "x": Number(1)})

	b := New("Date", "x")
	b.Append(Row{"Date": Text("2023-03-31"), "x": Unknown()})

	joined := OuterJoin("Date", a, b)
	suite.Equal("1", joined.Row(0).Get("x").String())
}

func columnStrings(tbl *Table, column string) []string {
	out := make([]string, tbl.Len())
	for i := range out {
		out[i] = tbl.Row(i).Get(column).String()
	}

	return out
}
