package writer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/rxtech-lab/argo-ingest/pkg/errors"
	"github.com/rxtech-lab/argo-ingest/pkg/ingest/table"
	"github.com/stretchr/testify/suite"
)

type CSVWriterTestSuite struct {
	suite.Suite
	dir    string
	writer *CSVWriter
}

func TestCSVWriterSuite(t *testing.T) {
	suite.Run(t, new(CSVWriterTestSuite))
}

func (suite *CSVWriterTestSuite) SetupTest() {
	suite.dir = suite.T().TempDir()
	suite.writer = NewCSVWriter()
}

type overviewRow struct {
	Symbol    string  `csv:"symbol"`
	Name      string  `csv:"name"`
	MarketCap float64 `csv:"marketCap"`
	PERatio   string  `csv:"peRatio"`
}

func overviewTable(symbol, name string) *table.Table {
	tbl := table.New("symbol", "name", "marketCap", "peRatio")
	tbl.Append(table.Row{
		"symbol":    table.Text(symbol),
		"name":      table.Text(name),
		"marketCap": table.Number(6.45e12),
		"peRatio":   table.Unknown(),
	})

	return tbl
}

func (suite *CSVWriterTestSuite) readOverview(path string) []overviewRow {
	file, err := os.Open(path)
	suite.Require().NoError(err)

	defer file.Close()

	var rows []overviewRow
	suite.Require().NoError(gocsv.UnmarshalFile(file, &rows))

	return rows
}

func (suite *CSVWriterTestSuite) TestWriteCreatesParentDirectories() {
	path := filepath.Join(suite.dir, "fundamental", "NIFTY_50", "INFY_2024-06-15.csv")

	err := suite.writer.Write(overviewTable("INFY", "Infosys Limited"), path)
	suite.Require().NoError(err)

	rows := suite.readOverview(path)
	suite.Require().Len(rows, 1)
	suite.Equal("INFY", rows[0].Symbol)
	suite.Equal("Infosys Limited", rows[0].Name)
	suite.Equal(6.45e12, rows[0].MarketCap)
	suite.Equal("", rows[0].PERatio)
}

func (suite *CSVWriterTestSuite) TestWriteHeaderOrderAndNoIndexColumn() {
	path := filepath.Join(suite.dir, "out.csv")

	suite.Require().NoError(suite.writer.Write(overviewTable("TCS", "Tata, Consultancy"), path))

	content, err := os.ReadFile(path)
	suite.Require().NoError(err)
	suite.Equal("symbol,name,marketCap,peRatio\nTCS,\"Tata, Consultancy\",6450000000000,\n", string(content))
}

func (suite *CSVWriterTestSuite) TestWriteOverwritesExistingFile() {
	path := filepath.Join(suite.dir, "out.csv")

	suite.Require().NoError(suite.writer.Write(overviewTable("TCS", "first"), path))
	suite.Require().NoError(suite.writer.Write(overviewTable("INFY", "second"), path))

	rows := suite.readOverview(path)
	suite.Require().Len(rows, 1)
	suite.Equal("INFY", rows[0].Symbol)
}

func (suite *CSVWriterTestSuite) TestWriteLeavesNoTemporaryFiles() {
	path := filepath.Join(suite.dir, "out.csv")
	suite.Require().NoError(suite.writer.Write(overviewTable("TCS", "x"), path))

	entries, err := os.ReadDir(suite.dir)
	suite.Require().NoError(err)
	suite.Len(entries, 1)
	suite.Equal("out.csv", entries[0].Name())
}

func (suite *CSVWriterTestSuite) TestWriteFailsWhenParentIsAFile() {
	blocker := filepath.Join(suite.dir, "blocker")
	suite.Require().NoError(os.WriteFile(blocker, []byte("x"), 0644))

	err := suite.writer.Write(overviewTable("TCS", "x"), filepath.Join(blocker, "out.csv"))
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeOutputWriteFailed))
}

func (suite *CSVWriterTestSuite) TestWriteNilTable() {
	err := suite.writer.Write(nil, filepath.Join(suite.dir, "out.csv"))
	suite.True(errors.HasCode(err, errors.ErrCodeOutputWriteFailed))
}
