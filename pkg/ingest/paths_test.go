package ingest

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-ingest/pkg/ingest/provider"
	"github.com/stretchr/testify/suite"
)

type PathsTestSuite struct {
	suite.Suite
	day time.Time
}

func TestPathsSuite(t *testing.T) {
	suite.Run(t, new(PathsTestSuite))
}

func (suite *PathsTestSuite) SetupTest() {
	suite.day = time.Date(2024, 6, 15, 18, 0, 0, 0, time.UTC)
}

func (suite *PathsTestSuite) TestIndexDirName() {
	suite.Equal("NIFTY_50", IndexDirName("NIFTY 50"))
	suite.Equal("NIFTY_NEXT_50", IndexDirName("nifty  next 50"))
	suite.Equal("NIFTY_BANK", IndexDirName("NIFTY_BANK"))
}

func (suite *PathsTestSuite) TestIndividualPath() {
	params := RunParams{Index: "NIFTY 50", Dataset: DatasetTechnical, Mode: OutputIndividual}

	suite.Equal(
		filepath.Join("data", "raw", "technical", "NIFTY_50", "INFY_2024-06-15.csv"),
		IndividualPath(DefaultOutputDir, params, "INFY", suite.day),
	)
}

func (suite *PathsTestSuite) TestCombinedPath() {
	testCases := []struct {
		name     string
		params   RunParams
		expected string
	}{
		{
			name:     "overview",
			params:   RunParams{Index: "NIFTY 50", Dataset: DatasetOverview, Mode: OutputCombined},
			expected: filepath.Join("out", "fundamental", "NIFTY_50", "fundamental_data_NIFTY_50_overview_2024-06-15.csv"),
		},
		{
			name:     "detailed",
			params:   RunParams{Index: "NIFTY BANK", Dataset: DatasetDetailed, Frequency: provider.FrequencyQuarterly, Years: 3, Mode: OutputCombined},
			expected: filepath.Join("out", "fundamental", "NIFTY_BANK", "fundamental_data_NIFTY_BANK_quarterly_3yrs_2024-06-15.csv"),
		},
		{
			name:     "technical has no suffix",
			params:   RunParams{Index: "NIFTY 50", Dataset: DatasetTechnical, Interval: provider.IntervalOneDay, Mode: OutputCombined},
			expected: filepath.Join("out", "technical", "NIFTY_50", "technical_data_NIFTY_50_2024-06-15.csv"),
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.Equal(tc.expected, CombinedPath("out", tc.params, suite.day))
		})
	}
}
