package provider

import (
	"testing"

	"github.com/polygon-io/client-go/rest/models"
	"github.com/stretchr/testify/suite"
)

type IntervalTestSuite struct {
	suite.Suite
}

func TestIntervalSuite(t *testing.T) {
	suite.Run(t, new(IntervalTestSuite))
}

func (suite *IntervalTestSuite) TestMultiplier() {
	tests := []struct {
		interval Interval
		expected int
	}{
		{IntervalOneMinute, 1},
		{IntervalTwoMinutes, 2},
		{IntervalFiveMinutes, 5},
		{IntervalFifteenMinutes, 15},
		{IntervalThirtyMinutes, 30},
		{IntervalOneHour, 1},
		{IntervalOneDay, 1},
		{IntervalFiveDays, 5},
		{IntervalOneWeek, 1},
		{IntervalOneMonth, 1},
		{IntervalThreeMonths, 3},
	}

	for _, tc := range tests {
		suite.Run(string(tc.interval), func() {
			suite.Equal(tc.expected, tc.interval.Multiplier())
		})
	}
}

func (suite *IntervalTestSuite) TestTimespan() {
	tests := []struct {
		interval Interval
		expected models.Timespan
	}{
		{IntervalOneMinute, models.Minute},
		{IntervalThirtyMinutes, models.Minute},
		{IntervalOneHour, models.Hour},
		{IntervalOneDay, models.Day},
		{IntervalFiveDays, models.Day},
		{IntervalOneWeek, models.Week},
		{IntervalOneMonth, models.Month},
		{IntervalThreeMonths, models.Month},
		{Interval("unknown"), models.Day},
	}

	for _, tc := range tests {
		suite.Run(string(tc.interval), func() {
			suite.Equal(tc.expected, tc.interval.Timespan())
		})
	}
}

func (suite *IntervalTestSuite) TestIntraday() {
	suite.True(IntervalFiveMinutes.Intraday())
	suite.True(IntervalOneHour.Intraday())
	suite.False(IntervalOneDay.Intraday())
	suite.False(IntervalOneWeek.Intraday())
}

func (suite *IntervalTestSuite) TestParseInterval() {
	tests := []struct {
		input    string
		expected Interval
		wantErr  bool
	}{
		{input: "1d", expected: IntervalOneDay},
		{input: " 15m ", expected: IntervalFifteenMinutes},
		{input: "60m", expected: IntervalOneHour},
		{input: "1w", expected: IntervalOneWeek},
		{input: "1M", expected: IntervalOneMonth},
		{input: "7d", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tc := range tests {
		suite.Run(tc.input, func() {
			interval, err := ParseInterval(tc.input)
			if tc.wantErr {
				suite.Error(err)

				return
			}

			suite.NoError(err)
			suite.Equal(tc.expected, interval)
		})
	}
}

func (suite *IntervalTestSuite) TestParseFrequency() {
	tests := []struct {
		input    string
		expected Frequency
		wantErr  bool
	}{
		{input: "annual", expected: FrequencyAnnual},
		{input: "annually", expected: FrequencyAnnual},
		{input: "Quarterly", expected: FrequencyQuarterly},
		{input: "monthly", wantErr: true},
	}

	for _, tc := range tests {
		suite.Run(tc.input, func() {
			frequency, err := ParseFrequency(tc.input)
			if tc.wantErr {
				suite.Error(err)

				return
			}

			suite.NoError(err)
			suite.Equal(tc.expected, frequency)
		})
	}
}

func (suite *IntervalTestSuite) TestFrequencyLabel() {
	suite.Equal("Annual", FrequencyAnnual.Label())
	suite.Equal("Quarterly", FrequencyQuarterly.Label())
}
