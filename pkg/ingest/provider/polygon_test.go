package provider

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/polygon-io/client-go/rest/models"
	"github.com/stretchr/testify/suite"
)

// mockPolygonAPIClient implements PolygonAPIClient for testing.
type mockPolygonAPIClient struct {
	iterator   PolygonAggsIterator
	details    *models.GetTickerDetailsResponse
	detailsErr error
	lastParams *models.ListAggsParams
}

func (m *mockPolygonAPIClient) ListAggs(_ context.Context, params *models.ListAggsParams, _ ...models.RequestOption) PolygonAggsIterator {
	m.lastParams = params

	return m.iterator
}

func (m *mockPolygonAPIClient) GetTickerDetails(_ context.Context, _ *models.GetTickerDetailsParams, _ ...models.RequestOption) (*models.GetTickerDetailsResponse, error) {
	return m.details, m.detailsErr
}

// mockPolygonIterator implements PolygonAggsIterator for testing.
type mockPolygonIterator struct {
	aggs  []models.Agg
	index int
	err   error
}

func (m *mockPolygonIterator) Next() bool {
	if m.index < len(m.aggs) {
		m.index++

		return true
	}

	return false
}

func (m *mockPolygonIterator) Item() models.Agg {
	if m.index > 0 && m.index <= len(m.aggs) {
		return m.aggs[m.index-1]
	}

	return models.Agg{}
}

func (m *mockPolygonIterator) Err() error {
	return m.err
}

type PolygonProviderTestSuite struct {
	suite.Suite
}

func TestPolygonProviderSuite(t *testing.T) {
	suite.Run(t, new(PolygonProviderTestSuite))
}

func (suite *PolygonProviderTestSuite) TestNewPolygonProvider() {
	provider, err := NewPolygonProvider("test-api-key", nil)
	suite.NoError(err)
	suite.NotNil(provider)
	suite.Equal("polygon", provider.Name())

	_, err = NewPolygonProvider("", nil)
	suite.Error(err)
}

func (suite *PolygonProviderTestSuite) TestHistory() {
	day := time.Date(2024, 1, 2, 5, 0, 0, 0, time.UTC)
	api := &mockPolygonAPIClient{
		iterator: &mockPolygonIterator{aggs: []models.Agg{
			{Open: 185.1, High: 186, Low: 183.9, Close: 185.6, Volume: 82488700, Timestamp: models.Millis(day)},
			{Open: 184.2, High: 185, Low: 183.4, Close: 184.3, Volume: 58414500, Timestamp: models.Millis(day.AddDate(0, 0, 1))},
		}},
	}
	provider := NewPolygonProviderWithAPI(api, nil)

	series, err := provider.History(context.Background(), "AAPL", day, day.AddDate(0, 0, 1), IntervalOneDay)
	suite.Require().NoError(err)

	suite.Len(series.Timestamps, 2)
	suite.Equal(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), series.Timestamps[0])
	suite.Equal(ColumnHeader{"Close", "AAPL"}, series.Columns[3])
	suite.Equal(185.6, series.Values[3][0].Unwrap())
	suite.Equal(58414500.0, series.Values[4][1].Unwrap())

	suite.Require().NotNil(api.lastParams)
	suite.Equal("AAPL", api.lastParams.Ticker)
	suite.Equal(models.Day, api.lastParams.Timespan)
	suite.Equal(1, api.lastParams.Multiplier)
}

func (suite *PolygonProviderTestSuite) TestHistoryEmptyIsNoData() {
	api := &mockPolygonAPIClient{iterator: &mockPolygonIterator{}}
	provider := NewPolygonProviderWithAPI(api, nil)

	_, err := provider.History(context.Background(), "AAPL", time.Now(), time.Now(), IntervalOneDay)
	suite.True(errors.Is(err, ErrNoData))
}

func (suite *PolygonProviderTestSuite) TestHistoryIteratorError() {
	api := &mockPolygonAPIClient{iterator: &mockPolygonIterator{err: errors.New("rate limited")}}
	provider := NewPolygonProviderWithAPI(api, nil)

	_, err := provider.History(context.Background(), "AAPL", time.Now(), time.Now(), IntervalOneDay)
	suite.Error(err)
	suite.False(errors.Is(err, ErrNoData))
}

func (suite *PolygonProviderTestSuite) TestHistoryNotFoundIsNoData() {
	//nolint:exhaustruct // only the status matters here
	notFound := &models.ErrorResponse{StatusCode: http.StatusNotFound}
	api := &mockPolygonAPIClient{iterator: &mockPolygonIterator{err: notFound}}
	provider := NewPolygonProviderWithAPI(api, nil)

	_, err := provider.History(context.Background(), "NOPE", time.Now(), time.Now(), IntervalOneDay)
	suite.True(errors.Is(err, ErrNoData))
}

func (suite *PolygonProviderTestSuite) TestOverview() {
	//nolint:exhaustruct // third-party struct with many optional fields
	api := &mockPolygonAPIClient{details: &models.GetTickerDetailsResponse{
		Results: models.Ticker{Ticker: "AAPL", Name: "Apple Inc.", MarketCap: 2.9e12, SICDescription: "ELECTRONIC COMPUTERS"},
	}}
	provider := NewPolygonProviderWithAPI(api, nil)

	overview, err := provider.Overview(context.Background(), "AAPL")
	suite.Require().NoError(err)
	suite.Equal("Apple Inc.", overview.Name.Unwrap())
	suite.Equal("ELECTRONIC COMPUTERS", overview.Industry.Unwrap())
	suite.Equal(2.9e12, overview.MarketCap.Unwrap())
	suite.True(overview.PERatio.IsNone())
	suite.True(overview.Sector.IsNone())
}

func (suite *PolygonProviderTestSuite) TestOverviewEmptyIsNoData() {
	//nolint:exhaustruct // empty response
	api := &mockPolygonAPIClient{details: &models.GetTickerDetailsResponse{}}
	provider := NewPolygonProviderWithAPI(api, nil)

	_, err := provider.Overview(context.Background(), "NOPE")
	suite.True(errors.Is(err, ErrNoData))
}

func (suite *PolygonProviderTestSuite) TestStatementsUnsupported() {
	provider := NewPolygonProviderWithAPI(&mockPolygonAPIClient{}, nil)

	_, err := provider.Statements(context.Background(), "AAPL", FrequencyAnnual, time.Time{})
	suite.True(errors.Is(err, ErrUnsupported))
}
