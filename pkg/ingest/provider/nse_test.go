package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rxtech-lab/argo-ingest/e2e/mockserver"
	"github.com/stretchr/testify/suite"
)

type NSEProviderTestSuite struct {
	suite.Suite
	server   *mockserver.MockMarketServer
	provider *NSEProvider
}

func TestNSEProviderSuite(t *testing.T) {
	suite.Run(t, new(NSEProviderTestSuite))
}

func (suite *NSEProviderTestSuite) SetupTest() {
	suite.server = mockserver.NewMockMarketServer(mockserver.NiftyConfig())
	suite.Require().NoError(suite.server.Start(":0"))

	provider, err := NewNSEProvider(
		WithNSEBaseURL(suite.server.BaseURL()),
		WithNSEArchivesURL(suite.server.BaseURL()),
	)
	suite.Require().NoError(err)

	suite.provider = provider
}

func (suite *NSEProviderTestSuite) TearDownTest() {
	if suite.server != nil {
		suite.server.Stop()
	}
}

func (suite *NSEProviderTestSuite) TestName() {
	suite.Equal("nse", suite.provider.Name())
}

func (suite *NSEProviderTestSuite) TestConstituentsDropIndexRow() {
	symbols, err := suite.provider.Constituents(context.Background(), "NIFTY 50")
	suite.NoError(err)
	suite.Equal([]string{"TCS", "INFY"}, symbols)
}

func (suite *NSEProviderTestSuite) TestConstituentsUnknownIndex() {
	symbols, err := suite.provider.Constituents(context.Background(), "NIFTY UNKNOWN")
	suite.NoError(err)
	suite.Empty(symbols)
}

func (suite *NSEProviderTestSuite) TestWarmUpHappensOnce() {
	_, err := suite.provider.Constituents(context.Background(), "NIFTY 50")
	suite.Require().NoError(err)
	_, err = suite.provider.Indices(context.Background())
	suite.Require().NoError(err)

	suite.Equal(1, suite.server.Requests("/"))
}

func (suite *NSEProviderTestSuite) TestIndices() {
	indices, err := suite.provider.Indices(context.Background())
	suite.NoError(err)
	suite.Equal([]string{"NIFTY 50", "NIFTY BANK"}, indices)
}

func (suite *NSEProviderTestSuite) TestListings() {
	listings, err := suite.provider.Listings(context.Background())
	suite.NoError(err)
	suite.Require().Len(listings, 2)
	suite.Equal(Listing{Symbol: "INFY", Name: "Infosys Limited", Series: "EQ", ISIN: "INE009A01021"}, listings[0])
	suite.Equal("RELIANCE", listings[1].Symbol)
}

func (suite *NSEProviderTestSuite) TestQuote() {
	quote, err := suite.provider.Quote(context.Background(), "INFY")
	suite.NoError(err)
	suite.Equal("INFY", quote.Symbol)
	suite.Equal("Infosys Limited", quote.CompanyName)
	suite.Equal(1500.5, quote.LastPrice)
	suite.Equal(1510.0, quote.DayHigh)
	suite.Equal(1485.0, quote.DayLow)
}

func (suite *NSEProviderTestSuite) TestQuoteUnknownSymbol() {
	_, err := suite.provider.Quote(context.Background(), "NOPE")
	suite.Error(err)
	suite.True(errors.Is(err, ErrNoData))
}

func (suite *NSEProviderTestSuite) TestServerDown() {
	suite.server.Stop()

	_, err := suite.provider.Listings(context.Background())
	suite.Error(err)
}

func (suite *NSEProviderTestSuite) TestBlockedPageIsMalformed() {
	blocked := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>Access Denied</html>"))
	}))
	defer blocked.Close()

	provider, err := NewNSEProvider(WithNSEBaseURL(blocked.URL))
	suite.Require().NoError(err)

	_, err = provider.Indices(context.Background())
	suite.Error(err)
	suite.True(errors.Is(err, ErrMalformed))
}

func (suite *NSEProviderTestSuite) TestParseEquityList() {
	data := []byte("SYMBOL,NAME OF COMPANY, SERIES, DATE OF LISTING, PAID UP VALUE, MARKET LOT, ISIN NUMBER, FACE VALUE\n" +
		"20MICRONS,20 Microns Limited,EQ,06-OCT-2008,5,1,INE144J01027,5\n" +
		" tcs ,Tata Consultancy Services Limited,EQ,25-AUG-2004,1,1,INE467B01029,1\n" +
		",,,,,,,\n")

	listings, err := ParseEquityList(data)
	suite.NoError(err)
	suite.Require().Len(listings, 2)
	suite.Equal("20MICRONS", listings[0].Symbol)
	suite.Equal("INE144J01027", listings[0].ISIN)
	suite.Equal("TCS", listings[1].Symbol)
}
