package mockserver

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

type MockServerTestSuite struct {
	suite.Suite
	server *MockMarketServer
	client *http.Client
}

func TestMockServerSuite(t *testing.T) {
	suite.Run(t, new(MockServerTestSuite))
}

func (suite *MockServerTestSuite) SetupTest() {
	suite.server = NewMockMarketServer(NiftyConfig())
	suite.Require().NoError(suite.server.Start(":0"))

	jar, err := cookiejar.New(nil)
	suite.Require().NoError(err)

	suite.client = &http.Client{Jar: jar}
}

func (suite *MockServerTestSuite) TearDownTest() {
	if suite.server != nil {
		suite.server.Stop()
	}
}

func (suite *MockServerTestSuite) getJSON(path string) (int, map[string]any) {
	resp, err := suite.client.Get(suite.server.BaseURL() + path)
	suite.Require().NoError(err)

	defer resp.Body.Close()

	var body map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&body)

	return resp.StatusCode, body
}

func (suite *MockServerTestSuite) TestServerStartAndStop() {
	suite.NotEmpty(suite.server.Address())
	suite.Contains(suite.server.BaseURL(), "http://")
	suite.NoError(suite.server.Stop())
	suite.NoError(suite.server.Stop())
}

func (suite *MockServerTestSuite) TestImmediateStopAfterStart() {
	for i := 0; i < 200; i++ {
		server := NewMockMarketServer(NiftyConfig())
		suite.Require().NoError(server.Start(":0"))
		suite.NoError(server.Stop())
	}
}

func (suite *MockServerTestSuite) TestIndexConstituentsIncludeSummaryRow() {
	status, body := suite.getJSON("/api/equity-stockIndices?index=NIFTY%2050")
	suite.Equal(http.StatusOK, status)

	data, ok := body["data"].([]any)
	suite.Require().True(ok)
	suite.Len(data, 3)
	suite.Equal("NIFTY 50", data[0].(map[string]any)["symbol"])
	suite.Equal("TCS", data[1].(map[string]any)["symbol"])
}

func (suite *MockServerTestSuite) TestUnknownIndexIsEmpty() {
	status, body := suite.getJSON("/api/equity-stockIndices?index=UNKNOWN")
	suite.Equal(http.StatusOK, status)
	suite.Empty(body)
}

func (suite *MockServerTestSuite) TestEquityListHasSpacedHeader() {
	resp, err := suite.client.Get(suite.server.BaseURL() + "/content/equities/EQUITY_L.csv")
	suite.Require().NoError(err)

	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	suite.Require().NoError(err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	suite.Len(lines, 3)
	suite.Contains(lines[0], ", ISIN NUMBER")
	suite.True(strings.HasPrefix(lines[1], "INFY,Infosys Limited,EQ"))
}

func (suite *MockServerTestSuite) TestCrumbRequiresSessionCookie() {
	resp, err := http.Get(suite.server.BaseURL() + "/v1/test/getcrumb")
	suite.Require().NoError(err)
	resp.Body.Close()
	suite.Equal(http.StatusUnauthorized, resp.StatusCode)

	resp, err = suite.client.Get(suite.server.BaseURL() + "/")
	suite.Require().NoError(err)
	resp.Body.Close()

	resp, err = suite.client.Get(suite.server.BaseURL() + "/v1/test/getcrumb")
	suite.Require().NoError(err)

	defer resp.Body.Close()

	crumb, err := io.ReadAll(resp.Body)
	suite.Require().NoError(err)
	suite.Equal(Crumb, string(crumb))
}

func (suite *MockServerTestSuite) TestQuoteSummaryRequiresCrumb() {
	status, _ := suite.getJSON("/v10/finance/quoteSummary/INFY.NS?modules=price")
	suite.Equal(http.StatusUnauthorized, status)

	status, body := suite.getJSON("/v10/finance/quoteSummary/INFY.NS?modules=price&crumb=" + Crumb)
	suite.Equal(http.StatusOK, status)
	suite.Contains(body, "quoteSummary")
}

func (suite *MockServerTestSuite) TestChartUnknownTicker() {
	status, body := suite.getJSON("/v8/finance/chart/TCS.NS?period1=0&period2=9999999999")
	suite.Equal(http.StatusNotFound, status)

	chart := body["chart"].(map[string]any)
	suite.Equal("Not Found", chart["error"].(map[string]any)["code"])
}

func (suite *MockServerTestSuite) TestFailTicker() {
	suite.server.FailTicker("INFY.NS", http.StatusInternalServerError)

	status, _ := suite.getJSON("/v8/finance/chart/INFY.NS?period1=0&period2=9999999999")
	suite.Equal(http.StatusInternalServerError, status)
}

func (suite *MockServerTestSuite) TestRequestsAreCounted() {
	suite.getJSON("/api/allIndices")
	suite.getJSON("/api/allIndices")

	suite.Equal(2, suite.server.Requests("/api/allIndices"))
	suite.Equal(0, suite.server.Requests("/api/quote-equity"))
}
