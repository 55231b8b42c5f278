package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	argoerrors "github.com/rxtech-lab/argo-ingest/pkg/errors"
	"github.com/rxtech-lab/argo-ingest/pkg/ingest"
	"github.com/rxtech-lab/argo-ingest/pkg/ingest/provider"
	"github.com/stretchr/testify/suite"
)

type ConfigTestSuite struct {
	suite.Suite
	dir string
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) SetupTest() {
	suite.dir = suite.T().TempDir()

	suite.T().Setenv(EnvPolygonAPIKey, "")
	suite.T().Setenv(EnvHTTPSProxy, "")
	suite.T().Setenv(EnvOutputDir, "")
}

func (suite *ConfigTestSuite) writeFile(content string) string {
	path := filepath.Join(suite.dir, "ingest.yaml")
	suite.Require().NoError(os.WriteFile(path, []byte(content), 0o600))

	return path
}

func (suite *ConfigTestSuite) TestLoadWithoutFile() {
	cfg, err := Load("")
	suite.Require().NoError(err)

	suite.Equal("info", cfg.LogLevel)
	suite.Equal(ingest.DefaultOutputDir, cfg.Client.OutputDir)
	suite.Equal(provider.MarketProviderYahoo, cfg.Client.MarketProvider)
	suite.Equal(".NS", cfg.Client.ExchangeSuffix)
	suite.Equal(ingest.DefaultDelay, cfg.Client.Delay)
	suite.Nil(cfg.Run)
}

func (suite *ConfigTestSuite) TestLoadFile() {
	path := suite.writeFile(`
requires: ">= 0.1"
logLevel: debug
client:
  outputDir: /tmp/ingest
  indexSource: file
  indexFile: indices.yaml
  delay: 250ms
run:
  index: NIFTY 50
  dataset: detailed
  frequency: quarterly
  years: 3
  mode: combined
schedule: "0 30 18 * * 1-5"
`)

	cfg, err := Load(path)
	suite.Require().NoError(err)

	suite.Equal("debug", cfg.LogLevel)
	suite.Equal("/tmp/ingest", cfg.Client.OutputDir)
	suite.Equal(provider.IndexSourceFile, cfg.Client.IndexSource)
	suite.Equal("indices.yaml", cfg.Client.IndexFile)
	suite.Equal(250*time.Millisecond, cfg.Client.Delay)
	// untouched keys keep their defaults
	suite.Equal(provider.MarketProviderYahoo, cfg.Client.MarketProvider)

	suite.Require().NotNil(cfg.Run)
	suite.Equal("NIFTY 50", cfg.Run.Index)
	suite.Equal(ingest.DatasetDetailed, cfg.Run.Dataset)
	suite.Equal(3, cfg.Run.Years)
	suite.Equal(ingest.OutputCombined, cfg.Run.Mode)
	suite.Equal("0 30 18 * * 1-5", cfg.Schedule)
}

func (suite *ConfigTestSuite) TestExchangeSuffix() {
	testCases := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "yahoo default",
			content:  "client:\n  marketProvider: yahoo\n",
			expected: ".NS",
		},
		{
			name:     "polygon default",
			content:  "client:\n  marketProvider: polygon\n",
			expected: "",
		},
		{
			name:     "explicit empty suffix",
			content:  "client:\n  exchangeSuffix: \"\"\n",
			expected: "",
		},
		{
			name:     "explicit bse suffix",
			content:  "client:\n  exchangeSuffix: .BO\n",
			expected: ".BO",
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			cfg, err := Load(suite.writeFile(tc.content))
			suite.Require().NoError(err)
			suite.Equal(tc.expected, cfg.Client.ExchangeSuffix)
		})
	}
}

func (suite *ConfigTestSuite) TestEnvOverrides() {
	suite.T().Setenv(EnvPolygonAPIKey, "secret")
	suite.T().Setenv(EnvOutputDir, "/data/ingest")
	suite.T().Setenv(EnvHTTPSProxy, "http://proxy.local:3128")

	cfg, err := Load(suite.writeFile("client:\n  outputDir: data/raw\n"))
	suite.Require().NoError(err)

	suite.Equal("secret", cfg.Client.PolygonAPIKey)
	suite.Equal("/data/ingest", cfg.Client.OutputDir)
	suite.Equal("http://proxy.local:3128", cfg.Client.Proxy)

	cfg, err = Load(suite.writeFile("client:\n  proxy: http://file.local:8080\n"))
	suite.Require().NoError(err)
	suite.Equal("http://file.local:8080", cfg.Client.Proxy)
}

func (suite *ConfigTestSuite) TestSecretsAreNotRendered() {
	suite.T().Setenv(EnvPolygonAPIKey, "secret")

	cfg, err := Load("")
	suite.Require().NoError(err)
	suite.NotContains(cfg.String(), "secret")
}

func (suite *ConfigTestSuite) TestInvalidFiles() {
	testCases := []struct {
		name    string
		content string
	}{
		{name: "malformed yaml", content: "client: [\n"},
		{name: "version constraint not met", content: "requires: \">= 99\"\n"},
		{name: "bad version constraint", content: "requires: \"soon\"\n"},
		{name: "bad log level", content: "logLevel: loud\n"},
		{name: "bad schedule", content: "schedule: every day\nrun:\n  index: NIFTY 50\n"},
		{name: "schedule without run", content: "schedule: \"@daily\"\n"},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			_, err := Load(suite.writeFile(tc.content))
			suite.Error(err)
			suite.True(argoerrors.HasCode(err, argoerrors.ErrCodeInvalidConfiguration))
		})
	}
}

func (suite *ConfigTestSuite) TestMissingFile() {
	_, err := Load(filepath.Join(suite.dir, "missing.yaml"))
	suite.Error(err)
	suite.True(argoerrors.HasCode(err, argoerrors.ErrCodeInvalidConfiguration))
}
