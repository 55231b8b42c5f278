// Package config loads the YAML configuration file shared by the CLI commands.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/rxtech-lab/argo-ingest/internal/scheduler"
	"github.com/rxtech-lab/argo-ingest/internal/version"
	"github.com/rxtech-lab/argo-ingest/pkg/errors"
	"github.com/rxtech-lab/argo-ingest/pkg/ingest"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvPolygonAPIKey = "POLYGON_API_KEY"
	EnvHTTPSProxy    = "HTTPS_PROXY"
	EnvOutputDir     = "INGEST_OUTPUT_DIR"
)

// File is the on-disk configuration.
type File struct {
	// Requires is a semver constraint on the tool version, e.g. ">= 0.3".
	Requires string              `yaml:"requires"`
	LogLevel string              `yaml:"logLevel"`
	Client   ingest.ClientConfig `yaml:"client"`
	// Run is the run executed by the schedule command.
	Run      *ingest.RunConfig `yaml:"run"`
	Schedule string            `yaml:"schedule"`
}

// suffixProbe detects whether exchangeSuffix was set explicitly, since "" is a valid value.
type suffixProbe struct {
	Client struct {
		ExchangeSuffix *string `yaml:"exchangeSuffix"`
	} `yaml:"client"`
}

// Default returns the configuration used when no file is given.
func Default() File {
	return File{
		Requires: "",
		LogLevel: "info",
		Client:   ingest.DefaultClientConfig(),
		Run:      nil,
		Schedule: "",
	}
}

// Load reads the configuration at path, applies environment overrides and validates it.
// An empty path yields the defaults plus environment overrides.
func Load(path string) (*File, error) {
	cfg := Default()
	explicitSuffix := false

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config file %s", path)
		}

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to parse config file %s", path)
		}

		var probe suffixProbe
		if err := yaml.Unmarshal(data, &probe); err == nil && probe.Client.ExchangeSuffix != nil {
			explicitSuffix = true
		}
	}

	if !explicitSuffix {
		cfg.Client.ExchangeSuffix = ingest.SuffixFor(cfg.Client.MarketProvider)
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyEnv(cfg *File) {
	if v := os.Getenv(EnvPolygonAPIKey); v != "" {
		cfg.Client.PolygonAPIKey = v
	}

	if v := os.Getenv(EnvOutputDir); v != "" {
		cfg.Client.OutputDir = v
	}

	// the file wins over the ambient proxy
	if v := os.Getenv(EnvHTTPSProxy); v != "" && cfg.Client.Proxy == "" {
		cfg.Client.Proxy = v
	}
}

// Validate checks the parts of the file that do not depend on CLI flags.
// The client and run sections are validated again once flags are merged.
func (f *File) Validate() error {
	if err := version.Check(f.Requires); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "config requires a different tool version", err)
	}

	if f.LogLevel != "" {
		if _, err := zapcore.ParseLevel(f.LogLevel); err != nil {
			return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "invalid log level %q", f.LogLevel)
		}
	}

	if strings.TrimSpace(f.Schedule) != "" {
		if _, err := scheduler.ParseSpec(f.Schedule); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid schedule", err)
		}

		if f.Run == nil {
			return errors.New(errors.ErrCodeInvalidConfiguration, "schedule is set but the run section is missing")
		}
	}

	return nil
}

// String renders the file as YAML with secrets omitted.
func (f *File) String() string {
	out, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Sprintf("config: %v", err)
	}

	return string(out)
}
