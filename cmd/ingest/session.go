package main

import (
	"time"

	"github.com/rxtech-lab/argo-ingest/internal/config"
	"github.com/rxtech-lab/argo-ingest/internal/logger"
	"github.com/rxtech-lab/argo-ingest/pkg/ingest"
	"github.com/rxtech-lab/argo-ingest/pkg/ingest/provider"
	"go.uber.org/zap"
)

// flagSource is the part of *cli.Command the flag merge reads.
type flagSource interface {
	IsSet(name string) bool
	String(name string) string
	Duration(name string) time.Duration
}

// session is the configuration and logger shared by one command invocation.
type session struct {
	file   *config.File
	logger *logger.Logger
}

// loadSession reads the config file, applies flag overrides and builds the logger.
func loadSession(flags flagSource) (*session, error) {
	file, err := config.Load(flags.String("config"))
	if err != nil {
		return nil, err
	}

	mergeFlags(flags, file)

	if err := file.Client.Validate(); err != nil {
		return nil, err
	}

	log, err := logger.NewLoggerWithLevel(file.LogLevel)
	if err != nil {
		return nil, err
	}

	return &session{file: file, logger: log}, nil
}

// mergeFlags lets explicitly set flags win over the file and environment.
func mergeFlags(flags flagSource, file *config.File) {
	client := &file.Client

	if flags.IsSet("output") {
		client.OutputDir = flags.String("output")
	}

	if flags.IsSet("market-provider") {
		client.MarketProvider = provider.MarketDataProviderType(flags.String("market-provider"))
		if !flags.IsSet("suffix") {
			client.ExchangeSuffix = ingest.SuffixFor(client.MarketProvider)
		}
	}

	if flags.IsSet("suffix") {
		client.ExchangeSuffix = flags.String("suffix")
	}

	if flags.IsSet("index-source") {
		client.IndexSource = provider.IndexProviderType(flags.String("index-source"))
	}

	if flags.IsSet("index-file") {
		client.IndexFile = flags.String("index-file")
	}

	if flags.IsSet("delay") {
		client.Delay = flags.Duration("delay")
	}

	if flags.IsSet("proxy") {
		client.Proxy = flags.String("proxy")
	}

	if flags.IsSet("log-level") {
		file.LogLevel = flags.String("log-level")
	}
}

// newClient builds an ingestion client for the session.
func (s *session) newClient(onProgress ingest.OnProgress) (*ingest.Client, error) {
	return ingest.NewClient(s.file.Client, s.logger.Logger, onProgress)
}

func (s *session) close() {
	if err := s.logger.Sync(); err != nil {
		s.logger.Debug("Failed to sync logger", zap.Error(err))
	}
}
