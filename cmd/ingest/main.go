package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rxtech-lab/argo-ingest/internal/version"
	"github.com/rxtech-lab/argo-ingest/pkg/ingest"
	"github.com/urfave/cli/v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: ")+err.Error())
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "argo-ingest",
		Usage:   "Download fundamental and technical data for the constituents of an NSE index",
		Version: version.GetVersion(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			fundamentalCommand(),
			technicalCommand(),
			wizardCommand(),
			indicesCommand(),
			symbolsCommand(),
			quoteCommand(),
			scheduleCommand(),
			schemaCommand(),
			providersCommand(),
		},
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to a YAML configuration file",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Root directory for CSV output",
			Value:   ingest.DefaultOutputDir,
		},
		&cli.StringFlag{
			Name:  "market-provider",
			Usage: "Market data provider (yahoo, polygon)",
			Value: "yahoo",
		},
		&cli.StringFlag{
			Name:  "index-source",
			Usage: "Where index constituents come from (nse, file)",
			Value: "nse",
		},
		&cli.StringFlag{
			Name:  "index-file",
			Usage: "YAML file mapping index names to symbols, used with --index-source file",
		},
		&cli.StringFlag{
			Name:  "suffix",
			Usage: "Exchange suffix appended to symbols for the market data provider",
		},
		&cli.DurationFlag{
			Name:  "delay",
			Usage: "Minimum delay between symbol fetches",
			Value: ingest.DefaultDelay,
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level (debug, info, warn, error)",
			Value: "info",
		},
		&cli.StringFlag{
			Name:  "proxy",
			Usage: "HTTP proxy URL for outbound requests",
		},
	}
}
