package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rxtech-lab/argo-ingest/internal/scheduler"
	"github.com/rxtech-lab/argo-ingest/pkg/errors"
	"github.com/rxtech-lab/argo-ingest/pkg/ingest"
	"github.com/rxtech-lab/argo-ingest/pkg/ingest/provider"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func modeFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "mode",
		Aliases: []string{"m"},
		Usage:   "Save mode: 'individual' for separate files, 'combined' for one CSV",
		Value:   string(ingest.OutputIndividual),
	}
}

func indexFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "index",
		Aliases:  []string{"i"},
		Usage:    "NSE index name (e.g. NIFTY 50)",
		Required: true,
	}
}

func fundamentalCommand() *cli.Command {
	return &cli.Command{
		Name:  "fundamental",
		Usage: "Download overview or detailed fundamentals for every constituent of an index",
		Flags: []cli.Flag{
			indexFlag(),
			&cli.StringFlag{
				Name:    "kind",
				Aliases: []string{"k"},
				Usage:   "Type of data: 'overview' or 'detailed'",
				Value:   string(ingest.DatasetOverview),
			},
			&cli.StringFlag{
				Name:    "frequency",
				Aliases: []string{"f"},
				Usage:   "Statement frequency for detailed data: 'annual' or 'quarterly'",
				Value:   "annual",
			},
			&cli.IntFlag{
				Name:    "years",
				Aliases: []string{"y"},
				Usage:   "Number of years of detailed data to fetch",
				Value:   5,
			},
			modeFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			kind := ingest.Dataset(strings.ToLower(cmd.String("kind")))
			if kind == ingest.DatasetTechnical {
				return errors.New(errors.ErrCodeInvalidDataset, "use the technical command for price history")
			}

			run := ingest.RunConfig{
				Index:   cmd.String("index"),
				Dataset: kind,
				Mode:    ingest.OutputMode(cmd.String("mode")),
			}
			if kind == ingest.DatasetDetailed {
				run.Frequency = cmd.String("frequency")
				run.Years = int(cmd.Int("years"))
			}

			return collect(ctx, cmd, run)
		},
	}
}

func technicalCommand() *cli.Command {
	return &cli.Command{
		Name:  "technical",
		Usage: "Download price history for every constituent of an index",
		Flags: []cli.Flag{
			indexFlag(),
			&cli.StringFlag{
				Name:    "start",
				Aliases: []string{"s"},
				Usage:   "Start date (e.g. 01-01-2023), defaults to five days ago",
			},
			&cli.StringFlag{
				Name:    "end",
				Aliases: []string{"e"},
				Usage:   "End date (e.g. 31-12-2023), defaults to today",
			},
			&cli.StringFlag{
				Name:  "interval",
				Usage: "Bar interval (1m, 5m, 15m, 30m, 1h, 1d, 1wk, 1mo)",
				Value: "1d",
			},
			modeFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return collect(ctx, cmd, ingest.RunConfig{
				Index:     cmd.String("index"),
				Dataset:   ingest.DatasetTechnical,
				StartDate: cmd.String("start"),
				EndDate:   cmd.String("end"),
				Interval:  cmd.String("interval"),
				Mode:      ingest.OutputMode(cmd.String("mode")),
			})
		},
	}
}

// collect runs one ingestion with a progress bar and prints the run summary.
func collect(ctx context.Context, cmd *cli.Command, run ingest.RunConfig) error {
	sess, err := loadSession(cmd)
	if err != nil {
		return err
	}
	defer sess.close()

	// reject bad input before touching the network
	if _, err := run.Validate(time.Now()); err != nil {
		return err
	}

	progress := newSymbolProgress(os.Stderr, string(run.Normalize().Dataset))

	client, err := sess.newClient(progress.Callback())
	if err != nil {
		return err
	}

	report, err := client.Collect(ctx, run)
	progress.Finish()

	if report != nil {
		printReport(cmd.Root().Writer, report)
	}

	return err
}

func printReport(w io.Writer, report *ingest.RunReport) {
	title := titleStyle.Render(fmt.Sprintf("Run %s", report.RunID))
	fmt.Fprintf(w, "%s\n%s\n", title, report.Summary())
}

func indicesCommand() *cli.Command {
	return &cli.Command{
		Name:  "indices",
		Usage: "List every index known to the index source",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			sess, err := loadSession(cmd)
			if err != nil {
				return err
			}
			defer sess.close()

			client, err := sess.newClient(nil)
			if err != nil {
				return err
			}

			indices, err := client.Indices(ctx)
			if err != nil {
				return err
			}

			for _, index := range indices {
				fmt.Fprintln(cmd.Root().Writer, index)
			}

			return nil
		},
	}
}

func symbolsCommand() *cli.Command {
	return &cli.Command{
		Name:  "symbols",
		Usage: "List every equity listed on the exchange",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "series",
				Usage: "Only list symbols of this series (e.g. EQ)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			sess, err := loadSession(cmd)
			if err != nil {
				return err
			}
			defer sess.close()

			client, err := sess.newClient(nil)
			if err != nil {
				return err
			}

			listings, err := client.Listings(ctx)
			if err != nil {
				return err
			}

			series := strings.ToUpper(cmd.String("series"))
			for _, listing := range listings {
				if series != "" && listing.Series != series {
					continue
				}

				fmt.Fprintf(cmd.Root().Writer, "%-20s %s\n", listing.Symbol, listing.Name)
			}

			return nil
		},
	}
}

func quoteCommand() *cli.Command {
	return &cli.Command{
		Name:      "quote",
		Usage:     "Show a live quote from the index source",
		ArgsUsage: "SYMBOL",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			symbol := strings.ToUpper(strings.TrimSpace(cmd.Args().First()))
			if symbol == "" {
				return errors.New(errors.ErrCodeMissingParameter, "quote needs a symbol")
			}

			sess, err := loadSession(cmd)
			if err != nil {
				return err
			}
			defer sess.close()

			client, err := sess.newClient(nil)
			if err != nil {
				return err
			}

			quote, err := client.Quote(ctx, symbol)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.Root().Writer, titleStyle.Render(fmt.Sprintf("%s  %s", quote.Symbol, quote.CompanyName)))
			fmt.Fprintf(cmd.Root().Writer, "Last    %s (%+.2f, %+.2f%%)\n",
				lastPrice(quote), quote.Change, quote.PercentChange)
			fmt.Fprintf(cmd.Root().Writer, "Open    %.2f\nHigh    %.2f\nLow     %.2f\nPrev    %.2f\n",
				quote.Open, quote.DayHigh, quote.DayLow, quote.PreviousClose)

			if quote.LastUpdated != "" {
				fmt.Fprintln(cmd.Root().Writer, hintStyle.Render("as of "+quote.LastUpdated))
			}

			return nil
		},
	}
}

func scheduleCommand() *cli.Command {
	return &cli.Command{
		Name:  "schedule",
		Usage: "Run the config file's run section on its cron schedule until interrupted",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			sess, err := loadSession(cmd)
			if err != nil {
				return err
			}
			defer sess.close()

			if sess.file.Schedule == "" || sess.file.Run == nil {
				return errors.New(errors.ErrCodeInvalidConfiguration, "the config file needs both schedule and run sections")
			}

			run := *sess.file.Run
			if _, err := run.Validate(time.Now()); err != nil {
				return err
			}

			client, err := sess.newClient(nil)
			if err != nil {
				return err
			}

			sched := scheduler.New(ctx, sess.logger.Logger)

			err = sched.Register(string(run.Dataset)+" "+run.Index, sess.file.Schedule, func(ctx context.Context) error {
				report, err := client.Collect(ctx, run)
				if report != nil {
					sess.logger.Info("Scheduled run finished",
						zap.String("run_id", report.RunID),
						zap.String("outcome", string(report.Outcome)),
						zap.Int("processed", len(report.Processed)),
					)
				}

				return err
			})
			if err != nil {
				return err
			}

			sched.Start()
			fmt.Fprintf(cmd.Root().Writer, "Scheduled %s for %s, next run at %s\n",
				run.Dataset, run.Index, sched.Next().Format(time.RFC1123))

			<-ctx.Done()

			stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			sched.Stop(stopCtx)

			return nil
		},
	}
}

func schemaCommand() *cli.Command {
	return &cli.Command{
		Name:  "schema",
		Usage: "Print the JSON schema of a run configuration",
		Action: func(_ context.Context, cmd *cli.Command) error {
			schema, err := ingest.RunConfigSchema()
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.Root().Writer, schema)

			return nil
		},
	}
}

func wizardCommand() *cli.Command {
	return &cli.Command{
		Name:  "wizard",
		Usage: "Answer a few prompts and run the ingestion",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			sess, err := loadSession(cmd)
			if err != nil {
				return err
			}
			defer sess.close()

			client, err := sess.newClient(nil)
			if err != nil {
				return err
			}

			program := tea.NewProgram(NewModel(client.Constituents, time.Now), tea.WithContext(ctx))

			final, err := program.Run()
			if err != nil {
				return fmt.Errorf("wizard failed: %w", err)
			}

			model, ok := final.(Model)
			if !ok {
				return fmt.Errorf("wizard returned unexpected model %T", final)
			}

			run, confirmed := model.Result()
			if !confirmed {
				fmt.Fprintln(cmd.Root().Writer, hintStyle.Render("Nothing to do."))

				return nil
			}

			progress := newSymbolProgress(os.Stderr, string(run.Dataset))
			client.SetProgress(progress.Callback())

			report, err := client.Collect(ctx, run)
			progress.Finish()

			if report != nil {
				printReport(cmd.Root().Writer, report)
			}

			return err
		},
	}
}

func providersCommand() *cli.Command {
	return &cli.Command{
		Name:  "providers",
		Usage: "List the supported index sources and market data providers",
		Action: func(_ context.Context, cmd *cli.Command) error {
			for _, name := range provider.GetSupportedProviders() {
				info, err := provider.GetProviderInfo(name)
				if err != nil {
					return err
				}

				auth := ""
				if info.RequiresAuth {
					auth = " (requires API key)"
				}

				fmt.Fprintf(cmd.Root().Writer, "%-8s %-12s %s%s\n", info.Name, info.Role, info.DisplayName, auth)
				fmt.Fprintln(cmd.Root().Writer, hintStyle.Render("         "+info.Description))
			}

			return nil
		},
	}
}
