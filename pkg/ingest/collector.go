package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-ingest/pkg/errors"
	"github.com/rxtech-lab/argo-ingest/pkg/ingest/table"
	"github.com/rxtech-lab/argo-ingest/pkg/ingest/writer"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DefaultDelay is the minimum gap between two fetches.
const DefaultDelay = 500 * time.Millisecond

// OnProgress is called after every symbol with the number processed so far.
type OnProgress = func(current float64, total float64, message string)

// Pacer blocks until the next fetch may start.
type Pacer interface {
	Wait(ctx context.Context) error
}

// NewPacer returns a Pacer allowing one fetch per delay. A non-positive delay never blocks.
func NewPacer(delay time.Duration) Pacer {
	if delay <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}

	return rate.NewLimiter(rate.Every(delay), 1)
}

// Collector runs the per-symbol loop: validate, pace, fetch, write and accumulate.
type Collector struct {
	resolver   SymbolResolver
	validator  SymbolValidator
	writer     writer.TableWriter
	pacer      Pacer
	logger     *zap.Logger
	now        func() time.Time
	outputDir  string
	onProgress OnProgress
}

// CollectorOption configures a Collector.
type CollectorOption func(*Collector)

// WithPacer sets the pacer used between fetches.
func WithPacer(pacer Pacer) CollectorOption {
	return func(c *Collector) {
		c.pacer = pacer
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) CollectorOption {
	return func(c *Collector) {
		c.logger = logger
	}
}

// WithClock sets the clock used for date stamps.
func WithClock(now func() time.Time) CollectorOption {
	return func(c *Collector) {
		c.now = now
	}
}

// WithOutputDir sets the output root.
func WithOutputDir(dir string) CollectorOption {
	return func(c *Collector) {
		c.outputDir = dir
	}
}

// WithProgress sets the progress callback.
func WithProgress(onProgress OnProgress) CollectorOption {
	return func(c *Collector) {
		c.onProgress = onProgress
	}
}

// NewCollector creates a Collector. Without options it paces at DefaultDelay and writes under DefaultOutputDir.
func NewCollector(resolver SymbolResolver, validator SymbolValidator, tableWriter writer.TableWriter, opts ...CollectorOption) *Collector {
	c := &Collector{
		resolver:   resolver,
		validator:  validator,
		writer:     tableWriter,
		pacer:      NewPacer(DefaultDelay),
		logger:     zap.NewNop(),
		now:        time.Now,
		outputDir:  DefaultOutputDir,
		onProgress: nil,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Collect resolves params.Index and runs fetcher over every constituent.
// The returned report is never nil. The error is non-nil only when the run as a whole failed:
// the index resolved to nothing, the context was cancelled, or the combined file could not be written.
func (c *Collector) Collect(ctx context.Context, params RunParams, fetcher Fetcher) (*RunReport, error) {
	report := newRunReport(params, c.now())
	logger := c.logger.With(zap.String("run_id", report.RunID), zap.String("index", params.Index))

	defer func() {
		report.FinishedAt = c.now()
	}()

	symbols := c.resolver.Resolve(ctx, params.Index)
	if len(symbols) == 0 {
		report.Outcome = OutcomeIndexNotFound

		logger.Error("No stocks found for index")

		return report, errors.Newf(errors.ErrCodeIndexNotFound, "no stocks found for index %s", params.Index)
	}

	report.Requested = append(report.Requested, symbols...)
	logger.Info("Resolved index", zap.Int("symbols", len(symbols)), zap.String("dataset", string(params.Dataset)))

	records := make([]*table.Table, 0, len(symbols))
	total := float64(len(symbols))

	for i, symbol := range symbols {
		if err := ctx.Err(); err != nil {
			return c.cancelled(report, logger, err)
		}

		record, err := c.process(ctx, logger.With(zap.String("symbol", symbol)), report, params, fetcher, symbol)
		if err != nil {
			return c.cancelled(report, logger, err)
		}

		if record.IsSome() {
			records = append(records, record.Unwrap())
			report.Processed = append(report.Processed, symbol)
		}

		c.progress(float64(i+1), total, symbol)
	}

	if params.Mode != OutputCombined {
		logger.Info("Run finished",
			zap.Int("processed", len(report.Processed)),
			zap.Int("skipped", len(report.Skipped)),
			zap.Int("files", len(report.Files)),
		)

		return report, nil
	}

	if len(records) == 0 {
		report.Outcome = OutcomeNothingToCombine
		report.Err = errors.Newf(errors.ErrCodeNothingToCombine, "no records to combine for %s", params.Index)

		logger.Warn("No data to combine")

		return report, nil
	}

	combined := table.Concat(records...)
	path := CombinedPath(c.outputDir, params, report.Date)

	if err := c.writer.Write(combined, path); err != nil {
		report.Outcome = OutcomeFailed

		logger.Error("Failed to write combined file", zap.String("path", path), zap.Error(err))

		return report, errors.Wrapf(errors.ErrCodeOutputWriteFailed, err, "failed to write combined file %s", path)
	}

	report.CombinedPath = path
	report.Rows = combined.Len()
	report.Files = append(report.Files, path)

	logger.Info("Combined data saved", zap.String("path", path), zap.Int("rows", combined.Len()))

	return report, nil
}

// process handles one symbol. It returns an error only when the context ends while pacing.
func (c *Collector) process(ctx context.Context, logger *zap.Logger, report *RunReport, params RunParams, fetcher Fetcher, symbol string) (record optional.Option[*table.Table], err error) {
	record = optional.None[*table.Table]()

	defer func() {
		if r := recover(); r != nil {
			fault := errors.NewSymbolError(symbol, errors.ErrCodeSymbolFailed, fmt.Errorf("panic: %v", r))

			logger.Error("Recovered while processing symbol", zap.Any("panic", r))
			report.skip(symbol, SkipFault, fault)

			record = optional.None[*table.Table]()
			err = nil
		}
	}()

	if !c.validator.IsValid(ctx, symbol) {
		logger.Warn("Invalid stock symbol, skipping")
		report.skip(symbol, SkipInvalid, errors.NewSymbolError(symbol, errors.ErrCodeInvalidSymbol, nil))

		return record, nil
	}

	if err := c.pacer.Wait(ctx); err != nil {
		return record, err
	}

	result := fetcher.Fetch(ctx, symbol)

	if result.Fault != nil {
		logger.Warn("Failed to fetch data, skipping", zap.Error(result.Fault))
		report.skip(symbol, SkipFault, errors.NewSymbolError(symbol, errors.GetCode(result.Fault), result.Fault))

		return record, nil
	}

	if result.Record.IsNone() {
		logger.Warn("No data found, skipping")
		report.skip(symbol, SkipNoData, errors.NewSymbolError(symbol, errors.ErrCodeNoData, nil))

		return record, nil
	}

	data := result.Record.Unwrap()

	if params.Mode == OutputIndividual {
		path := IndividualPath(c.outputDir, params, symbol, report.Date)

		if err := c.writer.Write(data, path); err != nil {
			logger.Error("Failed to write file, skipping", zap.String("path", path), zap.Error(err))
			report.skip(symbol, SkipFault, errors.NewSymbolError(symbol, errors.ErrCodeOutputWriteFailed, err))

			return record, nil
		}

		report.Files = append(report.Files, path)

		logger.Info("Data saved", zap.String("path", path), zap.Int("rows", data.Len()))
	}

	return optional.Some(data), nil
}

func (c *Collector) cancelled(report *RunReport, logger *zap.Logger, err error) (*RunReport, error) {
	report.Outcome = OutcomeCancelled

	logger.Warn("Run cancelled", zap.Int("processed", len(report.Processed)), zap.Error(err))

	return report, err
}

func (c *Collector) progress(current, total float64, symbol string) {
	if c.onProgress != nil {
		c.onProgress(current, total, symbol)
	}
}
