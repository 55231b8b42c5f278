package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Job is one scheduled unit of work.
type Job func(ctx context.Context) error

// specParser accepts six-field specs (with seconds) and descriptors such as @daily.
var specParser = cron.NewParser(
	cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// ParseSpec validates a cron spec and returns its schedule.
func ParseSpec(spec string) (cron.Schedule, error) {
	schedule, err := specParser.Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}

	return schedule, nil
}

// Scheduler runs registered jobs on cron schedules.
// A job that is still running when its next tick arrives is skipped for that tick.
// A panicking job is recovered before the skip guard so later ticks still run.
type Scheduler struct {
	cron   *cron.Cron
	ctx    context.Context
	logger *zap.Logger
}

// New creates a scheduler. Jobs receive ctx.
func New(ctx context.Context, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	cronLogger := zapCronLogger{logger: logger.Sugar()}

	return &Scheduler{
		cron: cron.New(
			cron.WithParser(specParser),
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.SkipIfStillRunning(cronLogger), cron.Recover(cronLogger)),
		),
		ctx:    ctx,
		logger: logger,
	}
}

// Register adds job under name on spec.
func (s *Scheduler) Register(name, spec string, job Job) error {
	if _, err := ParseSpec(spec); err != nil {
		return fmt.Errorf("register %s: %w", name, err)
	}

	_, err := s.cron.AddFunc(spec, func() {
		started := time.Now()
		s.logger.Info("Running scheduled job", zap.String("job", name))

		if err := job(s.ctx); err != nil {
			s.logger.Error("Scheduled job failed", zap.String("job", name), zap.Error(err))

			return
		}

		s.logger.Info("Scheduled job finished", zap.String("job", name), zap.Duration("took", time.Since(started)))
	})
	if err != nil {
		return fmt.Errorf("register %s: %w", name, err)
	}

	return nil
}

// Next returns the next activation time across all jobs, or the zero time when none is registered.
func (s *Scheduler) Next() time.Time {
	var next time.Time

	for _, entry := range s.cron.Entries() {
		if entry.Next.IsZero() {
			continue
		}

		if next.IsZero() || entry.Next.Before(next) {
			next = entry.Next
		}
	}

	return next
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Scheduler started", zap.Int("jobs", len(s.cron.Entries())))
}

// Stop stops the scheduler and waits for running jobs to finish or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()

	select {
	case <-done.Done():
		s.logger.Info("Scheduler stopped")
	case <-ctx.Done():
		s.logger.Warn("Scheduler stopped before running jobs finished")
	}
}

// zapCronLogger adapts zap to the cron.Logger interface.
type zapCronLogger struct {
	logger *zap.SugaredLogger
}

func (l zapCronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debugw(msg, keysAndValues...)
}

func (l zapCronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Errorw(msg, append(keysAndValues, "error", err)...)
}
