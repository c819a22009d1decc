package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultSpec runs the historical APY job every 30 minutes.
const DefaultSpec = "*/30 * * * *"

// Job is one scheduled unit of work.
type Job func(ctx context.Context) error

// Scheduler runs a job on a cron schedule. A failed or panicking run is
// logged and does not affect later runs; overlapping runs are skipped.
type Scheduler struct {
	name    string
	spec    string
	job     Job
	timeout time.Duration
	logger  *zap.Logger
	cron    *cron.Cron
}

func New(name, spec string, timeout time.Duration, job Job, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if spec == "" {
		spec = DefaultSpec
	}
	cronLogger := NewCronLogger(logger.With(zap.String("job", name)))
	return &Scheduler{
		name:    name,
		spec:    spec,
		job:     job,
		timeout: timeout,
		logger:  logger,
		cron: cron.New(cron.WithChain(
			cron.Recover(cronLogger),
			cron.SkipIfStillRunning(cronLogger),
		)),
	}
}

// Start registers the job and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, func() {
		_ = s.RunNow(context.Background())
	}); err != nil {
		return fmt.Errorf("schedule %s: %w", s.name, err)
	}
	s.cron.Start()
	s.logger.Info("job scheduled", zap.String("job", s.name), zap.String("spec", s.spec))
	return nil
}

// Stop stops the cron loop; the returned context is done once running jobs finish.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// RunNow runs the job once in the caller's goroutine.
func (s *Scheduler) RunNow(ctx context.Context) (err error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	s.logger.Info("job started", zap.String("job", s.name))
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("job %s panicked: %v", s.name, rec)
		}
		if err != nil {
			s.logger.Error("job failed",
				zap.String("job", s.name),
				zap.Duration("elapsed", time.Since(start)),
				zap.Error(err),
			)
			return
		}
		s.logger.Info("job finished",
			zap.String("job", s.name),
			zap.Duration("elapsed", time.Since(start)),
		)
	}()

	return s.job(ctx)
}
