// Package batch generates several independent embed jobs in parallel.
package batch

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dusk-indust/embedgen/internal/embed"
)

// Result holds the outcome of one job.
type Result struct {
	// Job is the job that was run.
	Job embed.Job

	// Skipped is true when the job never started because another job failed
	// first.
	Skipped bool

	// Err is non-nil if the job failed.
	Err error
}

// Runner generates jobs concurrently. Jobs must write distinct outputs;
// config.Manifest.Validate enforces that for manifest jobs.
type Runner struct {
	opts   embed.Options
	logger *zap.Logger
	now    func() time.Time
}

// NewRunner creates a Runner. logger may be nil.
func NewRunner(opts embed.Options, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		opts:   opts,
		logger: logger,
		now:    time.Now,
	}
}

// Run generates every job in its own goroutine. It uses errgroup.WithContext
// so that the first failure cancels the derived context and jobs that have
// not started yet are skipped. Each job still reads its inputs sequentially.
//
// Results are returned in job order regardless of whether an error occurred.
// The returned error is the first non-nil error from the errgroup.
func (r *Runner) Run(ctx context.Context, jobs []embed.Job) ([]Result, error) {
	results := make([]Result, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	now := r.now()

	for i, job := range jobs {
		results[i] = Result{Job: job}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i].Skipped = true
				return err
			}

			r.logger.Debug("generating", zap.String("output", job.OutputPath()),
				zap.Int("inputs", len(job.Requests)))

			if err := embed.Run(job, r.opts, now); err != nil {
				results[i].Err = err
				r.logger.Error("job failed", zap.String("output", job.OutputPath()), zap.Error(err))
				return err // cancels jobs that have not started
			}

			r.logger.Info("generated", zap.String("output", job.OutputPath()))
			return nil
		})
	}

	err := g.Wait()
	return results, err
}
