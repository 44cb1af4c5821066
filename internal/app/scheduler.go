package app

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/jobscheduler"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
	"github.com/riskibarqy/fantasy-cricket/internal/usecase"
	"github.com/sourcegraph/conc/panics"
)

const (
	syncJobName    = "sync-contests"
	syncRunTimeout = 2 * time.Minute
)

type syncRunner interface {
	SyncContests(ctx context.Context, trigger jobscheduler.Trigger) (usecase.SyncResult, error)
}

// newSyncScheduler registers the contest sync as a duration job that fires
// once at start. A run still in flight when the next tick arrives makes
// gocron skip that tick.
func newSyncScheduler(ctx context.Context, runner syncRunner, interval time.Duration, logger *logging.Logger) (gocron.Scheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			runScheduledSync(ctx, runner, logger)
		}),
		gocron.WithName(syncJobName),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return nil, fmt.Errorf("register %s job: %w", syncJobName, err)
	}
	return scheduler, nil
}

func runScheduledSync(ctx context.Context, runner syncRunner, logger *logging.Logger) {
	if ctx.Err() != nil {
		return
	}
	runCtx, cancel := context.WithTimeout(ctx, syncRunTimeout)
	defer cancel()

	var catcher panics.Catcher
	catcher.Try(func() {
		result, err := runner.SyncContests(runCtx, jobscheduler.TriggerScheduler)
		if err != nil {
			logger.ErrorContext(runCtx, "scheduled sync failed", "job", syncJobName, "error", err)
			return
		}
		logger.InfoContext(runCtx, "scheduled sync finished",
			"job", syncJobName,
			"run_id", result.RunID,
			"live", result.LiveCount,
			"completed", result.CompletedCount,
			"created", result.NewlyCreatedCount,
		)
	})
	if recovered := catcher.Recovered(); recovered != nil {
		logger.Error("scheduled sync panicked",
			"job", syncJobName,
			"panic", fmt.Sprint(recovered.Value),
			"stack", string(recovered.Stack),
		)
	}
}
