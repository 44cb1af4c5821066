package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/contest"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/jobscheduler"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/match"
	idgen "github.com/riskibarqy/fantasy-cricket/internal/platform/id"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/resilience"
)

const (
	syncFlightKey      = "sync-contests"
	defaultSyncWorkers = 4
	maxSyncRunsListed  = 100
)

// SyncResult summarises one reconciliation run. Live and completed counts
// are matches seen in that state; the *ContestsUpdated counts are contest
// rows whose status actually changed.
type SyncResult struct {
	RunID                    string `json:"run_id"`
	LiveCount                int    `json:"live_count"`
	CompletedCount           int    `json:"completed_count"`
	NewlyCreatedCount        int    `json:"newly_created_count"`
	LiveContestsUpdated      int64  `json:"live_contests_updated"`
	CompletedContestsUpdated int64  `json:"completed_contests_updated"`
}

type SyncService struct {
	matches     *MatchService
	contestRepo contest.Repository
	runRepo     jobscheduler.Repository
	idGen       idgen.Generator
	workers     int
	logger      *logging.Logger
	flight      resilience.SingleFlight
	now         func() time.Time
}

func NewSyncService(
	matches *MatchService,
	contestRepo contest.Repository,
	runRepo jobscheduler.Repository,
	idGen idgen.Generator,
	workers int,
	logger *logging.Logger,
) *SyncService {
	if logger == nil {
		logger = logging.Default()
	}
	if workers < 1 {
		workers = defaultSyncWorkers
	}

	return &SyncService{
		matches:     matches,
		contestRepo: contestRepo,
		runRepo:     runRepo,
		idGen:       idGen,
		workers:     workers,
		logger:      logger.Named("sync"),
		now:         time.Now,
	}
}

// SyncContests moves contests of live and completed matches forward and
// creates the default contests for upcoming matches that have none yet.
// Overlapping calls share one run. A provider outage fails the run before any
// write; a failure after some writes leaves those writes in place.
func (s *SyncService) SyncContests(ctx context.Context, trigger jobscheduler.Trigger) (SyncResult, error) {
	value, err, shared := s.flight.Do(syncFlightKey, func() (any, error) {
		return s.run(ctx, trigger)
	})
	if shared {
		s.logger.InfoContext(ctx, "sync run joined in-flight run", "trigger", trigger)
	}
	result, _ := value.(SyncResult)
	return result, err
}

func (s *SyncService) run(ctx context.Context, trigger jobscheduler.Trigger) (SyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SyncContests")
	defer span.End()

	runID, err := s.idGen.NewID()
	if err != nil {
		return SyncResult{}, fmt.Errorf("generate sync run id: %w", err)
	}
	run := jobscheduler.SyncRun{
		ID:        runID,
		Trigger:   trigger,
		Status:    jobscheduler.StatusRunning,
		StartedAt: s.now().UTC(),
	}
	s.record(ctx, run)

	result, err := s.reconcile(ctx)
	result.RunID = runID

	finishedAt := s.now().UTC()
	run.FinishedAt = &finishedAt
	run.LiveCount = result.LiveCount
	run.CompletedCount = result.CompletedCount
	run.NewlyCreatedCount = result.NewlyCreatedCount
	run.LiveContestsUpdated = result.LiveContestsUpdated
	run.CompletedContestsUpdated = result.CompletedContestsUpdated
	run.Status = jobscheduler.StatusCompleted
	if err != nil {
		run.Status = jobscheduler.StatusFailed
		run.ErrorMessage = err.Error()
		recordSpanError(span, err)
	}
	s.record(ctx, run)

	if err != nil {
		s.logger.ErrorContext(ctx, "sync run failed", "run_id", runID, "trigger", trigger, "error", err)
		return result, err
	}
	s.logger.InfoContext(ctx, "sync run finished",
		"run_id", runID,
		"trigger", trigger,
		"live", result.LiveCount,
		"completed", result.CompletedCount,
		"created", result.NewlyCreatedCount,
		"duration", run.Duration(),
	)
	return result, nil
}

func (s *SyncService) reconcile(ctx context.Context) (SyncResult, error) {
	if s.matches == nil {
		return SyncResult{}, fmt.Errorf("%w: match service is not configured", ErrDependencyUnavailable)
	}
	matches, err := s.matches.fetchMatches(ctx)
	if err != nil {
		return SyncResult{}, fmt.Errorf("fetch matches: %w", err)
	}

	live, completed, upcoming := partitionMatchIDs(matches)
	result := SyncResult{
		LiveCount:      len(live),
		CompletedCount: len(completed),
	}

	liveUpdated, completedUpdated, err := s.advanceStatuses(ctx, live, completed)
	result.LiveContestsUpdated = liveUpdated
	result.CompletedContestsUpdated = completedUpdated
	if err != nil {
		return result, err
	}

	created, err := s.provisionMissing(ctx, upcoming)
	result.NewlyCreatedCount = created
	if err != nil {
		return result, err
	}
	return result, nil
}

// partitionMatchIDs returns de-duplicated match ids per state in feed order.
func partitionMatchIDs(matches []match.Match) (live, completed, upcoming []string) {
	seen := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		if _, dup := seen[m.ID]; dup {
			continue
		}
		seen[m.ID] = struct{}{}

		switch m.State() {
		case match.StateLive:
			live = append(live, m.ID)
		case match.StateCompleted:
			completed = append(completed, m.ID)
		default:
			upcoming = append(upcoming, m.ID)
		}
	}
	return live, completed, upcoming
}

type statusUpdate struct {
	matchID string
	to      contest.Status
}

func (s *SyncService) advanceStatuses(ctx context.Context, live, completed []string) (int64, int64, error) {
	updates := make([]statusUpdate, 0, len(live)+len(completed))
	for _, id := range live {
		updates = append(updates, statusUpdate{matchID: id, to: contest.StatusLive})
	}
	for _, id := range completed {
		updates = append(updates, statusUpdate{matchID: id, to: contest.StatusCompleted})
	}
	if len(updates) == 0 {
		return 0, 0, nil
	}

	workers := s.workers
	if workers > len(updates) {
		workers = len(updates)
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return 0, 0, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		liveUpdated      atomic.Int64
		completedUpdated atomic.Int64
		errMu            sync.Mutex
		errs             []error
		wg               sync.WaitGroup
	)
	at := s.now().UTC()
	for _, update := range updates {
		update := update
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()

			changed, err := s.contestRepo.AdvanceStatus(ctx, update.matchID, update.to, at)
			if err != nil {
				errMu.Lock()
				errs = append(errs, fmt.Errorf("advance contests of match=%s to %s: %w", update.matchID, update.to, err))
				errMu.Unlock()
				return
			}
			if update.to == contest.StatusLive {
				liveUpdated.Add(changed)
			} else {
				completedUpdated.Add(changed)
			}
		}); err != nil {
			wg.Done()
			errMu.Lock()
			errs = append(errs, fmt.Errorf("submit status update to worker pool: %w", err))
			errMu.Unlock()
		}
	}
	wg.Wait()

	return liveUpdated.Load(), completedUpdated.Load(), errors.Join(errs...)
}

func (s *SyncService) provisionMissing(ctx context.Context, upcoming []string) (int, error) {
	if len(upcoming) == 0 {
		return 0, nil
	}

	existingIDs, err := s.contestRepo.ListMatchIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("list matches with contests: %w", err)
	}
	existing := make(map[string]struct{}, len(existingIDs))
	for _, id := range existingIDs {
		existing[id] = struct{}{}
	}

	created := 0
	now := s.now().UTC()
	for _, matchID := range upcoming {
		if _, ok := existing[matchID]; ok {
			continue
		}
		n, err := provisionDefaultContests(ctx, s.contestRepo, s.idGen, matchID, now)
		if err != nil {
			return created, err
		}
		created += n
		existing[matchID] = struct{}{}
	}
	return created, nil
}

func (s *SyncService) record(ctx context.Context, run jobscheduler.SyncRun) {
	if s.runRepo == nil {
		return
	}
	if err := s.runRepo.Record(ctx, run); err != nil {
		s.logger.WarnContext(ctx, "record sync run failed", "run_id", run.ID, "status", run.Status, "error", err)
	}
}

// ListRuns returns recent sync runs, newest first.
func (s *SyncService) ListRuns(ctx context.Context, limit int) ([]jobscheduler.SyncRun, error) {
	if s.runRepo == nil {
		return []jobscheduler.SyncRun{}, nil
	}
	if limit <= 0 || limit > maxSyncRunsListed {
		limit = 20
	}

	runs, err := s.runRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list sync runs: %w", err)
	}
	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})
	return runs, nil
}
