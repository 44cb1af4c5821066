package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/jobscheduler"
)

type SyncRunRepository struct {
	mu   sync.RWMutex
	runs map[string]jobscheduler.SyncRun
}

func NewSyncRunRepository() *SyncRunRepository {
	return &SyncRunRepository{runs: make(map[string]jobscheduler.SyncRun)}
}

func (r *SyncRunRepository) Record(_ context.Context, run jobscheduler.SyncRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.runs[run.ID] = run
	return nil
}

func (r *SyncRunRepository) ListRecent(_ context.Context, limit int) ([]jobscheduler.SyncRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]jobscheduler.SyncRun, 0, len(r.runs))
	for _, run := range r.runs {
		out = append(out, run)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartedAt.After(out[j].StartedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
