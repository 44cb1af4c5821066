package sqlstore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/jobscheduler"
	qb "github.com/riskibarqy/fantasy-cricket/internal/platform/querybuilder"
)

const defaultSyncRunLimit = 20

type SyncRunRepository struct {
	db *sqlx.DB
}

func NewSyncRunRepository(db *sqlx.DB) *SyncRunRepository {
	return &SyncRunRepository{db: db}
}

func (r *SyncRunRepository) Record(ctx context.Context, run jobscheduler.SyncRun) error {
	insertModel := syncRunTableModel{
		ID:                       run.ID,
		Trigger:                  string(run.Trigger),
		Status:                   string(run.Status),
		LiveCount:                run.LiveCount,
		CompletedCount:           run.CompletedCount,
		NewlyCreatedCount:        run.NewlyCreatedCount,
		LiveContestsUpdated:      run.LiveContestsUpdated,
		CompletedContestsUpdated: run.CompletedContestsUpdated,
		ErrorMessage:             run.ErrorMessage,
		StartedAt:                run.StartedAt,
		FinishedAt:               run.FinishedAt,
	}
	query, args, err := qb.InsertModel("sync_runs", insertModel, `ON CONFLICT (id) DO UPDATE SET
    status = EXCLUDED.status,
    live_count = EXCLUDED.live_count,
    completed_count = EXCLUDED.completed_count,
    newly_created_count = EXCLUDED.newly_created_count,
    live_contests_updated = EXCLUDED.live_contests_updated,
    completed_contests_updated = EXCLUDED.completed_contests_updated,
    error_message = EXCLUDED.error_message,
    finished_at = EXCLUDED.finished_at`)
	if err != nil {
		return fmt.Errorf("build record sync run query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("record sync run: %w", err)
	}
	return nil
}

func (r *SyncRunRepository) ListRecent(ctx context.Context, limit int) ([]jobscheduler.SyncRun, error) {
	if limit <= 0 {
		limit = defaultSyncRunLimit
	}
	query, args, err := qb.Select(syncRunColumns...).From("sync_runs").
		OrderBy("started_at DESC", "id").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list sync runs query: %w", err)
	}

	var rows []syncRunTableModel
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list sync runs: %w", err)
	}

	out := make([]jobscheduler.SyncRun, 0, len(rows))
	for _, row := range rows {
		out = append(out, jobscheduler.SyncRun{
			ID:                       row.ID,
			Trigger:                  jobscheduler.Trigger(row.Trigger),
			Status:                   jobscheduler.RunStatus(row.Status),
			LiveCount:                row.LiveCount,
			CompletedCount:           row.CompletedCount,
			NewlyCreatedCount:        row.NewlyCreatedCount,
			LiveContestsUpdated:      row.LiveContestsUpdated,
			CompletedContestsUpdated: row.CompletedContestsUpdated,
			ErrorMessage:             row.ErrorMessage,
			StartedAt:                row.StartedAt,
			FinishedAt:               row.FinishedAt,
		})
	}
	return out, nil
}
