package jobscheduler

import "context"

type Repository interface {
	// Record inserts the run or updates it when the id already exists.
	Record(ctx context.Context, run SyncRun) error
	ListRecent(ctx context.Context, limit int) ([]SyncRun, error)
}
