package jobscheduler

import "time"

type RunStatus string

const (
	StatusRunning   RunStatus = "running"
	StatusCompleted RunStatus = "completed"
	StatusFailed    RunStatus = "failed"
)

type Trigger string

const (
	TriggerScheduler Trigger = "scheduler"
	TriggerHTTP      Trigger = "http"
	TriggerManual    Trigger = "manual"
)

// SyncRun records one execution of the contest synchronization job.
type SyncRun struct {
	ID                       string
	Trigger                  Trigger
	Status                   RunStatus
	LiveCount                int
	CompletedCount           int
	NewlyCreatedCount        int
	LiveContestsUpdated      int64
	CompletedContestsUpdated int64
	ErrorMessage             string
	StartedAt                time.Time
	FinishedAt               *time.Time
}

func (r SyncRun) Duration() time.Duration {
	if r.FinishedAt == nil {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
