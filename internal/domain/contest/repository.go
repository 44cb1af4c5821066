package contest

import (
	"context"
	"time"
)

// Repository describes contest persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, contestID string) (Contest, bool, error)
	ListByMatch(ctx context.Context, matchID string) ([]Contest, error)
	// ListMatchIDs returns every match id that has at least one contest.
	ListMatchIDs(ctx context.Context) ([]string, error)
	// CreateMany inserts contests, skipping any (match id, slug) pair that
	// already exists, and returns how many rows were inserted.
	CreateMany(ctx context.Context, contests []Contest) (int, error)
	// AdvanceStatus moves every contest of a match to status when the move is
	// forward, returning the number of contests changed.
	AdvanceStatus(ctx context.Context, matchID string, to Status, at time.Time) (int64, error)

	GetEntryByUser(ctx context.Context, contestID, userID string) (Entry, bool, error)
	// CreateEntry inserts the entry and increments the contest fill count as
	// one unit. It returns ErrContestFull, ErrContestClosed or
	// ErrDuplicateEntry when the conditional increment or uniqueness fails.
	CreateEntry(ctx context.Context, entry Entry) error
	ListEntriesByUser(ctx context.Context, userID string) ([]Entry, error)
	Leaderboard(ctx context.Context, contestID string) ([]LeaderboardRow, error)
}
