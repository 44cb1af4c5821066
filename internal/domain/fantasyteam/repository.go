package fantasyteam

import "context"

// Repository describes fantasy team persistence needs from use cases.
// Create must store the team and all of its players atomically.
type Repository interface {
	Create(ctx context.Context, team Team) error
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
	ListByUser(ctx context.Context, userID, matchID string) ([]Team, error)
}
