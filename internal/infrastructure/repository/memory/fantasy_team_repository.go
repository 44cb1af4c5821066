package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/fantasyteam"
)

type FantasyTeamRepository struct {
	mu    sync.RWMutex
	items map[string]fantasyteam.Team
}

func NewFantasyTeamRepository() *FantasyTeamRepository {
	return &FantasyTeamRepository{items: make(map[string]fantasyteam.Team)}
}

func (r *FantasyTeamRepository) Create(_ context.Context, team fantasyteam.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[team.ID]; exists {
		return fmt.Errorf("team %s already exists", team.ID)
	}
	r.items[team.ID] = cloneTeam(team)
	return nil
}

func (r *FantasyTeamRepository) GetByID(_ context.Context, teamID string) (fantasyteam.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	team, ok := r.items[teamID]
	if !ok {
		return fantasyteam.Team{}, false, nil
	}
	return cloneTeam(team), true, nil
}

// ListByUser returns the user's teams, newest first. An empty matchID lists
// teams for every match.
func (r *FantasyTeamRepository) ListByUser(_ context.Context, userID, matchID string) ([]fantasyteam.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fantasyteam.Team, 0)
	for _, team := range r.items {
		if team.UserID != userID {
			continue
		}
		if matchID != "" && team.MatchID != matchID {
			continue
		}
		out = append(out, cloneTeam(team))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *FantasyTeamRepository) name(teamID string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.items[teamID].Name
}

func cloneTeam(t fantasyteam.Team) fantasyteam.Team {
	copied := t
	copied.Players = append([]fantasyteam.TeamPlayer(nil), t.Players...)
	return copied
}
