package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/contest"
)

// ContestRepository keeps contests and entries behind one lock so a join
// checks capacity, status and uniqueness and then writes as a single step.
type ContestRepository struct {
	mu       sync.RWMutex
	contests map[string]contest.Contest
	entries  map[string]contest.Entry
	// entryByUser indexes entry ids by contest and user.
	entryByUser map[string]string

	teams *FantasyTeamRepository
	users *UserRepository
}

// NewContestRepository builds a contest store. teams and users are only
// used to resolve display names for leaderboards and may be nil.
func NewContestRepository(teams *FantasyTeamRepository, users *UserRepository) *ContestRepository {
	return &ContestRepository{
		contests:    make(map[string]contest.Contest),
		entries:     make(map[string]contest.Entry),
		entryByUser: make(map[string]string),
		teams:       teams,
		users:       users,
	}
}

func (r *ContestRepository) GetByID(_ context.Context, contestID string) (contest.Contest, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.contests[contestID]
	return item, ok, nil
}

func (r *ContestRepository) ListByMatch(_ context.Context, matchID string) ([]contest.Contest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]contest.Contest, 0)
	for _, item := range r.contests {
		if item.MatchID == matchID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MaxEntries != out[j].MaxEntries {
			return out[i].MaxEntries > out[j].MaxEntries
		}
		return out[i].Slug < out[j].Slug
	})
	return out, nil
}

func (r *ContestRepository) ListMatchIDs(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, item := range r.contests {
		if _, ok := seen[item.MatchID]; ok {
			continue
		}
		seen[item.MatchID] = struct{}{}
		out = append(out, item.MatchID)
	}
	sort.Strings(out)
	return out, nil
}

func (r *ContestRepository) CreateMany(_ context.Context, items []contest.Contest) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := 0
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return created, fmt.Errorf("invalid contest %s: %w", item.ID, err)
		}
		if r.hasSlugLocked(item.MatchID, item.Slug) {
			continue
		}
		r.contests[item.ID] = item
		created++
	}
	return created, nil
}

func (r *ContestRepository) hasSlugLocked(matchID, slug string) bool {
	for _, existing := range r.contests {
		if existing.MatchID == matchID && existing.Slug == slug {
			return true
		}
	}
	return false
}

func (r *ContestRepository) AdvanceStatus(_ context.Context, matchID string, to contest.Status, at time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var changed int64
	for id, item := range r.contests {
		if item.MatchID != matchID || !contest.CanTransition(item.Status, to) {
			continue
		}
		item.Status = to
		item.UpdatedAt = at
		r.contests[id] = item
		changed++
	}
	return changed, nil
}

func (r *ContestRepository) GetEntryByUser(_ context.Context, contestID, userID string) (contest.Entry, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entryID, ok := r.entryByUser[entryKey(contestID, userID)]
	if !ok {
		return contest.Entry{}, false, nil
	}
	return r.entries[entryID], true, nil
}

func (r *ContestRepository) CreateEntry(_ context.Context, entry contest.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := entryKey(entry.ContestID, entry.UserID)
	if _, exists := r.entryByUser[key]; exists {
		return fmt.Errorf("%w: contest=%s", contest.ErrDuplicateEntry, entry.ContestID)
	}

	item, ok := r.contests[entry.ContestID]
	if !ok {
		return fmt.Errorf("%w: contest=%s no longer exists", contest.ErrContestClosed, entry.ContestID)
	}
	if item.IsFull() {
		return fmt.Errorf("%w: contest=%s", contest.ErrContestFull, item.ID)
	}
	if !item.IsOpen() {
		return fmt.Errorf("%w: contest=%s", contest.ErrContestClosed, item.ID)
	}

	item.CurrentEntries++
	item.UpdatedAt = entry.CreatedAt
	r.contests[item.ID] = item
	r.entries[entry.ID] = entry
	r.entryByUser[key] = entry.ID
	return nil
}

func (r *ContestRepository) ListEntriesByUser(_ context.Context, userID string) ([]contest.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]contest.Entry, 0)
	for _, entry := range r.entries {
		if entry.UserID == userID {
			out = append(out, entry)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *ContestRepository) Leaderboard(_ context.Context, contestID string) ([]contest.LeaderboardRow, error) {
	r.mu.RLock()
	entries := make([]contest.Entry, 0)
	for _, entry := range r.entries {
		if entry.ContestID == contestID {
			entries = append(entries, entry)
		}
	}
	r.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		return leaderboardLess(entries[i], entries[j])
	})

	rows := make([]contest.LeaderboardRow, 0, len(entries))
	for _, entry := range entries {
		row := contest.LeaderboardRow{
			EntryID: entry.ID,
			UserID:  entry.UserID,
			TeamID:  entry.TeamID,
			Points:  entry.Points,
			Rank:    entry.Rank,
		}
		if r.users != nil {
			row.UserName = r.users.name(entry.UserID)
		}
		if r.teams != nil {
			row.TeamName = r.teams.name(entry.TeamID)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// leaderboardLess orders ranked entries first by rank, then everything by
// points descending and join time ascending.
func leaderboardLess(a, b contest.Entry) bool {
	switch {
	case a.Rank != nil && b.Rank == nil:
		return true
	case a.Rank == nil && b.Rank != nil:
		return false
	case a.Rank != nil && b.Rank != nil && *a.Rank != *b.Rank:
		return *a.Rank < *b.Rank
	}
	if a.Points != b.Points {
		return a.Points > b.Points
	}
	return a.CreatedAt.Before(b.CreatedAt)
}

func entryKey(contestID, userID string) string {
	return contestID + "::" + userID
}
