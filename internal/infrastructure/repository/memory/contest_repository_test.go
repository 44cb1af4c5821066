package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/contest"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/fantasyteam"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/user"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

func seedContest(t *testing.T, repo *ContestRepository, c contest.Contest) {
	t.Helper()
	created, err := repo.CreateMany(context.Background(), []contest.Contest{c})
	require.NoError(t, err)
	require.Equal(t, 1, created)
}

// setScore stands in for the external scorer that fills points and ranks.
func setScore(t *testing.T, repo *ContestRepository, entryID string, points float64, rank *int) {
	t.Helper()
	repo.mu.Lock()
	defer repo.mu.Unlock()

	entry, ok := repo.entries[entryID]
	require.True(t, ok, "entry %s", entryID)
	entry.Points = points
	entry.Rank = rank
	repo.entries[entryID] = entry
}

func newContest(id, matchID string, maxEntries, current int) contest.Contest {
	c := contest.FromTemplate(id, matchID, contest.Template{Name: "Head To Head " + id, MaxEntries: maxEntries}, testNow)
	c.CurrentEntries = current
	return c
}

func TestContestRepository_CreateEntry_LastSlotRace(t *testing.T) {
	ctx := context.Background()
	repo := NewContestRepository(nil, nil)
	seedContest(t, repo, newContest("c1", "m1", 2, 1))

	const callers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		full      int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := repo.CreateEntry(ctx, contest.Entry{
				ID:        fmt.Sprintf("e%d", i),
				ContestID: "c1",
				UserID:    fmt.Sprintf("u%d", i),
				TeamID:    fmt.Sprintf("t%d", i),
				CreatedAt: testNow,
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, contest.ErrContestFull):
				full++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	require.Equal(t, 1, successes)
	require.Equal(t, callers-1, full)

	got, _, err := repo.GetByID(ctx, "c1")
	require.NoError(t, err)
	require.Equal(t, 2, got.CurrentEntries)
}

func TestContestRepository_CreateEntry_DuplicateAndClosed(t *testing.T) {
	ctx := context.Background()
	repo := NewContestRepository(nil, nil)
	seedContest(t, repo, newContest("c1", "m1", 10, 0))

	require.NoError(t, repo.CreateEntry(ctx, contest.Entry{ID: "e1", ContestID: "c1", UserID: "u1", TeamID: "t1"}))
	err := repo.CreateEntry(ctx, contest.Entry{ID: "e2", ContestID: "c1", UserID: "u1", TeamID: "t2"})
	require.ErrorIs(t, err, contest.ErrDuplicateEntry)

	changed, err := repo.AdvanceStatus(ctx, "m1", contest.StatusLive, testNow)
	require.NoError(t, err)
	require.EqualValues(t, 1, changed)

	err = repo.CreateEntry(ctx, contest.Entry{ID: "e3", ContestID: "c1", UserID: "u2", TeamID: "t3"})
	require.ErrorIs(t, err, contest.ErrContestClosed)

	got, _, _ := repo.GetByID(ctx, "c1")
	require.Equal(t, 1, got.CurrentEntries)
}

func TestContestRepository_AdvanceStatusIsForwardOnly(t *testing.T) {
	ctx := context.Background()
	repo := NewContestRepository(nil, nil)
	seedContest(t, repo, newContest("c1", "m1", 10, 0))

	changed, err := repo.AdvanceStatus(ctx, "m1", contest.StatusCompleted, testNow)
	require.NoError(t, err)
	require.EqualValues(t, 1, changed)

	changed, err = repo.AdvanceStatus(ctx, "m1", contest.StatusLive, testNow)
	require.NoError(t, err)
	require.EqualValues(t, 0, changed)

	got, _, _ := repo.GetByID(ctx, "c1")
	require.Equal(t, contest.StatusCompleted, got.Status)
}

func TestContestRepository_CreateManySkipsExistingSlug(t *testing.T) {
	ctx := context.Background()
	repo := NewContestRepository(nil, nil)

	first := []contest.Contest{
		contest.FromTemplate("a", "m1", contest.DefaultTemplates[0], testNow),
		contest.FromTemplate("b", "m1", contest.DefaultTemplates[1], testNow),
	}
	created, err := repo.CreateMany(ctx, first)
	require.NoError(t, err)
	require.Equal(t, 2, created)

	again := []contest.Contest{
		contest.FromTemplate("c", "m1", contest.DefaultTemplates[0], testNow),
		contest.FromTemplate("d", "m1", contest.DefaultTemplates[1], testNow),
	}
	created, err = repo.CreateMany(ctx, again)
	require.NoError(t, err)
	require.Zero(t, created)

	ids, err := repo.ListMatchIDs(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"m1"}, ids)
}

func TestContestRepository_LeaderboardOrdering(t *testing.T) {
	ctx := context.Background()
	teams := NewFantasyTeamRepository()
	users := NewUserRepository()
	repo := NewContestRepository(teams, users)
	seedContest(t, repo, newContest("c1", "m1", 10, 0))

	for i, id := range []string{"u1", "u2", "u3"} {
		require.NoError(t, users.Upsert(ctx, user.User{ID: id, Name: "User " + id}))
		require.NoError(t, teams.Create(ctx, fantasyteam.Team{ID: "t-" + id, UserID: id, MatchID: "m1", Name: "XI " + id}))
		require.NoError(t, repo.CreateEntry(ctx, contest.Entry{
			ID:        "e-" + id,
			ContestID: "c1",
			UserID:    id,
			TeamID:    "t-" + id,
			CreatedAt: testNow.Add(time.Duration(i) * time.Minute),
		}))
	}
	rankOne := 1
	setScore(t, repo, "e-u3", 120, &rankOne)
	setScore(t, repo, "e-u1", 80, nil)
	setScore(t, repo, "e-u2", 95, nil)

	rows, err := repo.Leaderboard(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "e-u3", rows[0].EntryID)
	require.Equal(t, "e-u2", rows[1].EntryID)
	require.Equal(t, "e-u1", rows[2].EntryID)
	require.Equal(t, "User u2", rows[1].UserName)
	require.Equal(t, "XI u2", rows[1].TeamName)
}

func TestContestRepository_CreateEntryMissingContestIsClosed(t *testing.T) {
	ctx := context.Background()
	repo := NewContestRepository(nil, nil)

	err := repo.CreateEntry(ctx, contest.Entry{ID: "e1", ContestID: "gone", UserID: "u1", TeamID: "t1", CreatedAt: testNow})
	require.ErrorIs(t, err, contest.ErrContestClosed)

	mine, err := repo.ListEntriesByUser(ctx, "u1")
	require.NoError(t, err)
	require.Empty(t, mine)
}
