package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/contest"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/jobscheduler"
	"github.com/stretchr/testify/require"
)

func syncRunAt(id string, startedAt time.Time) jobscheduler.SyncRun {
	return jobscheduler.SyncRun{
		ID:        id,
		Trigger:   jobscheduler.TriggerScheduler,
		Status:    jobscheduler.StatusRunning,
		StartedAt: startedAt,
	}
}

func seedContest(t *testing.T, repo *ContestRepository, id, matchID string, maxEntries, current int) {
	t.Helper()
	c := contest.FromTemplate(id, matchID, contest.Template{Name: "Head To Head " + id, MaxEntries: maxEntries}, testNow)
	c.CurrentEntries = current
	created, err := repo.CreateMany(context.Background(), []contest.Contest{c})
	require.NoError(t, err)
	require.Equal(t, 1, created)
}

func TestContestRepository_CreateEntry_LastSlotRace(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewContestRepository(db)
	seedContest(t, repo, "c1", "m1", 2, 1)

	const callers = 6
	for i := 0; i < callers; i++ {
		seedUser(t, db, fmt.Sprintf("u%d", i))
		seedTeam(t, db, fmt.Sprintf("t%d", i), fmt.Sprintf("u%d", i), "m1")
	}

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

	got, ok, err := repo.GetByID(ctx, "c1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 2, got.CurrentEntries)

	var entries int
	require.NoError(t, db.Get(&entries, "SELECT COUNT(*) FROM contest_entries WHERE contest_id = ?", "c1"))
	require.Equal(t, 1, entries)
}

func TestContestRepository_CreateEntry_DuplicateAndClosed(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewContestRepository(db)
	seedContest(t, repo, "c1", "m1", 10, 0)
	seedUser(t, db, "u1")
	seedUser(t, db, "u2")
	seedTeam(t, db, "t1", "u1", "m1")
	seedTeam(t, db, "t2", "u1", "m1")
	seedTeam(t, db, "t3", "u2", "m1")

	require.NoError(t, repo.CreateEntry(ctx, contest.Entry{ID: "e1", ContestID: "c1", UserID: "u1", TeamID: "t1", CreatedAt: testNow}))

	err := repo.CreateEntry(ctx, contest.Entry{ID: "e2", ContestID: "c1", UserID: "u1", TeamID: "t2", CreatedAt: testNow})
	require.ErrorIs(t, err, contest.ErrDuplicateEntry)

	entry, ok, err := repo.GetEntryByUser(ctx, "c1", "u1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "t1", entry.TeamID)
	require.Nil(t, entry.Rank)

	changed, err := repo.AdvanceStatus(ctx, "m1", contest.StatusLive, testNow)
	require.NoError(t, err)
	require.EqualValues(t, 1, changed)

	err = repo.CreateEntry(ctx, contest.Entry{ID: "e3", ContestID: "c1", UserID: "u2", TeamID: "t3", CreatedAt: testNow})
	require.ErrorIs(t, err, contest.ErrContestClosed)

	got, _, err := repo.GetByID(ctx, "c1")
	require.NoError(t, err)
	require.Equal(t, 1, got.CurrentEntries)

	mine, err := repo.ListEntriesByUser(ctx, "u2")
	require.NoError(t, err)
	require.Empty(t, mine)
}

func TestContestRepository_CreateEntry_MissingContestIsClosed(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewContestRepository(db)
	seedUser(t, db, "u1")
	seedTeam(t, db, "t1", "u1", "m1")

	err := repo.CreateEntry(ctx, contest.Entry{ID: "e1", ContestID: "gone", UserID: "u1", TeamID: "t1", CreatedAt: testNow})
	require.ErrorIs(t, err, contest.ErrContestClosed)

	mine, err := repo.ListEntriesByUser(ctx, "u1")
	require.NoError(t, err)
	require.Empty(t, mine)
}

func TestContestRepository_AdvanceStatusIsForwardOnly(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewContestRepository(db)
	seedContest(t, repo, "c1", "m1", 10, 0)
	seedContest(t, repo, "c2", "m1", 10, 0)
	seedContest(t, repo, "c3", "m2", 10, 0)

	changed, err := repo.AdvanceStatus(ctx, "m1", contest.StatusCompleted, testNow)
	require.NoError(t, err)
	require.EqualValues(t, 2, changed)

	changed, err = repo.AdvanceStatus(ctx, "m1", contest.StatusLive, testNow)
	require.NoError(t, err)
	require.Zero(t, changed)

	changed, err = repo.AdvanceStatus(ctx, "m1", contest.StatusUpcoming, testNow)
	require.NoError(t, err)
	require.Zero(t, changed)

	got, _, err := repo.GetByID(ctx, "c1")
	require.NoError(t, err)
	require.Equal(t, contest.StatusCompleted, got.Status)

	untouched, _, err := repo.GetByID(ctx, "c3")
	require.NoError(t, err)
	require.Equal(t, contest.StatusUpcoming, untouched.Status)
}

func TestContestRepository_CreateManySkipsExistingSlug(t *testing.T) {
	ctx := context.Background()
	repo := NewContestRepository(newTestDB(t))

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

	listed, err := repo.ListByMatch(ctx, "m1")
	require.NoError(t, err)
	require.Len(t, listed, 2)
	require.Equal(t, "mega-contest", listed[0].Slug)
	require.Equal(t, 1000, listed[0].MaxEntries)

	_, err = repo.CreateMany(ctx, []contest.Contest{{ID: "x", MatchID: "m1"}})
	require.Error(t, err)
}

func TestContestRepository_LeaderboardOrdering(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewContestRepository(db)
	seedContest(t, repo, "c1", "m1", 10, 0)

	for i, id := range []string{"u1", "u2", "u3"} {
		seedUser(t, db, id)
		seedTeam(t, db, "t-"+id, id, "m1")
		require.NoError(t, repo.CreateEntry(ctx, contest.Entry{
			ID:        "e-" + id,
			ContestID: "c1",
			UserID:    id,
			TeamID:    "t-" + id,
			CreatedAt: testNow.Add(time.Duration(i) * time.Minute),
		}))
	}
	db.MustExec("UPDATE contest_entries SET points = 120, rank_position = 1 WHERE id = ?", "e-u3")
	db.MustExec("UPDATE contest_entries SET points = 80 WHERE id = ?", "e-u1")
	db.MustExec("UPDATE contest_entries SET points = 95 WHERE id = ?", "e-u2")

	rows, err := repo.Leaderboard(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "e-u3", rows[0].EntryID)
	require.NotNil(t, rows[0].Rank)
	require.Equal(t, 1, *rows[0].Rank)
	require.Equal(t, "e-u2", rows[1].EntryID)
	require.Equal(t, "e-u1", rows[2].EntryID)
	require.Equal(t, "User u2", rows[1].UserName)
	require.Equal(t, "XI t-u2", rows[1].TeamName)
	require.Equal(t, 95.0, rows[1].Points)
}
