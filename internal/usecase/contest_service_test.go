package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/contest"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/fantasyteam"
	"github.com/riskibarqy/fantasy-cricket/internal/infrastructure/repository/memory"
	contestmock "github.com/riskibarqy/fantasy-cricket/internal/mocks/domain/contest"
	fantasyteammock "github.com/riskibarqy/fantasy-cricket/internal/mocks/domain/fantasyteam"
	"github.com/stretchr/testify/mock"
)

func openContest(maxEntries, current int) contest.Contest {
	c := contest.FromTemplate("c1", "m1", contest.Template{Name: "Mega Contest", MaxEntries: maxEntries}, fixedNow)
	c.CurrentEntries = current
	return c
}

func newMockedContestService(t *testing.T) (*ContestService, *contestmock.Repository, *fantasyteammock.Repository) {
	contestRepo := contestmock.NewRepository(t)
	teamRepo := fantasyteammock.NewRepository(t)
	service := NewContestService(contestRepo, teamRepo, &sequenceIDGenerator{prefix: "entry"}, nil)
	service.now = func() time.Time { return fixedNow }
	return service, contestRepo, teamRepo
}

func TestContestService_JoinContest_Success(t *testing.T) {
	ctx := context.Background()
	service, contestRepo, teamRepo := newMockedContestService(t)

	contestRepo.On("GetByID", mock.Anything, "c1").Return(openContest(10, 3), true, nil).Once()
	teamRepo.On("GetByID", mock.Anything, "t1").
		Return(fantasyteam.Team{ID: "t1", UserID: "user-1", MatchID: "m1"}, true, nil).
		Once()
	contestRepo.On("GetEntryByUser", mock.Anything, "c1", "user-1").Return(contest.Entry{}, false, nil).Once()
	contestRepo.
		On("CreateEntry", mock.Anything, mock.MatchedBy(func(e contest.Entry) bool {
			return e.ID == "entry-1" && e.ContestID == "c1" && e.UserID == "user-1" && e.TeamID == "t1" && e.CreatedAt.Equal(fixedNow)
		})).
		Return(nil).
		Once()

	entry, err := service.JoinContest(ctx, JoinContestInput{UserID: "user-1", ContestID: "c1", TeamID: "t1"})
	if err != nil {
		t.Fatalf("join contest: %v", err)
	}
	if entry.ID != "entry-1" {
		t.Fatalf("unexpected entry id: %s", entry.ID)
	}
}

func TestContestService_JoinContest_CheckOrder(t *testing.T) {
	ownTeam := fantasyteam.Team{ID: "t1", UserID: "user-1", MatchID: "m1"}

	tests := []struct {
		name    string
		setup   func(contestRepo *contestmock.Repository, teamRepo *fantasyteammock.Repository)
		wantErr error
	}{
		{
			name: "contest missing",
			setup: func(contestRepo *contestmock.Repository, _ *fantasyteammock.Repository) {
				contestRepo.On("GetByID", mock.Anything, "c1").Return(contest.Contest{}, false, nil).Once()
			},
			wantErr: ErrNotFound,
		},
		{
			name: "full wins over closed",
			setup: func(contestRepo *contestmock.Repository, _ *fantasyteammock.Repository) {
				c := openContest(2, 2)
				c.Status = contest.StatusLive
				contestRepo.On("GetByID", mock.Anything, "c1").Return(c, true, nil).Once()
			},
			wantErr: contest.ErrContestFull,
		},
		{
			name: "closed",
			setup: func(contestRepo *contestmock.Repository, _ *fantasyteammock.Repository) {
				c := openContest(10, 0)
				c.Status = contest.StatusCompleted
				contestRepo.On("GetByID", mock.Anything, "c1").Return(c, true, nil).Once()
			},
			wantErr: contest.ErrContestClosed,
		},
		{
			name: "team missing",
			setup: func(contestRepo *contestmock.Repository, teamRepo *fantasyteammock.Repository) {
				contestRepo.On("GetByID", mock.Anything, "c1").Return(openContest(10, 0), true, nil).Once()
				teamRepo.On("GetByID", mock.Anything, "t1").Return(fantasyteam.Team{}, false, nil).Once()
			},
			wantErr: ErrNotFound,
		},
		{
			name: "team of another user",
			setup: func(contestRepo *contestmock.Repository, teamRepo *fantasyteammock.Repository) {
				contestRepo.On("GetByID", mock.Anything, "c1").Return(openContest(10, 0), true, nil).Once()
				teamRepo.On("GetByID", mock.Anything, "t1").
					Return(fantasyteam.Team{ID: "t1", UserID: "user-2", MatchID: "m2"}, true, nil).
					Once()
			},
			wantErr: ErrForbidden,
		},
		{
			name: "team for another match",
			setup: func(contestRepo *contestmock.Repository, teamRepo *fantasyteammock.Repository) {
				contestRepo.On("GetByID", mock.Anything, "c1").Return(openContest(10, 0), true, nil).Once()
				teamRepo.On("GetByID", mock.Anything, "t1").
					Return(fantasyteam.Team{ID: "t1", UserID: "user-1", MatchID: "m2"}, true, nil).
					Once()
			},
			wantErr: contest.ErrMatchMismatch,
		},
		{
			name: "already joined",
			setup: func(contestRepo *contestmock.Repository, teamRepo *fantasyteammock.Repository) {
				contestRepo.On("GetByID", mock.Anything, "c1").Return(openContest(10, 1), true, nil).Once()
				teamRepo.On("GetByID", mock.Anything, "t1").Return(ownTeam, true, nil).Once()
				contestRepo.On("GetEntryByUser", mock.Anything, "c1", "user-1").
					Return(contest.Entry{ID: "e0"}, true, nil).
					Once()
			},
			wantErr: contest.ErrDuplicateEntry,
		},
		{
			name: "last slot taken concurrently",
			setup: func(contestRepo *contestmock.Repository, teamRepo *fantasyteammock.Repository) {
				contestRepo.On("GetByID", mock.Anything, "c1").Return(openContest(10, 9), true, nil).Once()
				teamRepo.On("GetByID", mock.Anything, "t1").Return(ownTeam, true, nil).Once()
				contestRepo.On("GetEntryByUser", mock.Anything, "c1", "user-1").Return(contest.Entry{}, false, nil).Once()
				contestRepo.On("CreateEntry", mock.Anything, mock.Anything).Return(contest.ErrContestFull).Once()
			},
			wantErr: contest.ErrContestFull,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			service, contestRepo, teamRepo := newMockedContestService(t)
			tc.setup(contestRepo, teamRepo)

			_, err := service.JoinContest(context.Background(), JoinContestInput{UserID: "user-1", ContestID: "c1", TeamID: "t1"})
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestContestService_JoinContest_RequiresIDs(t *testing.T) {
	service, _, _ := newMockedContestService(t)

	_, err := service.JoinContest(context.Background(), JoinContestInput{UserID: "user-1", ContestID: " "})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestContestService_SeedContests_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewContestRepository(nil, nil)
	service := NewContestService(repo, memory.NewFantasyTeamRepository(), &sequenceIDGenerator{prefix: "contest"}, nil)

	created, err := service.SeedContests(ctx, "m1")
	if err != nil {
		t.Fatalf("seed contests: %v", err)
	}
	if created != len(contest.DefaultTemplates) {
		t.Fatalf("expected %d contests, got %d", len(contest.DefaultTemplates), created)
	}

	created, err = service.SeedContests(ctx, "m1")
	if err != nil {
		t.Fatalf("seed contests again: %v", err)
	}
	if created != 0 {
		t.Fatalf("expected no new contests, got %d", created)
	}

	listed, err := service.ListContests(ctx, "m1")
	if err != nil {
		t.Fatalf("list contests: %v", err)
	}
	if len(listed) != len(contest.DefaultTemplates) {
		t.Fatalf("expected %d listed contests, got %d", len(contest.DefaultTemplates), len(listed))
	}
}

func TestContestService_JoinAndLeaderboard_WithMemoryStores(t *testing.T) {
	ctx := context.Background()
	teams := memory.NewFantasyTeamRepository()
	users := memory.NewUserRepository()
	contests := memory.NewContestRepository(teams, users)
	service := NewContestService(contests, teams, &sequenceIDGenerator{prefix: "entry"}, nil)

	if _, err := contests.CreateMany(ctx, []contest.Contest{openContest(2, 0)}); err != nil {
		t.Fatalf("seed contest: %v", err)
	}
	for _, id := range []string{"user-1", "user-2", "user-3"} {
		if err := teams.Create(ctx, fantasyteam.Team{ID: "t-" + id, UserID: id, MatchID: "m1", Name: "XI"}); err != nil {
			t.Fatalf("seed team: %v", err)
		}
	}

	for _, id := range []string{"user-1", "user-2"} {
		if _, err := service.JoinContest(ctx, JoinContestInput{UserID: id, ContestID: "c1", TeamID: "t-" + id}); err != nil {
			t.Fatalf("join contest for %s: %v", id, err)
		}
	}
	_, err := service.JoinContest(ctx, JoinContestInput{UserID: "user-3", ContestID: "c1", TeamID: "t-user-3"})
	if !errors.Is(err, contest.ErrContestFull) {
		t.Fatalf("expected ErrContestFull, got %v", err)
	}

	rows, err := service.Leaderboard(ctx, "c1")
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 leaderboard rows, got %d", len(rows))
	}

	mine, err := service.ListMyEntries(ctx, "user-1")
	if err != nil {
		t.Fatalf("list my entries: %v", err)
	}
	if len(mine) != 1 || mine[0].ContestID != "c1" {
		t.Fatalf("unexpected entries: %+v", mine)
	}

	if _, err := service.Leaderboard(ctx, "c404"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
