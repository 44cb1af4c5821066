package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/contest"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/fantasyteam"
	idgen "github.com/riskibarqy/fantasy-cricket/internal/platform/id"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
)

type JoinContestInput struct {
	UserID    string
	ContestID string
	TeamID    string
}

type ContestService struct {
	contestRepo contest.Repository
	teamRepo    fantasyteam.Repository
	idGen       idgen.Generator
	logger      *logging.Logger
	now         func() time.Time
}

func NewContestService(
	contestRepo contest.Repository,
	teamRepo fantasyteam.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *ContestService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ContestService{
		contestRepo: contestRepo,
		teamRepo:    teamRepo,
		idGen:       idGen,
		logger:      logger,
		now:         time.Now,
	}
}

// JoinContest enters a user's team into a contest. Checks run in a fixed
// order so the first failing one decides the error: contest exists, has
// room, is upcoming, team exists, team is owned by the user, team is for the
// contest's match, user has not joined yet. The repository re-checks capacity
// and uniqueness atomically when writing.
func (s *ContestService) JoinContest(ctx context.Context, input JoinContestInput) (contest.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContestService.JoinContest")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.ContestID = strings.TrimSpace(input.ContestID)
	input.TeamID = strings.TrimSpace(input.TeamID)
	switch {
	case input.UserID == "":
		return contest.Entry{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	case input.ContestID == "":
		return contest.Entry{}, fmt.Errorf("%w: contest id is required", ErrInvalidInput)
	case input.TeamID == "":
		return contest.Entry{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	item, exists, err := s.contestRepo.GetByID(ctx, input.ContestID)
	if err != nil {
		return contest.Entry{}, fmt.Errorf("get contest: %w", err)
	}
	if !exists {
		return contest.Entry{}, fmt.Errorf("%w: contest=%s", ErrNotFound, input.ContestID)
	}
	if item.IsFull() {
		return contest.Entry{}, fmt.Errorf("%w: contest=%s", contest.ErrContestFull, item.ID)
	}
	if !item.IsOpen() {
		return contest.Entry{}, fmt.Errorf("%w: contest=%s status=%s", contest.ErrContestClosed, item.ID, item.Status)
	}

	team, exists, err := s.teamRepo.GetByID(ctx, input.TeamID)
	if err != nil {
		return contest.Entry{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return contest.Entry{}, fmt.Errorf("%w: team=%s", ErrNotFound, input.TeamID)
	}
	if team.UserID != input.UserID {
		return contest.Entry{}, fmt.Errorf("%w: team=%s belongs to another user", ErrForbidden, team.ID)
	}
	if team.MatchID != item.MatchID {
		return contest.Entry{}, fmt.Errorf("%w: team match=%s contest match=%s", contest.ErrMatchMismatch, team.MatchID, item.MatchID)
	}

	_, joined, err := s.contestRepo.GetEntryByUser(ctx, item.ID, input.UserID)
	if err != nil {
		return contest.Entry{}, fmt.Errorf("get existing entry: %w", err)
	}
	if joined {
		return contest.Entry{}, fmt.Errorf("%w: contest=%s", contest.ErrDuplicateEntry, item.ID)
	}

	entryID, err := s.idGen.NewID()
	if err != nil {
		return contest.Entry{}, fmt.Errorf("generate entry id: %w", err)
	}
	entry := contest.Entry{
		ID:        entryID,
		ContestID: item.ID,
		UserID:    input.UserID,
		TeamID:    team.ID,
		CreatedAt: s.now().UTC(),
	}
	if err := s.contestRepo.CreateEntry(ctx, entry); err != nil {
		recordSpanError(span, err)
		return contest.Entry{}, fmt.Errorf("create contest entry: %w", err)
	}

	s.logger.InfoContext(ctx, "contest joined",
		"contest_id", entry.ContestID,
		"entry_id", entry.ID,
		"user_id", entry.UserID,
		"team_id", entry.TeamID,
	)
	return entry, nil
}

func (s *ContestService) ListContests(ctx context.Context, matchID string) ([]contest.Contest, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContestService.ListContests")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return nil, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	items, err := s.contestRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("list contests by match: %w", err)
	}
	return items, nil
}

func (s *ContestService) GetContest(ctx context.Context, contestID string) (contest.Contest, error) {
	contestID = strings.TrimSpace(contestID)
	if contestID == "" {
		return contest.Contest{}, fmt.Errorf("%w: contest id is required", ErrInvalidInput)
	}

	item, exists, err := s.contestRepo.GetByID(ctx, contestID)
	if err != nil {
		return contest.Contest{}, fmt.Errorf("get contest: %w", err)
	}
	if !exists {
		return contest.Contest{}, fmt.Errorf("%w: contest=%s", ErrNotFound, contestID)
	}
	return item, nil
}

// Leaderboard lists contest entries ranked first, then by points and join time.
func (s *ContestService) Leaderboard(ctx context.Context, contestID string) ([]contest.LeaderboardRow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContestService.Leaderboard")
	defer span.End()

	item, err := s.GetContest(ctx, contestID)
	if err != nil {
		return nil, err
	}

	rows, err := s.contestRepo.Leaderboard(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("load leaderboard: %w", err)
	}
	return rows, nil
}

func (s *ContestService) ListMyEntries(ctx context.Context, userID string) ([]contest.Entry, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	entries, err := s.contestRepo.ListEntriesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list entries by user: %w", err)
	}
	return entries, nil
}

// SeedContests creates the default contest set for a match. Calling it again
// for the same match creates nothing.
func (s *ContestService) SeedContests(ctx context.Context, matchID string) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContestService.SeedContests")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return 0, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	created, err := provisionDefaultContests(ctx, s.contestRepo, s.idGen, matchID, s.now().UTC())
	if err != nil {
		recordSpanError(span, err)
		return 0, err
	}
	s.logger.InfoContext(ctx, "contests seeded", "match_id", matchID, "created", created)
	return created, nil
}

func provisionDefaultContests(
	ctx context.Context,
	repo contest.Repository,
	idGen idgen.Generator,
	matchID string,
	now time.Time,
) (int, error) {
	items := make([]contest.Contest, 0, len(contest.DefaultTemplates))
	for _, tpl := range contest.DefaultTemplates {
		contestID, err := idGen.NewID()
		if err != nil {
			return 0, fmt.Errorf("generate contest id: %w", err)
		}
		items = append(items, contest.FromTemplate(contestID, matchID, tpl, now))
	}

	created, err := repo.CreateMany(ctx, items)
	if err != nil {
		return 0, fmt.Errorf("create default contests for match=%s: %w", matchID, err)
	}
	return created, nil
}
