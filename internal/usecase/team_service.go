package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/fantasyteam"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/player"
	idgen "github.com/riskibarqy/fantasy-cricket/internal/platform/id"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
)

// TeamPlayerInput is one player picked by the user, as shown on the squad
// screen at selection time. Credits are not taken from the caller; the
// snapshot is priced from the match squad.
type TeamPlayerInput struct {
	PlayerID string
	Name     string
	Role     string
	TeamName string
}

type CreateTeamInput struct {
	UserID        string
	MatchID       string
	Name          string
	CaptainID     string
	ViceCaptainID string
	Players       []TeamPlayerInput
}

type TeamService struct {
	repo   fantasyteam.Repository
	rules  fantasyteam.Rules
	idGen  idgen.Generator
	logger *logging.Logger
	now    func() time.Time
}

func NewTeamService(repo fantasyteam.Repository, rules fantasyteam.Rules, idGen idgen.Generator, logger *logging.Logger) *TeamService {
	if logger == nil {
		logger = logging.Default()
	}

	return &TeamService{
		repo:   repo,
		rules:  rules,
		idGen:  idGen,
		logger: logger,
		now:    time.Now,
	}
}

// Budget is the credit cap a team must stay within.
func (s *TeamService) Budget() player.Credits {
	return s.rules.TotalCreditsBudget
}

// CreateTeam validates the selection and stores the team together with its
// player snapshots. Nothing is written when validation fails.
func (s *TeamService) CreateTeam(ctx context.Context, input CreateTeamInput) (fantasyteam.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.CreateTeam")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.MatchID = strings.TrimSpace(input.MatchID)
	input.Name = strings.TrimSpace(input.Name)
	input.CaptainID = strings.TrimSpace(input.CaptainID)
	input.ViceCaptainID = strings.TrimSpace(input.ViceCaptainID)

	switch {
	case input.UserID == "":
		return fantasyteam.Team{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	case input.MatchID == "":
		return fantasyteam.Team{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	case input.Name == "":
		return fantasyteam.Team{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	team := fantasyteam.Team{
		UserID:        input.UserID,
		MatchID:       input.MatchID,
		Name:          input.Name,
		CaptainID:     input.CaptainID,
		ViceCaptainID: input.ViceCaptainID,
		Players:       snapshotPlayers(input.MatchID, input.Players),
	}
	if err := fantasyteam.ValidateTeam(team, s.rules); err != nil {
		return fantasyteam.Team{}, fmt.Errorf("validate team: %w", err)
	}

	teamID, err := s.idGen.NewID()
	if err != nil {
		return fantasyteam.Team{}, fmt.Errorf("generate team id: %w", err)
	}
	team.ID = teamID
	team.TotalCredits = fantasyteam.TotalCredits(team.Players)
	team.CreatedAt = s.now().UTC()

	if err := s.repo.Create(ctx, team); err != nil {
		recordSpanError(span, err)
		return fantasyteam.Team{}, fmt.Errorf("create team: %w", err)
	}

	s.logger.InfoContext(ctx, "fantasy team created",
		"team_id", team.ID,
		"user_id", team.UserID,
		"match_id", team.MatchID,
		"total_credits", team.TotalCredits.String(),
	)
	return team, nil
}

// snapshotPlayers freezes each pick at the same price GetSquad shows for
// matchID.
func snapshotPlayers(matchID string, items []TeamPlayerInput) []fantasyteam.TeamPlayer {
	out := make([]fantasyteam.TeamPlayer, 0, len(items))
	for _, item := range items {
		role, err := player.ParseRole(item.Role)
		if err != nil {
			role = player.InferRole(item.Role, "", "")
		}
		playerID := strings.TrimSpace(item.PlayerID)
		out = append(out, fantasyteam.TeamPlayer{
			PlayerID: playerID,
			Name:     strings.TrimSpace(item.Name),
			Role:     role,
			TeamName: strings.TrimSpace(item.TeamName),
			Credits:  player.PriceFor(matchID, playerID),
		})
	}
	return out
}

func (s *TeamService) ListTeams(ctx context.Context, userID, matchID string) ([]fantasyteam.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListTeams")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	teams, err := s.repo.ListByUser(ctx, userID, strings.TrimSpace(matchID))
	if err != nil {
		return nil, fmt.Errorf("list teams by user: %w", err)
	}
	return teams, nil
}

// GetTeam returns a team owned by userID. Another user's team is reported
// as forbidden rather than hidden.
func (s *TeamService) GetTeam(ctx context.Context, userID, teamID string) (fantasyteam.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetTeam")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return fantasyteam.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	team, exists, err := s.repo.GetByID(ctx, teamID)
	if err != nil {
		return fantasyteam.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return fantasyteam.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	if team.UserID != strings.TrimSpace(userID) {
		return fantasyteam.Team{}, fmt.Errorf("%w: team=%s belongs to another user", ErrForbidden, teamID)
	}
	return team, nil
}
