package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/match"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/player"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
	"github.com/sourcegraph/conc/iter"
)

// MatchProvider is the external cricket data source. CurrentMatches is the
// primary listing; Matches is the broader fallback listing.
type MatchProvider interface {
	CurrentMatches(ctx context.Context) ([]match.Match, error)
	Matches(ctx context.Context) ([]match.Match, error)
	Squad(ctx context.Context, matchID string) ([]player.SquadTeam, error)
	PlayerInfo(ctx context.Context, playerID string) (player.Profile, error)
}

type MatchService struct {
	provider MatchProvider
	logger   *logging.Logger
	now      func() time.Time
}

func NewMatchService(provider MatchProvider, logger *logging.Logger) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}

	return &MatchService{
		provider: provider,
		logger:   logger,
		now:      time.Now,
	}
}

// FetchMatches returns classified matches and never fails. An empty result
// means the provider is temporarily unavailable or has no matches.
func (s *MatchService) FetchMatches(ctx context.Context) []match.Match {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.FetchMatches")
	defer span.End()

	items, err := s.fetchMatches(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "match feed unavailable, returning empty list", "error", err)
		return []match.Match{}
	}
	return items
}

// fetchMatches tries the primary listing, then the fallback listing, and
// returns ErrDependencyUnavailable only when both fail.
func (s *MatchService) fetchMatches(ctx context.Context) ([]match.Match, error) {
	if s.provider == nil {
		return nil, fmt.Errorf("%w: match provider is not configured", ErrDependencyUnavailable)
	}

	items, primaryErr := s.provider.CurrentMatches(ctx)
	if primaryErr != nil {
		s.logger.WarnContext(ctx, "primary match feed failed, trying fallback", "error", primaryErr)

		var fallbackErr error
		items, fallbackErr = s.provider.Matches(ctx)
		if fallbackErr != nil {
			return nil, fmt.Errorf("%w: primary: %v; fallback: %v", ErrDependencyUnavailable, primaryErr, fallbackErr)
		}
	}

	now := s.now()
	out := make([]match.Match, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.ID) == "" {
			continue
		}
		item.Classification = match.Classify(item.Signals, now)
		out = append(out, item)
	}
	return out, nil
}

// GetMatches groups the feed into live, upcoming and completed buckets. A
// non-empty query keeps only matches whose name, teams or venue fuzzily
// contain it.
func (s *MatchService) GetMatches(ctx context.Context, query string) match.Board {
	items := s.FetchMatches(ctx)

	query = strings.TrimSpace(query)
	if query == "" {
		return match.NewBoard(items)
	}

	filtered := make([]match.Match, 0, len(items))
	for _, item := range items {
		if matchesQuery(item, query) {
			filtered = append(filtered, item)
		}
	}
	return match.NewBoard(filtered)
}

func matchesQuery(m match.Match, query string) bool {
	for _, field := range []string{m.Name, m.TeamA.Name, m.TeamB.Name, m.TeamA.ShortName, m.TeamB.ShortName, m.Venue} {
		if field != "" && fuzzy.MatchNormalizedFold(query, field) {
			return true
		}
	}
	return false
}

// GetSquad returns both squads of a match with a role and a credit price on
// every player.
func (s *MatchService) GetSquad(ctx context.Context, matchID string) ([]player.SquadTeam, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.GetSquad")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return nil, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	if s.provider == nil {
		return nil, fmt.Errorf("%w: match provider is not configured", ErrDependencyUnavailable)
	}

	teams, err := s.provider.Squad(ctx, matchID)
	if err != nil {
		recordSpanError(span, err)
		s.logger.WarnContext(ctx, "fetch squad failed", "match_id", matchID, "error", err)
		return nil, fmt.Errorf("%w: fetch squad for match=%s", ErrDependencyUnavailable, matchID)
	}

	return iter.Map(teams, func(team *player.SquadTeam) player.SquadTeam {
		return priceSquad(matchID, *team)
	}), nil
}

func priceSquad(matchID string, team player.SquadTeam) player.SquadTeam {
	players := make([]player.Player, 0, len(team.Players))
	for _, p := range team.Players {
		if strings.TrimSpace(p.ID) == "" {
			continue
		}
		if _, ok := player.AllRoles[p.Role]; !ok {
			p.Role = player.InferRole(string(p.Role), p.BattingStyle, p.BowlingStyle)
		}
		p.Credits = player.PriceFor(matchID, p.ID)
		players = append(players, p)
	}
	team.Players = players
	return team
}

func (s *MatchService) GetPlayerInfo(ctx context.Context, playerID string) (player.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.GetPlayerInfo")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Profile{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	if s.provider == nil {
		return player.Profile{}, fmt.Errorf("%w: match provider is not configured", ErrDependencyUnavailable)
	}

	profile, err := s.provider.PlayerInfo(ctx, playerID)
	if err != nil {
		recordSpanError(span, err)
		s.logger.WarnContext(ctx, "fetch player info failed", "player_id", playerID, "error", err)
		return player.Profile{}, fmt.Errorf("%w: fetch player info for player=%s", ErrDependencyUnavailable, playerID)
	}
	if strings.TrimSpace(profile.ID) == "" {
		return player.Profile{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}
	if _, ok := player.AllRoles[profile.Role]; !ok {
		profile.Role = player.InferRole(string(profile.Role), profile.BattingStyle, profile.BowlingStyle)
	}
	return profile, nil
}
