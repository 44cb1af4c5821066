package cache

import (
	"context"
	"strings"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/match"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/player"
	basecache "github.com/riskibarqy/fantasy-cricket/internal/platform/cache"
	"github.com/riskibarqy/fantasy-cricket/internal/usecase"
)

// MatchProvider caches squads and player profiles. Match listings always go
// to the provider since the sync job relies on them being fresh.
type MatchProvider struct {
	next  usecase.MatchProvider
	cache *basecache.Store
}

func NewMatchProvider(next usecase.MatchProvider, cache *basecache.Store) *MatchProvider {
	return &MatchProvider{next: next, cache: cache}
}

func (p *MatchProvider) CurrentMatches(ctx context.Context) ([]match.Match, error) {
	return p.next.CurrentMatches(ctx)
}

func (p *MatchProvider) Matches(ctx context.Context) ([]match.Match, error) {
	return p.next.Matches(ctx)
}

func (p *MatchProvider) Squad(ctx context.Context, matchID string) ([]player.SquadTeam, error) {
	key := "squad:match:" + strings.TrimSpace(matchID)
	items, err := basecache.Load(ctx, p.cache, key, func(ctx context.Context) ([]player.SquadTeam, error) {
		return p.next.Squad(ctx, matchID)
	})
	if err != nil {
		return nil, err
	}
	return cloneSquad(items), nil
}

func (p *MatchProvider) PlayerInfo(ctx context.Context, playerID string) (player.Profile, error) {
	key := "player:info:" + strings.TrimSpace(playerID)
	item, err := basecache.Load(ctx, p.cache, key, func(ctx context.Context) (player.Profile, error) {
		return p.next.PlayerInfo(ctx, playerID)
	})
	if err != nil {
		return player.Profile{}, err
	}
	item.Stats = append([]player.Stat(nil), item.Stats...)
	return item, nil
}

// Invalidate drops cached squad and profile data.
func (p *MatchProvider) Invalidate(ctx context.Context) {
	if p.cache == nil {
		return
	}
	p.cache.DeletePrefix(ctx, "squad:")
	p.cache.DeletePrefix(ctx, "player:")
}

// cloneSquad copies player slices so callers pricing a squad never write
// into the cached value.
func cloneSquad(items []player.SquadTeam) []player.SquadTeam {
	out := make([]player.SquadTeam, 0, len(items))
	for _, item := range items {
		item.Players = append([]player.Player(nil), item.Players...)
		out = append(out, item)
	}
	return out
}
