package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/match"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/player"
	basecache "github.com/riskibarqy/fantasy-cricket/internal/platform/cache"
)

type countingProvider struct {
	squadCalls   atomic.Int32
	profileCalls atomic.Int32
	matchCalls   atomic.Int32
	squadErr     error
}

func (p *countingProvider) CurrentMatches(context.Context) ([]match.Match, error) {
	p.matchCalls.Add(1)
	return []match.Match{{ID: "m1"}}, nil
}

func (p *countingProvider) Matches(context.Context) ([]match.Match, error) {
	p.matchCalls.Add(1)
	return nil, nil
}

func (p *countingProvider) Squad(_ context.Context, matchID string) ([]player.SquadTeam, error) {
	p.squadCalls.Add(1)
	if p.squadErr != nil {
		return nil, p.squadErr
	}
	return []player.SquadTeam{{TeamName: "India", Players: []player.Player{{ID: "p1", Name: "Kohli"}}}}, nil
}

func (p *countingProvider) PlayerInfo(_ context.Context, playerID string) (player.Profile, error) {
	p.profileCalls.Add(1)
	return player.Profile{ID: playerID, Name: "Kohli"}, nil
}

func TestMatchProvider_CachesSquadAndProfile(t *testing.T) {
	ctx := context.Background()
	next := &countingProvider{}
	provider := NewMatchProvider(next, basecache.NewStore(time.Minute))

	first, err := provider.Squad(ctx, "m1")
	if err != nil {
		t.Fatalf("squad: %v", err)
	}
	first[0].Players[0].Credits = 95

	second, err := provider.Squad(ctx, "m1")
	if err != nil {
		t.Fatalf("squad again: %v", err)
	}
	if next.squadCalls.Load() != 1 {
		t.Fatalf("expected one upstream squad call, got %d", next.squadCalls.Load())
	}
	if second[0].Players[0].Credits != 0 {
		t.Fatalf("cached squad was mutated through a returned copy")
	}

	for i := 0; i < 3; i++ {
		if _, err := provider.PlayerInfo(ctx, "p1"); err != nil {
			t.Fatalf("player info: %v", err)
		}
	}
	if next.profileCalls.Load() != 1 {
		t.Fatalf("expected one upstream profile call, got %d", next.profileCalls.Load())
	}

	provider.Invalidate(ctx)
	if _, err := provider.Squad(ctx, "m1"); err != nil {
		t.Fatalf("squad after invalidate: %v", err)
	}
	if next.squadCalls.Load() != 2 {
		t.Fatalf("expected reload after invalidate, got %d calls", next.squadCalls.Load())
	}
}

func TestMatchProvider_DoesNotCacheErrorsOrListings(t *testing.T) {
	ctx := context.Background()
	next := &countingProvider{squadErr: errors.New("upstream down")}
	provider := NewMatchProvider(next, basecache.NewStore(time.Minute))

	for i := 0; i < 2; i++ {
		if _, err := provider.Squad(ctx, "m1"); err == nil {
			t.Fatalf("expected squad error")
		}
		if _, err := provider.CurrentMatches(ctx); err != nil {
			t.Fatalf("current matches: %v", err)
		}
	}
	if next.squadCalls.Load() != 2 {
		t.Fatalf("expected errors not to be cached, got %d calls", next.squadCalls.Load())
	}
	if next.matchCalls.Load() != 2 {
		t.Fatalf("expected listings to bypass cache, got %d calls", next.matchCalls.Load())
	}
}

func TestMatchProvider_NilStorePassesThrough(t *testing.T) {
	next := &countingProvider{}
	provider := NewMatchProvider(next, nil)

	for i := 0; i < 2; i++ {
		if _, err := provider.PlayerInfo(context.Background(), "p1"); err != nil {
			t.Fatalf("player info: %v", err)
		}
	}
	if next.profileCalls.Load() != 2 {
		t.Fatalf("expected pass-through without store, got %d calls", next.profileCalls.Load())
	}
	provider.Invalidate(context.Background())
}
