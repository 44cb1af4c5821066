package httpapi

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/fantasyteam"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/match"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/player"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/user"
	"github.com/riskibarqy/fantasy-cricket/internal/infrastructure/repository/memory"
	idgen "github.com/riskibarqy/fantasy-cricket/internal/platform/id"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
	"github.com/riskibarqy/fantasy-cricket/internal/usecase"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	matches []match.Match
}

func (p *fakeProvider) CurrentMatches(context.Context) ([]match.Match, error) {
	return p.matches, nil
}

func (p *fakeProvider) Matches(context.Context) ([]match.Match, error) {
	return p.matches, nil
}

func (p *fakeProvider) Squad(_ context.Context, matchID string) ([]player.SquadTeam, error) {
	return []player.SquadTeam{{
		TeamName: "India",
		Players: []player.Player{
			{ID: "p1", Name: "Rohit Sharma", Role: "Batting Allrounder"},
			{ID: "p2", Name: "Jasprit Bumrah", BowlingStyle: "Right-arm fast"},
		},
	}}, nil
}

func (p *fakeProvider) PlayerInfo(_ context.Context, playerID string) (player.Profile, error) {
	return player.Profile{ID: playerID, Name: "Rohit Sharma", Role: "Batsman"}, nil
}

type fakeVerifier map[string]user.Principal

func (v fakeVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	principal, ok := v[token]
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: unknown token", usecase.ErrUnauthorized)
	}
	return principal, nil
}

type apiFixture struct {
	router http.Handler
	teams  *memory.FantasyTeamRepository
}

func newAPIFixture(t *testing.T, cfg RouterConfig) apiFixture {
	t.Helper()
	return newAPIFixtureWithRules(t, cfg, fantasyteam.DefaultRules())
}

func newAPIFixtureWithRules(t *testing.T, cfg RouterConfig, rules fantasyteam.Rules) apiFixture {
	t.Helper()

	logger := logging.NewNop()
	ids := idgen.NewUUIDGenerator()
	users := memory.NewUserRepository()
	teams := memory.NewFantasyTeamRepository()
	contests := memory.NewContestRepository(teams, users)

	provider := &fakeProvider{matches: []match.Match{
		{ID: "m-live", Name: "India vs Australia", TeamA: match.Side{Name: "India"}, TeamB: match.Side{Name: "Australia"}, Signals: match.Signals{ExplicitState: "live"}},
		{ID: "m-next", Name: "England vs Pakistan", TeamA: match.Side{Name: "England"}, TeamB: match.Side{Name: "Pakistan"}, Signals: match.Signals{ExplicitState: "fixture"}},
	}}

	matchService := usecase.NewMatchService(provider, logger)
	handler := NewHandler(
		matchService,
		usecase.NewTeamService(teams, rules, ids, logger),
		usecase.NewContestService(contests, teams, ids, logger),
		usecase.NewSyncService(matchService, contests, memory.NewSyncRunRepository(), ids, 2, logger),
		usecase.NewUserService(users, logger),
		logger,
	)

	verifier := fakeVerifier{
		"token-asha": {UserID: "u-asha", Email: "asha@example.com", Name: "Asha"},
		"token-ravi": {UserID: "u-ravi", Email: "ravi@example.com"},
	}
	return apiFixture{router: NewRouter(handler, verifier, cfg, logger), teams: teams}
}

type envelope struct {
	APIVersion string         `json:"apiVersion"`
	Data       any            `json:"data"`
	Error      map[string]any `json:"error"`
}

func (f apiFixture) do(t *testing.T, method, path, token string, body any) (int, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := sonic.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	var out envelope
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	require.Equal(t, "2.0", out.APIVersion)
	return rec.Code, out
}

func errorReason(t *testing.T, env envelope) string {
	t.Helper()
	require.NotNil(t, env.Error)
	items, ok := env.Error["errors"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, items)
	item, _ := items[0].(map[string]any)
	reason, _ := item["reason"].(string)
	return reason
}

func elevenPlayersPayload() []map[string]any {
	out := make([]map[string]any, 0, 11)
	for i := 1; i <= 11; i++ {
		out = append(out, map[string]any{
			"player_id": fmt.Sprintf("p%d", i),
			"name":      fmt.Sprintf("Player %d", i),
			"role":      "Batsman",
			"team_name": "India",
		})
	}
	return out
}

func TestHandler_Healthz(t *testing.T) {
	f := newAPIFixture(t, RouterConfig{})
	code, env := f.do(t, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, map[string]any{"status": "ok"}, env.Data)
}

func TestHandler_ListMatchesGroupsAndFilters(t *testing.T) {
	f := newAPIFixture(t, RouterConfig{})

	code, env := f.do(t, http.MethodGet, "/v1/matches", "", nil)
	require.Equal(t, http.StatusOK, code)
	data := env.Data.(map[string]any)
	require.Len(t, data["live"], 1)
	require.Len(t, data["upcoming"], 1)
	require.Len(t, data["completed"], 0)

	code, env = f.do(t, http.MethodGet, "/v1/matches?q=pak", "", nil)
	require.Equal(t, http.StatusOK, code)
	data = env.Data.(map[string]any)
	require.EqualValues(t, 1, data["total"])
	require.Len(t, data["upcoming"], 1)
}

func TestHandler_GetSquadPricesPlayers(t *testing.T) {
	f := newAPIFixture(t, RouterConfig{})

	code, env := f.do(t, http.MethodGet, "/v1/matches/m-next/squad", "", nil)
	require.Equal(t, http.StatusOK, code)
	data := env.Data.(map[string]any)
	require.EqualValues(t, 100, data["budget"])

	teams := data["teams"].([]any)
	players := teams[0].(map[string]any)["players"].([]any)
	require.Len(t, players, 2)
	first := players[0].(map[string]any)
	require.Equal(t, string(player.RoleAllRounder), first["role"])
	require.EqualValues(t, player.PriceFor("m-next", "p1").Float(), first["credits"])
	require.Equal(t, string(player.RoleBowler), players[1].(map[string]any)["role"])
}

func TestHandler_CreateTeamRequiresAuth(t *testing.T) {
	f := newAPIFixture(t, RouterConfig{})

	code, env := f.do(t, http.MethodPost, "/v1/teams", "", map[string]any{})
	require.Equal(t, http.StatusUnauthorized, code)
	require.Equal(t, "unauthorized", errorReason(t, env))

	code, env = f.do(t, http.MethodPost, "/v1/teams", "bogus", map[string]any{})
	require.Equal(t, http.StatusUnauthorized, code)
	require.Equal(t, "unauthorized", errorReason(t, env))
}

func TestHandler_CreateTeamRuleViolations(t *testing.T) {
	f := newAPIFixture(t, RouterConfig{})

	tests := []struct {
		name       string
		body       map[string]any
		wantStatus int
		wantReason string
	}{
		{
			name:       "missing fields",
			body:       map[string]any{"name": "XI"},
			wantStatus: http.StatusBadRequest,
			wantReason: "invalidParameter",
		},
		{
			name: "ten players",
			body: map[string]any{
				"match_id": "m-next", "name": "XI", "captain_id": "p1", "vice_captain_id": "p2",
				"players": elevenPlayersPayload()[:10],
			},
			wantStatus: http.StatusBadRequest,
			wantReason: "teamSizeInvalid",
		},
		{
			name: "captain equals vice captain",
			body: map[string]any{
				"match_id": "m-next", "name": "XI", "captain_id": "p1", "vice_captain_id": "p1",
				"players": elevenPlayersPayload(),
			},
			wantStatus: http.StatusBadRequest,
			wantReason: "captainEqualsViceCaptain",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			code, env := f.do(t, http.MethodPost, "/v1/teams", "token-asha", tc.body)
			require.Equal(t, tc.wantStatus, code)
			require.Equal(t, tc.wantReason, errorReason(t, env))
		})
	}

	teams, err := f.teams.ListByUser(context.Background(), "u-asha", "")
	require.NoError(t, err)
	require.Empty(t, teams)
}

func squadPrice(matchID string) player.Credits {
	var total player.Credits
	for i := 1; i <= 11; i++ {
		total += player.PriceFor(matchID, fmt.Sprintf("p%d", i))
	}
	return total
}

func TestHandler_CreateTeamPricesPicksOnServer(t *testing.T) {
	rules := fantasyteam.DefaultRules()
	rules.TotalCreditsBudget = squadPrice("m-next") - 1
	f := newAPIFixtureWithRules(t, RouterConfig{}, rules)

	players := elevenPlayersPayload()
	for _, p := range players {
		p["credits"] = 0.1
	}
	code, env := f.do(t, http.MethodPost, "/v1/teams", "token-asha", map[string]any{
		"match_id": "m-next", "name": "Cheap XI", "captain_id": "p1", "vice_captain_id": "p2",
		"players": players,
	})
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, "budgetExceeded", errorReason(t, env))

	teams, err := f.teams.ListByUser(context.Background(), "u-asha", "")
	require.NoError(t, err)
	require.Empty(t, teams)
}

func TestHandler_TeamAndContestFlow(t *testing.T) {
	f := newAPIFixture(t, RouterConfig{})

	code, env := f.do(t, http.MethodPost, "/v1/teams", "token-asha", map[string]any{
		"match_id": "m-next", "name": "Asha XI", "captain_id": "p1", "vice_captain_id": "p2",
		"players": elevenPlayersPayload(),
	})
	require.Equal(t, http.StatusCreated, code)
	team := env.Data.(map[string]any)
	teamID := team["id"].(string)
	require.EqualValues(t, squadPrice("m-next").Float(), team["total_credits"])

	code, _ = f.do(t, http.MethodGet, "/v1/teams/"+teamID, "token-ravi", nil)
	require.Equal(t, http.StatusForbidden, code)

	code, env = f.do(t, http.MethodPost, "/v1/matches/m-next/contests/seed", "token-asha", nil)
	require.Equal(t, http.StatusOK, code)
	require.EqualValues(t, 2, env.Data.(map[string]any)["created"])

	code, env = f.do(t, http.MethodGet, "/v1/matches/m-next/contests", "", nil)
	require.Equal(t, http.StatusOK, code)
	contests := env.Data.([]any)
	require.Len(t, contests, 2)
	contestID := contests[0].(map[string]any)["id"].(string)

	code, env = f.do(t, http.MethodPost, "/v1/contests/"+contestID+"/join", "token-asha", map[string]any{"team_id": teamID})
	require.Equal(t, http.StatusCreated, code)
	require.Equal(t, teamID, env.Data.(map[string]any)["team_id"])

	code, env = f.do(t, http.MethodPost, "/v1/contests/"+contestID+"/join", "token-asha", map[string]any{"team_id": teamID})
	require.Equal(t, http.StatusConflict, code)
	require.Equal(t, "duplicateEntry", errorReason(t, env))

	code, env = f.do(t, http.MethodGet, "/v1/contests/"+contestID, "", nil)
	require.Equal(t, http.StatusOK, code)
	require.EqualValues(t, 1, env.Data.(map[string]any)["current_entries"])

	code, env = f.do(t, http.MethodGet, "/v1/contests/"+contestID+"/leaderboard", "", nil)
	require.Equal(t, http.StatusOK, code)
	rows := env.Data.([]any)
	require.Len(t, rows, 1)
	require.Equal(t, "Asha", rows[0].(map[string]any)["user_name"])
	require.Equal(t, "Asha XI", rows[0].(map[string]any)["team_name"])

	code, env = f.do(t, http.MethodGet, "/v1/me/entries", "token-asha", nil)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, env.Data, 1)
}

func TestHandler_InternalJobToken(t *testing.T) {
	f := newAPIFixture(t, RouterConfig{InternalJobToken: "job-secret"})

	code, env := f.do(t, http.MethodPost, "/v1/internal/jobs/sync-contests", "", nil)
	require.Equal(t, http.StatusUnauthorized, code)
	require.Equal(t, "unauthorized", errorReason(t, env))

	code, env = f.do(t, http.MethodGet, "/v1/internal/jobs/sync-contests?secret=job-secret", "", nil)
	require.Equal(t, http.StatusOK, code)
	result := env.Data.(map[string]any)
	require.EqualValues(t, 1, result["live_count"])
	require.EqualValues(t, 2, result["newly_created_count"])

	code, env = f.do(t, http.MethodGet, "/v1/internal/jobs/sync-runs", "job-secret", nil)
	require.Equal(t, http.StatusOK, code)
	runs := env.Data.([]any)
	require.Len(t, runs, 1)
	require.Equal(t, "http", runs[0].(map[string]any)["trigger"])

	req := httptest.NewRequest(http.MethodGet, "/v1/internal/jobs/sync-runs?limit=abc", nil)
	req.Header.Set("X-Internal-Job-Token", "job-secret")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_InternalJobTokenUnset(t *testing.T) {
	closed := newAPIFixture(t, RouterConfig{})
	code, env := closed.do(t, http.MethodGet, "/v1/internal/jobs/sync-runs", "", nil)
	require.Equal(t, http.StatusServiceUnavailable, code)
	require.Equal(t, "dependencyUnavailable", errorReason(t, env))

	open := newAPIFixture(t, RouterConfig{AllowUnsetJobToken: true})
	code, _ = open.do(t, http.MethodGet, "/v1/internal/jobs/sync-runs", "", nil)
	require.Equal(t, http.StatusOK, code)
}

func TestHandler_PanicsBecomeInternalErrors(t *testing.T) {
	handler := recoverPanic(logging.NewNop(), http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/matches", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.True(t, strings.Contains(rec.Body.String(), "internalError"))
	require.False(t, strings.Contains(rec.Body.String(), "boom"))
}

func TestParseLimit(t *testing.T) {
	got, err := parseLimit("", 20)
	require.NoError(t, err)
	require.Equal(t, 20, got)

	got, err = parseLimit(" 5 ", 20)
	require.NoError(t, err)
	require.Equal(t, 5, got)

	_, err = parseLimit("0", 20)
	require.ErrorIs(t, err, usecase.ErrInvalidInput)

}
