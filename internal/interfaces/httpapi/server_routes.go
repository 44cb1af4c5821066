package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/matches/{matchID}/squad", handler.GetSquad)
	mux.HandleFunc("GET /v1/matches/{matchID}/contests", handler.ListContestsByMatch)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayerInfo)
	mux.HandleFunc("GET /v1/contests/{contestID}", handler.GetContest)
	mux.HandleFunc("GET /v1/contests/{contestID}/leaderboard", handler.GetLeaderboard)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	var profiles ProfileEnsurer
	if handler.userService != nil {
		profiles = handler.userService
	}
	auth := func(fn http.HandlerFunc) http.Handler {
		return RequireAuth(verifier, profiles, fn)
	}

	mux.Handle("POST /v1/matches/{matchID}/contests/seed", auth(handler.SeedContests))
	mux.Handle("POST /v1/contests/{contestID}/join", auth(handler.JoinContest))
	mux.Handle("POST /v1/teams", auth(handler.CreateTeam))
	mux.Handle("GET /v1/teams", auth(handler.ListMyTeams))
	mux.Handle("GET /v1/teams/{teamID}", auth(handler.GetMyTeam))
	mux.Handle("GET /v1/me/entries", auth(handler.ListMyEntries))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, cfg RouterConfig) {
	job := func(fn http.HandlerFunc) http.Handler {
		return RequireInternalJobToken(cfg.InternalJobToken, cfg.AllowUnsetJobToken, fn)
	}

	mux.Handle("GET /v1/internal/jobs/sync-contests", job(handler.RunSyncContestsJob))
	mux.Handle("POST /v1/internal/jobs/sync-contests", job(handler.RunSyncContestsJob))
	mux.Handle("GET /v1/internal/jobs/sync-runs", job(handler.ListSyncRuns))
}
