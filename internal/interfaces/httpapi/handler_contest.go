package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/contest"
	"github.com/riskibarqy/fantasy-cricket/internal/usecase"
)

func (h *Handler) ListContestsByMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListContestsByMatch")
	defer span.End()

	if h.contestService == nil {
		writeError(ctx, w, fmt.Errorf("%w: contest service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	items, err := h.contestService.ListContests(ctx, r.PathValue("matchID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	out := make([]contestDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toContestDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetContest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetContest")
	defer span.End()

	if h.contestService == nil {
		writeError(ctx, w, fmt.Errorf("%w: contest service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	item, err := h.contestService.GetContest(ctx, r.PathValue("contestID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, toContestDTO(item))
}

func (h *Handler) SeedContests(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SeedContests")
	defer span.End()

	if h.contestService == nil {
		writeError(ctx, w, fmt.Errorf("%w: contest service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	matchID := r.PathValue("matchID")
	created, err := h.contestService.SeedContests(ctx, matchID)
	if err != nil {
		h.logger.ErrorContext(ctx, "seed contests failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"match_id": matchID,
		"created":  created,
	})
}

func (h *Handler) JoinContest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.JoinContest")
	defer span.End()

	if h.contestService == nil {
		writeError(ctx, w, fmt.Errorf("%w: contest service is not configured", usecase.ErrDependencyUnavailable))
		return
	}
	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req joinContestRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	contestID := r.PathValue("contestID")
	entry, err := h.contestService.JoinContest(ctx, usecase.JoinContestInput{
		UserID:    principal.UserID,
		ContestID: contestID,
		TeamID:    req.TeamID,
	})
	if err != nil {
		h.logger.InfoContext(ctx, "join contest rejected", "contest_id", contestID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, toEntryDTO(entry))
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	if h.contestService == nil {
		writeError(ctx, w, fmt.Errorf("%w: contest service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	rows, err := h.contestService.Leaderboard(ctx, r.PathValue("contestID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	out := make([]leaderboardRowDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, leaderboardRowDTO{
			EntryID:  row.EntryID,
			UserID:   row.UserID,
			UserName: row.UserName,
			TeamID:   row.TeamID,
			TeamName: row.TeamName,
			Points:   row.Points,
			Rank:     row.Rank,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListMyEntries(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyEntries")
	defer span.End()

	if h.contestService == nil {
		writeError(ctx, w, fmt.Errorf("%w: contest service is not configured", usecase.ErrDependencyUnavailable))
		return
	}
	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	entries, err := h.contestService.ListMyEntries(ctx, principal.UserID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, toEntryDTOs(entries))
}

func toEntryDTOs(items []contest.Entry) []entryDTO {
	out := make([]entryDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toEntryDTO(item))
	}
	return out
}
