package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/player"
	"github.com/riskibarqy/fantasy-cricket/internal/usecase"
)

// ListMatches never fails on provider outages; an empty board is returned
// instead.
func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	if h.matchService == nil {
		writeError(ctx, w, fmt.Errorf("%w: match service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	board := h.matchService.GetMatches(ctx, r.URL.Query().Get("q"))
	writeSuccess(ctx, w, http.StatusOK, toMatchBoardDTO(board))
}

func (h *Handler) GetSquad(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSquad")
	defer span.End()

	if h.matchService == nil {
		writeError(ctx, w, fmt.Errorf("%w: match service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	matchID := r.PathValue("matchID")
	teams, err := h.matchService.GetSquad(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get squad failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]squadTeamDTO, 0, len(teams))
	for _, team := range teams {
		out = append(out, toSquadTeamDTO(team))
	}
	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"match_id": matchID,
		"budget":   h.creditsBudget().Float(),
		"teams":    out,
	})
}

func (h *Handler) GetPlayerInfo(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerInfo")
	defer span.End()

	if h.matchService == nil {
		writeError(ctx, w, fmt.Errorf("%w: match service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	playerID := r.PathValue("playerID")
	profile, err := h.matchService.GetPlayerInfo(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player info failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, toPlayerProfileDTO(profile))
}

func (h *Handler) creditsBudget() player.Credits {
	if h.teamService == nil {
		return 0
	}
	return h.teamService.Budget()
}
