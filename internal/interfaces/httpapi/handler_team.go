package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/fantasyteam"
	"github.com/riskibarqy/fantasy-cricket/internal/usecase"
)

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTeam")
	defer span.End()

	if h.teamService == nil {
		writeError(ctx, w, fmt.Errorf("%w: team service is not configured", usecase.ErrDependencyUnavailable))
		return
	}
	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createTeamRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	players := make([]usecase.TeamPlayerInput, 0, len(req.Players))
	for _, p := range req.Players {
		players = append(players, usecase.TeamPlayerInput{
			PlayerID: p.PlayerID,
			Name:     p.Name,
			Role:     p.Role,
			TeamName: p.TeamName,
		})
	}

	team, err := h.teamService.CreateTeam(ctx, usecase.CreateTeamInput{
		UserID:        principal.UserID,
		MatchID:       req.MatchID,
		Name:          req.Name,
		CaptainID:     req.CaptainID,
		ViceCaptainID: req.ViceCaptainID,
		Players:       players,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create team failed", "user_id", principal.UserID, "match_id", req.MatchID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, toTeamDTO(team))
}

func (h *Handler) ListMyTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyTeams")
	defer span.End()

	if h.teamService == nil {
		writeError(ctx, w, fmt.Errorf("%w: team service is not configured", usecase.ErrDependencyUnavailable))
		return
	}
	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	teams, err := h.teamService.ListTeams(ctx, principal.UserID, r.URL.Query().Get("match_id"))
	if err != nil {
		h.logger.ErrorContext(ctx, "list teams failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, toTeamDTOs(teams))
}

func (h *Handler) GetMyTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyTeam")
	defer span.End()

	if h.teamService == nil {
		writeError(ctx, w, fmt.Errorf("%w: team service is not configured", usecase.ErrDependencyUnavailable))
		return
	}
	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	team, err := h.teamService.GetTeam(ctx, principal.UserID, r.PathValue("teamID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, toTeamDTO(team))
}

func toTeamDTOs(items []fantasyteam.Team) []teamDTO {
	out := make([]teamDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toTeamDTO(item))
	}
	return out
}
