package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/jobscheduler"
	"github.com/riskibarqy/fantasy-cricket/internal/usecase"
)

const defaultSyncRunsLimit = 20

// RunSyncContestsJob runs one reconciliation. The run is detached from the
// request so a dropped client does not abort it halfway.
func (h *Handler) RunSyncContestsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncContestsJob")
	defer span.End()

	if h.syncService == nil {
		writeError(ctx, w, fmt.Errorf("%w: sync service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	result, err := h.syncService.SyncContests(context.WithoutCancel(ctx), jobscheduler.TriggerHTTP)
	if err != nil {
		h.logger.WarnContext(ctx, "sync contests job failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) ListSyncRuns(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSyncRuns")
	defer span.End()

	if h.syncService == nil {
		writeError(ctx, w, fmt.Errorf("%w: sync service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	limit, err := parseLimit(r.URL.Query().Get("limit"), defaultSyncRunsLimit)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	runs, err := h.syncService.ListRuns(ctx, limit)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	out := make([]syncRunDTO, 0, len(runs))
	for _, run := range runs {
		out = append(out, toSyncRunDTO(run))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}
