package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/live-scoreboard/internal/usecase"
)

func (h *Handler) StartMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StartMatch")
	defer span.End()

	var req startMatchRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.matchService.StartMatch(ctx, req.HomeTeam, req.AwayTeam)
	if err != nil {
		h.logger.WarnContext(ctx, "start match failed", "home_team", req.HomeTeam, "away_team", req.AwayTeam, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchToDTO(item))
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	item, err := h.matchService.GetMatch(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) UpdateMatchScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMatchScore")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))

	var req updateScoreRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.matchService.UpdateMatchScore(ctx, matchID, *req.HomeScore, *req.AwayScore); err != nil {
		h.logger.WarnContext(ctx, "update match score failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	item, err := h.matchService.GetMatch(ctx, matchID)
	if err != nil {
		// Finished concurrently between the update and the read.
		h.logger.WarnContext(ctx, "read updated match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) FinishMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FinishMatch")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	if err := h.matchService.FinishMatch(ctx, matchID); err != nil {
		h.logger.WarnContext(ctx, "finish match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListLiveMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLiveMatches")
	defer span.End()

	items, err := h.matchService.ListLiveMatches(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list live matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]rankedMatchDTO, 0, len(items))
	for idx, item := range items {
		out = append(out, rankedMatchDTO{Rank: idx + 1, matchDTO: matchToDTO(item)})
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetMatchSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchSummary")
	defer span.End()

	lines, err := h.matchService.GetMatchSummary(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get match summary failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	if strings.Contains(r.Header.Get("Accept"), "text/plain") {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		for _, line := range lines {
			_, _ = fmt.Fprintln(w, line)
		}
		return
	}

	writeSuccess(ctx, w, http.StatusOK, summaryDTO{Lines: lines})
}

func (h *Handler) ApplyScoreBatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ApplyScoreBatch")
	defer span.End()

	var req scoreBatchRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if h.batchMaxItems > 0 && len(req.Updates) > h.batchMaxItems {
		writeError(ctx, w, fmt.Errorf("%w: at most %d updates per batch, got %d", usecase.ErrInvalidInput, h.batchMaxItems, len(req.Updates)))
		return
	}

	updates := make([]usecase.ScoreUpdate, 0, len(req.Updates))
	for _, item := range req.Updates {
		updates = append(updates, usecase.ScoreUpdate{
			MatchID:   item.MatchID,
			HomeScore: *item.HomeScore,
			AwayScore: *item.AwayScore,
		})
	}

	result, err := h.matchService.ApplyScoreUpdates(ctx, updates, h.batchMaxWorkers)
	if err != nil {
		h.logger.ErrorContext(ctx, "apply score batch failed", "count", len(updates), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
