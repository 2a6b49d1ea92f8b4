package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/live-scoreboard/internal/platform/logging"
	"github.com/riskibarqy/live-scoreboard/internal/usecase"
)

type Handler struct {
	matchService    *usecase.MatchService
	batchMaxWorkers int
	batchMaxItems   int
	logger          *logging.Logger
	validator       *validator.Validate
}

// BatchLimits bounds the score batch endpoint.
type BatchLimits struct {
	MaxWorkers int
	MaxItems   int
}

func NewHandler(matchService *usecase.MatchService, limits BatchLimits, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		matchService:    matchService,
		batchMaxWorkers: limits.MaxWorkers,
		batchMaxItems:   limits.MaxItems,
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
