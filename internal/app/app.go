package app

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/live-scoreboard/internal/config"
	"github.com/riskibarqy/live-scoreboard/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/live-scoreboard/internal/interfaces/httpapi"
	idgen "github.com/riskibarqy/live-scoreboard/internal/platform/id"
	"github.com/riskibarqy/live-scoreboard/internal/platform/logging"
	"github.com/riskibarqy/live-scoreboard/internal/usecase"
)

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if cfg.HTTPAddr == "" {
		return nil, errors.New("http server addr cannot be empty")
	}
	if logger == nil {
		logger = logging.Default()
	}

	registry := memory.NewMatchRegistry()
	matchSvc := usecase.NewMatchService(registry, idgen.NewRandomGenerator(), logger)

	handler := httpapi.NewHandler(matchSvc, httpapi.BatchLimits{
		MaxWorkers: cfg.ScoreBatchMaxWorkers,
		MaxItems:   cfg.ScoreBatchMaxItems,
	}, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}
