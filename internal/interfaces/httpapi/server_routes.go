package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerMatchRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/matches", handler.ListLiveMatches)
	mux.HandleFunc("POST /v1/matches", handler.StartMatch)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("DELETE /v1/matches/{matchID}", handler.FinishMatch)
	mux.HandleFunc("PUT /v1/matches/{matchID}/score", handler.UpdateMatchScore)
	// Score feed ingestion; each item succeeds or fails on its own.
	mux.HandleFunc("POST /v1/matches/scores:batch", handler.ApplyScoreBatch)
	mux.HandleFunc("GET /v1/summary", handler.GetMatchSummary)
}
