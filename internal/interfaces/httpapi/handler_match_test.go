package httpapi

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/live-scoreboard/internal/infrastructure/repository/memory"
	idgen "github.com/riskibarqy/live-scoreboard/internal/platform/id"
	"github.com/riskibarqy/live-scoreboard/internal/platform/logging"
	"github.com/riskibarqy/live-scoreboard/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope[T any] struct {
	APIVersion string `json:"apiVersion"`
	Data       T      `json:"data"`
	Error      *struct {
		Code   int    `json:"code"`
		Status string `json:"status"`
	} `json:"error"`
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	svc := usecase.NewMatchService(memory.NewMatchRegistry(), idgen.NewRandomGenerator(), logging.NewNop())
	handler := NewHandler(svc, BatchLimits{MaxWorkers: 2, MaxItems: 3}, logging.NewNop())
	return NewRouter(handler, logging.NewNop(), []string{"*"})
}

func doRequest(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope[T any](t *testing.T, rec *httptest.ResponseRecorder) envelope[T] {
	t.Helper()

	var out envelope[T]
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

func startMatch(t *testing.T, router http.Handler, home, away string) matchDTO {
	t.Helper()

	rec := doRequest(t, router, http.MethodPost, "/v1/matches", `{"home_team":"`+home+`","away_team":"`+away+`"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeEnvelope[matchDTO](t, rec).Data
}

func TestHandler_MatchLifecycle(t *testing.T) {
	router := newTestRouter(t)

	created := startMatch(t, router, "Mexico", "Canada")
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Mexico", created.HomeTeam)
	assert.Zero(t, created.TotalScore)

	rec := doRequest(t, router, http.MethodPut, "/v1/matches/"+created.ID+"/score", `{"home_score":0,"away_score":5}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decodeEnvelope[matchDTO](t, rec).Data
	assert.Equal(t, 5, updated.AwayScore)
	assert.Equal(t, 5, updated.TotalScore)

	rec = doRequest(t, router, http.MethodGet, "/v1/matches/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodDelete, "/v1/matches/"+created.ID, "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, router, http.MethodDelete, "/v1/matches/"+created.ID, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decodeEnvelope[any](t, rec).Error.Status)

	rec = doRequest(t, router, http.MethodPut, "/v1/matches/"+created.ID+"/score", `{"home_score":1,"away_score":5}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_StartMatch_Errors(t *testing.T) {
	router := newTestRouter(t)
	startMatch(t, router, "Spain", "Brazil")

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{name: "malformed json", body: `{"home_team":`, status: http.StatusBadRequest},
		{name: "unknown field", body: `{"home_team":"A","away_team":"B","venue":"X"}`, status: http.StatusBadRequest},
		{name: "missing away", body: `{"home_team":"A"}`, status: http.StatusBadRequest},
		{name: "blank home", body: `{"home_team":"   ","away_team":"B"}`, status: http.StatusBadRequest},
		{name: "same teams", body: `{"home_team":"Italy","away_team":"italy"}`, status: http.StatusBadRequest},
		{name: "team already playing", body: `{"home_team":"Italy","away_team":"BRAZIL"}`, status: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, router, http.MethodPost, "/v1/matches", tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}

func TestHandler_UpdateMatchScore_Validation(t *testing.T) {
	router := newTestRouter(t)
	created := startMatch(t, router, "Germany", "France")

	tests := []struct {
		name string
		body string
	}{
		{name: "missing away score", body: `{"home_score":1}`},
		{name: "negative score", body: `{"home_score":-1,"away_score":0}`},
		{name: "string score", body: `{"home_score":"one","away_score":0}`},
		{name: "score above limit", body: `{"home_score":1000,"away_score":0}`},
		{name: "overflowing score", body: `{"home_score":9223372036854775807,"away_score":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, router, http.MethodPut, "/v1/matches/"+created.ID+"/score", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}

	rec := doRequest(t, router, http.MethodGet, "/v1/matches/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, decodeEnvelope[matchDTO](t, rec).Data.TotalScore)
}

func TestHandler_Summary(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/v1/summary", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeEnvelope[summaryDTO](t, rec).Data.Lines)

	first := startMatch(t, router, "Argentina", "Australia")
	second := startMatch(t, router, "Uruguay", "Italy")
	doRequest(t, router, http.MethodPut, "/v1/matches/"+first.ID+"/score", `{"home_score":3,"away_score":1}`)
	doRequest(t, router, http.MethodPut, "/v1/matches/"+second.ID+"/score", `{"home_score":6,"away_score":6}`)

	rec = doRequest(t, router, http.MethodGet, "/v1/summary", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{
		"1. Uruguay 6 - Italy 6",
		"2. Argentina 3 - Australia 1",
	}, decodeEnvelope[summaryDTO](t, rec).Data.Lines)

	req := httptest.NewRequest(http.MethodGet, "/v1/summary", nil)
	req.Header.Set("Accept", "text/plain")
	plain := httptest.NewRecorder()
	router.ServeHTTP(plain, req)
	require.Equal(t, http.StatusOK, plain.Code)
	assert.Equal(t, "1. Uruguay 6 - Italy 6\n2. Argentina 3 - Australia 1\n", plain.Body.String())

	rec = doRequest(t, router, http.MethodGet, "/v1/matches", "")
	require.Equal(t, http.StatusOK, rec.Code)
	ranked := decodeEnvelope[[]rankedMatchDTO](t, rec).Data
	require.Len(t, ranked, 2)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, second.ID, ranked[0].ID)
	assert.Equal(t, 12, ranked[0].TotalScore)
}

func TestHandler_ApplyScoreBatch(t *testing.T) {
	router := newTestRouter(t)
	created := startMatch(t, router, "Spain", "Brazil")

	body := `{"updates":[` +
		`{"match_id":"` + created.ID + `","home_score":10,"away_score":2},` +
		`{"match_id":"missing","home_score":1,"away_score":1}` +
		`]}`
	rec := doRequest(t, router, http.MethodPost, "/v1/matches/scores:batch", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	result := decodeEnvelope[usecase.BatchResult](t, rec).Data
	assert.Equal(t, 2, result.TotalCount)
	assert.Equal(t, 1, result.AppliedCount)
	assert.Equal(t, 1, result.FailedCount)
	require.Len(t, result.Items, 2)
	assert.Equal(t, "applied", result.Items[0].Status)
	assert.Equal(t, "failed", result.Items[1].Status)
	assert.True(t, strings.Contains(result.Items[1].Message, "missing"))

	tooMany := `{"updates":[` + strings.Repeat(`{"match_id":"x","home_score":0,"away_score":0},`, 3) +
		`{"match_id":"x","home_score":0,"away_score":0}]}`
	rec = doRequest(t, router, http.MethodPost, "/v1/matches/scores:batch", tooMany)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/v1/matches/scores:batch", `{"updates":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Healthz(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeEnvelope[map[string]string](t, rec).Data["status"])
}
