package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nikogura/candidate-scorer/pkg/config"
	"github.com/nikogura/candidate-scorer/pkg/scoring"
	"github.com/nikogura/candidate-scorer/pkg/store"
	"github.com/nikogura/candidate-scorer/pkg/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// strongAnswers scores 101 of 122 points (83%, HIRE).
const strongAnswers = `{
	"behavioral": {
		"1": {"most": "A"}, "2": {"most": "A"}, "3": {"most": "A"}, "4": {"most": "A"}, "5": {"most": "A"},
		"6": {"most": "A"}, "7": {"most": "A"}, "8": {"most": "D"}, "9": {"most": "C"}, "10": {"most": "C"}
	},
	"preference": {
		"1": "SA", "2": "SA", "3": "SA", "4": "SA", "5": "SA", "6": "SA", "7": "SD", "8": "SA",
		"9": "SA", "10": "SA", "11": "SA", "12": "SA", "13": "SA", "14": "SA", "15": "SA"
	},
	"ethics": {"1": "B", "2": "B", "3": "B", "4": "B", "5": "A"},
	"aptitude": [4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4]
}`

type fixture struct {
	server *Server
	store  *store.MemoryStore
	logs   *bytes.Buffer
}

func newFixture(t *testing.T) (f fixture) {
	t.Helper()

	f.logs = &bytes.Buffer{}
	previous := telemetry.SetOutput(f.logs)
	t.Cleanup(func() {
		telemetry.SetOutput(previous)
	})

	engine, err := scoring.NewEngine(scoring.DefaultParams())
	require.NoError(t, err)

	f.store = store.NewMemoryStore()
	f.server = New(engine, f.store, config.ServerConfig{}, prometheus.NewRegistry())
	return f
}

func (f fixture) do(t *testing.T, method, path, body string) (rec *httptest.ResponseRecorder) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	rec = httptest.NewRecorder()
	f.server.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) (out T) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
}

func TestRequestIDIsEchoed(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set(requestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get(requestIDHeader))
	assert.Contains(t, f.logs.String(), `"request_id":"req-123"`)
}

func TestScore(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/score", strongAnswers)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[EvaluationResponse](t, rec)
	assert.Equal(t, scoring.StateScored, resp.Result.State)
	assert.InDelta(t, 101.0, resp.Result.Total, 0.001)
	assert.Equal(t, 83, resp.Result.Percentage)
	assert.Equal(t, scoring.RecommendationHire, resp.Result.Recommendation)
	assert.Equal(t, scoring.RecommendationHire, resp.Summary.Recommendation)
	assert.InDelta(t, 122.0, resp.Summary.MaxTotal, 0.001)

	// Stateless: nothing is stored.
	records, err := f.store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestScoreDisqualified(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/score", `{"ethics": {"1": "A"}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[EvaluationResponse](t, rec)
	assert.Equal(t, scoring.StateDisqualified, resp.Result.State)
	assert.Equal(t, scoring.RecommendationReject, resp.Result.Recommendation)
	assert.Equal(t, scoring.RiskHigh, resp.Result.RiskLevel)
}

func TestScoreRejectsBadBodies(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "empty", body: ""},
		{name: "not json", body: "nope"},
		{name: "array", body: "[1,2]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, http.MethodPost, "/api/v1/score", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			resp := decode[ErrorResponse](t, rec)
			assert.Equal(t, "invalid_answers", resp.Error.Code)
		})
	}
}

func TestCandidateLifecycle(t *testing.T) {
	f := newFixture(t)
	base := "/api/v1/candidates/cand-1"

	// Unknown tokens start pending and empty.
	rec := f.do(t, http.MethodGet, base+"/answers", "")
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[AnswersResponse](t, rec)
	assert.Equal(t, store.StatusPending, view.Status)

	rec = f.do(t, http.MethodGet, base+"/result", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Auto-save moves the record to in_progress.
	rec = f.do(t, http.MethodPut, base+"/answers", `{"ethics": {"1": "A", "2": "B"}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	view = decode[AnswersResponse](t, rec)
	assert.Equal(t, store.StatusInProgress, view.Status)
	assert.Equal(t, scoring.LetterA, view.Answers.Ethics[1])

	// A later save replaces the whole section.
	rec = f.do(t, http.MethodPut, base+"/answers", `{"ethics": {"1": "B"}, "aptitude": {"1": 4}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	view = decode[AnswersResponse](t, rec)
	assert.Equal(t, map[int]scoring.Letter{1: scoring.LetterB}, view.Answers.Ethics)
	assert.Equal(t, map[int]int{1: 4}, view.Answers.Aptitude)

	rec = f.do(t, http.MethodGet, base+"/result", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_submitted", decode[ErrorResponse](t, rec).Error.Code)

	// Submit merges the posted sections over the saved ones.
	rec = f.do(t, http.MethodPost, base+"/submit", `{"ethics": {"1": "B", "2": "B", "3": "B", "4": "B", "5": "A"}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	submitted := decode[EvaluationResponse](t, rec)
	assert.Equal(t, store.StatusCompleted, submitted.Status)
	assert.Equal(t, scoring.StateScored, submitted.Result.State)
	assert.InDelta(t, 25.0, submitted.Result.Scores.Ethics, 0.001)
	assert.Greater(t, submitted.Result.Scores.Aptitude, 0.0)
	require.NotNil(t, submitted.SubmittedAt)

	rec = f.do(t, http.MethodGet, base+"/result", "")
	require.Equal(t, http.StatusOK, rec.Code)
	stored := decode[EvaluationResponse](t, rec)
	assert.Equal(t, submitted.Result, stored.Result)
	assert.Equal(t, submitted.Summary, stored.Summary)

	// Completed records are frozen.
	rec = f.do(t, http.MethodPut, base+"/answers", `{"ethics": {"1": "A"}}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	rec = f.do(t, http.MethodPost, base+"/submit", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "already_submitted", decode[ErrorResponse](t, rec).Error.Code)

	assert.Contains(t, f.logs.String(), `"status_transition":"in_progress->completed"`)
}

func TestSubmitWithEmptyBodyUsesSavedAnswers(t *testing.T) {
	f := newFixture(t)
	base := "/api/v1/candidates/saved-only"

	rec := f.do(t, http.MethodPut, base+"/answers", strongAnswers)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodPost, base+"/submit", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[EvaluationResponse](t, rec)
	assert.Equal(t, 83, resp.Result.Percentage)
	assert.Equal(t, scoring.RecommendationHire, resp.Result.Recommendation)
}

func TestInvalidToken(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/candidates/bad.token/answers", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_token", decode[ErrorResponse](t, rec).Error.Code)
}

func TestStats(t *testing.T) {
	f := newFixture(t)

	require.Equal(t, http.StatusOK, f.do(t, http.MethodPost, "/api/v1/candidates/a/submit", strongAnswers).Code)
	require.Equal(t, http.StatusOK, f.do(t, http.MethodPost, "/api/v1/candidates/b/submit", `{"ethics": {"4": "A"}}`).Code)
	require.Equal(t, http.StatusOK, f.do(t, http.MethodPut, "/api/v1/candidates/c/answers", `{"ethics": {"1": "B"}}`).Code)

	rec := f.do(t, http.MethodGet, "/api/v1/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)

	stats := decode[store.Stats](t, rec)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.ByStatus[store.StatusCompleted])
	assert.Equal(t, 1, stats.ByStatus[store.StatusInProgress])
	assert.Equal(t, 1, stats.ByRecommendation[scoring.RecommendationHire])
	assert.Equal(t, 1, stats.ByRecommendation[scoring.RecommendationReject])
	assert.Equal(t, 1, stats.Disqualified)
	assert.Equal(t, 50, stats.ApprovalRate)
	assert.Equal(t, 2, stats.CompletedToday)
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t)

	require.Equal(t, http.StatusOK, f.do(t, http.MethodPost, "/api/v1/score", strongAnswers).Code)

	rec := f.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `candidate_scorer_engine_evaluations_total{recommendation="HIRE",state="SCORED"} 1`)
	assert.Contains(t, body, `candidate_scorer_http_requests_total{method="POST",route="/api/v1/score",status="200"} 1`)
}

func TestMergeAnswers(t *testing.T) {
	base := scoring.AnswerSet{
		Ethics:   map[int]scoring.Letter{1: scoring.LetterA},
		Aptitude: map[int]int{1: 2},
	}
	update := scoring.AnswerSet{
		Ethics: map[int]scoring.Letter{2: scoring.LetterB},
	}

	merged := mergeAnswers(base, update)

	assert.Equal(t, map[int]scoring.Letter{2: scoring.LetterB}, merged.Ethics)
	assert.Equal(t, map[int]int{1: 2}, merged.Aptitude)
	assert.Nil(t, merged.Behavioral)
}
