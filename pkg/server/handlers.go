package server

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nikogura/candidate-scorer/pkg/answers"
	"github.com/nikogura/candidate-scorer/pkg/scoring"
	"github.com/nikogura/candidate-scorer/pkg/store"
	"github.com/nikogura/candidate-scorer/pkg/telemetry"
	"github.com/pkg/errors"
)

// EvaluationResponse is returned by the score and result endpoints.
type EvaluationResponse struct {
	Token       string                   `json:"token,omitempty"`
	Status      store.Status             `json:"status,omitempty"`
	Result      scoring.Result           `json:"result"`
	Summary     scoring.ExecutiveSummary `json:"summary"`
	SubmittedAt *time.Time               `json:"submitted_at,omitempty"`
}

// AnswersResponse is returned by the answers endpoints.
type AnswersResponse struct {
	Token     string            `json:"token"`
	Status    store.Status      `json:"status"`
	Answers   scoring.AnswerSet `json:"answers"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func answersView(record store.Record) (view AnswersResponse) {
	view = AnswersResponse{
		Token:     record.Token,
		Status:    record.Status,
		Answers:   record.Answers,
		UpdatedAt: record.UpdatedAt,
	}
	return view
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// score evaluates the posted answers without touching the store.
func (s *Server) score(c *gin.Context) {
	set, ok := s.readAnswers(c, false)
	if !ok {
		return
	}

	result := s.evaluate(set)
	c.JSON(http.StatusOK, EvaluationResponse{
		Result:  result,
		Summary: s.engine.Summarize(result),
	})
}

func (s *Server) stats(c *gin.Context) {
	records, err := s.store.List(c.Request.Context())
	if err != nil {
		s.storeFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, store.BuildStats(records))
}

func (s *Server) requireToken(c *gin.Context) {
	token := c.Param("token")
	err := store.ValidateToken(token)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_token", "Token must be 1-128 letters, digits, '-' or '_'")
		return
	}
	c.Set(tokenKey, token)
	c.Next()
}

func (s *Server) getAnswers(c *gin.Context) {
	record, ok := s.loadRecord(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, answersView(record))
}

// saveAnswers replaces the posted sections of the saved answers.
func (s *Server) saveAnswers(c *gin.Context) {
	set, ok := s.readAnswers(c, false)
	if !ok {
		return
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	record, ok := s.loadRecord(c)
	if !ok {
		return
	}
	if record.Completed() {
		respondError(c, http.StatusConflict, "already_submitted", "Answers can no longer be changed")
		return
	}

	if record.Status == store.StatusPending {
		c.Set(transitionKey, string(store.StatusPending)+"->"+string(store.StatusInProgress))
	}
	record.Answers = mergeAnswers(record.Answers, set)
	record.Status = store.StatusInProgress
	record.UpdatedAt = time.Now().UTC()

	err := s.store.Put(c.Request.Context(), record)
	if err != nil {
		s.storeFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, answersView(record))
}

// submit merges any posted answers, evaluates and completes the record.
func (s *Server) submit(c *gin.Context) {
	set, ok := s.readAnswers(c, true)
	if !ok {
		return
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	record, ok := s.loadRecord(c)
	if !ok {
		return
	}
	if record.Completed() {
		respondError(c, http.StatusConflict, "already_submitted", "Assessment has already been submitted")
		return
	}

	record.Answers = mergeAnswers(record.Answers, set)
	result := s.evaluate(record.Answers)
	summary := s.engine.Summarize(result)

	now := time.Now().UTC()
	c.Set(transitionKey, string(record.Status)+"->"+string(store.StatusCompleted))
	record.Status = store.StatusCompleted
	record.Result = &result
	record.Summary = &summary
	record.UpdatedAt = now
	record.SubmittedAt = &now

	err := s.store.Put(c.Request.Context(), record)
	if err != nil {
		s.storeFailure(c, err)
		return
	}

	telemetry.Info("candidate.submitted", map[string]any{
		"request_id":     c.GetString(requestIDKey),
		"token":          record.Token,
		"state":          result.State,
		"recommendation": result.Recommendation,
		"percentage":     result.Percentage,
	})

	c.JSON(http.StatusOK, EvaluationResponse{
		Token:       record.Token,
		Status:      record.Status,
		Result:      result,
		Summary:     summary,
		SubmittedAt: record.SubmittedAt,
	})
}

func (s *Server) result(c *gin.Context) {
	record, err := s.store.Get(c.Request.Context(), c.GetString(tokenKey))
	if errors.Is(err, store.ErrNotFound) {
		respondError(c, http.StatusNotFound, "not_found", "No record for this token")
		return
	}
	if err != nil {
		s.storeFailure(c, err)
		return
	}
	if !record.Completed() || record.Result == nil {
		respondError(c, http.StatusNotFound, "not_submitted", "Assessment has not been submitted")
		return
	}

	response := EvaluationResponse{
		Token:       record.Token,
		Status:      record.Status,
		Result:      *record.Result,
		SubmittedAt: record.SubmittedAt,
	}
	if record.Summary != nil {
		response.Summary = *record.Summary
	} else {
		response.Summary = s.engine.Summarize(*record.Result)
	}

	c.JSON(http.StatusOK, response)
}

func (s *Server) evaluate(set scoring.AnswerSet) (result scoring.Result) {
	result = s.engine.Evaluate(set)
	s.metrics.evaluations.WithLabelValues(string(result.State), string(result.Recommendation)).Inc()
	return result
}

// loadRecord returns the stored record, or a new pending one for unknown
// tokens.
func (s *Server) loadRecord(c *gin.Context) (record store.Record, ok bool) {
	token := c.GetString(tokenKey)

	record, err := s.store.Get(c.Request.Context(), token)
	if errors.Is(err, store.ErrNotFound) {
		record = store.NewRecord(token)
		err = nil
	}
	if err != nil {
		s.storeFailure(c, err)
		return record, ok
	}

	ok = true
	return record, ok
}

// readAnswers parses the request body. An empty body is accepted when
// allowEmpty is set and yields an empty answer set.
func (s *Server) readAnswers(c *gin.Context, allowEmpty bool) (set scoring.AnswerSet, ok bool) {
	data, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		respondError(c, http.StatusRequestEntityTooLarge, "body_too_large", "Request body exceeds 1MB")
		return set, ok
	}

	if len(bytes.TrimSpace(data)) == 0 {
		if allowEmpty {
			ok = true
			return set, ok
		}
		respondError(c, http.StatusBadRequest, "invalid_answers", "Request body is empty")
		return set, ok
	}

	set, err = answers.Parse(data)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_answers", err.Error())
		return set, ok
	}

	ok = true
	return set, ok
}

func (s *Server) storeFailure(c *gin.Context, err error) {
	telemetry.Error("store.failed", map[string]any{
		"request_id": c.GetString(requestIDKey),
		"token":      c.GetString(tokenKey),
		"error":      err,
	})
	respondError(c, http.StatusInternalServerError, "store_unavailable", "Candidate store is unavailable")
}

// mergeAnswers replaces each section of base that update carries.
func mergeAnswers(base, update scoring.AnswerSet) (merged scoring.AnswerSet) {
	merged = base
	if update.Behavioral != nil {
		merged.Behavioral = update.Behavioral
	}
	if update.Preference != nil {
		merged.Preference = update.Preference
	}
	if update.Ethics != nil {
		merged.Ethics = update.Ethics
	}
	if update.Aptitude != nil {
		merged.Aptitude = update.Aptitude
	}
	return merged
}
