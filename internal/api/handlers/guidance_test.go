package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerkit/companion/internal/guidance"
	"github.com/careerkit/companion/internal/prompt"
)

type stubGuidance struct {
	response string
	err      error
}

func (s *stubGuidance) AnalyzeSkills(context.Context, guidance.SkillGapRequest) (string, error) {
	return s.response, s.err
}

func (s *stubGuidance) GeneratePlan(context.Context, guidance.CareerPlanRequest) (string, error) {
	return s.response, s.err
}

func (s *stubGuidance) DraftReview(context.Context, guidance.ReviewRequest) (string, error) {
	return s.response, s.err
}

func (s *stubGuidance) MentorReply(context.Context, guidance.MentorRequest) (string, error) {
	return s.response, s.err
}

func doPost(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestAnalyzeSkillsOK(t *testing.T) {
	h := NewGuidanceHandler(&stubGuidance{response: "learn Go"})

	w := doPost(t, h.AnalyzeSkills, `{"current_skills":"Python","target_role":"Backend Engineer"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "learn Go", decodeBody(t, w)["analysis"])
}

func TestGeneratePlanOK(t *testing.T) {
	h := NewGuidanceHandler(&stubGuidance{response: "phase 1: fundamentals"})

	w := doPost(t, h.GeneratePlan, `{"current_role":"SWE","target_role":"Staff SWE","timeline_months":"12","focus_areas":"systems"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "phase 1: fundamentals", decodeBody(t, w)["plan"])
}

func TestPerformanceReviewOK(t *testing.T) {
	h := NewGuidanceHandler(&stubGuidance{response: "strong half"})

	w := doPost(t, h.PerformanceReview, `{"role":"engineer","period":"H1","accomplishments":"shipped v2"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "strong half", decodeBody(t, w)["review"])
}

func TestMentorSimulationOK(t *testing.T) {
	h := NewGuidanceHandler(&stubGuidance{response: "take the role"})

	w := doPost(t, h.MentorSimulation, `{"question":"switch?","background":"backend","career_stage":"mid"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "take the role", decodeBody(t, w)["mentor_response"])
}

func TestBadRequestBody(t *testing.T) {
	h := NewGuidanceHandler(&stubGuidance{})

	w := doPost(t, h.AnalyzeSkills, `{not json`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid request body", decodeBody(t, w)["error"])
}

func TestMissingFieldIsClientError(t *testing.T) {
	h := NewGuidanceHandler(&stubGuidance{err: &prompt.MissingFieldError{Field: "target_role"}})

	w := doPost(t, h.AnalyzeSkills, `{"current_skills":"Python"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody(t, w)["error"], "target_role")
}

func TestInternalErrorHidesDetail(t *testing.T) {
	h := NewGuidanceHandler(&stubGuidance{
		err: errors.New("dial tcp registry.internal:5432: connection refused"),
	})

	w := doPost(t, h.MentorSimulation, `{"question":"q","background":"b","career_stage":"mid"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeBody(t, w)["error"]
	assert.Equal(t, "mentor simulation failed", body)
	assert.NotContains(t, body, "registry.internal")
}
