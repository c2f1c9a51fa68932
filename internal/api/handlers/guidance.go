package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/careerkit/companion/internal/guidance"
	"github.com/careerkit/companion/internal/prompt"
)

// GuidanceService is the use-case surface the transport shell
// forwards to.
type GuidanceService interface {
	AnalyzeSkills(ctx context.Context, req guidance.SkillGapRequest) (string, error)
	GeneratePlan(ctx context.Context, req guidance.CareerPlanRequest) (string, error)
	DraftReview(ctx context.Context, req guidance.ReviewRequest) (string, error)
	MentorReply(ctx context.Context, req guidance.MentorRequest) (string, error)
}

type GuidanceHandler struct {
	svc GuidanceService
}

func NewGuidanceHandler(svc GuidanceService) *GuidanceHandler {
	return &GuidanceHandler{svc: svc}
}

func (h *GuidanceHandler) AnalyzeSkills(w http.ResponseWriter, r *http.Request) {
	var req guidance.SkillGapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	analysis, err := h.svc.AnalyzeSkills(r.Context(), req)
	if err != nil {
		writeError(w, "analyze_skills", "skills analysis failed", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"analysis": analysis})
}

func (h *GuidanceHandler) GeneratePlan(w http.ResponseWriter, r *http.Request) {
	var req guidance.CareerPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	plan, err := h.svc.GeneratePlan(r.Context(), req)
	if err != nil {
		writeError(w, "generate_plan", "career plan generation failed", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"plan": plan})
}

func (h *GuidanceHandler) PerformanceReview(w http.ResponseWriter, r *http.Request) {
	var req guidance.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	review, err := h.svc.DraftReview(r.Context(), req)
	if err != nil {
		writeError(w, "performance_review", "performance review generation failed", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"review": review})
}

func (h *GuidanceHandler) MentorSimulation(w http.ResponseWriter, r *http.Request) {
	var req guidance.MentorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	reply, err := h.svc.MentorReply(r.Context(), req)
	if err != nil {
		writeError(w, "mentor_simulation", "mentor simulation failed", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"mentor_response": reply})
}

// writeError maps service errors to client responses. Internal detail
// (file paths, registry endpoints) stays in the logs; the body only
// says which operation failed. Missing template fields are the
// caller's fault and are named.
func writeError(w http.ResponseWriter, endpoint, message string, err error) {
	var missing *prompt.MissingFieldError
	if errors.As(err, &missing) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": missing.Error()})
		return
	}

	slog.Error("request failed", "endpoint", endpoint, "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": message})
}
