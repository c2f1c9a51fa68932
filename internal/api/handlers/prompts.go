package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/careerkit/companion/internal/prompt"
	"github.com/careerkit/companion/internal/registry"
)

// PromptService exposes the registry management surface.
type PromptService interface {
	ListPrompts(ctx context.Context) ([]registry.Info, error)
	RegisterPrompt(ctx context.Context, name, content, modelTag string) (*prompt.Template, error)
	PromotePrompt(ctx context.Context, name string, version int, alias string) error
}

type PromptHandler struct {
	svc          PromptService
	defaultModel string
}

func NewPromptHandler(svc PromptService, defaultModel string) *PromptHandler {
	return &PromptHandler{svc: svc, defaultModel: defaultModel}
}

func (h *PromptHandler) List(w http.ResponseWriter, r *http.Request) {
	prompts, err := h.svc.ListPrompts(r.Context())
	if err != nil {
		slog.Error("failed to list prompts", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to retrieve prompts"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"prompts": prompts, "count": len(prompts)})
}

type registerRequest struct {
	Name    string `json:"name"`
	Content string `json:"content"`
	Model   string `json:"model,omitempty"`
}

func (h *PromptHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.Name == "" || req.Content == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name and content required"})
		return
	}
	if req.Model == "" {
		req.Model = h.defaultModel
	}

	tpl, err := h.svc.RegisterPrompt(r.Context(), req.Name, req.Content, req.Model)
	if err != nil {
		slog.Error("failed to register prompt", "prompt", req.Name, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to register prompt"})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"name":    tpl.Name,
		"version": tpl.Version,
	})
}

type promoteRequest struct {
	Name    string `json:"name"`
	Version int    `json:"version"`
	Alias   string `json:"alias,omitempty"`
}

func (h *PromptHandler) Promote(w http.ResponseWriter, r *http.Request) {
	var req promoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.Name == "" || req.Version <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name and version required"})
		return
	}
	if req.Alias == "" {
		req.Alias = "production"
	}

	if err := h.svc.PromotePrompt(r.Context(), req.Name, req.Version, req.Alias); err != nil {
		slog.Error("failed to promote prompt", "prompt", req.Name, "version", req.Version, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to promote prompt"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"name":    req.Name,
		"version": req.Version,
		"alias":   req.Alias,
	})
}
