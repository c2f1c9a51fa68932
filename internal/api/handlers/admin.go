package handlers

import (
	"log/slog"
	"net/http"

	"github.com/careerkit/companion/internal/track"
)

type AdminHandler struct {
	usage *track.Store
}

func NewAdminHandler(usage *track.Store) *AdminHandler {
	return &AdminHandler{usage: usage}
}

func (h *AdminHandler) Usage(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.usage.GetUsageSummary(r.Context())
	if err != nil {
		slog.Error("failed to get usage summary", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to retrieve usage"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"usage": summaries})
}
