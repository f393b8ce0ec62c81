package handlers

import (
	"net/http"
	"strings"

	"puzzle-scoreboard-go/interfaces"
	"puzzle-scoreboard-go/logging"
	"puzzle-scoreboard-go/models"
)

// PlayerHandler serves the roster read and first-run setup endpoints
type PlayerHandler struct {
	scoreService interfaces.ScoreService
	logger       *logging.Logger
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(scoreService interfaces.ScoreService) *PlayerHandler {
	return &PlayerHandler{
		scoreService: scoreService,
		logger:       logging.WithPrefix("PlayerHandler"),
	}
}

// GetRoster returns the active player list. Before first-run setup the
// roster is null, which the UI reads as "show the setup screen".
func (h *PlayerHandler) GetRoster(w http.ResponseWriter, r *http.Request) {
	names, err := h.scoreService.GetRoster(r.Context())
	if err != nil {
		h.logger.Errorf("Failed to load roster: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to load players")
		return
	}
	if names == nil {
		respondJSON(w, http.StatusOK, nil)
		return
	}
	respondJSON(w, http.StatusOK, models.Roster{Names: names})
}

// SaveRoster replaces the active player list
func (h *PlayerHandler) SaveRoster(w http.ResponseWriter, r *http.Request) {
	var req models.Roster
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var names []string
	for _, name := range req.Names {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	if len(names) == 0 {
		respondError(w, http.StatusBadRequest, "at least one player name is required")
		return
	}

	if err := h.scoreService.SaveRoster(r.Context(), names); err != nil {
		h.logger.Errorf("Failed to save roster: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to save players")
		return
	}

	respondJSON(w, http.StatusOK, models.Roster{Names: names})
}
