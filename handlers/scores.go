package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"puzzle-scoreboard-go/interfaces"
	"puzzle-scoreboard-go/logging"
	"puzzle-scoreboard-go/middleware"
	"puzzle-scoreboard-go/models"
	"puzzle-scoreboard-go/services"
)

// ScoreHandler serves the score snapshot and the submission write path
type ScoreHandler struct {
	scoreService interfaces.ScoreService
	logger       *logging.Logger
}

// NewScoreHandler creates a new score handler
func NewScoreHandler(scoreService interfaces.ScoreService) *ScoreHandler {
	return &ScoreHandler{
		scoreService: scoreService,
		logger:       logging.WithPrefix("ScoreHandler"),
	}
}

// GetSnapshot returns the full score snapshot keyed by date
func (h *ScoreHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.scoreService.GetSnapshot(r.Context())
	if err != nil {
		h.logger.Errorf("Failed to load snapshot: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to load scores")
		return
	}
	respondJSON(w, http.StatusOK, snapshot)
}

// GetDayRecord returns one day's record
func (h *ScoreHandler) GetDayRecord(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]

	record, err := h.scoreService.GetDayRecord(r.Context(), date)
	if errors.Is(err, services.ErrInvalidDate) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		h.logger.Errorf("Failed to load day record %s: %v", date, err)
		respondError(w, http.StatusInternalServerError, "failed to load scores")
		return
	}
	if record == nil {
		respondError(w, http.StatusNotFound, "no scores for "+date)
		return
	}
	respondJSON(w, http.StatusOK, record)
}

// SubmitScores stores a day's submission. Routing runs this behind the
// allowed gate, so the user in context is authenticated and allow-listed.
func (h *ScoreHandler) SubmitScores(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]

	var req models.SubmitScoreRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := h.scoreService.SubmitScores(r.Context(), date, req.Times)
	switch {
	case errors.Is(err, services.ErrInvalidDate),
		errors.Is(err, services.ErrEmptySubmission):
		respondError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, services.ErrNoRoster):
		respondError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		h.logger.Errorf("Failed to store scores for %s: %v", date, err)
		respondError(w, http.StatusInternalServerError, "failed to store scores")
		return
	}

	if user := middleware.GetUserFromContext(r); user != nil {
		h.logger.Infof("Scores for %s submitted by %s", date, user.Email)
	}
	respondJSON(w, http.StatusOK, record)
}
