package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"puzzle-scoreboard-go/interfaces"
	"puzzle-scoreboard-go/logging"
	"puzzle-scoreboard-go/models"
	"puzzle-scoreboard-go/services"
)

// PodiumHandler serves the computed daily, weekly and monthly podiums and
// per-player statistics. All ranking happens per request over a fresh
// snapshot; nothing is cached between calls.
type PodiumHandler struct {
	scoreService interfaces.ScoreService
	logger       *logging.Logger
}

// NewPodiumHandler creates a new podium handler
func NewPodiumHandler(scoreService interfaces.ScoreService) *PodiumHandler {
	return &PodiumHandler{
		scoreService: scoreService,
		logger:       logging.WithPrefix("PodiumHandler"),
	}
}

// WeeklyPodiumResponse pairs the ranked entries with the display label
// for the Monday–Sunday window they cover
type WeeklyPodiumResponse struct {
	Label  string               `json:"label"`
	Podium []models.PodiumEntry `json:"podium"`
}

// MonthlyPodiumResponse pairs the ranked entries with the month label
type MonthlyPodiumResponse struct {
	Label  string               `json:"label"`
	Podium []models.PodiumEntry `json:"podium"`
}

// selectedDate reads the date query parameter, defaulting to today
func selectedDate(r *http.Request) (time.Time, bool) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return time.Now(), true
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

// GetDailyPodium returns the ranked results for one day, or null when
// nobody played that day
func (h *PodiumHandler) GetDailyPodium(w http.ResponseWriter, r *http.Request) {
	date, ok := selectedDate(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	record, err := h.scoreService.GetDayRecord(r.Context(), date.Format("2006-01-02"))
	if err != nil {
		h.logger.Errorf("Failed to load day record: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to load scores")
		return
	}

	respondJSON(w, http.StatusOK, services.CalculateDailyPodium(record))
}

// GetWeeklyPodium returns the aggregated podium for the week containing
// the selected date
func (h *PodiumHandler) GetWeeklyPodium(w http.ResponseWriter, r *http.Request) {
	date, ok := selectedDate(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	players, scores, ok := h.loadInputs(w, r)
	if !ok {
		return
	}

	podium := services.CalculateWeeklyPodium(players, scores, date)
	if podium == nil {
		respondJSON(w, http.StatusOK, nil)
		return
	}

	respondJSON(w, http.StatusOK, WeeklyPodiumResponse{
		Label:  services.GetWeekRange(date),
		Podium: podium,
	})
}

// GetMonthlyPodium returns the aggregated podium for the month containing
// the selected date
func (h *PodiumHandler) GetMonthlyPodium(w http.ResponseWriter, r *http.Request) {
	date, ok := selectedDate(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	players, scores, ok := h.loadInputs(w, r)
	if !ok {
		return
	}

	podium := services.CalculateMonthlyPodium(players, scores, date)
	if podium == nil {
		respondJSON(w, http.StatusOK, nil)
		return
	}

	respondJSON(w, http.StatusOK, MonthlyPodiumResponse{
		Label:  services.GetMonthName(date),
		Podium: podium,
	})
}

// GetPlayerStats returns lifetime aggregates for one player. The player
// does not need to be on the current roster; removed players keep their
// history.
func (h *PodiumHandler) GetPlayerStats(w http.ResponseWriter, r *http.Request) {
	player := mux.Vars(r)["player"]

	scores, err := h.scoreService.GetSnapshot(r.Context())
	if err != nil {
		h.logger.Errorf("Failed to load snapshot: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to load scores")
		return
	}

	stats := services.CalculatePlayerStats(player, scores)
	if stats == nil {
		respondError(w, http.StatusBadRequest, "player name is required")
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// loadInputs loads the roster and snapshot, writing the error response
// itself when either read fails
func (h *PodiumHandler) loadInputs(w http.ResponseWriter, r *http.Request) ([]string, models.ScoreSnapshot, bool) {
	players, err := h.scoreService.GetRoster(r.Context())
	if err != nil {
		h.logger.Errorf("Failed to load roster: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to load players")
		return nil, nil, false
	}

	scores, err := h.scoreService.GetSnapshot(r.Context())
	if err != nil {
		h.logger.Errorf("Failed to load snapshot: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to load scores")
		return nil, nil, false
	}

	return players, scores, true
}
