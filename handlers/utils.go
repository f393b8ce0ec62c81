package handlers

import (
	"encoding/json"
	"net/http"

	"puzzle-scoreboard-go/logging"
)

// respondJSON writes a JSON response with the given status code. A nil
// payload is written as a JSON null so "nothing to display yet" results
// from the ranking functions reach clients unchanged.
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Errorf("Failed to encode JSON response: %v", err)
	}
}

// respondError writes a JSON error body with the given status code
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// decodeJSON reads a JSON request body into dst
func decodeJSON(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
