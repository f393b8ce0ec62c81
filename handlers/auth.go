package handlers

import (
	"net/http"
	"time"

	"puzzle-scoreboard-go/logging"
	"puzzle-scoreboard-go/middleware"
	"puzzle-scoreboard-go/models"
	"puzzle-scoreboard-go/services"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService   *services.AuthService
	secureCookies bool
	logger        *logging.Logger
}

// NewAuthHandler creates a new authentication handler. secureCookies
// should be true outside development so the session cookie is HTTPS-only.
func NewAuthHandler(authService *services.AuthService, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		secureCookies: secureCookies,
		logger:        logging.WithPrefix("AuthHandler"),
	}
}

// Login handles the login request and sets the session cookie
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	resp, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		h.logger.Warnf("Failed login for %s: %v", req.Email, err)
		respondError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    resp.Token,
		Path:     "/",
		Expires:  time.Now().Add(30 * 24 * time.Hour),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	h.logger.Infof("User %s logged in", resp.User.Email)
	respondJSON(w, http.StatusOK, resp)
}

// Logout clears the session cookie
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	respondJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// Me returns the authenticated user, including the allowed flag the UI
// uses to decide whether to show the submission form
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)
	if user == nil {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	respondJSON(w, http.StatusOK, user.ToSafeUser())
}
