package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/ice-solution/bniwedding-application/internal/logger"
	"github.com/ice-solution/bniwedding-application/internal/security"
)

// AuthHandler signs the single configured admin in. There is no user
// table; the reviewer account lives in configuration.
type AuthHandler struct {
	adminEmail   string
	passwordHash string
	tokens       security.TokenManager
}

func NewAuthHandler(adminEmail, passwordHash string, tokens security.TokenManager) *AuthHandler {
	return &AuthHandler{
		adminEmail:   adminEmail,
		passwordHash: passwordHash,
		tokens:       tokens,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login handles POST /api/admin/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	// The same response for a wrong email and a wrong password.
	if !strings.EqualFold(strings.TrimSpace(req.Email), h.adminEmail) {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(h.passwordHash), []byte(req.Password)); err != nil {
		logger.Warn("admin login rejected", "email", req.Email)
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
		return
	}

	token, err := h.tokens.GenerateAdminToken(h.adminEmail)
	if err != nil {
		writeError(w, err)
		return
	}

	logger.Info("admin logged in", "email", h.adminEmail)
	writeJSON(w, http.StatusOK, loginResponse{Token: token})
}
