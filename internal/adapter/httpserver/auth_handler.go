package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/ayusharma-ctrl/Spyne/internal/platform/jwt"
	"github.com/ayusharma-ctrl/Spyne/internal/usecase"
	"go.uber.org/zap"
)

type AuthHandler struct {
	userUC     *usecase.UserUseCase
	tokens     *jwt.TokenManager
	cookieTTL  time.Duration
	production bool
	logger     *zap.Logger
}

func NewAuthHandler(userUC *usecase.UserUseCase, tokens *jwt.TokenManager, cookieTTL time.Duration, production bool, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		userUC:     userUC,
		tokens:     tokens,
		cookieTTL:  cookieTTL,
		production: production,
		logger:     logger,
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Please provide valid credentials!")
		return
	}

	userID, err := h.userUC.Register(r.Context(), usecase.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrUserAlreadyExists) {
			writeError(w, http.StatusBadRequest, "User already exists")
			return
		}
		h.logger.Error("Failed to register user", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "User created successfully",
		"userId":  userID,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Please provide valid credentials!")
		return
	}

	out, err := h.userUC.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		h.logger.Error("Failed to login user", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	http.SetCookie(w, h.sessionCookie(out.Token, int(h.cookieTTL.Seconds())))
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Login successful",
		"userId":  out.UserID,
	})
}

// Logout clears the cookie client side. The token itself stays verifiable
// until natural expiry since no revocation store exists.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.sessionCookie("", -1))
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(tokenCookieName)
	if err == nil {
		if _, verifyErr := h.tokens.Verify(cookie.Value); verifyErr == nil {
			writeJSON(w, http.StatusOK, map[string]any{"isAuthenticated": true})
			return
		}
	}
	writeJSON(w, http.StatusUnauthorized, map[string]any{"isAuthenticated": false})
}

func (h *AuthHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     tokenCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.production,
		SameSite: http.SameSiteStrictMode,
	}
}
