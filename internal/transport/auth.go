package transport

import (
	"errors"
	"net/http"

	"brewbar-be/internal/logger"
	"brewbar-be/internal/user"
	"brewbar-be/internal/utils"
	"brewbar-be/internal/validation"

	"go.uber.org/zap"
)

type AuthHandler struct {
	users user.Service
}

func NewAuthHandler(users user.Service) *AuthHandler {
	return &AuthHandler{users: users}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := validation.DecodeAndValidate(r, &req); err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	token, u, err := h.users.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrEmailExists) {
			utils.WriteJSONError(w, "email already registered", http.StatusConflict)
			return
		}
		logger.FromCtx(r.Context()).Error("register failed", zap.Error(err))
		utils.WriteJSONError(w, "registration failed", http.StatusInternalServerError)
		return
	}

	setAccessCookie(w, token)
	utils.WriteJSON(w, http.StatusCreated, tokenResponse(token, u))
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := validation.DecodeAndValidate(r, &req); err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	token, u, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			utils.WriteJSONError(w, "invalid email or password", http.StatusUnauthorized)
			return
		}
		logger.FromCtx(r.Context()).Error("login failed", zap.Error(err))
		utils.WriteJSONError(w, "login failed", http.StatusInternalServerError)
		return
	}

	setAccessCookie(w, token)
	utils.WriteJSON(w, http.StatusOK, tokenResponse(token, u))
}

func setAccessCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func tokenResponse(token string, u user.User) map[string]any {
	return map[string]any{
		"access_token": token,
		"token_type":   "bearer",
		"user": map[string]string{
			"username": u.Username,
			"email":    u.Email,
			"role":     string(u.Role),
		},
	}
}
