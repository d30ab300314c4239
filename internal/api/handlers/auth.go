package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dom/moodbite/internal/api/middleware"
	"github.com/dom/moodbite/internal/api/response"
	"github.com/dom/moodbite/internal/domain"
	"github.com/dom/moodbite/internal/service"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *service.AuthService
	log         *zap.Logger
}

func NewAuthHandler(authService *service.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, log: log}
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type AuthResponse struct {
	Success   bool         `json:"success"`
	Message   string       `json:"message"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

type VerifyResponse struct {
	Success   bool         `json:"success"`
	User      UserResponse `json:"user"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

func newUserResponse(u *domain.User) UserResponse {
	return UserResponse{ID: u.ID.String(), Name: u.Name, Email: u.Email}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		decodeError(w)
		return
	}

	result, err := h.authService.Signup(r.Context(), service.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, h.log, "auth.Signup", err)
		return
	}

	response.JSON(w, http.StatusCreated, AuthResponse{
		Success:   true,
		Message:   "User created successfully",
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      newUserResponse(result.User),
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		decodeError(w)
		return
	}

	result, err := h.authService.Login(r.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, h.log, "auth.Login", err)
		return
	}

	response.JSON(w, http.StatusOK, AuthResponse{
		Success:   true,
		Message:   "Login successful",
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      newUserResponse(result.User),
	})
}

// Verify confirms the presented token still belongs to a stored account and
// returns that account.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		writeError(w, h.log, "auth.Verify", domain.ErrMissingToken)
		return
	}
	userID, err := claims.UserID()
	if err != nil {
		writeError(w, h.log, "auth.Verify", domain.ErrInvalidToken)
		return
	}

	user, err := h.authService.GetUserByID(r.Context(), userID)
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, h.log, "auth.Verify", domain.ErrInvalidToken)
		return
	}
	if err != nil {
		writeError(w, h.log, "auth.Verify", err)
		return
	}

	resp := VerifyResponse{
		Success: true,
		User:    newUserResponse(user),
	}
	if claims.ExpiresAt != nil {
		resp.ExpiresAt = claims.ExpiresAt.Time
	}

	response.JSON(w, http.StatusOK, resp)
}
