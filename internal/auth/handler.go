package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Handler exposes the HTTP endpoints for register / login / verify.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// CredentialsRequest is the request body for register and login.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type errorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debugw("invalid register payload", "err", err)
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Validation Error", Message: "Email and password are required"})
		return
	}
	token, err := h.svc.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		var vErr *ValidationError
		switch {
		case errors.As(err, &vErr):
			h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Validation Error", Message: vErr.Message, Details: vErr.Details})
		case errors.Is(err, ErrEmailTaken):
			h.writeJSON(w, http.StatusConflict, errorResponse{Error: "Conflict", Message: "User already exists"})
		default:
			h.logger.Errorw("registration failed", "err", err)
			h.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal Server Error", Message: "Registration failed"})
		}
		return
	}
	h.writeJSON(w, http.StatusCreated, map[string]string{
		"message": "User registered successfully",
		"token":   token,
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debugw("invalid login payload", "err", err)
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Validation Error", Message: "Email and password are required"})
		return
	}
	token, summary, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		var vErr *ValidationError
		switch {
		case errors.As(err, &vErr):
			h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Validation Error", Message: vErr.Message, Details: vErr.Details})
		case errors.Is(err, ErrInvalidCredentials):
			h.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Authentication Error", Message: "Invalid credentials"})
		default:
			h.logger.Errorw("login failed", "err", err)
			h.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal Server Error", Message: "Login failed"})
		}
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"token":   token,
		"user":    summary,
	})
}

// Verify lets a client confirm a stored token against server authority.
// It parses the bearer header itself since it is mounted outside the gate.
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	header := r.Header.Get("Authorization")
	if header == "" {
		h.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Authentication Error", Message: "No token provided"})
		return
	}
	identity, err := h.svc.Verify(r.Context(), strings.TrimPrefix(header, bearerPrefix))
	if err != nil {
		h.logger.Debugw("verify failed", "err", err)
		h.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Authentication Error", Message: "Invalid token"})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"message": "Token is valid",
		"user":    identity,
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
