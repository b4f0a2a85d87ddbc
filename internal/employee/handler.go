package employee

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/crewdeck/crewdeck/internal/employee/entity"
)

// Handler exposes HTTP endpoints for the employee directory. It is always
// mounted behind the auth gate, so requests reaching it carry a verified
// identity.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.svc.List(r.Context())
	if err != nil {
		h.internal(w, "list employees", err)
		return
	}
	h.writeJSON(w, http.StatusOK, employees)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	e, err := h.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			h.writeJSON(w, http.StatusNotFound, map[string]string{"msg": "Employee not found"})
			return
		}
		h.internal(w, "get employee", err)
		return
	}
	h.writeJSON(w, http.StatusOK, e)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var e entity.Employee
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Validation Error", "message": "invalid payload"})
		return
	}
	created, err := h.svc.Create(r.Context(), &e)
	if err != nil {
		h.writeError(w, "create employee", err)
		return
	}
	h.writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var e entity.Employee
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Validation Error", "message": "invalid payload"})
		return
	}
	e.ID = r.PathValue("id")
	updated, err := h.svc.Update(r.Context(), &e)
	if err != nil {
		h.writeError(w, "update employee", err)
		return
	}
	h.writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			h.writeJSON(w, http.StatusNotFound, map[string]string{"msg": "Employee not found"})
			return
		}
		h.internal(w, "delete employee", err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"msg": "Employee deleted successfully"})
}

func (h *Handler) writeError(w http.ResponseWriter, op string, err error) {
	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr):
		h.writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "Validation Error",
			"message": "Invalid input data",
			"details": vErr.Details,
		})
	case errors.Is(err, ErrDuplicateEmail):
		h.writeJSON(w, http.StatusConflict, map[string]string{"error": "Conflict", "message": "email already exists"})
	case errors.Is(err, ErrNotFound):
		h.writeJSON(w, http.StatusNotFound, map[string]string{"msg": "Employee not found"})
	default:
		h.internal(w, op, err)
	}
}

func (h *Handler) internal(w http.ResponseWriter, op string, err error) {
	h.logger.Errorw(op, "err", err)
	h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal Server Error", "message": "Something went wrong"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
