package quiz

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

type Handler struct {
	repo   *Repo
	logger *zap.SugaredLogger
}

func NewHandler(repo *Repo, logger *zap.SugaredLogger) *Handler {
	return &Handler{repo: repo, logger: logger}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Errorw("list quizzes", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal Server Error", "message": "Something went wrong"})
		return
	}
	writeJSON(w, http.StatusOK, quizzes)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	q, err := h.repo.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"msg": "Quiz not found"})
			return
		}
		h.logger.Errorw("get quiz", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal Server Error", "message": "Something went wrong"})
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
