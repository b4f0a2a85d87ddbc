package technology

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
	names, err := h.repo.ListNames(r.Context())
	if err != nil {
		h.logger.Errorw("list technologies", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal Server Error", "message": "Something went wrong"})
		return
	}
	writeJSON(w, http.StatusOK, names)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	topic, err := h.repo.GetByName(r.Context(), r.PathValue("name"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"msg": "Technology not found"})
			return
		}
		h.logger.Errorw("get technology", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal Server Error", "message": "Something went wrong"})
		return
	}
	writeJSON(w, http.StatusOK, topic)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
