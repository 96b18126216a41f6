package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/pharmatrack/stock-service/internal/area"
)

type AreaHandler struct {
	uc     area.UseCase
	logger *zap.Logger
}

func NewAreaHandler(uc area.UseCase, log *zap.Logger) *AreaHandler {
	return &AreaHandler{uc: uc, logger: log}
}

func (h *AreaHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
	return r
}

type createAreaInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

func (h *AreaHandler) create(w http.ResponseWriter, r *http.Request) {
	var input createAreaInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.uc.CreateArea(r.Context(), input.Name, input.Description)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, a)
}

func (h *AreaHandler) list(w http.ResponseWriter, r *http.Request) {
	areas, err := h.uc.ListAreas(r.Context())
	if err != nil {
		h.logger.Error("failed to list areas", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to list areas")
		return
	}
	respondJSON(w, http.StatusOK, areas)
}

func (h *AreaHandler) get(w http.ResponseWriter, r *http.Request) {
	a, err := h.uc.GetArea(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.logger.Error("failed to get area", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to get area")
		return
	}
	if a == nil {
		respondError(w, http.StatusNotFound, "area not found")
		return
	}
	respondJSON(w, http.StatusOK, a)
}

func (h *AreaHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeleteArea(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.logger.Error("failed to delete area", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to delete area")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
