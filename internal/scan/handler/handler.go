package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/pharmatrack/stock-service/internal/model"
	"github.com/pharmatrack/stock-service/internal/movement"
	movdto "github.com/pharmatrack/stock-service/internal/movement/dto"
	"github.com/pharmatrack/stock-service/internal/scan/dto"
	"github.com/pharmatrack/stock-service/internal/scan/session"
)

// ScanHandler exposes the station session lifecycle and the scan/confirmation
// inputs over HTTP.
type ScanHandler struct {
	sessions  *session.Manager
	movements movement.UseCase
	logger    *zap.Logger
}

func NewScanHandler(sessions *session.Manager, movements movement.UseCase, log *zap.Logger) *ScanHandler {
	return &ScanHandler{
		sessions:  sessions,
		movements: movements,
		logger:    log,
	}
}

func (h *ScanHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/stations/{station}", func(r chi.Router) {
		r.Post("/session/activate", h.activate)
		r.Post("/session/deactivate", h.deactivate)
		r.Get("/session", h.snapshot)
		r.Post("/scans", h.scan)
		r.Post("/confirm", h.confirm)
		r.Post("/cancel", h.cancel)
	})
	r.Get("/movements", h.listMovements)

	return r
}

func (h *ScanHandler) activate(w http.ResponseWriter, r *http.Request) {
	var input dto.ActivateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	direction, err := model.ParseDirection(input.Direction)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	sess := h.sessions.Get(chi.URLParam(r, "station"))
	if err := sess.Activate(direction); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sess.Snapshot())
}

func (h *ScanHandler) deactivate(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(chi.URLParam(r, "station"))
	sess.Deactivate()
	respondJSON(w, http.StatusOK, sess.Snapshot())
}

func (h *ScanHandler) snapshot(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(chi.URLParam(r, "station"))
	respondJSON(w, http.StatusOK, sess.Snapshot())
}

func (h *ScanHandler) scan(w http.ResponseWriter, r *http.Request) {
	var input dto.ScanInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.TagID == "" {
		respondError(w, http.StatusBadRequest, "tag_id is required")
		return
	}
	ts := input.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	station := chi.URLParam(r, "station")
	sess := h.sessions.Get(station)
	outcome, err := sess.HandleScan(r.Context(), model.ScanEvent{
		StationID: station,
		TagID:     input.TagID,
		Timestamp: ts,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, outcome)
}

func (h *ScanHandler) confirm(w http.ResponseWriter, r *http.Request) {
	var input dto.ConfirmInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sess := h.sessions.Get(chi.URLParam(r, "station"))
	result, err := sess.Confirm(r.Context(), model.ConfirmInput{
		TagID:    input.TagID,
		Quantity: input.Quantity,
		AreaID:   input.AreaID,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *ScanHandler) cancel(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(chi.URLParam(r, "station"))
	if err := sess.Cancel(); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sess.Snapshot())
}

func (h *ScanHandler) listMovements(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := &movdto.MovementFilters{
		BatchID:   q.Get("batch_id"),
		ProductID: q.Get("product_id"),
		Direction: q.Get("direction"),
		Page:      atoiDefault(q.Get("page"), 1),
		PageSize:  atoiDefault(q.Get("page_size"), 50),
	}

	items, total, err := h.movements.ListMovements(r.Context(), filters)
	if err != nil {
		h.logger.Error("failed to list movements", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to list movements")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"movements": items,
		"total":     total,
	})
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
