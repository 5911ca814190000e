package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/tvdberg/wijnproef/internal/models"
	"github.com/tvdberg/wijnproef/internal/report"
)

// Handler exposes the tasting session as a small JSON API plus the PDF
// report download.
type Handler struct {
	tasting *Tasting
}

// NewHandler creates a Handler over the given session.
func NewHandler(t *Tasting) *Handler {
	return &Handler{tasting: t}
}

// Register mounts all API routes on the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/wines", h.getWines)
	mux.HandleFunc("PUT /api/wines", h.putWines)
	mux.HandleFunc("GET /api/orders", h.getOrders)
	mux.HandleFunc("POST /api/orders", h.postOrder)
	mux.HandleFunc("DELETE /api/orders", h.resetOrders)
	mux.HandleFunc("GET /api/summary", h.getSummary)
	mux.HandleFunc("GET /api/report", h.getReport)
}

func (h *Handler) getWines(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.tasting.Wines())
}

func (h *Handler) putWines(w http.ResponseWriter, r *http.Request) {
	var edited []models.WineEntry
	if err := json.NewDecoder(r.Body).Decode(&edited); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid catalog payload: %w", err))
		return
	}

	if err := h.tasting.ReplaceWines(r.Context(), edited); err != nil {
		slog.Error("ReplaceWines failed", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, h.tasting.Wines())
}

func (h *Handler) getOrders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.tasting.Orders())
}

func (h *Handler) postOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Person   string `json:"person"`
		Wine     string `json:"wine"`
		Quantity int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid order payload: %w", err))
		return
	}

	line, err := h.tasting.AddOrder(r.Context(), req.Person, req.Wine, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyCatalog):
			// Not a server fault: the UI should point at the catalog tab.
			writeError(w, http.StatusConflict, err)
		case errors.Is(err, ErrUnknownWine):
			writeError(w, http.StatusNotFound, err)
		case errors.Is(err, ErrInvalidOrder):
			writeError(w, http.StatusBadRequest, err)
		default:
			slog.Error("AddOrder failed", "error", err)
			writeError(w, http.StatusInternalServerError, err)
		}
		return
	}
	writeJSON(w, http.StatusCreated, line)
}

func (h *Handler) resetOrders(w http.ResponseWriter, r *http.Request) {
	if err := h.tasting.Reset(r.Context()); err != nil {
		slog.Error("Reset failed", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.tasting.Summary())
}

func (h *Handler) getReport(w http.ResponseWriter, r *http.Request) {
	pdf, err := report.Render(h.tasting.Summary())
	if err != nil {
		slog.Error("Report render failed", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		slog.Warn("Report download interrupted", "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
