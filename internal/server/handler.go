package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/garageml/partsbot/internal/domain"
	"github.com/garageml/partsbot/internal/orchestrator"
)

// Pipeline is the inbound contract the UI layer consumes.
type Pipeline interface {
	HandleMessage(ctx context.Context, text string) (*orchestrator.TurnResult, error)
	Products() []domain.Product
}

// Handler serves the chat API.
type Handler struct {
	pipeline Pipeline
	logger   *slog.Logger
}

type chatRequest struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Chat runs one conversation turn.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	text := strings.TrimSpace(req.Message)
	if text == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "message is required"})
		return
	}

	result, err := h.pipeline.HandleMessage(r.Context(), text)
	if err != nil {
		if errors.Is(err, domain.ErrTurnInFlight) {
			writeJSON(w, http.StatusConflict, errorResponse{Error: "a turn is already being processed"})
			return
		}
		AddError(r.Context(), err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Products returns the current result set.
func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	products := h.pipeline.Products()
	if products == nil {
		products = []domain.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

// Health is the liveness check.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
