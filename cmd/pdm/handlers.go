package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"predixaai-alerts/internal/pipeline"
	"predixaai-alerts/internal/sensor"
	"predixaai-alerts/internal/shell"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	Shell   *shell.Shell
	Store   Pinger
	Metrics http.Handler
}

func NewHandler(sh *shell.Shell, store Pinger, metrics http.Handler) *Handler {
	return &Handler{Shell: sh, Store: store, Metrics: metrics}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/health", h.HandleHealth)
	r.Post("/readings/generate", h.HandleGenerateReading)
	r.Get("/readings/current", h.HandleCurrentReading)
	r.Put("/readings/current", h.HandleSetReading)
	r.Post("/predictions", h.HandlePredict)
	if h.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.Metrics)
	}
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return r
}

func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if h.Store != nil {
		if err := h.Store.Ping(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "error": err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) HandleGenerateReading(w http.ResponseWriter, r *http.Request) {
	reading := h.Shell.GenerateReading()
	writeJSON(w, http.StatusOK, readingResponse{Reading: reading, Fields: sensor.Fields, Message: shell.GeneratedMessage})
}

func (h *Handler) HandleCurrentReading(w http.ResponseWriter, r *http.Request) {
	reading, ok := h.Shell.Current()
	if !ok {
		writeError(w, http.StatusNotFound, shell.ErrNoReading.Error())
		return
	}
	writeJSON(w, http.StatusOK, readingResponse{Reading: reading, Fields: sensor.Fields})
}

func (h *Handler) HandleSetReading(w http.ResponseWriter, r *http.Request) {
	var req readingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Values) == 0 {
		writeError(w, http.StatusBadRequest, "values are required")
		return
	}
	h.Shell.SetReading(sensor.Reading(req.Values))
	writeJSON(w, http.StatusOK, readingResponse{Reading: sensor.Reading(req.Values), Fields: sensor.Fields})
}

func (h *Handler) HandlePredict(w http.ResponseWriter, r *http.Request) {
	out, err := h.Shell.RunPrediction(r.Context())
	if err != nil {
		h.writePredictionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newPredictionResponse(out))
}

func (h *Handler) writePredictionError(w http.ResponseWriter, err error) {
	if errors.Is(err, shell.ErrNoReading) {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	kind, _ := pipeline.KindOf(err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error(), Kind: string(kind)})
}
