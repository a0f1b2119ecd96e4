// Package health serves the liveness endpoint.
package health

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// Checker verifies that a dependency is usable.
type Checker interface {
	Check(ctx context.Context) error
}

// Gauge reports a number worth seeing at a glance, such as live sessions.
type Gauge func() int

type Handler struct {
	checks map[string]Checker
	gauges map[string]Gauge
	logger *slog.Logger
}

func NewHandler(logger *slog.Logger, checks map[string]Checker, gauges map[string]Gauge) *Handler {
	return &Handler{checks: checks, gauges: gauges, logger: logger}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.check)
	return r
}

type Result struct {
	Status string `json:"status"`
}

type Response struct {
	Status string            `json:"status"`
	Checks map[string]Result `json:"checks"`
	Gauges map[string]int    `json:"gauges,omitempty"`
}

func (h *Handler) check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	resp := Response{
		Status: "ok",
		Checks: make(map[string]Result, len(h.checks)),
	}
	status := http.StatusOK

	for name, c := range h.checks {
		if err := c.Check(ctx); err != nil {
			h.logger.Error("health check failed", "name", name, "error", err)
			resp.Checks[name] = Result{Status: "error"}
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = Result{Status: "ok"}
	}

	if len(h.gauges) > 0 {
		resp.Gauges = make(map[string]int, len(h.gauges))
		for name, g := range h.gauges {
			resp.Gauges[name] = g()
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}
