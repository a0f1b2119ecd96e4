package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/playperu/geoguess/internal/engine"
	"github.com/playperu/geoguess/internal/session"
)

// Deps are the services the HTTP API is built on.
type Deps struct {
	Sessions  *session.Manager
	Broker    *Broker
	Questions QuestionStats
	SPADir    string
}

type Server struct {
	srv    *http.Server
	logger *slog.Logger
}

// New builds the server. mount registers extra routes such as /healthz
// that live outside this package.
func New(addr string, logger *slog.Logger, deps Deps, mount ...func(r chi.Router)) *Server {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(newStructuredLogger(logger))
	r.Use(middleware.Recoverer)

	for _, m := range mount {
		m(r)
	}
	addRoutes(r, logger, deps)

	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		logger: logger,
	}
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

func (s *Server) Run(_ context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.srv.Addr, err)
	}

	err = s.srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.srv.Shutdown(ctx)
}

func newStructuredLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				logger.Info("http request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"duration_ms", time.Since(start).Milliseconds(),
					"request_id", middleware.GetReqID(r.Context()),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

// PublishState is the session change hook that feeds the broker.
func PublishState(broker *Broker) func(id string, snap engine.Snapshot) {
	return func(id string, snap engine.Snapshot) {
		broker.Publish(id, stateEvent(id, snap))
	}
}

// EndSession is the session end hook. It tells subscribers the session is
// gone and closes their streams.
func EndSession(broker *Broker) func(id string) {
	return func(id string) {
		broker.Publish(id, Event{Type: eventEnded})
		broker.Close(id)
	}
}
