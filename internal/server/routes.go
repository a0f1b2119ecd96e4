package server

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/playperu/geoguess/internal/engine"
)

func addRoutes(r chi.Router, logger *slog.Logger, deps Deps) {
	sessions, broker := deps.Sessions, deps.Broker

	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Geo-Guess API", "/openapi.json", "/docs"))

	if deps.Questions != nil {
		r.Get("/api/questions/summary", handleQuestionSummary(logger, deps.Questions))
	}

	r.Post("/api/sessions", handleCreateSession(logger, sessions))

	r.Route("/api/sessions/{id}", func(r chi.Router) {
		r.Use(sessionMiddleware(sessions))

		r.Get("/", handleGetSession())
		r.Delete("/", handleDeleteSession(sessions))
		r.Get("/results", handleResults())
		r.Get("/events", handleEvents(broker))
		r.Get("/ws", handleWS(logger, broker))

		r.Post("/initialize", handleCommand("initialize the game", initializeCommand))
		r.Post("/setup", handleCommand("open team setup", fixed(engine.OpenSetup{})))
		r.Post("/back", handleCommand("go back to start", fixed(engine.BackToStart{})))
		r.Post("/rounds", handleCommand("start a round", fixed(engine.StartRound{})))
		r.Post("/answer", handleCommand("answer", answerCommand))
		r.Post("/reset", handleCommand("reset", fixed(engine.Reset{})))

		r.Post("/players", handleAddPlayer())
		r.Delete("/players/{playerID}", handleRemovePlayer())
		r.Put("/collaborative", handleToggle("change collaborative mode",
			func(s engine.Snapshot) bool { return s.CollaborativeMode },
			func(on bool) engine.Command { return engine.SetCollaborativeMode{Enabled: on} },
		))
		r.Put("/team-mode", handleToggle("change team mode",
			func(s engine.Snapshot) bool { return s.TeamMode },
			func(on bool) engine.Command { return engine.SetTeamMode{Enabled: on} },
		))
	})

	if deps.SPADir != "" {
		if info, err := os.Stat(deps.SPADir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", deps.SPADir)
			r.NotFound(handleSPA(deps.SPADir))
		}
	}
}
