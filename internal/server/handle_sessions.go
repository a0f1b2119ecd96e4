package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/playperu/geoguess/internal/geoguess"
	"github.com/playperu/geoguess/internal/session"
)

func handleCreateSession(logger *slog.Logger, sessions *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateSessionRequest
		if r.ContentLength != 0 {
			if err := readJSON(w, r, &req); err != nil {
				writeError(w, http.StatusBadRequest, "invalid request body")
				return
			}
		}
		settings := geoguess.Settings{Difficulty: req.Difficulty, QuestionCount: req.QuestionCount}
		if err := validateSettings(settings); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		sess, err := sessions.Create(r.Context(), session.CreateParams{
			Settings:   settings,
			SeedPhrase: req.SeedPhrase,
		})
		if errors.Is(err, session.ErrInvalidSettings) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err != nil {
			logger.Error("creating session", "error", err)
			writeError(w, http.StatusInternalServerError, "could not create session")
			return
		}

		writeJSON(w, http.StatusCreated, newCreateSessionResponse(sess.ID(), sess.Seed(), sess.Snapshot()))
	}
}

func handleGetSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)
		writeJSON(w, http.StatusOK, newStateResponse(sess.ID(), sess.Snapshot()))
	}
}

// handleDeleteSession ends the session. Live subscribers are told through
// the manager's end hook.
func handleDeleteSession(sessions *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)
		if err := sessions.Delete(sess.ID()); err != nil {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleResults() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)
		if phase := sess.Snapshot().Phase; phase != geoguess.PhaseFinished {
			writeError(w, http.StatusConflict, "game is not finished")
			return
		}
		res := sess.Results()
		writeJSON(w, http.StatusOK, ResultsResponse{Results: res, ShareText: res.ShareText()})
	}
}
