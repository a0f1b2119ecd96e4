package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/playperu/geoguess/internal/engine"
	"github.com/playperu/geoguess/internal/geoguess"
)

// commandFunc builds the engine command for a request. A returned error is
// a client mistake and maps to 400.
type commandFunc func(w http.ResponseWriter, r *http.Request) (engine.Command, error)

func fixed(cmd engine.Command) commandFunc {
	return func(http.ResponseWriter, *http.Request) (engine.Command, error) { return cmd, nil }
}

// handleCommand applies a command to the session. Commands the current phase
// does not allow are answered with 409 and change nothing.
func handleCommand(action string, build commandFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)

		cmd, err := build(w, r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		snap, applied := sess.Do(cmd)
		if !applied {
			writeError(w, http.StatusConflict, fmt.Sprintf("cannot %s during %s", action, snap.Phase))
			return
		}
		writeJSON(w, http.StatusOK, newStateResponse(sess.ID(), snap))
	}
}

func validateSettings(s geoguess.Settings) error {
	if !s.Difficulty.Valid() {
		return fmt.Errorf("unknown difficulty %q", s.Difficulty)
	}
	if s.QuestionCount < 0 {
		return errors.New("questionCount must not be negative")
	}
	return nil
}

func initializeCommand(w http.ResponseWriter, r *http.Request) (engine.Command, error) {
	var req SettingsRequest
	if err := readJSON(w, r, &req); err != nil {
		return nil, errors.New("invalid request body")
	}
	settings := geoguess.Settings{Difficulty: req.Difficulty, QuestionCount: req.QuestionCount}
	if err := validateSettings(settings); err != nil {
		return nil, err
	}
	return engine.InitializeGame{Settings: settings}, nil
}

func answerCommand(w http.ResponseWriter, r *http.Request) (engine.Command, error) {
	var req AnswerRequest
	if err := readJSON(w, r, &req); err != nil {
		return nil, errors.New("invalid request body")
	}
	if req.Option == nil {
		return nil, errors.New("option is required")
	}
	if *req.Option < 0 || *req.Option >= geoguess.OptionCount {
		return nil, fmt.Errorf("option must be between 0 and %d", geoguess.OptionCount-1)
	}
	return engine.SelectAnswer{Option: *req.Option}, nil
}
