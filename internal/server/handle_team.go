package server

import (
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/geoguess/internal/engine"
	"github.com/playperu/geoguess/internal/geoguess"
)

func handleAddPlayer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)

		var req AddPlayerRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if strings.TrimSpace(req.Name) == "" {
			writeError(w, http.StatusBadRequest, "name is required")
			return
		}

		snap, applied := sess.Do(engine.AddPlayer{Name: req.Name})
		if !applied {
			msg := fmt.Sprintf("cannot add players during %s", snap.Phase)
			if len(snap.Players) >= snap.Rules.MaxTeamSize {
				msg = "team is full"
			}
			writeError(w, http.StatusConflict, msg)
			return
		}
		writeJSON(w, http.StatusCreated, AddPlayerResponse{
			Player: snap.Players[len(snap.Players)-1],
			State:  newStateResponse(sess.ID(), snap),
		})
	}
}

func handleRemovePlayer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)

		id := chi.URLParam(r, "playerID")
		snap, applied := sess.Do(engine.RemovePlayer{ID: id})
		if !applied {
			if !slices.ContainsFunc(snap.Players, func(p geoguess.Player) bool { return p.ID == id }) {
				writeError(w, http.StatusNotFound, "player not found")
				return
			}
			writeError(w, http.StatusConflict, fmt.Sprintf("cannot remove players during %s", snap.Phase))
			return
		}
		writeJSON(w, http.StatusOK, newStateResponse(sess.ID(), snap))
	}
}

// handleToggle sets a mode flag. Setting a flag to its current value
// succeeds without a change.
func handleToggle(action string, current func(engine.Snapshot) bool, build func(bool) engine.Command) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)

		var req ToggleRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Enabled == nil {
			writeError(w, http.StatusBadRequest, "enabled is required")
			return
		}

		snap := sess.Snapshot()
		if current(snap) == *req.Enabled {
			writeJSON(w, http.StatusOK, newStateResponse(sess.ID(), snap))
			return
		}

		snap, applied := sess.Do(build(*req.Enabled))
		if !applied {
			writeError(w, http.StatusConflict, fmt.Sprintf("cannot %s during %s", action, snap.Phase))
			return
		}
		writeJSON(w, http.StatusOK, newStateResponse(sess.ID(), snap))
	}
}
