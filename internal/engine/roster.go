package engine

import (
	"strings"

	"github.com/playperu/geoguess/internal/geoguess"
)

func (e *Engine) addPlayer(name string) bool {
	name = strings.TrimSpace(name)
	if !e.beforePlay() || name == "" || len(e.roster) >= e.rules.MaxTeamSize {
		return false
	}
	e.roster = append(e.roster, &geoguess.Player{
		ID:     e.newID(),
		Name:   name,
		Avatar: geoguess.Avatars[e.rng.IntN(len(geoguess.Avatars))],
	})
	return true
}

// removePlayer drops a player from the roster. Nobody holds the turn and
// nobody has scored before play starts, so no turn or team state moves.
func (e *Engine) removePlayer(id string) bool {
	if !e.beforePlay() {
		return false
	}
	idx := e.playerIndex(id)
	if idx < 0 {
		return false
	}
	roster := make([]*geoguess.Player, 0, len(e.roster)-1)
	roster = append(roster, e.roster[:idx]...)
	e.roster = append(roster, e.roster[idx+1:]...)
	return true
}

// beforePlay reports whether the roster and modes may still change.
func (e *Engine) beforePlay() bool {
	return e.phase == geoguess.PhaseStart || e.phase == geoguess.PhaseSetup
}

func (e *Engine) setCollaborative(on bool) bool {
	if !e.beforePlay() || e.collaborative == on {
		return false
	}
	e.collaborative = on
	if on {
		e.currentPlayer = ""
	}
	return true
}

func (e *Engine) setTeamMode(on bool) bool {
	if !e.beforePlay() || e.teamMode == on {
		return false
	}
	e.teamMode = on
	return true
}

func (e *Engine) playerIndex(id string) int {
	if id == "" {
		return -1
	}
	for i, p := range e.roster {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// actingPlayer is the player whose turn it is, or nil outside turn-based play.
func (e *Engine) actingPlayer() *geoguess.Player {
	if !e.teamMode || e.collaborative {
		return nil
	}
	if i := e.playerIndex(e.currentPlayer); i >= 0 {
		return e.roster[i]
	}
	return nil
}

// advanceTurn moves the turn to the next roster entry, wrapping around.
func (e *Engine) advanceTurn() {
	if len(e.roster) == 0 {
		e.currentPlayer = ""
		return
	}
	next := (e.playerIndex(e.currentPlayer) + 1) % len(e.roster)
	e.currentPlayer = e.roster[next].ID
}
