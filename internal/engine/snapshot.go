package engine

import (
	"github.com/playperu/geoguess/internal/geoguess"
)

// Snapshot is a copy of the engine state for readers. Nothing in it aliases
// engine memory.
type Snapshot struct {
	Version  uint64
	Phase    geoguess.Phase
	Round    uint64
	Settings geoguess.Settings

	// Question is nil outside question and reveal.
	Question *geoguess.Question
	Selected *int
	Locked   bool
	TimeLeft int
	Timeout  bool

	// Score and Streak follow the mode: solo counters, team totals and the
	// shared streak in collaborative play, or the current player's streak.
	Score            int
	Streak           int
	Correct          int
	EarnedPoints     int
	LastPlayedStreak int

	Remaining int
	Answered  int
	Total     int

	TeamMode          bool
	CollaborativeMode bool
	Players           []geoguess.Player
	CurrentPlayerID   string
	Team              geoguess.TeamStats

	Rules geoguess.Rules
}

func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Version:           e.version,
		Phase:             e.phase,
		Round:             e.round,
		Settings:          e.settings,
		Locked:            e.locked,
		TimeLeft:          e.timeLeft,
		Score:             e.score,
		Streak:            e.streak,
		Correct:           e.correct,
		EarnedPoints:      e.earned,
		LastPlayedStreak:  e.lastPlayedStreak,
		Remaining:         len(e.available),
		Answered:          len(e.used),
		Total:             len(e.pool),
		TeamMode:          e.teamMode,
		CollaborativeMode: e.collaborative,
		Players:           e.Players(),
		CurrentPlayerID:   e.currentPlayer,
		Team:              e.team,
		Rules:             e.rules,
	}

	s.Question = e.CurrentQuestion()
	if e.selected != nil {
		sel := *e.selected
		s.Selected = &sel
	}
	s.Timeout = e.phase == geoguess.PhaseReveal && e.selected == nil

	if e.teamMode {
		s.Score = e.team.TotalScore
		s.Correct = e.team.TotalCorrect
		if p := e.actingPlayer(); p != nil {
			s.Streak = p.Streak
		}
	}
	return s
}

// CurrentQuestion returns a copy of the live question, or nil when no
// question is in play.
func (e *Engine) CurrentQuestion() *geoguess.Question {
	if e.current < 0 || e.current >= len(e.available) {
		return nil
	}
	q := *e.available[e.current]
	return &q
}

func (e *Engine) Phase() geoguess.Phase {
	return e.phase
}

func (e *Engine) TimeLeft() int {
	return e.timeLeft
}

// Players returns a copy of the roster in turn order.
func (e *Engine) Players() []geoguess.Player {
	out := make([]geoguess.Player, len(e.roster))
	for i, p := range e.roster {
		out[i] = *p
	}
	return out
}

// Results summarizes the game so far. Meaningful once the phase is finished.
func (e *Engine) Results() geoguess.Results {
	score, correct := e.score, e.correct
	if e.teamMode {
		score, correct = e.team.TotalScore, e.team.TotalCorrect
	}
	return geoguess.NewResults(score, correct, len(e.used), len(e.pool), e.rules, e.teamMode, e.team, e.Players())
}
