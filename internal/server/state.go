package server

import (
	"strconv"

	"github.com/playperu/geoguess/internal/engine"
	"github.com/playperu/geoguess/internal/geoguess"
)

// QuestionView is a question as players see it. AnswerIndex and Explain are
// only filled in once the question is revealed.
type QuestionView struct {
	ID          string              `json:"id"`
	Image       string              `json:"image"`
	Credit      string              `json:"credit,omitempty"`
	License     string              `json:"license,omitempty"`
	Options     []string            `json:"options"`
	Hint        string              `json:"hint,omitempty"`
	Category    string              `json:"category,omitempty"`
	Country     string              `json:"country,omitempty"`
	Difficulty  geoguess.Difficulty `json:"difficulty,omitempty"`
	Coords      *geoguess.Coords    `json:"coords,omitempty"`
	AnswerIndex *int                `json:"answerIndex,omitempty"`
	Explain     string              `json:"explain,omitempty"`
}

type StateResponse struct {
	SessionID string            `json:"sessionId"`
	Version   uint64            `json:"version"`
	Phase     geoguess.Phase    `json:"phase"`
	Settings  geoguess.Settings `json:"settings"`

	Question       *QuestionView `json:"question"`
	SelectedAnswer *int          `json:"selectedAnswer"`
	Locked         bool          `json:"locked"`
	TimeLeft       int           `json:"timeLeft"`
	TimerDuration  int           `json:"timerDuration"`
	TimedOut       bool          `json:"timedOut"`

	Score            int `json:"score"`
	Streak           int `json:"streak"`
	CorrectAnswers   int `json:"correctAnswers"`
	EarnedPoints     int `json:"earnedPoints"`
	LastPlayedStreak int `json:"lastPlayedStreak"`

	Remaining int `json:"remaining"`
	Answered  int `json:"answered"`
	Total     int `json:"total"`

	TeamMode          bool               `json:"teamMode"`
	CollaborativeMode bool               `json:"collaborativeMode"`
	Players           []geoguess.Player  `json:"players"`
	CurrentPlayerID   string             `json:"currentPlayerId,omitempty"`
	Team              geoguess.TeamStats `json:"team"`
	MaxTeamSize       int                `json:"maxTeamSize"`
}

func newStateResponse(id string, s engine.Snapshot) StateResponse {
	resp := StateResponse{
		SessionID:         id,
		Version:           s.Version,
		Phase:             s.Phase,
		Settings:          s.Settings,
		SelectedAnswer:    s.Selected,
		Locked:            s.Locked,
		TimeLeft:          s.TimeLeft,
		TimerDuration:     s.Rules.TimerDuration,
		TimedOut:          s.Timeout,
		Score:             s.Score,
		Streak:            s.Streak,
		CorrectAnswers:    s.Correct,
		EarnedPoints:      s.EarnedPoints,
		LastPlayedStreak:  s.LastPlayedStreak,
		Remaining:         s.Remaining,
		Answered:          s.Answered,
		Total:             s.Total,
		TeamMode:          s.TeamMode,
		CollaborativeMode: s.CollaborativeMode,
		Players:           s.Players,
		CurrentPlayerID:   s.CurrentPlayerID,
		Team:              s.Team,
		MaxTeamSize:       s.Rules.MaxTeamSize,
	}
	if resp.Players == nil {
		resp.Players = []geoguess.Player{}
	}

	if q := s.Question; q != nil {
		v := &QuestionView{
			ID:         q.ID,
			Image:      q.Image,
			Credit:     q.Credit,
			License:    q.License,
			Options:    q.Options[:],
			Hint:       q.Hint,
			Category:   q.Category,
			Country:    q.Country,
			Difficulty: q.Difficulty,
			Coords:     q.Coords,
		}
		if s.Phase == geoguess.PhaseReveal {
			answer := q.AnswerIndex
			v.AnswerIndex = &answer
			v.Explain = q.Explain
		}
		resp.Question = v
	}
	return resp
}

func stateEvent(id string, s engine.Snapshot) Event {
	state := newStateResponse(id, s)
	return Event{Type: eventState, State: &state}
}

type CreateSessionRequest struct {
	Difficulty    geoguess.Difficulty `json:"difficulty,omitempty"`
	QuestionCount int                 `json:"questionCount,omitempty"`
	SeedPhrase    string              `json:"seedPhrase,omitempty"`
}

type CreateSessionResponse struct {
	StateResponse
	// Seed is decimal so JavaScript clients keep all 64 bits.
	Seed string `json:"seed"`
}

func newCreateSessionResponse(id string, seed uint64, s engine.Snapshot) CreateSessionResponse {
	return CreateSessionResponse{
		StateResponse: newStateResponse(id, s),
		Seed:          strconv.FormatUint(seed, 10),
	}
}

type SettingsRequest struct {
	Difficulty    geoguess.Difficulty `json:"difficulty,omitempty"`
	QuestionCount int                 `json:"questionCount,omitempty"`
}

type AnswerRequest struct {
	Option *int `json:"option"`
}

type AddPlayerRequest struct {
	Name string `json:"name"`
}

type AddPlayerResponse struct {
	Player geoguess.Player `json:"player"`
	State  StateResponse   `json:"state"`
}

type ToggleRequest struct {
	Enabled *bool `json:"enabled"`
}

type ResultsResponse struct {
	geoguess.Results
	ShareText string `json:"shareText"`
}

type QuestionSummaryResponse struct {
	Total        int                         `json:"total"`
	ByDifficulty map[geoguess.Difficulty]int `json:"byDifficulty"`
}
