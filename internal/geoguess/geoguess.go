// Package geoguess defines the core domain types of the Geo-Guess quiz.
// It has zero external dependencies.
package geoguess

import "time"

// OptionCount is the fixed number of answer options per question.
const OptionCount = 4

type Difficulty string

const (
	DifficultyAny    Difficulty = ""
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is a known difficulty. DifficultyAny is valid.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyAny, DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

type Coords struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// RawQuestion is the authoring format: the correct answer plus three distractors.
type RawQuestion struct {
	ID          string     `json:"id"`
	Image       string     `json:"image"`
	Credit      string     `json:"credit,omitempty"`
	License     string     `json:"license,omitempty"`
	Answer      string     `json:"answer"`
	Distractors []string   `json:"distractors"`
	Hint        string     `json:"hint,omitempty"`
	Explain     string     `json:"explain,omitempty"`
	Category    string     `json:"category,omitempty"`
	Country     string     `json:"country,omitempty"`
	Difficulty  Difficulty `json:"difficulty,omitempty"`
	Coords      *Coords    `json:"coords,omitempty"`
}

// Question is a playable question with shuffled options. It is never
// mutated after BuildQuestionPool creates it.
type Question struct {
	ID          string
	Image       string
	Credit      string
	License     string
	Options     [OptionCount]string
	AnswerIndex int
	Explain     string
	Hint        string
	Category    string
	Country     string
	Difficulty  Difficulty
	Coords      *Coords
}

type Phase string

const (
	PhaseStart    Phase = "start"
	PhaseSetup    Phase = "setup"
	PhaseQuestion Phase = "question"
	PhaseReveal   Phase = "reveal"
	PhaseWaiting  Phase = "waiting"
	PhaseFinished Phase = "finished"
)

type Player struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Avatar         string `json:"avatar"`
	Score          int    `json:"score"`
	CorrectAnswers int    `json:"correctAnswers"`
	Streak         int    `json:"streak"`
}

type TeamStats struct {
	TotalScore   int `json:"totalScore"`
	TotalCorrect int `json:"totalCorrect"`
	BestStreak   int `json:"bestStreak"`
}

// Settings narrow the question bank at game initialization.
// QuestionCount <= 0 keeps every matching question.
type Settings struct {
	Difficulty    Difficulty `json:"difficulty"`
	QuestionCount int        `json:"questionCount"`
}

const (
	DefaultTimerDuration         = 30
	DefaultRevealDelay           = 3500 * time.Millisecond
	DefaultMaxTeamSize           = 20
	DefaultBasePoints            = 100
	DefaultStreakBonusMultiplier = 10
)

// Avatars are assigned at random to players joining the roster.
var Avatars = []string{
	"🧑‍💼", "👩‍💻", "🧑‍🎓", "👨‍🏫", "👩‍🔬",
	"🧑‍🎨", "👨‍💼", "👩‍🎓", "🧑‍🔬", "👨‍🎨",
	"🧑‍🚀", "🧑‍🍳", "🧑‍⚕️", "👩‍⚕️", "🧑‍🔧",
	"👩‍🔧", "🧑‍✈️", "👩‍✈️", "👩‍🏫", "🧑‍🌾",
	"🧑‍🎤", "🧑‍🏭", "👩‍🏭", "🧑‍🎮", "👩‍🎮",
}
