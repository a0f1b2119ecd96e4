// Package engine implements the Geo-Guess round state machine as a reducer.
//
// Engine holds all mutable game state. Every change goes through Apply, which
// takes a Command and returns the timer Effects the caller must carry out.
// The engine never starts timers or reads the clock itself, so it can be
// driven step by step in tests.
package engine

import (
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/playperu/geoguess/internal/geoguess"
)

type Engine struct {
	rules geoguess.Rules
	rng   *rand.Rand
	newID func() string

	bank     []geoguess.Question
	pool     []*geoguess.Question
	settings geoguess.Settings

	phase     geoguess.Phase
	available []*geoguess.Question
	used      []*geoguess.Question
	current   int
	selected  *int
	locked    bool
	timeLeft  int
	round     uint64
	version   uint64

	score   int
	streak  int
	correct int
	earned  int

	teamMode         bool
	collaborative    bool
	roster           []*geoguess.Player
	currentPlayer    string
	team             geoguess.TeamStats
	lastPlayedStreak int

	fx []Effect
}

type Option func(*Engine)

// WithRand sets the source for question draws and avatars.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithIDFunc sets the player ID generator. Defaults to random UUIDs.
func WithIDFunc(f func() string) Option {
	return func(e *Engine) { e.newID = f }
}

// New returns an engine in the start phase over every question in bank.
// The bank is copied; callers may reuse the slice.
func New(bank []geoguess.Question, rules geoguess.Rules, opts ...Option) *Engine {
	e := &Engine{
		rules: rules,
		newID: uuid.NewString,
		bank:  append([]geoguess.Question(nil), bank...),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	e.pool = selectPool(e.bank, e.settings)
	e.reset()
	e.fx = nil
	return e
}

func selectPool(bank []geoguess.Question, s geoguess.Settings) []*geoguess.Question {
	picked := geoguess.SelectQuestions(bank, s)
	pool := make([]*geoguess.Question, len(picked))
	for i := range picked {
		pool[i] = &picked[i]
	}
	return pool
}

// Apply runs cmd against the current state and returns the timer effects it
// produced. Commands whose preconditions do not hold change nothing.
func (e *Engine) Apply(cmd Command) []Effect {
	e.fx = nil

	var changed bool
	switch c := cmd.(type) {
	case InitializeGame:
		changed = e.initialize(c.Settings)
	case OpenSetup:
		changed = e.openSetup()
	case BackToStart:
		changed = e.backToStart()
	case StartRound:
		changed = e.startRound()
	case SelectAnswer:
		changed = e.selectAnswer(c.Option)
	case Reset:
		changed = e.reset()
	case AddPlayer:
		changed = e.addPlayer(c.Name)
	case RemovePlayer:
		changed = e.removePlayer(c.ID)
	case SetCollaborativeMode:
		changed = e.setCollaborative(c.Enabled)
	case SetTeamMode:
		changed = e.setTeamMode(c.Enabled)
	case Tick:
		changed = e.tick(c.Round)
	case Timeout:
		changed = e.timeout(c.Round)
	case RevealElapsed:
		changed = e.revealElapsed(c.Round)
	}

	if changed {
		e.version++
	}
	fx := e.fx
	e.fx = nil
	return fx
}

func (e *Engine) emit(fx Effect) {
	e.fx = append(e.fx, fx)
}

// Version increases by one for every command that changed state.
func (e *Engine) Version() uint64 {
	return e.version
}

func (e *Engine) initialize(s geoguess.Settings) bool {
	e.settings = s
	e.pool = selectPool(e.bank, s)
	return e.reset()
}

// reset returns every piece of round and team state to its initial value
// and invalidates outstanding timer callbacks by bumping the round.
func (e *Engine) reset() bool {
	e.emit(StopTick{})
	e.emit(CancelReveal{})

	e.phase = geoguess.PhaseStart
	e.available = append([]*geoguess.Question(nil), e.pool...)
	e.used = nil
	e.current = -1
	e.selected = nil
	e.locked = false
	e.timeLeft = e.rules.TimerDuration
	e.round++

	e.score = 0
	e.streak = 0
	e.correct = 0
	e.earned = 0

	e.teamMode = false
	e.collaborative = false
	e.roster = nil
	e.currentPlayer = ""
	e.team = geoguess.TeamStats{}
	e.lastPlayedStreak = 0
	return true
}
