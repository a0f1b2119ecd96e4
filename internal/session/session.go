// Package session runs Geo-Guess engines against real timers and keeps a
// registry of live games.
package session

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/playperu/geoguess/internal/engine"
	"github.com/playperu/geoguess/internal/geoguess"
)

// Session owns one engine. All commands, including timer callbacks, are
// applied under a single mutex, so the engine only ever sees one at a time.
type Session struct {
	id        string
	seed      uint64
	createdAt time.Time

	mu         sync.Mutex
	eng        *engine.Engine
	sched      Scheduler
	tickEvery  time.Duration
	tick       Timer
	reveal     Timer
	lastActive time.Time
	closed     bool

	now     func() time.Time
	publish func(id string, snap engine.Snapshot)
	logger  *slog.Logger
}

func (s *Session) ID() string           { return s.id }
func (s *Session) Seed() uint64         { return s.seed }
func (s *Session) CreatedAt() time.Time { return s.createdAt }

// Do applies cmd and returns the resulting snapshot. applied is false when
// the command's preconditions did not hold and nothing changed.
func (s *Session) Do(cmd engine.Command) (snap engine.Snapshot, applied bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastActive = s.now()
	return s.apply(cmd)
}

// fire delivers a timer command. It does not count as player activity.
func (s *Session) fire(cmd engine.Command) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, applied := s.apply(cmd); !applied {
		s.logger.Debug("dropped stale timer", "session_id", s.id, "command", fmt.Sprintf("%T", cmd))
	}
}

func (s *Session) apply(cmd engine.Command) (engine.Snapshot, bool) {
	if s.closed {
		return s.eng.Snapshot(), false
	}

	before := s.eng.Version()
	s.run(s.eng.Apply(cmd))
	snap := s.eng.Snapshot()

	applied := snap.Version != before
	if applied && s.publish != nil {
		s.publish(s.id, snap)
	}
	return snap, applied
}

func (s *Session) run(effects []engine.Effect) {
	for _, fx := range effects {
		switch fx := fx.(type) {
		case engine.ArmTick:
			s.stopTick()
			round := fx.Round
			s.tick = s.sched.AfterFunc(s.tickEvery, func() {
				s.fire(engine.Tick{Round: round})
			})
		case engine.StopTick:
			s.stopTick()
		case engine.ArmReveal:
			s.cancelReveal()
			round := fx.Round
			s.reveal = s.sched.AfterFunc(fx.After, func() {
				s.fire(engine.RevealElapsed{Round: round})
			})
		case engine.CancelReveal:
			s.cancelReveal()
		case engine.GameFinished:
			r := s.eng.Results()
			s.logger.Info("game finished",
				"session_id", s.id,
				"score", r.Score,
				"max_score", r.MaxScore,
				"team_mode", r.TeamMode,
			)
		}
	}
}

func (s *Session) stopTick() {
	if s.tick != nil {
		s.tick.Stop()
		s.tick = nil
	}
}

func (s *Session) cancelReveal() {
	if s.reveal != nil {
		s.reveal.Stop()
		s.reveal = nil
	}
}

func (s *Session) Snapshot() engine.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eng.Snapshot()
}

func (s *Session) Results() geoguess.Results {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eng.Results()
}

func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// Close stops pending timers. Later commands are ignored.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.stopTick()
	s.cancelReveal()
}
