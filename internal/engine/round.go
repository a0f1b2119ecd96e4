package engine

import (
	"github.com/playperu/geoguess/internal/geoguess"
)

func (e *Engine) openSetup() bool {
	if e.phase != geoguess.PhaseStart {
		return false
	}
	e.phase = geoguess.PhaseSetup
	return true
}

func (e *Engine) backToStart() bool {
	if e.phase != geoguess.PhaseSetup {
		return false
	}
	e.phase = geoguess.PhaseStart
	return true
}

// startRound draws the next question. From setup it also switches team mode
// on, which needs at least one player.
func (e *Engine) startRound() bool {
	switch e.phase {
	case geoguess.PhaseStart, geoguess.PhaseWaiting:
	case geoguess.PhaseSetup:
		if len(e.roster) == 0 {
			return false
		}
		e.teamMode = true
	default:
		return false
	}

	if e.teamMode {
		if len(e.roster) == 0 {
			return false
		}
		if !e.collaborative && e.playerIndex(e.currentPlayer) < 0 {
			e.currentPlayer = e.roster[0].ID
		}
	}

	if len(e.available) == 0 {
		e.finish()
		return true
	}

	e.round++
	e.current = e.rng.IntN(len(e.available))
	e.selected = nil
	e.locked = false
	e.timeLeft = e.rules.TimerDuration
	e.earned = 0
	e.phase = geoguess.PhaseQuestion
	e.emit(ArmTick{Round: e.round})
	return true
}

func (e *Engine) live(round uint64) bool {
	return round == e.round && e.phase == geoguess.PhaseQuestion && !e.locked
}

func (e *Engine) selectAnswer(option int) bool {
	if e.phase != geoguess.PhaseQuestion || e.locked {
		return false
	}
	if option < 0 || option >= geoguess.OptionCount {
		return false
	}

	q := e.available[e.current]
	e.locked = true
	e.selected = &option
	e.phase = geoguess.PhaseReveal
	e.emit(StopTick{})
	e.resolve(option == q.AnswerIndex)
	e.emit(ArmReveal{Round: e.round, After: e.rules.RevealDelay})
	return true
}

func (e *Engine) tick(round uint64) bool {
	if !e.live(round) {
		return false
	}
	e.timeLeft--
	if e.timeLeft <= 0 {
		e.expire()
		return true
	}
	e.emit(ArmTick{Round: round})
	return true
}

func (e *Engine) timeout(round uint64) bool {
	if !e.live(round) {
		return false
	}
	e.expire()
	return true
}

// expire closes the question with no selection.
func (e *Engine) expire() {
	e.timeLeft = 0
	e.locked = true
	e.selected = nil
	e.phase = geoguess.PhaseReveal
	e.emit(StopTick{})
	e.resolve(false)
	e.emit(ArmReveal{Round: e.round, After: e.rules.RevealDelay})
}

// resolve scores the answer for whoever is acting: the current player in
// turn-based team play, the shared team streak in collaborative play, or
// the solo counters.
func (e *Engine) resolve(correct bool) {
	e.earned = 0
	p := e.actingPlayer()

	if !correct {
		if p != nil {
			p.Streak = 0
		} else {
			e.streak = 0
		}
		e.lastPlayedStreak = 0
		return
	}

	before := e.streak
	if p != nil {
		before = p.Streak
	}
	e.earned = e.rules.Points(e.timeLeft, before)
	after := before + 1
	e.lastPlayedStreak = after

	switch {
	case p != nil:
		p.Score += e.earned
		p.CorrectAnswers++
		p.Streak = after
	default:
		e.streak = after
	}

	if e.teamMode {
		e.team.TotalScore += e.earned
		e.team.TotalCorrect++
		e.team.BestStreak = max(e.team.BestStreak, after)
		return
	}
	e.score += e.earned
	e.correct++
}

func (e *Engine) revealElapsed(round uint64) bool {
	if round != e.round || e.phase != geoguess.PhaseReveal {
		return false
	}

	q := e.available[e.current]
	e.used = append(e.used, q)
	e.available = removeQuestion(e.available, q)
	e.current = -1

	if e.teamMode && !e.collaborative {
		e.advanceTurn()
	}

	if len(e.available) == 0 {
		e.finish()
		return true
	}
	e.phase = geoguess.PhaseWaiting
	return true
}

func (e *Engine) finish() {
	e.phase = geoguess.PhaseFinished
	e.emit(StopTick{})
	e.emit(CancelReveal{})
	e.emit(GameFinished{})
}

// removeQuestion drops q by identity into a fresh slice.
func removeQuestion(qs []*geoguess.Question, q *geoguess.Question) []*geoguess.Question {
	out := make([]*geoguess.Question, 0, len(qs))
	for _, x := range qs {
		if x != q {
			out = append(out, x)
		}
	}
	return out
}
