package geoguess

import "time"

// Rules holds the tunable constants of a game.
type Rules struct {
	TimerDuration         int // seconds per question
	BasePoints            int // points for an instant correct answer
	StreakBonusMultiplier int // points per prior consecutive correct answer
	MaxTeamSize           int
	RevealDelay           time.Duration
}

func DefaultRules() Rules {
	return Rules{
		TimerDuration:         DefaultTimerDuration,
		BasePoints:            DefaultBasePoints,
		StreakBonusMultiplier: DefaultStreakBonusMultiplier,
		MaxTeamSize:           DefaultMaxTeamSize,
		RevealDelay:           DefaultRevealDelay,
	}
}

// Points scores a correct answer given the seconds left when it was chosen
// and the streak before this answer is counted.
func (r Rules) Points(secondsLeft, streakBefore int) int {
	if r.TimerDuration <= 0 {
		return streakBefore * r.StreakBonusMultiplier
	}
	secondsLeft = min(max(secondsLeft, 0), r.TimerDuration)
	base := secondsLeft * r.BasePoints / r.TimerDuration
	return base + max(streakBefore, 0)*r.StreakBonusMultiplier
}

// CalculatePoints applies Points with the default rules.
func CalculatePoints(secondsLeft, streakBefore int) int {
	return DefaultRules().Points(secondsLeft, streakBefore)
}
