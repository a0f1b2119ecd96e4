package geoguess

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"
)

type Performance struct {
	Emoji   string `json:"emoji"`
	Message string `json:"message"`
}

// PerformanceFor maps a score percentage to a result tier.
func PerformanceFor(percentage int) Performance {
	switch {
	case percentage >= 90:
		return Performance{Emoji: "🏆", Message: "Outstanding! You're a landmark expert!"}
	case percentage >= 75:
		return Performance{Emoji: "🌟", Message: "Excellent knowledge of landmarks!"}
	case percentage >= 60:
		return Performance{Emoji: "👏", Message: "Well done! Good performance!"}
	case percentage >= 40:
		return Performance{Emoji: "👍", Message: "Good effort! Keep learning!"}
	default:
		return Performance{Emoji: "📚", Message: "Keep exploring landmarks!"}
	}
}

// Percentage rounds score/maxScore to a whole percent. Streak bonuses can
// push it past 100.
func Percentage(score, maxScore int) int {
	if maxScore <= 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(maxScore) * 100))
}

type Standing struct {
	Rank   int    `json:"rank"`
	Medal  string `json:"medal"`
	Player Player `json:"player"`
}

var medals = []string{"🥇", "🥈", "🥉"}

// Leaderboard orders players by score, highest first. Ties keep roster order.
func Leaderboard(players []Player) []Standing {
	sorted := slices.Clone(players)
	slices.SortStableFunc(sorted, func(a, b Player) int {
		return cmp.Compare(b.Score, a.Score)
	})

	out := make([]Standing, len(sorted))
	for i, p := range sorted {
		medal := "🏅"
		if i < len(medals) {
			medal = medals[i]
		}
		out[i] = Standing{Rank: i + 1, Medal: medal, Player: p}
	}
	return out
}

type Results struct {
	Score       int         `json:"score"`
	MaxScore    int         `json:"maxScore"`
	Percentage  int         `json:"percentage"`
	Correct     int         `json:"correct"`
	Answered    int         `json:"answered"`
	Performance Performance `json:"performance"`
	TeamMode    bool        `json:"teamMode"`
	Team        TeamStats   `json:"team"`
	Leaderboard []Standing  `json:"leaderboard"`
}

// NewResults summarizes a game. maxScore assumes every question answered
// instantly with no streak bonus.
func NewResults(score, correct, answered, totalQuestions int, rules Rules, teamMode bool, team TeamStats, players []Player) Results {
	maxScore := totalQuestions * rules.BasePoints
	pct := Percentage(score, maxScore)
	r := Results{
		Score:       score,
		MaxScore:    maxScore,
		Percentage:  pct,
		Correct:     correct,
		Answered:    answered,
		Performance: PerformanceFor(pct),
		TeamMode:    teamMode,
		Team:        team,
		Leaderboard: []Standing{},
	}
	if teamMode {
		r.Leaderboard = Leaderboard(players)
	}
	return r
}

// ShareText renders the results as the plain-text message players share.
func (r Results) ShareText() string {
	var b strings.Builder
	b.WriteString("🌍 Just completed Geo-Guess!\n\n")

	if r.TeamMode && len(r.Leaderboard) > 0 {
		b.WriteString("🏆 Team Results:\n")
		fmt.Fprintf(&b, "Total Score: %d/%d (%d%%)\n\n", r.Score, r.MaxScore, r.Percentage)
		b.WriteString("Team Members:\n")
		for _, s := range r.Leaderboard {
			fmt.Fprintf(&b, "%s %s: %d pts\n", s.Medal, s.Player.Name, s.Player.Score)
		}
	} else {
		fmt.Fprintf(&b, "🎯 Score: %d/%d points (%d%%)\n", r.Score, r.MaxScore, r.Percentage)
	}

	b.WriteString("\nCan you beat our score? 🚀")
	return b.String()
}
