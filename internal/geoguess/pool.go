package geoguess

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
)

var ErrInvalidQuestion = errors.New("invalid question")

// Validate checks that q can be turned into a playable question.
func (q RawQuestion) Validate() error {
	if strings.TrimSpace(q.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidQuestion)
	}
	if strings.TrimSpace(q.Answer) == "" {
		return fmt.Errorf("%w: %s: answer is required", ErrInvalidQuestion, q.ID)
	}
	if len(q.Distractors) != OptionCount-1 {
		return fmt.Errorf("%w: %s: want %d distractors, got %d",
			ErrInvalidQuestion, q.ID, OptionCount-1, len(q.Distractors))
	}
	seen := map[string]bool{q.Answer: true}
	for _, d := range q.Distractors {
		if strings.TrimSpace(d) == "" {
			return fmt.Errorf("%w: %s: blank distractor", ErrInvalidQuestion, q.ID)
		}
		if seen[d] {
			return fmt.Errorf("%w: %s: duplicate option %q", ErrInvalidQuestion, q.ID, d)
		}
		seen[d] = true
	}
	if !q.Difficulty.Valid() {
		return fmt.Errorf("%w: %s: unknown difficulty %q", ErrInvalidQuestion, q.ID, q.Difficulty)
	}
	return nil
}

// NewRand returns the PRNG used for every seeded decision in a game.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// BuildQuestionPool shuffles the options of every raw entry with a PRNG
// seeded by seed and records where the answer landed. The same input and
// seed always produce the same pool.
func BuildQuestionPool(raw []RawQuestion, seed uint64) ([]Question, error) {
	rng := NewRand(seed)
	ids := make(map[string]bool, len(raw))
	pool := make([]Question, 0, len(raw))

	for _, r := range raw {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		if ids[r.ID] {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidQuestion, r.ID)
		}
		ids[r.ID] = true

		var options [OptionCount]string
		options[0] = r.Answer
		copy(options[1:], r.Distractors)
		rng.Shuffle(len(options), func(i, j int) {
			options[i], options[j] = options[j], options[i]
		})

		answer := 0
		for i, o := range options {
			if o == r.Answer {
				answer = i
				break
			}
		}

		pool = append(pool, Question{
			ID:          r.ID,
			Image:       r.Image,
			Credit:      r.Credit,
			License:     r.License,
			Options:     options,
			AnswerIndex: answer,
			Explain:     r.Explain,
			Hint:        r.Hint,
			Category:    r.Category,
			Country:     r.Country,
			Difficulty:  r.Difficulty,
			Coords:      r.Coords,
		})
	}
	return pool, nil
}

// SelectQuestions filters pool by difficulty, keeping order, then truncates
// it to the requested count. The returned slice never aliases pool.
func SelectQuestions(pool []Question, s Settings) []Question {
	out := make([]Question, 0, len(pool))
	for _, q := range pool {
		if s.Difficulty != DifficultyAny && q.Difficulty != s.Difficulty {
			continue
		}
		out = append(out, q)
	}
	if s.QuestionCount > 0 && len(out) > s.QuestionCount {
		out = out[:s.QuestionCount]
	}
	return out
}
