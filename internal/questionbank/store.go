// Package questionbank stores the raw Geo-Guess questions in libSQL.
//
// Each row keeps the full authoring entry as a JSONB document next to the
// columns used for ordering and filtering. Insertion order is preserved, so
// a seeded session always sees the same bank layout.
package questionbank

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/playperu/geoguess/internal/geoguess"
)

//go:embed questions.json
var curated []byte

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Curated returns the question set shipped with the binary.
func Curated() ([]geoguess.RawQuestion, error) {
	var qs []geoguess.RawQuestion
	if err := json.Unmarshal(curated, &qs); err != nil {
		return nil, fmt.Errorf("decoding curated questions: %w", err)
	}
	return qs, nil
}

const upsertQuestion = `
	INSERT INTO questions (id, position, difficulty, data)
	VALUES (?, COALESCE((SELECT MAX(position) + 1 FROM questions), 0), ?, jsonb(?))
	ON CONFLICT(id) DO UPDATE SET difficulty = excluded.difficulty, data = excluded.data`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// put inserts q at the end of the bank, or replaces it in place when the id
// already exists.
func put(ctx context.Context, db execer, q geoguess.RawQuestion) error {
	if err := q.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(q)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, upsertQuestion, q.ID, string(q.Difficulty), string(data))
	return err
}

// List returns every question in insertion order.
func (s *Store) List(ctx context.Context) ([]geoguess.RawQuestion, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT json(data) FROM questions ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("listing questions: %w", err)
	}
	defer rows.Close()

	var qs []geoguess.RawQuestion
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var q geoguess.RawQuestion
		if err := json.Unmarshal([]byte(data), &q); err != nil {
			return nil, fmt.Errorf("decoding question: %w", err)
		}
		qs = append(qs, q)
	}
	return qs, rows.Err()
}

func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM questions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting questions: %w", err)
	}
	return n, nil
}

// CountByDifficulty returns how many questions each difficulty holds.
// Untagged questions are counted under geoguess.DifficultyAny.
func (s *Store) CountByDifficulty(ctx context.Context) (map[geoguess.Difficulty]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT difficulty, COUNT(*) FROM questions GROUP BY difficulty`)
	if err != nil {
		return nil, fmt.Errorf("counting questions: %w", err)
	}
	defer rows.Close()

	counts := make(map[geoguess.Difficulty]int)
	for rows.Next() {
		var (
			d string
			n int
		)
		if err := rows.Scan(&d, &n); err != nil {
			return nil, err
		}
		counts[geoguess.Difficulty(d)] = n
	}
	return counts, rows.Err()
}

// Seed loads the curated set when the bank is empty. It returns how many
// questions were inserted; an existing bank is left untouched.
func (s *Store) Seed(ctx context.Context, logger *slog.Logger) (int, error) {
	n, err := s.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		logger.Debug("question bank already seeded", "questions", n)
		return 0, nil
	}

	qs, err := Curated()
	if err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning seed: %w", err)
	}
	defer tx.Rollback()

	for _, q := range qs {
		if err := put(ctx, tx, q); err != nil {
			return 0, fmt.Errorf("seeding question %q: %w", q.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing seed: %w", err)
	}

	logger.Info("seeded question bank", "questions", len(qs))
	return len(qs), nil
}

// Check fails when the bank is unreachable or empty.
func (s *Store) Check(ctx context.Context) error {
	n, err := s.Count(ctx)
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.New("question bank is empty")
	}
	return nil
}
