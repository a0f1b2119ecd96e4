package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/playperu/geoguess/internal/geoguess"
)

// QuestionStats reports what the question bank holds.
type QuestionStats interface {
	CountByDifficulty(ctx context.Context) (map[geoguess.Difficulty]int, error)
}

func handleQuestionSummary(logger *slog.Logger, stats QuestionStats) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counts, err := stats.CountByDifficulty(r.Context())
		if err != nil {
			logger.Error("counting questions", "error", err)
			writeError(w, http.StatusInternalServerError, "could not read question bank")
			return
		}

		resp := QuestionSummaryResponse{ByDifficulty: counts}
		for _, n := range counts {
			resp.Total += n
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
