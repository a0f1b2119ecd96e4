package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/geoguess/internal/session"
)

type ctxKey int

const ctxKeySession ctxKey = iota

// sessionMiddleware resolves {id} to a live session.
func sessionMiddleware(sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := sessions.Get(chi.URLParam(r, "id"))
			if errors.Is(err, session.ErrNotFound) {
				writeError(w, http.StatusNotFound, "session not found")
				return
			}
			if err != nil {
				writeError(w, http.StatusInternalServerError, "looking up session")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeySession, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionFrom(r *http.Request) *session.Session {
	return r.Context().Value(ctxKeySession).(*session.Session)
}
