package questionbank

import (
	"context"

	"github.com/playperu/geoguess/internal/geoguess"
)

func Put(ctx context.Context, s *Store, q geoguess.RawQuestion) error {
	return put(ctx, s.db, q)
}
