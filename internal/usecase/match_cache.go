package usecase

import (
	"context"
	"time"
)

// MatchCache is the subset of the redis wrapper the usecases need. A nil
// implementation is never passed; the wrapper itself no-ops when redis is
// down.
type MatchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	InvalidateMatches(ctx context.Context) error
}
