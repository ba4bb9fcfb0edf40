package repository

import (
	"context"

	"coderr/internal/domain/entity"
)

// StatsRepository aggregates read-only platform statistics.
type StatsRepository interface {
	// Summary returns raw counts and the unrounded average rating (0 when there are no reviews).
	Summary(ctx context.Context) (*entity.Summary, error)
}
