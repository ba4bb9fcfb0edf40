package usecase

import (
	"context"

	"coderr/internal/domain/entity"
)

// StatsUsecase exposes the platform summary.
type StatsUsecase interface {
	Summary(ctx context.Context) (*entity.Summary, error)
}
