package impl

import (
	"context"
	"log/slog"

	"coderr/internal/domain/entity"
	"coderr/internal/domain/repository"
	"coderr/internal/usecase"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

type statsService struct {
	statsRepo repository.StatsRepository
	logger    *slog.Logger
}

// StatsServiceParams holds dependencies for StatsService, injected by Fx.
type StatsServiceParams struct {
	fx.In

	StatsRepo repository.StatsRepository
	Logger    *slog.Logger
}

// NewStatsService creates a new stats service instance.
func NewStatsService(params StatsServiceParams) usecase.StatsUsecase {
	return &statsService{
		statsRepo: params.StatsRepo,
		logger:    params.Logger,
	}
}

// Summary returns the platform counters with the average rating rounded to one decimal.
func (srv *statsService) Summary(ctx context.Context) (*entity.Summary, error) {
	summary, err := srv.statsRepo.Summary(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to compute summary")
	}

	summary.AverageRating = decimal.NewFromFloat(summary.AverageRating).Round(1).InexactFloat64()

	return summary, nil
}
