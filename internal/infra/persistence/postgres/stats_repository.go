package postgres

import (
	"context"
	"database/sql"

	"coderr/internal/domain/entity"
	"coderr/internal/domain/repository"
	"coderr/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository is the constructor for statsRepository.
func NewStatsRepository(db *gorm.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

type reviewAggregate struct {
	Count   int64
	Average sql.NullFloat64
}

// Summary runs the three independent aggregates concurrently against the pool.
func (repo *statsRepository) Summary(ctx context.Context) (*entity.Summary, error) {
	var (
		reviews  reviewAggregate
		profiles int64
		offers   int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := repo.db.WithContext(gctx).
			Model(&model.ReviewModel{}).
			Select("COUNT(*) AS count, AVG(rating) AS average").
			Scan(&reviews).Error

		return errors.Wrap(err, "failed to aggregate reviews")
	})
	g.Go(func() error {
		err := repo.db.WithContext(gctx).
			Model(&model.ProfileModel{}).
			Where("type = ?", string(entity.RoleBusiness)).
			Count(&profiles).Error

		return errors.Wrap(err, "failed to count business profiles")
	})
	g.Go(func() error {
		err := repo.db.WithContext(gctx).Model(&model.OfferModel{}).Count(&offers).Error

		return errors.Wrap(err, "failed to count offers")
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &entity.Summary{
		ReviewCount:          reviews.Count,
		BusinessProfileCount: profiles,
		OfferCount:           offers,
	}
	if reviews.Average.Valid {
		summary.AverageRating = reviews.Average.Float64
	}

	return summary, nil
}
