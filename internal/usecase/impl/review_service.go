package impl

import (
	"context"
	"fmt"
	"log/slog"

	deliverycontext "coderr/internal/delivery/context"
	"coderr/internal/domain/entity"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/domain/policy"
	"coderr/internal/domain/repository"
	"coderr/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

var reviewOrderings = map[string]bool{
	repository.ReviewOrderUpdatedDesc: true,
	repository.ReviewOrderUpdatedAsc:  true,
	repository.ReviewOrderRatingDesc:  true,
	repository.ReviewOrderRatingAsc:   true,
}

type reviewService struct {
	txManager  repository.TransactionManager
	reviewRepo repository.ReviewRepository
	logger     *slog.Logger
}

// ReviewServiceParams holds dependencies for ReviewService, injected by Fx.
type ReviewServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	ReviewRepo repository.ReviewRepository
	Logger     *slog.Logger
}

// NewReviewService creates a new review service instance.
func NewReviewService(params ReviewServiceParams) usecase.ReviewUsecase {
	return &reviewService{
		txManager:  params.TxManager,
		reviewRepo: params.ReviewRepo,
		logger:     params.Logger,
	}
}

func (srv *reviewService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateReview records a customer's review of a business user. A second review
// of the same business by the same customer is rejected, whether caught by the
// existence check or by the unique index when two requests race.
func (srv *reviewService) CreateReview(ctx context.Context, callerID uuid.UUID, input *usecase.CreateReviewInput) (*entity.Review, error) {
	review := &entity.Review{
		BusinessUserID: input.BusinessUserID,
		ReviewerID:     callerID,
		Rating:         input.Rating,
		Description:    input.Description,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		reviewRepo := repoFactory.ReviewRepo()

		if _, err := authorize(ctx, userRepo, callerID, policy.ActionReviewCreate, policy.Subject{}); err != nil {
			return err
		}

		if !entity.IsValidRating(input.Rating) {
			return domainerrors.ErrInvalidRating.WithField("rating", ratingMessage())
		}

		target, err := userRepo.FindByID(ctx, input.BusinessUserID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrNotFound.WithDetails("business user")
			}

			return errors.Wrap(err, "failed to find business user")
		}
		if target.Role() != entity.RoleBusiness {
			return domainerrors.ErrValidationFailed.WithField("business_user", "the reviewed user is not a business user")
		}

		exists, err := reviewRepo.ExistsForPair(ctx, callerID, input.BusinessUserID)
		if err != nil {
			return errors.Wrap(err, "failed to check existing review")
		}
		if exists {
			return domainerrors.ErrDuplicateReview
		}

		return reviewRepo.Create(ctx, review)
	})
	if err != nil {
		srv.log(ctx).Warn("Review creation rejected", slog.Any("businessUserID", input.BusinessUserID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create review")
	}
	srv.log(ctx).Info("Review created", slog.Any("reviewID", review.ID))

	return review, nil
}

func ratingMessage() string {
	return fmt.Sprintf("must be between %d and %d", entity.MinRating, entity.MaxRating)
}

// ListReviews returns reviews narrowed by business user and reviewer.
func (srv *reviewService) ListReviews(ctx context.Context, input *usecase.ListReviewsInput) ([]*entity.Review, error) {
	if input.Ordering != "" && !reviewOrderings[input.Ordering] {
		return nil, domainerrors.ErrValidationFailed.WithField("ordering", fmt.Sprintf("%q is not a valid ordering", input.Ordering))
	}

	reviews, err := srv.reviewRepo.List(ctx, repository.ReviewFilter{
		BusinessUserID: input.BusinessUserID,
		ReviewerID:     input.ReviewerID,
		Ordering:       input.Ordering,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list reviews")
	}

	return reviews, nil
}

// GetReview returns a single review.
func (srv *reviewService) GetReview(ctx context.Context, reviewID uuid.UUID) (*entity.Review, error) {
	return findReview(ctx, srv.reviewRepo, reviewID)
}

func findReview(ctx context.Context, reviewRepo repository.ReviewRepository, reviewID uuid.UUID) (*entity.Review, error) {
	review, err := reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return nil, domainerrors.ErrNotFound.WithDetails("review")
		}

		return nil, errors.Wrap(err, "failed to find review")
	}

	return review, nil
}

// UpdateReview changes the rating or description. Only the reviewer may do so.
func (srv *reviewService) UpdateReview(
	ctx context.Context,
	callerID, reviewID uuid.UUID,
	input *usecase.UpdateReviewInput,
) (*entity.Review, error) {
	var updated *entity.Review

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		reviewRepo := repoFactory.ReviewRepo()

		actor, err := requireAuthenticated(ctx, repoFactory.UserRepo(), callerID)
		if err != nil {
			return err
		}

		review, err := findReview(ctx, reviewRepo, reviewID)
		if err != nil {
			return err
		}

		if err := policy.Authorize(policy.ActionReviewUpdate, actor, policy.Subject{OwnerID: review.ReviewerID}); err != nil {
			return err
		}

		if input.Rating != nil {
			if !entity.IsValidRating(*input.Rating) {
				return domainerrors.ErrInvalidRating.WithField("rating", ratingMessage())
			}
			review.Rating = *input.Rating
		}
		if input.Description != nil {
			review.Description = *input.Description
		}

		if err := reviewRepo.Update(ctx, review); err != nil {
			return errors.Wrap(err, "failed to update review")
		}

		updated, err = findReview(ctx, reviewRepo, reviewID)

		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update review")
	}

	return updated, nil
}

// DeleteReview removes a review. Only the reviewer may do so.
func (srv *reviewService) DeleteReview(ctx context.Context, callerID, reviewID uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		reviewRepo := repoFactory.ReviewRepo()

		actor, err := requireAuthenticated(ctx, repoFactory.UserRepo(), callerID)
		if err != nil {
			return err
		}

		review, err := findReview(ctx, reviewRepo, reviewID)
		if err != nil {
			return err
		}

		if err := policy.Authorize(policy.ActionReviewDelete, actor, policy.Subject{OwnerID: review.ReviewerID}); err != nil {
			return err
		}

		return reviewRepo.Delete(ctx, reviewID)
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete review")
	}
	srv.log(ctx).Info("Review deleted", slog.Any("reviewID", reviewID))

	return nil
}
