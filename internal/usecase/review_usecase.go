package usecase

import (
	"context"

	"coderr/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateReviewInput defines the data required to review a business user.
type CreateReviewInput struct {
	BusinessUserID uuid.UUID
	Rating         int
	Description    string
}

// UpdateReviewInput is a partial update; nil fields are left unchanged.
type UpdateReviewInput struct {
	Rating      *int
	Description *string
}

// ListReviewsInput narrows and orders a review listing.
type ListReviewsInput struct {
	BusinessUserID *uuid.UUID
	ReviewerID     *uuid.UUID
	Ordering       string
}

// ReviewUsecase defines the review operations.
type ReviewUsecase interface {
	CreateReview(ctx context.Context, callerID uuid.UUID, input *CreateReviewInput) (*entity.Review, error)
	ListReviews(ctx context.Context, input *ListReviewsInput) ([]*entity.Review, error)
	GetReview(ctx context.Context, reviewID uuid.UUID) (*entity.Review, error)
	UpdateReview(ctx context.Context, callerID, reviewID uuid.UUID, input *UpdateReviewInput) (*entity.Review, error)
	DeleteReview(ctx context.Context, callerID, reviewID uuid.UUID) error
}
