package repository

import (
	"context"
	"errors"

	"coderr/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrReviewNotFound is returned when a review does not exist.
var ErrReviewNotFound = errors.New("review not found")

// Review list orderings accepted by ReviewRepository.List.
const (
	ReviewOrderUpdatedDesc = "-updated_at"
	ReviewOrderUpdatedAsc  = "updated_at"
	ReviewOrderRatingDesc  = "-rating"
	ReviewOrderRatingAsc   = "rating"
)

// ReviewFilter narrows a review listing.
type ReviewFilter struct {
	BusinessUserID *uuid.UUID
	ReviewerID     *uuid.UUID
	Ordering       string
}

// ReviewRepository persists reviews. The store enforces one review per
// (reviewer, business user) pair; Create reports a violation as ErrDuplicateReview.
type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	ExistsForPair(ctx context.Context, reviewerID, businessUserID uuid.UUID) (bool, error)
	List(ctx context.Context, filter ReviewFilter) ([]*entity.Review, error)

	// Update writes rating and description only.
	Update(ctx context.Context, review *entity.Review) error

	Delete(ctx context.Context, id uuid.UUID) error
}
