package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Review is a customer's rating of a business user. At most one review exists
// per (ReviewerID, BusinessUserID) pair.
type Review struct {
	ID             uuid.UUID
	BusinessUserID uuid.UUID
	ReviewerID     uuid.UUID
	Rating         int
	Description    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsValidRating reports whether rating is within the accepted range.
func IsValidRating(rating int) bool {
	return rating >= MinRating && rating <= MaxRating
}
