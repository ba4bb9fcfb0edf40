package repository

import (
	"context"
	"errors"

	"coderr/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrOfferNotFound is returned when an offer does not exist.
	ErrOfferNotFound = errors.New("offer not found")
	// ErrTierNotFound is returned when an offer tier does not exist.
	ErrTierNotFound = errors.New("offer tier not found")
)

// Offer list orderings accepted by OfferRepository.List.
const (
	OfferOrderCreatedDesc  = "-created_at"
	OfferOrderCreatedAsc   = "created_at"
	OfferOrderUpdatedDesc  = "-updated_at"
	OfferOrderUpdatedAsc   = "updated_at"
	OfferOrderMinPriceAsc  = "min_price"
	OfferOrderMinPriceDesc = "-min_price"
)

// OfferFilter narrows and pages an offer listing.
type OfferFilter struct {
	CreatorID       *uuid.UUID
	MinPrice        *decimal.Decimal // Offer matches when any tier costs at least this much.
	MaxDeliveryTime *int             // Offer matches when any tier is delivered within this many days.
	Search          string           // Case-insensitive match on title or description.
	Ordering        string
	Page            int // 1-based.
	PageSize        int
}

// OfferRepository persists offers and their tiers.
type OfferRepository interface {
	// Create persists the offer and all of its tiers; ids are assigned on the entities.
	Create(ctx context.Context, offer *entity.Offer) error

	// FindByID loads the offer with its tiers, owner details and live minimums.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Offer, error)

	// List returns one page of offers matching filter plus the total match count.
	// Minimums are aggregated in the query rather than derived from the loaded tiers.
	List(ctx context.Context, filter OfferFilter) ([]*entity.Offer, int64, error)

	// Update writes the offer's own columns and bumps updated_at.
	Update(ctx context.Context, offer *entity.Offer) error

	// ApplyTierChanges writes a reconciled tier change set for offerID.
	ApplyTierChanges(ctx context.Context, offerID uuid.UUID, changes entity.TierChangeSet) error

	// Delete removes the offer and its tiers.
	Delete(ctx context.Context, id uuid.UUID) error

	// FindTierByID loads a single tier.
	FindTierByID(ctx context.Context, id uuid.UUID) (*entity.Tier, error)
}
