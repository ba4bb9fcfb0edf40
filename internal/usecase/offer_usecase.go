package usecase

import (
	"context"

	"coderr/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TierInput carries one submitted tier; nil fields were not sent. ID is only
// meaningful on update, where it selects the stored tier to patch.
type TierInput struct {
	ID                 uuid.UUID
	Title              *string
	Revisions          *int
	DeliveryTimeInDays *int
	Price              *decimal.Decimal
	Features           []string
	OfferType          *entity.OfferType
}

// CreateOfferInput defines the data required to publish an offer.
type CreateOfferInput struct {
	Title       string
	Description string
	Image       string
	Tiers       []TierInput
}

// UpdateOfferInput is a partial update. A nil Tiers leaves the tiers alone;
// a non-nil Tiers is reconciled against the stored ones by id.
type UpdateOfferInput struct {
	Title       *string
	Description *string
	Image       *string
	Tiers       []TierInput
}

// ListOffersInput narrows and pages an offer listing.
type ListOffersInput struct {
	CreatorID       *uuid.UUID
	MinPrice        *decimal.Decimal
	MaxDeliveryTime *int
	Search          string
	Ordering        string
	Page            int
	PageSize        int
}

// OfferPage is one page of an offer listing.
type OfferPage struct {
	Offers   []*entity.Offer
	Count    int64
	Page     int
	PageSize int
}

// HasNext reports whether a page follows this one.
func (p *OfferPage) HasNext() bool {
	return int64(p.Page*p.PageSize) < p.Count
}

// HasPrevious reports whether a page precedes this one.
func (p *OfferPage) HasPrevious() bool {
	return p.Page > 1
}

// OfferUsecase defines the catalog operations.
type OfferUsecase interface {
	CreateOffer(ctx context.Context, callerID uuid.UUID, input *CreateOfferInput) (*entity.Offer, error)
	ListOffers(ctx context.Context, input *ListOffersInput) (*OfferPage, error)
	GetOffer(ctx context.Context, offerID uuid.UUID) (*entity.Offer, error)
	UpdateOffer(ctx context.Context, callerID, offerID uuid.UUID, input *UpdateOfferInput) (*entity.Offer, error)
	DeleteOffer(ctx context.Context, callerID, offerID uuid.UUID) error
	GetTier(ctx context.Context, tierID uuid.UUID) (*entity.Tier, error)
}
