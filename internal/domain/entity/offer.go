package entity

import (
	"fmt"
	"slices"
	"time"

	domainerrors "coderr/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MinOfferTiers is the number of tiers an offer must be created with.
const MinOfferTiers = 3

// OfferType names a tier's package level.
type OfferType string

const (
	OfferTypeBasic    OfferType = "basic"
	OfferTypeStandard OfferType = "standard"
	OfferTypePremium  OfferType = "premium"
)

// IsValid checks if the OfferType is a valid value.
func (t OfferType) IsValid() bool {
	switch t {
	case OfferTypeBasic, OfferTypeStandard, OfferTypePremium:
		return true
	default:
		return false
	}
}

// Offer is a service published by a business user.
type Offer struct {
	ID          uuid.UUID
	UserID      uuid.UUID // Owning business user.
	Title       string
	Description string
	Image       string
	Tiers       []*Tier

	// Derived from the current tiers on every read; nil when the offer has no tiers.
	MinPrice        *decimal.Decimal
	MinDeliveryTime *int

	Owner *UserDetails

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Tier is one priced package of an Offer. It has no life outside its offer.
type Tier struct {
	ID                 uuid.UUID
	OfferID            uuid.UUID
	Title              string
	Revisions          int
	DeliveryTimeInDays int
	Price              decimal.Decimal
	Features           []string
	OfferType          OfferType
}

// ComputeMinimums recalculates MinPrice and MinDeliveryTime from the loaded tiers.
func (o *Offer) ComputeMinimums() {
	o.MinPrice = nil
	o.MinDeliveryTime = nil

	for _, tier := range o.Tiers {
		if o.MinPrice == nil || tier.Price.LessThan(*o.MinPrice) {
			price := tier.Price
			o.MinPrice = &price
		}
		if o.MinDeliveryTime == nil || tier.DeliveryTimeInDays < *o.MinDeliveryTime {
			days := tier.DeliveryTimeInDays
			o.MinDeliveryTime = &days
		}
	}
}

// Validate checks the fields of a tier. prefix scopes the field names, e.g. "details[1]".
func (t *Tier) Validate(prefix string, collector *domainerrors.FieldCollector) {
	field := func(name string) string {
		if prefix == "" {
			return name
		}

		return prefix + "." + name
	}

	collector.Check(t.Title != "", field("title"), "this field is required")
	collector.Check(t.Revisions >= 0, field("revisions"), "must be greater than or equal to 0")
	collector.Check(t.DeliveryTimeInDays >= 0, field("delivery_time_in_days"), "must be greater than or equal to 0")
	collector.Check(!t.Price.IsNegative(), field("price"), "must be greater than or equal to 0")
	collector.Check(t.Price.Equal(t.Price.Truncate(2)), field("price"), "must have at most 2 decimal places")
	collector.Check(t.OfferType.IsValid(), field("offer_type"), "must be one of basic, standard, premium")
}

// ValidateNewOffer checks an offer about to be created, including the tier count.
func ValidateNewOffer(offer *Offer) error {
	if len(offer.Tiers) < MinOfferTiers {
		return domainerrors.ErrInsufficientTiers.WithField("details",
			fmt.Sprintf("at least %d tiers are required, got %d", MinOfferTiers, len(offer.Tiers)))
	}

	collector := domainerrors.Validation()
	collector.Check(offer.Title != "", "title", "this field is required")
	for i, tier := range offer.Tiers {
		tier.Validate(fmt.Sprintf("details[%d]", i), collector)
	}

	return collector.Err()
}

// TierPatch carries the submitted fields of one tier. Nil fields were not sent.
// ID selects the stored tier on update and is uuid.Nil for a new tier.
type TierPatch struct {
	ID                 uuid.UUID
	Title              *string
	Revisions          *int
	DeliveryTimeInDays *int
	Price              *decimal.Decimal
	Features           []string
	OfferType          *OfferType
}

// ApplyTo overwrites the fields of t that the patch carries.
func (p TierPatch) ApplyTo(t *Tier) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Revisions != nil {
		t.Revisions = *p.Revisions
	}
	if p.DeliveryTimeInDays != nil {
		t.DeliveryTimeInDays = *p.DeliveryTimeInDays
	}
	if p.Price != nil {
		t.Price = *p.Price
	}
	if p.Features != nil {
		t.Features = slices.Clone(p.Features)
	}
	if p.OfferType != nil {
		t.OfferType = *p.OfferType
	}
}

// NewTier builds a fresh tier from the patch. Numeric fields must be present
// since their zero value is valid; a missing title or offer type is caught by
// Validate.
func (p TierPatch) NewTier(prefix string, collector *domainerrors.FieldCollector) *Tier {
	required := func(present bool, name string) {
		collector.Check(present, prefix+"."+name, "this field is required")
	}
	required(p.Revisions != nil, "revisions")
	required(p.DeliveryTimeInDays != nil, "delivery_time_in_days")
	required(p.Price != nil, "price")

	tier := &Tier{Features: []string{}}
	p.ApplyTo(tier)

	return tier
}

// NewTiers builds the tiers of an offer about to be created.
func NewTiers(submitted []TierPatch) ([]*Tier, error) {
	collector := domainerrors.Validation()
	tiers := make([]*Tier, 0, len(submitted))
	for i, p := range submitted {
		tiers = append(tiers, p.NewTier(fmt.Sprintf("details[%d]", i), collector))
	}
	if err := collector.Err(); err != nil {
		return nil, err
	}

	return tiers, nil
}

// TierChangeSet is the result of reconciling submitted tiers with stored ones.
type TierChangeSet struct {
	Updated []*Tier
	Created []*Tier
	Deleted []uuid.UUID
}

// MergeTiers reconciles submitted tiers against the offer's current tiers by id.
// A submitted tier whose id belongs to this offer updates only the fields it
// carries; any other submitted tier is created fresh and must be complete;
// current tiers that no submitted tier referenced are deleted. Every resulting
// tier is validated under its details[i] path.
func (o *Offer) MergeTiers(submitted []TierPatch) (TierChangeSet, error) {
	existing := make(map[uuid.UUID]*Tier, len(o.Tiers))
	for _, tier := range o.Tiers {
		existing[tier.ID] = tier
	}

	var changes TierChangeSet
	collector := domainerrors.Validation()
	touched := make(map[uuid.UUID]bool, len(submitted))

	for i, in := range submitted {
		prefix := fmt.Sprintf("details[%d]", i)

		current, ok := existing[in.ID]
		if ok && in.ID != uuid.Nil && !touched[in.ID] {
			in.ApplyTo(current)
			current.Validate(prefix, collector)
			touched[in.ID] = true
			changes.Updated = append(changes.Updated, current)

			continue
		}

		created := in.NewTier(prefix, collector)
		created.OfferID = o.ID
		created.Validate(prefix, collector)
		changes.Created = append(changes.Created, created)
	}
	if err := collector.Err(); err != nil {
		return TierChangeSet{}, err
	}

	for _, tier := range o.Tiers {
		if !touched[tier.ID] {
			changes.Deleted = append(changes.Deleted, tier.ID)
		}
	}

	merged := make([]*Tier, 0, len(changes.Updated)+len(changes.Created))
	merged = append(merged, changes.Updated...)
	merged = append(merged, changes.Created...)
	o.Tiers = merged

	return changes, nil
}
