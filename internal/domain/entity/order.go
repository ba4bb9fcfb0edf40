package entity

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the mutable state of an order.
type OrderStatus string

const (
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// IsValid checks if the OrderStatus is a valid value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusInProgress, OrderStatusCompleted, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// Order is a purchase of a tier. The tier fields are copied at creation time
// and never re-read, so later edits or deletion of the tier do not affect it.
type Order struct {
	ID             uuid.UUID
	CustomerUserID uuid.UUID
	BusinessUserID uuid.UUID

	Title              string
	Revisions          int
	DeliveryTimeInDays int
	Price              decimal.Decimal
	Features           []string
	OfferType          OfferType

	Status    OrderStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewOrderFromTier snapshots tier into a new in-progress order placed by
// customerID with the business user businessID.
func NewOrderFromTier(tier *Tier, customerID, businessID uuid.UUID) *Order {
	return &Order{
		CustomerUserID:     customerID,
		BusinessUserID:     businessID,
		Title:              tier.Title,
		Revisions:          tier.Revisions,
		DeliveryTimeInDays: tier.DeliveryTimeInDays,
		Price:              tier.Price,
		Features:           slices.Clone(tier.Features),
		OfferType:          tier.OfferType,
		Status:             OrderStatusInProgress,
	}
}

// IsParty reports whether userID is the customer or the business user of the order.
func (o *Order) IsParty(userID uuid.UUID) bool {
	return o.CustomerUserID == userID || o.BusinessUserID == userID
}
