package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OrderModel mirrors the 'orders' table. The tier columns are a copy taken at
// purchase time; there is deliberately no reference to offer_tiers.
type OrderModel struct {
	ID                 uuid.UUID                   `gorm:"type:uuid;primaryKey"`
	CustomerUserID     uuid.UUID                   `gorm:"type:uuid;not null;index:idx_orders_customer_user_id"`
	BusinessUserID     uuid.UUID                   `gorm:"type:uuid;not null;index:idx_orders_business_user_status,priority:1"`
	Title              string                      `gorm:"type:varchar(255);not null"`
	Revisions          int                         `gorm:"not null"`
	DeliveryTimeInDays int                         `gorm:"not null"`
	Price              decimal.Decimal             `gorm:"type:numeric(10,2);not null"`
	Features           datatypes.JSONSlice[string] `gorm:"not null"`
	OfferType          string                      `gorm:"type:varchar(20);not null"`
	Status             string                      `gorm:"type:varchar(20);not null;index:idx_orders_business_user_status,priority:2"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// BeforeCreate assigns the primary key.
func (m *OrderModel) BeforeCreate(_ *gorm.DB) error {
	m.ID = ensureID(m.ID)

	return nil
}
