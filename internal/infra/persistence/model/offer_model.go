package model

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OfferModel mirrors the 'offers' table.
type OfferModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index:idx_offers_user_id"`
	Title       string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text;not null;default:''"`
	Image       string    `gorm:"type:varchar(255);not null;default:''"`
	CreatedAt   time.Time `gorm:"index:idx_offers_created_at"`
	UpdatedAt   time.Time

	User  *UserModel       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Tiers []OfferTierModel `gorm:"foreignKey:OfferID;constraint:OnDelete:CASCADE"`

	// Populated only by list queries that aggregate over offer_tiers.
	MinPrice        decimal.NullDecimal `gorm:"->;-:migration"`
	MinDeliveryTime sql.NullInt64       `gorm:"->;-:migration"`
}

// TableName explicitly sets the table name for GORM.
func (OfferModel) TableName() string {
	return "offers"
}

// BeforeCreate assigns the primary key.
func (m *OfferModel) BeforeCreate(_ *gorm.DB) error {
	m.ID = ensureID(m.ID)

	return nil
}

// OfferTierModel mirrors the 'offer_tiers' table.
type OfferTierModel struct {
	ID                 uuid.UUID                   `gorm:"type:uuid;primaryKey"`
	OfferID            uuid.UUID                   `gorm:"type:uuid;not null;index:idx_offer_tiers_offer_id"`
	Title              string                      `gorm:"type:varchar(255);not null"`
	Revisions          int                         `gorm:"not null;default:0"`
	DeliveryTimeInDays int                         `gorm:"not null;default:0"`
	Price              decimal.Decimal             `gorm:"type:numeric(10,2);not null"`
	Features           datatypes.JSONSlice[string] `gorm:"not null"`
	OfferType          string                      `gorm:"type:varchar(20);not null"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName explicitly sets the table name for GORM.
func (OfferTierModel) TableName() string {
	return "offer_tiers"
}

// BeforeCreate assigns the primary key.
func (m *OfferTierModel) BeforeCreate(_ *gorm.DB) error {
	m.ID = ensureID(m.ID)

	return nil
}
