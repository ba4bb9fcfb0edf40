package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReviewModel mirrors the 'reviews' table. The composite unique index closes
// the race between two concurrent reviews of the same business by one reviewer.
type ReviewModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	BusinessUserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_reviewer_business,priority:2"`
	ReviewerID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_reviewer_business,priority:1"`
	Rating         int       `gorm:"not null"`
	Description    string    `gorm:"type:text;not null;default:''"`
	CreatedAt      time.Time
	UpdatedAt      time.Time `gorm:"index:idx_reviews_updated_at"`
}

// TableName explicitly sets the table name for GORM.
func (ReviewModel) TableName() string {
	return "reviews"
}

// BeforeCreate assigns the primary key.
func (m *ReviewModel) BeforeCreate(_ *gorm.DB) error {
	m.ID = ensureID(m.ID)

	return nil
}
