package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel mirrors the 'users' table. IDs are UUIDv7 values assigned before insert.
type UserModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username  string    `gorm:"type:varchar(150);uniqueIndex:idx_users_username;not null"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex:idx_users_email;not null"`
	FirstName string    `gorm:"type:varchar(150);not null;default:''"`
	LastName  string    `gorm:"type:varchar(150);not null;default:''"`
	IsStaff   bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Profile         *ProfileModel         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Authentications []AuthenticationModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	RefreshTokens   []RefreshTokenModel   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// BeforeCreate assigns the primary key.
func (m *UserModel) BeforeCreate(_ *gorm.DB) error {
	m.ID = ensureID(m.ID)

	return nil
}

// ProfileModel mirrors the 'profiles' table. UserID references users.id (UUID).
type ProfileModel struct {
	UserID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Type         string    `gorm:"type:varchar(20);not null;index:idx_profiles_type"`
	File         string    `gorm:"type:varchar(255);not null;default:''"`
	Location     string    `gorm:"type:varchar(255);not null;default:''"`
	Tel          string    `gorm:"type:varchar(50);not null;default:''"`
	Description  string    `gorm:"type:text;not null;default:''"`
	WorkingHours string    `gorm:"type:varchar(100);not null;default:''"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProfileModel) TableName() string {
	return "profiles"
}
