package usecase

import (
	"context"

	"coderr/internal/domain/entity"

	"github.com/google/uuid"
)

// UpdateProfileInput is a partial update; nil fields are left unchanged.
type UpdateProfileInput struct {
	FirstName    *string
	LastName     *string
	Email        *string
	File         *string
	Location     *string
	Tel          *string
	Description  *string
	WorkingHours *string

	// Type is accepted only to be rejected: the profile role never changes.
	Type *string
}

// ProfileUsecase defines the interface for profile-related business operations.
type ProfileUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	UpdateProfile(ctx context.Context, callerID, userID uuid.UUID, input *UpdateProfileInput) (*entity.User, error)
	ListProfiles(ctx context.Context, role entity.Role) ([]*entity.User, error)
}
