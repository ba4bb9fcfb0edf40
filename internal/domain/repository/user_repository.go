// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"coderr/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
// Users are always loaded together with their profile.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByUsername retrieves a single user by their username.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// ExistsByUsername reports whether the username is taken.
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// ExistsByEmail reports whether the email is taken.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Create persists a new user together with its profile.
	// Unique violations surface as ErrDuplicateUsername or ErrDuplicateEmail.
	Create(ctx context.Context, user *entity.User) error

	// Update modifies the user's account fields and profile metadata. The profile role is never written.
	Update(ctx context.Context, user *entity.User) error

	// ListByRole returns every user whose profile has the given role, oldest first.
	ListByRole(ctx context.Context, role entity.Role) ([]*entity.User, error)
}
