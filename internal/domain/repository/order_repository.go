package repository

import (
	"context"
	"errors"

	"coderr/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrOrderNotFound is returned when an order does not exist.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository persists order snapshots.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// ListByParticipant returns orders where userID is the customer or the business user, newest first.
	ListByParticipant(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// UpdateStatus changes only the status column.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error

	Delete(ctx context.Context, id uuid.UUID) error

	// CountByBusinessUser counts orders of a business user in the given status.
	CountByBusinessUser(ctx context.Context, businessUserID uuid.UUID, status entity.OrderStatus) (int64, error)
}
