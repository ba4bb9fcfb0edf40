package usecase

import (
	"context"

	"coderr/internal/domain/entity"

	"github.com/google/uuid"
)

// OrderUsecase defines the order operations.
type OrderUsecase interface {
	CreateOrder(ctx context.Context, callerID, tierID uuid.UUID) (*entity.Order, error)
	ListOrders(ctx context.Context, callerID uuid.UUID) ([]*entity.Order, error)
	GetOrder(ctx context.Context, callerID, orderID uuid.UUID) (*entity.Order, error)
	UpdateOrderStatus(ctx context.Context, callerID, orderID uuid.UUID, status entity.OrderStatus) (*entity.Order, error)
	DeleteOrder(ctx context.Context, callerID, orderID uuid.UUID) error

	// CountOrders counts the business user's orders in status.
	CountOrders(ctx context.Context, businessUserID uuid.UUID, status entity.OrderStatus) (int64, error)
}
