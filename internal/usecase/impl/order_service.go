package impl

import (
	"context"
	"log/slog"

	deliverycontext "coderr/internal/delivery/context"
	"coderr/internal/domain/entity"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/domain/policy"
	"coderr/internal/domain/repository"
	"coderr/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type orderService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	orderRepo repository.OrderRepository
	logger    *slog.Logger
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	UserRepo  repository.UserRepository
	OrderRepo repository.OrderRepository
	Logger    *slog.Logger
}

// NewOrderService creates a new order service instance.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager: params.TxManager,
		userRepo:  params.UserRepo,
		orderRepo: params.OrderRepo,
		logger:    params.Logger,
	}
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func orderSubject(order *entity.Order) policy.Subject {
	return policy.Subject{OwnerID: order.BusinessUserID, CounterpartyID: order.CustomerUserID}
}

// CreateOrder snapshots the tier into a new order placed by a customer caller.
// The business user is the owner of the tier's offer.
func (srv *orderService) CreateOrder(ctx context.Context, callerID, tierID uuid.UUID) (*entity.Order, error) {
	var created *entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := authorize(ctx, repoFactory.UserRepo(), callerID, policy.ActionOrderCreate, policy.Subject{}); err != nil {
			return err
		}

		offerRepo := repoFactory.OfferRepo()
		tier, err := offerRepo.FindTierByID(ctx, tierID)
		if err != nil {
			if errors.Is(err, repository.ErrTierNotFound) {
				return domainerrors.ErrNotFound.WithDetails("offer detail")
			}

			return errors.Wrap(err, "failed to find tier")
		}

		offer, err := offerRepo.FindByID(ctx, tier.OfferID)
		if err != nil {
			return errors.Wrap(err, "failed to find tier offer")
		}

		order := entity.NewOrderFromTier(tier, callerID, offer.UserID)
		if err := repoFactory.OrderRepo().Create(ctx, order); err != nil {
			return errors.Wrap(err, "failed to create order")
		}
		created = order

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Order creation rejected", slog.Any("tierID", tierID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create order")
	}
	srv.log(ctx).Info("Order created", slog.Any("orderID", created.ID), slog.Any("businessUserID", created.BusinessUserID))

	return created, nil
}

// ListOrders returns the caller's orders as customer or business user, newest first.
func (srv *orderService) ListOrders(ctx context.Context, callerID uuid.UUID) ([]*entity.Order, error) {
	actor, err := authorize(ctx, srv.userRepo, callerID, policy.ActionOrderList, policy.Subject{})
	if err != nil {
		return nil, err
	}

	orders, err := srv.orderRepo.ListByParticipant(ctx, actor.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

// GetOrder returns an order to either party or an administrator.
func (srv *orderService) GetOrder(ctx context.Context, callerID, orderID uuid.UUID) (*entity.Order, error) {
	actor, err := requireAuthenticated(ctx, srv.userRepo, callerID)
	if err != nil {
		return nil, err
	}

	order, err := srv.findOrder(ctx, srv.orderRepo, orderID)
	if err != nil {
		return nil, err
	}

	if err := policy.Authorize(policy.ActionOrderRead, actor, orderSubject(order)); err != nil {
		return nil, err
	}

	return order, nil
}

func (srv *orderService) findOrder(ctx context.Context, orderRepo repository.OrderRepository, orderID uuid.UUID) (*entity.Order, error) {
	order, err := orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrNotFound.WithDetails("order")
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	return order, nil
}

// UpdateOrderStatus sets the status of an order. Only the business user of the
// order may do so; any transition between valid statuses is accepted.
func (srv *orderService) UpdateOrderStatus(
	ctx context.Context,
	callerID, orderID uuid.UUID,
	status entity.OrderStatus,
) (*entity.Order, error) {
	var updated *entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()

		actor, err := requireAuthenticated(ctx, repoFactory.UserRepo(), callerID)
		if err != nil {
			return err
		}

		order, err := srv.findOrder(ctx, orderRepo, orderID)
		if err != nil {
			return err
		}

		if err := policy.Authorize(policy.ActionOrderUpdateStatus, actor, orderSubject(order)); err != nil {
			return err
		}

		if !status.IsValid() {
			return domainerrors.ErrValidationFailed.WithField("status", "must be one of in_progress, completed, cancelled")
		}

		if err := orderRepo.UpdateStatus(ctx, orderID, status); err != nil {
			return errors.Wrap(err, "failed to update order status")
		}

		updated, err = srv.findOrder(ctx, orderRepo, orderID)

		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update order status")
	}
	srv.log(ctx).Info("Order status updated", slog.Any("orderID", orderID), slog.String("status", string(status)))

	return updated, nil
}

// DeleteOrder removes an order. Administrators only.
func (srv *orderService) DeleteOrder(ctx context.Context, callerID, orderID uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()

		actor, err := requireAuthenticated(ctx, repoFactory.UserRepo(), callerID)
		if err != nil {
			return err
		}

		order, err := srv.findOrder(ctx, orderRepo, orderID)
		if err != nil {
			return err
		}

		if err := policy.Authorize(policy.ActionOrderDelete, actor, orderSubject(order)); err != nil {
			return err
		}

		if err := orderRepo.Delete(ctx, orderID); err != nil {
			return errors.Wrap(err, "failed to delete order")
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete order")
	}
	srv.log(ctx).Info("Order deleted", slog.Any("orderID", orderID))

	return nil
}

// CountOrders counts the business user's orders in status.
func (srv *orderService) CountOrders(ctx context.Context, businessUserID uuid.UUID, status entity.OrderStatus) (int64, error) {
	if _, err := srv.userRepo.FindByID(ctx, businessUserID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return 0, domainerrors.ErrNotFound.WithDetails("business user")
		}

		return 0, errors.Wrap(err, "failed to find business user")
	}

	count, err := srv.orderRepo.CountByBusinessUser(ctx, businessUserID, status)
	if err != nil {
		return 0, errors.Wrap(err, "failed to count orders")
	}

	return count, nil
}
