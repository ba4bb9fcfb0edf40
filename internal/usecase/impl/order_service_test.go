package impl

import (
	"context"
	"testing"

	"coderr/internal/domain/entity"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/errors"
	"coderr/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderService_OrderIsSnapshotOfTier(t *testing.T) {
	env := newTestEnv(t)
	business := env.register(t, "studio", entity.RoleBusiness)
	customer := env.register(t, "buyer", entity.RoleCustomer)
	offer := env.createOffer(t, business.ID, "Logo")
	standard := offer.Tiers[1]
	ctx := context.Background()

	order, err := env.orders.CreateOrder(ctx, customer.ID, standard.ID)
	require.NoError(t, err)
	assert.Equal(t, business.ID, order.BusinessUserID)
	assert.Equal(t, customer.ID, order.CustomerUserID)
	assert.Equal(t, entity.OrderStatusInProgress, order.Status)
	assert.True(t, order.Price.Equal(decimal.NewFromInt(160)))

	repriced := tierInput("Standard Design", "999", 1, entity.OfferTypeStandard)
	repriced.ID = standard.ID
	_, err = env.offers.UpdateOffer(ctx, business.ID, offer.ID, &usecase.UpdateOfferInput{
		Tiers: []usecase.TierInput{repriced},
	})
	require.NoError(t, err)

	stored, err := env.orders.GetOrder(ctx, customer.ID, order.ID)
	require.NoError(t, err)
	assert.True(t, stored.Price.Equal(decimal.NewFromInt(160)))
	assert.Equal(t, 7, stored.DeliveryTimeInDays)

	require.NoError(t, env.offers.DeleteOffer(ctx, business.ID, offer.ID))

	stored, err = env.orders.GetOrder(ctx, business.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Standard Design", stored.Title)
	assert.Equal(t, []string{"Logo design", "Visitenkarte"}, stored.Features)
}

func TestOrderService_CreateOrderRejections(t *testing.T) {
	env := newTestEnv(t)
	business := env.register(t, "studio", entity.RoleBusiness)
	customer := env.register(t, "buyer", entity.RoleCustomer)
	offer := env.createOffer(t, business.ID, "Logo")
	ctx := context.Background()

	_, err := env.orders.CreateOrder(ctx, business.ID, offer.Tiers[0].ID)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))

	_, err = env.orders.CreateOrder(ctx, uuid.Nil, offer.Tiers[0].ID)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthenticated))

	_, err = env.orders.CreateOrder(ctx, customer.ID, uuid.New())
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestOrderService_StatusListAndCounts(t *testing.T) {
	env := newTestEnv(t)
	business := env.register(t, "studio", entity.RoleBusiness)
	customer := env.register(t, "buyer", entity.RoleCustomer)
	stranger := env.register(t, "stranger", entity.RoleCustomer)
	offer := env.createOffer(t, business.ID, "Logo")
	ctx := context.Background()

	first, err := env.orders.CreateOrder(ctx, customer.ID, offer.Tiers[0].ID)
	require.NoError(t, err)
	_, err = env.orders.CreateOrder(ctx, customer.ID, offer.Tiers[2].ID)
	require.NoError(t, err)

	_, err = env.orders.UpdateOrderStatus(ctx, customer.ID, first.ID, entity.OrderStatusCompleted)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden), "the customer cannot change status")

	_, err = env.orders.UpdateOrderStatus(ctx, business.ID, first.ID, "shipped")
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
	assert.Contains(t, domainerrors.FieldsOf(err), "status")

	completed, err := env.orders.UpdateOrderStatus(ctx, business.ID, first.ID, entity.OrderStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCompleted, completed.Status)

	inProgress, err := env.orders.CountOrders(ctx, business.ID, entity.OrderStatusInProgress)
	require.NoError(t, err)
	assert.EqualValues(t, 1, inProgress)
	done, err := env.orders.CountOrders(ctx, business.ID, entity.OrderStatusCompleted)
	require.NoError(t, err)
	assert.EqualValues(t, 1, done)

	_, err = env.orders.CountOrders(ctx, uuid.New(), entity.OrderStatusInProgress)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))

	forCustomer, err := env.orders.ListOrders(ctx, customer.ID)
	require.NoError(t, err)
	assert.Len(t, forCustomer, 2)
	forBusiness, err := env.orders.ListOrders(ctx, business.ID)
	require.NoError(t, err)
	assert.Len(t, forBusiness, 2)
	forStranger, err := env.orders.ListOrders(ctx, stranger.ID)
	require.NoError(t, err)
	assert.Empty(t, forStranger)

	_, err = env.orders.GetOrder(ctx, stranger.ID, first.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))

	_, err = env.orders.ListOrders(ctx, uuid.Nil)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthenticated))

	_, err = env.orders.ListOrders(ctx, uuid.New())
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthenticated), "unknown caller resolves to anonymous")
}

func TestOrderService_DeleteOrderAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	business := env.register(t, "studio", entity.RoleBusiness)
	customer := env.register(t, "buyer", entity.RoleCustomer)
	admin := env.register(t, "root", entity.RoleCustomer)
	_, err := env.users.PromoteAdmin(context.Background(), "root")
	require.NoError(t, err)
	offer := env.createOffer(t, business.ID, "Logo")
	ctx := context.Background()

	order, err := env.orders.CreateOrder(ctx, customer.ID, offer.Tiers[0].ID)
	require.NoError(t, err)

	err = env.orders.DeleteOrder(ctx, business.ID, order.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))

	require.NoError(t, env.orders.DeleteOrder(ctx, admin.ID, order.ID))

	_, err = env.orders.GetOrder(ctx, admin.ID, order.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}
