package handler

import (
	"log/slog"
	"net/http"

	"coderr/internal/delivery/api/middleware"
	"coderr/internal/delivery/api/response"
	"coderr/internal/domain/entity"
	"coderr/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// OrderHandlerParams holds dependencies for OrderHandler, injected by Fx.
type OrderHandlerParams struct {
	fx.In

	OrderUC usecase.OrderUsecase
	Logger  *slog.Logger
}

// OrderHandler serves the order endpoints.
type OrderHandler struct {
	orderUC usecase.OrderUsecase
	logger  *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler.
func NewOrderHandler(params OrderHandlerParams) *OrderHandler {
	return &OrderHandler{
		orderUC: params.OrderUC,
		logger:  params.Logger,
	}
}

type createOrderRequest struct {
	OfferDetailID uuid.UUID `json:"offer_detail_id" validate:"required"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// CreateOrder handles POST /api/orders/.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	var req createOrderRequest
	if err := bindBody(c, &req); err != nil {
		return fail(c, err)
	}

	order, err := h.orderUC.CreateOrder(c.Request().Context(), middleware.CallerID(c), req.OfferDetailID)
	if err != nil {
		return fail(c, err)
	}

	return response.Success(c, http.StatusCreated, toOrderResponse(order))
}

// ListOrders handles GET /api/orders/.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	orders, err := h.orderUC.ListOrders(c.Request().Context(), middleware.CallerID(c))
	if err != nil {
		return fail(c, err)
	}

	return response.Success(c, http.StatusOK, mapSlice(orders, toOrderResponse))
}

// GetOrder handles GET /api/orders/:id/.
func (h *OrderHandler) GetOrder(c echo.Context) error {
	orderID, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	order, err := h.orderUC.GetOrder(c.Request().Context(), middleware.CallerID(c), orderID)
	if err != nil {
		return fail(c, err)
	}

	return response.Success(c, http.StatusOK, toOrderResponse(order))
}

// UpdateOrderStatus handles PATCH /api/orders/:id/.
func (h *OrderHandler) UpdateOrderStatus(c echo.Context) error {
	orderID, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	var req updateOrderStatusRequest
	if err := bindBody(c, &req); err != nil {
		return fail(c, err)
	}

	order, err := h.orderUC.UpdateOrderStatus(c.Request().Context(), middleware.CallerID(c), orderID, entity.OrderStatus(req.Status))
	if err != nil {
		return fail(c, err)
	}

	return response.Success(c, http.StatusOK, toOrderResponse(order))
}

// DeleteOrder handles DELETE /api/orders/:id/.
func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	orderID, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	if err := h.orderUC.DeleteOrder(c.Request().Context(), middleware.CallerID(c), orderID); err != nil {
		return fail(c, err)
	}

	return response.NoContent(c)
}

// OrderCount handles GET /api/order-count/:business_user_id/.
func (h *OrderHandler) OrderCount(c echo.Context) error {
	return h.count(c, entity.OrderStatusInProgress, "order_count")
}

// CompletedOrderCount handles GET /api/completed-order-count/:business_user_id/.
func (h *OrderHandler) CompletedOrderCount(c echo.Context) error {
	return h.count(c, entity.OrderStatusCompleted, "completed_order_count")
}

func (h *OrderHandler) count(c echo.Context, status entity.OrderStatus, key string) error {
	businessUserID, err := pathID(c, "business_user_id")
	if err != nil {
		return fail(c, err)
	}

	count, err := h.orderUC.CountOrders(c.Request().Context(), businessUserID, status)
	if err != nil {
		return fail(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]int64{key: count})
}
