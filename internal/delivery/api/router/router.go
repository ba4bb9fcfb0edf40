// Package router wires the API handlers to their routes.
package router

import (
	"coderr/internal/delivery/api/middleware"
	"coderr/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	ProfileHandler *handler.ProfileHandler
	OfferHandler   *handler.OfferHandler
	OrderHandler   *handler.OrderHandler
	ReviewHandler  *handler.ReviewHandler
	StatsHandler   *handler.StatsHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	profileHandler *handler.ProfileHandler
	offerHandler   *handler.OfferHandler
	orderHandler   *handler.OrderHandler
	reviewHandler  *handler.ReviewHandler
	statsHandler   *handler.StatsHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		profileHandler: params.ProfileHandler,
		offerHandler:   params.OfferHandler,
		orderHandler:   params.OrderHandler,
		reviewHandler:  params.ReviewHandler,
		statsHandler:   params.StatsHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes. Paths end with a slash; the
// server adds a missing one before routing.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health/", handler.HealthCheck)

	api := e.Group("/api")
	authenticated := r.authMiddleware.Authenticate
	identified := r.authMiddleware.Identify

	// Accounts
	api.POST("/registration/", r.userHandler.Register)
	api.POST("/login/", r.userHandler.Login)
	api.POST("/token/refresh/", r.userHandler.RefreshToken)
	api.POST("/logout/", r.userHandler.Logout)

	// Profiles
	api.GET("/profile/:id/", r.profileHandler.GetProfile, authenticated)
	api.PATCH("/profile/:id/", r.profileHandler.UpdateProfile, authenticated)
	api.GET("/profiles/business/", r.profileHandler.ListBusinessProfiles, authenticated)
	api.GET("/profiles/customer/", r.profileHandler.ListCustomerProfiles, authenticated)

	// Catalog
	api.GET("/offers/", r.offerHandler.ListOffers, identified)
	api.POST("/offers/", r.offerHandler.CreateOffer, authenticated)
	api.GET("/offers/:id/", r.offerHandler.GetOffer, identified)
	api.PATCH("/offers/:id/", r.offerHandler.UpdateOffer, authenticated)
	api.DELETE("/offers/:id/", r.offerHandler.DeleteOffer, authenticated)
	api.GET("/offerdetails/:id/", r.offerHandler.GetTier, identified)

	// Orders
	api.GET("/orders/", r.orderHandler.ListOrders, authenticated)
	api.POST("/orders/", r.orderHandler.CreateOrder, authenticated)
	api.GET("/orders/:id/", r.orderHandler.GetOrder, authenticated)
	api.PATCH("/orders/:id/", r.orderHandler.UpdateOrderStatus, authenticated)
	api.DELETE("/orders/:id/", r.orderHandler.DeleteOrder, authenticated)
	api.GET("/order-count/:business_user_id/", r.orderHandler.OrderCount, authenticated)
	api.GET("/completed-order-count/:business_user_id/", r.orderHandler.CompletedOrderCount, authenticated)

	// Reviews
	api.GET("/reviews/", r.reviewHandler.ListReviews, identified)
	api.POST("/reviews/", r.reviewHandler.CreateReview, authenticated)
	api.GET("/reviews/:id/", r.reviewHandler.GetReview, identified)
	api.PATCH("/reviews/:id/", r.reviewHandler.UpdateReview, authenticated)
	api.DELETE("/reviews/:id/", r.reviewHandler.DeleteReview, authenticated)

	// Summary
	api.GET("/base-info/", r.statsHandler.BaseInfo)
}
