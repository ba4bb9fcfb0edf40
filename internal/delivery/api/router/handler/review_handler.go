package handler

import (
	"log/slog"
	"net/http"

	"coderr/internal/delivery/api/middleware"
	"coderr/internal/delivery/api/response"
	"coderr/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ReviewHandlerParams holds dependencies for ReviewHandler, injected by Fx.
type ReviewHandlerParams struct {
	fx.In

	ReviewUC usecase.ReviewUsecase
	Logger   *slog.Logger
}

// ReviewHandler serves the review endpoints.
type ReviewHandler struct {
	reviewUC usecase.ReviewUsecase
	logger   *slog.Logger
}

// NewReviewHandler is the constructor for ReviewHandler.
func NewReviewHandler(params ReviewHandlerParams) *ReviewHandler {
	return &ReviewHandler{
		reviewUC: params.ReviewUC,
		logger:   params.Logger,
	}
}

type createReviewRequest struct {
	BusinessUser uuid.UUID `json:"business_user" validate:"required"`
	Rating       int       `json:"rating"`
	Description  string    `json:"description"`
}

type updateReviewRequest struct {
	Rating      *int    `json:"rating"`
	Description *string `json:"description"`
}

// CreateReview handles POST /api/reviews/.
func (h *ReviewHandler) CreateReview(c echo.Context) error {
	var req createReviewRequest
	if err := bindBody(c, &req); err != nil {
		return fail(c, err)
	}

	review, err := h.reviewUC.CreateReview(c.Request().Context(), middleware.CallerID(c), &usecase.CreateReviewInput{
		BusinessUserID: req.BusinessUser,
		Rating:         req.Rating,
		Description:    req.Description,
	})
	if err != nil {
		return fail(c, err)
	}

	return response.Success(c, http.StatusCreated, toReviewResponse(review))
}

// ListReviews handles GET /api/reviews/.
func (h *ReviewHandler) ListReviews(c echo.Context) error {
	input := &usecase.ListReviewsInput{Ordering: c.QueryParam("ordering")}

	var err error
	if input.BusinessUserID, err = optionalUUIDQuery(c, "business_user_id"); err != nil {
		return fail(c, err)
	}
	if input.ReviewerID, err = optionalUUIDQuery(c, "reviewer_id"); err != nil {
		return fail(c, err)
	}

	reviews, err := h.reviewUC.ListReviews(c.Request().Context(), input)
	if err != nil {
		return fail(c, err)
	}

	return response.Success(c, http.StatusOK, mapSlice(reviews, toReviewResponse))
}

// GetReview handles GET /api/reviews/:id/.
func (h *ReviewHandler) GetReview(c echo.Context) error {
	reviewID, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	review, err := h.reviewUC.GetReview(c.Request().Context(), reviewID)
	if err != nil {
		return fail(c, err)
	}

	return response.Success(c, http.StatusOK, toReviewResponse(review))
}

// UpdateReview handles PATCH /api/reviews/:id/.
func (h *ReviewHandler) UpdateReview(c echo.Context) error {
	reviewID, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	var req updateReviewRequest
	if err := bindBody(c, &req); err != nil {
		return fail(c, err)
	}

	review, err := h.reviewUC.UpdateReview(c.Request().Context(), middleware.CallerID(c), reviewID, &usecase.UpdateReviewInput{
		Rating:      req.Rating,
		Description: req.Description,
	})
	if err != nil {
		return fail(c, err)
	}

	return response.Success(c, http.StatusOK, toReviewResponse(review))
}

// DeleteReview handles DELETE /api/reviews/:id/.
func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	reviewID, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	if err := h.reviewUC.DeleteReview(c.Request().Context(), middleware.CallerID(c), reviewID); err != nil {
		return fail(c, err)
	}

	return response.NoContent(c)
}
