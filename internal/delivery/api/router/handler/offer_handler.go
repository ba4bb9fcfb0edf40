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
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// OfferHandlerParams holds dependencies for OfferHandler, injected by Fx.
type OfferHandlerParams struct {
	fx.In

	OfferUC usecase.OfferUsecase
	Logger  *slog.Logger
}

// OfferHandler serves the catalog endpoints.
type OfferHandler struct {
	offerUC usecase.OfferUsecase
	logger  *slog.Logger
}

// NewOfferHandler is the constructor for OfferHandler.
func NewOfferHandler(params OfferHandlerParams) *OfferHandler {
	return &OfferHandler{
		offerUC: params.OfferUC,
		logger:  params.Logger,
	}
}

// tierRequest leaves absent fields nil so that a patch only touches what was sent.
type tierRequest struct {
	ID                 *uuid.UUID       `json:"id"`
	Title              *string          `json:"title"`
	Revisions          *int             `json:"revisions"`
	DeliveryTimeInDays *int             `json:"delivery_time_in_days"`
	Price              *decimal.Decimal `json:"price"`
	Features           []string         `json:"features"`
	OfferType          *string          `json:"offer_type"`
}

func (r tierRequest) toInput() usecase.TierInput {
	in := usecase.TierInput{
		Title:              r.Title,
		Revisions:          r.Revisions,
		DeliveryTimeInDays: r.DeliveryTimeInDays,
		Price:              r.Price,
		Features:           r.Features,
	}
	if r.ID != nil {
		in.ID = *r.ID
	}
	if r.OfferType != nil {
		offerType := entity.OfferType(*r.OfferType)
		in.OfferType = &offerType
	}

	return in
}

func tierInputs(details []tierRequest) []usecase.TierInput {
	if details == nil {
		return nil
	}

	return mapSlice(details, tierRequest.toInput)
}

// Tier fields are checked by the domain so that errors carry details[i] paths.
type createOfferRequest struct {
	Title       string        `json:"title" validate:"required"`
	Image       string        `json:"image"`
	Description string        `json:"description"`
	Details     []tierRequest `json:"details"`
}

type updateOfferRequest struct {
	Title       *string       `json:"title"`
	Image       *string       `json:"image"`
	Description *string       `json:"description"`
	Details     []tierRequest `json:"details"`
}

// CreateOffer handles POST /api/offers/.
func (h *OfferHandler) CreateOffer(c echo.Context) error {
	var req createOfferRequest
	if err := bindBody(c, &req); err != nil {
		return fail(c, err)
	}

	offer, err := h.offerUC.CreateOffer(c.Request().Context(), middleware.CallerID(c), &usecase.CreateOfferInput{
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		Tiers:       tierInputs(req.Details),
	})
	if err != nil {
		return fail(c, err)
	}

	return response.Success(c, http.StatusCreated, toOfferResponse(offer, true))
}

// ListOffers handles GET /api/offers/.
func (h *OfferHandler) ListOffers(c echo.Context) error {
	input := &usecase.ListOffersInput{}
	var minPrice decimal.Decimal
	var maxDeliveryTime int

	err := echo.QueryParamsBinder(c).
		String("search", &input.Search).
		String("ordering", &input.Ordering).
		Int("page", &input.Page).
		Int("page_size", &input.PageSize).
		TextUnmarshaler("min_price", &minPrice).
		Int("max_delivery_time", &maxDeliveryTime).
		BindError()
	if err != nil {
		return fail(c, queryError(err))
	}
	if c.QueryParam("min_price") != "" {
		input.MinPrice = &minPrice
	}
	if c.QueryParam("max_delivery_time") != "" {
		input.MaxDeliveryTime = &maxDeliveryTime
	}
	if input.CreatorID, err = optionalUUIDQuery(c, "creator_id"); err != nil {
		return fail(c, err)
	}

	page, err := h.offerUC.ListOffers(c.Request().Context(), input)
	if err != nil {
		return fail(c, err)
	}

	body := response.Page{
		Count:   page.Count,
		Results: mapSlice(page.Offers, toOfferListItem),
	}
	if page.HasNext() {
		next := page.Page + 1
		body.Next = &next
	}
	if page.HasPrevious() {
		previous := page.Page - 1
		body.Previous = &previous
	}

	return response.Success(c, http.StatusOK, body)
}

// GetOffer handles GET /api/offers/:id/.
func (h *OfferHandler) GetOffer(c echo.Context) error {
	offerID, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	offer, err := h.offerUC.GetOffer(c.Request().Context(), offerID)
	if err != nil {
		return fail(c, err)
	}

	return response.Success(c, http.StatusOK, toOfferResponse(offer, false))
}

// UpdateOffer handles PATCH /api/offers/:id/.
func (h *OfferHandler) UpdateOffer(c echo.Context) error {
	offerID, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	var req updateOfferRequest
	if err := bindBody(c, &req); err != nil {
		return fail(c, err)
	}

	offer, err := h.offerUC.UpdateOffer(c.Request().Context(), middleware.CallerID(c), offerID, &usecase.UpdateOfferInput{
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		Tiers:       tierInputs(req.Details),
	})
	if err != nil {
		return fail(c, err)
	}

	return response.Success(c, http.StatusOK, toOfferResponse(offer, true))
}

// DeleteOffer handles DELETE /api/offers/:id/.
func (h *OfferHandler) DeleteOffer(c echo.Context) error {
	offerID, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	if err := h.offerUC.DeleteOffer(c.Request().Context(), middleware.CallerID(c), offerID); err != nil {
		return fail(c, err)
	}

	return response.NoContent(c)
}

// GetTier handles GET /api/offerdetails/:id/.
func (h *OfferHandler) GetTier(c echo.Context) error {
	tierID, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	tier, err := h.offerUC.GetTier(c.Request().Context(), tierID)
	if err != nil {
		return fail(c, err)
	}

	return response.Success(c, http.StatusOK, toTierResponse(tier))
}
