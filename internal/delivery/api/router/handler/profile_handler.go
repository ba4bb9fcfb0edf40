package handler

import (
	"log/slog"
	"net/http"

	"coderr/internal/delivery/api/middleware"
	"coderr/internal/delivery/api/response"
	"coderr/internal/domain/entity"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ProfileHandlerParams holds dependencies for ProfileHandler, injected by Fx.
type ProfileHandlerParams struct {
	fx.In

	ProfileUC usecase.ProfileUsecase
	Logger    *slog.Logger
}

// ProfileHandler serves profile endpoints.
type ProfileHandler struct {
	profileUC usecase.ProfileUsecase
	logger    *slog.Logger
}

// NewProfileHandler is the constructor for ProfileHandler.
func NewProfileHandler(params ProfileHandlerParams) *ProfileHandler {
	return &ProfileHandler{
		profileUC: params.ProfileUC,
		logger:    params.Logger,
	}
}

type updateProfileRequest struct {
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	Email        *string `json:"email" validate:"omitempty,email"`
	File         *string `json:"file"`
	Location     *string `json:"location"`
	Tel          *string `json:"tel"`
	Description  *string `json:"description"`
	WorkingHours *string `json:"working_hours"`
	Type         *string `json:"type"`
}

// GetProfile handles GET /api/profile/:id/.
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	userID, err := pathID(c, "id")
	if err != nil {
		return fail(c, domainerrors.ErrUserNotFound)
	}

	user, err := h.profileUC.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return fail(c, err)
	}

	return response.Success(c, http.StatusOK, toProfileResponse(user))
}

// UpdateProfile handles PATCH /api/profile/:id/.
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	userID, err := pathID(c, "id")
	if err != nil {
		return fail(c, domainerrors.ErrUserNotFound)
	}

	var req updateProfileRequest
	if err := bindBody(c, &req); err != nil {
		return fail(c, err)
	}

	user, err := h.profileUC.UpdateProfile(c.Request().Context(), middleware.CallerID(c), userID, &usecase.UpdateProfileInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		File:         req.File,
		Location:     req.Location,
		Tel:          req.Tel,
		Description:  req.Description,
		WorkingHours: req.WorkingHours,
		Type:         req.Type,
	})
	if err != nil {
		return fail(c, err)
	}

	return response.Success(c, http.StatusOK, toProfileResponse(user))
}

// ListBusinessProfiles handles GET /api/profiles/business/.
func (h *ProfileHandler) ListBusinessProfiles(c echo.Context) error {
	return h.list(c, entity.RoleBusiness)
}

// ListCustomerProfiles handles GET /api/profiles/customer/.
func (h *ProfileHandler) ListCustomerProfiles(c echo.Context) error {
	return h.list(c, entity.RoleCustomer)
}

func (h *ProfileHandler) list(c echo.Context, role entity.Role) error {
	users, err := h.profileUC.ListProfiles(c.Request().Context(), role)
	if err != nil {
		return fail(c, err)
	}

	return response.Success(c, http.StatusOK, mapSlice(users, toProfileListItem))
}
