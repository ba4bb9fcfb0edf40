// Package handler contains the HTTP handlers for the API.
package handler

import (
	"log/slog"
	"net/http"

	"coderr/internal/delivery/api/response"
	"coderr/internal/domain/entity"
	"coderr/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	UserUC usecase.UserUsecase
	Logger *slog.Logger
}

// UserHandler serves registration, login and session endpoints.
type UserHandler struct {
	userUC usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler.
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		userUC: params.UserUC,
		logger: params.Logger,
	}
}

type registrationRequest struct {
	Username         string `json:"username" validate:"required,max=150"`
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required"`
	RepeatedPassword string `json:"repeated_password" validate:"required"`
	Type             string `json:"type" validate:"required"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type refreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type authResponse struct {
	Token        string    `json:"token"`
	RefreshToken string    `json:"refresh_token"`
	UserID       uuid.UUID `json:"user_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
}

func toAuthResponse(output *usecase.AuthOutput) authResponse {
	return authResponse{
		Token:        output.AccessToken,
		RefreshToken: output.RefreshToken,
		UserID:       output.User.ID,
		Username:     output.User.Username,
		Email:        output.User.Email,
	}
}

// Register handles POST /api/registration/.
func (h *UserHandler) Register(c echo.Context) error {
	var req registrationRequest
	if err := bindBody(c, &req); err != nil {
		return fail(c, err)
	}

	output, err := h.userUC.Register(c.Request().Context(), &usecase.RegisterInput{
		Username:         req.Username,
		Email:            req.Email,
		Password:         req.Password,
		RepeatedPassword: req.RepeatedPassword,
		Type:             entity.Role(req.Type),
	})
	if err != nil {
		return fail(c, err)
	}

	return response.Success(c, http.StatusCreated, toAuthResponse(output))
}

// Login handles POST /api/login/.
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindBody(c, &req); err != nil {
		return fail(c, err)
	}

	output, err := h.userUC.Login(c.Request().Context(), &usecase.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return fail(c, err)
	}

	return response.Success(c, http.StatusOK, toAuthResponse(output))
}

// RefreshToken handles POST /api/token/refresh/.
func (h *UserHandler) RefreshToken(c echo.Context) error {
	var req refreshTokenRequest
	if err := bindBody(c, &req); err != nil {
		return fail(c, err)
	}

	output, err := h.userUC.RefreshToken(c.Request().Context(), &usecase.RefreshTokenInput{RefreshToken: req.RefreshToken})
	if err != nil {
		return fail(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"token": output.AccessToken})
}

// Logout handles POST /api/logout/.
func (h *UserHandler) Logout(c echo.Context) error {
	var req refreshTokenRequest
	if err := bindBody(c, &req); err != nil {
		return fail(c, err)
	}

	if err := h.userUC.Logout(c.Request().Context(), &usecase.LogoutInput{RefreshToken: req.RefreshToken}); err != nil {
		return fail(c, err)
	}

	return response.NoContent(c)
}
