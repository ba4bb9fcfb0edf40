package handler

import (
	"coderr/internal/delivery/api/response"
	domainerrors "coderr/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// pathID parses the named path parameter. Malformed ids cannot match any row,
// so they are reported as not found.
func pathID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, domainerrors.ErrNotFound.WithDetails(name)
	}

	return id, nil
}

// bindBody decodes and validates the request body into req.
func bindBody(c echo.Context, req any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("request body could not be decoded")
	}

	return errors.WithStack(c.Validate(req))
}

// queryError turns an echo query binding failure into a field-scoped validation error.
func queryError(err error) error {
	var bindErr *echo.BindingError
	if errors.As(err, &bindErr) {
		return domainerrors.ErrValidationFailed.WithField(bindErr.Field, "invalid value")
	}

	return domainerrors.ErrValidationFailed.WithDetails("invalid query parameters")
}

// optionalUUIDQuery parses an optional uuid query parameter.
func optionalUUIDQuery(c echo.Context, name string) (*uuid.UUID, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WithField(name, "must be a valid UUID")
	}

	return &id, nil
}

func fail(c echo.Context, err error) error {
	return response.HandleAppError(c, err)
}
