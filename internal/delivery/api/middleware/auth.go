package middleware

import (
	"strings"

	"coderr/internal/delivery/api/response"
	deliverycontext "coderr/internal/delivery/context"
	"coderr/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const bearerPrefix = "Bearer "

// AuthMiddleware resolves the caller from a bearer access token. It only
// establishes identity; what the caller may do is decided by the use cases.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate rejects requests without a valid access token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" {
			return response.Unauthorized(c, "UNAUTHENTICATED", "Authentication credentials were not provided")
		}

		if !m.identify(c, header) {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}

		return next(c)
	}
}

// Identify resolves the caller when a token is present and lets anonymous
// requests through. A token that is present but invalid is still rejected.
func (m *AuthMiddleware) Identify(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if header != "" && !m.identify(c, header) {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}

		return next(c)
	}
}

func (m *AuthMiddleware) identify(c echo.Context, header string) bool {
	token, ok := strings.CutPrefix(header, bearerPrefix)
	if !ok || token == "" {
		return false
	}

	claims, err := m.tokenSvc.ValidateToken(token)
	if err != nil || claims.Type != service.TokenTypeAccess || claims.UserID == uuid.Nil {
		return false
	}

	c.Set(deliverycontext.KeyUserID, claims.UserID)

	return true
}

// GetUserID returns the authenticated caller, if any.
func GetUserID(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get(deliverycontext.KeyUserID).(uuid.UUID)

	return userID, ok && userID != uuid.Nil
}

// CallerID returns the authenticated caller or uuid.Nil for anonymous requests.
func CallerID(c echo.Context) uuid.UUID {
	userID, _ := GetUserID(c)

	return userID
}
