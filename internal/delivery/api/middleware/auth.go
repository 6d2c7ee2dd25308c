package middleware

import (
	"strings"

	deliverycontext "noteful/internal/delivery/context"
	"noteful/internal/usecase"

	"github.com/labstack/echo/v4"
)

const bearerScheme = "bearer"

// AuthMiddleware guards routes with the bearer token strategy.
type AuthMiddleware struct {
	uc usecase.AuthUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(uc usecase.AuthUsecase) *AuthMiddleware {
	return &AuthMiddleware{uc: uc}
}

// Authenticate rejects the request with 401 unless it carries a valid bearer
// token, and attaches the identity to the request context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		user, err := m.uc.Authenticate(ctx, BearerToken(c.Request().Header.Get(echo.HeaderAuthorization)))
		if err != nil {
			return err
		}

		c.SetRequest(c.Request().WithContext(deliverycontext.WithUser(ctx, user)))

		return next(c)
	}
}

// BearerToken extracts the token from an Authorization header value. The
// scheme is matched case-insensitively; anything else yields "".
func BearerToken(header string) string {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) {
		return ""
	}

	return strings.TrimSpace(token)
}
