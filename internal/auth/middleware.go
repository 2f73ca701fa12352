package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	headerAuthorization = "Authorization"
	bearerScheme        = "bearer"
	authHeaderParts     = 2

	// ContextKeyEmail holds the verified administrator email for handlers
	// running behind RequireAdmin.
	ContextKeyEmail = "admin_email"

	msgUnauthorized = "Unauthorized"
)

type Middleware struct {
	tokens *TokenService
}

func NewMiddleware(tokens *TokenService) *Middleware {
	return &Middleware{tokens: tokens}
}

// RequireAdmin gates every mutating route. Missing header, malformed header,
// failed verification, and a valid token without the admin flag all produce
// the same 401 body; the reason is never surfaced to the caller.
func (m *Middleware) RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := BearerToken(c)
			if token == "" {
				return respondUnauthorized(c)
			}

			claims, err := m.tokens.Verify(token)
			if err != nil || !claims.IsAdmin {
				return respondUnauthorized(c)
			}

			c.Set(ContextKeyEmail, claims.Email)

			return next(c)
		}
	}
}

// BearerToken pulls the token out of the Authorization header, or returns ""
// when the header is absent or not a two-part bearer scheme.
func BearerToken(c echo.Context) string {
	authHeader := c.Request().Header.Get(headerAuthorization)
	if authHeader == "" {
		return ""
	}

	parts := strings.Fields(authHeader)
	if len(parts) != authHeaderParts || strings.ToLower(parts[0]) != bearerScheme {
		return ""
	}

	return parts[1]
}

func respondUnauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, map[string]string{"error": msgUnauthorized})
}

// AdminEmail returns the verified identity attached by RequireAdmin.
func AdminEmail(c echo.Context) string {
	email, _ := c.Get(ContextKeyEmail).(string)
	return email
}
