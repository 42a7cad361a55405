package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/rentnest/rentnest/internal/httpapi"
	"github.com/rentnest/rentnest/internal/logging"
	"github.com/rentnest/rentnest/internal/token"
)

// Context keys populated by RequireAuth for downstream handlers.
const (
	ContextUserID = "userID"
	ContextRole   = "role"
)

// RequireAuth extracts the bearer token from the Authorization header
// and attaches the decoded identity to the request context. It does not
// check roles; RequireRole does that per route group.
func RequireAuth(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return httpapi.Fail(c, http.StatusUnauthorized, httpapi.CodeUnauthenticated, "authorization header missing")
			}

			raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
			id, err := token.Parse(raw, secret)
			if err != nil {
				l := logging.FromContext(c.Request().Context())
				l.Warn("auth_rejected", "reason", "invalid token", "error", err)
				return httpapi.Fail(c, http.StatusUnauthorized, httpapi.CodeInvalidToken, "invalid token")
			}

			c.Set(ContextUserID, id.UserID)
			c.Set(ContextRole, id.Role)
			return next(c)
		}
	}
}

// RequireRole allows the request through when the authenticated role is
// one of the given roles. Must run after RequireAuth.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ContextRole).(string)
			for _, r := range roles {
				if role == r {
					return next(c)
				}
			}
			return httpapi.Fail(c, http.StatusForbidden, httpapi.CodeForbidden, "not enough rights")
		}
	}
}
