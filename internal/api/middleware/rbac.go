package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/matespatagonicos/storefront/internal/core/domain"
)

// SessionKey is the echo context key holding the caller's *domain.Session.
const SessionKey = "session"

// SessionLookup resolves the current session of a client scope.
type SessionLookup func(ctx context.Context, clientID string) (*domain.Session, bool, error)

// RBAC requires an active session for the client and, when roles are given,
// one of those roles. It must run after ClientIdentity.
func RBAC(lookup SessionLookup, allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			clientID, _ := c.Get(ClientIDKey).(string)
			if clientID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing client identity")
			}

			sess, ok, err := lookup(c.Request().Context(), clientID)
			if err != nil {
				return err
			}
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "login required")
			}
			if len(allowed) > 0 {
				if _, ok := allowed[sess.Role]; !ok {
					return domain.ErrForbidden
				}
			}

			c.Set(SessionKey, sess)
			return next(c)
		}
	}
}
