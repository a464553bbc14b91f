package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/matespatagonicos/storefront/internal/api/middleware"
	"github.com/matespatagonicos/storefront/internal/core/domain"
)

// ctxClientID extracts the client scope injected by the ClientIdentity
// middleware. Its presence proves the middleware ran.
func ctxClientID(c echo.Context) (string, error) {
	clientID, _ := c.Get(middleware.ClientIDKey).(string)
	if clientID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing client identity")
	}
	return clientID, nil
}

// ctxSession returns the session injected by the RBAC middleware, if any.
func ctxSession(c echo.Context) *domain.Session {
	sess, _ := c.Get(middleware.SessionKey).(*domain.Session)
	return sess
}
