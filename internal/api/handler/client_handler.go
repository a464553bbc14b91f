package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/matespatagonicos/storefront/internal/api/middleware"
)

// ClientHandler hands out client scopes. A client scope stands in for one
// browser: it owns a session slot and a cart slot.
type ClientHandler struct {
	secret string
	ttl    time.Duration
	now    func() time.Time
}

func NewClientHandler(secret string, ttl time.Duration) *ClientHandler {
	return &ClientHandler{secret: secret, ttl: ttl, now: time.Now}
}

// Create issues a new client token.
//
// @Summary      Open a client scope
// @Tags         clients
// @Produce      json
// @Success      201  {object}  clientTokenResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/clients [post]
func (h *ClientHandler) Create(c echo.Context) error {
	now := h.now()
	token, clientID, err := middleware.IssueClientToken(h.secret, h.ttl, now)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, clientTokenResponse{
		Token:     token,
		ClientID:  clientID,
		ExpiresAt: now.Add(h.ttl).UTC(),
	})
}
