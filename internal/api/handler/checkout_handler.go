package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/matespatagonicos/storefront/internal/core/ports"
)

// CheckoutHandler runs the simulated purchase.
type CheckoutHandler struct {
	stores ports.StoreFactory
}

func NewCheckoutHandler(stores ports.StoreFactory) *CheckoutHandler {
	return &CheckoutHandler{stores: stores}
}

// Checkout handles POST /v1/checkout. The request blocks for the configured
// processing delay.
//
// @Summary      Check out the cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  domain.Order
// @Failure      401  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/checkout [post]
func (h *CheckoutHandler) Checkout(c echo.Context) error {
	clientID, err := ctxClientID(c)
	if err != nil {
		return err
	}
	order, err := h.stores.Checkout(clientID).Checkout(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, order)
}
