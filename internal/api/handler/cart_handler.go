package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/matespatagonicos/storefront/internal/core/ports"
)

// CartHandler serves the client's cart.
type CartHandler struct {
	stores ports.StoreFactory
}

func NewCartHandler(stores ports.StoreFactory) *CartHandler {
	return &CartHandler{stores: stores}
}

// Get handles GET /v1/cart.
//
// @Summary      Show the cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  cartResponse
// @Router       /v1/cart [get]
func (h *CartHandler) Get(c echo.Context) error {
	clientID, err := ctxClientID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	cart := h.stores.Cart(clientID)
	items, err := cart.Items(ctx)
	if err != nil {
		return err
	}
	total, err := cart.Total(ctx)
	if err != nil {
		return err
	}
	count, err := cart.ItemCount(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cartResponse{Items: items, Total: total, ItemCount: count})
}

// AddItem handles POST /v1/cart/items. Requires a session.
//
// @Summary      Add a product to the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addItemRequest  true  "Product to add"
// @Success      200   {object}  cartResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/cart/items [post]
func (h *CartHandler) AddItem(c echo.Context) error {
	clientID, err := ctxClientID(c)
	if err != nil {
		return err
	}

	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	ctx := c.Request().Context()
	product, err := h.stores.Catalog().Get(ctx, req.ProductID)
	if err != nil {
		return err
	}
	items, err := h.stores.Cart(clientID).AddItem(ctx, *product)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(items))
}

// SetQuantity handles PUT /v1/cart/items/:id. A quantity of 0 or less removes the item.
//
// @Summary      Set a line item quantity
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Product id"
// @Param        body  body      quantityRequest  true  "New quantity"
// @Success      200   {object}  cartResponse
// @Router       /v1/cart/items/{id} [put]
func (h *CartHandler) SetQuantity(c echo.Context) error {
	clientID, err := ctxClientID(c)
	if err != nil {
		return err
	}

	var req quantityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	items, err := h.stores.Cart(clientID).SetQuantity(c.Request().Context(), c.Param("id"), *req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(items))
}

// RemoveItem handles DELETE /v1/cart/items/:id.
//
// @Summary      Remove a line item
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  cartResponse
// @Router       /v1/cart/items/{id} [delete]
func (h *CartHandler) RemoveItem(c echo.Context) error {
	clientID, err := ctxClientID(c)
	if err != nil {
		return err
	}
	items, err := h.stores.Cart(clientID).RemoveItem(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(items))
}

// Clear handles DELETE /v1/cart.
//
// @Summary      Empty the cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  cartResponse
// @Router       /v1/cart [delete]
func (h *CartHandler) Clear(c echo.Context) error {
	clientID, err := ctxClientID(c)
	if err != nil {
		return err
	}
	if err := h.stores.Cart(clientID).Clear(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(nil))
}
