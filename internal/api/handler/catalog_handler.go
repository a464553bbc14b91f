package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/matespatagonicos/storefront/internal/core/domain"
	"github.com/matespatagonicos/storefront/internal/core/ports"
)

// CatalogHandler serves the product catalog.
type CatalogHandler struct {
	stores ports.StoreFactory
}

func NewCatalogHandler(stores ports.StoreFactory) *CatalogHandler {
	return &CatalogHandler{stores: stores}
}

// List handles GET /v1/products.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Success      200  {object}  productListResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/products [get]
func (h *CatalogHandler) List(c echo.Context) error {
	products, err := h.stores.Catalog().List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, productListResponse{Items: products, Count: len(products)})
}

// Get handles GET /v1/products/:id.
//
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product id (e.g. prod-1)"
// @Success      200  {object}  domain.Product
// @Failure      404  {object}  errorResponse
// @Router       /v1/products/{id} [get]
func (h *CatalogHandler) Get(c echo.Context) error {
	p, err := h.stores.Catalog().Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Create handles POST /v1/products.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      productRequest  true  "Product fields"
// @Success      201   {object}  domain.Product
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/products [post]
func (h *CatalogHandler) Create(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	p, err := h.stores.Catalog().Insert(c.Request().Context(), domain.NewProduct{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

// Update handles PATCH /v1/products/:id. Only name, description, price and
// imageUrl may be sent.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Product id"
// @Param        body  body      domain.ProductPatch  true  "Fields to change"
// @Success      200   {object}  domain.Product
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/products/{id} [patch]
func (h *CatalogHandler) Update(c echo.Context) error {
	patch, err := domain.DecodeProductPatch(c.Request().Body)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownField) {
			return err
		}
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if patch.IsEmpty() {
		return echo.NewHTTPError(http.StatusBadRequest, "patch has no fields")
	}
	if patch.Name != nil && *patch.Name == "" {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "name is required")
	}
	if patch.Price != nil && *patch.Price < 0 {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "price must be at least 0")
	}

	p, err := h.stores.Catalog().Update(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Delete handles DELETE /v1/products/:id. Deleting an absent product succeeds.
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  productListResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/products/{id} [delete]
func (h *CatalogHandler) Delete(c echo.Context) error {
	remaining, err := h.stores.Catalog().Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, productListResponse{Items: remaining, Count: len(remaining)})
}
