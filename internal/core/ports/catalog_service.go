package ports

import (
	"context"

	"github.com/matespatagonicos/storefront/internal/core/domain"
)

// CatalogService owns the product collection.
type CatalogService interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Insert(ctx context.Context, in domain.NewProduct) (*domain.Product, error)
	Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error)
	// Delete removes the product if present and returns the remaining collection.
	Delete(ctx context.Context, id string) ([]domain.Product, error)
}
