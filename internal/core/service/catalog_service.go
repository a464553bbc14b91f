package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/matespatagonicos/storefront/internal/core/domain"
	"github.com/matespatagonicos/storefront/internal/core/ports"
	"github.com/matespatagonicos/storefront/internal/pkg/metrics"
)

// CatalogService implements product CRUD over the products slot.
type CatalogService struct {
	products slot[[]domain.Product]
	logger   zerolog.Logger
	now      func() time.Time
}

var _ ports.CatalogService = (*CatalogService)(nil)

func NewCatalogService(kv ports.KeyValueStore, logger zerolog.Logger) *CatalogService {
	return &CatalogService{
		products: newSlot[[]domain.Product](kv, ProductsKey, "products", logger),
		logger:   logger,
		now:      time.Now,
	}
}

// List returns the catalog in insertion order, seeding the default products
// when the slot is absent or was corrupt.
func (s *CatalogService) List(ctx context.Context) ([]domain.Product, error) {
	products, ok, err := s.products.load(ctx)
	if err != nil {
		return nil, err
	}
	if ok {
		return products, nil
	}

	seed := domain.DefaultProducts()
	if err := s.products.save(ctx, seed); err != nil {
		return nil, err
	}
	metrics.SlotSeedsTotal.WithLabelValues("products").Inc()
	s.logger.Info().Int("count", len(seed)).Msg("product catalog seeded")
	return seed, nil
}

// Get returns the product with the given id.
func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexOfProduct(products, id); i >= 0 {
		p := products[i]
		return &p, nil
	}
	return nil, domain.ErrProductNotFound
}

// Insert assigns a fresh id to the product, appends it and persists the catalog.
func (s *CatalogService) Insert(ctx context.Context, in domain.NewProduct) (*domain.Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	p := domain.Product{
		ID:          newID("prod", s.now()),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		ImageURL:    in.ImageURL,
	}
	products = append(products, p)
	if err := s.products.save(ctx, products); err != nil {
		return nil, err
	}

	s.logger.Info().Str("product_id", p.ID).Msg("product created")
	return &p, nil
}

// Update merges patch into the matching product. The catalog is left untouched
// when no product has that id.
func (s *CatalogService) Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	i := indexOfProduct(products, id)
	if i < 0 {
		return nil, domain.ErrProductNotFound
	}
	patch.Apply(&products[i])
	if err := s.products.save(ctx, products); err != nil {
		return nil, err
	}

	s.logger.Info().Str("product_id", id).Msg("product updated")
	p := products[i]
	return &p, nil
}

// Delete removes the matching product if present and returns what remains.
func (s *CatalogService) Delete(ctx context.Context, id string) ([]domain.Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	remaining := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.ID != id {
			remaining = append(remaining, p)
		}
	}
	if err := s.products.save(ctx, remaining); err != nil {
		return nil, err
	}

	if len(remaining) < len(products) {
		s.logger.Info().Str("product_id", id).Msg("product deleted")
	}
	return remaining, nil
}

func indexOfProduct(products []domain.Product, id string) int {
	for i, p := range products {
		if p.ID == id {
			return i
		}
	}
	return -1
}
