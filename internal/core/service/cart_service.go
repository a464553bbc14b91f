package service

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/matespatagonicos/storefront/internal/core/domain"
	"github.com/matespatagonicos/storefront/internal/core/ports"
	"github.com/matespatagonicos/storefront/internal/pkg/metrics"
)

// CartService keeps one client's line items in the cart slot. Every mutation
// loads, changes and rewrites the whole slot; concurrent writers race and the
// last one wins.
type CartService struct {
	items  slot[[]domain.LineItem]
	logger zerolog.Logger
}

var _ ports.CartService = (*CartService)(nil)

func NewCartService(kv ports.KeyValueStore, logger zerolog.Logger) *CartService {
	return &CartService{
		items:  newSlot[[]domain.LineItem](kv, CartKey, "cart", logger),
		logger: logger,
	}
}

// Items returns the line items in persisted order. A missing or corrupt slot
// is an empty cart.
func (s *CartService) Items(ctx context.Context) ([]domain.LineItem, error) {
	items, _, err := s.items.load(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.LineItem{}
	}
	return items, nil
}

// AddItem increments the quantity of p's line item, creating it at quantity 1
// on first add.
func (s *CartService) AddItem(ctx context.Context, p domain.Product) ([]domain.LineItem, error) {
	items, err := s.Items(ctx)
	if err != nil {
		return nil, err
	}

	if i := indexOfLineItem(items, p.ID); i >= 0 {
		items[i].Quantity++
	} else {
		items = append(items, domain.LineItemOf(p))
	}
	return s.store(ctx, "add", items)
}

// RemoveItem drops the matching line item. Removing an absent item is a no-op.
func (s *CartService) RemoveItem(ctx context.Context, productID string) ([]domain.LineItem, error) {
	items, err := s.Items(ctx)
	if err != nil {
		return nil, err
	}

	kept := items[:0]
	for _, li := range items {
		if li.ID != productID {
			kept = append(kept, li)
		}
	}
	return s.store(ctx, "remove", kept)
}

func (s *CartService) SetQuantity(ctx context.Context, productID string, quantity int) ([]domain.LineItem, error) {
	if quantity <= 0 {
		return s.RemoveItem(ctx, productID)
	}

	items, err := s.Items(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexOfLineItem(items, productID); i >= 0 {
		items[i].Quantity = quantity
	}
	return s.store(ctx, "set_quantity", items)
}

// Clear empties the cart.
func (s *CartService) Clear(ctx context.Context) error {
	if _, err := s.store(ctx, "clear", []domain.LineItem{}); err != nil {
		return err
	}
	return nil
}

// Total is the sum of price * quantity over the items, derived on every call.
func (s *CartService) Total(ctx context.Context) (decimal.Decimal, error) {
	items, err := s.Items(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return domain.CartTotal(items), nil
}

// ItemCount is the sum of quantities, derived on every call.
func (s *CartService) ItemCount(ctx context.Context) (int, error) {
	items, err := s.Items(ctx)
	if err != nil {
		return 0, err
	}
	return domain.CartItemCount(items), nil
}

func (s *CartService) store(ctx context.Context, op string, items []domain.LineItem) ([]domain.LineItem, error) {
	if err := s.items.save(ctx, items); err != nil {
		return nil, err
	}
	metrics.CartMutationsTotal.WithLabelValues(op).Inc()
	s.logger.Debug().Str("op", op).Int("lines", len(items)).Msg("cart updated")
	return items, nil
}

func indexOfLineItem(items []domain.LineItem, productID string) int {
	for i, li := range items {
		if li.ID == productID {
			return i
		}
	}
	return -1
}
