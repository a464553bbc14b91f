package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/matespatagonicos/storefront/internal/core/domain"
)

// CartService owns one client's line items.
type CartService interface {
	Items(ctx context.Context) ([]domain.LineItem, error)
	AddItem(ctx context.Context, p domain.Product) ([]domain.LineItem, error)
	RemoveItem(ctx context.Context, productID string) ([]domain.LineItem, error)
	// SetQuantity removes the item when quantity <= 0.
	SetQuantity(ctx context.Context, productID string, quantity int) ([]domain.LineItem, error)
	Clear(ctx context.Context) error
	Total(ctx context.Context) (decimal.Decimal, error)
	ItemCount(ctx context.Context) (int, error)
}

// CheckoutService turns the current cart into an order receipt.
type CheckoutService interface {
	Checkout(ctx context.Context) (*domain.Order, error)
}

// StoreFactory builds the stores bound to one client scope.
type StoreFactory interface {
	Catalog() CatalogService
	Accounts(clientID string) AccountService
	Cart(clientID string) CartService
	Checkout(clientID string) CheckoutService
}
