package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/matespatagonicos/storefront/internal/core/domain"
	"github.com/matespatagonicos/storefront/internal/core/ports"
	"github.com/matespatagonicos/storefront/internal/pkg/metrics"
)

// DefaultCheckoutDelay is the simulated payment processing time.
const DefaultCheckoutDelay = 2 * time.Second

// CheckoutService simulates a purchase: it requires a session and a non-empty
// cart, waits out the processing delay and clears the cart.
type CheckoutService struct {
	accounts ports.AccountService
	cart     ports.CartService
	delay    time.Duration
	logger   zerolog.Logger
	now      func() time.Time
}

var _ ports.CheckoutService = (*CheckoutService)(nil)

// NewCheckoutService returns a CheckoutService. A negative delay is treated as zero.
func NewCheckoutService(accounts ports.AccountService, cart ports.CartService, delay time.Duration, logger zerolog.Logger) *CheckoutService {
	if delay < 0 {
		delay = 0
	}
	return &CheckoutService{
		accounts: accounts,
		cart:     cart,
		delay:    delay,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *CheckoutService) Checkout(ctx context.Context) (*domain.Order, error) {
	sess, ok, err := s.accounts.CurrentSession(ctx)
	if err != nil {
		metrics.CheckoutsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("checkout: %w", err)
	}
	if !ok {
		metrics.CheckoutsTotal.WithLabelValues("no_session").Inc()
		return nil, domain.ErrNoSession
	}

	items, err := s.cart.Items(ctx)
	if err != nil {
		metrics.CheckoutsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("checkout: %w", err)
	}
	if len(items) == 0 {
		metrics.CheckoutsTotal.WithLabelValues("empty_cart").Inc()
		return nil, domain.ErrEmptyCart
	}

	if err := s.wait(ctx); err != nil {
		metrics.CheckoutsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("checkout: %w", err)
	}

	order := &domain.Order{
		ID:        newID("order", s.now()),
		Email:     sess.Email,
		Items:     items,
		Total:     domain.CartTotal(items),
		ItemCount: domain.CartItemCount(items),
		PlacedAt:  s.now().UTC(),
	}

	if err := s.cart.Clear(ctx); err != nil {
		metrics.CheckoutsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("checkout: %w", err)
	}

	metrics.CheckoutsTotal.WithLabelValues("success").Inc()
	metrics.CheckoutAmount.Observe(order.Total.InexactFloat64())
	s.logger.Info().
		Str("order_id", order.ID).
		Str("user_id", sess.ID).
		Str("total", order.Total.String()).
		Int("item_count", order.ItemCount).
		Msg("checkout completed")

	return order, nil
}

func (s *CheckoutService) wait(ctx context.Context) error {
	if s.delay == 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
