package service

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/matespatagonicos/storefront/internal/core/ports"
)

// Scoper narrows a store to one client's key namespace.
type Scoper func(kv ports.KeyValueStore, clientID string) ports.KeyValueStore

// Factory builds stores over a single KV medium. Catalog and accounts use the
// shared namespace; session and cart use the client's.
type Factory struct {
	kv            ports.KeyValueStore
	scope         Scoper
	passwords     ports.PasswordScheme
	checkoutDelay time.Duration
	logger        zerolog.Logger
}

var _ ports.StoreFactory = (*Factory)(nil)

func NewFactory(kv ports.KeyValueStore, scope Scoper, passwords ports.PasswordScheme, checkoutDelay time.Duration, logger zerolog.Logger) *Factory {
	return &Factory{
		kv:            kv,
		scope:         scope,
		passwords:     passwords,
		checkoutDelay: checkoutDelay,
		logger:        logger,
	}
}

func (f *Factory) Catalog() ports.CatalogService {
	return NewCatalogService(f.kv, f.logger.With().Str("store", "catalog").Logger())
}

func (f *Factory) Accounts(clientID string) ports.AccountService {
	log := f.logger.With().Str("store", "accounts").Str("client_id", clientID).Logger()
	return NewAccountService(f.kv, f.scope(f.kv, clientID), f.passwords, log)
}

func (f *Factory) Cart(clientID string) ports.CartService {
	log := f.logger.With().Str("store", "cart").Str("client_id", clientID).Logger()
	return NewCartService(f.scope(f.kv, clientID), log)
}

func (f *Factory) Checkout(clientID string) ports.CheckoutService {
	log := f.logger.With().Str("store", "checkout").Str("client_id", clientID).Logger()
	return NewCheckoutService(f.Accounts(clientID), f.Cart(clientID), f.checkoutDelay, log)
}
