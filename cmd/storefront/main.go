// @title                       Mates Patagonicos Storefront API
// @version                     1.0
// @description                 Catalog, accounts, cart and checkout over a key-value medium.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/matespatagonicos/storefront/internal/api"
	"github.com/matespatagonicos/storefront/internal/core/service"
	"github.com/matespatagonicos/storefront/internal/infrastructure/kv"
	"github.com/matespatagonicos/storefront/internal/pkg/config"
	"github.com/matespatagonicos/storefront/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "storefront",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := kv.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.KVBackend).Msg("failed to open kv backend")
	}
	defer func() {
		if err := closeStore(context.Background()); err != nil {
			log.Warn().Err(err).Msg("failed to close kv backend")
		}
	}()

	passwords, err := service.NewPasswordScheme(cfg.PasswordScheme)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid password scheme")
	}

	stores := service.NewFactory(store, kv.ForClient, passwords, cfg.CheckoutDelay, log)
	e := api.NewRouter(api.Deps{
		Stores:         stores,
		KV:             store,
		Backend:        cfg.KVBackend,
		JWTSecret:      cfg.JWTSecret,
		ClientTokenTTL: cfg.ClientTokenTTL,
		Logger:         log,
	})

	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("backend", cfg.KVBackend).
			Str("password_scheme", passwords.Name()).
			Msg("storefront listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("storefront stopped")
}
