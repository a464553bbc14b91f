package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/matespatagonicos/storefront/internal/core/domain"
	"github.com/matespatagonicos/storefront/internal/core/ports"
	"github.com/matespatagonicos/storefront/internal/pkg/metrics"
)

// Slot keys. Session and cart keys are further scoped per client by the Factory.
const (
	ProductsKey = "storefront:products"
	AccountsKey = "storefront:accounts"
	SessionKey  = "storefront:session"
	CartKey     = "storefront:cart"
)

var errNullSlot = errors.New("slot holds null")

// slot reads and writes one JSON value kept under a single key.
type slot[T any] struct {
	kv   ports.KeyValueStore
	key  string
	name string
	log  zerolog.Logger
}

func newSlot[T any](kv ports.KeyValueStore, key, name string, log zerolog.Logger) slot[T] {
	return slot[T]{kv: kv, key: key, name: name, log: log}
}

// load decodes the slot. A value that fails to decode, or decodes to JSON null,
// is deleted and reported as absent; only medium errors are returned.
func (s slot[T]) load(ctx context.Context) (T, bool, error) {
	var zero T

	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return zero, false, fmt.Errorf("read %s: %w", s.name, err)
	}
	if !ok {
		return zero, false, nil
	}

	var v T
	err = json.Unmarshal([]byte(raw), &v)
	if err == nil && strings.TrimSpace(raw) == "null" {
		err = errNullSlot
	}
	if err != nil {
		s.log.Warn().
			Err(fmt.Errorf("%w: %v", domain.ErrCorruptData, err)).
			Str("slot", s.name).
			Msg("discarding corrupt slot")
		metrics.CorruptSlotRecoveriesTotal.WithLabelValues(s.name).Inc()
		if err := s.kv.Delete(ctx, s.key); err != nil {
			return zero, false, fmt.Errorf("reset %s: %w", s.name, err)
		}
		return zero, false, nil
	}
	return v, true, nil
}

func (s slot[T]) save(ctx context.Context, v T) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.name, err)
	}
	if err := s.kv.Set(ctx, s.key, string(b)); err != nil {
		return fmt.Errorf("write %s: %w", s.name, err)
	}
	return nil
}

func (s slot[T]) clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("clear %s: %w", s.name, err)
	}
	return nil
}
