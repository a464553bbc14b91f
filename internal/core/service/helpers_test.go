package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/matespatagonicos/storefront/internal/infrastructure/kv"
)

var discardLogger = zerolog.Nop()

var errBackendDown = errors.New("backend down")

// failingKV fails every operation.
type failingKV struct{}

func (failingKV) Get(context.Context, string) (string, bool, error) { return "", false, errBackendDown }
func (failingKV) Set(context.Context, string, string) error         { return errBackendDown }
func (failingKV) Delete(context.Context, string) error              { return errBackendDown }
func (failingKV) Ping(context.Context) error                        { return errBackendDown }

func rawSlot(store *kv.Memory, key string) (string, bool) {
	v, ok, _ := store.Get(context.Background(), key)
	return v, ok
}
