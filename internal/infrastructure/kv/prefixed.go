package kv

import (
	"context"

	"github.com/matespatagonicos/storefront/internal/core/ports"
)

// Prefixed namespaces every key of an underlying store.
type Prefixed struct {
	next   ports.KeyValueStore
	prefix string
}

func NewPrefixed(next ports.KeyValueStore, prefix string) *Prefixed {
	return &Prefixed{next: next, prefix: prefix}
}

// ForClient scopes next to the slots of one client: client:<id>:<key>.
func ForClient(next ports.KeyValueStore, clientID string) ports.KeyValueStore {
	return NewPrefixed(next, "client:"+clientID+":")
}

func (p *Prefixed) Get(ctx context.Context, key string) (string, bool, error) {
	return p.next.Get(ctx, p.prefix+key)
}

func (p *Prefixed) Set(ctx context.Context, key, value string) error {
	return p.next.Set(ctx, p.prefix+key, value)
}

func (p *Prefixed) Delete(ctx context.Context, key string) error {
	return p.next.Delete(ctx, p.prefix+key)
}

func (p *Prefixed) Ping(ctx context.Context) error {
	return p.next.Ping(ctx)
}
