// Package kv defines the durable key/value surface used for per-session
// storefront state.
package kv

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrNotFound is returned by Get when the key is absent or expired.
var ErrNotFound = errors.New("kv: key not found")

// Store is implemented by the redis client and the SQL store.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Scoped prefixes every key with the given parts joined by ':'.
func Scoped(store Store, parts ...string) Store {
	clean := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			clean = append(clean, part)
		}
	}
	return scoped{store: store, prefix: strings.Join(clean, ":")}
}

type scoped struct {
	store  Store
	prefix string
}

func (s scoped) key(k string) string {
	if s.prefix == "" {
		return k
	}
	return s.prefix + ":" + k
}

func (s scoped) Get(ctx context.Context, key string) (string, error) {
	return s.store.Get(ctx, s.key(key))
}

func (s scoped) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.store.Set(ctx, s.key(key), value, ttl)
}

func (s scoped) Del(ctx context.Context, keys ...string) error {
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = s.key(k)
	}
	return s.store.Del(ctx, full...)
}

// WithDefaultTTL applies ttl to writes that do not set their own.
func WithDefaultTTL(store Store, ttl time.Duration) Store {
	return defaultTTL{Store: store, ttl: ttl}
}

type defaultTTL struct {
	Store
	ttl time.Duration
}

func (d defaultTTL) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = d.ttl
	}
	return d.Store.Set(ctx, key, value, ttl)
}
