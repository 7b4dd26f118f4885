// Package storage persists the player's settings as string key/value pairs.
//
// Backends:
//   - memory (tests, terminal fallback)
//   - sqlite (default, one file per deployment)
//   - redis (shared deployments)
//
// Values are JSON documents written by the Settings adapter; backends treat
// them as opaque strings.
package storage

import (
	"context"
	"errors"
	"sync"
)

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown storage backend")

// KV is a string key/value store.
type KV interface {
	Put(ctx context.Context, key, value string) error
	// Get reports ok=false, err=nil for an absent key.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Close() error
}

// memory is an in-memory KV. Contents are lost on restart.
type memory struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemory() KV {
	return &memory{values: make(map[string]string)}
}

func (m *memory) Put(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *memory) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memory) Close() error { return nil }

// scoped prefixes every key so several players can share one store.
type scoped struct {
	KV
	prefix string
}

// Scoped namespaces kv under prefix. Keys become prefix + ":" + key.
func Scoped(kv KV, prefix string) KV {
	return scoped{KV: kv, prefix: prefix}
}

func (s scoped) Put(ctx context.Context, key, value string) error {
	return s.KV.Put(ctx, s.prefix+":"+key, value)
}

func (s scoped) Get(ctx context.Context, key string) (string, bool, error) {
	return s.KV.Get(ctx, s.prefix+":"+key)
}

// Close is a no-op; the shared store is closed by its owner.
func (s scoped) Close() error { return nil }
