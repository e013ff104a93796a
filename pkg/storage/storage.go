// Package storage provides the durable client-side key-value store the
// session survives restarts in. Two backends are supported: a local
// sqlite file for desktop use and redis for headless deployments.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/otomarket/storefront-client/pkg/config"
)

// Fixed keys for the persisted session. Hydration reads these on
// startup; logout deletes them.
const (
	KeySessionToken = "session.token"
	KeySessionUser  = "session.user"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("storage: key not found")

// KV is the durable key-value surface the session store persists into.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// Open selects and boots the configured backend.
func Open(ctx context.Context, cfg *config.Config) (KV, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	switch cfg.Storage.Backend {
	case config.StorageBackendSQLite:
		return OpenSQLite(cfg.Storage.Path)
	case config.StorageBackendRedis:
		return OpenRedis(ctx, cfg.Redis)
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}
