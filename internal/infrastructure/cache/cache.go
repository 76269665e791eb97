// Package cache provides a small byte-value cache used for shared reference
// data. Two implementations exist: an in-process map for single-node and
// test setups, and Redis for deployments with more than one replica.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-value cache with per-key TTL. A miss is (nil, false, nil),
// never an error; errors mean the cache itself failed and callers should
// fall through to the source of truth.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
