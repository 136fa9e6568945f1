package ports

import (
	"context"
	"time"
)

// PruneStats reports what a prune removed.
type PruneStats struct {
	// Links are environment entries whose archive no longer exists.
	Links int
	// Archives are published environments no entry points at.
	Archives int
	// Builds are abandoned scratch directories.
	Builds int
}

// CacheMaintainer evicts data from the cache. Acquisition never evicts.
//
//go:generate go run go.uber.org/mock/mockgen -source=maintenance.go -destination=mocks/mock_maintenance.go -package=mocks
type CacheMaintainer interface {
	// Clean removes every bucket owned by the cache.
	Clean(ctx context.Context) error
	// Prune removes unreachable archives, dangling entries and scratch builds older than maxAge.
	Prune(ctx context.Context, maxAge time.Duration) (PruneStats, error)
}
