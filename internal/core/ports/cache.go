package ports

import (
	"context"

	"go.trai.ch/envcache/internal/core/domain"
)

// Cache is the content-addressed storage that published environments live in.
//
//go:generate go run go.uber.org/mock/mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks
type Cache interface {
	// Root returns the cache root directory.
	Root() string
	// Entry maps a bucket and two key levels to an entry. It touches no files.
	Entry(bucket domain.Bucket, dir, file string) domain.CacheEntry
	// ResolveLink follows an entry's indirection to its archive directory.
	// It fails with domain.ErrCacheMiss when the entry is absent or dangling.
	ResolveLink(path string) (string, error)
	// ScratchDir creates private build space inside the cache.
	ScratchDir() (*domain.ScratchDir, error)
	// EphemeralDir creates private space for a throwaway environment. It is never pruned,
	// so it stays valid for as long as the command using it runs.
	EphemeralDir() (*domain.ScratchDir, error)
	// Persist moves the scratch directory into the archive bucket and atomically
	// points the entry at it. The scratch handle is consumed.
	Persist(ctx context.Context, scratch *domain.ScratchDir, entryPath string) (domain.ArchiveID, error)
	// Archive returns the directory of a published archive.
	Archive(id domain.ArchiveID) string
}
