package domain

import (
	"path/filepath"
	"sync"
)

// CacheEntry is a logical location in the cache: bucket, key directory and key file.
type CacheEntry struct {
	root   string
	bucket Bucket
	dir    string
	file   string
}

// NewCacheEntry creates an entry below the given cache root.
func NewCacheEntry(root string, bucket Bucket, dir, file string) CacheEntry {
	return CacheEntry{root: root, bucket: bucket, dir: dir, file: file}
}

// Bucket returns the entry's bucket.
func (e CacheEntry) Bucket() Bucket {
	return e.bucket
}

// Dir returns the absolute directory that holds the entry.
func (e CacheEntry) Dir() string {
	return filepath.Join(e.root, string(e.bucket), e.dir)
}

// Path returns the absolute path of the entry.
func (e CacheEntry) Path() string {
	return filepath.Join(e.Dir(), e.file)
}

// ArchiveID identifies a published directory in the archive bucket.
type ArchiveID string

// String returns the identifier.
func (id ArchiveID) String() string {
	return string(id)
}

// Refresh controls whether existing cache entries may be reused.
type Refresh int

const (
	// RefreshNone reuses existing entries.
	RefreshNone Refresh = iota
	// RefreshAll ignores existing entries and rebuilds.
	RefreshAll
)

// IsNone reports whether cached entries may be reused.
func (r Refresh) IsNone() bool {
	return r == RefreshNone
}

// ScratchDir is private build space owned by a single build attempt.
// Ownership leaves the handle exactly once, through Take.
type ScratchDir struct {
	path string
	mu   sync.Mutex
	done bool
}

// NewScratchDir wraps an already created directory.
func NewScratchDir(path string) *ScratchDir {
	return &ScratchDir{path: path}
}

// Path returns the directory while the handle still owns it.
func (s *ScratchDir) Path() string {
	return s.path
}

// Take transfers ownership of the directory to the caller.
func (s *ScratchDir) Take() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return "", ErrScratchConsumed
	}
	s.done = true
	return s.path, nil
}
