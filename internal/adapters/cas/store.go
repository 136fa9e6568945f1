// Package cas implements the content-addressed environment cache on the local filesystem.
package cas

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"go.trai.ch/envcache/internal/core/domain"
	"go.trai.ch/zerr"
)

// LinkMode selects how cache entries point at archives.
type LinkMode int

const (
	// LinkSymlink stores entries as relative symbolic links.
	LinkSymlink LinkMode = iota
	// LinkPointer stores entries as small files naming the archive.
	LinkPointer
)

// DefaultLinkMode returns the link mode for the running platform.
func DefaultLinkMode() LinkMode {
	if runtime.GOOS == "windows" {
		return LinkPointer
	}
	return LinkSymlink
}

// Option configures a Store.
type Option func(*Store)

// WithLinkMode overrides the platform link mode.
func WithLinkMode(mode LinkMode) Option {
	return func(s *Store) {
		s.linkMode = mode
	}
}

// Store implements ports.Cache and ports.CacheMaintainer below a root directory.
type Store struct {
	root     string
	linkMode LinkMode
}

// pointer is the on-disk form of an entry in LinkPointer mode.
type pointer struct {
	Archive domain.ArchiveID `json:"archive"`
}

// NewStore creates a store rooted at root, creating the directory if needed.
func NewStore(root string, opts ...Option) (*Store, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrCacheDirUnavailable, err), "root", root)
	}
	if err := os.MkdirAll(abs, domain.DirPerm); err != nil {
		return nil, zerr.With(errors.Join(domain.ErrCacheDirUnavailable, err), "root", abs)
	}

	s := &Store{root: abs, linkMode: DefaultLinkMode()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Root returns the cache root directory.
func (s *Store) Root() string {
	return s.root
}

// Entry maps a bucket and key levels to a cache entry.
func (s *Store) Entry(bucket domain.Bucket, dir, file string) domain.CacheEntry {
	return domain.NewCacheEntry(s.root, bucket, dir, file)
}

// Archive returns the directory of a published archive.
func (s *Store) Archive(id domain.ArchiveID) string {
	return filepath.Join(s.root, string(domain.ArchiveBucket), id.String())
}

// ScratchDir creates a fresh directory in the builds bucket.
// It lives on the same filesystem as the archive bucket, so publishing is a rename.
func (s *Store) ScratchDir() (*domain.ScratchDir, error) {
	return s.tempDir(domain.BuildsBucket)
}

// EphemeralDir creates a fresh directory in the ephemeral bucket.
func (s *Store) EphemeralDir() (*domain.ScratchDir, error) {
	return s.tempDir(domain.EphemeralBucket)
}

func (s *Store) tempDir(bucket domain.Bucket) (*domain.ScratchDir, error) {
	parent := filepath.Join(s.root, string(bucket))
	if err := os.MkdirAll(parent, domain.DirPerm); err != nil {
		return nil, zerr.With(errors.Join(domain.ErrScratchCreateFailed, err), "path", parent)
	}

	dir, err := os.MkdirTemp(parent, "")
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrScratchCreateFailed, err), "path", parent)
	}
	return domain.NewScratchDir(dir), nil
}

// ResolveLink follows an entry to its archive directory.
// Absent, dangling and malformed entries are all reported as domain.ErrCacheMiss.
func (s *Store) ResolveLink(path string) (string, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrCacheMiss, "entry not found"), "path", path)
	}

	var target string
	switch {
	case info.Mode()&fs.ModeSymlink != 0:
		link, err := os.Readlink(path)
		if err != nil {
			return "", zerr.With(zerr.Wrap(domain.ErrCacheMiss, "unreadable link"), "path", path)
		}
		if !filepath.IsAbs(link) {
			link = filepath.Join(filepath.Dir(path), link)
		}
		target = link
	case info.Mode().IsRegular():
		id, err := readPointer(path)
		if err != nil {
			return "", zerr.With(zerr.Wrap(domain.ErrCacheMiss, "malformed pointer"), "path", path)
		}
		target = s.Archive(id)
	default:
		return "", zerr.With(zerr.Wrap(domain.ErrCacheMiss, "entry is not a link"), "path", path)
	}

	stat, err := os.Stat(target)
	if err != nil || !stat.IsDir() {
		return "", zerr.With(zerr.Wrap(domain.ErrCacheMiss, "dangling entry"), "target", target)
	}
	return target, nil
}

// Persist moves the scratch directory into the archive bucket and atomically replaces
// the entry with a link to it. Concurrent publishers of the same entry each succeed;
// the last rename wins and earlier archives become unreachable until pruned.
func (s *Store) Persist(ctx context.Context, scratch *domain.ScratchDir, entryPath string) (domain.ArchiveID, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	src, err := scratch.Take()
	if err != nil {
		return "", err
	}

	id, err := newArchiveID()
	if err != nil {
		return "", zerr.With(errors.Join(domain.ErrPersistFailed, err), "path", src)
	}

	archive := s.Archive(id)
	if err := os.MkdirAll(filepath.Dir(archive), domain.DirPerm); err != nil {
		return "", zerr.With(errors.Join(domain.ErrPersistFailed, err), "path", archive)
	}
	// Prune dates unlinked archives by their modification time, so it starts at publication.
	now := time.Now()
	if err := os.Chtimes(src, now, now); err != nil {
		return "", zerr.With(errors.Join(domain.ErrPersistFailed, err), "path", src)
	}
	if err := os.Rename(src, archive); err != nil {
		return "", zerr.With(errors.Join(domain.ErrPersistFailed, err), "path", archive)
	}

	if err := s.link(archive, id, entryPath); err != nil {
		return "", zerr.With(errors.Join(domain.ErrLinkUpdateFailed, err), "path", entryPath)
	}
	return id, nil
}

// link writes the entry next to its final location and renames it into place.
func (s *Store) link(archive string, id domain.ArchiveID, entryPath string) error {
	dir := filepath.Dir(entryPath)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return err
	}

	suffix, err := newArchiveID()
	if err != nil {
		return err
	}
	tmp := entryPath + "." + suffix.String() + ".tmp"

	switch s.linkMode {
	case LinkPointer:
		data, err := json.Marshal(pointer{Archive: id})
		if err != nil {
			return err
		}
		if err := os.WriteFile(tmp, data, domain.FilePerm); err != nil {
			return err
		}
	default:
		rel, err := filepath.Rel(dir, archive)
		if err != nil {
			rel = archive
		}
		if err := os.Symlink(rel, tmp); err != nil {
			return err
		}
	}

	if err := os.Rename(tmp, entryPath); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

func readPointer(path string) (domain.ArchiveID, error) {
	//nolint:gosec // Path is derived from the cache root
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	var p pointer
	if err := json.Unmarshal(data, &p); err != nil {
		return "", err
	}
	if p.Archive == "" || strings.ContainsAny(p.Archive.String(), `/\`) {
		return "", zerr.New("invalid archive id")
	}
	return p.Archive, nil
}

var archiveEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

func newArchiveID() (domain.ArchiveID, error) {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", zerr.Wrap(err, "failed to generate archive id")
	}
	return domain.ArchiveID(strings.ToLower(archiveEncoding.EncodeToString(b[:]))), nil
}
