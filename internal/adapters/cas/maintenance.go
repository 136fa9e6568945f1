package cas

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"go.trai.ch/envcache/internal/core/domain"
	"go.trai.ch/envcache/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const removeConcurrency = 4

// ArchiveGrace is the minimum age of an unlinked archive before Prune removes it. A publisher
// renames its archive into place before linking it, so a younger archive may be about to be linked.
const ArchiveGrace = time.Hour

// Clean removes every bucket owned by the cache. Files outside the buckets are left alone.
func (s *Store) Clean(ctx context.Context) error {
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(removeConcurrency)

	for _, bucket := range domain.Buckets() {
		path := filepath.Join(s.root, string(bucket))
		g.Go(func() error {
			if err := os.RemoveAll(path); err != nil {
				return zerr.With(zerr.Wrap(err, "failed to remove cache bucket"), "path", path)
			}
			return nil
		})
	}
	return g.Wait()
}

// Prune removes dangling entries, archives no entry links to, and scratch builds
// last modified more than maxAge ago. Unlinked archives are kept until they are older than
// both maxAge and ArchiveGrace. Ephemeral environments are never pruned.
func (s *Store) Prune(ctx context.Context, maxAge time.Duration) (ports.PruneStats, error) {
	var stats ports.PruneStats

	live, links, err := s.liveArchives()
	if err != nil {
		return stats, err
	}
	stats.Links = links

	archives, err := readDir(filepath.Join(s.root, string(domain.ArchiveBucket)))
	if err != nil {
		return stats, err
	}

	var removedArchives, removedBuilds atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(removeConcurrency)

	now := time.Now()
	archiveCutoff := now.Add(-max(maxAge, ArchiveGrace))
	for _, e := range archives {
		if live[e.Name()] || !olderThan(e, archiveCutoff) {
			continue
		}
		path := filepath.Join(s.root, string(domain.ArchiveBucket), e.Name())
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := os.RemoveAll(path); err != nil {
				return zerr.With(zerr.Wrap(err, "failed to remove archive"), "path", path)
			}
			removedArchives.Add(1)
			return nil
		})
	}

	builds, err := readDir(filepath.Join(s.root, string(domain.BuildsBucket)))
	if err != nil {
		return stats, errors.Join(err, g.Wait())
	}
	cutoff := now.Add(-maxAge)
	for _, e := range builds {
		if !olderThan(e, cutoff) {
			continue
		}
		path := filepath.Join(s.root, string(domain.BuildsBucket), e.Name())
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := os.RemoveAll(path); err != nil {
				return zerr.With(zerr.Wrap(err, "failed to remove scratch build"), "path", path)
			}
			removedBuilds.Add(1)
			return nil
		})
	}

	err = g.Wait()
	stats.Archives = int(removedArchives.Load())
	stats.Builds = int(removedBuilds.Load())
	return stats, err
}

// liveArchives walks the environments bucket, returning the archive ids still linked
// and removing entries whose archive is gone.
func (s *Store) liveArchives() (map[string]bool, int, error) {
	live := make(map[string]bool)
	removed := 0
	root := filepath.Join(s.root, string(domain.EnvironmentsBucket))

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(path) == ".tmp" {
			return nil
		}

		target, err := s.ResolveLink(path)
		if err != nil {
			if rmErr := os.Remove(path); rmErr == nil {
				removed++
			}
			return nil
		}
		live[filepath.Base(target)] = true
		return nil
	})
	if err != nil {
		return nil, removed, zerr.With(zerr.Wrap(err, "failed to scan cache entries"), "path", root)
	}
	return live, removed, nil
}

// olderThan reports whether e was last modified before cutoff. Unreadable entries count as young.
func olderThan(e os.DirEntry, cutoff time.Time) bool {
	info, err := e.Info()
	return err == nil && info.ModTime().Before(cutoff)
}

func readDir(path string) ([]os.DirEntry, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read cache bucket"), "path", path)
	}
	return entries, nil
}
