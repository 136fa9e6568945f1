package environment

import (
	"fmt"

	"go.trai.ch/envcache/internal/core/domain"
)

// LookupResult is the outcome of a cache lookup: either a found environment or a miss.
type LookupResult struct {
	env *CachedEnvironment
}

// Found reports whether the lookup produced an environment.
func (r LookupResult) Found() bool {
	return r.env != nil
}

// Environment returns the found environment, or nil on a miss.
func (r LookupResult) Environment() *CachedEnvironment {
	return r.env
}

// Lookup checks the cache for a published environment at entry.
// It fails open: an absent, dangling or corrupt entry is a miss, never an error,
// and a refresh request misses without touching the filesystem.
func (b *Builder) Lookup(entry domain.CacheEntry, refresh domain.Refresh) LookupResult {
	if !refresh.IsNone() {
		b.logger.Debug("cache refresh requested, rebuilding " + entry.Path())
		return LookupResult{}
	}

	root, err := b.cache.ResolveLink(entry.Path())
	if err != nil {
		b.logger.Debug(fmt.Sprintf("cache miss for %s: %v", entry.Path(), err))
		return LookupResult{}
	}

	env, err := b.venv.Load(root)
	if err != nil {
		b.logger.Debug(fmt.Sprintf("ignoring unusable cached environment %s: %v", root, err))
		return LookupResult{}
	}

	b.logger.Debug("using cached environment " + root)
	return LookupResult{env: NewCachedEnvironment(env)}
}
