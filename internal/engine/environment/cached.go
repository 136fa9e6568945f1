package environment

import "go.trai.ch/envcache/internal/core/domain"

// CachedEnvironment is an environment published in the cache.
// It is shared by every caller with the same key and must not be modified.
type CachedEnvironment struct {
	env *domain.Environment
}

// NewCachedEnvironment wraps an environment that has been published in the cache.
func NewCachedEnvironment(env *domain.Environment) *CachedEnvironment {
	return &CachedEnvironment{env: env}
}

// Environment returns the underlying environment.
func (c *CachedEnvironment) Environment() *domain.Environment {
	return c.env
}

// Root returns the environment directory.
func (c *CachedEnvironment) Root() string {
	return c.env.Root
}

// Scripts returns the directory holding the environment's executables.
func (c *CachedEnvironment) Scripts() string {
	return c.env.Scripts
}

// SitePackages returns the environment's package-install directories.
func (c *CachedEnvironment) SitePackages() []string {
	return c.env.SitePackages
}

// Interpreter returns the environment's own interpreter.
func (c *CachedEnvironment) Interpreter() *domain.Interpreter {
	return c.env.Interpreter
}
