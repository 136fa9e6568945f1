package domain

import "time"

// Environment is a materialized runtime environment on disk.
type Environment struct {
	// Root is the environment directory.
	Root string
	// Interpreter describes the environment's own executable and prefix.
	Interpreter *Interpreter
	// Scripts is the directory holding the environment's executables.
	Scripts string
	// SitePackages are the package-install directories, purelib first.
	SitePackages []string
	// ConfigPath is the environment configuration file.
	ConfigPath string
}

// Modifications selects how an installer reconciles an environment with a resolution.
type Modifications int

const (
	// ModificationsSufficient installs missing packages and leaves extraneous ones.
	ModificationsSufficient Modifications = iota
	// ModificationsExact installs missing packages and removes extraneous ones.
	ModificationsExact
)

// String returns the mode name.
func (m Modifications) String() string {
	if m == ModificationsExact {
		return "exact"
	}
	return "sufficient"
}

// Concurrency bounds the parallelism of delegated resolution and installation work.
type Concurrency struct {
	Downloads int `yaml:"downloads" json:"downloads"`
	Installs  int `yaml:"installs" json:"installs"`
}

// DefaultConcurrency returns the limits used when nothing is configured.
func DefaultConcurrency() Concurrency {
	return Concurrency{Downloads: 8, Installs: 4}
}

// Settings carries resolver and installer settings.
type Settings struct {
	IndexURL string
	Offline  bool
	Timeout  time.Duration
}
