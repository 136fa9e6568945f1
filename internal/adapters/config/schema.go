package config

import "time"

// SupportedVersion is the only project file version understood by the loader.
const SupportedVersion = "1"

// ProjectFile represents the structure of the envcache.yaml configuration file.
type ProjectFile struct {
	Version          string          `yaml:"version"`
	Python           string          `yaml:"python"`
	Dependencies     []string        `yaml:"dependencies"`
	Constraints      []string        `yaml:"constraints"`
	BuildConstraints []string        `yaml:"build-constraints"`
	IndexURL         string          `yaml:"index-url"`
	Offline          bool            `yaml:"offline"`
	Timeout          time.Duration   `yaml:"timeout"`
	Concurrency      *ConcurrencyDTO `yaml:"concurrency"`
}

// ConcurrencyDTO represents the concurrency limits in the configuration.
type ConcurrencyDTO struct {
	Downloads int `yaml:"downloads"`
	Installs  int `yaml:"installs"`
}
