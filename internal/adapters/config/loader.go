// Package config provides the project file loader for envcache.
package config

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/envcache/internal/core/domain"
	"go.trai.ch/envcache/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
	// Getenv looks up environment overrides; os.Getenv when nil.
	Getenv func(string) string
}

var _ ports.ConfigLoader = (*Loader)(nil)

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, Getenv: os.Getenv}
}

// Load finds envcache.yaml in cwd or its closest ancestor and returns the project it describes.
func (l *Loader) Load(cwd string) (*domain.Project, error) {
	path, err := findProjectFile(cwd)
	if err != nil {
		return nil, err
	}

	var file ProjectFile
	if err := readAndUnmarshalYAML(path, &file); err != nil {
		return nil, err
	}
	return l.project(path, &file)
}

func (l *Loader) project(path string, file *ProjectFile) (*domain.Project, error) {
	if file.Version != "" && file.Version != SupportedVersion {
		return nil, zerr.With(zerr.Wrap(domain.ErrProjectFileParseFailed, "unsupported project file version"),
			"version", file.Version)
	}

	requirements, err := parseList(path, "dependencies", file.Dependencies)
	if err != nil {
		return nil, err
	}
	constraints, err := parseList(path, "constraints", file.Constraints)
	if err != nil {
		return nil, err
	}
	buildConstraints, err := parseList(path, "build-constraints", file.BuildConstraints)
	if err != nil {
		return nil, err
	}
	if len(requirements) == 0 {
		l.Logger.Warn("no dependencies declared in " + path)
	}

	root := filepath.Dir(path)
	return &domain.Project{
		Root:             root,
		Path:             path,
		Python:           l.python(root, file.Python),
		Spec:             domain.EnvironmentSpec{Requirements: requirements, Constraints: constraints},
		BuildConstraints: buildConstraints,
		Settings: domain.Settings{
			IndexURL: file.IndexURL,
			Offline:  file.Offline,
			Timeout:  file.Timeout,
		},
		Concurrency: concurrency(file.Concurrency),
	}, nil
}

// python picks the interpreter: the project file first, then the environment, then the default.
// Relative paths are anchored at the project root; bare names are looked up on PATH later.
func (l *Loader) python(root, configured string) string {
	python := configured
	if python == "" && l.Getenv != nil {
		python = l.Getenv(domain.PythonEnv)
	}
	switch {
	case python == "":
		return domain.DefaultPython
	case filepath.IsAbs(python) || !strings.ContainsAny(python, `/\`):
		return python
	default:
		return filepath.Join(root, python)
	}
}

func concurrency(dto *ConcurrencyDTO) domain.Concurrency {
	c := domain.DefaultConcurrency()
	if dto == nil {
		return c
	}
	if dto.Downloads > 0 {
		c.Downloads = dto.Downloads
	}
	if dto.Installs > 0 {
		c.Installs = dto.Installs
	}
	return c
}

func parseList(path, field string, raw []string) ([]domain.Requirement, error) {
	reqs, err := domain.ParseRequirements(raw)
	if err != nil {
		return nil, zerr.With(zerr.With(errors.Join(domain.ErrProjectFileParseFailed, err), "path", path), "field", field)
	}
	return reqs, nil
}

func findProjectFile(cwd string) (string, error) {
	current := cwd
	for {
		candidate := filepath.Join(current, domain.ProjectFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}
	return "", zerr.With(zerr.Wrap(domain.ErrProjectFileNotFound, "searched directory and its parents"), "cwd", cwd)
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](path string, target *T) error {
	// #nosec G304 -- path is discovered by the loader
	data, err := os.ReadFile(path)
	if err != nil {
		return zerr.With(errors.Join(domain.ErrProjectFileReadFailed, err), "path", path)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return zerr.With(errors.Join(domain.ErrProjectFileParseFailed, err), "path", path)
	}
	return nil
}
