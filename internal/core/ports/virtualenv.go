package ports

import "go.trai.ch/envcache/internal/core/domain"

// CreateOptions controls how a new environment is laid out.
type CreateOptions struct {
	// Prompt is the shell prompt recorded in the configuration; empty records none.
	Prompt string
	// RemoveExisting removes a conflicting directory at the target first.
	RemoveExisting bool
	// SystemSitePackages lets the environment see the base installation's packages.
	SystemSitePackages bool
	// Relocatable records the environment as movable and makes installed scripts
	// locate the interpreter relative to themselves.
	Relocatable bool
}

// Virtualenv creates, loads and configures environments on disk.
//
//go:generate go run go.uber.org/mock/mockgen -source=virtualenv.go -destination=mocks/mock_virtualenv.go -package=mocks
type Virtualenv interface {
	// Create lays out a new environment at dir backed by the given interpreter.
	Create(dir string, interpreter *domain.Interpreter, opts CreateOptions) (*domain.Environment, error)
	// Load opens an existing environment rooted at root.
	Load(root string) (*domain.Environment, error)
	// SetConfig writes a key into the environment's configuration file, replacing any previous value.
	SetConfig(env *domain.Environment, key, value string) error
	// Config reads the environment's configuration file.
	Config(env *domain.Environment) (map[string]string, error)
}
