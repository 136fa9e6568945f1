package ports

import (
	"context"
	"io"

	"go.trai.ch/envcache/internal/core/domain"
)

// Executor defines the interface for running commands inside an environment.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs command with the environment's scripts directory first on PATH.
	//
	// It returns an error wrapping domain.ErrCommandFailed if the command exits unsuccessfully.
	Execute(ctx context.Context, env *domain.Environment, command []string, stdout, stderr io.Writer) error
}
