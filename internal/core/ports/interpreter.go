package ports

import (
	"context"

	"go.trai.ch/envcache/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=interpreter.go -destination=mocks/mock_interpreter.go -package=mocks

// InterpreterQuerier inspects an interpreter executable.
type InterpreterQuerier interface {
	// Query runs the executable and returns the identity it reports.
	// It fails with domain.ErrInterpreterQueryFailed if the path is not a valid runtime.
	Query(ctx context.Context, executable string) (*domain.Interpreter, error)
}

// BaseLocator finds the executable of the base installation underlying an interpreter.
type BaseLocator interface {
	// Base returns the base executable path. For an interpreter that is not inside a
	// virtual environment this is its own SysExecutable.
	Base(interpreter *domain.Interpreter) (string, error)
	// Canonicalize returns the path used to derive the interpreter cache key.
	Canonicalize(executable string) (string, error)
}
