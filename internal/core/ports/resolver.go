package ports

import (
	"context"

	"go.trai.ch/envcache/internal/core/domain"
)

// ResolveRequest carries everything a resolver needs to turn a spec into a resolution.
type ResolveRequest struct {
	Spec        domain.EnvironmentSpec
	Interpreter *domain.Interpreter
	// BuildConstraints pin the versions of build-time dependencies.
	BuildConstraints []domain.Requirement
	Settings         domain.Settings
	Concurrency      domain.Concurrency
	Logger           ResolveLogger
}

// Resolver turns abstract requirements into a concrete set of distributions.
//
//go:generate go run go.uber.org/mock/mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type Resolver interface {
	// Resolve resolves the request's spec for the request's interpreter.
	Resolve(ctx context.Context, req ResolveRequest) (*domain.Resolution, error)
}
