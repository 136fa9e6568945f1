package wiring_test

import (
	"context"
	"testing"

	"github.com/grindlemire/graft"
	"github.com/stretchr/testify/require"
	"go.trai.ch/envcache/internal/app"
	"go.trai.ch/envcache/internal/core/domain"
	_ "go.trai.ch/envcache/internal/wiring"
)

// TestGraftDependencies ensures that the dependency injection graph is valid.
func TestGraftDependencies(t *testing.T) {
	// graft.AssertDepsValid infers the dependency ID from the package name of the type used in
	// Dep[T]. Every adapter provides an interface from the shared ports package, so the check
	// reports false positives for this layout.
	t.Skip("Skipping Graft validation due to static analysis limitation with shared ports package")
	graft.AssertDepsValid(t, "../../internal")
}

// TestComponentsResolve builds the whole graph against a throwaway cache root.
func TestComponentsResolve(t *testing.T) {
	t.Setenv(domain.CacheDirEnv, t.TempDir())

	components, _, err := graft.ExecuteFor[*app.Components](context.Background())
	require.NoError(t, err)
	require.NotNil(t, components.App)
	require.NotNil(t, components.Logger)
}
