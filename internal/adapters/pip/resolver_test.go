package pip_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/envcache/internal/adapters/pip"
	"go.trai.ch/envcache/internal/core/domain"
	"go.trai.ch/envcache/internal/core/ports"
	"go.trai.ch/envcache/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func mustParse(t *testing.T, raw ...string) []domain.Requirement {
	t.Helper()
	reqs, err := domain.ParseRequirements(raw)
	require.NoError(t, err)
	return reqs
}

func resolve(t *testing.T, requirements, constraints []string) (*domain.Resolution, error) {
	t.Helper()
	return pip.NewResolver().Resolve(context.Background(), ports.ResolveRequest{
		Spec: domain.EnvironmentSpec{
			Requirements: mustParse(t, requirements...),
			Constraints:  mustParse(t, constraints...),
		},
		Concurrency: domain.DefaultConcurrency(),
	})
}

func TestResolver_Pinned(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockResolveLogger(ctrl)
	log.EXPECT().OnResolveComplete(3, gomock.Any())

	resolution, err := pip.NewResolver().Resolve(context.Background(), ports.ResolveRequest{
		Spec: domain.EnvironmentSpec{
			Requirements: mustParse(t, "requests==2.32.3", "IDNA==3.7", "pkg @ https://example.com/pkg-1.0-py3-none-any.whl"),
		},
		Logger: log,
	})
	require.NoError(t, err)

	requests, ok := resolution.Get("requests")
	require.True(t, ok)
	assert.Equal(t, "2.32.3", requests.Version)
	assert.Equal(t, domain.SourceRegistry, requests.Source.Kind)

	idna, ok := resolution.Get("idna")
	require.True(t, ok)
	assert.Equal(t, "3.7", idna.Version)

	pkg, ok := resolution.Get("pkg")
	require.True(t, ok)
	assert.Equal(t, domain.SourceURL, pkg.Source.Kind)
}

func TestResolver_ConstraintPins(t *testing.T) {
	resolution, err := resolve(t, []string{"urllib3", "certifi>=2024"}, []string{"urllib3==2.2.2", "certifi==2024.7.4"})
	require.NoError(t, err)

	urllib3, ok := resolution.Get("urllib3")
	require.True(t, ok)
	assert.Equal(t, "2.2.2", urllib3.Version)
	certifi, ok := resolution.Get("certifi")
	require.True(t, ok)
	assert.Equal(t, "2024.7.4", certifi.Version)
}

func TestResolver_Errors(t *testing.T) {
	tests := []struct {
		name         string
		requirements []string
		constraints  []string
		want         error
	}{
		{name: "unpinned", requirements: []string{"requests>=2"}, want: domain.ErrUnpinnedRequirement},
		{name: "wildcard", requirements: []string{"requests==2.*"}, want: domain.ErrUnpinnedRequirement},
		{
			name:         "requirement contradicts constraint",
			requirements: []string{"idna==3.7"},
			constraints:  []string{"idna==3.6"},
			want:         domain.ErrConflictingRequirements,
		},
		{
			name:         "constraints disagree",
			requirements: []string{"idna"},
			constraints:  []string{"idna==3.6", "idna==3.7"},
			want:         domain.ErrConflictingRequirements,
		},
		{
			name:         "requested twice",
			requirements: []string{"idna==3.6", "idna==3.7"},
			want:         domain.ErrConflictingRequirements,
		},
		{
			name:         "missing local source",
			requirements: []string{"local @ file:///does/not/exist"},
			want:         domain.ErrLocalSourceNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolve(t, tt.requirements, tt.constraints)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestResolver_DuplicateIdenticalRequirements(t *testing.T) {
	resolution, err := resolve(t, []string{"idna==3.7", "idna == 3.7"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, resolution.Len())
}

func TestResolver_LocalSources(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "pkg-1.0.tar.gz")
	require.NoError(t, os.WriteFile(archive, []byte("x"), 0o600))
	tree := filepath.Join(dir, "tree")
	require.NoError(t, os.MkdirAll(tree, 0o750))

	resolution, err := resolve(t, []string{"pkg @ file://" + archive, "tree @ file://" + tree}, nil)
	require.NoError(t, err)

	pkg, ok := resolution.Get("pkg")
	require.True(t, ok)
	assert.Equal(t, domain.SourcePath, pkg.Source.Kind)
	assert.Equal(t, archive, pkg.Source.Path)

	src, ok := resolution.Get("tree")
	require.True(t, ok)
	assert.Equal(t, domain.SourceDirectory, src.Source.Kind)
	assert.Len(t, resolution.MutableReferences(), 2)
}
