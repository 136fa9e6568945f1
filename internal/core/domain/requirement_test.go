package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/envcache/internal/core/domain"
)

func TestParseRequirement(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		want      domain.Requirement
		wantErr   bool
		pinned    string
		hasPinned bool
	}{
		{
			name:      "exact pin",
			raw:       "requests==2.32.3",
			want:      domain.Requirement{Name: "requests", Specifier: "==2.32.3"},
			pinned:    "2.32.3",
			hasPinned: true,
		},
		{
			name: "range",
			raw:  "Django >= 4.2, <5",
			want: domain.Requirement{Name: "django", Specifier: ">=4.2,<5"},
		},
		{
			name:      "extras and marker",
			raw:       "Typing_Extensions[all]==4.12.2 ; python_version < '3.13'",
			want:      domain.Requirement{Name: "typing-extensions", Specifier: "==4.12.2"},
			pinned:    "4.12.2",
			hasPinned: true,
		},
		{
			name: "bare name",
			raw:  "idna",
			want: domain.Requirement{Name: "idna"},
		},
		{
			name: "wildcard pin",
			raw:  "idna==3.*",
			want: domain.Requirement{Name: "idna", Specifier: "==3.*"},
		},
		{
			name: "arbitrary equality",
			raw:  "idna===3.7",
			want: domain.Requirement{Name: "idna", Specifier: "===3.7"},
		},
		{
			name: "url reference",
			raw:  "pkg @ https://example.com/pkg-1.0-py3-none-any.whl",
			want: domain.Requirement{Name: "pkg", Direct: &domain.Source{
				Kind: domain.SourceURL, URL: "https://example.com/pkg-1.0-py3-none-any.whl",
			}},
		},
		{
			name: "git reference",
			raw:  "tool @ git+https://example.com/tool.git@v1",
			want: domain.Requirement{Name: "tool", Direct: &domain.Source{
				Kind: domain.SourceGit, URL: "git+https://example.com/tool.git@v1",
			}},
		},
		{
			name: "file reference",
			raw:  "local @ file:///src/local",
			want: domain.Requirement{Name: "local", Direct: &domain.Source{
				Kind: domain.SourcePath, Path: "/src/local",
			}},
		},
		{name: "empty", raw: "  ", wantErr: true},
		{name: "only marker", raw: "; sys_platform == 'linux'", wantErr: true},
		{name: "invalid name", raw: "re$quests==1.0", wantErr: true},
		{name: "unsupported reference", raw: "pkg @ svn://example.com/pkg", wantErr: true},
		{name: "missing reference", raw: "pkg @ ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ParseRequirement(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrInvalidRequirement)
				return
			}
			require.NoError(t, err)
			tt.want.Raw = tt.raw
			assert.Equal(t, tt.want, got)

			pinned, ok := got.PinnedVersion()
			assert.Equal(t, tt.hasPinned, ok)
			assert.Equal(t, tt.pinned, pinned)
		})
	}
}

func TestParseRequirements_StopsOnFirstError(t *testing.T) {
	_, err := domain.ParseRequirements([]string{"a==1.0", "", "b==2.0"})
	require.ErrorIs(t, err, domain.ErrInvalidRequirement)

	reqs, err := domain.ParseRequirements([]string{"a==1.0", "b==2.0"})
	require.NoError(t, err)
	assert.Len(t, reqs, 2)
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, domain.PackageName("zope-interface"), domain.NormalizeName("Zope.Interface"))
	assert.Equal(t, domain.PackageName("a-b"), domain.NormalizeName("A__-.B"))
}

func TestEnvironmentSpec_IsEmpty(t *testing.T) {
	assert.True(t, domain.EnvironmentSpec{}.IsEmpty())
	assert.True(t, domain.EnvironmentSpec{Constraints: []domain.Requirement{{Name: "a"}}}.IsEmpty())
	assert.False(t, domain.EnvironmentSpec{Requirements: []domain.Requirement{{Name: "a"}}}.IsEmpty())
}
