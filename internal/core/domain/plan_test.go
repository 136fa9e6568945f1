package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/envcache/internal/core/domain"
)

func TestPlanSync(t *testing.T) {
	resolution := domain.NewResolution(
		registry("requests", "2.32.3"),
		registry("idna", "3.7"),
		domain.Distribution{Name: "local", Source: domain.Source{Kind: domain.SourceDirectory, Path: "/src/local"}},
	)
	installed := []domain.InstalledDistribution{
		{Name: "requests", Version: "2.32.3"},
		{Name: "idna", Version: "3.6"},
		{Name: "local", Version: "0.1.0", URL: "file:///src/local"},
		{Name: "six", Version: "1.16.0"},
	}

	t.Run("exact", func(t *testing.T) {
		plan := domain.PlanSync(installed, resolution, domain.ModificationsExact)

		assert.Equal(t, []domain.PackageName{"idna", "local", "six"}, installedNames(plan.Remove))
		assert.Equal(t, []domain.PackageName{"idna", "local"}, distNames(plan.Install))
		assert.Equal(t, []domain.PackageName{"requests"}, installedNames(plan.Unchanged))
		assert.False(t, plan.IsEmpty())
	})

	t.Run("sufficient keeps extraneous", func(t *testing.T) {
		plan := domain.PlanSync(installed, resolution, domain.ModificationsSufficient)

		assert.Equal(t, []domain.PackageName{"idna", "local"}, installedNames(plan.Remove))
		assert.Equal(t, []domain.PackageName{"requests", "six"}, installedNames(plan.Unchanged))
	})

	t.Run("empty environment", func(t *testing.T) {
		plan := domain.PlanSync(nil, resolution, domain.ModificationsExact)

		assert.Empty(t, plan.Remove)
		assert.Equal(t, []domain.PackageName{"idna", "local", "requests"}, distNames(plan.Install))
	})

	t.Run("already satisfied", func(t *testing.T) {
		plan := domain.PlanSync(
			[]domain.InstalledDistribution{{Name: "idna", Version: "3.7"}},
			domain.NewResolution(registry("idna", "3.7")),
			domain.ModificationsExact,
		)
		assert.True(t, plan.IsEmpty())
	})

	t.Run("url source must match", func(t *testing.T) {
		want := domain.Distribution{Name: "pkg", Version: "1.0",
			Source: domain.Source{Kind: domain.SourceURL, URL: "https://example.com/pkg-1.0.whl"}}
		plan := domain.PlanSync(
			[]domain.InstalledDistribution{{Name: "pkg", Version: "1.0"}},
			domain.NewResolution(want),
			domain.ModificationsExact,
		)
		assert.Len(t, plan.Install, 1)

		plan = domain.PlanSync(
			[]domain.InstalledDistribution{{Name: "pkg", Version: "1.0", URL: "https://example.com/pkg-1.0.whl"}},
			domain.NewResolution(want),
			domain.ModificationsExact,
		)
		assert.True(t, plan.IsEmpty())
	})
}

func installedNames(dists []domain.InstalledDistribution) []domain.PackageName {
	names := make([]domain.PackageName, 0, len(dists))
	for _, d := range dists {
		names = append(names, d.Name)
	}
	return names
}

func distNames(dists []domain.Distribution) []domain.PackageName {
	names := make([]domain.PackageName, 0, len(dists))
	for _, d := range dists {
		names = append(names, d.Name)
	}
	return names
}
