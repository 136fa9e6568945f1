package domain

import (
	"cmp"
	"slices"
)

// InstalledDistribution is a distribution found in an environment's site-packages.
type InstalledDistribution struct {
	Name    PackageName
	Version string
	// URL is the direct reference recorded at install time, if any.
	URL string
	// MetadataDir is the .dist-info directory describing the installation.
	MetadataDir string
}

// SyncPlan is the set of changes that brings an environment in line with a resolution.
type SyncPlan struct {
	Install   []Distribution
	Remove    []InstalledDistribution
	Unchanged []InstalledDistribution
}

// IsEmpty reports whether the plan changes nothing.
func (p SyncPlan) IsEmpty() bool {
	return len(p.Install) == 0 && len(p.Remove) == 0
}

// PlanSync diffs the installed distributions against a resolution.
// Installed distributions that do not satisfy their resolved counterpart are removed and
// reinstalled; in exact mode, distributions absent from the resolution are removed as well.
// The plan is sorted by package name.
func PlanSync(installed []InstalledDistribution, resolution *Resolution, mode Modifications) SyncPlan {
	var plan SyncPlan
	seen := make(map[PackageName]bool, len(installed))

	for _, inst := range installed {
		seen[inst.Name] = true
		want, ok := resolution.Get(inst.Name)
		switch {
		case !ok:
			if mode == ModificationsExact {
				plan.Remove = append(plan.Remove, inst)
			} else {
				plan.Unchanged = append(plan.Unchanged, inst)
			}
		case satisfies(inst, want):
			plan.Unchanged = append(plan.Unchanged, inst)
		default:
			plan.Remove = append(plan.Remove, inst)
			plan.Install = append(plan.Install, want)
		}
	}

	for _, d := range resolution.Sorted() {
		if !seen[d.Name] {
			plan.Install = append(plan.Install, d)
		}
	}

	byName := func(a, b InstalledDistribution) int { return cmp.Compare(a.Name, b.Name) }
	slices.SortFunc(plan.Remove, byName)
	slices.SortFunc(plan.Unchanged, byName)
	slices.SortStableFunc(plan.Install, CompareDistributions)
	return plan
}

func satisfies(inst InstalledDistribution, want Distribution) bool {
	if want.Source.Kind.IsMutable() {
		return false
	}
	if want.Version != "" && inst.Version != want.Version {
		return false
	}
	if want.Source.Kind == SourceURL {
		return inst.URL == want.Source.URL
	}
	return inst.URL == ""
}
