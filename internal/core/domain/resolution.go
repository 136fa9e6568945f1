package domain

import "slices"

// Resolution is the concrete set of distributions satisfying a set of requirements.
// The order of distributions carries no meaning.
type Resolution struct {
	distributions []Distribution
}

// NewResolution creates a resolution from the given distributions.
func NewResolution(dists ...Distribution) *Resolution {
	return &Resolution{distributions: slices.Clone(dists)}
}

// Distributions returns the distributions in their original order.
func (r *Resolution) Distributions() []Distribution {
	return slices.Clone(r.distributions)
}

// Len returns the number of distributions.
func (r *Resolution) Len() int {
	return len(r.distributions)
}

// Sorted returns the distributions in canonical order.
func (r *Resolution) Sorted() []Distribution {
	sorted := make([]Distribution, 0, len(r.distributions))
	for _, d := range r.distributions {
		sorted = append(sorted, d.canonical())
	}
	slices.SortStableFunc(sorted, CompareDistributions)
	return sorted
}

// Get returns the distribution with the given name, if present.
func (r *Resolution) Get(name PackageName) (Distribution, bool) {
	for _, d := range r.distributions {
		if d.Name == name {
			return d, true
		}
	}
	return Distribution{}, false
}

// MutableReferences returns the distributions whose content can change without their reference changing.
func (r *Resolution) MutableReferences() []Distribution {
	var mutable []Distribution
	for _, d := range r.distributions {
		if d.Source.Kind.IsMutable() {
			mutable = append(mutable, d)
		}
	}
	return mutable
}
