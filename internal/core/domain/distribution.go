package domain

import (
	"cmp"
	"regexp"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
)

var nameSeparators = regexp.MustCompile(`[-_.]+`)

// PackageName is a normalized package name: lower case, separator runs collapsed to "-".
type PackageName string

// NormalizeName normalizes a raw package name.
func NormalizeName(raw string) PackageName {
	return PackageName(nameSeparators.ReplaceAllString(strings.ToLower(strings.TrimSpace(raw)), "-"))
}

// String returns the normalized name.
func (n PackageName) String() string {
	return string(n)
}

// SourceKind describes where a distribution comes from.
type SourceKind string

const (
	// SourceRegistry is a distribution fetched from a package index.
	SourceRegistry SourceKind = "registry"
	// SourceURL is a distribution fetched from a direct archive URL.
	SourceURL SourceKind = "url"
	// SourceGit is a distribution built from a version control checkout.
	SourceGit SourceKind = "git"
	// SourcePath is a distribution built from a local archive file.
	SourcePath SourceKind = "path"
	// SourceDirectory is a distribution built from a local source tree.
	SourceDirectory SourceKind = "directory"
)

// IsMutable reports whether the referenced content can change without the reference changing.
// Such sources are hashed by reference only.
func (k SourceKind) IsMutable() bool {
	switch k {
	case SourceGit, SourcePath, SourceDirectory:
		return true
	default:
		return false
	}
}

func (k SourceKind) rank() int {
	switch k {
	case SourceRegistry:
		return 0
	case SourceURL:
		return 1
	case SourceGit:
		return 2
	case SourcePath:
		return 3
	case SourceDirectory:
		return 4
	default:
		return 5
	}
}

// Source locates a distribution.
type Source struct {
	Kind     SourceKind `json:"kind"`
	URL      string     `json:"url,omitempty"`
	Path     string     `json:"path,omitempty"`
	Editable bool       `json:"editable,omitempty"`
}

// Distribution is one concrete, resolved package.
type Distribution struct {
	Name    PackageName `json:"name"`
	Version string      `json:"version,omitempty"`
	Source  Source      `json:"source"`
	Hashes  []string    `json:"hashes,omitempty"`
}

// String renders the distribution as an installable requirement.
func (d Distribution) String() string {
	switch d.Source.Kind {
	case SourceRegistry, "":
		return d.Name.String() + "==" + d.Version
	case SourcePath, SourceDirectory:
		return d.Name.String() + " @ file://" + d.Source.Path
	default:
		return d.Name.String() + " @ " + d.Source.URL
	}
}

// canonical returns a copy with order-insensitive fields sorted.
func (d Distribution) canonical() Distribution {
	d.Hashes = slices.Clone(d.Hashes)
	slices.Sort(d.Hashes)
	return d
}

// CompareDistributions defines the total order used to canonicalize resolutions:
// name, then version, then source, then hashes.
func CompareDistributions(a, b Distribution) int {
	if c := cmp.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	if c := compareVersions(a.Version, b.Version); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Source.Kind.rank(), b.Source.Kind.rank()); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Source.Kind, b.Source.Kind); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Source.URL, b.Source.URL); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Source.Path, b.Source.Path); c != 0 {
		return c
	}
	if a.Source.Editable != b.Source.Editable {
		if a.Source.Editable {
			return 1
		}
		return -1
	}
	return slices.Compare(a.canonical().Hashes, b.canonical().Hashes)
}

// compareVersions orders parseable versions semantically before unparseable ones,
// and falls back to lexical order so the result stays a total order.
func compareVersions(a, b string) int {
	va, errA := semver.NewVersion(a)
	vb, errB := semver.NewVersion(b)
	switch {
	case errA == nil && errB == nil:
		if c := va.Compare(vb); c != 0 {
			return c
		}
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	return strings.Compare(a, b)
}
