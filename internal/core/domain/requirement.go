package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// Requirement is a single, parsed dependency declaration.
type Requirement struct {
	Name PackageName
	// Specifier is the version specifier, e.g. "==2.32.3"; empty for direct references.
	Specifier string
	// Direct is set for "name @ url" references.
	Direct *Source
	// Raw is the original text.
	Raw string
}

// EnvironmentSpec is the declarative description of what an environment must contain.
type EnvironmentSpec struct {
	Requirements []Requirement
	Constraints  []Requirement
}

// IsEmpty reports whether the environment spec requires nothing.
func (s EnvironmentSpec) IsEmpty() bool {
	return len(s.Requirements) == 0
}

// ParseRequirement parses the subset of requirement syntax the cache understands:
// "name", "name==1.0" (any specifier), "name[extra]==1.0" and "name @ <url>".
// Environment markers after ";" are dropped.
func ParseRequirement(raw string) (Requirement, error) {
	text := strings.TrimSpace(raw)
	if before, _, ok := strings.Cut(text, ";"); ok {
		text = strings.TrimSpace(before)
	}
	if text == "" {
		return Requirement{}, zerr.With(zerr.Wrap(ErrInvalidRequirement, "empty requirement"), "requirement", raw)
	}

	if name, ref, ok := strings.Cut(text, "@"); ok && !strings.ContainsAny(name, "<>=!~") {
		source, err := parseDirectReference(strings.TrimSpace(ref))
		if err != nil {
			return Requirement{}, zerr.With(err, "requirement", raw)
		}
		n, err := parseName(name)
		if err != nil {
			return Requirement{}, zerr.With(err, "requirement", raw)
		}
		return Requirement{Name: n, Direct: &source, Raw: raw}, nil
	}

	idx := strings.IndexAny(text, "<>=!~ ")
	namePart, spec := text, ""
	if idx >= 0 {
		namePart, spec = text[:idx], strings.ReplaceAll(text[idx:], " ", "")
	}
	n, err := parseName(namePart)
	if err != nil {
		return Requirement{}, zerr.With(err, "requirement", raw)
	}
	return Requirement{Name: n, Specifier: spec, Raw: raw}, nil
}

// ParseRequirements parses every entry, failing on the first invalid one.
func ParseRequirements(raw []string) ([]Requirement, error) {
	reqs := make([]Requirement, 0, len(raw))
	for _, r := range raw {
		req, err := ParseRequirement(r)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

// PinnedVersion returns the exact version for "==X" specifiers without wildcards.
func (r Requirement) PinnedVersion() (string, bool) {
	v, ok := strings.CutPrefix(r.Specifier, "==")
	if !ok || strings.HasPrefix(v, "=") || v == "" || strings.ContainsAny(v, "*,<>!~") {
		return "", false
	}
	return v, true
}

func parseName(raw string) (PackageName, error) {
	name := strings.TrimSpace(raw)
	if before, _, ok := strings.Cut(name, "["); ok {
		name = before
	}
	if name == "" {
		return "", zerr.Wrap(ErrInvalidRequirement, "missing package name")
	}
	for _, c := range name {
		if !isNameRune(c) {
			return "", zerr.With(zerr.Wrap(ErrInvalidRequirement, "invalid package name"), "name", name)
		}
	}
	return NormalizeName(name), nil
}

func isNameRune(c rune) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-' || c == '_' || c == '.'
}

func parseDirectReference(ref string) (Source, error) {
	switch {
	case ref == "":
		return Source{}, zerr.Wrap(ErrInvalidRequirement, "missing direct reference")
	case strings.HasPrefix(ref, "git+"):
		return Source{Kind: SourceGit, URL: ref}, nil
	case strings.HasPrefix(ref, "file://"):
		return Source{Kind: SourcePath, Path: strings.TrimPrefix(ref, "file://")}, nil
	case strings.HasPrefix(ref, "https://"), strings.HasPrefix(ref, "http://"):
		return Source{Kind: SourceURL, URL: ref}, nil
	default:
		return Source{}, zerr.With(zerr.Wrap(ErrInvalidRequirement, "unsupported direct reference"), "reference", ref)
	}
}
