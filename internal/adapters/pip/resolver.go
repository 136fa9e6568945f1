// Package pip resolves pinned requirements and installs them with pip.
package pip

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/envcache/internal/core/domain"
	"go.trai.ch/envcache/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Resolver implements ports.Resolver for fully pinned specs.
// Every requirement must either pin an exact version, directly or through a constraint,
// or be a direct reference. It never contacts an index and does not add transitive
// dependencies: the environment spec is expected to be a complete lock.
type Resolver struct{}

// NewResolver creates a Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve turns the request's spec into a resolution.
func (r *Resolver) Resolve(ctx context.Context, req ports.ResolveRequest) (*domain.Resolution, error) {
	start := time.Now()

	pins, err := constraintPins(req.Spec.Constraints)
	if err != nil {
		return nil, err
	}

	byName := make(map[domain.PackageName]domain.Distribution, len(req.Spec.Requirements))
	order := make([]domain.PackageName, 0, len(req.Spec.Requirements))
	for _, requirement := range req.Spec.Requirements {
		d, err := toDistribution(requirement, pins)
		if err != nil {
			return nil, err
		}
		if prev, ok := byName[d.Name]; ok {
			if domain.CompareDistributions(prev, d) != 0 {
				return nil, zerr.With(zerr.Wrap(domain.ErrConflictingRequirements, "package requested twice"),
					"package", d.Name.String())
			}
			continue
		}
		byName[d.Name] = d
		order = append(order, d.Name)
	}

	dists := make([]domain.Distribution, 0, len(order))
	for _, name := range order {
		dists = append(dists, byName[name])
	}

	dists, err = checkLocalSources(ctx, dists, req.Concurrency.Downloads)
	if err != nil {
		return nil, err
	}

	resolution := domain.NewResolution(dists...)
	if req.Logger != nil {
		req.Logger.OnResolveComplete(resolution.Len(), time.Since(start))
	}
	return resolution, nil
}

func constraintPins(constraints []domain.Requirement) (map[domain.PackageName]string, error) {
	pins := make(map[domain.PackageName]string, len(constraints))
	for _, c := range constraints {
		version, ok := c.PinnedVersion()
		if !ok {
			continue
		}
		if prev, ok := pins[c.Name]; ok && prev != version {
			return nil, zerr.With(zerr.Wrap(domain.ErrConflictingRequirements, "constraints disagree"),
				"package", c.Name.String())
		}
		pins[c.Name] = version
	}
	return pins, nil
}

func toDistribution(req domain.Requirement, pins map[domain.PackageName]string) (domain.Distribution, error) {
	if req.Direct != nil {
		return domain.Distribution{Name: req.Name, Source: *req.Direct}, nil
	}

	version, pinned := req.PinnedVersion()
	constrained, hasConstraint := pins[req.Name]
	switch {
	case pinned && hasConstraint && version != constrained:
		return domain.Distribution{}, zerr.With(zerr.With(
			zerr.Wrap(domain.ErrConflictingRequirements, "requirement contradicts constraint"),
			"requirement", req.Raw), "constraint", constrained)
	case !pinned && hasConstraint:
		version = constrained
	case !pinned:
		return domain.Distribution{}, zerr.With(zerr.Wrap(domain.ErrUnpinnedRequirement, "pin it with =="),
			"requirement", req.Raw)
	}

	return domain.Distribution{
		Name:    req.Name,
		Version: version,
		Source:  domain.Source{Kind: domain.SourceRegistry},
	}, nil
}

// checkLocalSources verifies local references exist, tells directories from archives and
// makes their paths absolute.
func checkLocalSources(ctx context.Context, dists []domain.Distribution, limit int) ([]domain.Distribution, error) {
	g, _ := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i := range dists {
		if dists[i].Source.Kind != domain.SourcePath {
			continue
		}
		g.Go(func() error {
			path, err := filepath.Abs(dists[i].Source.Path)
			if err != nil {
				return zerr.With(errors.Join(domain.ErrLocalSourceNotFound, err), "path", dists[i].Source.Path)
			}
			info, err := os.Stat(path)
			if err != nil {
				return zerr.With(errors.Join(domain.ErrLocalSourceNotFound, err), "path", path)
			}
			dists[i].Source.Path = path
			if info.IsDir() {
				dists[i].Source.Kind = domain.SourceDirectory
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return dists, nil
}
