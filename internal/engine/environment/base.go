package environment

import (
	"context"
	"errors"
	"fmt"

	"go.trai.ch/envcache/internal/core/domain"
	"go.trai.ch/zerr"
)

// BaseInterpreter returns the interpreter of the base installation underlying interp.
// Cached environments are always keyed by and created from the base interpreter, so two
// virtual environments sharing a base share cache entries.
//
// If interp already is its own base, the same pointer is returned and nothing is queried.
func (b *Builder) BaseInterpreter(ctx context.Context, interp *domain.Interpreter) (*domain.Interpreter, error) {
	basePath, err := b.locator.Base(interp)
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrInterpreterResolution, err), "executable", interp.SysExecutable)
	}

	if basePath == interp.SysExecutable {
		b.logger.Debug(fmt.Sprintf("caching via base interpreter: `%s`", interp.SysExecutable))
		return interp, nil
	}

	base, err := b.querier.Query(ctx, basePath)
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrInterpreterResolution, err), "executable", basePath)
	}
	b.logger.Debug(fmt.Sprintf("caching via base interpreter: `%s`", base.SysExecutable))
	return base, nil
}
