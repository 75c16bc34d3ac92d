package plan

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"accessor-generator/internal/analyze"
)

// SynthesizeAll synthesizes every declaration with at most workers running
// at once (workers <= 0 means one per declaration). Results are indexed like
// decls. The first failure cancels the remaining work and is returned
// wrapped with the aggregate name; no partial results are returned.
func SynthesizeAll(ctx context.Context, decls []*analyze.Aggregate, opts Options, workers int) ([]*AccessorSet, error) {
	opts = opts.withDefaults()
	sets := make([]*AccessorSet, len(decls))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i, decl := range decls {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			set, err := Synthesize(decl, opts)
			if err != nil {
				return fmt.Errorf("synthesizing %s: %w", aggregateName(decl), err)
			}

			sets[i] = set

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return sets, nil
}

// SynthesizeEach synthesizes every declaration independently and reports
// each outcome, so one failing aggregate does not hide the others.
// errs[i] is nil when sets[i] is valid.
func SynthesizeEach(ctx context.Context, decls []*analyze.Aggregate, opts Options, workers int) ([]*AccessorSet, []error) {
	opts = opts.withDefaults()
	sets := make([]*AccessorSet, len(decls))
	errs := make([]error, len(decls))

	var g errgroup.Group
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i, decl := range decls {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}

			sets[i], errs[i] = Synthesize(decl, opts)

			return nil
		})
	}

	_ = g.Wait()

	return sets, errs
}

func aggregateName(decl *analyze.Aggregate) string {
	if decl == nil {
		return "<nil>"
	}

	return decl.Name
}
