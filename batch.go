package pointbsp

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/pointbsp/geom"
)

// BatchOptions contains options for batch queries.
type BatchOptions struct {
	// Concurrency is the maximum number of queries running in parallel.
	// Values below 1 default to GOMAXPROCS.
	Concurrency int

	// Search configures every query of the batch.
	Search []func(o *SearchOptions)
}

// NearestBatch answers one nearest-point query per entry of queries,
// fanning out over the immutable tree. Results are index-aligned with the
// queries. The tree must not be rebuilt while a batch is in flight.
func (t *Tree) NearestBatch(ctx context.Context, queries []geom.Vec3, optFns ...func(o *BatchOptions)) ([]NearestResult, error) {
	opts := applyBatchOptions(optFns)
	results := make([]NearestResult, len(queries))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)

	for i, q := range queries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			res, err := t.Nearest(q, opts.Search...)
			if err != nil {
				return err
			}

			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// KNearestBatch answers one k-nearest query per entry of queries. Results are
// index-aligned with the queries.
func (t *Tree) KNearestBatch(ctx context.Context, queries []geom.Vec3, k int, optFns ...func(o *BatchOptions)) ([]KNearestResult, error) {
	opts := applyBatchOptions(optFns)
	results := make([]KNearestResult, len(queries))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)

	for i, q := range queries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			res, err := t.KNearest(q, k, opts.Search...)
			if err != nil {
				return err
			}

			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func applyBatchOptions(optFns []func(o *BatchOptions)) BatchOptions {
	var opts BatchOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Concurrency < 1 {
		opts.Concurrency = runtime.GOMAXPROCS(0)
	}

	return opts
}
