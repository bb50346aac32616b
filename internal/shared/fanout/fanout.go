// Package fanout runs independent units of work concurrently and joins them.
package fanout

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// DefaultLimit bounds concurrent calls when callers pass a non-positive limit.
const DefaultLimit = 8

// Map applies fn to every item with at most limit calls in flight. It waits for
// every call to return before reporting, so no work is left running in the
// background. Results keep the order of items; the first error observed wins.
//
// The context passed to fn is not cancelled when a sibling fails: each item is
// independent and callers decide whether partial completion is acceptable.
func Map[T, R any](ctx context.Context, limit int, items []T, fn func(ctx context.Context, item T) (R, error)) ([]R, error) {
	if len(items) == 0 {
		return nil, nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	results := make([]R, len(items))
	var g errgroup.Group
	g.SetLimit(limit)
	for i, item := range items {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := fn(ctx, item)
			if err != nil {
				return err
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
