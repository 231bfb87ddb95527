// Package manage applies desired states to Cherry Servers resources.
//
// Each resource class has a manager whose Apply method inspects the current
// provider state and performs the minimal create/update/delete/attach/detach
// calls. Batch operations run sequentially and fail fast: the first error
// aborts the remaining targets and surfaces unchanged.
package manage

import "context"

// Outcome is the result of one state transition on a single target. Record
// is nil when the transition was a no-op on an already-absent target.
type Outcome[T any] struct {
	Changed bool
	Record  *T
}

// Result aggregates outcomes across a batch of targets. Changed is true iff
// any individual outcome changed provider state.
type Result[T any] struct {
	Changed bool
	Records []*T
}

// Collect applies op to every target in order and folds the outcomes into a
// single Result. Any error aborts the batch immediately; targets already
// processed are not rolled back. No-op outcomes without a record contribute
// nothing to the record list.
func Collect[K, T any](ctx context.Context, targets []K, op func(context.Context, K) (Outcome[T], error)) (Result[T], error) {
	var res Result[T]
	for _, target := range targets {
		out, err := op(ctx, target)
		if err != nil {
			return Result[T]{}, err
		}
		if out.Record != nil {
			res.Records = append(res.Records, out.Record)
		}
		res.Changed = res.Changed || out.Changed
	}
	return res, nil
}

// Repeat applies op count times, folding outcomes like Collect. Used where a
// batch is defined by a count rather than a target list.
func Repeat[T any](ctx context.Context, count int, op func(context.Context) (Outcome[T], error)) (Result[T], error) {
	var res Result[T]
	for i := 0; i < count; i++ {
		out, err := op(ctx)
		if err != nil {
			return Result[T]{}, err
		}
		res.Records = append(res.Records, out.Record)
		res.Changed = res.Changed || out.Changed
	}
	return res, nil
}
