package hop

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Batch executes several orchestrations concurrently, one per receiver.
// Runs are fully independent: each owns its hop account and its own
// sequence of network calls, and a failing run does not cancel its
// siblings. The returned slice is index-aligned with orchs; the error is
// the first run failure observed, if any.
func Batch(ctx context.Context, orchs []*Orchestrator, amountSOL, hopFeeSOL float64) ([]*Result, error) {
	results := make([]*Result, len(orchs))

	var g errgroup.Group
	for i, o := range orchs {
		i, o := i, o
		g.Go(func() error {
			res, err := o.Execute(ctx, amountSOL, hopFeeSOL)
			results[i] = res
			return err
		})
	}
	err := g.Wait()
	return results, err
}
