// internal/cmdutil/run.go
package cmdutil

import (
	"context"

	"abtools-core/numbering"
	"abtools/internal/pipeline"
)

// RunStream runs the shared pipeline, applies a visitor, and streams results via send.
// It returns the number of kept outputs and the first error encountered.
func RunStream[T, U any](
	ctx context.Context,
	cfg pipeline.Config,
	inline []numbering.Query,
	seqFiles []string,
	work pipeline.WorkFunc[T],
	visit func(pipeline.Item[T]) (bool, U, error),
	send func(U) error,
) (int, error) {
	total := 0
	err := pipeline.Map(ctx, cfg, inline, seqFiles, work, func(it pipeline.Item[T]) error {
		keep, out, vErr := visit(it)
		if vErr != nil {
			return vErr
		}
		if !keep {
			return nil
		}
		if err := send(out); err != nil {
			return err
		}
		total++
		return nil
	})
	return total, err
}
