package worker

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"speechalign/internal/progress"

	"golang.org/x/sync/errgroup"
)

// processConcurrent converts inputs with bounded parallelism. Results keep
// the input order.
func processConcurrent(ctx context.Context, opts Options, tracker *progress.Tracker) ([]Result, error) {
	slog.Info("starting concurrent conversion",
		"files", len(opts.Inputs),
		"max_concurrent", opts.MaxConcurrent)

	if err := ensureDir(opts.OutputDir); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	results := make([]Result, len(opts.Inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.MaxConcurrent)

	for i, input := range opts.Inputs {
		i, input := i, input
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			out, err := convertFile(gctx, input, opts)
			if err != nil {
				return err
			}
			results[i] = Result{Input: input, Output: out}
			tracker.Add(1)

			slog.Debug("file completed",
				"file", fmt.Sprintf("%d/%d", i+1, len(opts.Inputs)),
				"name", filepath.Base(input))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
