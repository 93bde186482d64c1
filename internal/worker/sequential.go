package worker

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"speechalign/internal/progress"
)

// processSequential converts inputs one at a time.
func processSequential(ctx context.Context, opts Options, tracker *progress.Tracker) ([]Result, error) {
	if err := ensureDir(opts.OutputDir); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	results := make([]Result, 0, len(opts.Inputs))
	for i, input := range opts.Inputs {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		slog.Info("converting file",
			"file", fmt.Sprintf("%d/%d", i+1, len(opts.Inputs)),
			"name", filepath.Base(input))

		out, err := convertFile(ctx, input, opts)
		if err != nil {
			return nil, err
		}
		results = append(results, Result{Input: input, Output: out})
		tracker.Add(1)
	}
	return results, nil
}
