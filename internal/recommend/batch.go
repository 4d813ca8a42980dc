package recommend

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// RecommendBatch answers many queries at once over the shared graph. Results
// are indexed like labels. workers <= 0 means GOMAXPROCS.
func (e *Engine) RecommendBatch(ctx context.Context, labels []string, n, workers int) ([][]Recommendation, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	out := make([][]Recommendation, len(labels))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, label := range labels {
		i, label := i, label
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			recs, err := e.Recommend(label, n)
			if err != nil {
				return err
			}
			out[i] = recs
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
