package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"

	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/internal/recommend"
	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/pkg/graph"
)

// SampleTitles returns the labels of the first n title nodes, n <= 0 for all.
func SampleTitles(g *graph.Graph, n int) []string {
	var out []string
	for _, node := range g.NodesOfType(graph.TypeTitle) {
		if n > 0 && len(out) == n {
			break
		}
		out = append(out, node.Label())
	}
	return out
}

// ---------------------- COBERTURA ----------------------

// CountBin is how many titles got exactly Recommendations results.
type CountBin struct {
	Recommendations int
	Titles          int
}

type CoverageReport struct {
	Titles int
	// Empty counts titles without a single recommendation.
	Empty     int
	Mean      float64
	Histogram []CountBin // indexed by result count, 0..TopN
}

// Coverage asks the engine for recommendations for every sampled title and
// tallies how many results each got.
func Coverage(ctx context.Context, e *recommend.Engine, titles []string, workers int) (CoverageReport, error) {
	results, err := e.RecommendBatch(ctx, titles, 0, workers)
	if err != nil {
		return CoverageReport{}, fmt.Errorf("coverage: %w", err)
	}

	topN := e.Config().TopN
	hist := make([]CountBin, topN+1)
	for i := range hist {
		hist[i].Recommendations = i
	}
	counts := make([]float64, len(results))
	rep := CoverageReport{Titles: len(results)}
	for i, recs := range results {
		counts[i] = float64(len(recs))
		hist[len(recs)].Titles++
		if len(recs) == 0 {
			rep.Empty++
		}
	}
	if len(counts) > 0 {
		rep.Mean = stat.Mean(counts, nil)
	}
	rep.Histogram = hist
	return rep, nil
}

// ---------------------- SPEEDUP ----------------------

type SpeedupPoint struct {
	Workers int
	Elapsed time.Duration
	// Speedup is Elapsed of the first point divided by this one.
	Speedup float64
}

// Speedup times a batch over titles once per worker count. The result cache
// is disabled so every run does the full work.
func Speedup(ctx context.Context, e *recommend.Engine, titles []string, workerCounts []int) ([]SpeedupPoint, error) {
	cfg := e.Config()
	cfg.CacheSize = 0
	bench, err := recommend.NewEngine(e.Graph(), cfg, zerolog.Nop())
	if err != nil {
		return nil, err
	}

	var out []SpeedupPoint
	for _, workers := range workerCounts {
		start := time.Now()
		if _, err := bench.RecommendBatch(ctx, titles, 0, workers); err != nil {
			return nil, fmt.Errorf("speedup with %d workers: %w", workers, err)
		}
		out = append(out, SpeedupPoint{Workers: workers, Elapsed: time.Since(start)})
	}

	if len(out) > 0 {
		base := out[0].Elapsed.Seconds()
		for i := range out {
			if s := out[i].Elapsed.Seconds(); s > 0 {
				out[i].Speedup = base / s
			}
		}
	}
	return out, nil
}
