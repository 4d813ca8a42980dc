package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/internal/analysis"
	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/internal/builder"
)

// =============================================================================
// analyze
// =============================================================================

type analyzeOptions struct {
	out     string
	sample  int
	top     int
	workers int
}

func newAnalyzeCmd(root *rootOptions) *cobra.Command {
	opts := &analyzeOptions{}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Write graph statistics and recommendation coverage as CSV reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, snap, release, err := root.snapshot(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			var regions []analysis.NamedGraph
			for _, r := range builder.Regions() {
				regions = append(regions, analysis.NamedGraph{
					Name:  r.Name,
					Graph: builder.BuildRegion(snap.Records, r, cfg.Graph.RegionMinEdgeWeight),
				})
			}

			rep, err := analysis.Analyze(cmd.Context(), analysis.Input{
				Full:         snap.Graph,
				CountryGenre: builder.BuildCountryGenre(snap.Records, cfg.Graph.Aggregate),
				Regions:      regions,
				Engine:       snap.Engine,
				TopN:         opts.top,
				Sample:       opts.sample,
				Workers:      opts.workers,
			})
			if err != nil {
				return err
			}
			if err := analysis.WriteReport(opts.out, rep); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Full graph:      %d nodes, %d edges\n", rep.FullNodes, rep.FullEdges)
			fmt.Fprintf(out, "Country × genre: %d nodes, %d edges\n", rep.AggregateNodes, rep.AggregateEdges)
			fmt.Fprintf(out, "Degree:          mean %.2f, median %.2f, max %.0f\n", rep.Degrees.Mean, rep.Degrees.Median, rep.Degrees.Max)
			fmt.Fprintf(out, "Coverage:        %d of %d sampled titles without recommendations\n", rep.Coverage.Empty, rep.Coverage.Titles)
			fmt.Fprintf(out, "Reports written to %s\n", opts.out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.out, "out", "o", "data/reports", "Output directory")
	cmd.Flags().IntVar(&opts.sample, "sample", 100, "Titles evaluated for coverage")
	cmd.Flags().IntVar(&opts.top, "top", 10, "Rows in the top-N tables")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "Coverage workers (default: GOMAXPROCS)")
	return cmd
}

// =============================================================================
// bench
// =============================================================================

type benchOptions struct {
	workers []int
	sample  int
	out     string
}

func newBenchCmd(root *rootOptions) *cobra.Command {
	opts := &benchOptions{}
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time a batch of recommendations for several worker counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, snap, release, err := root.snapshot(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			titles := analysis.SampleTitles(snap.Graph, opts.sample)
			points, err := analysis.Speedup(cmd.Context(), snap.Engine, titles, opts.workers)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d titles\n", len(titles))
			fmt.Fprintf(out, "%8s %14s %8s\n", "workers", "elapsed", "speedup")
			for _, p := range points {
				fmt.Fprintf(out, "%8d %14s %8.2f\n", p.Workers, p.Elapsed.Round(time.Microsecond), p.Speedup)
			}
			if opts.out == "" {
				return nil
			}
			if err := analysis.WriteSpeedup(opts.out, points); err != nil {
				return err
			}
			fmt.Fprintf(out, "Written to %s\n", opts.out)
			return nil
		},
	}
	cmd.Flags().IntSliceVarP(&opts.workers, "workers", "w", []int{1, 2, 4, 8, 16}, "Worker counts to compare")
	cmd.Flags().IntVar(&opts.sample, "sample", 200, "Titles per batch")
	cmd.Flags().StringVarP(&opts.out, "out", "o", filepath.Join("data", "reports", "speedup.csv"), "CSV output; empty to skip")
	return cmd
}
