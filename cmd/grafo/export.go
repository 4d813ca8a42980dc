package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/internal/builder"
	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/internal/export"
	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/pkg/graph"
)

type exportOptions struct {
	out   string
	focus string
	n     int
}

func newExportCmd(root *rootOptions) *cobra.Command {
	opts := &exportOptions{}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the graphs as GEXF files for Gephi",
		Long: `Write the full title graph, the global country×genre graph, its
projection from the full graph and one graph per region as GEXF files.
With --focus, also write the decision graph of one title's recommendations.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, snap, release, err := root.snapshot(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			out := cmd.OutOrStdout()
			write := func(name, desc string, g *graph.Graph, viz *export.Viz) error {
				path := filepath.Join(opts.out, name)
				if err := export.WriteGEXFFile(path, g, export.Meta{Description: desc}, viz); err != nil {
					return err
				}
				fmt.Fprintf(out, "%-40s %6d nodes %7d edges\n", path, g.NumNodes(), g.NumEdges())
				return nil
			}

			if err := write("full.gexf", "Titles and their attributes", snap.Graph, nil); err != nil {
				return err
			}
			cg := builder.BuildCountryGenre(snap.Records, cfg.Graph.Aggregate)
			if err := write("country_genre.gexf", "Country × genre co-occurrence", cg, nil); err != nil {
				return err
			}
			if err := write("projection.gexf", "Country × genre projection of the title graph", builder.Project(snap.Graph), nil); err != nil {
				return err
			}
			for _, region := range builder.Regions() {
				g := builder.BuildRegion(snap.Records, region, cfg.Graph.RegionMinEdgeWeight)
				if err := write("region_"+region.Name+".gexf", "Country × genre, "+region.Name, g, nil); err != nil {
					return err
				}
			}

			if opts.focus == "" {
				return nil
			}
			label, err := resolve(snap, opts.focus)
			if err != nil {
				return err
			}
			recs, err := snap.Engine.Recommend(label, opts.n)
			if err != nil {
				return err
			}
			labels := make([]string, len(recs))
			for i, r := range recs {
				labels[i] = r.Label
			}
			sub, viz, err := export.DecisionGraph(snap.Graph, label, labels)
			if err != nil {
				return err
			}
			return write("decision_"+fileSafe(label)+".gexf", "Why "+label+" leads to its recommendations", sub, viz)
		},
	}
	cmd.Flags().StringVarP(&opts.out, "out", "o", "data/gephi", "Output directory")
	cmd.Flags().StringVar(&opts.focus, "focus", "", "Title to draw a decision graph for")
	cmd.Flags().IntVarP(&opts.n, "number", "n", 0, "Recommendations in the decision graph (default: recommend.top_n)")
	return cmd
}

// fileSafe lowercases s and keeps letters, digits, dashes and underscores.
func fileSafe(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ' || r == '/' || r == '\\' || r == ':':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "title"
	}
	return b.String()
}
