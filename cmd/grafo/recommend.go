package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/internal/recommend"
)

// =============================================================================
// recommend
// =============================================================================

type recommendOptions struct {
	n    int
	json bool
}

func newRecommendCmd(root *rootOptions) *cobra.Command {
	opts := &recommendOptions{}
	cmd := &cobra.Command{
		Use:   "recommend <title>",
		Short: "Recommend titles similar to the best match for <title>",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, snap, release, err := root.snapshot(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			label, err := resolve(snap, strings.Join(args, " "))
			if err != nil {
				return err
			}
			recs, err := snap.Engine.Recommend(label, opts.n)
			if err != nil {
				return err
			}
			if opts.json {
				return writeJSON(cmd.OutOrStdout(), map[string]any{"title": label, "results": recs})
			}
			printRecommendations(cmd.OutOrStdout(), label, recs)
			return nil
		},
	}
	cmd.Flags().IntVarP(&opts.n, "number", "n", 0, "Number of results (default: recommend.top_n)")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Print JSON")
	return cmd
}

func printRecommendations(w io.Writer, label string, recs []recommend.Recommendation) {
	fmt.Fprintf(w, "Recommendations for %q:\n", label)
	if len(recs) == 0 {
		fmt.Fprintln(w, "  no similar titles")
		return
	}
	for i, r := range recs {
		fmt.Fprintf(w, "%3d. %-50s %8.4f\n", i+1, r.Label, r.Score)
	}
}

// =============================================================================
// explain
// =============================================================================

func newExplainCmd(root *rootOptions) *cobra.Command {
	opts := &recommendOptions{}
	cmd := &cobra.Command{
		Use:   "explain <title>",
		Short: "Show the signals behind each recommendation",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, snap, release, err := root.snapshot(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			label, err := resolve(snap, strings.Join(args, " "))
			if err != nil {
				return err
			}
			expl, err := snap.Engine.Explain(label, opts.n)
			if err != nil {
				return err
			}
			if opts.json {
				return writeJSON(cmd.OutOrStdout(), map[string]any{"title": label, "results": expl})
			}
			printExplanations(cmd.OutOrStdout(), label, expl)
			return nil
		},
	}
	cmd.Flags().IntVarP(&opts.n, "number", "n", 0, "Number of results (default: recommend.top_n)")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Print JSON")
	return cmd
}

func printExplanations(w io.Writer, label string, expl []recommend.Explanation) {
	fmt.Fprintf(w, "Recommendations for %q:\n", label)
	if len(expl) == 0 {
		fmt.Fprintln(w, "  no similar titles")
		return
	}
	for i, x := range expl {
		fmt.Fprintf(w, "%3d. %s  score=%.4f\n", i+1, x.Label, x.Score)
		fmt.Fprintf(w, "     adamic_adar=%.4f jaccard=%.4f text=%.4f applied=%.4f", x.Adamic, x.Jaccard, x.Text, x.TextApplied)
		switch {
		case x.Boosted:
			fmt.Fprint(w, " [franchise]")
		case x.Gated:
			fmt.Fprint(w, " [name ignored]")
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "     shared: %s\n", strings.Join(x.Shared, ", "))
	}
}

// =============================================================================
// search
// =============================================================================

func newSearchCmd(root *rootOptions) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Find catalog titles: exact, then prefix, then substring matches",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, snap, release, err := root.snapshot(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			term := strings.Join(args, " ")
			hits := snap.Index.Search(term, limit)
			out := cmd.OutOrStdout()
			if len(hits) == 0 {
				fmt.Fprintf(out, "No titles match %q\n", term)
				return nil
			}
			for _, h := range hits {
				fmt.Fprintln(out, h)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "l", 10, "Maximum number of results")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
