package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/internal/catalog"
	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/pkg/database"
)

// =============================================================================
// import
// =============================================================================

func newImportCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Load the catalog CSV into MongoDB, replacing the titles collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.config()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			recs, err := catalog.LoadCSV(ctx, cfg.Dataset.Path, catalog.Options{Workers: cfg.Dataset.Workers})
			if err != nil {
				return err
			}
			store, err := database.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
			if err != nil {
				return err
			}
			defer func() {
				closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = store.Close(closeCtx)
			}()

			n, err := catalog.ImportMongo(ctx, store, recs)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d titles into %s.titles\n", n, cfg.Mongo.Database)
			return nil
		},
	}
}

// =============================================================================
// clean
// =============================================================================

func newCleanCmd(root *rootOptions) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Normalise the raw catalog CSV into a compact cleaned file",
		Long: `Read the raw catalog with a pool of workers, trim and split the list
columns, fill blank titles and write the result with only the columns the
graph uses.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.config()
			if err != nil {
				return err
			}
			recs, err := catalog.LoadCSV(cmd.Context(), cfg.Dataset.Path, catalog.Options{Workers: cfg.Dataset.Workers})
			if err != nil {
				return err
			}
			if err := catalog.WriteCSVFile(out, recs); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d titles to %s\n", len(recs), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "data/clean/netflix_titles.csv", "Cleaned CSV path")
	return cmd
}
