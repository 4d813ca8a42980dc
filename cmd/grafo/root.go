package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/internal/catalog"
	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/internal/config"
	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/internal/logging"
	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/internal/session"
	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/pkg/database"
)

// rootOptions are the persistent flags every command shares.
type rootOptions struct {
	configPath string
	dataset    string
	logLevel   string
	people     bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "grafo",
		Short: "Netflix title graph: recommendations, exports and reports",
		Long: `grafo builds a graph of Netflix titles linked to their countries, genres
and (optionally) people, and recommends titles that share rare attributes.

Examples:
  grafo recommend "Stranger Things"
  grafo explain -n 3 "Narcos"
  grafo export --focus "Narcos"
  grafo analyze --out data/reports`,
		SilenceUsage: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Path to grafo.yaml (default: $CONFIG_PATH or ./grafo.yaml)")
	pf.StringVar(&opts.dataset, "dataset", "", "Catalog CSV; overrides dataset.path and forces the csv source")
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error")
	pf.BoolVar(&opts.people, "people", false, "Add directors and cast members to the graph")

	cmd.AddCommand(
		newRecommendCmd(opts),
		newExplainCmd(opts),
		newSearchCmd(opts),
		newExportCmd(opts),
		newAnalyzeCmd(opts),
		newBenchCmd(opts),
		newImportCmd(opts),
		newCleanCmd(opts),
	)
	return cmd
}

// config loads the layered configuration and applies flag overrides.
func (o *rootOptions) config() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.dataset != "" {
		cfg.Dataset.Source = "csv"
		cfg.Dataset.Path = o.dataset
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	if o.people {
		cfg.Graph.IncludePeople = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logging.Init(cfg.Logging)
	return cfg, nil
}

// snapshot loads the catalog and builds the graph once. The returned func
// releases the MongoDB connection when one was opened.
func (o *rootOptions) snapshot(ctx context.Context) (*config.Config, *session.Snapshot, func(), error) {
	cfg, err := o.config()
	if err != nil {
		return nil, nil, nil, err
	}

	release := func() {}
	var titles catalog.TitleSource
	if cfg.Dataset.Source == "mongo" {
		store, err := database.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			return nil, nil, nil, err
		}
		release = func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = store.Close(closeCtx)
		}
		titles = store
	}

	m, err := session.FromConfig(cfg, titles, logging.Logger())
	if err != nil {
		release()
		return nil, nil, nil, err
	}
	snap, err := m.Reload(ctx)
	if err != nil {
		release()
		return nil, nil, nil, err
	}
	return cfg, snap, release, nil
}

// resolve picks the catalog title best matching term.
func resolve(snap *session.Snapshot, term string) (string, error) {
	label, ok := snap.Index.Best(term)
	if !ok {
		return "", fmt.Errorf("no title matches %q", term)
	}
	return label, nil
}
