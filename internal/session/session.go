// Package session owns the live recommendation graph. A reload builds a new
// frozen graph and engine off to the side and swaps them in atomically, so
// queries in flight keep the snapshot they started with.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/internal/builder"
	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/internal/catalog"
	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/internal/metrics"
	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/internal/recommend"
	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/pkg/graph"
)

// ErrNoSnapshot is returned before the first successful Reload.
var ErrNoSnapshot = errors.New("no graph loaded yet")

// Source yields the catalog a snapshot is built from.
type Source func(ctx context.Context) ([]catalog.Record, error)

// CSVSource reads the catalog CSV at path on every reload.
func CSVSource(path string, workers int) Source {
	return func(ctx context.Context) ([]catalog.Record, error) {
		return catalog.LoadCSV(ctx, path, catalog.Options{Workers: workers})
	}
}

// MongoSource reads the titles collection on every reload.
func MongoSource(src catalog.TitleSource) Source {
	return func(ctx context.Context) ([]catalog.Record, error) {
		return catalog.LoadMongo(ctx, src)
	}
}

// Snapshot is one immutable generation of the graph and what was derived
// from it.
type Snapshot struct {
	Graph    *graph.Graph
	Engine   *recommend.Engine
	Index    *catalog.Index
	Records  []catalog.Record
	Stats    builder.Stats
	LoadedAt time.Time
}

type Options struct {
	Source    Source
	Full      builder.FullOptions
	Recommend recommend.Config
	Logger    zerolog.Logger
}

type Manager struct {
	opts    Options
	logger  zerolog.Logger
	current atomic.Pointer[Snapshot]

	// reloads run one at a time
	reloadMu sync.Mutex
}

func New(opts Options) (*Manager, error) {
	if opts.Source == nil {
		return nil, errors.New("session: nil source")
	}
	if err := opts.Recommend.Validate(); err != nil {
		return nil, err
	}
	return &Manager{
		opts:   opts,
		logger: opts.Logger.With().Str("component", "session").Logger(),
	}, nil
}

// Current returns the live snapshot.
func (m *Manager) Current() (*Snapshot, error) {
	s := m.current.Load()
	if s == nil {
		return nil, ErrNoSnapshot
	}
	return s, nil
}

// Reload rebuilds from the source. On failure the previous snapshot stays live.
func (m *Manager) Reload(ctx context.Context) (*Snapshot, error) {
	m.reloadMu.Lock()
	defer m.reloadMu.Unlock()

	start := time.Now()
	snap, err := m.build(ctx)
	if err != nil {
		metrics.GraphReloadsTotal.WithLabelValues("error").Inc()
		m.logger.Error().Err(err).Msg("graph reload failed")
		return nil, err
	}
	m.current.Store(snap)
	metrics.GraphReloadsTotal.WithLabelValues("ok").Inc()
	publish(snap)

	m.logger.Info().
		Int("records", snap.Stats.Records).
		Int("titles", snap.Stats.Titles).
		Int("nodes", snap.Graph.NumNodes()).
		Int("edges", snap.Graph.NumEdges()).
		Int("skipped", snap.Stats.Skipped).
		Dur("elapsed", time.Since(start)).
		Msg("graph loaded")
	return snap, nil
}

func (m *Manager) build(ctx context.Context) (*Snapshot, error) {
	recs, err := m.opts.Source(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	g, stats, err := builder.BuildFull(recs, m.opts.Full)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}
	eng, err := recommend.NewEngine(g, m.opts.Recommend, m.opts.Logger)
	if err != nil {
		return nil, err
	}

	titles := g.NodesOfType(graph.TypeTitle)
	labels := make([]string, len(titles))
	for i, n := range titles {
		labels[i] = n.Label()
	}

	return &Snapshot{
		Graph:    g,
		Engine:   eng,
		Index:    catalog.NewIndex(labels),
		Records:  recs,
		Stats:    stats,
		LoadedAt: time.Now(),
	}, nil
}

func publish(s *Snapshot) {
	for _, t := range []graph.NodeType{graph.TypeTitle, graph.TypeCountry, graph.TypeGenre, graph.TypePerson} {
		metrics.GraphNodes.WithLabelValues(t.String()).Set(float64(len(s.Graph.NodesOfType(t))))
	}
	metrics.GraphEdges.Set(float64(s.Graph.NumEdges()))
}
