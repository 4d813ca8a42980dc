// Package builder turns catalog records into frozen graphs: the full
// title/attribute graph the recommender runs on, and the aggregate
// country×genre views used for export and analysis.
package builder

import (
	"errors"
	"fmt"

	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/internal/catalog"
	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/pkg/graph"
)

type FullOptions struct {
	// IncludePeople adds director and cast nodes.
	IncludePeople bool `koanf:"include_people"`
}

// Stats summarises a BuildFull run.
type Stats struct {
	Records   int
	Titles    int
	Countries int
	Genres    int
	People    int
	Edges     int
	// Skipped counts rows or attributes whose label already names a node of
	// another type.
	Skipped int
}

// BuildFull builds the title graph: title–country (produced_in), title–genre
// (is_genre) and, with IncludePeople, title–person (directed_by, features).
// The returned graph is frozen.
func BuildFull(recs []catalog.Record, opts FullOptions) (*graph.Graph, Stats, error) {
	g := graph.New()
	stats := Stats{Records: len(recs)}

	for _, r := range recs {
		err := g.AddNode(graph.Title{Name: r.Title, Kind: r.Kind, ReleaseYear: r.ReleaseYear})
		if errors.Is(err, graph.ErrTypeMismatch) {
			stats.Skipped++
			continue
		}
		if err != nil {
			return nil, stats, fmt.Errorf("add title %q: %w", r.Title, err)
		}

		attach := func(n graph.Node, rel graph.Relation) error {
			err := g.AddNode(n)
			if errors.Is(err, graph.ErrTypeMismatch) {
				stats.Skipped++
				return nil
			}
			if err != nil {
				return err
			}
			return g.Link(r.Title, n.Key(), rel)
		}

		for _, c := range r.Countries {
			if err := attach(graph.Country{Name: c}, graph.RelationProducedIn); err != nil {
				return nil, stats, fmt.Errorf("link %q to country %q: %w", r.Title, c, err)
			}
		}
		for _, gn := range r.Genres {
			if err := attach(graph.Genre{Name: gn}, graph.RelationIsGenre); err != nil {
				return nil, stats, fmt.Errorf("link %q to genre %q: %w", r.Title, gn, err)
			}
		}
		if !opts.IncludePeople {
			continue
		}
		for _, p := range r.Directors {
			if err := attach(graph.Person{Name: p}, graph.RelationDirectedBy); err != nil {
				return nil, stats, fmt.Errorf("link %q to director %q: %w", r.Title, p, err)
			}
		}
		for _, p := range r.Cast {
			if err := attach(graph.Person{Name: p}, graph.RelationFeatures); err != nil {
				return nil, stats, fmt.Errorf("link %q to cast member %q: %w", r.Title, p, err)
			}
		}
	}

	g.Freeze()

	stats.Titles = len(g.NodesOfType(graph.TypeTitle))
	stats.Countries = len(g.NodesOfType(graph.TypeCountry))
	stats.Genres = len(g.NodesOfType(graph.TypeGenre))
	stats.People = len(g.NodesOfType(graph.TypePerson))
	stats.Edges = g.NumEdges()
	return g, stats, nil
}
