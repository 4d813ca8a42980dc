package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/internal/catalog"
	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/pkg/graph"
)

func fullRecords() []catalog.Record {
	return []catalog.Record{
		{Title: "T1", Kind: "Movie", ReleaseYear: 2020, Countries: []string{"US"}, Genres: []string{"Drama"}, Directors: []string{"Ann"}},
		{Title: "T2", Countries: []string{"US", "France"}, Genres: []string{"Drama", "Comedy"}, Cast: []string{"Ann", "Bob"}},
		{Title: "Drama", Countries: []string{"US"}},
		{Title: "T3", Countries: []string{"T1"}},
	}
}

func TestBuildFull(t *testing.T) {
	g, stats, err := BuildFull(fullRecords(), FullOptions{})
	require.NoError(t, err)
	assert.True(t, g.Frozen())

	assert.Equal(t, Stats{
		Records:   4,
		Titles:    3,
		Countries: 2,
		Genres:    2,
		Edges:     6,
		Skipped:   2,
	}, stats)

	nbrs, err := g.Neighbors("T2")
	require.NoError(t, err)
	assert.Equal(t, []string{"US", "France", "Drama", "Comedy"}, nbrs)

	n, ok := g.Node("T1")
	require.True(t, ok)
	assert.Equal(t, graph.Title{Name: "T1", Kind: "Movie", ReleaseYear: 2020}, n)

	deg, err := g.Degree("T3")
	require.NoError(t, err)
	assert.Zero(t, deg)

	e, ok := g.Edge("T1", "US")
	require.True(t, ok)
	assert.Equal(t, graph.RelationProducedIn, e.Relation)
	assert.Equal(t, 1.0, e.Weight)
}

func TestBuildFull_People(t *testing.T) {
	g, stats, err := BuildFull(fullRecords(), FullOptions{IncludePeople: true})
	require.NoError(t, err)

	assert.Equal(t, 2, stats.People)
	assert.Equal(t, 9, stats.Edges)
	assert.Equal(t, 2, stats.Skipped)

	e, ok := g.Edge("T1", "Ann")
	require.True(t, ok)
	assert.Equal(t, graph.RelationDirectedBy, e.Relation)

	e, ok = g.Edge("Ann", "T2")
	require.True(t, ok)
	assert.Equal(t, graph.RelationFeatures, e.Relation)

	common, err := g.CommonNeighbors("T1", "T2")
	require.NoError(t, err)
	assert.Equal(t, []string{"US", "Drama", "Ann"}, common)
}

func aggregateRecords() []catalog.Record {
	return []catalog.Record{
		{Title: "A", Countries: []string{"US"}, Genres: []string{"Drama", "Comedy"}},
		{Title: "B", Countries: []string{"US"}, Genres: []string{"Drama"}},
		{Title: "C", Countries: []string{"FR"}, Genres: []string{"Drama"}},
		{Title: "D", Countries: []string{"FR"}, Genres: []string{"Horror"}},
		{Title: "E", Countries: []string{"FR"}, Genres: []string{"Drama"}},
		{Title: "F", Countries: []string{"FR"}, Genres: []string{"Drama"}},
		{Title: "G", Countries: []string{"FR"}, Genres: []string{"Drama"}},
	}
}

func TestBuildCountryGenre(t *testing.T) {
	// (US,Drama)=2 (US,Comedy)=1 (FR,Drama)=4 (FR,Horror)=1.
	// US and FR tie on distinct pairs; US was seen first.
	g := BuildCountryGenre(aggregateRecords(), AggregateOptions{MinEdgeWeight: 2, TopCountries: 1, TopGenres: 2})
	assert.True(t, g.Frozen())

	require.Equal(t, 1, g.NumEdges())
	e, ok := g.Edge("US", "Drama")
	require.True(t, ok)
	// Normalised by the global maximum, even though FR was filtered out.
	assert.Equal(t, 0.5, e.Weight)
	assert.Equal(t, graph.RelationCoOccurs, e.Relation)
	assert.False(t, g.HasNode("FR"))
	assert.False(t, g.HasNode("Comedy"))

	t.Run("defaults keep everything heavy enough", func(t *testing.T) {
		opts := DefaultAggregateOptions()
		opts.MinEdgeWeight = 1
		g := BuildCountryGenre(aggregateRecords(), opts)
		assert.Equal(t, 4, g.NumEdges())

		e, ok := g.Edge("FR", "Drama")
		require.True(t, ok)
		assert.Equal(t, 1.0, e.Weight)
	})

	t.Run("empty catalog", func(t *testing.T) {
		g := BuildCountryGenre(nil, DefaultAggregateOptions())
		assert.Zero(t, g.NumNodes())
		assert.True(t, g.Frozen())
	})
}

func TestBuildRegion(t *testing.T) {
	recs := []catalog.Record{
		{Title: "A", Countries: []string{"United States", "Brazil"}, Genres: []string{"Dramas"}},
		{Title: "B", Countries: []string{"Brazil"}, Genres: []string{"Dramas", "Comedies"}},
		{Title: "C", Countries: []string{"Brazil", "Japan"}, Genres: []string{"Dramas"}},
	}

	latam := BuildRegion(recs, LatinAmerica, DefaultRegionMinEdgeWeight)
	require.Equal(t, 1, latam.NumEdges())
	e, ok := latam.Edge("Brazil", "Dramas")
	require.True(t, ok)
	assert.Equal(t, 1.0, e.Weight)
	assert.False(t, latam.HasNode("Japan"))

	us := BuildRegion(recs, UnitedStates, 1)
	e, ok = us.Edge("United States", "Dramas")
	require.True(t, ok)
	assert.Equal(t, 1.0, e.Weight)

	eu := BuildRegion(recs, Europe, DefaultRegionMinEdgeWeight)
	assert.Zero(t, eu.NumNodes())
	assert.True(t, eu.Frozen())
}

func TestFilterRegion(t *testing.T) {
	recs := []catalog.Record{
		{Title: "A", Countries: []string{"United States", "Brazil", "Mexico"}},
		{Title: "B", Countries: []string{"Japan"}},
		{Title: "C"},
	}

	got := FilterRegion(recs, LatinAmerica)
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Title)
	assert.Equal(t, []string{"Brazil", "Mexico"}, got[0].Countries)

	assert.Equal(t, []string{"United States", "Brazil", "Mexico"}, recs[0].Countries)
}

func TestRegions(t *testing.T) {
	regions := Regions()
	require.Len(t, regions, 3)
	assert.True(t, regions[0].Contains("United States"))
	assert.True(t, regions[1].Contains("France"))
	assert.True(t, regions[2].Contains("Peru"))
	assert.False(t, regions[2].Contains("France"))
}

func TestProject(t *testing.T) {
	recs := append(fullRecords(), catalog.Record{Title: "T4", Countries: []string{"Japan"}})
	full, _, err := BuildFull(recs, FullOptions{IncludePeople: true})
	require.NoError(t, err)

	h := Project(full)
	assert.True(t, h.Frozen())

	weight := func(c, g string) float64 {
		e, ok := h.Edge(c, g)
		require.True(t, ok, "%s-%s", c, g)
		return e.Weight
	}
	assert.Equal(t, 2.0, weight("US", "Drama"))
	assert.Equal(t, 1.0, weight("US", "Comedy"))
	assert.Equal(t, 1.0, weight("France", "Drama"))
	assert.Equal(t, 1.0, weight("France", "Comedy"))
	assert.Equal(t, 4, h.NumEdges())

	assert.True(t, h.HasNode("Japan"))
	deg, err := h.Degree("Japan")
	require.NoError(t, err)
	assert.Zero(t, deg)

	assert.Empty(t, h.NodesOfType(graph.TypePerson))
	assert.Empty(t, h.NodesOfType(graph.TypeTitle))
}
