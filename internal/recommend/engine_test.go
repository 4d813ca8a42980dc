package recommend

import (
	"context"
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/pkg/graph"
	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/pkg/similarity"
)

type row struct {
	title   string
	country string
	genre   string
}

func build(t *testing.T, rows ...row) *graph.Graph {
	t.Helper()
	g := graph.New()
	for _, r := range rows {
		require.NoError(t, g.AddNode(graph.Title{Name: r.title}))
		if r.country != "" {
			require.NoError(t, g.AddNode(graph.Country{Name: r.country}))
			require.NoError(t, g.Link(r.title, r.country, graph.RelationProducedIn))
		}
		if r.genre != "" {
			require.NoError(t, g.AddNode(graph.Genre{Name: r.genre}))
			require.NoError(t, g.Link(r.title, r.genre, graph.RelationIsGenre))
		}
	}
	g.Freeze()
	return g
}

func newEngine(t *testing.T, g *graph.Graph, cfg Config) *Engine {
	t.Helper()
	e, err := NewEngine(g, cfg, zerolog.Nop())
	require.NoError(t, err)
	return e
}

func TestNewEngine(t *testing.T) {
	t.Run("rejects open graph", func(t *testing.T) {
		_, err := NewEngine(graph.New(), DefaultConfig(), zerolog.Nop())
		assert.ErrorIs(t, err, ErrGraphNotFrozen)
	})

	t.Run("rejects nil graph", func(t *testing.T) {
		_, err := NewEngine(nil, DefaultConfig(), zerolog.Nop())
		assert.ErrorIs(t, err, ErrGraphNotFrozen)
	})

	t.Run("rejects invalid config", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.TopN = 0
		_, err := NewEngine(build(t), cfg, zerolog.Nop())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid config")
	})

	t.Run("negative weight", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.TypeWeights.Person = -1
		assert.Error(t, cfg.Validate())
	})

	t.Run("cache disabled", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.CacheSize = 0
		e := newEngine(t, build(t), cfg)
		assert.Nil(t, e.cache)
	})
}

func TestRecommend_SharedAttributes(t *testing.T) {
	g := build(t,
		row{"T1", "US", "Drama"},
		row{"T2", "US", "Drama"},
		row{"T3", "FR", "Comedy"},
	)
	e := newEngine(t, g, DefaultConfig())

	assert.Equal(t, []string{"T2"}, e.Candidates("T1"))

	recs, err := e.Recommend("T1", 5)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "T2", recs[0].Label)

	// aa = 0.1/ln2 + 1/ln2, jac = 1, text("t1","t2") = 0.5 (not boosted)
	aa := 0.1/math.Ln2 + 1/math.Ln2
	want := 0.4*aa + 0.4*10 + 0.2*0.5*5
	assert.InDelta(t, want, recs[0].Score, 1e-4)
	assert.Equal(t, 5.1348, recs[0].Score)

	expl, err := e.Explain("T1", 5)
	require.NoError(t, err)
	require.Len(t, expl, 1)
	assert.Equal(t, 1.0, expl[0].Jaccard)
	assert.False(t, expl[0].Gated)
	assert.False(t, expl[0].Boosted)
	assert.Equal(t, []string{"US", "Drama"}, expl[0].Shared)
}

func TestRecommend_FranchiseBoost(t *testing.T) {
	g := build(t,
		row{"Movie: Part 1", "US", "Drama"},
		row{"Movie: Part 2", "US", "Drama"},
		row{"Something Else", "US", "Drama"},
	)
	e := newEngine(t, g, DefaultConfig())

	expl, err := e.Explain("Movie: Part 1", 5)
	require.NoError(t, err)
	require.Len(t, expl, 2)

	sequel, other := expl[0], expl[1]
	assert.Equal(t, "Movie: Part 2", sequel.Label)
	assert.Equal(t, "Something Else", other.Label)

	assert.Equal(t, 1.0, sequel.Jaccard)
	assert.Greater(t, sequel.Text, 0.6)
	assert.True(t, sequel.Boosted)
	assert.InDelta(t, sequel.Text*8, sequel.TextApplied, 1e-12)

	assert.Equal(t, 1.0, other.Jaccard)
	assert.Less(t, other.Text, 0.6)
	assert.False(t, other.Boosted)
	assert.Equal(t, other.Text, other.TextApplied)

	assert.Greater(t, sequel.Score, other.Score)
}

func TestRecommend_StructuralGate(t *testing.T) {
	g := build(t,
		row{"Movie: Part 1", "US", "Drama"},
		row{"Movie: Part 2", "US", "Comedy"},
	)

	t.Run("imperfect overlap drops name similarity", func(t *testing.T) {
		e := newEngine(t, g, DefaultConfig())
		expl, err := e.Explain("Movie: Part 1", 5)
		require.NoError(t, err)
		require.Len(t, expl, 1)

		x := expl[0]
		assert.Less(t, x.Jaccard, 1.0)
		assert.True(t, x.Gated)
		assert.False(t, x.Boosted)
		assert.Greater(t, x.Text, 0.6)
		assert.Zero(t, x.TextApplied)

		want := 0.4*x.Adamic + 0.4*(x.Jaccard*10)
		assert.InDelta(t, want, x.Score, 1e-4)
	})

	t.Run("lower threshold lets it through", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.StructuralThreshold = 0
		e := newEngine(t, g, cfg)
		expl, err := e.Explain("Movie: Part 1", 5)
		require.NoError(t, err)
		require.Len(t, expl, 1)
		assert.False(t, expl[0].Gated)
		assert.True(t, expl[0].Boosted)
	})
}

func TestRecommend_EdgeCases(t *testing.T) {
	g := build(t,
		row{"S", "US", ""},
		row{"X", "US", ""},
		row{"Y", "US", ""},
		row{"Alone", "JP", ""},
	)
	e := newEngine(t, g, DefaultConfig())

	t.Run("unknown title is empty, not an error", func(t *testing.T) {
		recs, err := e.Recommend("Nope", 5)
		require.NoError(t, err)
		assert.NotNil(t, recs)
		assert.Empty(t, recs)
	})

	t.Run("attribute label is not a title", func(t *testing.T) {
		recs, err := e.Recommend("US", 5)
		require.NoError(t, err)
		assert.Empty(t, recs)
		assert.Nil(t, e.Candidates("US"))
	})

	t.Run("source never recommends itself", func(t *testing.T) {
		for _, title := range []string{"S", "X", "Y"} {
			recs, err := e.Recommend(title, 10)
			require.NoError(t, err)
			for _, r := range recs {
				assert.NotEqual(t, title, r.Label)
			}
		}
	})

	t.Run("no shared attributes", func(t *testing.T) {
		recs, err := e.Recommend("Alone", 5)
		require.NoError(t, err)
		assert.Empty(t, recs)
	})

	t.Run("ties keep discovery order", func(t *testing.T) {
		recs, err := e.Recommend("S", 5)
		require.NoError(t, err)
		require.Len(t, recs, 2)
		assert.Equal(t, "X", recs[0].Label)
		assert.Equal(t, "Y", recs[1].Label)
		assert.Equal(t, recs[0].Score, recs[1].Score)
	})

	t.Run("truncates to n", func(t *testing.T) {
		recs, err := e.Recommend("S", 1)
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, "X", recs[0].Label)
	})
}

func TestRecommend_DefaultN(t *testing.T) {
	rows := []row{{"Source", "US", "Drama"}}
	for _, name := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		rows = append(rows, row{name, "US", "Drama"})
	}
	e := newEngine(t, build(t, rows...), DefaultConfig())

	recs, err := e.Recommend("Source", 0)
	require.NoError(t, err)
	assert.Len(t, recs, 5)
}

func TestRecommend_Deterministic(t *testing.T) {
	g := build(t,
		row{"Movie: Part 1", "US", "Drama"},
		row{"Movie: Part 2", "US", "Drama"},
		row{"Other", "US", "Comedy"},
		row{"Third", "FR", "Drama"},
	)

	for _, size := range []int{0, 16} {
		cfg := DefaultConfig()
		cfg.CacheSize = size
		e := newEngine(t, g, cfg)

		first, err := e.Recommend("Movie: Part 1", 5)
		require.NoError(t, err)
		second, err := e.Recommend("Movie: Part 1", 5)
		require.NoError(t, err)
		assert.Equal(t, first, second)

		other := newEngine(t, g, cfg)
		third, err := other.Recommend("Movie: Part 1", 5)
		require.NoError(t, err)
		assert.Equal(t, first, third)
	}
}

func TestExplain_CacheReturnsCopies(t *testing.T) {
	g := build(t,
		row{"T1", "US", "Drama"},
		row{"T2", "US", "Drama"},
	)
	e := newEngine(t, g, DefaultConfig())

	first, err := e.Explain("T1", 5)
	require.NoError(t, err)
	first[0].Label = "mutated"
	first[0].Shared[0] = "mutated"

	second, err := e.Explain("T1", 5)
	require.NoError(t, err)
	assert.Equal(t, "T2", second[0].Label)
	assert.Equal(t, []string{"US", "Drama"}, second[0].Shared)
}

func TestScoresAreFinite(t *testing.T) {
	g := build(t,
		row{"A", "US", ""},
		row{"B", "US", ""},
	)
	cfg := DefaultConfig()
	cfg.TypeWeights = similarity.TypeWeights{}
	e := newEngine(t, g, cfg)

	expl, err := e.Explain("A", 5)
	require.NoError(t, err)
	require.Len(t, expl, 1)
	assert.False(t, math.IsNaN(expl[0].Score))
	assert.False(t, math.IsInf(expl[0].Score, 0))
	assert.Zero(t, expl[0].Jaccard)
}

func TestRecommendBatch(t *testing.T) {
	g := build(t,
		row{"T1", "US", "Drama"},
		row{"T2", "US", "Drama"},
		row{"T3", "FR", "Comedy"},
	)
	e := newEngine(t, g, DefaultConfig())

	t.Run("results follow input order", func(t *testing.T) {
		out, err := e.RecommendBatch(context.Background(), []string{"T1", "missing", "T2", "T3"}, 5, 2)
		require.NoError(t, err)
		require.Len(t, out, 4)

		assert.Equal(t, "T2", out[0][0].Label)
		assert.Empty(t, out[1])
		assert.Equal(t, "T1", out[2][0].Label)
		assert.Empty(t, out[3])

		single, err := e.Recommend("T1", 5)
		require.NoError(t, err)
		assert.Equal(t, single, out[0])
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := e.RecommendBatch(ctx, []string{"T1", "T2"}, 5, 0)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
