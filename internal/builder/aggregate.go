package builder

import (
	"sort"

	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/internal/catalog"
	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/pkg/graph"
)

// AggregateOptions filter the global country×genre graph.
type AggregateOptions struct {
	MinEdgeWeight int `koanf:"min_edge_weight" validate:"gte=1"`
	TopCountries  int `koanf:"top_countries" validate:"gte=1"`
	TopGenres     int `koanf:"top_genres" validate:"gte=1"`
}

func DefaultAggregateOptions() AggregateOptions {
	return AggregateOptions{
		MinEdgeWeight: 5,
		TopCountries:  15,
		TopGenres:     15,
	}
}

type pair struct {
	country string
	genre   string
}

// pairCounter counts (country, genre) co-occurrences, remembering first-seen
// order of pairs.
type pairCounter struct {
	order  []pair
	counts map[pair]int
}

func newPairCounter() *pairCounter {
	return &pairCounter{counts: make(map[pair]int)}
}

func (pc *pairCounter) add(countries, genres []string) {
	for _, c := range countries {
		for _, gn := range genres {
			p := pair{country: c, genre: gn}
			if _, ok := pc.counts[p]; !ok {
				pc.order = append(pc.order, p)
			}
			pc.counts[p]++
		}
	}
}

func (pc *pairCounter) max() int {
	m := 0
	for _, n := range pc.counts {
		if n > m {
			m = n
		}
	}
	return m
}

// top returns the n labels taking part in the most distinct pairs. Ties keep
// first-seen order.
func (pc *pairCounter) top(n int, side func(pair) string) map[string]struct{} {
	var labels []string
	count := make(map[string]int)
	for _, p := range pc.order {
		l := side(p)
		if _, ok := count[l]; !ok {
			labels = append(labels, l)
		}
		count[l]++
	}
	sort.SliceStable(labels, func(i, j int) bool {
		return count[labels[i]] > count[labels[j]]
	})
	if len(labels) > n {
		labels = labels[:n]
	}

	out := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		out[l] = struct{}{}
	}
	return out
}

// build writes every pair accepted by keep, weight count/max over all pairs.
func (pc *pairCounter) build(keep func(pair, int) bool) *graph.Graph {
	g := graph.New()
	if len(pc.order) == 0 {
		g.Freeze()
		return g
	}

	largest := float64(pc.max())
	for _, p := range pc.order {
		n := pc.counts[p]
		if !keep(p, n) {
			continue
		}
		// A label used both as a country and as a genre cannot be drawn twice.
		if g.AddNode(graph.Country{Name: p.country}) != nil {
			continue
		}
		if g.AddNode(graph.Genre{Name: p.genre}) != nil {
			continue
		}
		_ = g.AddEdge(p.country, p.genre, float64(n)/largest, graph.RelationCoOccurs)
	}
	g.Freeze()
	return g
}

// BuildCountryGenre builds the global country×genre co-occurrence graph.
// Only pairs between top countries and top genres with at least
// MinEdgeWeight titles are kept; weights are normalised by the largest count.
func BuildCountryGenre(recs []catalog.Record, opts AggregateOptions) *graph.Graph {
	pc := newPairCounter()
	for _, r := range recs {
		pc.add(r.Countries, r.Genres)
	}

	topC := pc.top(opts.TopCountries, func(p pair) string { return p.country })
	topG := pc.top(opts.TopGenres, func(p pair) string { return p.genre })

	return pc.build(func(p pair, n int) bool {
		_, okC := topC[p.country]
		_, okG := topG[p.genre]
		return okC && okG && n >= opts.MinEdgeWeight
	})
}
