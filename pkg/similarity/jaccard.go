// Package similarity holds the three pairwise signals the recommender fuses:
// type-weighted Jaccard, Adamic–Adar and surface-name similarity.
package similarity

import (
	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/pkg/graph"
)

// TypeWeights is the contribution of one neighbor, by type, to the weighted
// Jaccard sums.
type TypeWeights struct {
	Person  float64 `koanf:"person" json:"person" validate:"gte=0"`
	Genre   float64 `koanf:"genre" json:"genre" validate:"gte=0"`
	Country float64 `koanf:"country" json:"country" validate:"gte=0"`
	Other   float64 `koanf:"other" json:"other" validate:"gte=0"`
}

// DefaultTypeWeights: people are strong evidence, countries almost none.
func DefaultTypeWeights() TypeWeights {
	return TypeWeights{
		Person:  0.7,
		Genre:   0.4,
		Country: 0.05,
		Other:   0.1,
	}
}

func (w TypeWeights) For(t graph.NodeType) float64 {
	switch t {
	case graph.TypePerson:
		return w.Person
	case graph.TypeGenre:
		return w.Genre
	case graph.TypeCountry:
		return w.Country
	}
	return w.Other
}

// WeightedJaccard is sum(w(n), n in Na∩Nb) / sum(w(n), n in Na∪Nb), or 0 when
// the union weighs nothing.
func WeightedJaccard(g *graph.Graph, a, b string, w TypeWeights) (float64, error) {
	na, err := g.Neighbors(a)
	if err != nil {
		return 0, err
	}
	nb, err := g.Neighbors(b)
	if err != nil {
		return 0, err
	}

	inB := make(map[string]struct{}, len(nb))
	for _, n := range nb {
		inB[n] = struct{}{}
	}

	var num, den float64
	seen := make(map[string]struct{}, len(na))
	for _, n := range na {
		seen[n] = struct{}{}
		wn := weightOf(g, n, w)
		den += wn
		if _, ok := inB[n]; ok {
			num += wn
		}
	}
	for _, n := range nb {
		if _, ok := seen[n]; !ok {
			den += weightOf(g, n, w)
		}
	}

	if den == 0 {
		return 0, nil
	}
	return num / den, nil
}

func weightOf(g *graph.Graph, key string, w TypeWeights) float64 {
	n, ok := g.Node(key)
	if !ok {
		return w.Other
	}
	return w.For(n.Type())
}
