package similarity

import (
	"math"

	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/pkg/graph"
)

// RarityFactors scales the 1/ln(degree) credit of a shared neighbor by type.
type RarityFactors struct {
	Person  float64 `koanf:"person" json:"person" validate:"gte=0"`
	Country float64 `koanf:"country" json:"country" validate:"gte=0"`
	Other   float64 `koanf:"other" json:"other" validate:"gte=0"`
}

func DefaultRarityFactors() RarityFactors {
	return RarityFactors{
		Person:  5.0,
		Country: 0.1,
		Other:   1.0,
	}
}

func (f RarityFactors) For(t graph.NodeType) float64 {
	switch t {
	case graph.TypePerson:
		return f.Person
	case graph.TypeCountry:
		return f.Country
	}
	return f.Other
}

// AdamicAdar sums factor(n)/ln(degree(n)) over the common neighbors of a and b.
// Neighbors of degree <= 1 add nothing, so the result is finite and >= 0.
func AdamicAdar(g *graph.Graph, a, b string, f RarityFactors) (float64, error) {
	common, err := g.CommonNeighbors(a, b)
	if err != nil {
		return 0, err
	}

	score := 0.0
	for _, n := range common {
		deg, err := g.Degree(n)
		if err != nil {
			return 0, err
		}
		if deg <= 1 {
			continue
		}
		node, _ := g.Node(n)
		score += f.For(node.Type()) / math.Log(float64(deg))
	}
	return score, nil
}
