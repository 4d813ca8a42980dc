// Package analysis computes the descriptive statistics of the catalog graphs
// and the evaluation of the recommender, and writes them as CSV reports.
package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/pkg/graph"
)

// Ranked is one row of a top-N table.
type Ranked struct {
	Label string
	Value float64
}

// NamedGraph pairs a graph with the name used in reports.
type NamedGraph struct {
	Name  string
	Graph *graph.Graph
}

// ---------------------- CENTRALIDAD ----------------------

// TopByDegree ranks nodes of type t by degree. Ties keep insertion order.
func TopByDegree(g *graph.Graph, t graph.NodeType, n int) []Ranked {
	var out []Ranked
	for _, node := range g.NodesOfType(t) {
		d, _ := g.Degree(node.Key())
		out = append(out, Ranked{Label: node.Label(), Value: float64(d)})
	}
	return top(out, n)
}

// WeightedStrength ranks nodes of type t by the summed weight of their edges.
// Ties keep the order in which edges first reach them.
func WeightedStrength(g *graph.Graph, t graph.NodeType, n int) []Ranked {
	var order []string
	sum := make(map[string]float64)
	add := func(key string, w float64) {
		if _, ok := sum[key]; !ok {
			order = append(order, key)
		}
		sum[key] += w
	}

	for _, e := range g.Edges() {
		from, _ := g.Node(e.From)
		to, _ := g.Node(e.To)
		switch {
		case from.Type() == t:
			add(e.From, e.Weight)
		case to.Type() == t:
			add(e.To, e.Weight)
		}
	}

	out := make([]Ranked, len(order))
	for i, k := range order {
		out[i] = Ranked{Label: k, Value: sum[k]}
	}
	return top(out, n)
}

func top(rows []Ranked, n int) []Ranked {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Value > rows[j].Value
	})
	if n > 0 && len(rows) > n {
		rows = rows[:n]
	}
	return rows
}

// ---------------------- DISTRIBUCIÓN DE GRADO ----------------------

// Bin counts values in [Lower, Upper).
type Bin struct {
	Lower float64
	Upper float64
	Count int
}

type DegreeSummary struct {
	Nodes     int // nodes with degree > 0
	Mean      float64
	StdDev    float64
	Median    float64
	Max       float64
	Histogram []Bin
}

const degreeBins = 20

// DegreeStats summarises the degree of every connected node. Isolated nodes
// are left out.
func DegreeStats(g *graph.Graph) DegreeSummary {
	var degrees []float64
	for _, n := range g.Nodes() {
		if d, _ := g.Degree(n.Key()); d > 0 {
			degrees = append(degrees, float64(d))
		}
	}
	if len(degrees) == 0 {
		return DegreeSummary{}
	}
	sort.Float64s(degrees)

	s := DegreeSummary{
		Nodes:  len(degrees),
		Mean:   stat.Mean(degrees, nil),
		Median: stat.Quantile(0.5, stat.Empirical, degrees, nil),
		Max:    degrees[len(degrees)-1],
	}
	if len(degrees) > 1 {
		s.StdDev = stat.StdDev(degrees, nil)
	}
	s.Histogram = histogram(degrees, degreeBins)
	return s
}

// histogram splits sorted integer-valued data into at most bins equal-width
// bins covering [min, max+1).
func histogram(sorted []float64, bins int) []Bin {
	lo, hi := sorted[0], sorted[len(sorted)-1]+1
	if span := int(hi - lo); span < bins {
		bins = span
	}
	width := (hi - lo) / float64(bins)

	dividers := make([]float64, bins+1)
	for i := range dividers {
		dividers[i] = lo + float64(i)*width
	}
	dividers[bins] = hi

	counts := stat.Histogram(nil, dividers, sorted, nil)
	out := make([]Bin, bins)
	for i := range out {
		out[i] = Bin{Lower: dividers[i], Upper: dividers[i+1], Count: int(math.Round(counts[i]))}
	}
	return out
}

// ---------------------- REGIONES ----------------------

type RegionSummary struct {
	Name      string
	Nodes     int
	Edges     int
	TopGenres []Ranked
}

// CompareRegions reports size and the most weighted genres of each regional
// graph, in the given order.
func CompareRegions(regions []NamedGraph, topGenres int) []RegionSummary {
	out := make([]RegionSummary, len(regions))
	for i, r := range regions {
		out[i] = RegionSummary{
			Name:      r.Name,
			Nodes:     r.Graph.NumNodes(),
			Edges:     r.Graph.NumEdges(),
			TopGenres: WeightedStrength(r.Graph, graph.TypeGenre, topGenres),
		}
	}
	return out
}
