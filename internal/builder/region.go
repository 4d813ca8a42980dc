package builder

import (
	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/internal/catalog"
	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/pkg/graph"
)

// DefaultRegionMinEdgeWeight is the count threshold used for regional graphs.
const DefaultRegionMinEdgeWeight = 3

// Region is a named set of countries.
type Region struct {
	Name      string
	Countries []string
}

func (r Region) Contains(country string) bool {
	for _, c := range r.Countries {
		if c == country {
			return true
		}
	}
	return false
}

func (r Region) filter(countries []string) []string {
	var out []string
	for _, c := range countries {
		if r.Contains(c) {
			out = append(out, c)
		}
	}
	return out
}

var (
	UnitedStates = Region{
		Name:      "united_states",
		Countries: []string{"United States"},
	}
	Europe = Region{
		Name: "europe",
		Countries: []string{
			"United Kingdom", "France", "Germany", "Spain", "Italy",
			"Netherlands", "Sweden", "Norway", "Denmark", "Belgium",
		},
	}
	LatinAmerica = Region{
		Name:      "latin_america",
		Countries: []string{"Brazil", "Mexico", "Argentina", "Colombia", "Chile", "Peru"},
	}
)

// Regions lists the built-in regions in report order.
func Regions() []Region {
	return []Region{UnitedStates, Europe, LatinAmerica}
}

// BuildRegion builds a country×genre graph restricted to the region's
// countries. Pairs need minEdgeWeight titles; weights are normalised by the
// largest regional count. No pairs gives an empty graph.
func BuildRegion(recs []catalog.Record, region Region, minEdgeWeight int) *graph.Graph {
	pc := newPairCounter()
	for _, r := range recs {
		pc.add(region.filter(r.Countries), r.Genres)
	}
	return pc.build(func(_ pair, n int) bool {
		return n >= minEdgeWeight
	})
}

// FilterRegion keeps only the region's countries on every record, co-productions
// included, and drops records left without any.
func FilterRegion(recs []catalog.Record, region Region) []catalog.Record {
	var out []catalog.Record
	for _, r := range recs {
		countries := region.filter(r.Countries)
		if len(countries) == 0 {
			continue
		}
		r.Countries = countries
		out = append(out, r)
	}
	return out
}
