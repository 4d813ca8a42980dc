package builder

import (
	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/pkg/graph"
)

// Project collapses a full graph into country×genre, weighting each edge by
// the number of titles the two share. Countries with titles but no shared
// genre stay as isolated nodes.
func Project(g *graph.Graph) *graph.Graph {
	titlesOf := func(n graph.Node) map[string]struct{} {
		set := make(map[string]struct{})
		nbrs, _ := g.Neighbors(n.Key())
		for _, k := range nbrs {
			if nn, _ := g.Node(k); nn.Type() == graph.TypeTitle {
				set[k] = struct{}{}
			}
		}
		return set
	}

	type group struct {
		node   graph.Node
		titles map[string]struct{}
	}
	collect := func(t graph.NodeType) []group {
		var out []group
		for _, n := range g.NodesOfType(t) {
			if ts := titlesOf(n); len(ts) > 0 {
				out = append(out, group{node: n, titles: ts})
			}
		}
		return out
	}
	countries := collect(graph.TypeCountry)
	genres := collect(graph.TypeGenre)

	h := graph.New()
	for _, c := range countries {
		_ = h.AddNode(c.node)
		for _, gn := range genres {
			shared := 0
			for t := range c.titles {
				if _, ok := gn.titles[t]; ok {
					shared++
				}
			}
			if shared == 0 {
				continue
			}
			_ = h.AddNode(gn.node)
			_ = h.AddEdge(c.node.Key(), gn.node.Key(), float64(shared), graph.RelationCoOccurs)
		}
	}
	h.Freeze()
	return h
}
