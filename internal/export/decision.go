package export

import (
	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/pkg/graph"
)

// Decision graph palette.
var (
	ColorFocus          = Color{0xff, 0x00, 0x00}
	ColorRecommendation = Color{0x34, 0x98, 0xdb}
	ColorPerson         = Color{0x2e, 0xcc, 0x71}
	ColorGenre          = Color{0xf3, 0x9c, 0x12}
	ColorCountry        = Color{0x8e, 0x44, 0xad}
	ColorOther          = Color{0x95, 0xa5, 0xa6}
)

// NicheGenreDegree is the title count under which a genre counts as niche and
// is drawn thicker.
const NicheGenreDegree = 100

// DecisionGraph extracts the focus title, its recommendations and every
// attribute each recommendation shares with the focus. The returned Viz
// colours nodes by role and sets edge thickness by how telling the shared
// attribute is (people thick, countries thin), using degrees from g.
func DecisionGraph(g *graph.Graph, focus string, recs []string) (*graph.Graph, *Viz, error) {
	if !g.HasNode(focus) {
		return nil, nil, &graph.UnknownNodeError{Key: focus}
	}

	keys := []string{focus}
	isRec := make(map[string]bool, len(recs))
	for _, r := range recs {
		common, err := g.CommonNeighbors(focus, r)
		if err != nil {
			return nil, nil, err
		}
		isRec[r] = true
		keys = append(keys, r)
		keys = append(keys, common...)
	}

	sub := g.Subgraph(keys)
	sub.Freeze()

	viz := &Viz{
		NodeColor: func(n graph.Node) (Color, bool) {
			switch {
			case n.Key() == focus:
				return ColorFocus, true
			case isRec[n.Key()]:
				return ColorRecommendation, true
			}
			switch n.Type() {
			case graph.TypePerson:
				return ColorPerson, true
			case graph.TypeGenre:
				return ColorGenre, true
			case graph.TypeCountry:
				return ColorCountry, true
			}
			return ColorOther, true
		},
		EdgeThickness: func(e graph.Edge) (float64, bool) {
			return Thickness(g, e), true
		},
	}
	return sub, viz, nil
}

// Thickness is the drawing weight of a title–attribute edge.
func Thickness(g *graph.Graph, e graph.Edge) float64 {
	from, _ := g.Node(e.From)
	to, _ := g.Node(e.To)
	if from == nil || to == nil {
		return 1.0
	}
	target := to
	if from.Type() != graph.TypeTitle {
		target = from
	}
	switch target.Type() {
	case graph.TypePerson:
		return 6.0
	case graph.TypeGenre:
		if d, _ := g.Degree(target.Key()); d < NicheGenreDegree {
			return 4.0
		}
		return 2.0
	case graph.TypeCountry:
		return 0.3
	}
	return 1.0
}
