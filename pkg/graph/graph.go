// Package graph is the typed, undirected entity graph behind the recommender.
//
// A Graph is built once (AddNode/AddEdge), then frozen. Every iteration the
// package exposes follows insertion order, so two graphs built from the same
// rows always answer queries identically. A frozen graph is read-only and may
// be shared between goroutines without locking.
package graph

// Edge is one undirected edge as returned by Edges and Edge.
type Edge struct {
	From     string
	To       string
	Weight   float64
	Relation Relation
}

type halfEdge struct {
	to       string
	weight   float64
	relation Relation
}

type entry struct {
	node  Node
	adj   []halfEdge
	index map[string]int // neighbor key -> position in adj
}

type Graph struct {
	nodes  map[string]*entry
	order  []string
	edges  [][2]string
	frozen bool
}

func New() *Graph {
	return &Graph{
		nodes: make(map[string]*entry),
	}
}

// ---------------------------------------------------------
// Construcción
// ---------------------------------------------------------

// AddNode inserts n if its key is absent. Re-adding a key with the same type
// is a no-op that keeps the first node; a different type is an error.
func (g *Graph) AddNode(n Node) error {
	if g.frozen {
		return ErrFrozen
	}
	key := n.Key()
	if e, ok := g.nodes[key]; ok {
		if e.node.Type() != n.Type() {
			return &TypeMismatchError{Key: key, Existing: e.node.Type(), Got: n.Type()}
		}
		return nil
	}
	g.nodes[key] = &entry{
		node:  n,
		index: make(map[string]int),
	}
	g.order = append(g.order, key)
	return nil
}

// AddEdge connects a and b. An existing edge keeps its position but takes the
// new weight and relation; accumulating counts is the caller's job.
func (g *Graph) AddEdge(a, b string, weight float64, rel Relation) error {
	if g.frozen {
		return ErrFrozen
	}
	ea, ok := g.nodes[a]
	if !ok {
		return &UnknownNodeError{Key: a}
	}
	eb, ok := g.nodes[b]
	if !ok {
		return &UnknownNodeError{Key: b}
	}
	if ea.node.Type() == eb.node.Type() {
		return ErrInvalidEdge
	}

	if i, ok := ea.index[b]; ok {
		ea.adj[i].weight, ea.adj[i].relation = weight, rel
		j := eb.index[a]
		eb.adj[j].weight, eb.adj[j].relation = weight, rel
		return nil
	}

	ea.index[b] = len(ea.adj)
	ea.adj = append(ea.adj, halfEdge{to: b, weight: weight, relation: rel})
	eb.index[a] = len(eb.adj)
	eb.adj = append(eb.adj, halfEdge{to: a, weight: weight, relation: rel})
	g.edges = append(g.edges, [2]string{a, b})
	return nil
}

// Link is AddEdge with the default weight of 1.0.
func (g *Graph) Link(a, b string, rel Relation) error {
	return g.AddEdge(a, b, 1.0, rel)
}

// Freeze makes the graph read-only.
func (g *Graph) Freeze() {
	g.frozen = true
}

func (g *Graph) Frozen() bool {
	return g.frozen
}

// ---------------------------------------------------------
// Consultas
// ---------------------------------------------------------

func (g *Graph) Node(key string) (Node, bool) {
	e, ok := g.nodes[key]
	if !ok {
		return nil, false
	}
	return e.node, true
}

func (g *Graph) HasNode(key string) bool {
	_, ok := g.nodes[key]
	return ok
}

// Nodes returns every node in insertion order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, 0, len(g.order))
	for _, k := range g.order {
		out = append(out, g.nodes[k].node)
	}
	return out
}

func (g *Graph) NodesOfType(t NodeType) []Node {
	var out []Node
	for _, k := range g.order {
		if n := g.nodes[k].node; n.Type() == t {
			out = append(out, n)
		}
	}
	return out
}

// Neighbors returns the adjacent keys in edge insertion order.
func (g *Graph) Neighbors(key string) ([]string, error) {
	e, ok := g.nodes[key]
	if !ok {
		return nil, &UnknownNodeError{Key: key}
	}
	out := make([]string, len(e.adj))
	for i, h := range e.adj {
		out[i] = h.to
	}
	return out, nil
}

func (g *Graph) Degree(key string) (int, error) {
	e, ok := g.nodes[key]
	if !ok {
		return 0, &UnknownNodeError{Key: key}
	}
	return len(e.adj), nil
}

// CommonNeighbors returns neighbors shared by a and b, in a's neighbor order.
func (g *Graph) CommonNeighbors(a, b string) ([]string, error) {
	ea, ok := g.nodes[a]
	if !ok {
		return nil, &UnknownNodeError{Key: a}
	}
	eb, ok := g.nodes[b]
	if !ok {
		return nil, &UnknownNodeError{Key: b}
	}
	var out []string
	for _, h := range ea.adj {
		if _, shared := eb.index[h.to]; shared {
			out = append(out, h.to)
		}
	}
	return out, nil
}

// Edge returns the edge between a and b, if any.
func (g *Graph) Edge(a, b string) (Edge, bool) {
	ea, ok := g.nodes[a]
	if !ok {
		return Edge{}, false
	}
	i, ok := ea.index[b]
	if !ok {
		return Edge{}, false
	}
	h := ea.adj[i]
	return Edge{From: a, To: b, Weight: h.weight, Relation: h.relation}, true
}

// Edges lists every undirected edge once, in insertion order, oriented as
// it was first added.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, len(g.edges))
	for _, p := range g.edges {
		e, _ := g.Edge(p[0], p[1])
		out = append(out, e)
	}
	return out
}

func (g *Graph) NumNodes() int { return len(g.order) }
func (g *Graph) NumEdges() int { return len(g.edges) }

// Subgraph returns an unfrozen copy induced by keys. Unknown keys are ignored.
func (g *Graph) Subgraph(keys []string) *Graph {
	keep := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		keep[k] = struct{}{}
	}

	sub := New()
	for _, k := range g.order {
		if _, ok := keep[k]; ok {
			_ = sub.AddNode(g.nodes[k].node)
		}
	}
	for _, p := range g.edges {
		_, okA := keep[p[0]]
		_, okB := keep[p[1]]
		if okA && okB {
			e, _ := g.Edge(p[0], p[1])
			_ = sub.AddEdge(e.From, e.To, e.Weight, e.Relation)
		}
	}
	return sub
}
