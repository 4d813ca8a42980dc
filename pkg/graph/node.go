package graph

// NodeType is the category of an entity in the graph.
type NodeType string

const (
	TypeTitle   NodeType = "title"
	TypeCountry NodeType = "country"
	TypeGenre   NodeType = "genre"
	TypePerson  NodeType = "person"
)

func (t NodeType) String() string {
	return string(t)
}

// Valid reports whether t is one of the four known node types.
func (t NodeType) Valid() bool {
	switch t {
	case TypeTitle, TypeCountry, TypeGenre, TypePerson:
		return true
	}
	return false
}

// Node is a sealed sum type over Title, Country, Genre and Person.
// The key of every node is its label.
type Node interface {
	Key() string
	Label() string
	Type() NodeType
	node()
}

// ---------------------------------------------------------
// Variantes
// ---------------------------------------------------------

// Title is a catalog entry (movie or TV show).
type Title struct {
	Name        string
	Kind        string // "Movie", "TV Show" or empty
	ReleaseYear int    // 0 when unknown
}

func (t Title) Key() string    { return t.Name }
func (t Title) Label() string  { return t.Name }
func (t Title) Type() NodeType { return TypeTitle }
func (Title) node()            {}

type Country struct {
	Name string
}

func (c Country) Key() string    { return c.Name }
func (c Country) Label() string  { return c.Name }
func (c Country) Type() NodeType { return TypeCountry }
func (Country) node()            {}

type Genre struct {
	Name string
}

func (g Genre) Key() string    { return g.Name }
func (g Genre) Label() string  { return g.Name }
func (g Genre) Type() NodeType { return TypeGenre }
func (Genre) node()            {}

// Person is a cast or crew member.
type Person struct {
	Name string
}

func (p Person) Key() string    { return p.Name }
func (p Person) Label() string  { return p.Name }
func (p Person) Type() NodeType { return TypePerson }
func (Person) node()            {}

// NewNode builds the variant matching t. It returns nil for an unknown type.
func NewNode(t NodeType, label string) Node {
	switch t {
	case TypeTitle:
		return Title{Name: label}
	case TypeCountry:
		return Country{Name: label}
	case TypeGenre:
		return Genre{Name: label}
	case TypePerson:
		return Person{Name: label}
	}
	return nil
}

// Relation tags an edge. It is informational and never used in scoring.
type Relation string

const (
	RelationNone       Relation = ""
	RelationProducedIn Relation = "produced_in"
	RelationIsGenre    Relation = "is_genre"
	RelationDirectedBy Relation = "directed_by"
	RelationFeatures   Relation = "features"
	RelationCoOccurs   Relation = "co_occurs"
)
