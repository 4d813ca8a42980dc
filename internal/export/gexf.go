// Package export writes graphs as GEXF 1.2 files for Gephi.
package export

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/KauaLucasKL/Analise-Relacao-Filme-Regiao-e-Recomendacao/pkg/graph"
)

const (
	gexfNamespace = "http://gexf.net/1.2"
	vizNamespace  = "http://gexf.net/1.2/viz"
)

// Meta fills the GEXF <meta> block.
type Meta struct {
	Creator      string
	Description  string
	LastModified time.Time
}

// Color is an RGB triple.
type Color struct {
	R, G, B uint8
}

// Viz optionally decorates nodes and edges. Nil funcs are skipped.
type Viz struct {
	NodeColor     func(n graph.Node) (Color, bool)
	EdgeThickness func(e graph.Edge) (float64, bool)
}

// ---------------------------------------------------------
// Documento XML
// ---------------------------------------------------------

type gexfDoc struct {
	XMLName xml.Name  `xml:"gexf"`
	XMLNS   string    `xml:"xmlns,attr"`
	VizNS   string    `xml:"xmlns:viz,attr"`
	Version string    `xml:"version,attr"`
	Meta    gexfMeta  `xml:"meta"`
	Graph   gexfGraph `xml:"graph"`
}

type gexfMeta struct {
	LastModified string `xml:"lastmodifieddate,attr"`
	Creator      string `xml:"creator"`
	Description  string `xml:"description,omitempty"`
}

type gexfGraph struct {
	Mode        string           `xml:"mode,attr"`
	DefaultEdge string           `xml:"defaultedgetype,attr"`
	Attributes  []gexfAttributes `xml:"attributes"`
	Nodes       []gexfNode       `xml:"nodes>node"`
	Edges       []gexfEdge       `xml:"edges>edge"`
}

type gexfAttributes struct {
	Class string          `xml:"class,attr"`
	Attrs []gexfAttribute `xml:"attribute"`
}

type gexfAttribute struct {
	ID    string `xml:"id,attr"`
	Title string `xml:"title,attr"`
	Type  string `xml:"type,attr"`
}

type gexfAttValue struct {
	For   string `xml:"for,attr"`
	Value string `xml:"value,attr"`
}

type gexfColor struct {
	R uint8 `xml:"r,attr"`
	G uint8 `xml:"g,attr"`
	B uint8 `xml:"b,attr"`
}

type gexfValue struct {
	Value string `xml:"value,attr"`
}

type gexfNode struct {
	ID        string         `xml:"id,attr"`
	Label     string         `xml:"label,attr"`
	AttValues []gexfAttValue `xml:"attvalues>attvalue"`
	Color     *gexfColor     `xml:"viz:color,omitempty"`
}

type gexfEdge struct {
	ID        string         `xml:"id,attr"`
	Source    string         `xml:"source,attr"`
	Target    string         `xml:"target,attr"`
	Weight    string         `xml:"weight,attr"`
	AttValues []gexfAttValue `xml:"attvalues>attvalue"`
	Thickness *gexfValue     `xml:"viz:thickness,omitempty"`
}

// Attribute ids.
const (
	attrType        = "type"
	attrKind        = "kind"
	attrReleaseYear = "release_year"
	attrRelation    = "relation"
)

// ---------------------------------------------------------
// Escritura
// ---------------------------------------------------------

// WriteGEXF writes g as a static undirected GEXF document. Node ids are the
// graph keys.
func WriteGEXF(w io.Writer, g *graph.Graph, meta Meta, viz *Viz) error {
	if meta.Creator == "" {
		meta.Creator = "grafo"
	}
	if meta.LastModified.IsZero() {
		meta.LastModified = time.Now()
	}

	doc := gexfDoc{
		XMLNS:   gexfNamespace,
		VizNS:   vizNamespace,
		Version: "1.2",
		Meta: gexfMeta{
			LastModified: meta.LastModified.Format("2006-01-02"),
			Creator:      meta.Creator,
			Description:  meta.Description,
		},
		Graph: gexfGraph{
			Mode:        "static",
			DefaultEdge: "undirected",
			Attributes: []gexfAttributes{
				{Class: "node", Attrs: []gexfAttribute{
					{ID: attrType, Title: "type", Type: "string"},
					{ID: attrKind, Title: "kind", Type: "string"},
					{ID: attrReleaseYear, Title: "release_year", Type: "integer"},
				}},
				{Class: "edge", Attrs: []gexfAttribute{
					{ID: attrRelation, Title: "relation", Type: "string"},
				}},
			},
		},
	}

	for _, n := range g.Nodes() {
		gn := gexfNode{
			ID:        n.Key(),
			Label:     n.Label(),
			AttValues: []gexfAttValue{{For: attrType, Value: n.Type().String()}},
		}
		if t, ok := n.(graph.Title); ok {
			if t.Kind != "" {
				gn.AttValues = append(gn.AttValues, gexfAttValue{For: attrKind, Value: t.Kind})
			}
			if t.ReleaseYear != 0 {
				gn.AttValues = append(gn.AttValues, gexfAttValue{For: attrReleaseYear, Value: strconv.Itoa(t.ReleaseYear)})
			}
		}
		if viz != nil && viz.NodeColor != nil {
			if c, ok := viz.NodeColor(n); ok {
				gn.Color = &gexfColor{R: c.R, G: c.G, B: c.B}
			}
		}
		doc.Graph.Nodes = append(doc.Graph.Nodes, gn)
	}

	for i, e := range g.Edges() {
		ge := gexfEdge{
			ID:     strconv.Itoa(i),
			Source: e.From,
			Target: e.To,
			Weight: strconv.FormatFloat(e.Weight, 'g', -1, 64),
		}
		if e.Relation != graph.RelationNone {
			ge.AttValues = []gexfAttValue{{For: attrRelation, Value: string(e.Relation)}}
		}
		if viz != nil && viz.EdgeThickness != nil {
			if v, ok := viz.EdgeThickness(e); ok {
				ge.Thickness = &gexfValue{Value: strconv.FormatFloat(v, 'g', -1, 64)}
			}
		}
		doc.Graph.Edges = append(doc.Graph.Edges, ge)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode gexf: %w", err)
	}
	if err := enc.Flush(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// WriteGEXFFile writes g to path, creating parent directories.
func WriteGEXFFile(path string, g *graph.Graph, meta Meta, viz *Viz) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteGEXF(f, g, meta, viz); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
