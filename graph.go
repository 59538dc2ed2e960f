package strand

import (
	"encoding/json"
	"fmt"
)

// Orientation is the strand of a segment end a link attaches to.
type Orientation uint8

const (
	OrientUnspecified Orientation = iota // no orientation given
	OrientForward                        // "+"
	OrientReverse                        // "-"
)

// String returns "+", "-" or "".
func (o Orientation) String() string {
	switch o {
	case OrientForward:
		return "+"
	case OrientReverse:
		return "-"
	default:
		return ""
	}
}

// MarshalJSON encodes the orientation as "+", "-" or null.
func (o Orientation) MarshalJSON() ([]byte, error) {
	if o == OrientUnspecified {
		return []byte("null"), nil
	}
	return json.Marshal(o.String())
}

// UnmarshalJSON accepts "+", "-", "" or null.
func (o *Orientation) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = OrientUnspecified
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("orientation: %w", err)
	}
	switch s {
	case "+":
		*o = OrientForward
	case "-":
		*o = OrientReverse
	case "":
		*o = OrientUnspecified
	default:
		return fmt.Errorf("orientation: unknown value %q", s)
	}
	return nil
}

// NodeData is one node as delivered by the data-loading collaborator.
// When X/Y are nil the points are taken to be absolute and the node is
// re-centered on its centroid at load time.
type NodeData struct {
	ID     string
	Points []Vec2
	X, Y   *float64
}

// HasPosition reports whether both coordinates were supplied.
func (n NodeData) HasPosition() bool {
	return n.X != nil && n.Y != nil
}

// LinkData is one explicit link between two node ids.
type LinkData struct {
	Source     string      `json:"source"`
	Target     string      `json:"target"`
	FromOrient Orientation `json:"fromOrient,omitempty"`
	ToOrient   Orientation `json:"toOrient,omitempty"`
}

// GraphData is the input consumed once per graph load.
type GraphData struct {
	Nodes []NodeData
	Links []LinkData
	// HasLinks distinguishes an absent links field (infer from geometry)
	// from an explicit, possibly empty, list.
	HasLinks bool
}

type wireNode struct {
	ID     string       `json:"id"`
	Points [][2]float64 `json:"points"`
	X      *float64     `json:"x,omitempty"`
	Y      *float64     `json:"y,omitempty"`
}

type wireGraph struct {
	Nodes []wireNode  `json:"nodes"`
	Links *[]LinkData `json:"links,omitempty"`
}

// ParseGraph decodes GraphData JSON. Nodes without an id are kept and
// skipped at load time, so the rest of the graph still renders:
//
//	{"nodes": [{"id": "1", "points": [[0,0],[10,0]]}], "links": [{"source": "1", "target": "2"}]}
func ParseGraph(data []byte) (*GraphData, error) {
	var w wireGraph
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("parse graph: %w", err)
	}
	g := &GraphData{Nodes: make([]NodeData, 0, len(w.Nodes))}
	for _, wn := range w.Nodes {
		pts := make([]Vec2, len(wn.Points))
		for j, p := range wn.Points {
			pts[j] = Vec2{X: p[0], Y: p[1]}
		}
		g.Nodes = append(g.Nodes, NodeData{ID: wn.ID, Points: pts, X: wn.X, Y: wn.Y})
	}
	if w.Links != nil {
		g.HasLinks = true
		g.Links = *w.Links
	}
	return g, nil
}

// MarshalJSON encodes the graph in the same shape ParseGraph accepts.
func (g *GraphData) MarshalJSON() ([]byte, error) {
	w := wireGraph{Nodes: make([]wireNode, len(g.Nodes))}
	for i, n := range g.Nodes {
		pts := make([][2]float64, len(n.Points))
		for j, p := range n.Points {
			pts[j] = [2]float64{p.X, p.Y}
		}
		w.Nodes[i] = wireNode{ID: n.ID, Points: pts, X: n.X, Y: n.Y}
	}
	if g.HasLinks {
		links := g.Links
		if links == nil {
			links = []LinkData{}
		}
		w.Links = &links
	}
	return json.Marshal(w)
}
