package strand

import (
	"encoding/json"
	"testing"
)

func TestParseGraphLinksPresence(t *testing.T) {
	tests := []struct {
		name     string
		json     string
		hasLinks bool
		links    int
	}{
		{"absent", `{"nodes":[]}`, false, 0},
		{"null", `{"nodes":[],"links":null}`, false, 0},
		{"empty", `{"nodes":[],"links":[]}`, true, 0},
		{"one", `{"nodes":[],"links":[{"source":"a","target":"b"}]}`, true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ParseGraph([]byte(tt.json))
			if err != nil {
				t.Fatal(err)
			}
			if g.HasLinks != tt.hasLinks || len(g.Links) != tt.links {
				t.Errorf("HasLinks = %v, links = %d", g.HasLinks, len(g.Links))
			}
		})
	}
}

func TestParseGraphNodes(t *testing.T) {
	g, err := ParseGraph([]byte(`{"nodes":[
		{"id":"1","points":[[0,0],[10,5]]},
		{"id":"2","points":[],"x":3,"y":-4}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Nodes) != 2 {
		t.Fatalf("nodes = %d", len(g.Nodes))
	}
	if g.Nodes[0].HasPosition() || g.Nodes[0].Points[1] != (Vec2{10, 5}) {
		t.Errorf("node 1 = %+v", g.Nodes[0])
	}
	if !g.Nodes[1].HasPosition() || *g.Nodes[1].X != 3 || *g.Nodes[1].Y != -4 {
		t.Errorf("node 2 = %+v", g.Nodes[1])
	}
}

func TestParseGraphOrientation(t *testing.T) {
	g, err := ParseGraph([]byte(`{"nodes":[],"links":[
		{"source":"a","target":"b","fromOrient":"+","toOrient":"-"},
		{"source":"b","target":"c","fromOrient":null}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	if g.Links[0].FromOrient != OrientForward || g.Links[0].ToOrient != OrientReverse {
		t.Errorf("link 0 = %+v", g.Links[0])
	}
	if g.Links[1].FromOrient != OrientUnspecified || g.Links[1].ToOrient != OrientUnspecified {
		t.Errorf("link 1 = %+v", g.Links[1])
	}
}

func TestParseGraphErrors(t *testing.T) {
	for _, in := range []string{
		`{"nodes":[],"links":[{"source":"a","target":"b","fromOrient":"?"}]}`,
		`{"nodes":`,
	} {
		if _, err := ParseGraph([]byte(in)); err == nil {
			t.Errorf("ParseGraph(%s) succeeded, want error", in)
		}
	}
}

func TestParseGraphKeepsNodesWithoutID(t *testing.T) {
	g, err := ParseGraph([]byte(`{"nodes":[{"id":"a","points":[[0,0]]},{"points":[[1,1]]}]}`))
	if err != nil {
		t.Fatalf("ParseGraph: %v", err)
	}
	if len(g.Nodes) != 2 || g.Nodes[1].ID != "" {
		t.Errorf("nodes = %+v", g.Nodes)
	}
}

func TestGraphDataMarshalKeepsLinkPresence(t *testing.T) {
	g := &GraphData{
		Nodes:    []NodeData{{ID: "a", Points: pts(0, 0, 1, 1)}},
		HasLinks: true,
	}
	data, err := json.Marshal(g)
	if err != nil {
		t.Fatal(err)
	}
	back, err := ParseGraph(data)
	if err != nil {
		t.Fatal(err)
	}
	if !back.HasLinks || len(back.Links) != 0 {
		t.Errorf("empty link list lost: %s", data)
	}
	if back.Nodes[0].Points[1] != (Vec2{1, 1}) {
		t.Errorf("points = %v", back.Nodes[0].Points)
	}
}
