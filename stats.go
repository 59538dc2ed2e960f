package strand

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// GraphStats are the assembly summary figures reported alongside a graph.
type GraphStats struct {
	ConnectedComponents      float64
	DeadEnds                 float64
	EdgeCount                float64
	EstimatedSequenceLength  float64
	LargestComponent         float64
	LargestEdgeOverlap       float64
	LongestNode              float64
	LowerQuartileNode        float64
	MedianDepth              float64
	MedianNode               float64
	N50                      float64
	NodeCount                float64
	PercentageDeadEnds       float64
	ShortestNode             float64
	SmallestEdgeOverlap      float64
	TotalLength              float64
	TotalLengthNoOverlaps    float64
	TotalLengthOrphanedNodes float64
	UpperQuartileNode        float64
}

// StatRow is one labelled, display-formatted statistic.
type StatRow struct {
	Label string
	Value string
}

const percentDeadEndsLabel = "Percentage dead ends"

// statFields lists every statistic in display order.
func (s *GraphStats) statFields() []struct {
	label string
	v     *float64
} {
	return []struct {
		label string
		v     *float64
	}{
		{"Connected components", &s.ConnectedComponents},
		{"Dead ends", &s.DeadEnds},
		{"Edge count", &s.EdgeCount},
		{"Estimated sequence length (bp)", &s.EstimatedSequenceLength},
		{"Largest component (bp)", &s.LargestComponent},
		{"Largest edge overlap (bp)", &s.LargestEdgeOverlap},
		{"Longest node (bp)", &s.LongestNode},
		{"Lower quartile node (bp)", &s.LowerQuartileNode},
		{"Median depth", &s.MedianDepth},
		{"Median node (bp)", &s.MedianNode},
		{"N50 (bp)", &s.N50},
		{"Node count", &s.NodeCount},
		{percentDeadEndsLabel, &s.PercentageDeadEnds},
		{"Shortest node (bp)", &s.ShortestNode},
		{"Smallest edge overlap (bp)", &s.SmallestEdgeOverlap},
		{"Total length (bp)", &s.TotalLength},
		{"Total length no overlaps (bp)", &s.TotalLengthNoOverlaps},
		{"Total length orphaned nodes (bp)", &s.TotalLengthOrphanedNodes},
		{"Upper quartile node (bp)", &s.UpperQuartileNode},
	}
}

// ParseGraphStats maps a raw label -> value record. Values may be numbers or
// numeric strings; "Percentage dead ends" may carry a trailing '%'. Missing
// labels stay zero. Every malformed value is reported in the joined error.
func ParseGraphStats(raw map[string]any) (GraphStats, error) {
	var s GraphStats
	var errs []error
	for _, f := range s.statFields() {
		v, ok := raw[f.label]
		if !ok || v == nil {
			continue
		}
		n, err := statNumber(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.label, err))
			continue
		}
		*f.v = n
	}
	if len(errs) > 0 {
		return s, fmt.Errorf("parse graph stats: %w", errors.Join(errs...))
	}
	return s, nil
}

// ParseGraphStatsJSON decodes a JSON object record and maps it.
func ParseGraphStatsJSON(data []byte) (GraphStats, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return GraphStats{}, fmt.Errorf("parse graph stats: %w", err)
	}
	return ParseGraphStats(raw)
}

func statNumber(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case json.Number:
		return x.Float64()
	case string:
		t := strings.TrimSuffix(strings.TrimSpace(x), "%")
		if t == "" {
			return 0, nil
		}
		return strconv.ParseFloat(strings.TrimSpace(t), 64)
	}
	return 0, fmt.Errorf("unsupported value %v (%T)", v, v)
}

// Rows returns the statistics formatted for display, in a fixed order.
func (s GraphStats) Rows() []StatRow {
	fields := s.statFields()
	rows := make([]StatRow, len(fields))
	for i, f := range fields {
		val := strconv.FormatFloat(*f.v, 'f', -1, 64)
		if f.label == percentDeadEndsLabel {
			val += "%"
		}
		rows[i] = StatRow{Label: f.label, Value: val}
	}
	return rows
}

// LayoutStats describes the loaded geometry and its link structure.
type LayoutStats struct {
	Nodes      int
	Renderable int
	Links      int
	// Components counts connected groups of renderable nodes.
	Components int
	// DeadEnds counts contour extremities that no link is anchored to.
	DeadEnds int
	// ContourLength is the summed centerline length of every contour.
	ContourLength float64
	Inferred      bool
}

// anchorEps is the tolerance for matching an anchor to an extremity.
const anchorEps = 1e-9

// LayoutStats derives structure figures from the current load.
func (d *Diagram) LayoutStats() LayoutStats {
	nodes := d.registry.Nodes()
	st := LayoutStats{
		Nodes:    len(nodes),
		Links:    len(d.links),
		Inferred: d.report.Inferred,
	}

	index := make(map[string]int, len(nodes))
	for _, n := range nodes {
		if n.Empty() {
			continue
		}
		index[n.ID] = st.Renderable
		st.Renderable++
		st.ContourLength += polylineLength(n.points)
	}

	uf := newUnionFind(st.Renderable)
	used := make(map[string][]Vec2, len(nodes))
	for _, l := range d.links {
		a, okA := index[l.key.Source]
		b, okB := index[l.key.Target]
		if okA && okB {
			uf.union(a, b)
		}
		if anc, ok := d.anchors.Lookup(l.key.Source, l.key.Target); ok {
			used[l.key.Source] = append(used[l.key.Source], anc.SourceOffset)
			used[l.key.Target] = append(used[l.key.Target], anc.TargetOffset)
		}
	}
	st.Components = uf.sets

	for _, n := range nodes {
		if n.Empty() {
			continue
		}
		// Anchors are stored as offsets, so compare in node-local space.
		ends := []Vec2{n.points[0]}
		if len(n.points) > 1 {
			ends = append(ends, n.points[len(n.points)-1])
		}
		for _, e := range ends {
			if !anchoredAt(used[n.ID], e) {
				st.DeadEnds++
			}
		}
	}
	return st
}

func anchoredAt(offsets []Vec2, p Vec2) bool {
	for _, o := range offsets {
		if o.DistSq(p) <= anchorEps {
			return true
		}
	}
	return false
}

func polylineLength(points []Vec2) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		total += math.Sqrt(points[i-1].DistSq(points[i]))
	}
	return total
}
