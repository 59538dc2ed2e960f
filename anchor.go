package strand

import (
	"fmt"
	"strings"
)

// AnchorMode selects how anchors are discovered for links that arrive
// without known anchor points.
type AnchorMode uint8

const (
	// AnchorClosestPair searches every contour point pair for the minimum
	// distance. O(|A|·|B|), run once per link per load.
	AnchorClosestPair AnchorMode = iota
	// AnchorNearestCentroid picks, on each node, the contour point closest
	// to the other node's centroid.
	AnchorNearestCentroid
)

// String returns the mode name used in configuration files.
func (m AnchorMode) String() string {
	switch m {
	case AnchorNearestCentroid:
		return "centroid"
	default:
		return "closest"
	}
}

// ParseAnchorMode accepts "closest" or "centroid".
func ParseAnchorMode(s string) (AnchorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "closest", "closest-pair":
		return AnchorClosestPair, nil
	case "centroid", "nearest-centroid":
		return AnchorNearestCentroid, nil
	}
	return 0, fmt.Errorf("anchor mode %q: want closest or centroid", s)
}

// AnchorKey identifies a link by its endpoint ids.
type AnchorKey struct {
	Source, Target string
}

// Anchor holds a link's endpoints as offsets from each node's position.
type Anchor struct {
	SourceOffset Vec2
	TargetOffset Vec2
}

// AnchorCache stores one Anchor per link for the lifetime of a graph load.
// Entries are computed at most once; redraws only translate them, so moving
// a node never triggers another closest-point search.
type AnchorCache struct {
	mode    AnchorMode
	entries map[AnchorKey]Anchor
}

// NewAnchorCache creates an empty cache using mode for anchor discovery.
func NewAnchorCache(mode AnchorMode) *AnchorCache {
	return &AnchorCache{mode: mode, entries: make(map[AnchorKey]Anchor)}
}

// Mode returns the discovery mode.
func (c *AnchorCache) Mode() AnchorMode {
	return c.mode
}

// Len returns the number of cached anchors.
func (c *AnchorCache) Len() int {
	return len(c.entries)
}

// Clear drops every entry. Called once per graph load, never per move.
func (c *AnchorCache) Clear() {
	clear(c.entries)
}

// SetMode changes the discovery mode and clears the cache.
func (c *AnchorCache) SetMode(mode AnchorMode) {
	c.mode = mode
	c.Clear()
}

// Lookup returns the cached anchor for (source, target).
func (c *AnchorCache) Lookup(source, target string) (Anchor, bool) {
	a, ok := c.entries[AnchorKey{source, target}]
	return a, ok
}

// Seed stores known absolute anchor points (from link inference) as offsets
// relative to the nodes' current positions. An existing entry is kept.
func (c *AnchorCache) Seed(a, b *Node, absA, absB Vec2) Anchor {
	key := AnchorKey{a.ID, b.ID}
	if cached, ok := c.entries[key]; ok {
		return cached
	}
	anc := Anchor{SourceOffset: absA.Sub(a.pos), TargetOffset: absB.Sub(b.pos)}
	c.entries[key] = anc
	return anc
}

// GetOrCompute returns the cached anchor for (a, b), computing and storing it
// on first use.
func (c *AnchorCache) GetOrCompute(a, b *Node) Anchor {
	key := AnchorKey{a.ID, b.ID}
	if cached, ok := c.entries[key]; ok {
		return cached
	}

	var pa, pb Vec2
	switch {
	case a == b:
		// Self-link: leave from the end of the segment, return to its start.
		pb, pa, _ = a.Extremes()
	case c.mode == AnchorNearestCentroid:
		pa, pb = nearestToCentroid(a, b), nearestToCentroid(b, a)
	default:
		pa, pb = closestPair(a, b)
	}
	anc := Anchor{SourceOffset: pa.Sub(a.pos), TargetOffset: pb.Sub(b.pos)}
	c.entries[key] = anc
	return anc
}

// Resolve converts an anchor back to model space: position + offset. O(1).
func (c *AnchorCache) Resolve(a, b *Node, anc Anchor) (from, to Vec2) {
	return a.pos.Add(anc.SourceOffset), b.pos.Add(anc.TargetOffset)
}

// closestPair returns the absolute contour points of a and b with minimum
// squared distance. Empty contours contribute their position.
func closestPair(a, b *Node) (Vec2, Vec2) {
	if a.Empty() || b.Empty() {
		return a.pos, b.pos
	}
	best := -1.0
	var pa, pb Vec2
	for _, p := range a.points {
		ap := a.pos.Add(p)
		for _, q := range b.points {
			bq := b.pos.Add(q)
			d := ap.DistSq(bq)
			if best < 0 || d < best {
				best = d
				pa, pb = ap, bq
			}
		}
	}
	return pa, pb
}

// nearestToCentroid returns the absolute point of n closest to other's
// centroid. Falls back to other's position when the centroid is degenerate.
func nearestToCentroid(n, other *Node) Vec2 {
	if n.Empty() {
		return n.pos
	}
	target, ok := Centroid(other.AbsolutePoints())
	if !ok {
		target = other.pos
	}
	best := n.pos.Add(n.points[0])
	bestD := best.DistSq(target)
	for _, p := range n.points[1:] {
		ap := n.pos.Add(p)
		if d := ap.DistSq(target); d < bestD {
			best, bestD = ap, d
		}
	}
	return best
}
