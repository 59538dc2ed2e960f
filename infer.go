package strand

import "slices"

// DefaultLinkThreshold is the distance below which two segment ends are
// considered physically adjacent.
const DefaultLinkThreshold = 15.0

// InferredLink is a link derived from geometry together with the two
// matched extreme points (model space at inference time).
type InferredLink struct {
	Source, Target             string
	SourceAnchor, TargetAnchor Vec2
	DistSq                     float64
}

type extremeCandidate struct {
	a, b   int // indices into the node slice
	pa, pb Vec2
	distSq float64
}

// InferLinks connects nodes whose contour ends lie within threshold of each
// other, never closing a cycle. Candidates (every extreme pairing of every
// pair of non-empty nodes) are sorted by squared distance, ties kept in
// enumeration order, and accepted Kruskal-style through a union-find over
// node ids. The result is a spanning forest: len(result) equals
// nodeCount - componentCount over the nodes it touches.
func InferLinks(nodes []*Node, threshold float64) []InferredLink {
	limit := threshold * threshold

	type ends struct {
		pts [2]Vec2
		ok  bool
	}
	ext := make([]ends, len(nodes))
	for i, n := range nodes {
		first, last, ok := n.Extremes()
		ext[i] = ends{pts: [2]Vec2{first, last}, ok: ok}
	}

	var cands []extremeCandidate
	for i := range nodes {
		if !ext[i].ok {
			continue
		}
		for j := i + 1; j < len(nodes); j++ {
			if !ext[j].ok {
				continue
			}
			for _, pa := range ext[i].pts {
				for _, pb := range ext[j].pts {
					d := pa.DistSq(pb)
					if d < limit {
						cands = append(cands, extremeCandidate{a: i, b: j, pa: pa, pb: pb, distSq: d})
					}
				}
			}
		}
	}

	slices.SortStableFunc(cands, func(x, y extremeCandidate) int {
		switch {
		case x.distSq < y.distSq:
			return -1
		case x.distSq > y.distSq:
			return 1
		}
		return 0
	})

	uf := newUnionFind(len(nodes))
	var links []InferredLink
	for _, c := range cands {
		if !uf.union(c.a, c.b) {
			continue
		}
		links = append(links, InferredLink{
			Source:       nodes[c.a].ID,
			Target:       nodes[c.b].ID,
			SourceAnchor: c.pa,
			TargetAnchor: c.pb,
			DistSq:       c.distSq,
		})
		if len(links) == len(nodes)-1 {
			break
		}
	}
	return links
}

// unionFind is a disjoint-set forest with path halving and union by size.
type unionFind struct {
	parent []int
	size   []int
	sets   int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n), size: make([]int, n), sets: n}
	for i := range uf.parent {
		uf.parent[i] = i
		uf.size[i] = 1
	}
	return uf
}

func (u *unionFind) find(x int) int {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

// union merges the sets of a and b. Returns false if they were already joined.
func (u *unionFind) union(a, b int) bool {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return false
	}
	if u.size[ra] < u.size[rb] {
		ra, rb = rb, ra
	}
	u.parent[rb] = ra
	u.size[ra] += u.size[rb]
	u.sets--
	return true
}
