package strand

import "math/rand/v2"

// colorCache memoizes one random fill per node id. It lives for one graph
// load and is reset by Load.
type colorCache struct {
	rng    *rand.Rand
	colors map[string]Color
}

func newColorCache(seed uint64) *colorCache {
	return newColorCacheFrom(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func newColorCacheFrom(src rand.Source) *colorCache {
	return &colorCache{rng: rand.New(src), colors: make(map[string]Color)}
}

// colorFor returns the memoized color for id, drawing one on first use.
func (c *colorCache) colorFor(id string) Color {
	if col, ok := c.colors[id]; ok {
		return col
	}
	col := ColorFromRGB24(uint32(c.rng.IntN(1 << 24)))
	c.colors[id] = col
	return col
}

// reset forgets every assignment.
func (c *colorCache) reset() {
	clear(c.colors)
}

// fillFor returns the fill for a node under the active color mode.
func (d *Diagram) fillFor(id string) Color {
	if d.settings.RandomColors {
		return d.colors.colorFor(id)
	}
	return ColorNodeFill
}
