package strand

import (
	"math"
	"testing"
)

// saturatedSource always returns the largest value, the top of every range.
type saturatedSource struct{}

func (saturatedSource) Uint64() uint64 { return math.MaxUint64 }

func TestColorForCoversFullRange(t *testing.T) {
	c := newColorCacheFrom(saturatedSource{})
	if got := c.colorFor("n").Hex(); got != "#ffffff" {
		t.Errorf("color = %s, want #ffffff", got)
	}
}

func TestColorForMemoizesUntilReset(t *testing.T) {
	c := newColorCache(7)
	first := c.colorFor("a")
	if again := c.colorFor("a"); again != first {
		t.Errorf("second draw = %v, want %v", again, first)
	}
	c.reset()
	if len(c.colors) != 0 {
		t.Errorf("colors after reset = %d", len(c.colors))
	}
}
