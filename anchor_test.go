package strand

import "testing"

func TestAnchorClosestPair(t *testing.T) {
	a := mustNode(t, "a", pts(0, 0, 10, 0))
	b := mustNode(t, "b", pts(13, 4, 30, 4))
	c := NewAnchorCache(AnchorClosestPair)

	anc := c.GetOrCompute(a, b)
	from, to := c.Resolve(a, b, anc)
	if !vecApprox(from, Vec2{10, 0}) || !vecApprox(to, Vec2{13, 4}) {
		t.Errorf("Resolve = %v %v, want (10,0) (13,4)", from, to)
	}
	if !vecApprox(anc.SourceOffset, Vec2{5, 0}) {
		t.Errorf("SourceOffset = %v, want (5,0)", anc.SourceOffset)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}

func TestAnchorFollowsNodeWithoutRecompute(t *testing.T) {
	a := mustNode(t, "a", pts(0, 0, 10, 0))
	b := mustNode(t, "b", pts(13, 4, 30, 4))
	c := NewAnchorCache(AnchorClosestPair)
	first := c.GetOrCompute(a, b)

	// Moving a far past b would change the closest pair if it were recomputed.
	a.pos = a.pos.Add(Vec2{100, 0})
	again := c.GetOrCompute(a, b)
	if again != first {
		t.Errorf("cached anchor changed: %v -> %v", first, again)
	}
	from, _ := c.Resolve(a, b, again)
	if !vecApprox(from, Vec2{110, 0}) {
		t.Errorf("from = %v, want (110,0)", from)
	}
}

func TestAnchorSeedKeepsExisting(t *testing.T) {
	a := mustNode(t, "a", pts(0, 0, 10, 0))
	b := mustNode(t, "b", pts(12, 0, 20, 0))
	c := NewAnchorCache(AnchorClosestPair)

	seeded := c.Seed(a, b, Vec2{10, 0}, Vec2{12, 0})
	if !vecApprox(seeded.TargetOffset, Vec2{-4, 0}) {
		t.Errorf("TargetOffset = %v, want (-4,0)", seeded.TargetOffset)
	}
	again := c.Seed(a, b, Vec2{0, 0}, Vec2{20, 0})
	if again != seeded {
		t.Errorf("Seed overwrote entry: %v -> %v", seeded, again)
	}
	if got, ok := c.Lookup("a", "b"); !ok || got != seeded {
		t.Errorf("Lookup = %v %v", got, ok)
	}
	if _, ok := c.Lookup("b", "a"); ok {
		t.Error("reverse key should not be cached")
	}
}

func TestAnchorSelfLink(t *testing.T) {
	a := mustNode(t, "a", pts(0, 0, 10, 0, 10, 10))
	c := NewAnchorCache(AnchorClosestPair)
	from, to := c.Resolve(a, a, c.GetOrCompute(a, a))
	if !vecApprox(from, Vec2{10, 10}) || !vecApprox(to, Vec2{0, 0}) {
		t.Errorf("self link = %v -> %v, want last -> first", from, to)
	}
}

func TestAnchorNearestCentroid(t *testing.T) {
	a := mustNode(t, "a", pts(0, 0, 10, 0, 20, 5))
	b := mustNode(t, "b", pts(30, 0, 30, 20))
	c := NewAnchorCache(AnchorNearestCentroid)
	from, to := c.Resolve(a, b, c.GetOrCompute(a, b))
	if !vecApprox(from, Vec2{20, 5}) {
		t.Errorf("from = %v, want (20,5)", from)
	}
	if !vecApprox(to, Vec2{30, 0}) {
		t.Errorf("to = %v, want (30,0)", to)
	}
}

func TestAnchorCacheSetModeClears(t *testing.T) {
	a := mustNode(t, "a", pts(0, 0, 10, 0))
	b := mustNode(t, "b", pts(12, 0, 20, 0))
	c := NewAnchorCache(AnchorClosestPair)
	c.GetOrCompute(a, b)
	c.SetMode(AnchorNearestCentroid)
	if c.Len() != 0 {
		t.Errorf("Len = %d after SetMode, want 0", c.Len())
	}
	if c.Mode() != AnchorNearestCentroid {
		t.Errorf("Mode = %v", c.Mode())
	}
}

func TestParseAnchorMode(t *testing.T) {
	tests := []struct {
		in      string
		want    AnchorMode
		wantErr bool
	}{
		{"", AnchorClosestPair, false},
		{"closest", AnchorClosestPair, false},
		{" Centroid ", AnchorNearestCentroid, false},
		{"nearest-centroid", AnchorNearestCentroid, false},
		{"middle", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseAnchorMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseAnchorMode(%q) err = %v", tt.in, err)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseAnchorMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if AnchorNearestCentroid.String() != "centroid" {
		t.Errorf("String = %q", AnchorNearestCentroid.String())
	}
}
