package layout

import (
	"math"
	"testing"
)

func TestEvoStreetsSides(t *testing.T) {
	tr := mustOutline(t, "root{a,b,c}")
	res, err := mustNew(t, KindEvoStreets, Options{InnerHeight: 0.1, StreetWidth: 1}).Layout(tr, tr.IDs())
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}

	tests := []struct {
		name     string
		x, y, z  float64
		rotation float64
	}{
		{"root", 0, 0, 0, 0},
		{"a", -0.5, 0.1, 1, 180},
		{"b", -0.5, 0.1, -1, 0},
		{"c", 0.5, 0.1, 1, 180},
	}
	for _, tt := range tests {
		id, _ := tr.Lookup(tt.name)
		got := res[id]
		if !near(got.Position.X, tt.x) || !near(got.Position.Y, tt.y) || !near(got.Position.Z, tt.z) || got.Rotation != tt.rotation {
			t.Errorf("%s = %+v, want (%v, %v, %v) rotated %v", tt.name, got, tt.x, tt.y, tt.z, tt.rotation)
		}
	}

	root, _ := tr.Lookup("root")
	if got := res[root].Scale; !near(got.X, 2) || !near(got.Z, 1) {
		t.Errorf("street scale = %+v, want length 2 width 1", got)
	}
}

func TestEvoStreetsBranch(t *testing.T) {
	tr := mustOutline(t, "root{s{x},y}")
	res, err := mustNew(t, KindEvoStreets, Options{StreetWidth: 1}).Layout(tr, tr.IDs())
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}

	tests := []struct {
		name     string
		x, z     float64
		rotation float64
		width    float64
	}{
		{"root", 0, 0, 0, 1},
		{"s", 0.5, 1, 90, 2.0 / 3},
		{"x", -1.0 / 3, 1, 270, 1},
		{"y", -1.0 / 3, -1, 0, 1},
	}
	for _, tt := range tests {
		id, _ := tr.Lookup(tt.name)
		got := res[id]
		if !near(got.Position.X, tt.x) || !near(got.Position.Z, tt.z) || got.Rotation != tt.rotation || !near(got.Scale.Z, tt.width) {
			t.Errorf("%s = %+v, want (%v, %v) rotated %v width %v", tt.name, got, tt.x, tt.z, tt.rotation, tt.width)
		}
	}
}

func TestEvoStreetWidthAttenuation(t *testing.T) {
	l := &EvoStreets{opts: Options{StreetWidth: 3}}
	tests := []struct {
		level, maxDepth int
		want            float64
	}{
		{0, 2, 3},
		{1, 2, 2},
		{2, 2, 1},
		{0, 0, 3},
	}
	for _, tt := range tests {
		if got := l.streetWidth(tt.level, tt.maxDepth); !near(got, tt.want) {
			t.Errorf("streetWidth(%d, %d) = %v, want %v", tt.level, tt.maxDepth, got, tt.want)
		}
	}
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }
