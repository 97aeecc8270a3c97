package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverlaps2D(t *testing.T) {
	tests := []struct {
		name string
		a, b Box
		want bool
	}{
		{"touching edge", Box{Width: 1, Depth: 1}, Box{X: 1, Width: 1, Depth: 1}, false},
		{"touching corner", Box{Width: 1, Depth: 1}, Box{X: 1, Y: 1, Width: 1, Depth: 1}, false},
		{"partial", Box{Width: 1, Depth: 1}, Box{X: 0.5, Y: 0.5, Width: 1, Depth: 1}, true},
		{"contained", Box{Width: 4, Depth: 4}, Box{X: 1, Y: 1, Width: 1, Depth: 1}, true},
		{"disjoint", Box{Width: 1, Depth: 1}, Box{X: 5, Y: 5, Width: 1, Depth: 1}, false},
		{"float packed", Box{Width: 0.1 + 0.2, Depth: 1}, Box{X: 0.3, Width: 1, Depth: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps2D(tt.a, tt.b))
			assert.Equal(t, tt.want, Overlaps2D(tt.b, tt.a), "symmetric")
		})
	}
}

func TestOverlaps3DStackedLevels(t *testing.T) {
	lower := Box{Width: 1.5, Depth: 1.2, Height: 0.8}
	upper := Box{Z: 0.8, Width: 1.5, Depth: 1.2, Height: 0.8}
	assert.False(t, Overlaps3D(lower, upper))
	assert.False(t, Overlaps3D(upper, lower))

	upper.Z = 0.5
	assert.True(t, Overlaps3D(lower, upper))
	assert.True(t, Overlaps3D(upper, lower))
}

func TestContainsFootprint(t *testing.T) {
	zone := Box{X: 2, Y: 2, Width: 10, Depth: 8}
	assert.True(t, zone.ContainsFootprint(Box{X: 2, Y: 2, Width: 10, Depth: 8}), "shared edges")
	assert.True(t, zone.ContainsFootprint(Box{X: 5, Y: 5, Width: 1, Depth: 1}))
	assert.False(t, zone.ContainsFootprint(Box{X: 11, Y: 5, Width: 1.5, Depth: 1}))
	assert.False(t, zone.ContainsFootprint(Box{X: 1.5, Y: 5, Width: 1, Depth: 1}))
}

func TestBoxHelpers(t *testing.T) {
	b := Box{X: 1, Y: 2, Z: 3, Width: 4, Depth: 5, Height: 6}
	assert.Equal(t, 5.0, b.Right())
	assert.Equal(t, 7.0, b.Bottom())
	assert.Equal(t, 9.0, b.Top())
	assert.Equal(t, Box{X: 1, Y: 2, Width: 4, Depth: 5}, b.Footprint())
	assert.Equal(t, Box{X: 0.5, Y: 1.5, Z: 3, Width: 5, Depth: 6, Height: 6}, b.Expand(0.5))
	assert.Equal(t, Box{X: 3, Y: 1, Z: 3, Width: 4, Depth: 5, Height: 6}, b.Translate(2, -1))
}

func TestSnapToGrid(t *testing.T) {
	tests := []struct {
		v, step, want float64
	}{
		{1.26, 0.5, 1.5},
		{1.24, 0.5, 1.0},
		{3.0, 0.5, 3.0},
		{-0.3, 0.5, -0.5},
		{2.34, 0.1, 2.3},
		{3.14159, 0, 3.142},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, SnapToGrid(tt.v, tt.step), 1e-9, "snap %v to %v", tt.v, tt.step)
	}
}
