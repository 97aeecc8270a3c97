// Package layout holds the floor-plan geometry engine: the overlap primitive,
// obstacle collection, free-position search, the bulk rack generator, the
// move/resize validator and generator-parameter inference.
//
// All coordinates are metres on a floor whose origin is the top-left corner;
// x grows to the right, y grows towards the back of the building and z is
// height above the floor.
package layout

import "math"

// epsilon absorbs float noise so that boxes packed edge to edge
// (0.1*3 + 0.1 vs 0.4) are not reported as overlapping.
const epsilon = 1e-9

// Box is an axis-aligned box: an origin plus extents.
// A 2D footprint is a Box with zero Z and Height.
type Box struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Z      float64 `json:"z"`
	Width  float64 `json:"width"`
	Depth  float64 `json:"depth"`
	Height float64 `json:"height"`
}

// Right returns the x coordinate of the far edge.
func (b Box) Right() float64 { return b.X + b.Width }

// Bottom returns the y coordinate of the far edge.
func (b Box) Bottom() float64 { return b.Y + b.Depth }

// Top returns the z coordinate of the upper face.
func (b Box) Top() float64 { return b.Z + b.Height }

// Footprint drops the vertical extent.
func (b Box) Footprint() Box {
	return Box{X: b.X, Y: b.Y, Width: b.Width, Depth: b.Depth}
}

// Expand grows the footprint by margin on every side. Z is untouched.
func (b Box) Expand(margin float64) Box {
	b.X -= margin
	b.Y -= margin
	b.Width += 2 * margin
	b.Depth += 2 * margin
	return b
}

// Translate shifts the box in the floor plane.
func (b Box) Translate(dx, dy float64) Box {
	b.X += dx
	b.Y += dy
	return b
}

// ContainsFootprint reports whether other's footprint lies inside b's footprint.
// Shared edges count as inside.
func (b Box) ContainsFootprint(other Box) bool {
	return other.X >= b.X-epsilon && other.Y >= b.Y-epsilon &&
		other.Right() <= b.Right()+epsilon && other.Bottom() <= b.Bottom()+epsilon
}

// Overlaps2D reports whether the footprints of a and b intersect.
// Touching edges are not an overlap.
func Overlaps2D(a, b Box) bool {
	return overlapAxis(a.X, a.Width, b.X, b.Width) &&
		overlapAxis(a.Y, a.Depth, b.Y, b.Depth)
}

// Overlaps3D reports whether a and b intersect on all three axes.
func Overlaps3D(a, b Box) bool {
	return Overlaps2D(a, b) && overlapAxis(a.Z, a.Height, b.Z, b.Height)
}

func overlapAxis(a0, aLen, b0, bLen float64) bool {
	return a0 < b0+bLen-epsilon && b0 < a0+aLen-epsilon
}

// roundMM rounds to the millimetre.
func roundMM(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// roundDM rounds to 0.1 m.
func roundDM(v float64) float64 {
	return math.Round(v*10) / 10
}

// SnapToGrid rounds v to the nearest multiple of step. A non-positive step
// leaves v unchanged apart from millimetre rounding.
func SnapToGrid(v, step float64) float64 {
	if step <= 0 {
		return roundMM(v)
	}
	return roundMM(math.Round(v/step) * step)
}
