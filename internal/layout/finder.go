package layout

// Placement is the answer of the position finder. Found is false when the
// search gave up; X and Y then hold the kind's origin and may collide.
type Placement struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Found bool    `json:"found"`
}

// FindPosition scans the floor grid row by row (x first, then y) from the
// kind-specific origin and returns the first spot where a width × depth
// footprint, grown by the clearance, touches no same-kind item and no obstacle
// area. The scan stops after MaxSearchSteps candidates or once a row would
// pass the floor depth.
func FindPosition(p Plan, width, depth float64, kind ItemKind, rules Rules) Placement {
	rules = rules.Normalize()
	origin := rules.origin(kind)
	fallback := Placement{X: origin.X, Y: origin.Y}

	bounds := p.Bounds()
	obstacles := FloorObstacles(p, kind)
	step := rules.GridStep

	steps := 0
	for y := origin.Y; y+depth <= bounds.Bottom()+epsilon; y = roundMM(y + step) {
		for x := origin.X; x+width <= bounds.Right()+epsilon; x = roundMM(x + step) {
			if steps >= rules.MaxSearchSteps {
				return fallback
			}
			steps++

			candidate := Box{X: x, Y: y, Width: width, Depth: depth}.Expand(rules.Clearance)
			if _, hit := firstOverlap2D(candidate, obstacles); !hit {
				return Placement{X: x, Y: y, Found: true}
			}
		}
	}
	return fallback
}
