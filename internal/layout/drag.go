package layout

// Drag follows a pointer dragging an item. Samples only snap the preview
// position; nothing is validated until the drag ends, so intermediate frames
// can be dropped freely.
type Drag struct {
	step    float64
	start   Point
	current Point
	ended   bool
}

// BeginDrag starts a drag of an item sitting at start.
func BeginDrag(start Point, rules Rules) *Drag {
	rules = rules.Normalize()
	return &Drag{step: rules.GridStep, start: start, current: start}
}

// Sample records a pointer offset measured from where the drag began and
// returns the snapped preview position. Samples after End are ignored.
func (d *Drag) Sample(dx, dy float64) Point {
	if d.ended {
		return d.current
	}
	d.current = Point{
		X: SnapToGrid(d.start.X+dx, d.step),
		Y: SnapToGrid(d.start.Y+dy, d.step),
	}
	return d.current
}

// End finishes the drag and returns the position to validate and commit.
func (d *Drag) End() Point {
	d.ended = true
	return d.current
}

// Cancel finishes the drag and returns the start position.
func (d *Drag) Cancel() Point {
	d.ended = true
	d.current = d.start
	return d.start
}
