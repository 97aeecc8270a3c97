package layout

import (
	"fmt"
	"math"

	"github.com/Haricane11/OptiWareUi-sub000/internal/models"
)

// Rejection reasons reported in a Decision.
const (
	ReasonOutOfBounds     = "out_of_bounds"
	ReasonOverlapsArea    = "overlaps_obstacle_area"
	ReasonOverlapsZone    = "overlaps_zone"
	ReasonOrphansShelves  = "orphans_shelves"
	ReasonSessionFinished = "session_finished"
	ReasonNoFreePosition  = "no_free_position"
)

// Decision is the verdict on an interactive edit. A rejected edit is not an
// error: the caller keeps the prior geometry and tells the user.
type Decision struct {
	Accepted bool      `json:"accepted"`
	Reason   string    `json:"reason,omitempty"`
	Conflict *Obstacle `json:"conflict,omitempty"`
}

func accepted() Decision { return Decision{Accepted: true} }

func rejected(reason string, conflict *Obstacle) Decision {
	return Decision{Reason: reason, Conflict: conflict}
}

// MoveShelf snaps a dragged shelf to the grid. Shelf moves are never rejected;
// only the generator enforces shelf spacing.
func MoveShelf(p Plan, shelfID string, x, y float64, rules Rules) (models.Shelf, error) {
	rules = rules.Normalize()
	s, ok := p.Shelf(shelfID)
	if !ok {
		return models.Shelf{}, fmt.Errorf("shelf %s: %w", shelfID, ErrNotFound)
	}
	s.LocationX = math.Max(0, SnapToGrid(x, rules.GridStep))
	s.LocationY = math.Max(0, SnapToGrid(y, rules.GridStep))
	return s, nil
}

// CheckZone validates a zone rectangle against the floor: it must stay inside
// the floor and clear of every non-passable area.
func CheckZone(p Plan, z models.Zone) Decision {
	box := ZoneBox(z)
	if box.X < -epsilon || box.Y < -epsilon || !p.Bounds().ContainsFootprint(box) {
		return rejected(ReasonOutOfBounds, nil)
	}
	if o, hit := firstOverlap2D(box, obstacleAreas(p)); hit {
		return rejected(ReasonOverlapsArea, &o)
	}
	return accepted()
}

// ZoneMove is the outcome of MoveZone. On rejection Zone and Shelves hold the
// unchanged records.
type ZoneMove struct {
	Decision
	Zone    models.Zone    `json:"zone"`
	Shelves []models.Shelf `json:"shelves"`
	DX      float64        `json:"dx"`
	DY      float64        `json:"dy"`
}

// MoveZone moves a zone to the snapped (x, y) and carries every shelf of the
// zone along by the same delta.
func MoveZone(p Plan, zoneID string, x, y float64, rules Rules) (ZoneMove, error) {
	rules = rules.Normalize()
	zone, ok := p.Zone(zoneID)
	if !ok {
		return ZoneMove{}, fmt.Errorf("zone %s: %w", zoneID, ErrNotFound)
	}
	shelves := p.ShelvesInZone(zoneID)
	move := ZoneMove{Zone: zone, Shelves: shelves}

	candidate := zone
	candidate.LocationX = SnapToGrid(x, rules.GridStep)
	candidate.LocationY = SnapToGrid(y, rules.GridStep)
	if d := CheckZone(p, candidate); !d.Accepted {
		move.Decision = d
		return move, nil
	}

	dx := roundMM(candidate.LocationX - zone.LocationX)
	dy := roundMM(candidate.LocationY - zone.LocationY)
	moved := make([]models.Shelf, len(shelves))
	for i, s := range shelves {
		s.LocationX = roundMM(s.LocationX + dx)
		s.LocationY = roundMM(s.LocationY + dy)
		moved[i] = s
	}

	return ZoneMove{Decision: accepted(), Zone: candidate, Shelves: moved, DX: dx, DY: dy}, nil
}

// ZoneResize tracks one interactive resize of a zone. Every pointer sample is
// checked on its own; a rejected sample keeps the last accepted size. Only
// Commit yields a size worth persisting.
type ZoneResize struct {
	plan     Plan
	rules    Rules
	original models.Zone
	current  models.Zone
	extent   Box
	finished bool
}

// BeginZoneResize starts a resize of zoneID from its current size.
func BeginZoneResize(p Plan, zoneID string, rules Rules) (*ZoneResize, error) {
	zone, ok := p.Zone(zoneID)
	if !ok {
		return nil, fmt.Errorf("zone %s: %w", zoneID, ErrNotFound)
	}
	r := &ZoneResize{plan: p, rules: rules.Normalize(), original: zone, current: zone}
	r.extent = clipFootprint(shelfExtent(zone, p.ShelvesInZone(zoneID)), ZoneBox(zone))
	return r, nil
}

// Sample applies a pointer delta measured from where the resize began.
func (r *ZoneResize) Sample(dw, dd float64) Decision {
	if r.finished {
		return rejected(ReasonSessionFinished, nil)
	}
	step := r.rules.GridStep
	candidate := r.current
	candidate.Width = math.Max(step, SnapToGrid(r.original.Width+dw, step))
	candidate.Depth = math.Max(step, SnapToGrid(r.original.Depth+dd, step))

	if !ZoneBox(candidate).ContainsFootprint(r.extent) {
		return rejected(ReasonOrphansShelves, nil)
	}
	d := CheckZone(r.plan, candidate)
	if d.Accepted {
		r.current = candidate
	}
	return d
}

// Current is the size shown while the pointer is still down.
func (r *ZoneResize) Current() models.Zone { return r.current }

// Commit ends the session and returns the zone to persist. changed is false
// when the final size equals the starting size.
func (r *ZoneResize) Commit() (zone models.Zone, changed bool) {
	r.finished = true
	changed = r.current.Width != r.original.Width || r.current.Depth != r.original.Depth
	return r.current, changed
}

// Cancel ends the session and returns the untouched zone.
func (r *ZoneResize) Cancel() models.Zone {
	r.finished = true
	r.current = r.original
	return r.original
}

// shelfExtent is the footprint that must stay inside the zone. With no shelves
// it is an empty box at the zone origin.
func shelfExtent(z models.Zone, shelves []models.Shelf) Box {
	if len(shelves) == 0 {
		return Box{X: z.LocationX, Y: z.LocationY}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, s := range shelves {
		minX = math.Min(minX, s.LocationX)
		minY = math.Min(minY, s.LocationY)
		maxX = math.Max(maxX, s.LocationX+s.Width)
		maxY = math.Max(maxY, s.LocationY+s.Depth)
	}
	return Box{X: minX, Y: minY, Width: maxX - minX, Depth: maxY - minY}
}

// clipFootprint intersects two footprints. Disjoint inputs give an empty box at
// bound's origin.
func clipFootprint(b, bound Box) Box {
	x0, y0 := math.Max(b.X, bound.X), math.Max(b.Y, bound.Y)
	x1, y1 := math.Min(b.Right(), bound.Right()), math.Min(b.Bottom(), bound.Bottom())
	if x1 < x0 || y1 < y0 {
		return Box{X: bound.X, Y: bound.Y}
	}
	return Box{X: x0, Y: y0, Width: x1 - x0, Depth: y1 - y0}
}

// AreaChange is the outcome of an area move or resize. On rejection Area holds
// the unchanged record.
type AreaChange struct {
	Decision
	Area models.Area `json:"area"`
}

// CheckArea validates an area rectangle. Non-passable areas may not cover a
// zone; passable areas are walkable space and may overlap storage zones.
func CheckArea(p Plan, a models.Area) Decision {
	box := AreaBox(a, p.Bounds().Height)
	if box.X < -epsilon || box.Y < -epsilon || !p.Bounds().ContainsFootprint(box) {
		return rejected(ReasonOutOfBounds, nil)
	}
	if !a.IsObstacle() {
		return accepted()
	}
	for _, z := range p.Zones() {
		if Overlaps2D(box, ZoneBox(z)) {
			return rejected(ReasonOverlapsZone, &Obstacle{Box: ZoneBox(z), Kind: ObstacleZone, ID: z.ID, Label: z.ZoneName})
		}
	}
	return accepted()
}

// MoveArea moves an area to the snapped (x, y).
func MoveArea(p Plan, areaID string, x, y float64, rules Rules) (AreaChange, error) {
	rules = rules.Normalize()
	area, ok := p.Area(areaID)
	if !ok {
		return AreaChange{}, fmt.Errorf("area %s: %w", areaID, ErrNotFound)
	}
	candidate := area
	candidate.LocationX = SnapToGrid(x, rules.GridStep)
	candidate.LocationY = SnapToGrid(y, rules.GridStep)
	return decideArea(p, area, candidate), nil
}

// ResizeArea gives an area the snapped width and depth.
func ResizeArea(p Plan, areaID string, width, depth float64, rules Rules) (AreaChange, error) {
	rules = rules.Normalize()
	area, ok := p.Area(areaID)
	if !ok {
		return AreaChange{}, fmt.Errorf("area %s: %w", areaID, ErrNotFound)
	}
	step := rules.GridStep
	candidate := area
	candidate.Width = math.Max(step, SnapToGrid(width, step))
	candidate.Depth = math.Max(step, SnapToGrid(depth, step))
	return decideArea(p, area, candidate), nil
}

func decideArea(p Plan, prior, candidate models.Area) AreaChange {
	if d := CheckArea(p, candidate); !d.Accepted {
		return AreaChange{Decision: d, Area: prior}
	}
	return AreaChange{Decision: accepted(), Area: candidate}
}
