package layout

// ObstacleKind tells where an obstacle came from.
type ObstacleKind string

const (
	ObstacleShelf ObstacleKind = "shelf"
	ObstacleZone  ObstacleKind = "zone"
	ObstacleArea  ObstacleKind = "area"
)

// Obstacle is a box a new placement must avoid, tagged with its source record.
type Obstacle struct {
	Box
	Kind  ObstacleKind `json:"kind"`
	ID    string       `json:"id"`
	Label string       `json:"label,omitempty"`
}

// ZoneObstacles collects what a placement inside zoneID must avoid: the shelves
// currently in the zone plus every non-passable area of the floor. When replace
// is set the zone's own shelves are left out, because a bulk regenerate
// overwrites them.
func ZoneObstacles(p Plan, zoneID string, replace bool) []Obstacle {
	var out []Obstacle
	if !replace {
		for _, s := range p.ShelvesInZone(zoneID) {
			out = append(out, Obstacle{Box: ShelfBox(s), Kind: ObstacleShelf, ID: s.ID, Label: s.ShelfCode})
		}
	}
	return append(out, obstacleAreas(p)...)
}

// FloorObstacles collects the same-kind items already on the floor plus the
// non-passable areas. It is the input of the position finder.
func FloorObstacles(p Plan, kind ItemKind) []Obstacle {
	var out []Obstacle
	switch kind {
	case KindZone:
		for _, z := range p.Zones() {
			out = append(out, Obstacle{Box: ZoneBox(z), Kind: ObstacleZone, ID: z.ID, Label: z.ZoneName})
		}
	default:
		for _, s := range p.Shelves() {
			out = append(out, Obstacle{Box: ShelfBox(s), Kind: ObstacleShelf, ID: s.ID, Label: s.ShelfCode})
		}
	}
	return append(out, obstacleAreas(p)...)
}

func obstacleAreas(p Plan) []Obstacle {
	ceiling := p.Bounds().Height
	var out []Obstacle
	for _, a := range p.Areas() {
		if !a.IsObstacle() {
			continue
		}
		out = append(out, Obstacle{Box: AreaBox(a, ceiling), Kind: ObstacleArea, ID: a.ID, Label: a.AreaName})
	}
	return out
}

// firstOverlap2D returns the first obstacle whose footprint intersects b.
func firstOverlap2D(b Box, obstacles []Obstacle) (Obstacle, bool) {
	for _, o := range obstacles {
		if Overlaps2D(b, o.Box) {
			return o, true
		}
	}
	return Obstacle{}, false
}

// firstOverlap3D returns the first obstacle whose box intersects b.
func firstOverlap3D(b Box, obstacles []Obstacle) (Obstacle, bool) {
	for _, o := range obstacles {
		if Overlaps3D(b, o.Box) {
			return o, true
		}
	}
	return Obstacle{}, false
}
