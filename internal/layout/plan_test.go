package layout

import "github.com/Haricane11/OptiWareUi-sub000/internal/models"

// fakePlan is an in-memory Plan for the geometry tests.
type fakePlan struct {
	bounds  Box
	zones   []models.Zone
	shelves []models.Shelf
	areas   []models.Area
}

func newFakePlan() *fakePlan {
	return &fakePlan{bounds: Box{Width: 50, Depth: 50, Height: 10}}
}

func (p *fakePlan) Bounds() Box             { return p.bounds }
func (p *fakePlan) Zones() []models.Zone    { return p.zones }
func (p *fakePlan) Shelves() []models.Shelf { return p.shelves }
func (p *fakePlan) Areas() []models.Area    { return p.areas }

func (p *fakePlan) Zone(id string) (models.Zone, bool) {
	for _, z := range p.zones {
		if z.ID == id {
			return z, true
		}
	}
	return models.Zone{}, false
}

func (p *fakePlan) Shelf(id string) (models.Shelf, bool) {
	for _, s := range p.shelves {
		if s.ID == id {
			return s, true
		}
	}
	return models.Shelf{}, false
}

func (p *fakePlan) ShelvesInZone(zoneID string) []models.Shelf {
	var out []models.Shelf
	for _, s := range p.shelves {
		if s.ZoneID == zoneID {
			out = append(out, s)
		}
	}
	return out
}

func (p *fakePlan) Area(id string) (models.Area, bool) {
	for _, a := range p.areas {
		if a.ID == id {
			return a, true
		}
	}
	return models.Area{}, false
}

func zoneAt(id string, x, y, w, d float64) models.Zone {
	return models.Zone{ID: id, ZoneName: id, LocationX: x, LocationY: y, Width: w, Depth: d}
}

func shelfAt(id, zoneID string, x, y, w, d float64) models.Shelf {
	return models.Shelf{ID: id, ZoneID: zoneID, ShelfCode: id, LocationX: x, LocationY: y, Width: w, Depth: d, Height: 1}
}

func obstacleArea(id string, x, y, w, d float64) models.Area {
	return models.Area{ID: id, AreaName: id, AreaType: models.AreaTypePillar, UsageCategory: models.UsageObstacle,
		LocationX: x, LocationY: y, Width: w, Depth: d}
}
