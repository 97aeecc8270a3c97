package layout

import (
	"errors"
	"fmt"

	"github.com/Haricane11/OptiWareUi-sub000/internal/models"
)

// ErrNotFound is returned when a referenced zone, shelf or area is not on the plan.
var ErrNotFound = errors.New("layout: entity not found")

// Plan is a read-only view of one floor. store.Snapshot implements it.
type Plan interface {
	// Bounds is the floor extent; Height is the clear building height.
	Bounds() Box
	Zones() []models.Zone
	Zone(id string) (models.Zone, bool)
	Shelves() []models.Shelf
	Shelf(id string) (models.Shelf, bool)
	ShelvesInZone(zoneID string) []models.Shelf
	Areas() []models.Area
	Area(id string) (models.Area, bool)
}

// ItemKind selects which same-kind items the position finder keeps clear of.
type ItemKind string

const (
	KindShelf ItemKind = "shelf"
	KindZone  ItemKind = "zone"
)

// ParseItemKind validates a kind received from a client.
func ParseItemKind(s string) (ItemKind, error) {
	switch ItemKind(s) {
	case KindShelf, KindZone:
		return ItemKind(s), nil
	}
	return "", fmt.Errorf("unknown item kind %q", s)
}

// ZoneBox is the footprint of a zone. Height is left at zero.
func ZoneBox(z models.Zone) Box {
	return Box{X: z.LocationX, Y: z.LocationY, Width: z.Width, Depth: z.Depth}
}

// ShelfBox is the full 3D box of a shelf level.
func ShelfBox(s models.Shelf) Box {
	return Box{
		X: s.LocationX, Y: s.LocationY, Z: s.LocationZ,
		Width: s.Width, Depth: s.Depth, Height: s.Height,
	}
}

// AreaBox is the box of an area standing on the floor. Areas drawn without a
// height reach the ceiling.
func AreaBox(a models.Area, ceiling float64) Box {
	h := a.Height
	if h <= 0 {
		h = ceiling
	}
	return Box{X: a.LocationX, Y: a.LocationY, Width: a.Width, Depth: a.Depth, Height: h}
}
