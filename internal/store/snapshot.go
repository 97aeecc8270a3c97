// Package store keeps the in-memory floor plan an editing session works on.
//
// A Snapshot is immutable once built. Every edit produces a new Snapshot by
// copying the id indexes and swapping the changed records in, so readers
// holding an older Snapshot are never disturbed and any state can be rebuilt
// from its inputs in tests.
package store

import (
	"errors"

	"github.com/Haricane11/OptiWareUi-sub000/internal/layout"
	"github.com/Haricane11/OptiWareUi-sub000/internal/models"
)

// ErrNotFound is returned when an edit targets a record the snapshot lacks.
var ErrNotFound = errors.New("store: record not found")

// Snapshot is one version of a floor: its zones, shelves and areas indexed by id.
type Snapshot struct {
	version uint64
	floor   models.Floor
	bounds  layout.Box

	zones      map[string]models.Zone
	zoneOrder  []string
	shelves    map[string]models.Shelf
	shelfOrder []string
	areas      map[string]models.Area
	areaOrder  []string
}

// FromFloor flattens a loaded floor hierarchy into a snapshot. Warehouse
// extents bound the floor; missing extents fall back to the rules defaults.
func FromFloor(w models.Warehouse, f models.Floor, rules layout.Rules) *Snapshot {
	rules = rules.Normalize()
	s := &Snapshot{
		version: 1,
		zones:   make(map[string]models.Zone),
		shelves: make(map[string]models.Shelf),
		areas:   make(map[string]models.Area),
	}

	s.bounds = layout.Box{Width: w.Width, Depth: w.Depth, Height: w.Height}
	if s.bounds.Width <= 0 {
		s.bounds.Width = rules.WarehouseWidth
	}
	if s.bounds.Depth <= 0 {
		s.bounds.Depth = rules.WarehouseDepth
	}
	if s.bounds.Height <= 0 {
		s.bounds.Height = rules.WarehouseHeight
	}

	for _, z := range f.Zones {
		for _, sh := range z.Shelves {
			s.putShelf(sh)
		}
		z.Shelves = nil
		s.putZone(z)
	}
	for _, a := range f.Areas {
		s.putArea(a)
	}

	f.Zones, f.Areas, f.Warehouse = nil, nil, nil
	s.floor = f
	return s
}

// Version increases by one with every derived snapshot.
func (s *Snapshot) Version() uint64 { return s.version }

// FloorID returns the id of the floor this snapshot describes.
func (s *Snapshot) FloorID() string { return s.floor.ID }

// Bounds implements layout.Plan.
func (s *Snapshot) Bounds() layout.Box { return s.bounds }

// Zones returns the zones in insertion order.
func (s *Snapshot) Zones() []models.Zone {
	out := make([]models.Zone, 0, len(s.zoneOrder))
	for _, id := range s.zoneOrder {
		out = append(out, s.zones[id])
	}
	return out
}

func (s *Snapshot) Zone(id string) (models.Zone, bool) {
	z, ok := s.zones[id]
	return z, ok
}

// Shelves returns every shelf on the floor.
func (s *Snapshot) Shelves() []models.Shelf {
	out := make([]models.Shelf, 0, len(s.shelfOrder))
	for _, id := range s.shelfOrder {
		out = append(out, s.shelves[id])
	}
	return out
}

func (s *Snapshot) Shelf(id string) (models.Shelf, bool) {
	sh, ok := s.shelves[id]
	return sh, ok
}

// ShelvesInZone returns the shelves of one zone.
func (s *Snapshot) ShelvesInZone(zoneID string) []models.Shelf {
	var out []models.Shelf
	for _, id := range s.shelfOrder {
		if sh := s.shelves[id]; sh.ZoneID == zoneID {
			out = append(out, sh)
		}
	}
	return out
}

func (s *Snapshot) Areas() []models.Area {
	out := make([]models.Area, 0, len(s.areaOrder))
	for _, id := range s.areaOrder {
		out = append(out, s.areas[id])
	}
	return out
}

func (s *Snapshot) Area(id string) (models.Area, bool) {
	a, ok := s.areas[id]
	return a, ok
}

// Floor rebuilds the nested floor record (zones with their shelves, areas)
// for clients that render the whole floor.
func (s *Snapshot) Floor() models.Floor {
	f := s.floor
	f.Zones = s.Zones()
	for i := range f.Zones {
		f.Zones[i].Shelves = s.ShelvesInZone(f.Zones[i].ID)
	}
	f.Areas = s.Areas()
	return f
}

// WithZone adds or replaces a zone. Its shelves are untouched.
func (s *Snapshot) WithZone(z models.Zone) *Snapshot {
	next := s.clone()
	z.Shelves = nil
	next.putZone(z)
	return next
}

// WithoutZone removes a zone and, cascading, its shelves.
func (s *Snapshot) WithoutZone(id string) (*Snapshot, error) {
	if _, ok := s.zones[id]; !ok {
		return nil, ErrNotFound
	}
	next := s.clone()
	delete(next.zones, id)
	next.zoneOrder = without(next.zoneOrder, id)
	next.dropZoneShelves(id)
	return next, nil
}

// WithZoneShelves replaces the full shelf set of a zone.
func (s *Snapshot) WithZoneShelves(zoneID string, shelves []models.Shelf) (*Snapshot, error) {
	if _, ok := s.zones[zoneID]; !ok {
		return nil, ErrNotFound
	}
	next := s.clone()
	next.dropZoneShelves(zoneID)
	for _, sh := range shelves {
		sh.ZoneID = zoneID
		next.putShelf(sh)
	}
	return next, nil
}

// WithZoneMoved swaps in a moved zone together with its translated shelves.
func (s *Snapshot) WithZoneMoved(z models.Zone, shelves []models.Shelf) (*Snapshot, error) {
	if _, ok := s.zones[z.ID]; !ok {
		return nil, ErrNotFound
	}
	next := s.clone()
	z.Shelves = nil
	next.putZone(z)
	for _, sh := range shelves {
		next.putShelf(sh)
	}
	return next, nil
}

// WithShelf replaces an existing shelf.
func (s *Snapshot) WithShelf(sh models.Shelf) (*Snapshot, error) {
	if _, ok := s.shelves[sh.ID]; !ok {
		return nil, ErrNotFound
	}
	next := s.clone()
	next.putShelf(sh)
	return next, nil
}

func (s *Snapshot) WithoutShelf(id string) (*Snapshot, error) {
	if _, ok := s.shelves[id]; !ok {
		return nil, ErrNotFound
	}
	next := s.clone()
	delete(next.shelves, id)
	next.shelfOrder = without(next.shelfOrder, id)
	return next, nil
}

// WithArea adds or replaces an area.
func (s *Snapshot) WithArea(a models.Area) *Snapshot {
	next := s.clone()
	next.putArea(a)
	return next
}

func (s *Snapshot) WithoutArea(id string) (*Snapshot, error) {
	if _, ok := s.areas[id]; !ok {
		return nil, ErrNotFound
	}
	next := s.clone()
	delete(next.areas, id)
	next.areaOrder = without(next.areaOrder, id)
	return next, nil
}

func (s *Snapshot) clone() *Snapshot {
	next := &Snapshot{
		version:    s.version + 1,
		floor:      s.floor,
		bounds:     s.bounds,
		zones:      make(map[string]models.Zone, len(s.zones)),
		zoneOrder:  append([]string(nil), s.zoneOrder...),
		shelves:    make(map[string]models.Shelf, len(s.shelves)),
		shelfOrder: append([]string(nil), s.shelfOrder...),
		areas:      make(map[string]models.Area, len(s.areas)),
		areaOrder:  append([]string(nil), s.areaOrder...),
	}
	for k, v := range s.zones {
		next.zones[k] = v
	}
	for k, v := range s.shelves {
		next.shelves[k] = v
	}
	for k, v := range s.areas {
		next.areas[k] = v
	}
	return next
}

func (s *Snapshot) putZone(z models.Zone) {
	if _, ok := s.zones[z.ID]; !ok {
		s.zoneOrder = append(s.zoneOrder, z.ID)
	}
	s.zones[z.ID] = z
}

func (s *Snapshot) putShelf(sh models.Shelf) {
	if _, ok := s.shelves[sh.ID]; !ok {
		s.shelfOrder = append(s.shelfOrder, sh.ID)
	}
	s.shelves[sh.ID] = sh
}

func (s *Snapshot) putArea(a models.Area) {
	if _, ok := s.areas[a.ID]; !ok {
		s.areaOrder = append(s.areaOrder, a.ID)
	}
	s.areas[a.ID] = a
}

func (s *Snapshot) dropZoneShelves(zoneID string) {
	kept := s.shelfOrder[:0]
	for _, id := range s.shelfOrder {
		if s.shelves[id].ZoneID == zoneID {
			delete(s.shelves, id)
			continue
		}
		kept = append(kept, id)
	}
	s.shelfOrder = kept
}

func without(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
