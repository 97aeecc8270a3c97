// Package fixture reads floor descriptions from TOML files. Fixtures feed the
// operator CLI and the demo seeder.
package fixture

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	"github.com/Haricane11/OptiWareUi-sub000/internal/layout"
	"github.com/Haricane11/OptiWareUi-sub000/internal/models"
)

// Fixture is one warehouse floor with its zones and areas.
type Fixture struct {
	Warehouse Warehouse `toml:"warehouse"`
	Floor     Floor     `toml:"floor"`
	Zones     []Zone    `toml:"zones"`
	Areas     []Area    `toml:"areas"`
}

type Warehouse struct {
	Name     string  `toml:"name"`
	Location string  `toml:"location"`
	Width    float64 `toml:"width"`
	Depth    float64 `toml:"depth"`
	Height   float64 `toml:"height"`
}

type Floor struct {
	Level int    `toml:"level"`
	Name  string `toml:"name"`
}

// Zone optionally carries the generator parameters used to fill it.
type Zone struct {
	Name      string     `toml:"name"`
	Type      string     `toml:"type"`
	Color     string     `toml:"color"`
	X         float64    `toml:"x"`
	Y         float64    `toml:"y"`
	Width     float64    `toml:"width"`
	Depth     float64    `toml:"depth"`
	Generator *Generator `toml:"generator"`
}

type Generator struct {
	StartAisle   int     `toml:"start_aisle"`
	NumAisles    int     `toml:"num_aisles"`
	BaysPerAisle int     `toml:"bays_per_aisle"`
	LevelsPerBay int     `toml:"levels_per_bay"`
	BayWidth     float64 `toml:"bay_width"`
	BayDepth     float64 `toml:"bay_depth"`
	LevelHeight  float64 `toml:"level_height"`
	AisleGap     float64 `toml:"aisle_gap"`
	ShelfType    string  `toml:"shelf_type"`
	MaxWeight    float64 `toml:"max_weight"`
}

type Area struct {
	Name     string  `toml:"name"`
	Type     string  `toml:"type"`
	Usage    string  `toml:"usage"`
	Passable bool    `toml:"passable"`
	X        float64 `toml:"x"`
	Y        float64 `toml:"y"`
	Width    float64 `toml:"width"`
	Depth    float64 `toml:"depth"`
	Height   float64 `toml:"height"`
}

// Load parses a fixture file.
func Load(path string) (*Fixture, error) {
	var f Fixture
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("fixture %s: %w", path, err)
	}
	if f.Floor.Level == 0 {
		f.Floor.Level = 1
	}
	for i, z := range f.Zones {
		if z.Width <= 0 || z.Depth <= 0 {
			return nil, fmt.Errorf("fixture %s: zone %d (%q) needs a positive width and depth", path, i+1, z.Name)
		}
		if z.Generator != nil && z.Generator.ShelfType != "" && !models.ShelfType(z.Generator.ShelfType).Valid() {
			return nil, fmt.Errorf("fixture %s: zone %q: unknown shelf type %q", path, z.Name, z.Generator.ShelfType)
		}
	}
	return &f, nil
}

// Params converts the generator block to layout parameters. The shelf type
// defaults to a standard rack; a missing aisle gap uses that type's fallback.
func (g Generator) Params(rules layout.Rules) layout.GeneratorParams {
	t := models.ShelfType(g.ShelfType)
	if t == "" {
		t = models.ShelfTypeStandardRack
	}
	p := layout.GeneratorParams{
		StartAisle:   g.StartAisle,
		NumAisles:    g.NumAisles,
		BaysPerAisle: g.BaysPerAisle,
		LevelsPerBay: g.LevelsPerBay,
		BayWidth:     g.BayWidth,
		BayDepth:     g.BayDepth,
		LevelHeight:  g.LevelHeight,
		AisleGap:     g.AisleGap,
		ShelfType:    t,
		MaxWeight:    g.MaxWeight,
	}
	if p.StartAisle == 0 {
		p.StartAisle = 1
	}
	if p.AisleGap <= 0 {
		p.AisleGap = rules.Normalize().FallbackGap(t)
	}
	return p
}

// Built is a fixture turned into records with fresh ids. Generators maps
// zone ids to the parameters their fixture zone declared.
type Built struct {
	Warehouse  models.Warehouse
	Floor      models.Floor
	Generators map[string]layout.GeneratorParams
}

// Build creates the warehouse, floor, zone and area records of a fixture.
func (f *Fixture) Build(rules layout.Rules) Built {
	w := models.Warehouse{
		ID:       uuid.New().String(),
		Name:     f.Warehouse.Name,
		Location: f.Warehouse.Location,
		Width:    f.Warehouse.Width,
		Depth:    f.Warehouse.Depth,
		Height:   f.Warehouse.Height,
	}
	floor := models.Floor{
		ID:          uuid.New().String(),
		WarehouseID: w.ID,
		LevelNum:    f.Floor.Level,
		Name:        f.Floor.Name,
	}
	b := Built{Generators: make(map[string]layout.GeneratorParams)}

	for _, z := range f.Zones {
		zone := models.Zone{
			ID:        uuid.New().String(),
			FloorID:   floor.ID,
			ZoneName:  z.Name,
			ZoneType:  z.Type,
			Color:     z.Color,
			LocationX: z.X,
			LocationY: z.Y,
			Width:     z.Width,
			Depth:     z.Depth,
		}
		floor.Zones = append(floor.Zones, zone)
		if z.Generator != nil {
			b.Generators[zone.ID] = z.Generator.Params(rules)
		}
	}
	for _, a := range f.Areas {
		floor.Areas = append(floor.Areas, models.Area{
			ID:            uuid.New().String(),
			FloorID:       floor.ID,
			AreaName:      a.Name,
			AreaType:      models.AreaType(a.Type),
			UsageCategory: models.UsageCategory(a.Usage),
			IsPassable:    a.Passable,
			LocationX:     a.X,
			LocationY:     a.Y,
			Width:         a.Width,
			Depth:         a.Depth,
			Height:        a.Height,
		})
	}

	b.Warehouse, b.Floor = w, floor
	return b
}

// ZoneByName finds a built zone by its fixture name.
func (b Built) ZoneByName(name string) (models.Zone, bool) {
	for _, z := range b.Floor.Zones {
		if z.ZoneName == name {
			return z, true
		}
	}
	return models.Zone{}, false
}
