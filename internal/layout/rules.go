package layout

import "github.com/Haricane11/OptiWareUi-sub000/internal/models"

// Point is a floor coordinate.
type Point struct {
	X float64 `toml:"x" json:"x"`
	Y float64 `toml:"y" json:"y"`
}

// Rules are the tuning constants of the layout engine. The zero value is not
// usable; start from DefaultRules and override what a rules file provides.
type Rules struct {
	GridStep            float64            `toml:"grid_step" json:"grid_step"`
	Clearance           float64            `toml:"clearance" json:"clearance"`
	ShelfOrigin         Point              `toml:"shelf_origin" json:"shelf_origin"`
	ZoneOrigin          Point              `toml:"zone_origin" json:"zone_origin"`
	MaxSearchSteps      int                `toml:"max_search_steps" json:"max_search_steps"`
	BackToBackClearance float64            `toml:"back_to_back_clearance" json:"back_to_back_clearance"`
	WarehouseWidth      float64            `toml:"warehouse_width" json:"warehouse_width"`
	WarehouseDepth      float64            `toml:"warehouse_depth" json:"warehouse_depth"`
	WarehouseHeight     float64            `toml:"warehouse_height" json:"warehouse_height"`
	DefaultAisleGap     float64            `toml:"default_aisle_gap" json:"default_aisle_gap"`
	FallbackAisleGaps   map[string]float64 `toml:"fallback_aisle_gaps" json:"fallback_aisle_gaps"`
}

// DefaultRules returns the constants the editor has always used.
func DefaultRules() Rules {
	return Rules{
		GridStep:            0.5,
		Clearance:           0.5,
		ShelfOrigin:         Point{X: 2, Y: 2},
		ZoneOrigin:          Point{X: 0, Y: 0},
		MaxSearchSteps:      1000,
		BackToBackClearance: 0.2,
		WarehouseWidth:      50,
		WarehouseDepth:      50,
		WarehouseHeight:     10,
		DefaultAisleGap:     3.0,
		FallbackAisleGaps: map[string]float64{
			string(models.ShelfTypeStandardRack):    3.0,
			string(models.ShelfTypeBinShelving):     1.2,
			string(models.ShelfTypeSelectivePallet): 3.5,
			string(models.ShelfTypeDriveIn):         3.5,
			string(models.ShelfTypeCantilever):      3.5,
		},
	}
}

// Normalize fills every unset field from DefaultRules. Fallback gaps are merged
// so a rules file may override a single shelf type.
func (r Rules) Normalize() Rules {
	def := DefaultRules()
	if r.GridStep <= 0 {
		r.GridStep = def.GridStep
	}
	if r.Clearance < 0 {
		r.Clearance = def.Clearance
	}
	if r.MaxSearchSteps <= 0 {
		r.MaxSearchSteps = def.MaxSearchSteps
	}
	if r.BackToBackClearance < 0 {
		r.BackToBackClearance = def.BackToBackClearance
	}
	if r.WarehouseWidth <= 0 {
		r.WarehouseWidth = def.WarehouseWidth
	}
	if r.WarehouseDepth <= 0 {
		r.WarehouseDepth = def.WarehouseDepth
	}
	if r.WarehouseHeight <= 0 {
		r.WarehouseHeight = def.WarehouseHeight
	}
	if r.DefaultAisleGap <= 0 {
		r.DefaultAisleGap = def.DefaultAisleGap
	}
	gaps := make(map[string]float64, len(def.FallbackAisleGaps))
	for k, v := range def.FallbackAisleGaps {
		gaps[k] = v
	}
	for k, v := range r.FallbackAisleGaps {
		gaps[k] = v
	}
	r.FallbackAisleGaps = gaps
	return r
}

// FallbackGap is the aisle gap assumed for a shelf type when it cannot be
// measured from existing shelves.
func (r Rules) FallbackGap(t models.ShelfType) float64 {
	if gap, ok := r.FallbackAisleGaps[string(t)]; ok {
		return gap
	}
	return r.DefaultAisleGap
}

func (r Rules) origin(kind ItemKind) Point {
	if kind == KindZone {
		return r.ZoneOrigin
	}
	return r.ShelfOrigin
}
