package floorplan

import (
	"gorm.io/datatypes"

	"github.com/Haricane11/OptiWareUi-sub000/internal/models"
)

// Updates are partial: a nil field keeps the stored value. Geometry is not
// part of a patch; it changes through the move and resize commands.

// ZonePatch lists the descriptive zone fields an update may change.
type ZonePatch struct {
	ZoneName   *string        `json:"zone_name"`
	ZoneType   *string        `json:"zone_type"`
	Color      *string        `json:"color"`
	Attributes datatypes.JSON `json:"attributes"`
}

func (p ZonePatch) apply(z models.Zone) models.Zone {
	if p.ZoneName != nil {
		z.ZoneName = *p.ZoneName
	}
	if p.ZoneType != nil {
		z.ZoneType = *p.ZoneType
	}
	if p.Color != nil {
		z.Color = *p.Color
	}
	if p.Attributes != nil {
		z.Attributes = p.Attributes
	}
	return z
}

// AreaPatch lists the area fields an update may change. A Height of zero
// extrudes the area to the ceiling.
type AreaPatch struct {
	AreaName      *string               `json:"area_name"`
	AreaType      *models.AreaType      `json:"area_type"`
	UsageCategory *models.UsageCategory `json:"usage_category"`
	IsPassable    *bool                 `json:"is_passable"`
	Height        *float64              `json:"height"`
	Properties    datatypes.JSON        `json:"properties"`
}

func (p AreaPatch) apply(a models.Area) models.Area {
	if p.AreaName != nil {
		a.AreaName = *p.AreaName
	}
	if p.AreaType != nil {
		a.AreaType = *p.AreaType
	}
	if p.UsageCategory != nil {
		a.UsageCategory = *p.UsageCategory
	}
	if p.IsPassable != nil {
		a.IsPassable = *p.IsPassable
	}
	if p.Height != nil {
		a.Height = *p.Height
	}
	if p.Properties != nil {
		a.Properties = p.Properties
	}
	return a
}

// ShelfPatch lists the shelf fields an update may change. A new code that
// parses as A-B-L also updates the aisle, bay and level numbers.
type ShelfPatch struct {
	ShelfCode *string             `json:"shelf_code"`
	ShelfType *models.ShelfType   `json:"shelf_type"`
	Status    *models.ShelfStatus `json:"status"`
	MaxWeight *float64            `json:"max_weight"`
	BinNum    *int                `json:"bin_num"`
}

func (p ShelfPatch) apply(s models.Shelf) models.Shelf {
	if p.ShelfType != nil {
		s.ShelfType = *p.ShelfType
	}
	if p.Status != nil {
		s.Status = *p.Status
	}
	if p.MaxWeight != nil {
		s.MaxWeight = *p.MaxWeight
	}
	if p.BinNum != nil {
		s.BinNum = *p.BinNum
	}
	return s
}
