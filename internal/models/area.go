package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AreaType describes what an area physically is
type AreaType string

const (
	AreaTypeLane   AreaType = "lane"
	AreaTypeAisle  AreaType = "aisle"
	AreaTypeStairs AreaType = "stairs"
	AreaTypePillar AreaType = "pillar"
	AreaTypeDock   AreaType = "dock"
	AreaTypeOffice AreaType = "office"
	AreaTypeOther  AreaType = "other"
)

// UsageCategory groups areas by how the floor uses them
type UsageCategory string

const (
	UsageWalkway  UsageCategory = "walkway"
	UsageObstacle UsageCategory = "obstacle"
	UsageLoading  UsageCategory = "loading"
	UsageStaging  UsageCategory = "staging"
)

// Area is a floor rectangle that is either walkable (IsPassable) or a fixed
// obstacle such as stairs or a pillar.
type Area struct {
	ID            string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	FloorID       string         `gorm:"type:varchar(36);not null;index" json:"floor_id"`
	AreaName      string         `gorm:"type:varchar(255)" json:"area_name"`
	AreaType      AreaType       `gorm:"type:varchar(50)" json:"area_type"`
	UsageCategory UsageCategory  `gorm:"type:varchar(50)" json:"usage_category"`
	IsPassable    bool           `gorm:"not null;default:false" json:"is_passable"`
	LocationX     float64        `gorm:"not null;default:0" json:"location_x"`
	LocationY     float64        `gorm:"not null;default:0" json:"location_y"`
	Width         float64        `gorm:"not null;default:0" json:"width"`
	Depth         float64        `gorm:"not null;default:0" json:"depth"`
	Height        float64        `gorm:"not null;default:0" json:"height"`
	Properties    datatypes.JSON `json:"properties,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// TableName specifies the table name for Area model
func (Area) TableName() string {
	return "areas"
}

// BeforeCreate assigns a UUID when the caller did not provide one
func (a *Area) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

func (a Area) GetEntityID() string   { return a.ID }
func (a Area) GetEntityType() string { return "area" }

// IsObstacle reports whether the area blocks storage placement.
func (a Area) IsObstacle() bool {
	return !a.IsPassable
}
