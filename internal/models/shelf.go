package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShelfType selects the racking system of a shelf.
type ShelfType string

const (
	ShelfTypeStandardRack    ShelfType = "standard_rack"
	ShelfTypeBinShelving     ShelfType = "bin_shelving"
	ShelfTypeSelectivePallet ShelfType = "selective_pallet"
	ShelfTypeDriveIn         ShelfType = "drive_in"
	ShelfTypeCantilever      ShelfType = "cantilever"
)

// Valid reports whether t is one of the known shelf types.
func (t ShelfType) Valid() bool {
	switch t {
	case ShelfTypeStandardRack, ShelfTypeBinShelving, ShelfTypeSelectivePallet,
		ShelfTypeDriveIn, ShelfTypeCantilever:
		return true
	}
	return false
}

// ShelfStatus is the operational state of a shelf
type ShelfStatus string

const (
	ShelfStatusActive      ShelfStatus = "active"
	ShelfStatusBlocked     ShelfStatus = "blocked"
	ShelfStatusMaintenance ShelfStatus = "maintenance"
)

// Shelf is one level of one bay inside a zone. LocationZ is the height of the
// level's floor above ground; Height is the clear height of the level.
type Shelf struct {
	ID               string      `gorm:"type:varchar(36);primaryKey" json:"id"`
	ZoneID           string      `gorm:"type:varchar(36);not null;index;uniqueIndex:idx_zone_shelf_code" json:"zone_id"`
	ShelfCode        string      `gorm:"type:varchar(50);not null;uniqueIndex:idx_zone_shelf_code" json:"shelf_code"`
	ShelfType        ShelfType   `gorm:"type:varchar(50)" json:"shelf_type"`
	AisleNum         int         `json:"aisle_num"`
	BayNum           int         `json:"bay_num"`
	LevelNum         int         `json:"level_num"`
	BinNum           int         `json:"bin_num"`
	LocationX        float64     `gorm:"not null;default:0" json:"location_x"`
	LocationY        float64     `gorm:"not null;default:0" json:"location_y"`
	LocationZ        float64     `gorm:"not null;default:0" json:"location_z"`
	Width            float64     `gorm:"not null;default:0" json:"width"`
	Height           float64     `gorm:"not null;default:0" json:"height"`
	Depth            float64     `gorm:"not null;default:0" json:"depth"`
	MaxWeight        float64     `json:"max_weight"`
	OrientationAngle *float64    `json:"orientation_angle"` // degrees, nil when unknown
	Status           ShelfStatus `gorm:"type:varchar(20);default:'active'" json:"status"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// TableName specifies the table name for Shelf model
func (Shelf) TableName() string {
	return "shelves"
}

// BeforeCreate assigns a UUID when the caller did not provide one
func (s *Shelf) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

func (s Shelf) GetEntityID() string   { return s.ID }
func (s Shelf) GetEntityType() string { return "shelf" }

// Angle returns a pointer to deg, for filling OrientationAngle.
func Angle(deg float64) *float64 {
	return &deg
}
