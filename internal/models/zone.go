package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Zone is a rectangular sub-region of a floor grouping shelves of similar purpose.
type Zone struct {
	ID         string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	FloorID    string         `gorm:"type:varchar(36);not null;index" json:"floor_id"`
	ZoneName   string         `gorm:"type:varchar(255);not null" json:"zone_name"`
	ZoneType   string         `gorm:"type:varchar(50)" json:"zone_type"`
	Color      string         `gorm:"type:varchar(20)" json:"color"`
	LocationX  float64        `gorm:"not null;default:0" json:"location_x"`
	LocationY  float64        `gorm:"not null;default:0" json:"location_y"`
	Width      float64        `gorm:"not null;default:0" json:"width"`
	Depth      float64        `gorm:"not null;default:0" json:"depth"`
	Attributes datatypes.JSON `json:"attributes,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`

	// Relations
	Shelves []Shelf `gorm:"foreignKey:ZoneID;constraint:OnDelete:CASCADE" json:"shelves,omitempty"`
}

// TableName specifies the table name for Zone model
func (Zone) TableName() string {
	return "zones"
}

// BeforeCreate assigns a UUID when the caller did not provide one
func (z *Zone) BeforeCreate(tx *gorm.DB) error {
	if z.ID == "" {
		z.ID = uuid.New().String()
	}
	return nil
}

func (z Zone) GetEntityID() string   { return z.ID }
func (z Zone) GetEntityType() string { return "zone" }
