package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Warehouse is the top of the floor-plan hierarchy. Width, Depth and Height are
// the building extents in metres and bound every floor it owns.
type Warehouse struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Location  string    `json:"location"`
	Width     float64   `gorm:"not null;default:0" json:"width"`
	Depth     float64   `gorm:"not null;default:0" json:"depth"`
	Height    float64   `gorm:"not null;default:0" json:"height"`
	Owner     string    `gorm:"type:varchar(255)" json:"owner"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Floors []Floor `gorm:"foreignKey:WarehouseID;constraint:OnDelete:CASCADE" json:"floors,omitempty"`
}

// TableName specifies the table name for Warehouse model
func (Warehouse) TableName() string {
	return "warehouses"
}

// BeforeCreate assigns a UUID when the caller did not provide one
func (w *Warehouse) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	return nil
}

func (w Warehouse) GetEntityID() string   { return w.ID }
func (w Warehouse) GetEntityType() string { return "warehouse" }

// Floor is one level of a warehouse. It owns the zones and the areas
// (lanes, stairs, pillars) drawn on it.
type Floor struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	WarehouseID string    `gorm:"type:varchar(36);not null;index" json:"warehouse_id"`
	LevelNum    int       `gorm:"not null;default:0" json:"level_num"`
	Name        string    `gorm:"type:varchar(255)" json:"name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Warehouse *Warehouse `gorm:"foreignKey:WarehouseID" json:"-"`
	Zones     []Zone     `gorm:"foreignKey:FloorID;constraint:OnDelete:CASCADE" json:"zones,omitempty"`
	Areas     []Area     `gorm:"foreignKey:FloorID;constraint:OnDelete:CASCADE" json:"areas,omitempty"`
}

// TableName specifies the table name for Floor model
func (Floor) TableName() string {
	return "floors"
}

// BeforeCreate assigns a UUID when the caller did not provide one
func (f *Floor) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return nil
}

func (f Floor) GetEntityID() string   { return f.ID }
func (f Floor) GetEntityType() string { return "floor" }
