// Package repository persists floor plans with gorm. It is the only package
// that talks SQL; the editing service sees it through an interface.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Haricane11/OptiWareUi-sub000/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when the addressed row does not exist.
var ErrNotFound = errors.New("repository: record not found")

const shelfBatchSize = 200

var (
	zoneColumns  = []string{"zone_name", "zone_type", "color", "location_x", "location_y", "width", "depth", "attributes"}
	areaColumns  = []string{"area_name", "area_type", "usage_category", "is_passable", "location_x", "location_y", "width", "depth", "height", "properties"}
	shelfColumns = []string{
		"shelf_code", "shelf_type", "aisle_num", "bay_num", "level_num", "bin_num",
		"location_x", "location_y", "location_z", "width", "height", "depth",
		"max_weight", "orientation_angle", "status",
	}
)

// Models lists every table the floor plan needs, in migration order.
func Models() []interface{} {
	return []interface{}{
		&models.Warehouse{},
		&models.Floor{},
		&models.Zone{},
		&models.Shelf{},
		&models.Area{},
	}
}

// Gorm implements the floor-plan persistence on top of a gorm connection.
type Gorm struct {
	db *gorm.DB
}

// New wraps an open gorm connection
func New(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

// Migrate creates or updates the floor-plan tables
func (r *Gorm) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(Models()...)
}

// FetchHierarchy loads every warehouse with its floors, zones, shelves and areas.
func (r *Gorm) FetchHierarchy(ctx context.Context) ([]models.Warehouse, error) {
	var warehouses []models.Warehouse
	err := r.db.WithContext(ctx).
		Preload("Floors", func(db *gorm.DB) *gorm.DB { return db.Order("level_num") }).
		Preload("Floors.Zones", func(db *gorm.DB) *gorm.DB { return db.Order("created_at") }).
		Preload("Floors.Zones.Shelves", func(db *gorm.DB) *gorm.DB { return db.Order("aisle_num, bay_num, level_num") }).
		Preload("Floors.Areas", func(db *gorm.DB) *gorm.DB { return db.Order("created_at") }).
		Order("name").
		Find(&warehouses).Error
	if err != nil {
		return nil, fmt.Errorf("fetch hierarchy: %w", err)
	}
	return warehouses, nil
}

// FetchFloor loads one floor with its contents and the owning warehouse.
func (r *Gorm) FetchFloor(ctx context.Context, floorID string) (models.Warehouse, models.Floor, error) {
	var floor models.Floor
	err := r.db.WithContext(ctx).
		Preload("Warehouse").
		Preload("Zones", func(db *gorm.DB) *gorm.DB { return db.Order("created_at") }).
		Preload("Zones.Shelves", func(db *gorm.DB) *gorm.DB { return db.Order("aisle_num, bay_num, level_num") }).
		Preload("Areas", func(db *gorm.DB) *gorm.DB { return db.Order("created_at") }).
		First(&floor, "id = ?", floorID).Error
	if err != nil {
		return models.Warehouse{}, models.Floor{}, notFound(err, "floor", floorID)
	}
	var warehouse models.Warehouse
	if floor.Warehouse != nil {
		warehouse = *floor.Warehouse
	}
	return warehouse, floor, nil
}

// ZoneFloorID returns the floor a zone belongs to.
func (r *Gorm) ZoneFloorID(ctx context.Context, zoneID string) (string, error) {
	var zone models.Zone
	if err := r.db.WithContext(ctx).Select("floor_id").First(&zone, "id = ?", zoneID).Error; err != nil {
		return "", notFound(err, "zone", zoneID)
	}
	return zone.FloorID, nil
}

// AreaFloorID returns the floor an area belongs to.
func (r *Gorm) AreaFloorID(ctx context.Context, areaID string) (string, error) {
	var area models.Area
	if err := r.db.WithContext(ctx).Select("floor_id").First(&area, "id = ?", areaID).Error; err != nil {
		return "", notFound(err, "area", areaID)
	}
	return area.FloorID, nil
}

// ShelfFloorID returns the floor of the zone holding a shelf.
func (r *Gorm) ShelfFloorID(ctx context.Context, shelfID string) (string, error) {
	var floorID string
	err := r.db.WithContext(ctx).
		Table("shelves").
		Select("zones.floor_id").
		Joins("JOIN zones ON zones.id = shelves.zone_id").
		Where("shelves.id = ?", shelfID).
		Limit(1).
		Scan(&floorID).Error
	if err != nil {
		return "", fmt.Errorf("shelf %s: %w", shelfID, err)
	}
	if floorID == "" {
		return "", fmt.Errorf("shelf %s: %w", shelfID, ErrNotFound)
	}
	return floorID, nil
}

// CreateWarehouse inserts a warehouse without its floors.
func (r *Gorm) CreateWarehouse(ctx context.Context, w *models.Warehouse) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(w).Error
}

// CreateFloor inserts a floor without its zones and areas.
func (r *Gorm) CreateFloor(ctx context.Context, f *models.Floor) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(f).Error
}

// CreateZone inserts a zone without its shelves.
func (r *Gorm) CreateZone(ctx context.Context, z *models.Zone) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(z).Error
}

// UpdateZone writes the zone's editable columns.
func (r *Gorm) UpdateZone(ctx context.Context, z models.Zone) error {
	return updateColumns(r.db.WithContext(ctx), &models.Zone{ID: z.ID}, zoneColumns, &z, "zone", z.ID)
}

// DeleteZone removes a zone and its shelves.
func (r *Gorm) DeleteZone(ctx context.Context, zoneID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("zone_id = ?", zoneID).Delete(&models.Shelf{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Zone{}, "id = ?", zoneID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("zone %s: %w", zoneID, ErrNotFound)
		}
		return nil
	})
}

// MoveZone stores a translated zone and its shelves in one transaction.
func (r *Gorm) MoveZone(ctx context.Context, z models.Zone, shelves []models.Shelf) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Zone{ID: z.ID}).Updates(map[string]interface{}{
			"location_x": z.LocationX,
			"location_y": z.LocationY,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("zone %s: %w", z.ID, ErrNotFound)
		}
		for _, s := range shelves {
			err := tx.Model(&models.Shelf{ID: s.ID}).Updates(map[string]interface{}{
				"location_x": s.LocationX,
				"location_y": s.LocationY,
			}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// ReplaceZoneShelves swaps the full shelf set of a zone.
func (r *Gorm) ReplaceZoneShelves(ctx context.Context, zoneID string, shelves []models.Shelf) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("zone_id = ?", zoneID).Delete(&models.Shelf{}).Error; err != nil {
			return err
		}
		if len(shelves) == 0 {
			return nil
		}
		rows := make([]models.Shelf, len(shelves))
		for i, s := range shelves {
			s.ZoneID = zoneID
			rows[i] = s
		}
		return tx.CreateInBatches(rows, shelfBatchSize).Error
	})
}

// UpdateShelf writes a shelf's editable columns.
func (r *Gorm) UpdateShelf(ctx context.Context, s models.Shelf) error {
	return updateColumns(r.db.WithContext(ctx), &models.Shelf{ID: s.ID}, shelfColumns, &s, "shelf", s.ID)
}

func (r *Gorm) DeleteShelf(ctx context.Context, shelfID string) error {
	return deleteByID(r.db.WithContext(ctx), &models.Shelf{}, "shelf", shelfID)
}

func (r *Gorm) CreateArea(ctx context.Context, a *models.Area) error {
	return r.db.WithContext(ctx).Create(a).Error
}

// UpdateArea writes an area's editable columns.
func (r *Gorm) UpdateArea(ctx context.Context, a models.Area) error {
	return updateColumns(r.db.WithContext(ctx), &models.Area{ID: a.ID}, areaColumns, &a, "area", a.ID)
}

func (r *Gorm) DeleteArea(ctx context.Context, areaID string) error {
	return deleteByID(r.db.WithContext(ctx), &models.Area{}, "area", areaID)
}

func updateColumns(db *gorm.DB, target interface{}, columns []string, values interface{}, kind, id string) error {
	res := db.Model(target).Select(columns).Updates(values)
	if res.Error != nil {
		return fmt.Errorf("update %s %s: %w", kind, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}
	return nil
}

func deleteByID(db *gorm.DB, model interface{}, kind, id string) error {
	res := db.Delete(model, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete %s %s: %w", kind, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}
	return nil
}

func notFound(err error, kind, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}
	return fmt.Errorf("%s %s: %w", kind, id, err)
}
