// Package export writes floor plans to office and CAD formats: a shelf
// schedule spreadsheet per zone and a DXF drawing per floor.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Haricane11/OptiWareUi-sub000/internal/layout"
	"github.com/Haricane11/OptiWareUi-sub000/internal/models"
)

// ScheduleSheet is the name of the sheet holding the shelf rows.
const ScheduleSheet = "Shelves"

var scheduleHeader = []interface{}{
	"Code", "Aisle", "Bay", "Level", "Type",
	"X (m)", "Y (m)", "Z (m)", "Width (m)", "Depth (m)", "Height (m)",
	"Max weight (kg)", "Orientation (deg)", "Status",
}

// ShelfSchedule builds a workbook with one row per shelf of a zone, ordered
// by aisle, bay and level. The caller closes the file.
func ShelfSchedule(zone models.Zone, shelves []models.Shelf) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), ScheduleSheet); err != nil {
		f.Close()
		return nil, err
	}

	sorted := append([]models.Shelf(nil), shelves...)
	layout.SortShelves(sorted)

	if err := setRow(f, 1, scheduleHeader); err != nil {
		f.Close()
		return nil, err
	}
	for i, s := range sorted {
		var orientation interface{} = ""
		if s.OrientationAngle != nil {
			orientation = *s.OrientationAngle
		}
		row := []interface{}{
			s.ShelfCode, s.AisleNum, s.BayNum, s.LevelNum, string(s.ShelfType),
			s.LocationX, s.LocationY, s.LocationZ, s.Width, s.Depth, s.Height,
			s.MaxWeight, orientation, string(s.Status),
		}
		if err := setRow(f, i+2, row); err != nil {
			f.Close()
			return nil, err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, err
	}
	last, _ := excelize.CoordinatesToCellName(len(scheduleHeader), 1)
	if err := f.SetCellStyle(ScheduleSheet, "A1", last, bold); err != nil {
		f.Close()
		return nil, err
	}
	f.SetColWidth(ScheduleSheet, "A", "A", 14)
	f.SetColWidth(ScheduleSheet, "E", "E", 18)
	f.SetDocProps(&excelize.DocProperties{
		Title:   fmt.Sprintf("Shelf schedule %s", zone.ZoneName),
		Subject: zone.ID,
	})
	return f, nil
}

func setRow(f *excelize.File, row int, values []interface{}) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(ScheduleSheet, cell, v); err != nil {
			return fmt.Errorf("cell %s: %w", cell, err)
		}
	}
	return nil
}
