package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/Haricane11/OptiWareUi-sub000/internal/layout"
	"github.com/Haricane11/OptiWareUi-sub000/internal/models"
	"github.com/Haricane11/OptiWareUi-sub000/internal/store"
)

func testZone() models.Zone {
	return models.Zone{
		ID: "z1", ZoneName: "Bulk A", LocationX: 2, LocationY: 2, Width: 10, Depth: 8,
		Shelves: []models.Shelf{
			{ID: "s4", ZoneID: "z1", ShelfCode: "A1-B2-L1", AisleNum: 1, BayNum: 2, LevelNum: 1,
				LocationX: 2, LocationY: 6.2, Width: 1.5, Depth: 1.2, Height: 0.8, OrientationAngle: models.Angle(180)},
			{ID: "s2", ZoneID: "z1", ShelfCode: "A1-B1-L2", AisleNum: 1, BayNum: 1, LevelNum: 2,
				LocationX: 2, LocationY: 2, LocationZ: 0.8, Width: 1.5, Depth: 1.2, Height: 0.8, OrientationAngle: models.Angle(0)},
			{ID: "s1", ZoneID: "z1", ShelfCode: "A1-B1-L1", AisleNum: 1, BayNum: 1, LevelNum: 1,
				LocationX: 2, LocationY: 2, Width: 1.5, Depth: 1.2, Height: 0.8, OrientationAngle: models.Angle(0)},
		},
	}
}

func TestShelfScheduleRows(t *testing.T) {
	zone := testZone()
	f, err := ShelfSchedule(zone, zone.Shelves)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "schedule.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	book, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer book.Close()

	rows, err := book.GetRows(ScheduleSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Code", rows[0][0])
	assert.Equal(t, "A1-B1-L1", rows[1][0])
	assert.Equal(t, "A1-B1-L2", rows[2][0])
	assert.Equal(t, "A1-B2-L1", rows[3][0])
	assert.Equal(t, "180", rows[3][12])
}

func TestWriteFloorDXF(t *testing.T) {
	zone := testZone()
	floor := models.Floor{
		ID:    "f1",
		Zones: []models.Zone{zone},
		Areas: []models.Area{
			{ID: "a1", AreaName: "Stairs", LocationX: 20, LocationY: 2, Width: 3, Depth: 3},
			{ID: "a2", AreaName: "Lane", IsPassable: true, LocationX: 0, LocationY: 15, Width: 30, Depth: 2},
		},
	}
	plan := store.FromFloor(models.Warehouse{Width: 30, Depth: 20, Height: 8}, floor, layout.DefaultRules())

	path := filepath.Join(t.TempDir(), "floor.dxf")
	require.NoError(t, WriteFloorDXF(path, plan))

	drawing, err := dxf.Open(path)
	require.NoError(t, err)

	lines := 0
	for _, e := range drawing.Entities() {
		if _, ok := e.(*entity.Line); ok {
			lines++
		}
	}
	// floor, zone, two shelf footprints (levels share one), stairs, lane
	assert.Equal(t, 6*4, lines)
}
