package layout

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Haricane11/OptiWareUi-sub000/internal/models"
)

func scenarioParams() GeneratorParams {
	return GeneratorParams{
		StartAisle:   1,
		NumAisles:    1,
		BaysPerAisle: 2,
		LevelsPerBay: 1,
		BayWidth:     1.5,
		BayDepth:     1.2,
		LevelHeight:  0.8,
		AisleGap:     3.0,
		ShelfType:    models.ShelfTypeStandardRack,
	}
}

func TestGenerateSingleAisle(t *testing.T) {
	target := Target{ZoneID: "z", Bounds: Box{X: 2, Y: 3, Width: 10, Depth: 8, Height: 10}}

	res := Generate(target, nil, scenarioParams(), DefaultRules())
	require.True(t, res.Complete())
	require.Len(t, res.Shelves, 2)

	top, bottom := res.Shelves[0], res.Shelves[1]
	assert.Equal(t, "A1-B1-L1", top.ShelfCode)
	assert.Equal(t, 2.0, top.LocationX)
	assert.Equal(t, 3.0, top.LocationY)
	require.NotNil(t, top.OrientationAngle)
	assert.Equal(t, 0.0, *top.OrientationAngle)

	assert.Equal(t, "A1-B2-L1", bottom.ShelfCode)
	assert.Equal(t, 2.0, bottom.LocationX)
	assert.InDelta(t, 3.0+1.2+3.0, bottom.LocationY, 1e-9)
	require.NotNil(t, bottom.OrientationAngle)
	assert.Equal(t, 180.0, *bottom.OrientationAngle)

	for _, s := range res.Shelves {
		assert.Equal(t, "z", s.ZoneID)
		assert.Equal(t, models.ShelfStatusActive, s.Status)
		assert.Equal(t, 1.2, s.Depth)
	}
}

func TestGenerateSkipsObstacleSlot(t *testing.T) {
	target := Target{ZoneID: "z", Bounds: Box{Width: 10, Depth: 8, Height: 10}}
	pillar := Obstacle{Box: Box{Width: 1.5, Depth: 1.2, Height: 10}, Kind: ObstacleArea, ID: "pillar"}
	params := scenarioParams()
	params.BaysPerAisle = 4

	res := Generate(target, []Obstacle{pillar}, params, DefaultRules())
	assert.Equal(t, 4, res.Requested)
	assert.Equal(t, 3, res.Produced())
	assert.False(t, res.Complete())
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, SkippedSlot{Code: "A1-B1-L1", Aisle: 1, Bay: 1, Level: 1, Reason: SkipObstacle, ObstacleID: "pillar"}, res.Skipped[0])

	var codes []string
	for _, s := range res.Shelves {
		codes = append(codes, s.ShelfCode)
	}
	assert.Equal(t, []string{"A1-B2-L1", "A1-B3-L1", "A1-B4-L1"}, codes)
}

func TestGenerateOutOfBounds(t *testing.T) {
	target := Target{ZoneID: "z", Bounds: Box{Width: 3, Depth: 8, Height: 2}}
	params := scenarioParams()
	params.BaysPerAisle = 6
	params.LevelsPerBay = 3

	res := Generate(target, nil, params, DefaultRules())
	assert.Equal(t, 18, res.Requested)
	// bays 5 and 6 leave the zone; level 3 reaches 2.4m under a 2m cap
	assert.Equal(t, 4*2, res.Produced())
	for _, sk := range res.Skipped {
		assert.Equal(t, SkipOutOfBounds, sk.Reason, sk.Code)
	}
}

func TestGenerateCapsLevelsAtWarehouseHeight(t *testing.T) {
	target := Target{ZoneID: "z", Bounds: Box{Width: 12, Depth: 8, Height: 2}}
	params := scenarioParams()
	params.LevelsPerBay = 3

	res := Generate(target, nil, params, DefaultRules())
	assert.Equal(t, 4, res.Produced())
	require.Len(t, res.Skipped, 2)
	for _, sk := range res.Skipped {
		assert.Equal(t, SkipOutOfBounds, sk.Reason)
		assert.Equal(t, 3, sk.Level, sk.Code)
	}
}

func TestGenerateAislesAndLevels(t *testing.T) {
	target := Target{ZoneID: "z", Bounds: Box{Width: 12, Depth: 12, Height: 10}}
	params := scenarioParams()
	params.StartAisle = 3
	params.NumAisles = 2
	params.BaysPerAisle = 4
	params.LevelsPerBay = 3

	res := Generate(target, nil, params, DefaultRules())
	require.True(t, res.Complete(), "skipped %v", res.Skipped)
	assert.Len(t, res.Shelves, 24)

	byCode := make(map[string]models.Shelf)
	for _, s := range res.Shelves {
		byCode[s.ShelfCode] = s
	}
	second := byCode["A4-B1-L1"]
	// top row of the next aisle starts after the bottom row plus back-to-back clearance
	assert.InDelta(t, 1.2+3.0+1.2+0.2, second.LocationY, 1e-9)
	assert.Equal(t, 4, second.AisleNum)
	assert.InDelta(t, 1.6, byCode["A3-B3-L3"].LocationZ, 1e-9)
	assert.Equal(t, 1.5, byCode["A3-B3-L3"].LocationX)
}

func TestGenerateInvariants(t *testing.T) {
	zone := Box{X: 1, Y: 1, Width: 9, Depth: 14, Height: 4}
	target := Target{ZoneID: "z", Bounds: zone}
	obstacles := []Obstacle{{Box: Box{X: 4, Y: 6, Width: 1, Depth: 1, Height: 4}, Kind: ObstacleArea, ID: "col"}}
	params := GeneratorParams{
		StartAisle: 1, NumAisles: 3, BaysPerAisle: 10, LevelsPerBay: 4,
		BayWidth: 1.8, BayDepth: 1.0, LevelHeight: 1.1, AisleGap: 2.5,
		ShelfType: models.ShelfTypeSelectivePallet,
	}
	rules := DefaultRules()

	res := Generate(target, obstacles, params, rules)
	assert.Equal(t, res.Requested, res.Produced()+len(res.Skipped))

	for i, a := range res.Shelves {
		box := ShelfBox(a)
		assert.True(t, zone.ContainsFootprint(box), a.ShelfCode)
		assert.LessOrEqual(t, box.Top(), zone.Top()+epsilon, a.ShelfCode)
		assert.False(t, Overlaps3D(box, obstacles[0].Box), a.ShelfCode)
		for _, b := range res.Shelves[i+1:] {
			assert.False(t, Overlaps3D(box, ShelfBox(b)), "%s overlaps %s", a.ShelfCode, b.ShelfCode)
		}
	}

	again := Generate(target, obstacles, params, rules)
	assert.Equal(t, res, again, "same input, same layout")
}

func TestGenerateNothingRequested(t *testing.T) {
	res := Generate(Target{Bounds: Box{Width: 10, Depth: 10}}, nil, GeneratorParams{NumAisles: 1}, DefaultRules())
	assert.Zero(t, res.Requested)
	assert.Empty(t, res.Shelves)
	assert.True(t, res.Complete())
}

func TestGenerateForZone(t *testing.T) {
	p := newFakePlan()
	p.zones = []models.Zone{zoneAt("z", 2, 2, 10, 8)}
	// existing shelves are replaced, so they never block the new layout
	p.shelves = []models.Shelf{shelfAt("old", "z", 2, 2, 1.5, 1.2)}
	p.areas = []models.Area{obstacleArea("wall", 13, 2, 1, 8)}

	res, err := GenerateForZone(p, "z", scenarioParams(), DefaultRules())
	require.NoError(t, err)
	assert.True(t, res.Complete())
	assert.Equal(t, 2.0, res.Shelves[0].LocationX)

	_, err = GenerateForZone(p, "missing", scenarioParams(), DefaultRules())
	assert.True(t, errors.Is(err, ErrNotFound))
}
