package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Haricane11/OptiWareUi-sub000/internal/models"
)

func TestFindPositionEmptyFloor(t *testing.T) {
	p := newFakePlan()
	rules := DefaultRules()

	got := FindPosition(p, 1, 1, KindShelf, rules)
	assert.Equal(t, Placement{X: 2, Y: 2, Found: true}, got)

	got = FindPosition(p, 4, 4, KindZone, rules)
	assert.Equal(t, Placement{X: 0, Y: 0, Found: true}, got)
}

func TestFindPositionKeepsClearance(t *testing.T) {
	p := newFakePlan()
	p.shelves = []models.Shelf{shelfAt("s1", "z", 2, 2, 1, 1)}

	got := FindPosition(p, 1, 1, KindShelf, DefaultRules())
	assert.True(t, got.Found)
	assert.Equal(t, 3.5, got.X)
	assert.Equal(t, 2.0, got.Y)
}

func TestFindPositionKinds(t *testing.T) {
	p := newFakePlan()
	p.shelves = []models.Shelf{shelfAt("s1", "z", 0, 0, 1, 1)}
	p.zones = []models.Zone{zoneAt("z", 2, 2, 10, 10)}

	// zones ignore shelves, shelves ignore zones
	assert.Equal(t, Placement{X: 0, Y: 0, Found: true}, FindPosition(p, 1, 1, KindZone, DefaultRules()))
	assert.Equal(t, Placement{X: 2, Y: 2, Found: true}, FindPosition(p, 1, 1, KindShelf, DefaultRules()))
}

func TestFindPositionAvoidsObstacleAreas(t *testing.T) {
	p := newFakePlan()
	lane := obstacleArea("lane", 0, 0, 50, 5)
	lane.IsPassable = true
	p.areas = []models.Area{lane}

	assert.Equal(t, Placement{X: 0, Y: 0, Found: true}, FindPosition(p, 2, 2, KindZone, DefaultRules()))

	p.bounds = Box{Width: 10, Depth: 20, Height: 10}
	p.areas = []models.Area{obstacleArea("block", 0, 0, 10, 5)}
	got := FindPosition(p, 2, 2, KindZone, DefaultRules())
	assert.True(t, got.Found)
	assert.Equal(t, 0.0, got.X)
	assert.Equal(t, 5.5, got.Y)
}

func TestFindPositionGivesUp(t *testing.T) {
	p := newFakePlan()
	p.areas = []models.Area{obstacleArea("block", 0, 0, 50, 10)}
	rules := DefaultRules()
	rules.MaxSearchSteps = 3

	got := FindPosition(p, 1, 1, KindShelf, rules)
	assert.False(t, got.Found)
	assert.Equal(t, 2.0, got.X)
	assert.Equal(t, 2.0, got.Y)

	got = FindPosition(newFakePlan(), 60, 1, KindShelf, DefaultRules())
	assert.False(t, got.Found, "wider than the floor")
}
