package floorplan

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Haricane11/OptiWareUi-sub000/internal/layout"
	"github.com/Haricane11/OptiWareUi-sub000/internal/models"
	"github.com/Haricane11/OptiWareUi-sub000/internal/repository"
	"github.com/Haricane11/OptiWareUi-sub000/internal/store"
)

var errOffline = errors.New("database offline")

// fakeRepo records calls and fails every call while fail is set.
type fakeRepo struct {
	mu        sync.Mutex
	warehouse models.Warehouse
	floor     models.Floor
	fail      bool
	calls     []string
	replaced  map[string][]models.Shelf
}

func newFakeRepo(floor models.Floor) *fakeRepo {
	return &fakeRepo{
		warehouse: models.Warehouse{ID: "wh-1", Name: "Main", Width: 40, Depth: 30, Height: 8},
		floor:     floor,
		replaced:  make(map[string][]models.Shelf),
	}
}

func (r *fakeRepo) record(call string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call)
	if r.fail {
		return errOffline
	}
	return nil
}

func (r *fakeRepo) FetchHierarchy(ctx context.Context) ([]models.Warehouse, error) {
	w := r.warehouse
	w.Floors = []models.Floor{r.floor}
	return []models.Warehouse{w}, nil
}

func (r *fakeRepo) FetchFloor(ctx context.Context, floorID string) (models.Warehouse, models.Floor, error) {
	if floorID != r.floor.ID {
		return models.Warehouse{}, models.Floor{}, repository.ErrNotFound
	}
	return r.warehouse, r.floor, nil
}

func (r *fakeRepo) ZoneFloorID(ctx context.Context, zoneID string) (string, error) {
	for _, z := range r.floor.Zones {
		if z.ID == zoneID {
			return r.floor.ID, nil
		}
	}
	return "", repository.ErrNotFound
}

func (r *fakeRepo) AreaFloorID(ctx context.Context, areaID string) (string, error) {
	for _, a := range r.floor.Areas {
		if a.ID == areaID {
			return r.floor.ID, nil
		}
	}
	return "", repository.ErrNotFound
}

func (r *fakeRepo) ShelfFloorID(ctx context.Context, shelfID string) (string, error) {
	for _, z := range r.floor.Zones {
		for _, s := range z.Shelves {
			if s.ID == shelfID {
				return r.floor.ID, nil
			}
		}
	}
	return "", repository.ErrNotFound
}

func (r *fakeRepo) CreateZone(ctx context.Context, z *models.Zone) error {
	return r.record("CreateZone")
}
func (r *fakeRepo) UpdateZone(ctx context.Context, z models.Zone) error {
	return r.record("UpdateZone")
}
func (r *fakeRepo) DeleteZone(ctx context.Context, id string) error { return r.record("DeleteZone") }
func (r *fakeRepo) MoveZone(ctx context.Context, z models.Zone, s []models.Shelf) error {
	return r.record("MoveZone")
}

func (r *fakeRepo) ReplaceZoneShelves(ctx context.Context, zoneID string, shelves []models.Shelf) error {
	if err := r.record("ReplaceZoneShelves"); err != nil {
		return err
	}
	r.mu.Lock()
	r.replaced[zoneID] = shelves
	r.mu.Unlock()
	return nil
}

func (r *fakeRepo) UpdateShelf(ctx context.Context, s models.Shelf) error {
	return r.record("UpdateShelf")
}
func (r *fakeRepo) DeleteShelf(ctx context.Context, id string) error { return r.record("DeleteShelf") }
func (r *fakeRepo) CreateArea(ctx context.Context, a *models.Area) error {
	return r.record("CreateArea")
}
func (r *fakeRepo) UpdateArea(ctx context.Context, a models.Area) error {
	return r.record("UpdateArea")
}
func (r *fakeRepo) DeleteArea(ctx context.Context, id string) error { return r.record("DeleteArea") }

type recordingPublisher struct {
	mu     sync.Mutex
	events []Event
}

func (p *recordingPublisher) Publish(floorID string, message interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if evt, ok := message.(Event); ok {
		p.events = append(p.events, evt)
	}
}

func testFloor() models.Floor {
	return models.Floor{
		ID:          "floor-1",
		WarehouseID: "wh-1",
		LevelNum:    1,
		Zones: []models.Zone{{
			ID: "zone-a", FloorID: "floor-1", ZoneName: "Bulk A",
			LocationX: 2, LocationY: 2, Width: 10, Depth: 8,
			Shelves: []models.Shelf{
				{ID: "s1", ZoneID: "zone-a", ShelfCode: "A1-B1-L1", AisleNum: 1, BayNum: 1, LevelNum: 1,
					LocationX: 2, LocationY: 2, Width: 1.5, Depth: 1.2, Height: 0.8, OrientationAngle: models.Angle(0)},
				{ID: "s2", ZoneID: "zone-a", ShelfCode: "A1-B2-L1", AisleNum: 1, BayNum: 2, LevelNum: 1,
					LocationX: 2, LocationY: 6.2, Width: 1.5, Depth: 1.2, Height: 0.8, OrientationAngle: models.Angle(180)},
			},
		}},
		Areas: []models.Area{
			{ID: "stairs", FloorID: "floor-1", AreaName: "Stairs", AreaType: models.AreaTypeStairs,
				LocationX: 20, LocationY: 2, Width: 4, Depth: 4},
			{ID: "lane", FloorID: "floor-1", AreaName: "Main lane", AreaType: models.AreaTypeLane,
				IsPassable: true, LocationX: 0, LocationY: 20, Width: 40, Depth: 3},
		},
	}
}

func newTestService(t *testing.T) (*Service, *fakeRepo, *recordingPublisher) {
	t.Helper()
	repo := newFakeRepo(testFloor())
	pub := &recordingPublisher{}
	return NewService(repo, Options{Publisher: pub}), repo, pub
}

func TestMoveZoneCarriesShelvesAndPublishes(t *testing.T) {
	svc, repo, pub := newTestService(t)
	ctx := context.Background()

	move, err := svc.MoveZone(ctx, "zone-a", 6, 10)
	require.NoError(t, err)
	require.True(t, move.Accepted)
	assert.InDelta(t, 4.0, move.DX, 1e-9)
	assert.InDelta(t, 8.0, move.DY, 1e-9)

	floor, err := svc.Floor(ctx, "floor-1")
	require.NoError(t, err)
	require.Len(t, floor.Zones, 1)
	shelves := floor.Zones[0].Shelves
	require.Len(t, shelves, 2)
	assert.InDelta(t, 6.0, shelves[0].LocationX, 1e-9)
	assert.InDelta(t, 10.0, shelves[0].LocationY, 1e-9)
	assert.InDelta(t, 14.2, shelves[1].LocationY, 1e-9)

	assert.Equal(t, []string{"MoveZone"}, repo.calls)
	require.Len(t, pub.events, 1)
	assert.Equal(t, EventMoved, pub.events[0].Type)
	assert.Equal(t, "floor-1", pub.events[0].FloorID)
}

func TestMoveZoneOntoObstacleIsRejected(t *testing.T) {
	svc, repo, pub := newTestService(t)
	ctx := context.Background()

	move, err := svc.MoveZone(ctx, "zone-a", 16, 0)
	require.NoError(t, err)
	assert.False(t, move.Accepted)
	assert.Equal(t, layout.ReasonOverlapsArea, move.Reason)
	require.NotNil(t, move.Conflict)
	assert.Equal(t, "stairs", move.Conflict.ID)

	zone, shelves, err := svc.ZoneShelves(ctx, "zone-a")
	require.NoError(t, err)
	assert.Equal(t, 2.0, zone.LocationX)
	assert.Equal(t, 2.0, shelves[0].LocationY)
	assert.Empty(t, repo.calls)
	assert.Empty(t, pub.events)
}

func TestFailedPersistRollsBack(t *testing.T) {
	svc, repo, pub := newTestService(t)
	ctx := context.Background()

	before, err := svc.Snapshot(ctx, "floor-1")
	require.NoError(t, err)

	repo.fail = true
	_, err = svc.MoveZone(ctx, "zone-a", 6, 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersist)
	assert.ErrorIs(t, err, errOffline)

	after, err := svc.Snapshot(ctx, "floor-1")
	require.NoError(t, err)
	assert.Same(t, before, after)
	zone, _ := after.Zone("zone-a")
	assert.Equal(t, 2.0, zone.LocationX)
	assert.Empty(t, pub.events)
}

func TestGenerateZoneReplacesShelves(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	params := layout.GeneratorParams{
		StartAisle: 1, NumAisles: 1, BaysPerAisle: 4, LevelsPerBay: 2,
		BayWidth: 1.5, BayDepth: 1.2, LevelHeight: 0.8, AisleGap: 3.0,
		ShelfType: models.ShelfTypeStandardRack,
	}
	res, err := svc.GenerateZone(ctx, "zone-a", params)
	require.NoError(t, err)
	assert.True(t, res.Complete())
	assert.Equal(t, 8, res.Produced())

	_, shelves, err := svc.ZoneShelves(ctx, "zone-a")
	require.NoError(t, err)
	assert.Len(t, shelves, 8)
	for _, s := range shelves {
		assert.NotEmpty(t, s.ID)
		assert.NotEqual(t, "s1", s.ID)
	}
	assert.Len(t, repo.replaced["zone-a"], 8)

	inf, ok, err := svc.InferZoneParams(ctx, "zone-a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 4, inf.Params.BaysPerAisle)
	assert.Equal(t, 2, inf.Params.LevelsPerBay)
	assert.InDelta(t, 3.0, inf.Params.AisleGap, 1e-9)
}

func TestResizeZoneKeepsShelvesInside(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	out, err := svc.ResizeZone(ctx, "zone-a", []ResizeSample{{DW: 2, DD: 0}, {DW: -9, DD: 0}})
	require.NoError(t, err)
	assert.False(t, out.Accepted)
	assert.Equal(t, layout.ReasonOrphansShelves, out.Reason)
	assert.Equal(t, 1, out.Rejected)
	assert.True(t, out.Changed)
	assert.InDelta(t, 12.0, out.Zone.Width, 1e-9)
	assert.Equal(t, []string{"UpdateZone"}, repo.calls)
}

func TestCreateZoneAutoPlace(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	zone, d, err := svc.CreateZone(ctx, "floor-1", models.Zone{ZoneName: "Pick", Width: 4, Depth: 4}, true)
	require.NoError(t, err)
	require.True(t, d.Accepted)
	assert.NotEmpty(t, zone.ID)

	snap, err := svc.Snapshot(ctx, "floor-1")
	require.NoError(t, err)
	for _, other := range snap.Zones() {
		if other.ID == zone.ID {
			continue
		}
		assert.False(t, layout.Overlaps2D(layout.ZoneBox(zone), layout.ZoneBox(other)))
	}
}

func TestCreateZoneAutoPlaceOnFullFloor(t *testing.T) {
	repo := newFakeRepo(models.Floor{
		ID: "floor-1",
		Zones: []models.Zone{{
			ID: "big", FloorID: "floor-1", ZoneName: "Everything",
			LocationX: 0, LocationY: 0, Width: 40, Depth: 30,
		}},
	})
	pub := &recordingPublisher{}
	svc := NewService(repo, Options{Publisher: pub})
	ctx := context.Background()

	_, d, err := svc.CreateZone(ctx, "floor-1", models.Zone{ZoneName: "Pick", Width: 4, Depth: 4}, true)
	require.NoError(t, err)
	assert.False(t, d.Accepted)
	assert.Equal(t, layout.ReasonNoFreePosition, d.Reason)
	assert.Empty(t, repo.calls)
	assert.Empty(t, pub.events)

	snap, err := svc.Snapshot(ctx, "floor-1")
	require.NoError(t, err)
	assert.Len(t, snap.Zones(), 1)
}

func TestCreateAreaOverZoneIsRejected(t *testing.T) {
	svc, repo, _ := newTestService(t)

	change, err := svc.CreateArea(context.Background(), "floor-1", models.Area{
		AreaName: "Pillar", AreaType: models.AreaTypePillar, LocationX: 4, LocationY: 4, Width: 1, Depth: 1,
	})
	require.NoError(t, err)
	assert.False(t, change.Accepted)
	assert.Equal(t, layout.ReasonOverlapsZone, change.Reason)
	assert.Empty(t, repo.calls)
}

func TestUpdateShelfRejectsDuplicateCode(t *testing.T) {
	svc, _, _ := newTestService(t)

	taken, free := "A1-B1-L1", "A3-B4-L2"
	_, err := svc.UpdateShelf(context.Background(), "s2", ShelfPatch{ShelfCode: &taken})
	assert.ErrorIs(t, err, ErrDuplicateCode)

	sh, err := svc.UpdateShelf(context.Background(), "s2", ShelfPatch{ShelfCode: &free})
	require.NoError(t, err)
	assert.Equal(t, 3, sh.AisleNum)
	assert.Equal(t, 4, sh.BayNum)
	assert.Equal(t, 2, sh.LevelNum)
}

func TestUpdateKeepsOmittedFields(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	name := "Fire stairs"
	change, err := svc.UpdateArea(ctx, "stairs", AreaPatch{AreaName: &name})
	require.NoError(t, err)
	require.True(t, change.Accepted)
	assert.Equal(t, "Fire stairs", change.Area.AreaName)
	assert.Equal(t, models.AreaTypeStairs, change.Area.AreaType)
	assert.False(t, change.Area.IsPassable)

	passable := true
	change, err = svc.UpdateArea(ctx, "stairs", AreaPatch{IsPassable: &passable})
	require.NoError(t, err)
	assert.Equal(t, "Fire stairs", change.Area.AreaName)
	assert.True(t, change.Area.IsPassable)

	bin := 3
	sh, err := svc.UpdateShelf(ctx, "s1", ShelfPatch{BinNum: &bin})
	require.NoError(t, err)
	assert.Equal(t, 3, sh.BinNum)
	assert.Equal(t, "A1-B1-L1", sh.ShelfCode)

	weight := 250.0
	sh, err = svc.UpdateShelf(ctx, "s1", ShelfPatch{MaxWeight: &weight})
	require.NoError(t, err)
	assert.Equal(t, 3, sh.BinNum)
	assert.Equal(t, 250.0, sh.MaxWeight)

	color := "#ff8800"
	zone, err := svc.UpdateZone(ctx, "zone-a", ZonePatch{Color: &color})
	require.NoError(t, err)
	assert.Equal(t, "Bulk A", zone.ZoneName)
	assert.Equal(t, "#ff8800", zone.Color)
	assert.Len(t, repo.calls, 5)
}

// blockingRepo holds FetchFloor for one floor until release is closed.
type blockingRepo struct {
	*fakeRepo
	floorID string
	entered chan struct{}
	release chan struct{}
}

func (r *blockingRepo) FetchFloor(ctx context.Context, floorID string) (models.Warehouse, models.Floor, error) {
	if floorID == r.floorID {
		close(r.entered)
		<-r.release
	}
	return r.fakeRepo.FetchFloor(ctx, floorID)
}

func TestSlowFloorLoadDoesNotBlockOtherFloors(t *testing.T) {
	repo := &blockingRepo{
		fakeRepo: newFakeRepo(testFloor()),
		floorID:  "floor-2",
		entered:  make(chan struct{}),
		release:  make(chan struct{}),
	}
	svc := NewService(repo, Options{})
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := svc.Snapshot(ctx, "floor-2")
		done <- err
	}()
	<-repo.entered

	snap, err := svc.Snapshot(ctx, "floor-1")
	require.NoError(t, err)
	assert.Equal(t, "floor-1", snap.FloorID())

	close(repo.release)
	assert.ErrorIs(t, <-done, repository.ErrNotFound)
}

func TestConcurrentLoadsShareOneSession(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	const callers = 8
	snaps := make([]*store.Snapshot, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			snap, err := svc.Snapshot(ctx, "floor-1")
			assert.NoError(t, err)
			snaps[i] = snap
		}(i)
	}
	wg.Wait()

	for _, snap := range snaps[1:] {
		assert.Same(t, snaps[0], snap)
	}
}

func TestUnknownEntities(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.MoveZone(ctx, "missing", 0, 0)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.Floor(ctx, "floor-9")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	err = svc.DeleteShelf(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteZoneCascades(t *testing.T) {
	svc, _, pub := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.DeleteZone(ctx, "zone-a"))
	snap, err := svc.Snapshot(ctx, "floor-1")
	require.NoError(t, err)
	assert.Empty(t, snap.Zones())
	assert.Empty(t, snap.Shelves())
	require.Len(t, pub.events, 1)
	assert.Equal(t, EventDeleted, pub.events[0].Type)
}

func TestDragZoneCommitsLastSample(t *testing.T) {
	svc, _, _ := newTestService(t)

	move, err := svc.DragZone(context.Background(), "zone-a", []layout.Point{{X: 0.2, Y: 0.1}, {X: 1.3, Y: 0.9}})
	require.NoError(t, err)
	require.True(t, move.Accepted)
	assert.InDelta(t, 3.5, move.Zone.LocationX, 1e-9)
	assert.InDelta(t, 3.0, move.Zone.LocationY, 1e-9)
}
