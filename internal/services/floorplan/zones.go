package floorplan

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/Haricane11/OptiWareUi-sub000/internal/layout"
	"github.com/Haricane11/OptiWareUi-sub000/internal/models"
)

// ResizeSample is one pointer-move of a zone resize, measured from where the
// resize began.
type ResizeSample struct {
	DW float64 `json:"dw"`
	DD float64 `json:"dd"`
}

// ResizeOutcome reports a replayed resize. Decision is the verdict on the last
// sample; Rejected counts samples that kept the prior size.
type ResizeOutcome struct {
	layout.Decision
	Zone     models.Zone `json:"zone"`
	Changed  bool        `json:"changed"`
	Rejected int         `json:"rejected"`
}

// CreateZone adds a zone to a floor. With autoPlace the position finder picks
// the location and the zone is rejected when no free position exists;
// otherwise the given location is snapped to the grid.
func (s *Service) CreateZone(ctx context.Context, floorID string, z models.Zone, autoPlace bool) (models.Zone, layout.Decision, error) {
	sess, err := s.session(ctx, floorID)
	if err != nil {
		return models.Zone{}, layout.Decision{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	snap := sess.store.Load()
	z.FloorID = floorID
	z.Shelves = nil
	if autoPlace {
		p := layout.FindPosition(snap, z.Width, z.Depth, layout.KindZone, s.rules)
		if !p.Found {
			return z, layout.Decision{Reason: layout.ReasonNoFreePosition}, nil
		}
		z.LocationX, z.LocationY = p.X, p.Y
	} else {
		z.LocationX = layout.SnapToGrid(z.LocationX, s.rules.GridStep)
		z.LocationY = layout.SnapToGrid(z.LocationY, s.rules.GridStep)
	}
	if d := layout.CheckZone(snap, z); !d.Accepted {
		return z, d, nil
	}
	if z.ID == "" {
		z.ID = uuid.New().String()
	}

	next := snap.WithZone(z)
	err = s.commit(ctx, sess, next, func(ctx context.Context) error {
		return s.repo.CreateZone(ctx, &z)
	}, recordEvent(EventCreated, z))
	if err != nil {
		return models.Zone{}, layout.Decision{}, err
	}
	s.logger.Infof("✅ Zone %q created on floor %s at (%.1f, %.1f)", z.ZoneName, floorID, z.LocationX, z.LocationY)
	return z, layout.Decision{Accepted: true}, nil
}

// UpdateZone changes a zone's descriptive fields. Geometry only changes
// through MoveZone and ResizeZone.
func (s *Service) UpdateZone(ctx context.Context, zoneID string, patch ZonePatch) (models.Zone, error) {
	sess, err := s.zoneSession(ctx, zoneID)
	if err != nil {
		return models.Zone{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	snap := sess.store.Load()
	current, ok := snap.Zone(zoneID)
	if !ok {
		return models.Zone{}, fmt.Errorf("zone %s: %w", zoneID, layout.ErrNotFound)
	}
	current = patch.apply(current)

	err = s.commit(ctx, sess, snap.WithZone(current), func(ctx context.Context) error {
		return s.repo.UpdateZone(ctx, current)
	}, recordEvent(EventUpdated, current))
	if err != nil {
		return models.Zone{}, err
	}
	return current, nil
}

// DeleteZone removes a zone and its shelves.
func (s *Service) DeleteZone(ctx context.Context, zoneID string) error {
	sess, err := s.zoneSession(ctx, zoneID)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	next, err := sess.store.Load().WithoutZone(zoneID)
	if err != nil {
		return fmt.Errorf("zone %s: %w", zoneID, err)
	}
	err = s.commit(ctx, sess, next, func(ctx context.Context) error {
		return s.repo.DeleteZone(ctx, zoneID)
	}, Event{Type: EventDeleted, Entity: EntityZone, ID: zoneID})
	if err != nil {
		return err
	}
	s.logger.Infof("🗑️ Zone %s deleted", zoneID)
	return nil
}

// MoveZone moves a zone to (x, y), carrying its shelves along. A rejected
// move is returned as a decision and changes nothing.
func (s *Service) MoveZone(ctx context.Context, zoneID string, x, y float64) (layout.ZoneMove, error) {
	sess, err := s.zoneSession(ctx, zoneID)
	if err != nil {
		return layout.ZoneMove{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.moveZone(ctx, sess, zoneID, x, y)
}

// DragZone replays the pointer offsets of a zone drag and commits the
// position of the last one.
func (s *Service) DragZone(ctx context.Context, zoneID string, samples []layout.Point) (layout.ZoneMove, error) {
	sess, err := s.zoneSession(ctx, zoneID)
	if err != nil {
		return layout.ZoneMove{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	zone, ok := sess.store.Load().Zone(zoneID)
	if !ok {
		return layout.ZoneMove{}, fmt.Errorf("zone %s: %w", zoneID, layout.ErrNotFound)
	}
	drag := layout.BeginDrag(layout.Point{X: zone.LocationX, Y: zone.LocationY}, s.rules)
	for _, p := range samples {
		drag.Sample(p.X, p.Y)
	}
	end := drag.End()
	return s.moveZone(ctx, sess, zoneID, end.X, end.Y)
}

func (s *Service) moveZone(ctx context.Context, sess *session, zoneID string, x, y float64) (layout.ZoneMove, error) {
	snap := sess.store.Load()
	move, err := layout.MoveZone(snap, zoneID, x, y, s.rules)
	if err != nil {
		return layout.ZoneMove{}, err
	}
	if !move.Accepted {
		s.logger.Debugf("🚫 Zone %s move to (%.1f, %.1f) rejected: %s", zoneID, x, y, move.Reason)
		return move, nil
	}
	if move.DX == 0 && move.DY == 0 {
		return move, nil
	}

	next, err := snap.WithZoneMoved(move.Zone, move.Shelves)
	if err != nil {
		return layout.ZoneMove{}, fmt.Errorf("zone %s: %w", zoneID, err)
	}
	err = s.commit(ctx, sess, next, func(ctx context.Context) error {
		return s.repo.MoveZone(ctx, move.Zone, move.Shelves)
	}, Event{Type: EventMoved, Entity: EntityZone, ID: zoneID, Payload: move})
	if err != nil {
		return layout.ZoneMove{}, err
	}
	return move, nil
}

// ResizeZone replays the pointer samples of a resize and persists the final
// accepted size.
func (s *Service) ResizeZone(ctx context.Context, zoneID string, samples []ResizeSample) (ResizeOutcome, error) {
	sess, err := s.zoneSession(ctx, zoneID)
	if err != nil {
		return ResizeOutcome{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	snap := sess.store.Load()
	resize, err := layout.BeginZoneResize(snap, zoneID, s.rules)
	if err != nil {
		return ResizeOutcome{}, err
	}
	var out ResizeOutcome
	out.Decision = layout.Decision{Accepted: true}
	for _, sample := range samples {
		out.Decision = resize.Sample(sample.DW, sample.DD)
		if !out.Accepted {
			out.Rejected++
		}
	}
	out.Zone, out.Changed = resize.Commit()
	if !out.Changed {
		return out, nil
	}

	zone := out.Zone
	err = s.commit(ctx, sess, snap.WithZone(zone), func(ctx context.Context) error {
		return s.repo.UpdateZone(ctx, zone)
	}, recordEvent(EventResized, zone))
	if err != nil {
		return ResizeOutcome{}, err
	}
	return out, nil
}

// GenerateZone bulk-generates racks into a zone, replacing its shelves.
// A partial result is committed as is; skipped slots are reported.
func (s *Service) GenerateZone(ctx context.Context, zoneID string, params layout.GeneratorParams) (layout.Result, error) {
	sess, err := s.zoneSession(ctx, zoneID)
	if err != nil {
		return layout.Result{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	snap := sess.store.Load()
	res, err := layout.GenerateForZone(snap, zoneID, params, s.rules)
	if err != nil {
		return layout.Result{}, err
	}
	for i := range res.Shelves {
		res.Shelves[i].ID = uuid.New().String()
	}

	next, err := snap.WithZoneShelves(zoneID, res.Shelves)
	if err != nil {
		return layout.Result{}, fmt.Errorf("zone %s: %w", zoneID, err)
	}
	err = s.commit(ctx, sess, next, func(ctx context.Context) error {
		return s.repo.ReplaceZoneShelves(ctx, zoneID, res.Shelves)
	}, Event{Type: EventReplaced, Entity: EntityZone, ID: zoneID, Payload: res.Shelves})
	if err != nil {
		return layout.Result{}, err
	}

	logGeneration(s.logger, zoneID, res)
	return res, nil
}

func logGeneration(logger *log.Logger, zoneID string, res layout.Result) {
	if res.Complete() {
		logger.Infof("🏗️ Zone %s generated: %d shelves", zoneID, res.Produced())
		return
	}
	logger.Warnf("⚠️ Zone %s generated %d of %d shelves, %d slots skipped", zoneID, res.Produced(), res.Requested, len(res.Skipped))
}

// InferZoneParams reconstructs the generator parameters of a zone's shelves.
// ok is false when the zone has no shelves.
func (s *Service) InferZoneParams(ctx context.Context, zoneID string) (layout.Inference, bool, error) {
	sess, err := s.zoneSession(ctx, zoneID)
	if err != nil {
		return layout.Inference{}, false, err
	}
	snap := sess.store.Load()
	if _, ok := snap.Zone(zoneID); !ok {
		return layout.Inference{}, false, fmt.Errorf("zone %s: %w", zoneID, layout.ErrNotFound)
	}
	inf, ok := layout.InferParams(snap.ShelvesInZone(zoneID), s.rules)
	return inf, ok, nil
}

// ZoneShelves returns a zone and its shelves for label and schedule exports.
func (s *Service) ZoneShelves(ctx context.Context, zoneID string) (models.Zone, []models.Shelf, error) {
	sess, err := s.zoneSession(ctx, zoneID)
	if err != nil {
		return models.Zone{}, nil, err
	}
	snap := sess.store.Load()
	zone, ok := snap.Zone(zoneID)
	if !ok {
		return models.Zone{}, nil, fmt.Errorf("zone %s: %w", zoneID, layout.ErrNotFound)
	}
	return zone, snap.ShelvesInZone(zoneID), nil
}
