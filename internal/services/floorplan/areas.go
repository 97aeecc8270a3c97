package floorplan

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Haricane11/OptiWareUi-sub000/internal/layout"
	"github.com/Haricane11/OptiWareUi-sub000/internal/models"
)

// CreateArea adds a lane or obstacle area to a floor. Non-passable areas may
// not cover a zone.
func (s *Service) CreateArea(ctx context.Context, floorID string, a models.Area) (layout.AreaChange, error) {
	sess, err := s.session(ctx, floorID)
	if err != nil {
		return layout.AreaChange{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	snap := sess.store.Load()
	a.FloorID = floorID
	a.LocationX = layout.SnapToGrid(a.LocationX, s.rules.GridStep)
	a.LocationY = layout.SnapToGrid(a.LocationY, s.rules.GridStep)
	if d := layout.CheckArea(snap, a); !d.Accepted {
		return layout.AreaChange{Decision: d, Area: a}, nil
	}
	if a.ID == "" {
		a.ID = uuid.New().String()
	}

	err = s.commit(ctx, sess, snap.WithArea(a), func(ctx context.Context) error {
		return s.repo.CreateArea(ctx, &a)
	}, recordEvent(EventCreated, a))
	if err != nil {
		return layout.AreaChange{}, err
	}
	s.logger.Infof("✅ Area %q (%s) created on floor %s", a.AreaName, a.AreaType, floorID)
	return layout.AreaChange{Decision: layout.Decision{Accepted: true}, Area: a}, nil
}

// UpdateArea changes an area's descriptive fields, its passability and its
// height. Making an area non-passable is validated like a move.
func (s *Service) UpdateArea(ctx context.Context, areaID string, patch AreaPatch) (layout.AreaChange, error) {
	sess, err := s.areaSession(ctx, areaID)
	if err != nil {
		return layout.AreaChange{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	snap := sess.store.Load()
	current, ok := snap.Area(areaID)
	if !ok {
		return layout.AreaChange{}, fmt.Errorf("area %s: %w", areaID, layout.ErrNotFound)
	}
	candidate := patch.apply(current)
	if d := layout.CheckArea(snap, candidate); !d.Accepted {
		return layout.AreaChange{Decision: d, Area: current}, nil
	}
	return s.commitArea(ctx, sess, layout.AreaChange{Decision: layout.Decision{Accepted: true}, Area: candidate}, EventUpdated)
}

// MoveArea moves an area to (x, y).
func (s *Service) MoveArea(ctx context.Context, areaID string, x, y float64) (layout.AreaChange, error) {
	sess, err := s.areaSession(ctx, areaID)
	if err != nil {
		return layout.AreaChange{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	change, err := layout.MoveArea(sess.store.Load(), areaID, x, y, s.rules)
	if err != nil {
		return layout.AreaChange{}, err
	}
	if !change.Accepted {
		return change, nil
	}
	return s.commitArea(ctx, sess, change, EventMoved)
}

// ResizeArea gives an area a new width and depth.
func (s *Service) ResizeArea(ctx context.Context, areaID string, width, depth float64) (layout.AreaChange, error) {
	sess, err := s.areaSession(ctx, areaID)
	if err != nil {
		return layout.AreaChange{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	change, err := layout.ResizeArea(sess.store.Load(), areaID, width, depth, s.rules)
	if err != nil {
		return layout.AreaChange{}, err
	}
	if !change.Accepted {
		return change, nil
	}
	return s.commitArea(ctx, sess, change, EventResized)
}

func (s *Service) commitArea(ctx context.Context, sess *session, change layout.AreaChange, eventType string) (layout.AreaChange, error) {
	area := change.Area
	err := s.commit(ctx, sess, sess.store.Load().WithArea(area), func(ctx context.Context) error {
		return s.repo.UpdateArea(ctx, area)
	}, recordEvent(eventType, area))
	if err != nil {
		return layout.AreaChange{}, err
	}
	return change, nil
}

// DeleteArea removes an area.
func (s *Service) DeleteArea(ctx context.Context, areaID string) error {
	sess, err := s.areaSession(ctx, areaID)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	next, err := sess.store.Load().WithoutArea(areaID)
	if err != nil {
		return fmt.Errorf("area %s: %w", areaID, err)
	}
	return s.commit(ctx, sess, next, func(ctx context.Context) error {
		return s.repo.DeleteArea(ctx, areaID)
	}, Event{Type: EventDeleted, Entity: EntityArea, ID: areaID})
}
