package floorplan

import (
	"context"
	"fmt"

	"github.com/Haricane11/OptiWareUi-sub000/internal/layout"
	"github.com/Haricane11/OptiWareUi-sub000/internal/models"
)

// UpdateShelf changes a shelf's code, type, status and capacity. The code
// must stay unique within the zone.
func (s *Service) UpdateShelf(ctx context.Context, shelfID string, patch ShelfPatch) (models.Shelf, error) {
	sess, err := s.shelfSession(ctx, shelfID)
	if err != nil {
		return models.Shelf{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	snap := sess.store.Load()
	current, ok := snap.Shelf(shelfID)
	if !ok {
		return models.Shelf{}, fmt.Errorf("shelf %s: %w", shelfID, layout.ErrNotFound)
	}
	if code := patch.ShelfCode; code != nil && *code != "" && *code != current.ShelfCode {
		for _, other := range snap.ShelvesInZone(current.ZoneID) {
			if other.ID != current.ID && other.ShelfCode == *code {
				return models.Shelf{}, fmt.Errorf("%s in zone %s: %w", *code, current.ZoneID, ErrDuplicateCode)
			}
		}
		current.ShelfCode = *code
		if aisle, bay, level, err := layout.ParseShelfCode(*code); err == nil {
			current.AisleNum, current.BayNum, current.LevelNum = aisle, bay, level
		}
	}
	current = patch.apply(current)

	next, err := snap.WithShelf(current)
	if err != nil {
		return models.Shelf{}, fmt.Errorf("shelf %s: %w", shelfID, err)
	}
	err = s.commit(ctx, sess, next, func(ctx context.Context) error {
		return s.repo.UpdateShelf(ctx, current)
	}, recordEvent(EventUpdated, current))
	if err != nil {
		return models.Shelf{}, err
	}
	return current, nil
}

// MoveShelf drops a dragged shelf at the snapped (x, y). Shelf moves are not
// validated.
func (s *Service) MoveShelf(ctx context.Context, shelfID string, x, y float64) (models.Shelf, error) {
	sess, err := s.shelfSession(ctx, shelfID)
	if err != nil {
		return models.Shelf{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	snap := sess.store.Load()
	moved, err := layout.MoveShelf(snap, shelfID, x, y, s.rules)
	if err != nil {
		return models.Shelf{}, err
	}
	next, err := snap.WithShelf(moved)
	if err != nil {
		return models.Shelf{}, fmt.Errorf("shelf %s: %w", shelfID, err)
	}
	err = s.commit(ctx, sess, next, func(ctx context.Context) error {
		return s.repo.UpdateShelf(ctx, moved)
	}, recordEvent(EventMoved, moved))
	if err != nil {
		return models.Shelf{}, err
	}
	return moved, nil
}

// DeleteShelf removes one shelf.
func (s *Service) DeleteShelf(ctx context.Context, shelfID string) error {
	sess, err := s.shelfSession(ctx, shelfID)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	next, err := sess.store.Load().WithoutShelf(shelfID)
	if err != nil {
		return fmt.Errorf("shelf %s: %w", shelfID, err)
	}
	return s.commit(ctx, sess, next, func(ctx context.Context) error {
		return s.repo.DeleteShelf(ctx, shelfID)
	}, Event{Type: EventDeleted, Entity: EntityShelf, ID: shelfID})
}
