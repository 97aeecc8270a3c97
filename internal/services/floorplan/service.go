// Package floorplan is the editing service behind the floor-plan editor. It
// keeps one in-memory store per floor, runs the layout engine against it and
// persists accepted changes through a Repository.
//
// Every mutation is a tentative command: the next snapshot is swapped in
// first, then the repository is called. When the repository fails the
// previous snapshot is swapped back, unless a newer write already replaced it.
package floorplan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/Haricane11/OptiWareUi-sub000/internal/layout"
	"github.com/Haricane11/OptiWareUi-sub000/internal/models"
	"github.com/Haricane11/OptiWareUi-sub000/internal/store"
)

// ErrPersist wraps a repository failure after local state was compensated.
var ErrPersist = errors.New("floorplan: persisting change failed")

// ErrDuplicateCode is returned when a shelf code is already used in its zone.
var ErrDuplicateCode = errors.New("floorplan: shelf code already used in zone")

// Repository is the persistence collaborator.
type Repository interface {
	FetchHierarchy(ctx context.Context) ([]models.Warehouse, error)
	FetchFloor(ctx context.Context, floorID string) (models.Warehouse, models.Floor, error)
	ZoneFloorID(ctx context.Context, zoneID string) (string, error)
	AreaFloorID(ctx context.Context, areaID string) (string, error)
	ShelfFloorID(ctx context.Context, shelfID string) (string, error)

	CreateZone(ctx context.Context, z *models.Zone) error
	UpdateZone(ctx context.Context, z models.Zone) error
	DeleteZone(ctx context.Context, zoneID string) error
	MoveZone(ctx context.Context, z models.Zone, shelves []models.Shelf) error
	ReplaceZoneShelves(ctx context.Context, zoneID string, shelves []models.Shelf) error

	UpdateShelf(ctx context.Context, s models.Shelf) error
	DeleteShelf(ctx context.Context, shelfID string) error

	CreateArea(ctx context.Context, a *models.Area) error
	UpdateArea(ctx context.Context, a models.Area) error
	DeleteArea(ctx context.Context, areaID string) error
}

// Publisher fans committed changes out to floor subscribers.
type Publisher interface {
	Publish(floorID string, message interface{})
}

// Options configures a Service. Zero values fall back to defaults.
type Options struct {
	Rules     layout.Rules
	Publisher Publisher
	Logger    *log.Logger
}

// Service owns the editing sessions of every floor touched since start.
type Service struct {
	repo   Repository
	pub    Publisher
	rules  layout.Rules
	logger *log.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

// session serialises the commands of one floor around its store.
type session struct {
	mu    sync.Mutex
	store *store.Store
}

// NewService creates a floor-plan editing service
func NewService(repo Repository, opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Service{
		repo:     repo,
		pub:      opts.Publisher,
		rules:    opts.Rules.Normalize(),
		logger:   logger,
		sessions: make(map[string]*session),
	}
}

// Rules returns the effective layout rules.
func (s *Service) Rules() layout.Rules {
	return s.rules
}

// Hierarchy returns every warehouse with its floors and their contents,
// straight from the repository.
func (s *Service) Hierarchy(ctx context.Context) ([]models.Warehouse, error) {
	return s.repo.FetchHierarchy(ctx)
}

// Floor returns the current state of a floor as a nested record.
func (s *Service) Floor(ctx context.Context, floorID string) (models.Floor, error) {
	sess, err := s.session(ctx, floorID)
	if err != nil {
		return models.Floor{}, err
	}
	return sess.store.Load().Floor(), nil
}

// Snapshot returns the current plan of a floor.
func (s *Service) Snapshot(ctx context.Context, floorID string) (*store.Snapshot, error) {
	sess, err := s.session(ctx, floorID)
	if err != nil {
		return nil, err
	}
	return sess.store.Load(), nil
}

// FindPosition proposes a free spot for a new shelf or zone on a floor.
func (s *Service) FindPosition(ctx context.Context, floorID string, width, depth float64, kind layout.ItemKind) (layout.Placement, error) {
	sess, err := s.session(ctx, floorID)
	if err != nil {
		return layout.Placement{}, err
	}
	return layout.FindPosition(sess.store.Load(), width, depth, kind, s.rules), nil
}

// session returns the loaded session of a floor, loading it on first use.
// The repository is read without holding s.mu; when two callers race, the
// first session stored wins.
func (s *Service) session(ctx context.Context, floorID string) (*session, error) {
	s.mu.Lock()
	sess, ok := s.sessions[floorID]
	s.mu.Unlock()
	if ok {
		return sess, nil
	}

	warehouse, floor, err := s.repo.FetchFloor(ctx, floorID)
	if err != nil {
		return nil, fmt.Errorf("load floor %s: %w", floorID, err)
	}
	loaded := &session{store: store.New(store.FromFloor(warehouse, floor, s.rules))}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[floorID]; ok {
		return sess, nil
	}
	s.sessions[floorID] = loaded
	s.logger.Debugf("📐 Floor %s loaded: %d zones, %d areas", floorID, len(floor.Zones), len(floor.Areas))
	return loaded, nil
}

// lookup resolves the floor of an entity, preferring loaded sessions.
func (s *Service) lookup(ctx context.Context, has func(*store.Snapshot) bool, resolve func(context.Context) (string, error)) (*session, error) {
	s.mu.Lock()
	for _, sess := range s.sessions {
		if has(sess.store.Load()) {
			s.mu.Unlock()
			return sess, nil
		}
	}
	s.mu.Unlock()

	floorID, err := resolve(ctx)
	if err != nil {
		return nil, err
	}
	return s.session(ctx, floorID)
}

func (s *Service) zoneSession(ctx context.Context, zoneID string) (*session, error) {
	return s.lookup(ctx,
		func(snap *store.Snapshot) bool { _, ok := snap.Zone(zoneID); return ok },
		func(ctx context.Context) (string, error) { return s.repo.ZoneFloorID(ctx, zoneID) })
}

func (s *Service) areaSession(ctx context.Context, areaID string) (*session, error) {
	return s.lookup(ctx,
		func(snap *store.Snapshot) bool { _, ok := snap.Area(areaID); return ok },
		func(ctx context.Context) (string, error) { return s.repo.AreaFloorID(ctx, areaID) })
}

func (s *Service) shelfSession(ctx context.Context, shelfID string) (*session, error) {
	return s.lookup(ctx,
		func(snap *store.Snapshot) bool { _, ok := snap.Shelf(shelfID); return ok },
		func(ctx context.Context) (string, error) { return s.repo.ShelfFloorID(ctx, shelfID) })
}

// commit swaps next in, persists it and publishes the event. On a repository
// failure the previous snapshot is restored if next is still current.
func (s *Service) commit(ctx context.Context, sess *session, next *store.Snapshot, persist func(context.Context) error, evt Event) error {
	evt.FloorID = next.FloorID()
	prev := sess.store.Swap(next)
	if err := persist(ctx); err != nil {
		if sess.store.CompareAndSwap(next, prev) {
			s.logger.Warnf("↩️ %s %s not saved, floor %s rolled back: %v", evt.Entity, evt.ID, evt.FloorID, err)
		} else {
			s.logger.Errorf("❌ %s %s not saved and floor %s changed since: %v", evt.Entity, evt.ID, evt.FloorID, err)
		}
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	s.publish(evt)
	return nil
}

func (s *Service) publish(evt Event) {
	if s.pub == nil {
		return
	}
	s.pub.Publish(evt.FloorID, evt)
}
