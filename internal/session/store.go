// Package session keeps one GameState per player behind an opaque id.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/tatianab/absurd-path/internal/engine"
	"github.com/tatianab/absurd-path/internal/models"
)

var (
	// ErrNotFound is returned for an id the store does not know.
	ErrNotFound = errors.New("no such session")
	// ErrIDInUse is returned when the id generator keeps producing ids
	// that already name a session.
	ErrIDInUse = errors.New("session id already in use")
)

const maxIDAttempts = 3

// Persister stores snapshots outside the process.
type Persister interface {
	SaveSnapshot(ctx context.Context, id string, snap models.Snapshot) error
	LoadSnapshot(ctx context.Context, id string) (models.Snapshot, bool, error)
	DeleteSnapshot(ctx context.Context, id string) (bool, error)
}

// Option configures a Store.
type Option func(*Store)

// WithPersister writes every successful view and choice through to p and
// restores unknown ids from it.
func WithPersister(p Persister) Option {
	return func(s *Store) { s.persister = p }
}

// WithIDGenerator replaces NewID.
func WithIDGenerator(gen func() (string, error)) Option {
	return func(s *Store) { s.newID = gen }
}

// Store maps session ids to player state for one story. Calls for the same
// id are serialized; different ids proceed independently.
type Store struct {
	engine    *engine.Engine
	persister Persister
	newID     func() (string, error)

	mu       sync.Mutex
	sessions map[string]*entry

	// loadMu orders persister reads that add sessions against Delete.
	// It is never taken while holding an entry lock.
	loadMu sync.Mutex
}

type entry struct {
	mu      sync.Mutex
	state   *models.GameState
	deleted bool
}

// NewStore returns an empty Store serving eng's story.
func NewStore(eng *engine.Engine, opts ...Option) *Store {
	s := &Store{
		engine:   eng,
		newID:    NewID,
		sessions: map[string]*entry{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Engine returns the engine shared by every session.
func (s *Store) Engine() *engine.Engine {
	return s.engine
}

// Len returns the number of sessions held in memory.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Create starts a new game and returns its id and first view.
func (s *Store) Create(ctx context.Context) (string, engine.NodeView, error) {
	state := s.engine.NewGame()
	view, err := s.engine.View(state)
	if err != nil {
		return "", engine.NodeView{}, err
	}

	for range maxIDAttempts {
		id, err := s.newID()
		if err != nil {
			return "", engine.NodeView{}, fmt.Errorf("new session id: %w", err)
		}
		e, err := s.reserve(ctx, id, state)
		if errors.Is(err, ErrIDInUse) {
			continue
		}
		if err != nil {
			return "", engine.NodeView{}, err
		}

		err = s.persist(ctx, id, state)
		if err != nil {
			e.deleted = true
			s.forget(id, e)
		}
		e.mu.Unlock()
		if err != nil {
			return "", engine.NodeView{}, err
		}
		return id, view, nil
	}
	return "", engine.NodeView{}, ErrIDInUse
}

// reserve adds a locked entry for id, failing with ErrIDInUse when id is
// held in memory or by the persister.
func (s *Store) reserve(ctx context.Context, id string, state *models.GameState) (*entry, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	s.mu.Lock()
	_, taken := s.sessions[id]
	s.mu.Unlock()
	if taken {
		return nil, ErrIDInUse
	}
	if s.persister != nil {
		_, ok, err := s.persister.LoadSnapshot(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("load snapshot: %w", err)
		}
		if ok {
			return nil, ErrIDInUse
		}
	}

	e := &entry{state: state}
	e.mu.Lock()
	s.mu.Lock()
	s.sessions[id] = e
	s.mu.Unlock()
	return e, nil
}

// View returns the current view of session id.
func (s *Store) View(ctx context.Context, id string) (engine.NodeView, error) {
	e, err := s.acquire(ctx, id)
	if err != nil {
		return engine.NodeView{}, err
	}
	defer e.mu.Unlock()

	view, err := s.engine.View(e.state)
	if err != nil {
		return engine.NodeView{}, err
	}
	return view, s.persist(ctx, id, e.state)
}

// Choose applies the choice at index to session id.
func (s *Store) Choose(ctx context.Context, id string, index int) (engine.NodeView, error) {
	e, err := s.acquire(ctx, id)
	if err != nil {
		return engine.NodeView{}, err
	}
	defer e.mu.Unlock()

	view, err := s.engine.Choose(e.state, index)
	if err != nil {
		return engine.NodeView{}, err
	}
	return view, s.persist(ctx, id, e.state)
}

// Snapshot returns a copy of session id's state.
func (s *Store) Snapshot(ctx context.Context, id string) (models.Snapshot, error) {
	e, err := s.acquire(ctx, id)
	if err != nil {
		return models.Snapshot{}, err
	}
	defer e.mu.Unlock()
	return e.state.Snapshot(), nil
}

// Delete forgets session id, including its persisted snapshot. It waits
// for any call already working on the session, and calls that were
// waiting behind it get ErrNotFound.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	s.mu.Lock()
	e := s.sessions[id]
	s.mu.Unlock()

	found := false
	if e != nil {
		e.mu.Lock()
		defer e.mu.Unlock()
		found = !e.deleted
		e.deleted = true
	}

	if s.persister != nil {
		deleted, err := s.persister.DeleteSnapshot(ctx, id)
		if err != nil {
			return fmt.Errorf("delete snapshot: %w", err)
		}
		found = found || deleted
	}
	if e != nil {
		s.forget(id, e)
	}
	if !found {
		return ErrNotFound
	}
	return nil
}

// acquire returns the live entry for id with its lock held.
func (s *Store) acquire(ctx context.Context, id string) (*entry, error) {
	e, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	if e.deleted {
		e.mu.Unlock()
		return nil, ErrNotFound
	}
	return e, nil
}

func (s *Store) lookup(ctx context.Context, id string) (*entry, error) {
	s.mu.Lock()
	e, ok := s.sessions[id]
	s.mu.Unlock()
	if ok {
		return e, nil
	}
	if s.persister == nil {
		return nil, ErrNotFound
	}

	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	s.mu.Lock()
	e, ok = s.sessions[id]
	s.mu.Unlock()
	if ok {
		return e, nil
	}

	snap, ok, err := s.persister.LoadSnapshot(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if !ok {
		return nil, ErrNotFound
	}
	e = &entry{state: models.FromSnapshot(snap)}
	s.mu.Lock()
	s.sessions[id] = e
	s.mu.Unlock()
	return e, nil
}

// forget drops id from memory if it still maps to e.
func (s *Store) forget(id string, e *entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sessions[id] == e {
		delete(s.sessions, id)
	}
}

func (s *Store) persist(ctx context.Context, id string, state *models.GameState) error {
	if s.persister == nil {
		return nil
	}
	if err := s.persister.SaveSnapshot(ctx, id, state.Snapshot()); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}
