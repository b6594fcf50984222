// internal/store/memory.go
//
// In-memory implementation of the session Store.
// Sessions are keyed by ID so that more than one game could be held at
// once; the service currently keeps a single "current" game in it.
//
// Characteristics:
//   - Stores *game.Session values keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/robalobadob/hangman/internal/game"
)

// ErrNotFound is returned by Get for unknown IDs.
var ErrNotFound = errors.New("store: session not found")

// Store defines the persistence interface for game sessions.
type Store interface {
	// Save persists or updates a session.
	Save(ctx context.Context, s *game.Session) error

	// Get retrieves a session by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*game.Session, error)

	// Delete drops a session; unknown IDs are ignored.
	Delete(ctx context.Context, id string) error
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex
	sessions map[string]*game.Session
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*game.Session)}
}

func (m *memory) Save(ctx context.Context, s *game.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID()] = s
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*game.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
