package repository

import (
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tecu23/chess-clock/pkg/session"
)

var ErrNotFound = errors.New("session not found")

// InMemorySessionRepository is an in-memory store of clock sessions
type InMemorySessionRepository struct {
	sessions map[uuid.UUID]*session.Session
	mu       sync.RWMutex
	logger   *zap.Logger
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository(logger *zap.Logger) *InMemorySessionRepository {
	return &InMemorySessionRepository{
		sessions: make(map[uuid.UUID]*session.Session),
		logger:   logger,
	}
}

// Save stores a session, replacing one with the same ID
func (r *InMemorySessionRepository) Save(s *session.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[s.ID] = s
	r.logger.Debug("session saved", zap.String("session_id", s.ID.String()), zap.Int("total", len(r.sessions)))
}

// Get retrieves a session by ID
func (r *InMemorySessionRepository) Get(id uuid.UUID) (*session.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Delete removes a session and returns it
func (r *InMemorySessionRepository) Delete(id uuid.UUID) (*session.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(r.sessions, id)
	return s, nil
}

// List returns all sessions, oldest first
func (r *InMemorySessionRepository) List() []*session.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]*session.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		list = append(list, s)
	}
	sortByCreation(list)
	return list
}

// ListByConnection returns the sessions owned by a connection, oldest first
func (r *InMemorySessionRepository) ListByConnection(connectionID uuid.UUID) []*session.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var list []*session.Session
	for _, s := range r.sessions {
		if s.ConnectionID == connectionID {
			list = append(list, s)
		}
	}
	sortByCreation(list)
	return list
}

// Count returns the number of stored sessions
func (r *InMemorySessionRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func sortByCreation(list []*session.Session) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
}
