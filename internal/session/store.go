// Package session holds the per-session AI state that the dashboards
// read and overwrite between requests: the last classification result
// and the cached similarity list. State is request-scoped and keyed by
// the session id minted at login; there is no cross-session visibility.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/nsight-itsm/assistant/internal/domain"
)

// State is the transient AI context for one session.
type State struct {
	LastCategory    string                 `json:"last_category"`
	LastDescription string                 `json:"last_description"`
	SimilarTickets  []domain.SimilarTicket `json:"similar_tickets"`
}

// Store persists session state. Get returns nil when no state exists.
type Store interface {
	Get(ctx context.Context, sessionID string) (*State, error)
	Put(ctx context.Context, sessionID string, state State) error
	Clear(ctx context.Context, sessionID string) error
}

// MemoryStore is a process-local Store for tests and redis-less setups.
type MemoryStore struct {
	mu  sync.RWMutex
	ttl time.Duration
	m   map[string]memoryEntry
}

type memoryEntry struct {
	state     State
	expiresAt time.Time
}

// NewMemoryStore builds an in-memory store with the given TTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, m: make(map[string]memoryEntry)}
}

// Get returns the live state for a session, nil when absent or expired.
func (s *MemoryStore) Get(_ context.Context, sessionID string) (*State, error) {
	s.mu.RLock()
	entry, ok := s.m[sessionID]
	s.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, nil
	}
	state := entry.state
	return &state, nil
}

// Put stores state for a session.
func (s *MemoryStore) Put(_ context.Context, sessionID string, state State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[sessionID] = memoryEntry{state: state, expiresAt: time.Now().Add(s.ttl)}
	return nil
}

// Clear removes state for a session.
func (s *MemoryStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, sessionID)
	return nil
}
