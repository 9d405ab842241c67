package session

import (
	"sync"

	"github.com/rs/zerolog"

	"sophia-orders/internal/model"
)

// Store holds per-conversation session state keyed by an opaque,
// caller-supplied session ID.
//
// Get and Put exchange deep copies, so callers never alias stored state.
// Concurrent read-modify-write cycles on the same session ID are not
// serialised: the last Put wins.
type Store interface {
	// Get retrieves the session for the given ID, creating a fresh empty
	// session on first access.
	Get(sessionID string) model.Session

	// Put unconditionally overwrites the session for the given ID.
	Put(sessionID string, s model.Session)

	// Len reports the number of live sessions.
	Len() int
}

// memoryStore implements Store with a process-wide map. There is no eviction;
// sessions live for the process lifetime.
type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string]model.Session
	logger   zerolog.Logger
}

// NewMemoryStore creates a new in-memory session store.
func NewMemoryStore(logger zerolog.Logger) Store {
	return &memoryStore{
		sessions: make(map[string]model.Session),
		logger:   logger.With().Str("component", "session-store").Logger(),
	}
}

func (s *memoryStore) Get(sessionID string) model.Session {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if ok {
		return sess.Clone()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Re-check under the write lock; another request may have created it.
	if sess, ok := s.sessions[sessionID]; ok {
		return sess.Clone()
	}
	sess = model.NewSession()
	s.sessions[sessionID] = sess.Clone()
	s.logger.Debug().Str("session_id", sessionID).Msg("session created")
	return sess
}

func (s *memoryStore) Put(sessionID string, sess model.Session) {
	s.mu.Lock()
	s.sessions[sessionID] = sess.Clone()
	s.mu.Unlock()
}

func (s *memoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
