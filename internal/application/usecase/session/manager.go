package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	domainerror "github.com/budget-dashboard/backend/internal/domain/error"
	"github.com/budget-dashboard/backend/internal/domain/valueobject"
)

// Manager owns every live session. Sessions share no state with each other.
type Manager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	idleTTL  time.Duration
	defaults valueobject.AnalysisSettings
	now      func() time.Time
}

// NewManager creates a session manager. Sessions idle for longer than idleTTL are
// removed by ExpireIdle.
func NewManager(idleTTL time.Duration, now func() time.Time) *Manager {
	if now == nil {
		now = time.Now
	}
	return &Manager{
		sessions: make(map[uuid.UUID]*Session),
		idleTTL:  idleTTL,
		defaults: valueobject.DefaultAnalysisSettings(),
		now:      now,
	}
}

// SetDefaultSettings sets the analysis settings new sessions start with.
func (m *Manager) SetDefaultSettings(settings valueobject.AnalysisSettings) {
	m.mu.Lock()
	m.defaults = settings
	m.mu.Unlock()
}

// Create starts a new empty session.
func (m *Manager) Create() *Session {
	m.mu.Lock()
	s := newSession(uuid.New(), m.now().UTC(), m.defaults)
	m.sessions[s.ID] = s
	m.mu.Unlock()

	slog.Info("Session created", "session_id", s.ID)
	return s
}

// Get returns a session and marks it as accessed.
func (m *Manager) Get(id uuid.UUID) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok {
		return nil, domainerror.NewSessionError(domainerror.ErrCodeSessionNotFound, "session not found or expired", domainerror.ErrSessionNotFound)
	}
	s.touch(m.now().UTC())
	return s, nil
}

// Delete ends a session.
func (m *Manager) Delete(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return domainerror.NewSessionError(domainerror.ErrCodeSessionNotFound, "session not found or expired", domainerror.ErrSessionNotFound)
	}
	delete(m.sessions, id)

	slog.Info("Session ended", "session_id", id)
	return nil
}

// ExpireIdle removes sessions not accessed within the idle TTL and returns their ids.
func (m *Manager) ExpireIdle() []uuid.UUID {
	cutoff := m.now().UTC().Add(-m.idleTTL)

	m.mu.Lock()
	defer m.mu.Unlock()

	expired := make([]uuid.UUID, 0)
	for id, s := range m.sessions {
		if s.LastAccess().Before(cutoff) {
			delete(m.sessions, id)
			expired = append(expired, id)
		}
	}
	if len(expired) > 0 {
		slog.Info("Expired idle sessions", "count", len(expired), "remaining", len(m.sessions))
	}
	return expired
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// IdleTTL returns how long a session may stay unused.
func (m *Manager) IdleTTL() time.Duration {
	return m.idleTTL
}
