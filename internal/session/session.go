// Package session retains one run's generated output until the next run
// starts. The accumulated book lives here between the generation request
// and the artifact download, with an explicit reset instead of ambient
// shared state.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/hablemosbien/bookforge/internal/assemble"
	"github.com/hablemosbien/bookforge/internal/book"
)

// ErrNotFound is returned when no session exists for an ID.
var ErrNotFound = errors.New("session not found")

// Status describes where a session is in its lifecycle.
type Status string

const (
	StatusRunning  Status = "running"
	StatusComplete Status = "complete"
	StatusFailed   Status = "failed"
	StatusReset    Status = "reset"
)

// Session is one generation run and its output.
type Session struct {
	mu sync.Mutex

	ID        string
	Status    Status
	Book      *book.Book
	Events    []assemble.Event
	Error     string
	StartedAt time.Time
	EndedAt   time.Time
}

// Record appends a progress event.
func (s *Session) Record(ev assemble.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Events = append(s.Events, ev)
}

// Complete marks the session finished with its book.
func (s *Session) Complete(b *book.Book) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Book = b
	s.Status = StatusComplete
	s.EndedAt = time.Now()
}

// Fail marks the session failed.
func (s *Session) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Status = StatusFailed
	s.Error = err.Error()
	s.EndedAt = time.Now()
}

// Reset discards the session's output. The book and events are dropped;
// the session ID remains valid so the surface can confirm the reset.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Book = nil
	s.Events = nil
	s.Error = ""
	s.Status = StatusReset
}

// Snapshot returns a copy of the mutable fields for safe reads.
func (s *Session) Snapshot() (Status, *book.Book, []assemble.Event, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := make([]assemble.Event, len(s.Events))
	copy(events, s.Events)
	return s.Status, s.Book, events, s.Error
}

// Manager tracks sessions in memory, keyed by book ID.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Start registers a new running session under the given ID.
func (m *Manager) Start(id string) *Session {
	s := &Session{
		ID:        id,
		Status:    StatusRunning,
		StartedAt: time.Now(),
	}
	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()
	return s
}

// Get returns the session for an ID.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Reset clears the identified session's output.
func (m *Manager) Reset(id string) error {
	s, err := m.Get(id)
	if err != nil {
		return err
	}
	s.Reset()
	return nil
}
