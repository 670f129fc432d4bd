package rewrite

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"vbcore/internal/source"
)

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(log *zap.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// WithJournal records every successful commit in j.
func WithJournal(j *Journal) Option {
	return func(m *Manager) { m.journal = j }
}

// WithClock overrides the time source used for journal records.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// Manager creates sessions over one code source and tracks which are open.
// Sessions of one manager may live in different goroutines: mu guards the
// open set and every session state, commits run one at a time.
type Manager struct {
	src     CodeSource
	log     *zap.Logger
	journal *Journal
	now     func() time.Time

	commitMu sync.Mutex

	mu   sync.Mutex
	open map[uuid.UUID]*Session
}

func NewManager(src CodeSource, opts ...Option) *Manager {
	m := &Manager{
		src:  src,
		log:  zap.NewNop(),
		now:  time.Now,
		open: make(map[uuid.UUID]*Session),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewSession opens a session.
func (m *Manager) NewSession() *Session {
	s := &Session{
		id:        uuid.New(),
		manager:   m,
		rewriters: make(map[source.ModuleName]*Rewriter),
	}
	m.mu.Lock()
	m.open[s.id] = s
	m.mu.Unlock()
	return s
}

// OpenSessions returns the number of sessions that are still open.
func (m *Manager) OpenSessions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.open)
}

// Journal returns the configured journal or nil.
func (m *Manager) Journal() *Journal { return m.journal }

// release invalidates s if it is still open. It reports whether it was.
func (m *Manager) release(s *Session) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.state != Open {
		return false
	}
	s.state = Invalidated
	delete(m.open, s.id)
	return true
}

func (m *Manager) state(s *Session) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return s.state
}

// committed marks s committed and invalidates every other open session:
// their snapshots are stale.
func (m *Manager) committed(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.state = Committed
	delete(m.open, s.id)
	for id, other := range m.open {
		other.state = Invalidated
		delete(m.open, id)
		m.log.Debug("session invalidated",
			zap.Stringer("session", id),
			zap.Stringer("by", s.id))
	}
}
