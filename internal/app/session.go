package app

import (
	"sync"
	"sync/atomic"
	"time"

	"tutor_search_bot/internal/domain/wizard"
	"tutor_search_bot/internal/infra/metrics"
)

// Session is one chat's wizard. mu serialises state mutations and
// search outcome paints; the network round trip runs outside it.
type Session struct {
	ChatID int64

	mu         sync.Mutex
	state      *wizard.State
	search     *Orchestrator
	lastActive atomic.Int64
}

// newSession binds a wizard and an orchestrator to renderer. The
// orchestrator paints under the session mutex.
func newSession(chatID int64, state *wizard.State, newSearch func(guard sync.Locker) *Orchestrator, now time.Time) *Session {
	s := &Session{ChatID: chatID, state: state}
	s.search = newSearch(&s.mu)
	s.touch(now)
	return s
}

func (s *Session) touch(now time.Time) {
	s.lastActive.Store(now.UnixNano())
}

// LastActive returns the time of the last interaction.
func (s *Session) LastActive() time.Time {
	return time.Unix(0, s.lastActive.Load())
}

// SessionStore keeps sessions in memory keyed by chat ID.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[int64]*Session
	metrics  *metrics.SearchMetrics
}

func NewSessionStore(m *metrics.SearchMetrics) *SessionStore {
	return &SessionStore{
		sessions: make(map[int64]*Session),
		metrics:  m,
	}
}

func (s *SessionStore) Get(chatID int64) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[chatID]
	return sess, ok
}

// GetOrCreate returns the chat's session, building it with create when
// absent. created reports which case happened.
func (s *SessionStore) GetOrCreate(chatID int64, create func() *Session) (sess *Session, created bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.sessions[chatID]; ok {
		return existing, false
	}
	sess = create()
	s.sessions[chatID] = sess
	s.metrics.SetSessions(len(s.sessions))
	return sess, true
}

func (s *SessionStore) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, chatID)
	s.metrics.SetSessions(len(s.sessions))
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// SweepIdle drops sessions idle since before cutoff and returns how many
// were removed. Their in-flight searches are invalidated.
func (s *SessionStore) SweepIdle(cutoff time.Time) int {
	s.mu.Lock()
	var idle []*Session
	for id, sess := range s.sessions {
		if sess.LastActive().Before(cutoff) {
			idle = append(idle, sess)
			delete(s.sessions, id)
		}
	}
	s.metrics.SetSessions(len(s.sessions))
	s.mu.Unlock()

	for _, sess := range idle {
		sess.mu.Lock()
		sess.search.Invalidate()
		sess.mu.Unlock()
	}
	return len(idle)
}
