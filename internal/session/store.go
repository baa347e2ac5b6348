// Package session tracks browser sessions. Each session owns its own view
// router and search controller.
package session

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aikya/companion/internal/search"
	"github.com/aikya/companion/internal/viewrouter"
)

type Session struct {
	ID     string
	Router *viewrouter.Router
	Search *search.Controller

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

type Store struct {
	searcher search.Searcher
	opts     search.Options
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewStore(searcher search.Searcher, opts search.Options) *Store {
	return &Store{
		searcher: searcher,
		opts:     opts,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Get returns the session for id, creating a fresh one when id is unknown or
// malformed. created reports whether a new session was made.
func (s *Store) Get(id string) (sess *Session, created bool) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if parsed, err := uuid.Parse(strings.TrimSpace(id)); err == nil {
		if existing, ok := s.sessions[parsed.String()]; ok {
			existing.touch(now)
			return existing, false
		}
	}

	sess = s.newSessionLocked(now)
	return sess, true
}

func (s *Store) newSessionLocked(now time.Time) *Session {
	sess := &Session{
		ID:       uuid.NewString(),
		Router:   viewrouter.New(),
		lastSeen: now,
	}
	opts := s.opts
	onFire := opts.OnFire
	opts.OnFire = func(query string) {
		sess.Router.Show(viewrouter.PanelSearch)
		if onFire != nil {
			onFire(query)
		}
	}
	sess.Search = search.NewController(s.searcher, opts)
	s.sessions[sess.ID] = sess
	return sess
}

// Sweep removes sessions idle for longer than idle and returns how many were
// removed.
func (s *Store) Sweep(idle time.Duration) int {
	cutoff := s.now().Add(-idle)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if sess.LastSeen().Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
