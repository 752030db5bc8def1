// Package sessions keeps the per-browser view state: one feed, cart and theme
// controller per session, held in memory until the session goes idle.
package sessions

import (
	"sync"
	"time"

	"storefront/cart"
	"storefront/feed"
	"storefront/theme"

	"github.com/gofrs/uuid"
)

const DefaultTTL = 30 * time.Minute

type Session struct {
	Id    string
	Feed  *feed.Controller
	Cart  *cart.Controller
	Theme *theme.Controller

	lastSeen time.Time
}

type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	newFeed  func() *feed.Controller

	Now func() time.Time
}

func NewStore(newFeed func() *feed.Controller, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Store{
		sessions: map[string]*Session{},
		ttl:      ttl,
		newFeed:  newFeed,
		Now:      time.Now,
	}
}

// Create starts a session. A full feed reset also empties the session cart.
func (s *Store) Create() (*Session, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}

	sess := &Session{
		Id:    id.String(),
		Feed:  s.newFeed(),
		Cart:  cart.NewController(),
		Theme: theme.NewController(),
	}
	sess.Feed.OnReset(sess.Cart.Clear)

	s.Sweep()

	s.mu.Lock()
	sess.lastSeen = s.Now()
	s.sessions[sess.Id] = sess
	s.mu.Unlock()

	return sess, nil
}

// Get returns a live session and marks it as seen.
func (s *Store) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}

	now := s.Now()
	if now.Sub(sess.lastSeen) > s.ttl {
		delete(s.sessions, id)
		sess.Feed.Close()
		return nil, false
	}

	sess.lastSeen = now
	return sess, true
}

// Sweep drops idle sessions and reports how many went away.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.Now()
	n := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > s.ttl {
			delete(s.sessions, id)
			sess.Feed.Close()
			n++
		}
	}

	return n
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, sess := range s.sessions {
		sess.Feed.Close()
		delete(s.sessions, id)
	}
}
