package server

import (
	"net/url"
	"sync"
	"time"

	"github.com/matst80/slask-cars/pkg/state"
	"github.com/matst80/slask-cars/pkg/urlsync"
)

// viewSession is the listing view of one visitor. The store is not safe for
// concurrent use, every access holds mu.
type viewSession struct {
	mu         sync.Mutex
	store      *state.Store
	adapter    *urlsync.Adapter
	navigation *urlsync.Navigation
	observed   bool
	lastSeen   time.Time
}

func newViewSession(perPage int, location *url.URL, now time.Time) *viewSession {
	s := &viewSession{
		store:    state.NewStore(perPage),
		lastSeen: now,
	}
	s.adapter = urlsync.Attach(s.store, location, urlsync.NavigatorFunc(func(n urlsync.Navigation) {
		s.navigation = &n
	}))
	return s
}

// takeNavigation returns the navigation requested since the last call.
func (s *viewSession) takeNavigation() *urlsync.Navigation {
	n := s.navigation
	s.navigation = nil
	return n
}

type sessionRegistry struct {
	mu    sync.Mutex
	views map[string]*viewSession
	now   func() time.Time
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{
		views: make(map[string]*viewSession),
		now:   time.Now,
	}
}

// get returns the view of sessionId, creating it on first use.
func (r *sessionRegistry) get(sessionId string, create func() *viewSession) *viewSession {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.views[sessionId]
	if !ok {
		v = create()
		r.views[sessionId] = v
		activeViews.Set(float64(len(r.views)))
	}
	v.lastSeen = r.now()
	return v
}

func (r *sessionRegistry) replace(sessionId string, v *viewSession) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v.lastSeen = r.now()
	r.views[sessionId] = v
	activeViews.Set(float64(len(r.views)))
}

// prune drops views idle for longer than maxIdle and returns how many.
func (r *sessionRegistry) prune(maxIdle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := r.now().Add(-maxIdle)
	removed := 0
	for id, v := range r.views {
		if v.lastSeen.Before(cutoff) {
			delete(r.views, id)
			removed++
		}
	}
	activeViews.Set(float64(len(r.views)))
	return removed
}

func (r *sessionRegistry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}
