package urlsync

import (
	"net/url"

	"github.com/matst80/slask-cars/pkg/state"
)

// Navigation is a client side location change. It never scrolls and pushes a
// new history entry instead of replacing the current one.
type Navigation struct {
	Path    string     `json:"path"`
	Query   url.Values `json:"-"`
	Scroll  bool       `json:"scroll"`
	Replace bool       `json:"replace"`
}

func (n Navigation) Location() string {
	if len(n.Query) == 0 {
		return n.Path
	}
	return n.Path + "?" + n.Query.Encode()
}

// Navigator is the router hosting the view.
type Navigator interface {
	Navigate(Navigation)
}

type NavigatorFunc func(Navigation)

func (f NavigatorFunc) Navigate(n Navigation) {
	f(n)
}

// Adapter keeps the query of one view in step with its store.
type Adapter struct {
	path   string
	query  url.Values
	labels Labels
	nav    Navigator
}

// Attach seeds the store from the current location and then writes every
// subsequent mutation back through nav.
func Attach(s *state.Store, location *url.URL, nav Navigator) *Adapter {
	query := location.Query()
	a := &Adapter{
		path:   location.Path,
		query:  query,
		labels: Seed(query, s),
		nav:    nav,
	}
	s.Subscribe(func(change state.Change) {
		snap := s.Snapshot()
		if change.FiltersChanged() {
			a.labels = LabelsFor(snap.Criteria)
		}
		next := Write(a.query, snap, change)
		if next.Encode() == a.query.Encode() {
			return
		}
		a.query = next
		if a.nav != nil {
			a.nav.Navigate(a.Navigation())
		}
	})
	return a
}

func (a *Adapter) Navigation() Navigation {
	return Navigation{Path: a.path, Query: cloneValues(a.query)}
}

func (a *Adapter) Location() string {
	return a.Navigation().Location()
}

func (a *Adapter) Labels() Labels {
	return a.labels
}
