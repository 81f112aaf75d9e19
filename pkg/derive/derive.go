package derive

import (
	"time"

	"github.com/matst80/slask-cars/pkg/facet"
	"github.com/matst80/slask-cars/pkg/filter"
	"github.com/matst80/slask-cars/pkg/pagination"
	"github.com/matst80/slask-cars/pkg/sorting"
	"github.com/matst80/slask-cars/pkg/state"
	"github.com/matst80/slask-cars/pkg/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	noDerivations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slaskcars_derivations_total",
		Help: "The total number of derived listing views",
	})
	derivationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "slaskcars_derivation_seconds",
		Help:    "Time spent deriving a listing view",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
	})
)

type View struct {
	Facets   facet.Facets        `json:"facets"`
	Ranges   facet.Ranges        `json:"ranges"`
	Items    []types.Listing     `json:"items"`
	Matched  int                 `json:"matched"`
	Sort     types.SortKey       `json:"sort"`
	Criteria types.Criteria      `json:"criteria"`
	Window   pagination.Window   `json:"pagination"`
	Strategy pagination.Strategy `json:"-"`
}

// Derive computes the complete view for a snapshot from scratch. Facets and
// ranges come from raw, the items from the filtered and sorted page. When the
// page is served by a remote catalog it is already narrowed by the snapshot,
// so raw must be the unfiltered collection. A nil raw falls back to the page
// itself. A nil page derives an empty view.
func Derive(page *types.ListingPage, raw []types.Listing, snap state.Snapshot) View {
	start := time.Now()
	defer func() {
		noDerivations.Inc()
		derivationSeconds.Observe(time.Since(start).Seconds())
	}()

	if raw == nil {
		raw = page.Listings()
	}
	filtered := filter.Apply(page.Listings(), &snap.Criteria)
	sorted := sorting.Sort(filtered, snap.Sort)

	strategy := pagination.Select(page, len(sorted))
	pager := pagination.NewController(snap.ItemsPerPage)
	pager.Seek(snap.Page)
	pager.Observe(strategy)
	window := pager.Window()

	return View{
		Facets:   facet.Extract(raw),
		Ranges:   facet.ExtractRanges(raw),
		Items:    sorted[window.StartIndex:window.EndIndex],
		Matched:  len(sorted),
		Sort:     snap.Sort,
		Criteria: snap.Criteria,
		Window:   window,
		Strategy: strategy,
	}
}

// Refresh derives the current view of a store and lets its pagination observe
// the result, so navigation is bounded by what is actually shown.
func Refresh(s *state.Store, page *types.ListingPage, raw []types.Listing) View {
	if page.ServerPaginated() {
		s.Pagination().SetDefaultItemsPerPage(page.Limit)
	}
	view := Derive(page, raw, s.Snapshot())
	s.Pagination().Observe(view.Strategy)
	return view
}
