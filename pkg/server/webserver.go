package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/matst80/slask-cars/pkg/catalog"
	"github.com/matst80/slask-cars/pkg/common"
	"github.com/matst80/slask-cars/pkg/derive"
	"github.com/matst80/slask-cars/pkg/state"
	"github.com/matst80/slask-cars/pkg/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	noViewRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "slaskcars_view_requests_total",
		Help: "The total number of view requests by action",
	}, []string{"action"})
	listingCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slaskcars_listings",
		Help: "Number of listings in the current collection",
	})
	activeViews = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slaskcars_view_sessions",
		Help: "Number of live view sessions",
	})
)

type Options struct {
	// Source is the catalog. In remote mode every view asks it for the page
	// shown, otherwise it is only read by Reload.
	Source       catalog.Source
	Remote       bool
	PageSize     int
	ItemsPerPage int
	Path         string
	Sessions     *common.Sessions
	Tracking     types.Tracking
}

// App serves listing views. The raw collection is swapped atomically on
// reload and every view is derived from scratch.
type App struct {
	source       catalog.Source
	remote       bool
	pageSize     int
	itemsPerPage int
	path         string
	sessions     *common.Sessions
	tracking     types.Tracking
	listings     atomic.Pointer[types.ListingPage]
	views        *sessionRegistry
}

func NewApp(opts Options) *App {
	if opts.PageSize < 1 {
		opts.PageSize = 20
	}
	if opts.Path == "" {
		opts.Path = "/cars"
	}
	if opts.Sessions == nil {
		opts.Sessions = common.NewSessions("")
	}
	if opts.ItemsPerPage < 1 {
		opts.ItemsPerPage = opts.PageSize
	}
	return &App{
		source:       opts.Source,
		remote:       opts.Remote,
		pageSize:     opts.PageSize,
		itemsPerPage: opts.ItemsPerPage,
		path:         opts.Path,
		sessions:     opts.Sessions,
		tracking:     opts.Tracking,
		views:        newSessionRegistry(),
	}
}

func (a *App) SetListings(page *types.ListingPage) {
	a.listings.Store(page)
	listingCount.Set(float64(len(page.Listings())))
}

func (a *App) Listings() *types.ListingPage {
	return a.listings.Load()
}

// Reload replaces the collection with everything the catalog currently has.
func (a *App) Reload(ctx context.Context) error {
	if a.source == nil {
		return fmt.Errorf("no catalog source")
	}
	start := time.Now()
	page, err := catalog.Collect(ctx, a.source, a.pageSize)
	if err != nil {
		return fmt.Errorf("reload listings: %w", err)
	}
	a.SetListings(page)
	slog.Info("reloaded listings", "listings", len(page.Cars), "took", time.Since(start))
	return nil
}

// PruneSessions forgets views that have been idle for longer than maxIdle.
func (a *App) PruneSessions(maxIdle time.Duration) int {
	return a.views.prune(maxIdle)
}

// pageFor returns the raw data a snapshot is derived from.
func (a *App) pageFor(ctx context.Context, snap state.Snapshot) (*types.ListingPage, error) {
	if !a.remote {
		return a.Listings(), nil
	}
	page, err := a.source.Fetch(ctx, catalog.QueryFor(snap))
	if err != nil {
		return nil, common.NewHttpError(http.StatusBadGateway, err)
	}
	return page, nil
}

func (a *App) refresh(ctx context.Context, store *state.Store) (derive.View, error) {
	page, err := a.pageFor(ctx, store.Snapshot())
	if err != nil {
		return derive.View{}, err
	}
	return derive.Refresh(store, page, a.rawFor(page)), nil
}

// rawFor returns the unfiltered collection facets are built from. A remote
// page is already narrowed by the view, so facets come from the collection
// gathered on reload instead.
func (a *App) rawFor(page *types.ListingPage) []types.Listing {
	if !a.remote {
		return page.Listings()
	}
	all := a.Listings()
	if all == nil {
		return page.Listings()
	}
	if all.Cars == nil {
		return []types.Listing{}
	}
	return all.Cars
}

func (a *App) trackView(sessionId string, view derive.View) {
	if a.tracking == nil {
		return
	}
	criteria := view.Criteria
	go a.tracking.TrackView(sessionId, &criteria, view.Sort, view.Matched, view.Window.CurrentPage)
}

func (a *App) json(fn common.JsonHandlerFunc) http.HandlerFunc {
	return common.JsonHandler(a.sessions, a.tracking, fn)
}

func (a *App) mountedAt() *url.URL {
	return &url.URL{Path: a.path}
}

func (a *App) Handler() *http.ServeMux {
	srv := http.NewServeMux()
	srv.HandleFunc("OPTIONS /api/", common.RespondToOptions)
	srv.HandleFunc("GET /api/listings", a.json(a.GetListings))
	srv.HandleFunc("GET /api/facets", a.json(a.GetFacets))
	srv.HandleFunc("GET /api/ranges", a.json(a.GetRanges))
	srv.HandleFunc("GET /api/view", a.json(a.GetView))
	srv.HandleFunc("POST /api/view/seed", a.json(a.SeedView))
	srv.HandleFunc("POST /api/view/{action}", a.json(a.UpdateView))
	return srv
}
