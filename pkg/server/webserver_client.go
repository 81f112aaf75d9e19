package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/matst80/slask-cars/pkg/common"
	"github.com/matst80/slask-cars/pkg/common/jsoncompat"
	"github.com/matst80/slask-cars/pkg/derive"
	"github.com/matst80/slask-cars/pkg/facet"
	"github.com/matst80/slask-cars/pkg/state"
	"github.com/matst80/slask-cars/pkg/types"
	"github.com/matst80/slask-cars/pkg/urlsync"
)

type viewAction func(r *http.Request, store *state.Store) error

var viewActions = map[string]viewAction{
	"toggle": func(r *http.Request, store *state.Store) error {
		req := toggleRequest{}
		if err := decodeBody(r, &req); err != nil {
			return common.BadRequest(err)
		}
		field, ok := types.ParseSetField(req.Field)
		if !ok {
			return common.BadRequest(fmt.Errorf("unknown filter field %q", req.Field))
		}
		value := strings.TrimSpace(req.Value)
		if value == "" {
			return common.BadRequest(errors.New("missing filter value"))
		}
		store.ToggleValue(field, value)
		return nil
	},
	"rating": func(r *http.Request, store *state.Store) error {
		req := ratingRequest{}
		if err := decodeBody(r, &req); err != nil {
			return common.BadRequest(err)
		}
		store.ToggleRating(req.Value)
		return nil
	},
	"price": func(r *http.Request, store *state.Store) error {
		req := priceRequest{}
		if err := decodeBody(r, &req); err != nil {
			return common.BadRequest(err)
		}
		if req.Min > req.Max {
			return common.BadRequest(fmt.Errorf("price range %v-%v is empty", req.Min, req.Max))
		}
		store.SetPriceRange(req.Min, req.Max)
		return nil
	},
	"year": func(r *http.Request, store *state.Store) error {
		req := yearRequest{}
		if err := decodeBody(r, &req); err != nil {
			return common.BadRequest(err)
		}
		store.SetYear(req.Year)
		return nil
	},
	"vat": func(r *http.Request, store *state.Store) error {
		req := vatRequest{}
		if err := decodeBody(r, &req); err != nil {
			return common.BadRequest(err)
		}
		store.SetVatOnly(req.Enabled)
		return nil
	},
	"mileage": func(r *http.Request, store *state.Store) error {
		req := mileageRequest{}
		if err := decodeBody(r, &req); err != nil {
			return common.BadRequest(err)
		}
		if req.Min != nil && req.Max != nil && *req.Min > *req.Max {
			return common.BadRequest(fmt.Errorf("mileage range %v-%v is empty", *req.Min, *req.Max))
		}
		store.SetMileageBounds(types.Bounds{Min: req.Min, Max: req.Max})
		return nil
	},
	"sort": func(r *http.Request, store *state.Store) error {
		req := sortRequest{}
		if err := decodeBody(r, &req); err != nil {
			return common.BadRequest(err)
		}
		store.SetSortCriteria(types.ParseSortKey(req.Key))
		return nil
	},
	"size": func(r *http.Request, store *state.Store) error {
		req := sizeRequest{}
		if err := decodeBody(r, &req); err != nil {
			return common.BadRequest(err)
		}
		if !store.SetItemsPerPage(req.Size) {
			return common.BadRequest(fmt.Errorf("invalid page size %d", req.Size))
		}
		return nil
	},
	"clear": func(_ *http.Request, store *state.Store) error {
		store.ClearAll()
		return nil
	},
	"page": func(r *http.Request, store *state.Store) error {
		req := pageRequest{}
		if err := decodeBody(r, &req); err != nil {
			return common.BadRequest(err)
		}
		store.GoToPage(req.Page)
		return nil
	},
	"next": func(_ *http.Request, store *state.Store) error {
		store.NextPage()
		return nil
	},
	"previous": func(_ *http.Request, store *state.Store) error {
		store.PreviousPage()
		return nil
	},
}

func (a *App) session(sessionId string) *viewSession {
	return a.views.get(sessionId, func() *viewSession {
		return newViewSession(a.itemsPerPage, a.mountedAt(), a.views.now())
	})
}

func (a *App) respond(enc jsoncompat.Encoder, sessionId string, v *viewSession, view derive.View) error {
	a.trackView(sessionId, view)
	return enc.Encode(ViewResponse{
		View:       view,
		Location:   v.adapter.Location(),
		Labels:     v.adapter.Labels(),
		Navigation: v.takeNavigation(),
	})
}

// observe makes sure navigation of a fresh view is bounded by real data.
func (a *App) observe(ctx context.Context, v *viewSession) error {
	if v.observed {
		return nil
	}
	if _, err := a.refresh(ctx, v.store); err != nil {
		return err
	}
	v.observed = true
	return nil
}

func (a *App) GetView(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	noViewRequests.WithLabelValues("view").Inc()
	v := a.session(sessionId)
	v.mu.Lock()
	defer v.mu.Unlock()

	view, err := a.refresh(r.Context(), v.store)
	if err != nil {
		return err
	}
	v.observed = true
	return a.respond(enc, sessionId, v, view)
}

// SeedView mounts a new view at the location in the request body, replacing
// the current view of the session.
func (a *App) SeedView(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	noViewRequests.WithLabelValues("seed").Inc()
	location, err := locationFromBody(r, a.path)
	if err != nil {
		return common.BadRequest(err)
	}
	v := newViewSession(a.itemsPerPage, location, a.views.now())
	a.views.replace(sessionId, v)
	v.mu.Lock()
	defer v.mu.Unlock()

	view, err := a.refresh(r.Context(), v.store)
	if err != nil {
		return err
	}
	v.observed = true
	return a.respond(enc, sessionId, v, view)
}

func (a *App) UpdateView(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	name := r.PathValue("action")
	action, ok := viewActions[name]
	if !ok {
		return common.NewHttpError(http.StatusNotFound, fmt.Errorf("unknown view action %q", name))
	}
	noViewRequests.WithLabelValues(name).Inc()

	v := a.session(sessionId)
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := a.observe(r.Context(), v); err != nil {
		return err
	}
	if err := action(r, v.store); err != nil {
		return err
	}
	view, err := a.refresh(r.Context(), v.store)
	if err != nil {
		return err
	}
	return a.respond(enc, sessionId, v, view)
}

// GetListings derives a view for the query alone, without touching the
// session. sort and size are read next to the filter parameters.
func (a *App) GetListings(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	noViewRequests.WithLabelValues("listings").Inc()
	query := r.URL.Query()
	req, err := ViewRequestFromQuery(query)
	if err != nil {
		return common.BadRequest(err)
	}
	store := state.NewStore(a.itemsPerPage)
	if req.Size != 0 && !store.SetItemsPerPage(req.Size) {
		return common.BadRequest(fmt.Errorf("invalid page size %d", req.Size))
	}
	store.SetSortCriteria(types.ParseSortKey(req.Sort))
	labels := urlsync.Seed(query, store)

	view, err := a.refresh(r.Context(), store)
	if err != nil {
		return err
	}
	location := urlsync.Navigation{Path: a.path, Query: urlsync.Encode(query, store.Snapshot())}
	a.trackView(sessionId, view)
	return enc.Encode(ViewResponse{
		View:     view,
		Location: location.Location(),
		Labels:   labels,
	})
}

func (a *App) GetFacets(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	noViewRequests.WithLabelValues("facets").Inc()
	w.Header().Set("Cache-Control", "public, stale-while-revalidate=120")
	return enc.Encode(facet.Extract(a.Listings().Listings()))
}

func (a *App) GetRanges(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	noViewRequests.WithLabelValues("ranges").Inc()
	w.Header().Set("Cache-Control", "public, stale-while-revalidate=120")
	return enc.Encode(facet.ExtractRanges(a.Listings().Listings()))
}
