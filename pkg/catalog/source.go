package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/matst80/slask-cars/pkg/state"
	"github.com/matst80/slask-cars/pkg/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ErrNotFound = errors.New("catalog: not found")

var (
	noFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "slaskcars_catalog_fetches_total",
		Help: "The total number of catalog fetches by source and result",
	}, []string{"source", "result"})
	fetchSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "slaskcars_catalog_fetch_seconds",
		Help: "Time spent fetching listings from a catalog source",
	}, []string{"source"})
)

// Source supplies raw listings. A zero Limit asks for the whole collection.
type Source interface {
	Fetch(ctx context.Context, q Query) (*types.ListingPage, error)
}

type Query struct {
	Page       int
	Limit      int
	Brands     []string
	Models     []string
	Year       int
	VatOnly    bool
	MinPrice   *float64
	MaxPrice   *float64
	MinMileage *float64
	MaxMileage *float64
}

// QueryFor restricts a backend query to the criteria a backend understands.
// Everything else is filtered while deriving the view.
func QueryFor(snap state.Snapshot) Query {
	c := snap.Criteria
	q := Query{
		Page:       max(snap.Page, 1),
		Limit:      snap.ItemsPerPage,
		Brands:     c.Brands,
		Models:     c.Models,
		Year:       c.Year,
		VatOnly:    c.VatOnly,
		MinMileage: c.MileageBounds.Min,
		MaxMileage: c.MileageBounds.Max,
	}
	if c.PriceRange.Min != types.DefaultPriceRange.Min {
		lo := c.PriceRange.Min
		q.MinPrice = &lo
	}
	if c.PriceRange.Max != types.DefaultPriceRange.Max {
		hi := c.PriceRange.Max
		q.MaxPrice = &hi
	}
	return q
}

// Values encodes the query with the parameter names of the catalog API.
func (q Query) Values() url.Values {
	v := url.Values{}
	for _, b := range q.Brands {
		v.Add("brand", b)
	}
	for _, m := range q.Models {
		v.Add("model", m)
	}
	if q.Year > 0 {
		v.Set("min_year", strconv.Itoa(q.Year))
		v.Set("max_year", strconv.Itoa(q.Year))
	}
	if q.VatOnly {
		v.Set("vat", "true")
	}
	setFloat(v, "min_price", q.MinPrice)
	setFloat(v, "max_price", q.MaxPrice)
	setFloat(v, "min_mileage", q.MinMileage)
	setFloat(v, "max_mileage", q.MaxMileage)
	if q.Limit > 0 {
		v.Set("page", strconv.Itoa(max(q.Page, 1)))
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

func (q Query) Key() string {
	return "listings:" + q.Values().Encode()
}

func setFloat(v url.Values, key string, f *float64) {
	if f != nil {
		v.Set(key, strconv.FormatFloat(*f, 'f', -1, 64))
	}
}

// Instrumented records fetch counts and latency of a source under name.
type Instrumented struct {
	Name   string
	Source Source
}

func (s *Instrumented) Fetch(ctx context.Context, q Query) (*types.ListingPage, error) {
	start := time.Now()
	page, err := s.Source.Fetch(ctx, q)
	fetchSeconds.WithLabelValues(s.Name).Observe(time.Since(start).Seconds())
	result := "ok"
	if err != nil {
		result = "error"
	}
	noFetches.WithLabelValues(s.Name, result).Inc()
	return page, err
}

const maxCollectPages = 10000

// Collect walks every page of a paginated source and returns the complete
// collection as one local page.
func Collect(ctx context.Context, src Source, pageSize int) (*types.ListingPage, error) {
	first, err := src.Fetch(ctx, Query{Page: 1, Limit: pageSize})
	if err != nil {
		return nil, err
	}
	if !first.ServerPaginated() {
		return types.NewLocalPage(first.Listings()), nil
	}
	pages := first.Pages
	if pages <= 0 {
		pages = (first.Total + first.Limit - 1) / first.Limit
	}
	cars := append([]types.Listing{}, first.Cars...)
	for p := 2; p <= min(pages, maxCollectPages); p++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next, err := src.Fetch(ctx, Query{Page: p, Limit: first.Limit})
		if err != nil {
			return nil, fmt.Errorf("collect page %d: %w", p, err)
		}
		if len(next.Listings()) == 0 {
			break
		}
		cars = append(cars, next.Cars...)
	}
	return types.NewLocalPage(cars), nil
}
