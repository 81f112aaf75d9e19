package state

import (
	"slices"

	"github.com/matst80/slask-cars/pkg/pagination"
	"github.com/matst80/slask-cars/pkg/types"
)

// Store is the single source of truth for one listing view: filter criteria,
// sort key and pagination. It is not safe for concurrent use.
type Store struct {
	criteria  types.Criteria
	sort      types.SortKey
	pager     *pagination.Controller
	listeners []Listener
}

type Snapshot struct {
	Criteria     types.Criteria `json:"criteria"`
	Sort         types.SortKey  `json:"sort"`
	Page         int            `json:"page"`
	ItemsPerPage int            `json:"itemsPerPage"`
}

func NewStore(defaultPerPage int) *Store {
	return &Store{
		criteria: types.DefaultCriteria(),
		sort:     types.SortByName,
		pager:    pagination.NewController(defaultPerPage),
	}
}

func (s *Store) Subscribe(l Listener) {
	s.listeners = append(s.listeners, l)
}

func (s *Store) Pagination() *pagination.Controller {
	return s.pager
}

func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Criteria:     s.criteria.Clone(),
		Sort:         s.sort,
		Page:         s.pager.CurrentPage(),
		ItemsPerPage: s.pager.ItemsPerPage(),
	}
}

func (s *Store) notify(c Change) {
	for _, l := range s.listeners {
		l(c)
	}
}

// filterChanged resets the page before anyone observes the new criteria.
func (s *Store) filterChanged(fields ...string) {
	s.pager.Reset()
	s.notify(Change{Kind: KindFilter, Fields: fields})
}

// ToggleValue adds value to the selection of field or removes it when already
// selected. field must be one of the SetField constants.
func (s *Store) ToggleValue(field types.SetField, value string) {
	set := s.criteria.Set(field)
	*set = set.Toggle(value)
	s.filterChanged(field.String())
}

func (s *Store) ToggleRating(value float64) {
	if i := slices.Index(s.criteria.Ratings, value); i >= 0 {
		s.criteria.Ratings = slices.Delete(slices.Clone(s.criteria.Ratings), i, i+1)
	} else {
		s.criteria.Ratings = append(slices.Clip(s.criteria.Ratings), value)
	}
	s.filterChanged(FieldRatings)
}

// SetPriceRange replaces the interval as given, min <= max is up to the caller.
func (s *Store) SetPriceRange(min, max float64) {
	s.criteria.PriceRange = types.Range{Min: min, Max: max}
	s.filterChanged(FieldPriceRange)
}

// SetYear restricts to one model year, 0 lifts the restriction.
func (s *Store) SetYear(year int) {
	s.criteria.Year = max(year, 0)
	s.filterChanged(FieldYear)
}

func (s *Store) SetVatOnly(enabled bool) {
	s.criteria.VatOnly = enabled
	s.filterChanged(FieldVat)
}

func (s *Store) SetMileageBounds(b types.Bounds) {
	s.criteria.MileageBounds = b
	s.filterChanged(FieldMileageBounds)
}

// SetSortCriteria changes the order only, filters and page are kept.
func (s *Store) SetSortCriteria(key types.SortKey) {
	if !key.Valid() {
		key = types.SortByName
	}
	s.sort = key
	s.notify(Change{Kind: KindSort})
}

func (s *Store) SetItemsPerPage(n int) bool {
	if !s.pager.SetItemsPerPage(n) {
		return false
	}
	s.notify(Change{Kind: KindPageSize})
	return true
}

// ClearAll restores default criteria, name order, the default page size and
// the first page.
func (s *Store) ClearAll() {
	s.criteria = types.DefaultCriteria()
	s.sort = types.SortByName
	s.pager.ResetItemsPerPage()
	s.notify(Change{Kind: KindClear, Fields: AllFields()})
}

// Restore replaces the criteria wholesale, as when a view is seeded from a
// shared link. The page is taken as given.
func (s *Store) Restore(c types.Criteria, page int) {
	s.criteria = c.Clone()
	s.pager.Reset()
	s.pager.Seek(page)
	s.notify(Change{Kind: KindRestore, Fields: AllFields()})
}

func (s *Store) GoToPage(n int) bool {
	return s.moved(s.pager.GoToPage(n))
}

func (s *Store) NextPage() bool {
	return s.moved(s.pager.NextPage())
}

func (s *Store) PreviousPage() bool {
	return s.moved(s.pager.PreviousPage())
}

func (s *Store) moved(ok bool) bool {
	if ok {
		s.notify(Change{Kind: KindPage})
	}
	return ok
}
