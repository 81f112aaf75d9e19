package state

import (
	"testing"

	"github.com/matst80/slask-cars/pkg/pagination"
	"github.com/matst80/slask-cars/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storeOnPage(t *testing.T, page int) *Store {
	t.Helper()
	s := NewStore(10)
	s.Pagination().Observe(pagination.LocalCount{Items: 100})
	require.True(t, s.GoToPage(page))
	return s
}

func TestFilterMutationsResetPage(t *testing.T) {
	mutations := map[string]func(s *Store){
		"toggle":   func(s *Store) { s.ToggleValue(types.FieldBrands, "BMW") },
		"rating":   func(s *Store) { s.ToggleRating(4) },
		"price":    func(s *Store) { s.SetPriceRange(100, 300) },
		"year":     func(s *Store) { s.SetYear(2020) },
		"vat":      func(s *Store) { s.SetVatOnly(true) },
		"mileage":  func(s *Store) { s.SetMileageBounds(types.AtMost(50000)) },
		"pageSize": func(s *Store) { s.SetItemsPerPage(25) },
		"clear":    func(s *Store) { s.ClearAll() },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			s := storeOnPage(t, 4)
			var seen []int
			s.Subscribe(func(Change) { seen = append(seen, s.Pagination().CurrentPage()) })
			mutate(s)
			assert.Equal(t, 1, s.Snapshot().Page)
			assert.Equal(t, []int{1}, seen, "listeners observe the reset page")
		})
	}
}

func TestSortKeepsPageAndFilters(t *testing.T) {
	s := storeOnPage(t, 3)
	s.ToggleValue(types.FieldFuelType, "Diesel")
	s.GoToPage(3)

	var changes []Change
	s.Subscribe(func(c Change) { changes = append(changes, c) })
	s.SetSortCriteria(types.SortByPrice)

	snap := s.Snapshot()
	assert.Equal(t, 3, snap.Page)
	assert.Equal(t, types.SortByPrice, snap.Sort)
	assert.Equal(t, types.ValueSet{"Diesel"}, snap.Criteria.FuelType)
	require.Len(t, changes, 1)
	assert.False(t, changes[0].FiltersChanged())

	s.SetSortCriteria(types.SortKey("bogus"))
	assert.Equal(t, types.SortByName, s.Snapshot().Sort)
}

func TestToggleValue(t *testing.T) {
	s := NewStore(10)
	var changes []Change
	s.Subscribe(func(c Change) { changes = append(changes, c) })

	s.ToggleValue(types.FieldBrands, "BMW")
	s.ToggleValue(types.FieldBrands, "Audi")
	s.ToggleValue(types.FieldBrands, "BMW")

	assert.Equal(t, types.ValueSet{"Audi"}, s.Snapshot().Criteria.Brands)
	require.Len(t, changes, 3)
	assert.True(t, changes[0].Touches("brand"))
	assert.True(t, changes[0].FiltersChanged())

	assert.Panics(t, func() { s.ToggleValue(types.SetField(42), "x") })
}

func TestToggleRating(t *testing.T) {
	s := NewStore(10)
	s.ToggleRating(4)
	s.ToggleRating(5)
	s.ToggleRating(4)
	assert.Equal(t, []float64{5}, s.Snapshot().Criteria.Ratings)
}

func TestClearAll(t *testing.T) {
	s := NewStore(10)
	s.Pagination().SetDefaultItemsPerPage(20)
	s.ToggleValue(types.FieldNames, "Golf")
	s.SetPriceRange(10, 20)
	s.SetVatOnly(true)
	s.SetSortCriteria(types.SortByRating)
	s.SetItemsPerPage(50)

	s.ClearAll()
	snap := s.Snapshot()
	assert.True(t, snap.Criteria.IsDefault())
	assert.Equal(t, types.SortByName, snap.Sort)
	assert.Equal(t, 20, snap.ItemsPerPage)
	assert.Equal(t, 1, snap.Page)
}

func TestNavigationNotifiesOnlyWhenMoved(t *testing.T) {
	s := NewStore(10)
	s.Pagination().Observe(pagination.LocalCount{Items: 25})
	var kinds []Kind
	s.Subscribe(func(c Change) { kinds = append(kinds, c.Kind) })

	assert.False(t, s.GoToPage(4))
	assert.True(t, s.NextPage())
	assert.True(t, s.PreviousPage())
	assert.False(t, s.PreviousPage())
	assert.Equal(t, []Kind{KindPage, KindPage}, kinds)
}

func TestSnapshotIsIndependent(t *testing.T) {
	s := NewStore(10)
	s.ToggleValue(types.FieldLocations, "Berlin")
	snap := s.Snapshot()
	snap.Criteria.Locations[0] = "Paris"
	assert.Equal(t, types.ValueSet{"Berlin"}, s.Snapshot().Criteria.Locations)
}

func TestRestore(t *testing.T) {
	s := NewStore(10)
	c := types.DefaultCriteria()
	c.Brands = types.ValueSet{"Audi"}
	s.Restore(c, 3)
	c.Brands[0] = "BMW"

	snap := s.Snapshot()
	assert.Equal(t, types.ValueSet{"Audi"}, snap.Criteria.Brands)
	assert.Equal(t, 3, snap.Page)
}
