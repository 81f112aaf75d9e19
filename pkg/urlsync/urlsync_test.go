package urlsync

import (
	"net/url"
	"testing"

	"github.com/matst80/slask-cars/pkg/pagination"
	"github.com/matst80/slask-cars/pkg/state"
	"github.com/matst80/slask-cars/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustQuery(t *testing.T, raw string) url.Values {
	t.Helper()
	q, err := url.ParseQuery(raw)
	require.NoError(t, err)
	return q
}

func whitelisted(q url.Values) url.Values {
	ret := url.Values{}
	for _, key := range Whitelist {
		if v, ok := q[key]; ok {
			ret[key] = v
		}
	}
	return ret
}

func TestSeedBrandAndMinPrice(t *testing.T) {
	s := state.NewStore(10)
	labels := Seed(mustQuery(t, "brand=Audi&minPrice=10000"), s)

	c := s.Snapshot().Criteria
	assert.Equal(t, types.ValueSet{"Audi"}, c.Brands)
	assert.Equal(t, 10000.0, c.PriceRange.Min)
	assert.Equal(t, types.DefaultPriceRange.Max, c.PriceRange.Max)
	assert.Equal(t, "Min 10000 €", labels.Price)
	assert.Equal(t, MileagePlaceholder, labels.Mileage)
}

func TestSeedAbsentAndMalformed(t *testing.T) {
	s := state.NewStore(10)
	Seed(mustQuery(t, "year=soon&minMileage=abc&maxMileage=50000&page=-2&q=golf"), s)

	snap := s.Snapshot()
	assert.Equal(t, 0, snap.Criteria.Year)
	assert.Nil(t, snap.Criteria.MileageBounds.Min)
	require.NotNil(t, snap.Criteria.MileageBounds.Max)
	assert.Equal(t, 50000.0, *snap.Criteria.MileageBounds.Max)
	assert.Equal(t, types.DefaultPriceRange, snap.Criteria.PriceRange)
	assert.Equal(t, 1, snap.Page)

	assert.Equal(t, "Max 50000 km", LabelsFor(snap.Criteria).Mileage)
}

func TestSeedEmptyQueryKeepsDefaults(t *testing.T) {
	s := state.NewStore(10)
	labels := Seed(url.Values{}, s)
	assert.True(t, s.Snapshot().Criteria.IsDefault())
	assert.Equal(t, Labels{Mileage: MileagePlaceholder, Price: PricePlaceholder}, labels)
}

func TestLabels(t *testing.T) {
	c := types.DefaultCriteria()
	c.MileageBounds = types.Between(10000, 50000)
	c.PriceRange = types.Range{Min: 10000, Max: 30000}
	assert.Equal(t, Labels{Mileage: "10000 - 50000 km", Price: "10000 - 30000 €"}, LabelsFor(c))

	c.MileageBounds = types.AtLeast(10000)
	c.PriceRange = types.Range{Min: 0, Max: 300}
	assert.Equal(t, Labels{Mileage: "Min 10000 km", Price: "Max 300 €"}, LabelsFor(c))
}

func TestRoundTrip(t *testing.T) {
	raw := "brand=Audi&brand=BMW&model=A4&year=2020&vat=true&minMileage=10000&maxMileage=50000&minPrice=100&maxPrice=300&page=3&utm_source=mail"
	q := mustQuery(t, raw)
	s := state.NewStore(10)
	Seed(q, s)

	assert.Equal(t, q, Encode(q, s.Snapshot()))
	assert.Equal(t, whitelisted(q), Encode(url.Values{}, s.Snapshot()))
}

func TestAdapterLocationRoundTrips(t *testing.T) {
	s := state.NewStore(10)
	location, err := url.Parse("/cars?utm_source=mail")
	require.NoError(t, err)
	a := Attach(s, location, nil)
	s.SetYear(2020)

	written, err := url.Parse(a.Location())
	require.NoError(t, err)
	q := written.Query()
	require.Equal(t, "1", q.Get(ParamPage))

	seeded := state.NewStore(10)
	Seed(q, seeded)
	assert.Equal(t, q, Encode(q, seeded.Snapshot()))
}

func TestEncodeKeepsExplicitDefaults(t *testing.T) {
	q := mustQuery(t, "vat=false&minPrice=0&maxPrice=500&page=1&brand=Audi")
	s := state.NewStore(10)
	Seed(q, s)

	assert.Equal(t, q, Encode(q, s.Snapshot()))
	assert.Equal(t, url.Values{ParamBrand: {"Audi"}}, Encode(url.Values{}, s.Snapshot()))
}

func TestWriteOnFilterChange(t *testing.T) {
	q := mustQuery(t, "brand=Audi&page=4&utm_source=mail")
	s := state.NewStore(10)
	Seed(q, s)

	var written url.Values
	s.Subscribe(func(c state.Change) { written = Write(q, s.Snapshot(), c) })

	s.ToggleValue(types.FieldBrands, "BMW")
	assert.Equal(t, []string{"Audi", "BMW"}, written[ParamBrand])
	assert.Equal(t, "1", written.Get(ParamPage))
	assert.Equal(t, "mail", written.Get("utm_source"))
	assert.Equal(t, "4", q.Get(ParamPage), "input query is not mutated")

	s.SetVatOnly(true)
	assert.Equal(t, "true", written.Get(ParamVat))
	assert.Equal(t, []string{"Audi"}, written[ParamBrand], "only fields in the change are rewritten")
}

func TestWriteRemovesClearedFields(t *testing.T) {
	q := mustQuery(t, "brand=Audi&vat=true&minPrice=100&maxMileage=9000&page=2&lang=de")
	s := state.NewStore(10)
	Seed(q, s)

	var written url.Values
	s.Subscribe(func(c state.Change) { written = Write(q, s.Snapshot(), c) })
	s.ClearAll()

	assert.Equal(t, url.Values{"page": {"1"}, "lang": {"de"}}, written)
}

func TestWriteIgnoresNonWhitelistedFilters(t *testing.T) {
	q := mustQuery(t, "brand=Audi&page=3")
	s := state.NewStore(10)
	var written url.Values
	s.Subscribe(func(c state.Change) { written = Write(q, s.Snapshot(), c) })

	s.ToggleValue(types.FieldFuelType, "Diesel")
	assert.Equal(t, url.Values{"brand": {"Audi"}, "page": {"1"}}, written)

	s.SetSortCriteria(types.SortByPrice)
	assert.Equal(t, q, written)
}

func TestAdapterNavigates(t *testing.T) {
	location, err := url.Parse("/cars?brand=Audi&utm_source=mail")
	require.NoError(t, err)

	s := state.NewStore(10)
	s.Pagination().Observe(pagination.LocalCount{Items: 50})
	var navigations []Navigation
	a := Attach(s, location, NavigatorFunc(func(n Navigation) { navigations = append(navigations, n) }))
	assert.Equal(t, types.ValueSet{"Audi"}, s.Snapshot().Criteria.Brands)

	s.SetPriceRange(0, 300)
	require.Len(t, navigations, 1)
	nav := navigations[0]
	assert.False(t, nav.Scroll)
	assert.False(t, nav.Replace)
	assert.Equal(t, "/cars?brand=Audi&maxPrice=300&page=1&utm_source=mail", nav.Location())
	assert.Equal(t, "Max 300 €", a.Labels().Price)

	s.NextPage()
	assert.Equal(t, "/cars?brand=Audi&maxPrice=300&page=2&utm_source=mail", a.Location())

	s.SetSortCriteria(types.SortByRating)
	assert.Len(t, navigations, 2, "sorting is not mirrored")
}
