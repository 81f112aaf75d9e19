package sorting

import (
	"testing"

	"github.com/matst80/slask-cars/pkg/types"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func names(cars []types.Listing) []string {
	ret := make([]string, len(cars))
	for i, c := range cars {
		ret[i] = c.Name
	}
	return ret
}

func TestSortByPriceThenRating(t *testing.T) {
	cars := []types.Listing{
		{Id: "a", Name: "a", Price: 300, Rating: 3},
		{Id: "b", Name: "b", Price: 100, Rating: 5},
		{Id: "c", Name: "c", Price: 200, Rating: 4},
	}
	byPrice := Sort(cars, types.SortByPrice)
	assert.Equal(t, []string{"b", "c", "a"}, names(byPrice))

	byRating := Sort(byPrice, types.SortByRating)
	assert.Equal(t, []string{"b", "c", "a"}, names(byRating))
	assert.Equal(t, []string{"a", "b", "c"}, names(cars), "input is not reordered")
}

func TestSortIsStable(t *testing.T) {
	cars := []types.Listing{
		{Id: "1", Name: "first", Price: 100},
		{Id: "2", Name: "second", Price: 50},
		{Id: "3", Name: "third", Price: 100},
		{Id: "4", Name: "fourth", Price: 50},
	}
	once := Sort(cars, types.SortByPrice)
	assert.Equal(t, []string{"second", "fourth", "first", "third"}, names(once))
	assert.Equal(t, once, Sort(once, types.SortByPrice))
}

func TestSortByNameCollates(t *testing.T) {
	cars := []types.Listing{
		{Name: "volvo"},
		{Name: "Audi"},
		{Name: "Škoda"},
		{Name: "bmw"},
	}
	assert.Equal(t, []string{"Audi", "bmw", "Škoda", "volvo"}, names(Sort(cars, types.SortByName)))
}

func TestUnknownKeySortsByName(t *testing.T) {
	s := NewSorting(language.German)
	cars := []types.Listing{{Name: "b"}, {Name: "a"}}
	assert.Equal(t, []string{"a", "b"}, names(s.Sort(cars, types.SortKey("popular"))))
	assert.NotNil(t, s.Sort(nil, types.SortByPrice))
}
