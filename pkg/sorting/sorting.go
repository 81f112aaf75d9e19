package sorting

import (
	"slices"

	"github.com/matst80/slask-cars/pkg/types"
	"golang.org/x/text/language"
)

type Sorting struct {
	sorters map[types.SortKey]Sorter
}

func NewSorting(tag language.Tag) *Sorting {
	s := &Sorting{sorters: make(map[types.SortKey]Sorter)}
	s.Register(NewNameSorter(tag))
	s.Register(NewBaseSorter(types.SortByPrice, func(car *types.Listing) float64 {
		return car.Price
	}, false))
	s.Register(NewBaseSorter(types.SortByRating, func(car *types.Listing) float64 {
		return car.Rating
	}, true))
	return s
}

func (s *Sorting) Register(sorter Sorter) {
	s.sorters[sorter.Name()] = sorter
}

// Sort returns a sorted copy, ties keep their input order. Unknown keys sort
// by name.
func (s *Sorting) Sort(cars []types.Listing, key types.SortKey) []types.Listing {
	ret := slices.Clone(cars)
	if ret == nil {
		ret = []types.Listing{}
	}
	sorter, ok := s.sorters[key]
	if !ok {
		sorter = s.sorters[types.SortByName]
	}
	sorter.Sort(ret)
	return ret
}

var defaultSorting = NewSorting(language.English)

func Sort(cars []types.Listing, key types.SortKey) []types.Listing {
	return defaultSorting.Sort(cars, key)
}
