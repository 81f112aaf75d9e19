package sorting

import (
	"cmp"
	"slices"

	"github.com/matst80/slask-cars/pkg/types"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type Sorter interface {
	Name() types.SortKey
	Sort(cars []types.Listing)
}

type BaseSorter struct {
	name       types.SortKey
	fn         func(car *types.Listing) float64
	isReversed bool
}

func NewBaseSorter(name types.SortKey, fn func(car *types.Listing) float64, isReversed bool) Sorter {
	return &BaseSorter{
		name:       name,
		fn:         fn,
		isReversed: isReversed,
	}
}

func (s *BaseSorter) Name() types.SortKey {
	return s.name
}

func (s *BaseSorter) Sort(cars []types.Listing) {
	slices.SortStableFunc(cars, func(a, b types.Listing) int {
		if s.isReversed {
			return cmp.Compare(s.fn(&b), s.fn(&a))
		}
		return cmp.Compare(s.fn(&a), s.fn(&b))
	})
}

// NameSorter orders by display name using the collation rules of a language.
type NameSorter struct {
	tag language.Tag
}

func NewNameSorter(tag language.Tag) Sorter {
	return &NameSorter{tag: tag}
}

func (s *NameSorter) Name() types.SortKey {
	return types.SortByName
}

func (s *NameSorter) Sort(cars []types.Listing) {
	// a collator keeps scratch buffers, one per call
	c := collate.New(s.tag, collate.IgnoreCase)
	slices.SortStableFunc(cars, func(a, b types.Listing) int {
		return c.CompareString(a.Name, b.Name)
	})
}
