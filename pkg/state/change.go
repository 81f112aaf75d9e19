package state

import (
	"slices"

	"github.com/matst80/slask-cars/pkg/types"
)

type Kind uint8

const (
	KindFilter Kind = iota + 1
	KindSort
	KindPageSize
	KindPage
	KindClear
	KindRestore
)

func (k Kind) String() string {
	switch k {
	case KindFilter:
		return "filter"
	case KindSort:
		return "sort"
	case KindPageSize:
		return "pageSize"
	case KindPage:
		return "page"
	case KindClear:
		return "clear"
	case KindRestore:
		return "restore"
	}
	return "unknown"
}

// Names of the scalar criteria fields. Set fields use SetField.String().
const (
	FieldRatings       = "ratings"
	FieldPriceRange    = "priceRange"
	FieldYear          = "year"
	FieldVat           = "vat"
	FieldMileageBounds = "mileageBounds"
)

// AllFields lists every criteria field name.
func AllFields() []string {
	ret := make([]string, 0, 16)
	for _, f := range types.SetFields() {
		ret = append(ret, f.String())
	}
	return append(ret, FieldRatings, FieldPriceRange, FieldYear, FieldVat, FieldMileageBounds)
}

// Change describes a single mutation of the store.
type Change struct {
	Kind   Kind     `json:"kind"`
	Fields []string `json:"fields,omitempty"`
}

// FiltersChanged reports whether the mutation altered the criteria.
func (c Change) FiltersChanged() bool {
	return c.Kind == KindFilter || c.Kind == KindClear
}

func (c Change) Touches(field string) bool {
	return slices.Contains(c.Fields, field)
}

type Listener func(Change)
