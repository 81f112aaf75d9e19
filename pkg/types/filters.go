package types

import (
	"fmt"
	"slices"
)

// ValueSet is an ordered, duplicate free selection of tag values. The empty set
// places no restriction on a listing.
type ValueSet []string

func (s ValueSet) Contains(value string) bool {
	return slices.Contains(s, value)
}

// Matches reports whether value passes the set: any value passes an empty set.
func (s ValueSet) Matches(value string) bool {
	return len(s) == 0 || s.Contains(value)
}

// Toggle returns a new set with value added when absent or removed when present.
func (s ValueSet) Toggle(value string) ValueSet {
	if i := slices.Index(s, value); i >= 0 {
		return slices.Delete(slices.Clone(s), i, i+1)
	}
	return append(slices.Clip(s), value)
}

func (s ValueSet) Clone() ValueSet {
	if s == nil {
		return nil
	}
	return slices.Clone(s)
}

type SetField uint8

const (
	FieldNames SetField = iota + 1
	FieldFuelType
	FieldAmenities
	FieldLocations
	FieldCarType
	FieldGear
	FieldMileage
	FieldPower
	FieldFeatures
	FieldBrands
	FieldModels
)

var setFieldNames = map[SetField]string{
	FieldNames:     "names",
	FieldFuelType:  "fuelType",
	FieldAmenities: "amenities",
	FieldLocations: "locations",
	FieldCarType:   "carType",
	FieldGear:      "gear",
	FieldMileage:   "mileage",
	FieldPower:     "power",
	FieldFeatures:  "features",
	FieldBrands:    "brand",
	FieldModels:    "model",
}

func SetFields() []SetField {
	return []SetField{
		FieldNames, FieldFuelType, FieldAmenities, FieldLocations, FieldCarType,
		FieldGear, FieldMileage, FieldPower, FieldFeatures, FieldBrands, FieldModels,
	}
}

func (f SetField) Valid() bool {
	_, ok := setFieldNames[f]
	return ok
}

func (f SetField) String() string {
	if name, ok := setFieldNames[f]; ok {
		return name
	}
	return fmt.Sprintf("SetField(%d)", uint8(f))
}

func ParseSetField(name string) (SetField, bool) {
	for field, n := range setFieldNames {
		if n == name {
			return field, true
		}
	}
	return 0, false
}

type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

var DefaultPriceRange = Range{Min: 0, Max: 500}

// Bounds is an optionally open interval, nil ends are unbounded.
type Bounds struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

func Between(lo, hi float64) Bounds {
	return Bounds{Min: &lo, Max: &hi}
}

func AtLeast(lo float64) Bounds {
	return Bounds{Min: &lo}
}

func AtMost(hi float64) Bounds {
	return Bounds{Max: &hi}
}

func (b Bounds) IsZero() bool {
	return b.Min == nil && b.Max == nil
}

func (b Bounds) Contains(v float64) bool {
	if b.Min != nil && v < *b.Min {
		return false
	}
	if b.Max != nil && v > *b.Max {
		return false
	}
	return true
}

func (b Bounds) Equal(o Bounds) bool {
	return ptrEqual(b.Min, o.Min) && ptrEqual(b.Max, o.Max)
}

func ptrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

type Criteria struct {
	Names         ValueSet  `json:"names"`
	FuelType      ValueSet  `json:"fuelType"`
	Amenities     ValueSet  `json:"amenities"`
	Locations     ValueSet  `json:"locations"`
	CarType       ValueSet  `json:"carType"`
	Gear          ValueSet  `json:"gear"`
	Mileage       ValueSet  `json:"mileage"`
	Power         ValueSet  `json:"power"`
	Features      ValueSet  `json:"features"`
	Brands        ValueSet  `json:"brand"`
	Models        ValueSet  `json:"model"`
	Ratings       []float64 `json:"ratings"`
	PriceRange    Range     `json:"priceRange"`
	Year          int       `json:"year,omitempty"`
	VatOnly       bool      `json:"vat,omitempty"`
	MileageBounds Bounds    `json:"mileageBounds"`
}

func DefaultCriteria() Criteria {
	return Criteria{PriceRange: DefaultPriceRange}
}

// Set returns the selection backing a set field. Passing a value outside the
// SetField constants is a programming error and panics.
func (c *Criteria) Set(field SetField) *ValueSet {
	switch field {
	case FieldNames:
		return &c.Names
	case FieldFuelType:
		return &c.FuelType
	case FieldAmenities:
		return &c.Amenities
	case FieldLocations:
		return &c.Locations
	case FieldCarType:
		return &c.CarType
	case FieldGear:
		return &c.Gear
	case FieldMileage:
		return &c.Mileage
	case FieldPower:
		return &c.Power
	case FieldFeatures:
		return &c.Features
	case FieldBrands:
		return &c.Brands
	case FieldModels:
		return &c.Models
	}
	panic(fmt.Sprintf("types: unknown set field %d", uint8(field)))
}

func (c Criteria) Values(field SetField) ValueSet {
	return *c.Set(field)
}

func (c Criteria) HasRating(r float64) bool {
	return len(c.Ratings) == 0 || slices.Contains(c.Ratings, r)
}

func (c Criteria) Clone() Criteria {
	ret := c
	for _, field := range SetFields() {
		*ret.Set(field) = c.Values(field).Clone()
	}
	if c.Ratings != nil {
		ret.Ratings = slices.Clone(c.Ratings)
	}
	ret.MileageBounds = Bounds{}
	if c.MileageBounds.Min != nil {
		lo := *c.MileageBounds.Min
		ret.MileageBounds.Min = &lo
	}
	if c.MileageBounds.Max != nil {
		hi := *c.MileageBounds.Max
		ret.MileageBounds.Max = &hi
	}
	return ret
}

// IsDefault reports whether no predicate restricts the result beyond the
// default price range.
func (c Criteria) IsDefault() bool {
	for _, field := range SetFields() {
		if len(c.Values(field)) > 0 {
			return false
		}
	}
	return len(c.Ratings) == 0 &&
		c.PriceRange == DefaultPriceRange &&
		c.Year == 0 &&
		!c.VatOnly &&
		c.MileageBounds.IsZero()
}
