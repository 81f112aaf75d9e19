package facet

import (
	"github.com/matst80/slask-cars/pkg/types"
)

// Facets holds the option lists for the filter controls. Every list is built
// from the raw collection, never from a filtered result, so a restrictive
// selection can always be widened again.
type Facets struct {
	Names     []string  `json:"names"`
	Brands    []string  `json:"brands"`
	Models    []string  `json:"models"`
	FuelTypes []string  `json:"fuelTypes"`
	Amenities []string  `json:"amenities"`
	Locations []string  `json:"locations"`
	Ratings   []float64 `json:"ratings"`
	CarTypes  []string  `json:"carTypes"`
	Gears     []string  `json:"gears"`
	Mileages  []string  `json:"mileages"`
	Powers    []string  `json:"powers"`
	Features  []string  `json:"features"`
	Years     []int     `json:"years"`
}

// distinct collects values in first-seen order. Values matching skip are
// missing data, not options.
type distinct[T comparable] struct {
	seen   map[T]struct{}
	values []T
	skip   func(T) bool
}

func newDistinct[T comparable](skip func(T) bool) *distinct[T] {
	return &distinct[T]{seen: make(map[T]struct{}), values: []T{}, skip: skip}
}

func (d *distinct[T]) add(v T) {
	if d.skip != nil && d.skip(v) {
		return
	}
	if _, ok := d.seen[v]; ok {
		return
	}
	d.seen[v] = struct{}{}
	d.values = append(d.values, v)
}

func emptyString(s string) bool {
	return s == ""
}

func Extract(cars []types.Listing) Facets {
	names := newDistinct(emptyString)
	brands := newDistinct(emptyString)
	models := newDistinct(emptyString)
	fuel := newDistinct(emptyString)
	amenities := newDistinct(emptyString)
	locations := newDistinct(emptyString)
	// 0 is a rating like any other, unparseable ratings coerce to it
	ratings := newDistinct[float64](nil)
	carTypes := newDistinct(emptyString)
	gears := newDistinct(emptyString)
	mileages := newDistinct(emptyString)
	powers := newDistinct(emptyString)
	features := newDistinct(emptyString)
	// year 0 is the unset year filter
	years := newDistinct(func(y int) bool { return y == 0 })

	for i := range cars {
		car := &cars[i]
		names.add(car.Name)
		brands.add(car.Brand)
		models.add(car.Model)
		fuel.add(car.FuelType)
		amenities.add(car.Amenities)
		locations.add(car.Location)
		ratings.add(car.Rating)
		carTypes.add(car.CarType)
		gears.add(car.Transmission)
		mileages.add(car.Mileage)
		powers.add(car.Power)
		for _, f := range car.Features {
			features.add(f)
		}
		years.add(car.Year)
	}

	return Facets{
		Names:     names.values,
		Brands:    brands.values,
		Models:    models.values,
		FuelTypes: fuel.values,
		Amenities: amenities.values,
		Locations: locations.values,
		Ratings:   ratings.values,
		CarTypes:  carTypes.values,
		Gears:     gears.values,
		Mileages:  mileages.values,
		Powers:    powers.values,
		Features:  features.values,
		Years:     years.values,
	}
}

// Values returns the option list backing a set field of the criteria.
func (f Facets) Values(field types.SetField) []string {
	switch field {
	case types.FieldNames:
		return f.Names
	case types.FieldFuelType:
		return f.FuelTypes
	case types.FieldAmenities:
		return f.Amenities
	case types.FieldLocations:
		return f.Locations
	case types.FieldCarType:
		return f.CarTypes
	case types.FieldGear:
		return f.Gears
	case types.FieldMileage:
		return f.Mileages
	case types.FieldPower:
		return f.Powers
	case types.FieldFeatures:
		return f.Features
	case types.FieldBrands:
		return f.Brands
	case types.FieldModels:
		return f.Models
	}
	return nil
}
