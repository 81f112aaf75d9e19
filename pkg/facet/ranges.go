package facet

import (
	"github.com/matst80/slask-cars/pkg/types"
)

type Extents struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type YearExtents struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type Ranges struct {
	Price   Extents     `json:"price"`
	Mileage Extents     `json:"mileage"`
	Years   YearExtents `json:"years"`
}

var (
	DefaultPriceExtents   = Extents{Min: 0, Max: 100000}
	DefaultMileageExtents = Extents{Min: 0, Max: 300000}
	DefaultYearExtents    = YearExtents{Min: 2000, Max: 2025}
)

// ExtractRanges returns the numeric extents of the raw collection. An attribute
// nobody reports falls back to its default extents.
func ExtractRanges(cars []types.Listing) Ranges {
	ret := Ranges{
		Price:   DefaultPriceExtents,
		Mileage: DefaultMileageExtents,
		Years:   DefaultYearExtents,
	}
	var price, km *Extents
	var years *YearExtents

	for i := range cars {
		car := &cars[i]
		price = widen(price, car.Price)
		if car.Kilometers > 0 {
			km = widen(km, car.Kilometers)
		}
		if car.Year > 0 {
			if years == nil {
				years = &YearExtents{Min: car.Year, Max: car.Year}
			} else {
				years.Min = min(years.Min, car.Year)
				years.Max = max(years.Max, car.Year)
			}
		}
	}
	if price != nil {
		ret.Price = *price
	}
	if km != nil {
		ret.Mileage = *km
	}
	if years != nil {
		ret.Years = *years
	}
	return ret
}

func widen(e *Extents, v float64) *Extents {
	if e == nil {
		return &Extents{Min: v, Max: v}
	}
	e.Min = min(e.Min, v)
	e.Max = max(e.Max, v)
	return e
}
