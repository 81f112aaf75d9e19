package filter

import (
	"github.com/matst80/slask-cars/pkg/types"
)

// Match reports whether the listing passes every active predicate. Predicates
// are ANDed, values inside one set are ORed and an empty set never restricts.
func Match(car *types.Listing, c *types.Criteria) bool {
	if !c.Names.Matches(car.Name) ||
		!c.Brands.Matches(car.Brand) ||
		!c.Models.Matches(car.Model) ||
		!c.FuelType.Matches(car.FuelType) ||
		!c.Amenities.Matches(car.Amenities) ||
		!c.Locations.Matches(car.Location) ||
		!c.CarType.Matches(car.CarType) ||
		!c.Gear.Matches(car.Transmission) ||
		!c.Mileage.Matches(car.Mileage) ||
		!c.Power.Matches(car.Power) {
		return false
	}
	if len(c.Features) > 0 && !car.HasFeature(c.Features) {
		return false
	}
	if !c.HasRating(car.Rating) {
		return false
	}
	if !c.PriceRange.Contains(car.Price) {
		return false
	}
	if c.Year != 0 && car.Year != c.Year {
		return false
	}
	if c.VatOnly && !car.VatDeductible {
		return false
	}
	return c.MileageBounds.Contains(car.Kilometers)
}

// Apply returns the listings passing the criteria in input order. The input is
// never modified.
func Apply(cars []types.Listing, c *types.Criteria) []types.Listing {
	ret := make([]types.Listing, 0, len(cars))
	for i := range cars {
		if Match(&cars[i], c) {
			ret = append(ret, cars[i])
		}
	}
	return ret
}
