package urlsync

import (
	"fmt"

	"github.com/matst80/slask-cars/pkg/types"
)

const (
	MileagePlaceholder = "Kilometers"
	PricePlaceholder   = "Price"
)

// Labels are the composite texts shown on the range pickers.
type Labels struct {
	Mileage string `json:"mileage"`
	Price   string `json:"price"`
}

func LabelsFor(c types.Criteria) Labels {
	return Labels{
		Mileage: rangeLabel(c.MileageBounds, "km", MileagePlaceholder),
		Price:   rangeLabel(priceBounds(c.PriceRange), "€", PricePlaceholder),
	}
}

func rangeLabel(b types.Bounds, unit, placeholder string) string {
	switch {
	case b.Min != nil && b.Max != nil:
		return fmt.Sprintf("%s - %s %s", formatNumber(*b.Min), formatNumber(*b.Max), unit)
	case b.Min != nil:
		return fmt.Sprintf("Min %s %s", formatNumber(*b.Min), unit)
	case b.Max != nil:
		return fmt.Sprintf("Max %s %s", formatNumber(*b.Max), unit)
	}
	return placeholder
}

// priceBounds keeps only the ends of the price range that restrict more than
// the default range does.
func priceBounds(r types.Range) types.Bounds {
	var b types.Bounds
	if r.Min != types.DefaultPriceRange.Min {
		b.Min = &r.Min
	}
	if r.Max != types.DefaultPriceRange.Max {
		b.Max = &r.Max
	}
	return b
}
