package types

import (
	"github.com/matst80/slask-cars/pkg/common/jsoncompat"
)

type Listing struct {
	Id            string   `json:"id"`
	Name          string   `json:"name"`
	Brand         string   `json:"brand,omitempty"`
	Model         string   `json:"model,omitempty"`
	Price         float64  `json:"price"`
	CarType       string   `json:"carType,omitempty"`
	Amenities     string   `json:"amenities,omitempty"`
	Rating        float64  `json:"rating"`
	FuelType      string   `json:"fuelType,omitempty"`
	Location      string   `json:"location,omitempty"`
	Transmission  string   `json:"transmission,omitempty"`
	Mileage       string   `json:"mileage,omitempty"`
	Kilometers    float64  `json:"km,omitempty"`
	Power         string   `json:"power,omitempty"`
	Date          string   `json:"date,omitempty"`
	Year          int      `json:"year,omitempty"`
	VatDeductible bool     `json:"vat,omitempty"`
	Image         string   `json:"image,omitempty"`
	Features      []string `json:"features,omitempty"`
}

type listingAlias Listing

// UnmarshalJSON accepts the loosely typed payloads different catalog backends
// produce. Ratings, prices and odometer values may arrive as numbers or strings,
// ids as numbers; everything is normalized here so nothing downstream coerces again.
func (l *Listing) UnmarshalJSON(data []byte) error {
	aux := struct {
		*listingAlias
		Id         any `json:"id"`
		Price      any `json:"price"`
		Rating     any `json:"rating"`
		Mileage    any `json:"mileage"`
		Kilometers any `json:"km"`
		Power      any `json:"power"`
		Year       any `json:"year"`
		Features   any `json:"features"`

		// column names of the catalog backend
		Version         string `json:"version"`
		Gear            string `json:"gear"`
		Fuel            string `json:"fuel"`
		BodyType        string `json:"body_type"`
		Country         string `json:"country"`
		Images          any    `json:"images"`
		PriceWithoutVat any    `json:"price_without_vat"`
		Age             any    `json:"age"`
	}{listingAlias: (*listingAlias)(l)}
	if err := jsoncompat.Unmarshal(data, &aux); err != nil {
		return err
	}
	l.Id = AsTag(aux.Id)
	l.Price = ParseNumber(aux.Price)
	l.Rating = ParseNumber(aux.Rating)
	l.Kilometers = ParseNumber(aux.Kilometers)
	l.Year = int(ParseNumber(aux.Year))
	l.Power = AsTag(aux.Power)
	l.Features = AsTags(aux.Features)
	if l.Transmission == "" {
		l.Transmission = aux.Gear
	}
	if l.FuelType == "" {
		l.FuelType = aux.Fuel
	}
	if l.CarType == "" {
		l.CarType = aux.BodyType
	}
	if l.Location == "" {
		l.Location = aux.Country
	}
	if l.Image == "" {
		if images := AsTags(aux.Images); len(images) > 0 {
			l.Image = images[0]
		}
	}
	if l.Name == "" {
		l.Name = joinNonEmpty(l.Brand, l.Model, aux.Version)
	}
	if age := int(ParseNumber(aux.Age)); l.Year == 0 && age >= 1900 {
		l.Year = age
	}
	if net := ParseNumber(aux.PriceWithoutVat); net > 0 && net < l.Price {
		l.VatDeductible = true
	}
	switch m := aux.Mileage.(type) {
	case string:
		l.Mileage = m
	case nil:
	default:
		km := ParseNumber(m)
		if l.Kilometers == 0 {
			l.Kilometers = km
		}
		l.Mileage = formatNumber(km) + " km"
	}
	l.Normalize()
	return nil
}

// Normalize fills derived fields and enforces the value invariants of a listing.
func (l *Listing) Normalize() {
	if l.Price < 0 {
		l.Price = 0
	}
	if l.Kilometers == 0 && l.Mileage != "" {
		l.Kilometers = digitsOf(l.Mileage)
	}
	if l.Year == 0 && l.Date != "" {
		l.Year = yearOf(l.Date)
	}
	if l.Name == "" && (l.Brand != "" || l.Model != "") {
		l.Name = joinNonEmpty(l.Brand, l.Model)
	}
}

func (l *Listing) HasFeature(features ValueSet) bool {
	for _, f := range l.Features {
		if features.Contains(f) {
			return true
		}
	}
	return false
}

type ListingPage struct {
	Cars  []Listing `json:"data"`
	Total int       `json:"total"`
	Page  int       `json:"page"`
	Limit int       `json:"limit"`
	Pages int       `json:"pages"`
}

// Listings returns the raw collection of a possibly nil page.
func (p *ListingPage) Listings() []Listing {
	if p == nil {
		return nil
	}
	return p.Cars
}

// ServerPaginated reports whether the page declares its own totals.
func (p *ListingPage) ServerPaginated() bool {
	return p != nil && p.Limit > 0 && (p.Total > 0 || p.Pages > 0)
}

func NewLocalPage(cars []Listing) *ListingPage {
	return &ListingPage{Cars: cars}
}
