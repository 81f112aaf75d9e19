package types

import (
	"testing"

	"github.com/matst80/slask-cars/pkg/common/jsoncompat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListingRatingCoercion(t *testing.T) {
	payload := []byte(`[
		{"id": 1, "name": "Audi A4", "price": 250, "rating": "4.5"},
		{"id": "2", "name": "BMW X5", "price": "300", "rating": 3},
		{"id": 3, "name": "Golf", "price": 100, "rating": "n/a"},
		{"id": 4, "name": "Polo", "price": 90, "rating": null}
	]`)
	var cars []Listing
	require.NoError(t, jsoncompat.Unmarshal(payload, &cars))
	require.Len(t, cars, 4)

	assert.Equal(t, "1", cars[0].Id)
	assert.Equal(t, 4.5, cars[0].Rating)
	assert.Equal(t, "2", cars[1].Id)
	assert.Equal(t, 300.0, cars[1].Price)
	assert.Equal(t, 3.0, cars[1].Rating)
	assert.Equal(t, 0.0, cars[2].Rating)
	assert.Equal(t, 0.0, cars[3].Rating)
}

func TestListingNormalizesMileageAndYear(t *testing.T) {
	payload := []byte(`{"id": "a", "brand": "Audi", "model": "A6", "price": -5,
		"mileage": "45,000 km", "date": "03/2019", "power": 190,
		"features": {"comfort": ["Heated seats"], "safety": ["ABS"]}}`)
	var car Listing
	require.NoError(t, jsoncompat.Unmarshal(payload, &car))

	assert.Equal(t, "Audi A6", car.Name)
	assert.Equal(t, 0.0, car.Price)
	assert.Equal(t, 45000.0, car.Kilometers)
	assert.Equal(t, 2019, car.Year)
	assert.Equal(t, "190", car.Power)
	assert.ElementsMatch(t, []string{"Heated seats", "ABS"}, car.Features)
}

func TestListingNumericMileage(t *testing.T) {
	var car Listing
	require.NoError(t, jsoncompat.Unmarshal([]byte(`{"id": 7, "mileage": 12000, "year": 2021}`), &car))
	assert.Equal(t, 12000.0, car.Kilometers)
	assert.Equal(t, "12000 km", car.Mileage)
	assert.Equal(t, 2021, car.Year)
}

func TestNilPageIsEmpty(t *testing.T) {
	var page *ListingPage
	assert.Empty(t, page.Listings())
	assert.False(t, page.ServerPaginated())

	remote := &ListingPage{Total: 25, Limit: 10, Page: 1}
	assert.True(t, remote.ServerPaginated())
	assert.False(t, NewLocalPage(nil).ServerPaginated())
}

func TestListingFromCatalogBackend(t *testing.T) {
	payload := []byte(`{"id": "x1", "brand": "Volvo", "model": "XC60", "version": "B4",
		"price": 32000, "price_without_vat": 25600, "mileage": 38000.0, "age": 2021,
		"power": 197, "gear": "Automatic", "fuel": "Diesel", "country": "DE",
		"body_type": "SUV", "images": ["https://img/1.jpg", "https://img/2.jpg"]}`)
	var car Listing
	require.NoError(t, jsoncompat.Unmarshal(payload, &car))

	assert.Equal(t, "Volvo XC60 B4", car.Name)
	assert.Equal(t, "Automatic", car.Transmission)
	assert.Equal(t, "Diesel", car.FuelType)
	assert.Equal(t, "SUV", car.CarType)
	assert.Equal(t, "DE", car.Location)
	assert.Equal(t, "https://img/1.jpg", car.Image)
	assert.Equal(t, 38000.0, car.Kilometers)
	assert.True(t, car.VatDeductible)
	assert.Equal(t, 2021, car.Year)
}

func TestGroupedFeaturesAreOrderedByGroup(t *testing.T) {
	payload := []byte(`{"id": "g1", "name": "Golf", "features": {
		"safety": ["ABS", "Lane assist"],
		"comfort": ["Heated seats"],
		"multimedia": ["Navigation", "Bluetooth"]}}`)
	for range 20 {
		var car Listing
		require.NoError(t, jsoncompat.Unmarshal(payload, &car))
		assert.Equal(t, []string{"Heated seats", "Navigation", "Bluetooth", "ABS", "Lane assist"}, car.Features)
	}
}
