package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadListings(t *testing.T) {
	name := filepath.Join(t.TempDir(), "cars.json")
	data := `[
		{"id": 7, "brand": "Kia", "model": "Ceed", "price": "120", "rating": "4.5", "mileage": "31 000 km"},
		{"id": "8", "name": "Seat Leon", "price": 90, "features": "Bluetooth, Cruise control"}
	]`
	require.NoError(t, os.WriteFile(name, []byte(data), 0o600))

	page, err := readListings(name)
	require.NoError(t, err)
	require.Len(t, page.Cars, 2)
	assert.False(t, page.ServerPaginated())

	kia := page.Cars[0]
	assert.Equal(t, "7", kia.Id)
	assert.Equal(t, "Kia Ceed", kia.Name)
	assert.Equal(t, 4.5, kia.Rating)
	assert.Equal(t, 31000.0, kia.Kilometers)
	assert.Equal(t, []string{"Bluetooth", "Cruise control"}, page.Cars[1].Features)
}

func TestReadListingsErrors(t *testing.T) {
	_, err := readListings(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	name := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(name, []byte(`[{"id":`), 0o600))
	_, err = readListings(name)
	assert.Error(t, err)
}
