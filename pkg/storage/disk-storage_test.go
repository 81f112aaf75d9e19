package storage

import (
	"compress/gzip"
	"os"
	"path"
	"testing"

	"github.com/matst80/slask-cars/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListingsSnapshot(t *testing.T) {
	d := NewDiskStorage("se", t.TempDir())

	_, err := d.LoadListings()
	assert.ErrorIs(t, err, ErrNoSnapshot)

	page := &types.ListingPage{
		Cars: []types.Listing{
			{Id: "1", Name: "BMW 320d", Price: 250, Rating: 4.5, Kilometers: 45000, Features: []string{"ABS"}},
			{Id: "2", Name: "Audi A4", Price: 300},
		},
		Total: 2,
	}
	require.NoError(t, d.SaveListings(page))

	loaded, err := d.LoadListings()
	require.NoError(t, err)
	assert.Equal(t, page, loaded)

	_, err = d.ListingsModTime()
	assert.NoError(t, err)

	entries, err := os.ReadDir(path.Join(d.RootFolder, "se"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files are left behind")
}

func TestLoadCorruptSnapshot(t *testing.T) {
	d := NewDiskStorage("de", t.TempDir())
	require.NoError(t, d.ensureFolder())
	name, _ := d.GetFileName(listingsFile)
	f, err := os.Create(name)
	require.NoError(t, err)
	zw := gzip.NewWriter(f)
	_, err = zw.Write([]byte("{not json"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	_, err = d.LoadListings()
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoSnapshot)
}
