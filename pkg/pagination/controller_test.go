package pagination

import (
	"testing"

	"github.com/matst80/slask-cars/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestGoToPageBounds(t *testing.T) {
	c := NewController(10)
	c.Observe(LocalCount{Items: 25})
	assert.Equal(t, 3, c.TotalPages())

	assert.True(t, c.GoToPage(2))
	assert.False(t, c.GoToPage(4))
	assert.Equal(t, 2, c.CurrentPage())
	assert.False(t, c.GoToPage(0))
	assert.False(t, c.GoToPage(-1))
	assert.Equal(t, 2, c.CurrentPage())
}

func TestNextPreviousAtBoundaries(t *testing.T) {
	c := NewController(10)
	c.Observe(LocalCount{Items: 25})

	assert.False(t, c.PreviousPage())
	assert.Equal(t, 1, c.CurrentPage())

	assert.True(t, c.NextPage())
	assert.True(t, c.NextPage())
	assert.False(t, c.NextPage())
	assert.Equal(t, 3, c.CurrentPage())
}

func TestLocalWindow(t *testing.T) {
	c := NewController(10)
	c.Observe(LocalCount{Items: 25})
	c.GoToPage(3)

	w := c.Window()
	assert.Equal(t, 20, w.StartIndex)
	assert.Equal(t, 25, w.EndIndex)
	assert.Equal(t, 21, w.StartItemIndex)
	assert.Equal(t, 25, w.EndItemIndex)
	assert.True(t, w.HasPrevious)
	assert.False(t, w.HasNext)
}

func TestEmptyWindow(t *testing.T) {
	c := NewController(0)
	assert.Equal(t, DefaultItemsPerPage, c.ItemsPerPage())

	w := c.Window()
	assert.Equal(t, 0, w.TotalPages)
	assert.Equal(t, 0, w.StartItemIndex)
	assert.Equal(t, 0, w.EndItemIndex)
	assert.Equal(t, w.StartIndex, w.EndIndex)
	assert.False(t, c.NextPage())
}

func TestSeekBeyondRangeIsEmpty(t *testing.T) {
	c := NewController(10)
	c.Seek(7)
	c.Observe(LocalCount{Items: 25})

	w := c.Window()
	assert.Equal(t, 7, w.CurrentPage)
	assert.Equal(t, w.StartIndex, w.EndIndex)
	assert.Equal(t, 0, w.StartItemIndex)
}

func TestSetItemsPerPageResetsPage(t *testing.T) {
	c := NewController(10)
	c.Observe(LocalCount{Items: 100})
	c.GoToPage(5)

	assert.False(t, c.SetItemsPerPage(0))
	assert.Equal(t, 5, c.CurrentPage())

	assert.True(t, c.SetItemsPerPage(25))
	assert.Equal(t, 1, c.CurrentPage())
	assert.Equal(t, 4, c.TotalPages())

	c.SetDefaultItemsPerPage(20)
	c.ResetItemsPerPage()
	assert.Equal(t, 20, c.ItemsPerPage())
}

func TestRemoteCount(t *testing.T) {
	c := NewController(10)
	c.Observe(RemoteCount{Total: 45, Limit: 20, Received: 20})
	assert.Equal(t, 3, c.TotalPages())
	assert.True(t, c.GoToPage(3))

	w := c.Window()
	assert.Equal(t, 0, w.StartIndex)
	assert.Equal(t, 20, w.EndIndex)
	assert.Equal(t, 41, w.StartItemIndex)
	assert.Equal(t, 45, w.EndItemIndex)

	c.Observe(RemoteCount{Total: 45, Limit: 20, Pages: 5})
	assert.Equal(t, 5, c.TotalPages(), "declared pages are authoritative")
}

func TestSelect(t *testing.T) {
	assert.Equal(t, LocalCount{Items: 3}, Select(nil, 3))
	assert.Equal(t, LocalCount{Items: 2}, Select(types.NewLocalPage(make([]types.Listing, 2)), 2))

	remote := &types.ListingPage{Total: 50, Limit: 10, Page: 2, Pages: 5}
	assert.Equal(t, RemoteCount{Total: 50, Limit: 10, Pages: 5, Received: 10}, Select(remote, 10))
}
