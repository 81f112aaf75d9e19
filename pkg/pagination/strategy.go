package pagination

import (
	"github.com/matst80/slask-cars/pkg/types"
)

// Strategy decides how many pages exist and which part of the rendered
// collection belongs to a page.
type Strategy interface {
	TotalItems() int
	TotalPages(perPage int) int
	PageSize(perPage int) int
	Slice(page, perPage int) (start, end int)
}

// LocalCount slices an in-memory collection on the client.
type LocalCount struct {
	Items int
}

func (s LocalCount) TotalItems() int {
	return max(s.Items, 0)
}

func (s LocalCount) TotalPages(perPage int) int {
	return ceilDiv(s.TotalItems(), perPage)
}

func (s LocalCount) PageSize(perPage int) int {
	return perPage
}

func (s LocalCount) Slice(page, perPage int) (int, int) {
	total := s.TotalItems()
	if page < 1 || perPage < 1 {
		return 0, 0
	}
	start := (page - 1) * perPage
	if start >= total {
		return total, total
	}
	return start, min(start+perPage, total)
}

// RemoteCount trusts the totals declared by a paginated backend. The rendered
// collection is the page the backend returned.
type RemoteCount struct {
	Total    int
	Limit    int
	Pages    int
	Received int
}

func (s RemoteCount) TotalItems() int {
	return max(s.Total, 0)
}

func (s RemoteCount) TotalPages(int) int {
	if s.Pages > 0 {
		return s.Pages
	}
	return ceilDiv(s.TotalItems(), s.Limit)
}

func (s RemoteCount) PageSize(perPage int) int {
	if s.Limit > 0 {
		return s.Limit
	}
	return perPage
}

func (s RemoteCount) Slice(page, perPage int) (int, int) {
	if page < 1 || page > s.TotalPages(perPage) {
		return 0, 0
	}
	return 0, max(s.Received, 0)
}

// Select picks the remote strategy when the backend declared its own totals and
// local slicing over the rendered items otherwise.
func Select(page *types.ListingPage, rendered int) Strategy {
	if page.ServerPaginated() {
		return RemoteCount{
			Total:    page.Total,
			Limit:    page.Limit,
			Pages:    page.Pages,
			Received: rendered,
		}
	}
	return LocalCount{Items: rendered}
}

func ceilDiv(n, d int) int {
	if n <= 0 || d <= 0 {
		return 0
	}
	return (n + d - 1) / d
}
