package catalog

import (
	"context"

	"github.com/matst80/slask-cars/pkg/types"
)

// StaticSource serves an in-memory collection, paginated like the catalog API
// when a limit is given.
type StaticSource struct {
	Cars []types.Listing
}

func (s *StaticSource) Fetch(_ context.Context, q Query) (*types.ListingPage, error) {
	if q.Limit <= 0 {
		return types.NewLocalPage(s.Cars), nil
	}
	page := max(q.Page, 1)
	start := min((page-1)*q.Limit, len(s.Cars))
	end := min(start+q.Limit, len(s.Cars))
	return &types.ListingPage{
		Cars:  s.Cars[start:end],
		Total: len(s.Cars),
		Page:  page,
		Limit: q.Limit,
		Pages: (len(s.Cars) + q.Limit - 1) / q.Limit,
	}, nil
}
