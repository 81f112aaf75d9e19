package catalog

import (
	"context"
	"time"

	"github.com/matst80/slask-cars/pkg/cache"
	"github.com/matst80/slask-cars/pkg/types"
)

type CachedSource struct {
	Source Source
	Prefix string
	TTL    time.Duration
	helper *cache.CacheHelper[types.ListingPage]
}

func NewCachedSource(src Source, c *cache.Cache, prefix string, ttl time.Duration) *CachedSource {
	return &CachedSource{
		Source: src,
		Prefix: prefix,
		TTL:    ttl,
		helper: cache.NewCacheHelper[types.ListingPage](c),
	}
}

func (s *CachedSource) Fetch(ctx context.Context, q Query) (*types.ListingPage, error) {
	page := types.ListingPage{}
	err := s.helper.Handle(ctx, s.Prefix+q.Key(), &page, func(ctx context.Context) (types.ListingPage, error) {
		fetched, err := s.Source.Fetch(ctx, q)
		if err != nil {
			return types.ListingPage{}, err
		}
		if fetched == nil {
			return types.ListingPage{}, nil
		}
		return *fetched, nil
	}, s.TTL)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// Invalidate forgets every cached response of this source.
func (s *CachedSource) Invalidate(ctx context.Context) error {
	return s.helper.Cache.Invalidate(ctx, s.Prefix+"listings:")
}
