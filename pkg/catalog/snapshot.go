package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/matst80/slask-cars/pkg/storage"
	"github.com/matst80/slask-cars/pkg/types"
)

// SnapshotSource serves the last collection saved to disk.
type SnapshotSource struct {
	Storage *storage.DiskStorage
}

func (s *SnapshotSource) Fetch(_ context.Context, _ Query) (*types.ListingPage, error) {
	page, err := s.Storage.LoadListings()
	if errors.Is(err, storage.ErrNoSnapshot) {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return page, err
}

// FallbackSource answers from Fallback whenever Primary fails.
type FallbackSource struct {
	Primary  Source
	Fallback Source
}

func (s *FallbackSource) Fetch(ctx context.Context, q Query) (*types.ListingPage, error) {
	page, err := s.Primary.Fetch(ctx, q)
	if err == nil {
		return page, nil
	}
	slog.Warn("primary catalog failed, using fallback", "error", err)
	page, fallbackErr := s.Fallback.Fetch(ctx, q)
	if fallbackErr != nil {
		return nil, errors.Join(err, fallbackErr)
	}
	return page, nil
}
