package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/matst80/slask-cars/pkg/cache"
	"github.com/matst80/slask-cars/pkg/catalog"
	"github.com/matst80/slask-cars/pkg/config"
	"github.com/matst80/slask-cars/pkg/storage"
)

type sources struct {
	source catalog.Source
	cached *catalog.CachedSource
	cache  *cache.Cache
	db     *catalog.PostgresSource
}

// connectSources picks the catalog backend, the database when configured and
// otherwise the catalog API, and puts the response cache and the disk snapshot
// in front of it.
func connectSources(ctx context.Context, cfg *config.Config, disk *storage.DiskStorage) (*sources, error) {
	ret := &sources{}
	snapshot := &catalog.SnapshotSource{Storage: disk}

	var primary catalog.Source
	switch {
	case cfg.DatabaseURL != "":
		db, err := catalog.NewPostgresSource(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		ret.db = db
		primary = &catalog.Instrumented{Name: "postgres", Source: db}
		slog.Info("reading listings from database")
	case cfg.CatalogURL != "":
		primary = &catalog.Instrumented{Name: "http", Source: catalog.NewHTTPSource(cfg.CatalogURL, 10*time.Second)}
		slog.Info("reading listings from catalog api", "url", cfg.CatalogURL)
	default:
		slog.Warn("no catalog configured, serving the disk snapshot only")
		ret.source = &catalog.Instrumented{Name: "snapshot", Source: snapshot}
		return ret, nil
	}

	if cfg.RedisURL != "" {
		ret.cache = cache.NewCache(cfg.RedisURL, cfg.RedisPassword, 0)
		slog.Info("catalog cache enabled", "redis", cfg.RedisURL)
	} else {
		ret.cache = cache.NewLocalCache()
	}
	ret.cached = catalog.NewCachedSource(primary, ret.cache, cfg.Country+":", cfg.CacheTTL)
	ret.source = &catalog.FallbackSource{Primary: ret.cached, Fallback: snapshot}
	return ret, nil
}

// invalidate forgets cached catalog responses after the catalog changed.
func (s *sources) invalidate(ctx context.Context) {
	if s.cached == nil {
		return
	}
	if err := s.cached.Invalidate(ctx); err != nil {
		slog.Warn("could not invalidate catalog cache", "error", err)
	}
}

// sweep drops expired entries of the in-process catalog cache.
func (s *sources) sweep() {
	if s.cache == nil {
		return
	}
	if n := s.cache.Sweep(); n > 0 {
		slog.Debug("swept catalog cache", "entries", n)
	}
}

func (s *sources) Close(ctx context.Context) error {
	if s.db != nil {
		s.db.Close()
	}
	if s.cache != nil {
		return s.cache.Close()
	}
	return nil
}
