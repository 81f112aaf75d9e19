package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"net/http/pprof"
	"os"
	"sync/atomic"
	"time"

	"github.com/matst80/slask-cars/pkg/common"
	"github.com/matst80/slask-cars/pkg/config"
	"github.com/matst80/slask-cars/pkg/server"
	"github.com/matst80/slask-cars/pkg/storage"
	"github.com/matst80/slask-cars/pkg/tracking"
	"github.com/matst80/slask-cars/pkg/types"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"
)

var enableProfiling = flag.Bool("profiling", true, "enable profiling endpoints")

const idleViewTimeout = 2 * time.Hour

type app struct {
	country string
	conn    *amqp.Connection
	storage *storage.DiskStorage
	sources *sources
	server  *server.App
	ready   atomic.Bool
}

func newTracker(cfg *config.Config) types.Tracking {
	if cfg.RabbitURL == "" {
		return tracking.LogTracking{}
	}
	tracker, err := tracking.NewRabbitTracking(cfg.RabbitURL, cfg.Country)
	if err != nil {
		slog.Error("failed to connect to rabbitmq for tracking", "error", err)
		return tracking.LogTracking{}
	}
	return tracker
}

func (a *app) saveSnapshot(ctx context.Context) error {
	page := a.server.Listings()
	if page == nil {
		return nil
	}
	return a.storage.SaveListings(page)
}

func (a *app) debugHandler() *http.ServeMux {
	debugMux := http.NewServeMux()
	debugMux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if !a.ready.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("not ready"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	debugMux.Handle("/metrics", promhttp.Handler())
	if *enableProfiling {
		debugMux.HandleFunc("/debug/pprof/", pprof.Index)
		debugMux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		debugMux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		debugMux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		debugMux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	}
	return debugMux
}

func main() {
	flag.Parse()
	cfg, err := config.Load()
	if err != nil {
		slog.Error("could not load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(cfg.NewLogger(os.Stderr))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := &app{
		country: cfg.Country,
		storage: storage.NewDiskStorage(cfg.Country, cfg.DataDir),
	}
	a.sources, err = connectSources(ctx, cfg, a.storage)
	if err != nil {
		slog.Error("could not connect to catalog", "error", err)
		os.Exit(1)
	}

	tracker := newTracker(cfg)
	a.server = server.NewApp(server.Options{
		Source:   a.sources.source,
		Remote:   cfg.CatalogMode == config.CatalogRemote,
		PageSize: cfg.CatalogPageSize,
		Sessions: common.NewSessions(cfg.SessionSecret),
		Tracking: tracker,
	})

	if page, err := a.storage.LoadListings(); err == nil {
		a.server.SetListings(page)
		a.ready.Store(true)
		written, _ := a.storage.ListingsModTime()
		slog.Info("warm start from snapshot", "listings", len(page.Cars), "age", time.Since(written).Round(time.Second))
	}
	a.reload()

	if cfg.RabbitURL != "" {
		if err := a.listenForChanges(cfg.RabbitURL); err != nil {
			slog.Error("failed to listen for listing changes", "error", err)
		}
	}
	go a.reloadEvery(ctx, cfg.ReloadInterval)

	go func() {
		slog.Info("starting debug server", "addr", cfg.DebugAddr)
		if err := http.ListenAndServe(cfg.DebugAddr, a.debugHandler()); err != nil {
			slog.Error("debug server stopped", "error", err)
		}
	}()

	timeouts := common.LoadTimeoutConfig(common.TimeoutConfig{
		ReadHeader: 5 * time.Second,
		Read:       15 * time.Second,
		Write:      30 * time.Second,
		Idle:       60 * time.Second,
		Shutdown:   20 * time.Second,
		Hook:       5 * time.Second,
	})
	srv := common.NewServerWithTimeouts(&http.Server{
		Addr:    cfg.ListenAddr,
		Handler: common.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Interval, a.server.Handler()),
	}, timeouts)

	common.RunServerWithShutdown(srv, "storefront", timeouts.Shutdown, timeouts.Hook,
		a.saveSnapshot,
		func(ctx context.Context) error {
			cancel()
			if a.conn != nil {
				_ = a.conn.Close()
			}
			return tracker.Close()
		},
		a.sources.Close,
	)
}
