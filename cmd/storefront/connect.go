package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/matst80/slask-cars/pkg/messaging"
	amqp "github.com/rabbitmq/amqp091-go"
)

// listenForChanges reloads the listings whenever the importer announces a new
// collection for our country.
func (a *app) listenForChanges(amqpUrl string) error {
	conn, err := amqp.DialConfig(amqpUrl, amqp.Config{
		Properties: amqp.NewConnectionProperties(),
	})
	if err != nil {
		return err
	}
	a.conn = conn
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	if err = messaging.DefineTopic(ch, a.country, messaging.ListingsChanged); err != nil {
		return err
	}
	err = messaging.ListenToTopic(ch, a.country, messaging.ListingsChanged, func(d amqp.Delivery) error {
		change, err := messaging.DecodeChange[messaging.ListingsChange](d)
		if err != nil {
			return err
		}
		slog.Info("listings changed", "source", change.Source, "listings", change.Listings, "at", change.At)
		a.reload()
		return nil
	})
	if err != nil {
		return err
	}
	slog.Info("listening for listing changes", "topic", messaging.ListingsChanged)
	return nil
}

func (a *app) reload() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	a.sources.invalidate(ctx)
	if err := a.server.Reload(ctx); err != nil {
		slog.Error("failed to reload listings", "error", err)
		return
	}
	a.ready.Store(true)
}

func (a *app) reloadEvery(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.reload()
			a.sources.sweep()
			if n := a.server.PruneSessions(idleViewTimeout); n > 0 {
				slog.Debug("pruned idle views", "views", n)
			}
		}
	}
}
