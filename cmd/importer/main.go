package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/matst80/slask-cars/pkg/catalog"
	"github.com/matst80/slask-cars/pkg/config"
	"github.com/matst80/slask-cars/pkg/messaging"
	"github.com/matst80/slask-cars/pkg/storage"
	"github.com/matst80/slask-cars/pkg/types"
	amqp "github.com/rabbitmq/amqp091-go"
)

var file = flag.String("file", "cars.json", "json file with listings, an array or a paginated response")

// readListings loads a listing dump. Every record goes through the same
// ingestion as catalog responses, so the snapshot holds canonical values.
func readListings(name string) (*types.ListingPage, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	page, err := catalog.DecodePage(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return types.NewLocalPage(page.Cars), nil
}

func announce(amqpUrl, country, source string, listings int) error {
	conn, err := amqp.Dial(amqpUrl)
	if err != nil {
		return err
	}
	defer conn.Close()
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()
	if err = messaging.DefineTopic(ch, country, messaging.ListingsChanged); err != nil {
		return err
	}
	return messaging.SendChange(conn, country, messaging.ListingsChanged, messaging.ListingsChange{
		Country:  country,
		Source:   source,
		Listings: listings,
		At:       time.Now(),
	})
}

func main() {
	flag.Parse()
	cfg, err := config.Load()
	if err != nil {
		slog.Error("could not load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(cfg.NewLogger(os.Stderr))

	page, err := readListings(*file)
	if err != nil {
		slog.Error("could not read listings", "error", err)
		os.Exit(1)
	}
	disk := storage.NewDiskStorage(cfg.Country, cfg.DataDir)
	if err = disk.SaveListings(page); err != nil {
		slog.Error("could not save listings", "error", err)
		os.Exit(1)
	}

	if cfg.RabbitURL == "" {
		slog.Info("no rabbit url, not announcing the import")
		return
	}
	if err = announce(cfg.RabbitURL, cfg.Country, *file, len(page.Cars)); err != nil {
		slog.Error("could not announce listing change", "error", err)
		os.Exit(1)
	}
	slog.Info("imported listings", "listings", len(page.Cars), "country", cfg.Country)
}
