package storage

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/matst80/slask-cars/pkg/common/jsoncompat"
	"github.com/matst80/slask-cars/pkg/types"
)

const listingsFile = "listings.json.gz"

var ErrNoSnapshot = errors.New("no listing snapshot")

// SaveListings replaces the snapshot of the catalog atomically.
func (d *DiskStorage) SaveListings(page *types.ListingPage) error {
	if page == nil {
		page = types.NewLocalPage(nil)
	}
	if err := d.SaveGzippedJson(page, listingsFile); err != nil {
		return fmt.Errorf("save listings: %w", err)
	}
	slog.Info("saved listing snapshot", "country", d.Country, "listings", len(page.Cars))
	return nil
}

func (d *DiskStorage) LoadListings() (*types.ListingPage, error) {
	page := &types.ListingPage{}
	err := d.LoadGzippedJson(page, listingsFile)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("load listings: %w", err)
	}
	return page, nil
}

// ListingsModTime returns when the snapshot was last written.
func (d *DiskStorage) ListingsModTime() (time.Time, error) {
	name, _ := d.GetFileName(listingsFile)
	info, err := os.Stat(name)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

func (d *DiskStorage) SaveGzippedJson(data any, filename string) error {
	if err := d.ensureFolder(); err != nil {
		return err
	}
	fileName, tmpFileName := d.GetFileName(filename)

	file, err := os.Create(tmpFileName)
	if err != nil {
		return err
	}

	zipWriter := gzip.NewWriter(file)
	if err = jsoncompat.NewEncoder(zipWriter).Encode(data); err != nil {
		_ = zipWriter.Close()
		_ = file.Close()
		_ = os.Remove(tmpFileName)
		return err
	}
	if err = zipWriter.Close(); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpFileName)
		return err
	}
	if err = file.Close(); err != nil {
		_ = os.Remove(tmpFileName)
		return err
	}
	if err = os.Rename(tmpFileName, fileName); err != nil {
		_ = os.Remove(tmpFileName)
		return err
	}
	return nil
}

func (d *DiskStorage) LoadGzippedJson(data any, filename string) error {
	name, _ := d.GetFileName(filename)
	file, err := os.Open(name)
	if err != nil {
		return err
	}
	defer file.Close()

	zipReader, err := gzip.NewReader(file)
	if err != nil {
		return err
	}
	defer zipReader.Close()

	err = jsoncompat.NewDecoder(zipReader).Decode(data)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
