// Package store reads and writes raw records in the backing content store.
package store

import (
	"context"
	"errors"
	"fmt"

	"checkin-guide/models"
)

const (
	CollectionApartments = "apartments"
	CollectionBookings   = "bookings"
	CollectionGuests     = "guests"
	CollectionMedia      = "media_files"
)

var ErrNotFound = errors.New("store: record not found")

// Filter is an equality match on raw field names.
type Filter map[string]string

type Store interface {
	List(ctx context.Context, collection string, filter Filter) ([]models.Record, error)
	Get(ctx context.Context, collection, id string) (models.Record, error)
	Create(ctx context.Context, collection string, rec models.Record) (models.Record, error)
	Update(ctx context.Context, collection, id string, patch models.Record) (models.Record, error)
	Delete(ctx context.Context, collection, id string) error
}

// HTTPError is a non-2xx answer from the content API.
type HTTPError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("store: %s %s: status %d: %s", e.Method, e.Path, e.Status, e.Body)
}

var knownCollections = map[string]bool{
	CollectionApartments: true,
	CollectionBookings:   true,
	CollectionGuests:     true,
	CollectionMedia:      true,
}

func checkCollection(collection string) error {
	if !knownCollections[collection] {
		return fmt.Errorf("store: unknown collection %q", collection)
	}
	return nil
}
