package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"checkin-guide/cache"
	"checkin-guide/logger"
	"checkin-guide/mapper"
	"checkin-guide/media"
	"checkin-guide/models"
	"checkin-guide/store"
)

type testEnv struct {
	store      *store.MemoryStore
	apartments *ApartmentService
	bookings   *BookingService
	guests     *GuestService
	media      *MediaService
	links      *LinkService
	bulk       *BulkService
}

func newTestEnv(t *testing.T, st store.Store) *testEnv {
	t.Helper()
	mem, _ := st.(*store.MemoryStore)
	if st == nil {
		mem = store.NewMemoryStore()
		st = mem
	}
	files, err := media.NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)

	lg := logger.Discard()
	d := Deps{
		Store:  st,
		Schema: mapper.ContentSchema,
		Cache:  cache.New(cache.Options{StaleTime: time.Minute}, lg.Logger),
		Files:  files,
		Log:    lg,
	}
	env := &testEnv{store: mem}
	env.apartments = NewApartmentService(d)
	env.bookings = NewBookingService(d, env.apartments)
	env.guests = NewGuestService(d, env.apartments)
	env.media = NewMediaService(d, env.apartments, 1<<20)
	env.links = NewLinkService(env.apartments, env.bookings, env.media, "https://guide.example")
	env.bulk = NewBulkService(d, env.apartments)
	return env
}

func (e *testEnv) createApartment(t *testing.T, title, number string, extra map[models.Field]string) models.Apartment {
	t.Helper()
	var p models.ApartmentPatch
	p.Set(models.FieldTitle, title)
	p.Set(models.FieldApartmentNumber, number)
	for f, v := range extra {
		p.Set(f, v)
	}
	apt, err := e.apartments.Create(context.Background(), p)
	require.NoError(t, err)
	return apt
}

// failingStore fails deletes or updates on one collection.
type failingStore struct {
	*store.MemoryStore
	failDelete string
	failUpdate string
}

func (f *failingStore) Update(ctx context.Context, collection, id string, patch models.Record) (models.Record, error) {
	if collection == f.failUpdate {
		return nil, errors.New("connection reset")
	}
	return f.MemoryStore.Update(ctx, collection, id, patch)
}

func (f *failingStore) Delete(ctx context.Context, collection, id string) error {
	if collection == f.failDelete {
		return errors.New("connection reset")
	}
	return f.MemoryStore.Delete(ctx, collection, id)
}

// gatedStore counts List calls. After hold, list calls block until the test
// ends.
type gatedStore struct {
	*store.MemoryStore

	mu    sync.Mutex
	lists map[string]int
	gate  chan struct{}
}

func newGatedStore() *gatedStore {
	return &gatedStore{MemoryStore: store.NewMemoryStore(), lists: make(map[string]int)}
}

func (g *gatedStore) List(ctx context.Context, collection string, filter store.Filter) ([]models.Record, error) {
	g.mu.Lock()
	g.lists[collection]++
	gate := g.gate
	g.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return g.MemoryStore.List(ctx, collection, filter)
}

func (g *gatedStore) listCalls(collection string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lists[collection]
}

func (g *gatedStore) hold(t *testing.T) {
	g.mu.Lock()
	g.gate = make(chan struct{})
	gate := g.gate
	g.mu.Unlock()
	t.Cleanup(func() { close(gate) })
}
