package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"checkin-guide/models"

	"github.com/google/uuid"
)

// MemoryStore keeps records in process. It backs local runs with
// STORE_DRIVER=memory and the service tests.
type MemoryStore struct {
	mu    sync.RWMutex
	data  map[string]map[string]models.Record
	order map[string][]string
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data:  make(map[string]map[string]models.Record),
		order: make(map[string][]string),
		now:   time.Now,
	}
}

func (s *MemoryStore) List(ctx context.Context, collection string, filter Filter) ([]models.Record, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Record{}
	for _, id := range s.order[collection] {
		rec := s.data[collection][id]
		if matches(rec, filter) {
			out = append(out, clone(rec))
		}
	}
	return out, nil
}

func (s *MemoryStore) Get(ctx context.Context, collection, id string) (models.Record, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.data[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(rec), nil
}

func (s *MemoryStore) Create(ctx context.Context, collection string, rec models.Record) (models.Record, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := clone(rec)
	id, _ := stored["id"].(string)
	if id == "" {
		id = uuid.NewString()
		stored["id"] = id
	}
	if s.data[collection] == nil {
		s.data[collection] = make(map[string]models.Record)
	}
	if _, exists := s.data[collection][id]; exists {
		return nil, fmt.Errorf("store: %s %s already exists", collection, id)
	}
	ts := s.now().UTC().Format(time.RFC3339)
	stored["created_at"] = ts
	stored["updated_at"] = ts
	s.data[collection][id] = stored
	s.order[collection] = append(s.order[collection], id)
	return clone(stored), nil
}

func (s *MemoryStore) Update(ctx context.Context, collection, id string, patch models.Record) (models.Record, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.data[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	for k, v := range patch {
		if k == "id" {
			continue
		}
		rec[k] = v
	}
	rec["updated_at"] = s.now().UTC().Format(time.RFC3339)
	return clone(rec), nil
}

func (s *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	if err := checkCollection(collection); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[collection][id]; !ok {
		return ErrNotFound
	}
	delete(s.data[collection], id)
	ids := s.order[collection]
	for i, existing := range ids {
		if existing == id {
			s.order[collection] = append(ids[:i:i], ids[i+1:]...)
			break
		}
	}
	return nil
}

func matches(rec models.Record, filter Filter) bool {
	for k, want := range filter {
		v, ok := rec[k]
		if !ok || v == nil || fmt.Sprint(v) != want {
			return false
		}
	}
	return true
}

func clone(rec models.Record) models.Record {
	out := make(models.Record, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	return out
}
