package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"checkin-guide/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type table struct {
	row  func() any
	rows func() any
}

var tables = map[string]table{
	CollectionApartments: {
		row:  func() any { return &models.ApartmentRow{} },
		rows: func() any { return &[]models.ApartmentRow{} },
	},
	CollectionBookings: {
		row:  func() any { return &models.BookingRow{} },
		rows: func() any { return &[]models.BookingRow{} },
	},
	CollectionGuests: {
		row:  func() any { return &models.GuestRow{} },
		rows: func() any { return &[]models.GuestRow{} },
	},
	CollectionMedia: {
		row:  func() any { return &models.MediaFileRow{} },
		rows: func() any { return &[]models.MediaFileRow{} },
	},
}

// SQLStore serves records from SQL tables through gorm. Rows round-trip
// through JSON so callers see the same loose Record shape as the REST API.
type SQLStore struct {
	db *gorm.DB
}

func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Migrate() error {
	return models.AutoMigrate(s.db)
}

func lookupTable(collection string) (table, error) {
	t, ok := tables[collection]
	if !ok {
		return table{}, fmt.Errorf("store: unknown collection %q", collection)
	}
	return t, nil
}

func (s *SQLStore) List(ctx context.Context, collection string, filter Filter) ([]models.Record, error) {
	t, err := lookupTable(collection)
	if err != nil {
		return nil, err
	}

	q := s.db.WithContext(ctx).Order("created_at ASC")
	if len(filter) > 0 {
		cond := make(map[string]interface{}, len(filter))
		for k, v := range filter {
			if !fieldNamePattern.MatchString(k) {
				return nil, fmt.Errorf("store: invalid filter field %q", k)
			}
			cond[k] = v
		}
		q = q.Where(cond)
	}

	rows := t.rows()
	if err := q.Find(rows).Error; err != nil {
		return nil, err
	}

	var out []models.Record
	if err := convert(rows, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Record{}
	}
	return out, nil
}

func (s *SQLStore) Get(ctx context.Context, collection, id string) (models.Record, error) {
	t, err := lookupTable(collection)
	if err != nil {
		return nil, err
	}
	row := t.row()
	if err := s.db.WithContext(ctx).Where("id = ?", id).Take(row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var out models.Record
	if err := convert(row, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SQLStore) Create(ctx context.Context, collection string, rec models.Record) (models.Record, error) {
	t, err := lookupTable(collection)
	if err != nil {
		return nil, err
	}

	input := make(models.Record, len(rec)+1)
	for k, v := range rec {
		input[k] = v
	}
	if id, _ := input["id"].(string); id == "" {
		input["id"] = uuid.NewString()
	}

	row := t.row()
	if err := decodeStrict(input, row); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	var out models.Record
	if err := convert(row, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SQLStore) Update(ctx context.Context, collection, id string, patch models.Record) (models.Record, error) {
	t, err := lookupTable(collection)
	if err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, collection, id); err != nil {
		return nil, err
	}

	values := make(map[string]interface{}, len(patch))
	for k, v := range patch {
		if k == "id" {
			continue
		}
		if !fieldNamePattern.MatchString(k) {
			return nil, fmt.Errorf("store: invalid field %q", k)
		}
		values[k] = v
	}
	if len(values) > 0 {
		if err := s.db.WithContext(ctx).Model(t.row()).Where("id = ?", id).Updates(values).Error; err != nil {
			return nil, err
		}
	}
	return s.Get(ctx, collection, id)
}

func (s *SQLStore) Delete(ctx context.Context, collection, id string) error {
	t, err := lookupTable(collection)
	if err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(t.row())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func convert(in, out any) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// decodeStrict rejects keys that are not columns of the target row.
func decodeStrict(rec models.Record, row any) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(row); err != nil {
		return fmt.Errorf("store: record does not fit table: %w", err)
	}
	return nil
}
