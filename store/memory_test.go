package store

import (
	"context"
	"testing"

	"checkin-guide/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	a, err := s.Create(ctx, CollectionBookings, models.Record{"apartment_id": "a1", "guest_name": "Ann"})
	require.NoError(t, err)
	_, err = s.Create(ctx, CollectionBookings, models.Record{"apartment_id": "a2", "guest_name": "Bob"})
	require.NoError(t, err)

	list, err := s.List(ctx, CollectionBookings, Filter{"apartment_id": "a1"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Ann", list[0]["guest_name"])

	// returned records are copies
	list[0]["guest_name"] = "changed"
	got, err := s.Get(ctx, CollectionBookings, a["id"].(string))
	require.NoError(t, err)
	assert.Equal(t, "Ann", got["guest_name"])

	_, err = s.Create(ctx, CollectionBookings, models.Record{"id": a["id"]})
	assert.Error(t, err)

	require.NoError(t, s.Delete(ctx, CollectionBookings, a["id"].(string)))
	assert.ErrorIs(t, s.Delete(ctx, CollectionBookings, a["id"].(string)), ErrNotFound)

	all, err := s.List(ctx, CollectionBookings, nil)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
