package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkin-guide/apperr"
	"checkin-guide/models"
)

func bookingPatch(apartmentID, guest, in, out string) models.BookingPatch {
	return models.BookingPatch{
		GuestName:    models.StringPtr(guest),
		ApartmentID:  models.StringPtr(apartmentID),
		CheckInDate:  models.StringPtr(in),
		CheckOutDate: models.StringPtr(out),
	}
}

func TestBookingCreateRequiresExistingApartment(t *testing.T) {
	env := newTestEnv(t, nil)
	_, err := env.bookings.Create(context.Background(), bookingPatch("ghost", "Анна", "2024-05-01", "2024-05-03"))
	require.Error(t, err)
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindValidation, e.Kind)
	assert.Equal(t, "Квартира не найдена", e.Fields["apartment_id"])
}

func TestBookingCreateChecksDates(t *testing.T) {
	env := newTestEnv(t, nil)
	apt := env.createApartment(t, "A", "1", nil)

	_, err := env.bookings.Create(context.Background(), bookingPatch(apt.ID, "Анна", "2024-05-03", "2024-05-01"))
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, "Дата выезда должна быть позже даты заезда", e.Fields["checkout_date"])
}

func TestBookingListPatchedPerApartment(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	a := env.createApartment(t, "A", "1", nil)
	b := env.createApartment(t, "B", "2", nil)

	_, err := env.bookings.List(ctx, a.ID)
	require.NoError(t, err)
	_, err = env.bookings.List(ctx, b.ID)
	require.NoError(t, err)

	created, err := env.bookings.Create(ctx, bookingPatch(a.ID, "Анна", "2024-05-01", "2024-05-03"))
	require.NoError(t, err)

	listA, err := env.bookings.List(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, listA, 1)
	assert.Equal(t, created.ID, listA[0].ID)

	listB, err := env.bookings.List(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, listB)

	moved, err := env.bookings.Update(ctx, created.ID, models.BookingPatch{ApartmentID: models.StringPtr(b.ID)})
	require.NoError(t, err)
	assert.Equal(t, "Анна", moved.GuestName)

	listA, _ = env.bookings.List(ctx, a.ID)
	listB, _ = env.bookings.List(ctx, b.ID)
	assert.Empty(t, listA)
	assert.Len(t, listB, 1)
}

func TestBookingDelete(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	apt := env.createApartment(t, "A", "1", nil)
	b, err := env.bookings.Create(ctx, bookingPatch(apt.ID, "Анна", "2024-05-01", "2024-05-03"))
	require.NoError(t, err)

	require.NoError(t, env.bookings.Delete(ctx, b.ID))
	_, err = env.bookings.Get(ctx, b.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(env.bookings.Delete(ctx, b.ID)))
}

func TestGuestCreate(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	apt := env.createApartment(t, "A", "1", nil)

	_, err := env.guests.Create(ctx, models.GuestInput{ApartmentID: apt.ID, Name: "Анна", Email: models.StringPtr("not-an-email")})
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, "Неверный формат email", e.Fields["email"])

	g, err := env.guests.Create(ctx, models.GuestInput{ApartmentID: apt.ID, Name: "Анна", Phone: models.StringPtr("+7 900 123-45-67")})
	require.NoError(t, err)
	assert.Equal(t, "+7 900 123-45-67", models.Deref(g.Phone))

	list, err := env.guests.List(ctx, apt.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, env.guests.Delete(ctx, g.ID))
	list, err = env.guests.List(ctx, apt.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
