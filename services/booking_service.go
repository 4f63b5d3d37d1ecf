package services

import (
	"context"

	"checkin-guide/apperr"
	"checkin-guide/cache"
	"checkin-guide/mapper"
	"checkin-guide/models"
	"checkin-guide/store"
	"checkin-guide/validation"
)

type BookingService struct {
	Deps
	apartments *ApartmentService
}

func NewBookingService(d Deps, apartments *ApartmentService) *BookingService {
	return &BookingService{Deps: d, apartments: apartments}
}

func bookingID(b models.Booking) string { return b.ID }

// List returns bookings, all of them when apartmentID is empty.
func (s *BookingService) List(ctx context.Context, apartmentID string) ([]models.Booking, error) {
	key := cache.NewKey(entityBookings, map[string]string{"apartment_id": apartmentID})
	return cache.Query(ctx, s.Cache, key, func(ctx context.Context) ([]models.Booking, error) {
		filter := store.Filter{}
		if apartmentID != "" {
			filter[s.Schema.Booking.ApartmentID] = apartmentID
		}
		recs, err := s.Store.List(ctx, store.CollectionBookings, filter)
		if err != nil {
			return nil, storeErr(err, "Бронирования не найдены", "Не удалось загрузить бронирования")
		}
		out := make([]models.Booking, 0, len(recs))
		for _, rec := range recs {
			out = append(out, mapper.ToBooking(rec))
		}
		return out, nil
	})
}

func (s *BookingService) Get(ctx context.Context, id string) (models.Booking, error) {
	return cache.Query(ctx, s.Cache, detailKey(entityBooking, id), func(ctx context.Context) (models.Booking, error) {
		rec, err := s.Store.Get(ctx, store.CollectionBookings, id)
		if err != nil {
			return models.Booking{}, storeErr(err, "Бронирование не найдено", "Не удалось загрузить бронирование")
		}
		return mapper.ToBooking(rec), nil
	})
}

// check validates the merged booking and that its apartment exists.
func (s *BookingService) check(ctx context.Context, b models.Booking) error {
	if res := validation.ValidateAll(b.ValidationValues(), validation.BookingRules); !res.IsValid {
		return apperr.Validation(msgInvalidForm, res.Errors)
	}
	if _, err := s.apartments.load(ctx, b.ApartmentID); err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return apperr.Validation(msgInvalidForm, map[string]string{"apartment_id": "Квартира не найдена"})
		}
		return err
	}
	return nil
}

func (s *BookingService) Create(ctx context.Context, patch models.BookingPatch) (models.Booking, error) {
	if err := s.check(ctx, patch.Apply(models.Booking{})); err != nil {
		return models.Booking{}, err
	}

	rec := s.Schema.BookingRecord(patch)
	created, err := cache.Mutate(ctx, s.Cache, func(ctx context.Context) (models.Record, error) {
		return s.Store.Create(ctx, store.CollectionBookings, rec)
	})
	if err != nil {
		s.Log.LogMutation(store.CollectionBookings, "create", "", err)
		return models.Booking{}, storeErr(err, "Бронирование не найдено", "Не удалось создать бронирование")
	}

	b := mapper.ToBooking(created)
	s.Log.LogMutation(store.CollectionBookings, "create", b.ID, nil)
	s.remember(b)
	return b, nil
}

func (s *BookingService) Update(ctx context.Context, id string, patch models.BookingPatch) (models.Booking, error) {
	if patch.IsEmpty() {
		return models.Booking{}, apperr.Validation("Нет изменений для сохранения", nil)
	}
	rec, err := s.Store.Get(ctx, store.CollectionBookings, id)
	if err != nil {
		return models.Booking{}, storeErr(err, "Бронирование не найдено", "Не удалось загрузить бронирование")
	}
	if err := s.check(ctx, patch.Apply(mapper.ToBooking(rec))); err != nil {
		return models.Booking{}, err
	}

	out := s.Schema.BookingRecord(patch)
	updated, err := cache.Mutate(ctx, s.Cache, func(ctx context.Context) (models.Record, error) {
		return s.Store.Update(ctx, store.CollectionBookings, id, out)
	})
	if err != nil {
		s.Log.LogMutation(store.CollectionBookings, "update", id, err)
		return models.Booking{}, storeErr(err, "Бронирование не найдено", "Не удалось сохранить бронирование")
	}

	b := mapper.ToBooking(updated)
	s.Log.LogMutation(store.CollectionBookings, "update", id, nil)
	s.remember(b)
	return b, nil
}

func (s *BookingService) remember(b models.Booking) {
	cache.UpdateLists(s.Cache, entityBookings, func(k cache.Key, items []models.Booking) []models.Booking {
		if apt := k.Param("apartment_id"); apt != "" && apt != b.ApartmentID {
			return cache.RemoveByID(items, b.ID, bookingID)
		}
		return cache.Upsert(items, b, bookingID)
	})
	s.Cache.SetQueryData(detailKey(entityBooking, b.ID), b)
	s.Cache.Invalidate(entityBookings)
}

func (s *BookingService) Delete(ctx context.Context, id string) error {
	if _, err := s.Cache.Mutate(ctx, func(ctx context.Context) (any, error) {
		return nil, s.Store.Delete(ctx, store.CollectionBookings, id)
	}); err != nil {
		s.Log.LogMutation(store.CollectionBookings, "delete", id, err)
		return storeErr(err, "Бронирование не найдено", "Не удалось удалить бронирование")
	}
	s.Log.LogMutation(store.CollectionBookings, "delete", id, nil)

	cache.UpdateLists(s.Cache, entityBookings, func(_ cache.Key, items []models.Booking) []models.Booking {
		return cache.RemoveByID(items, id, bookingID)
	})
	s.Cache.Remove(detailKey(entityBooking, id))
	s.Cache.Invalidate(entityBookings)
	return nil
}
