package services

import (
	"context"
	"sort"

	"checkin-guide/apperr"
	"checkin-guide/cache"
	"checkin-guide/mapper"
	"checkin-guide/models"
	"checkin-guide/store"
	"checkin-guide/validation"
)

type ApartmentService struct {
	Deps
}

func NewApartmentService(d Deps) *ApartmentService {
	return &ApartmentService{Deps: d}
}

func apartmentID(a models.Apartment) string { return a.ID }

// List returns apartments, optionally only those of one housing complex.
func (s *ApartmentService) List(ctx context.Context, housingComplex string) ([]models.Apartment, error) {
	key := cache.NewKey(entityApartments, map[string]string{"housing_complex": housingComplex})
	return cache.Query(ctx, s.Cache, key, func(ctx context.Context) ([]models.Apartment, error) {
		filter := store.Filter{}
		if housingComplex != "" {
			filter[s.Schema.Apartment[models.FieldHousingComplex]] = housingComplex
		}
		recs, err := s.Store.List(ctx, store.CollectionApartments, filter)
		if err != nil {
			return nil, storeErr(err, "Квартиры не найдены", "Не удалось загрузить квартиры")
		}
		out := make([]models.Apartment, 0, len(recs))
		for _, rec := range recs {
			out = append(out, mapper.ToApartment(rec))
		}
		return out, nil
	})
}

// HousingComplexes returns the distinct complex names, sorted.
func (s *ApartmentService) HousingComplexes(ctx context.Context) ([]string, error) {
	all, err := s.List(ctx, "")
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	names := []string{}
	for _, a := range all {
		name := models.Deref(a.HousingComplex)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *ApartmentService) Get(ctx context.Context, id string) (models.Apartment, error) {
	return cache.Query(ctx, s.Cache, detailKey(entityApartment, id), func(ctx context.Context) (models.Apartment, error) {
		return s.load(ctx, id)
	})
}

// load reads one apartment from the store, bypassing the cache.
func (s *ApartmentService) load(ctx context.Context, id string) (models.Apartment, error) {
	rec, err := s.Store.Get(ctx, store.CollectionApartments, id)
	if err != nil {
		return models.Apartment{}, storeErr(err, "Квартира не найдена", "Не удалось загрузить квартиру")
	}
	return mapper.ToApartment(rec), nil
}

func (s *ApartmentService) Create(ctx context.Context, patch models.ApartmentPatch) (models.Apartment, error) {
	if res := validation.ValidateAll(fieldValues(patch.Values()), validation.ApartmentRules); !res.IsValid {
		return models.Apartment{}, apperr.Validation(msgInvalidForm, res.Errors)
	}

	rec := s.Schema.ApartmentRecord(patch)
	created, err := cache.Mutate(ctx, s.Cache, func(ctx context.Context) (models.Record, error) {
		return s.Store.Create(ctx, store.CollectionApartments, rec)
	})
	if err != nil {
		s.Log.LogMutation(store.CollectionApartments, "create", "", err)
		return models.Apartment{}, storeErr(err, "Квартира не найдена", "Не удалось создать квартиру")
	}

	apt := mapper.ToApartment(created)
	s.Log.LogMutation(store.CollectionApartments, "create", apt.ID, nil)
	s.remember(apt)
	return apt, nil
}

func (s *ApartmentService) Update(ctx context.Context, id string, patch models.ApartmentPatch) (models.Apartment, error) {
	if patch.IsEmpty() {
		return models.Apartment{}, apperr.Validation("Нет изменений для сохранения", nil)
	}
	if res := validation.ValidatePartial(fieldValues(patch.Values()), validation.ApartmentRules); !res.IsValid {
		return models.Apartment{}, apperr.Validation(msgInvalidForm, res.Errors)
	}

	rec := s.Schema.ApartmentRecord(patch)
	updated, err := cache.Mutate(ctx, s.Cache, func(ctx context.Context) (models.Record, error) {
		return s.Store.Update(ctx, store.CollectionApartments, id, rec)
	})
	if err != nil {
		s.Log.LogMutation(store.CollectionApartments, "update", id, err)
		return models.Apartment{}, storeErr(err, "Квартира не найдена", "Не удалось сохранить квартиру")
	}

	apt := mapper.ToApartment(updated)
	s.Log.LogMutation(store.CollectionApartments, "update", id, nil)
	s.remember(apt)
	return apt, nil
}

// remember patches cached lists and the detail entry after a write.
func (s *ApartmentService) remember(apt models.Apartment) {
	cache.UpdateLists(s.Cache, entityApartments, func(k cache.Key, items []models.Apartment) []models.Apartment {
		if hc := k.Param("housing_complex"); hc != "" && hc != models.Deref(apt.HousingComplex) {
			return cache.RemoveByID(items, apt.ID, apartmentID)
		}
		return cache.Upsert(items, apt, apartmentID)
	})
	s.Cache.SetQueryData(detailKey(entityApartment, apt.ID), apt)
	s.Cache.Invalidate(entityApartments)
}

// CascadeReport counts what a delete removed along with the apartment.
type CascadeReport struct {
	Bookings int `json:"bookings"`
	Guests   int `json:"guests"`
	Media    int `json:"media"`
}

// Delete removes the apartment and everything that references it. Any
// failure on a dependent stops before the apartment itself is touched.
func (s *ApartmentService) Delete(ctx context.Context, id string) (*CascadeReport, error) {
	if _, err := s.load(ctx, id); err != nil {
		return nil, err
	}
	report := &CascadeReport{}

	deleteAll := func(collection, refKey string, forget func(depID string)) (int, error) {
		recs, err := s.Store.List(ctx, collection, store.Filter{refKey: id})
		if err != nil {
			return 0, err
		}
		for _, rec := range recs {
			depID := mapper.ID(rec)
			if collection == store.CollectionMedia && s.Files != nil {
				file := mapper.ToMediaFile(rec)
				if err := s.Files.Delete(ctx, file.Path); err != nil {
					return 0, err
				}
			}
			if _, err := s.Cache.Mutate(ctx, func(ctx context.Context) (any, error) {
				return nil, s.Store.Delete(ctx, collection, depID)
			}); err != nil {
				return 0, err
			}
			forget(depID)
		}
		return len(recs), nil
	}

	var err error
	if report.Bookings, err = deleteAll(store.CollectionBookings, s.Schema.Booking.ApartmentID, s.forgetBooking); err != nil {
		s.Log.LogMutation(store.CollectionBookings, "cascade_delete", id, err)
		return nil, apperr.Precondition("Не удалось удалить бронирования квартиры", err)
	}
	if report.Guests, err = deleteAll(store.CollectionGuests, s.Schema.Guest.ApartmentID, s.forgetGuest); err != nil {
		s.Log.LogMutation(store.CollectionGuests, "cascade_delete", id, err)
		return nil, apperr.Precondition("Не удалось удалить гостей квартиры", err)
	}
	if report.Media, err = deleteAll(store.CollectionMedia, s.Schema.Media.ApartmentID, s.forgetMedia); err != nil {
		s.Log.LogMutation(store.CollectionMedia, "cascade_delete", id, err)
		return nil, apperr.Precondition("Не удалось удалить медиафайлы квартиры", err)
	}

	if _, err := s.Cache.Mutate(ctx, func(ctx context.Context) (any, error) {
		return nil, s.Store.Delete(ctx, store.CollectionApartments, id)
	}); err != nil {
		s.Log.LogMutation(store.CollectionApartments, "delete", id, err)
		return nil, storeErr(err, "Квартира не найдена", "Не удалось удалить квартиру")
	}
	s.Log.LogMutation(store.CollectionApartments, "delete", id, nil)

	cache.UpdateLists(s.Cache, entityApartments, func(_ cache.Key, items []models.Apartment) []models.Apartment {
		return cache.RemoveByID(items, id, apartmentID)
	})
	s.Cache.Remove(detailKey(entityApartment, id))
	for _, entity := range []string{entityApartments, entityBookings, entityBooking, entityGuests, entityMedia} {
		s.Cache.Invalidate(entity)
	}
	return report, nil
}

func (s *ApartmentService) forgetBooking(id string) {
	cache.UpdateLists(s.Cache, entityBookings, func(_ cache.Key, items []models.Booking) []models.Booking {
		return cache.RemoveByID(items, id, bookingID)
	})
	s.Cache.Remove(detailKey(entityBooking, id))
}

func (s *ApartmentService) forgetGuest(id string) {
	cache.UpdateLists(s.Cache, entityGuests, func(_ cache.Key, items []models.Guest) []models.Guest {
		return cache.RemoveByID(items, id, guestID)
	})
}

func (s *ApartmentService) forgetMedia(id string) {
	cache.UpdateLists(s.Cache, entityMedia, func(_ cache.Key, items []models.MediaFile) []models.MediaFile {
		return cache.RemoveByID(items, id, mediaID)
	})
}
