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

// GuestService manages the guest contacts attached to apartments.
type GuestService struct {
	Deps
	apartments *ApartmentService
}

func NewGuestService(d Deps, apartments *ApartmentService) *GuestService {
	return &GuestService{Deps: d, apartments: apartments}
}

func guestID(g models.Guest) string { return g.ID }

func (s *GuestService) List(ctx context.Context, apartmentID string) ([]models.Guest, error) {
	key := cache.NewKey(entityGuests, map[string]string{"apartment_id": apartmentID})
	return cache.Query(ctx, s.Cache, key, func(ctx context.Context) ([]models.Guest, error) {
		filter := store.Filter{}
		if apartmentID != "" {
			filter[s.Schema.Guest.ApartmentID] = apartmentID
		}
		recs, err := s.Store.List(ctx, store.CollectionGuests, filter)
		if err != nil {
			return nil, storeErr(err, "Гости не найдены", "Не удалось загрузить гостей")
		}
		out := make([]models.Guest, 0, len(recs))
		for _, rec := range recs {
			out = append(out, mapper.ToGuest(rec))
		}
		return out, nil
	})
}

func (s *GuestService) Create(ctx context.Context, in models.GuestInput) (models.Guest, error) {
	if res := validation.ValidateAll(in.ValidationValues(), validation.GuestRules); !res.IsValid {
		return models.Guest{}, apperr.Validation(msgInvalidForm, res.Errors)
	}
	if _, err := s.apartments.load(ctx, in.ApartmentID); err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return models.Guest{}, apperr.Validation(msgInvalidForm, map[string]string{"apartment_id": "Квартира не найдена"})
		}
		return models.Guest{}, err
	}

	rec := s.Schema.GuestRecord(in)
	created, err := cache.Mutate(ctx, s.Cache, func(ctx context.Context) (models.Record, error) {
		return s.Store.Create(ctx, store.CollectionGuests, rec)
	})
	if err != nil {
		s.Log.LogMutation(store.CollectionGuests, "create", "", err)
		return models.Guest{}, storeErr(err, "Гость не найден", "Не удалось добавить гостя")
	}

	g := mapper.ToGuest(created)
	s.Log.LogMutation(store.CollectionGuests, "create", g.ID, nil)
	cache.UpdateLists(s.Cache, entityGuests, func(k cache.Key, items []models.Guest) []models.Guest {
		if apt := k.Param("apartment_id"); apt != "" && apt != g.ApartmentID {
			return items
		}
		return cache.Upsert(items, g, guestID)
	})
	s.Cache.Invalidate(entityGuests)
	return g, nil
}

func (s *GuestService) Delete(ctx context.Context, id string) error {
	if _, err := s.Cache.Mutate(ctx, func(ctx context.Context) (any, error) {
		return nil, s.Store.Delete(ctx, store.CollectionGuests, id)
	}); err != nil {
		s.Log.LogMutation(store.CollectionGuests, "delete", id, err)
		return storeErr(err, "Гость не найден", "Не удалось удалить гостя")
	}
	s.Log.LogMutation(store.CollectionGuests, "delete", id, nil)
	cache.UpdateLists(s.Cache, entityGuests, func(_ cache.Key, items []models.Guest) []models.Guest {
		return cache.RemoveByID(items, id, guestID)
	})
	s.Cache.Invalidate(entityGuests)
	return nil
}
