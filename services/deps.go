package services

import (
	"context"
	"errors"

	"checkin-guide/apperr"
	"checkin-guide/cache"
	"checkin-guide/logger"
	"checkin-guide/mapper"
	"checkin-guide/media"
	"checkin-guide/store"
)

// Deps are shared by every service.
type Deps struct {
	Store  store.Store
	Schema mapper.Schema
	Cache  *cache.Client
	Files  media.Storage
	Log    *logger.Logger
}

// Cache entity names. Lists and single records live under separate names.
const (
	entityApartments = "apartments"
	entityApartment  = "apartment"
	entityBookings   = "bookings"
	entityBooking    = "booking"
	entityGuests     = "guests"
	entityMedia      = "media"
)

const msgInvalidForm = "Проверьте правильность заполнения полей"

func detailKey(entity, id string) cache.Key {
	return cache.NewKey(entity, map[string]string{"id": id})
}

// storeErr turns a raw store failure into the error shown to managers.
func storeErr(err error, notFound, failed string) error {
	if err == nil {
		return nil
	}
	if _, ok := apperr.As(err); ok {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound(notFound, err)
	}
	return apperr.Transport(failed, err)
}

// UserMessage is the text a manager sees for err.
func UserMessage(err error) string {
	if e, ok := apperr.As(err); ok {
		return e.Message
	}
	return "Не удалось выполнить операцию"
}

func fieldValues[F ~string](in map[F]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[string(k)] = v
	}
	return out
}
