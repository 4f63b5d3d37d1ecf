package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"checkin-guide/apperr"
	"checkin-guide/cache"
	"checkin-guide/mapper"
	"checkin-guide/media"
	"checkin-guide/models"
	"checkin-guide/store"

	"gorm.io/datatypes"
)

// Upload is a file received from a manager.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
	// Source is models.MediaSourceMultipart or models.MediaSourceDataURL.
	Source string
}

func (up Upload) meta() datatypes.JSONMap {
	m := datatypes.JSONMap{}
	if up.Filename != "" {
		m["filename"] = up.Filename
	}
	if up.Source != "" {
		m["source"] = up.Source
	}
	return m
}

// MediaService keeps one photo or video per apartment and category.
type MediaService struct {
	Deps
	apartments *ApartmentService
	maxSize    int64
}

func NewMediaService(d Deps, apartments *ApartmentService, maxSize int64) *MediaService {
	return &MediaService{Deps: d, apartments: apartments, maxSize: maxSize}
}

func mediaID(m models.MediaFile) string { return m.ID }

func (s *MediaService) List(ctx context.Context, apartmentID string) ([]models.MediaFile, error) {
	key := cache.NewKey(entityMedia, map[string]string{"apartment_id": apartmentID})
	return cache.Query(ctx, s.Cache, key, func(ctx context.Context) ([]models.MediaFile, error) {
		return s.list(ctx, apartmentID, "")
	})
}

func (s *MediaService) list(ctx context.Context, apartmentID, category string) ([]models.MediaFile, error) {
	filter := store.Filter{s.Schema.Media.ApartmentID: apartmentID}
	if category != "" {
		filter[s.Schema.Media.Category] = category
	}
	recs, err := s.Store.List(ctx, store.CollectionMedia, filter)
	if err != nil {
		return nil, storeErr(err, "Файлы не найдены", "Не удалось загрузить файлы")
	}
	out := make([]models.MediaFile, 0, len(recs))
	for _, rec := range recs {
		out = append(out, mapper.ToMediaFile(rec))
	}
	return out, nil
}

func (s *MediaService) checkUpload(category string, up Upload) error {
	if !models.IsMediaCategory(category) {
		return apperr.Validation("Неизвестная категория файла", map[string]string{"category": "Неизвестная категория"})
	}
	if up.Size <= 0 {
		return apperr.Validation("Файл пустой", map[string]string{"file": "Файл пустой"})
	}
	if s.maxSize > 0 && up.Size > s.maxSize {
		msg := fmt.Sprintf("Максимальный размер файла %d МБ", s.maxSize/(1<<20))
		return apperr.Validation(msg, map[string]string{"file": msg})
	}
	if !strings.HasPrefix(up.ContentType, "image/") && !strings.HasPrefix(up.ContentType, "video/") {
		return apperr.Validation("Допустимы только фото и видео", map[string]string{"file": "Неверный тип файла"})
	}
	return nil
}

// Upload stores the file, records it and then removes the file it replaces.
// A failed record write takes the stored object back out.
func (s *MediaService) Upload(ctx context.Context, apartmentID, category string, up Upload) (models.MediaFile, error) {
	if err := s.checkUpload(category, up); err != nil {
		return models.MediaFile{}, err
	}
	if _, err := s.apartments.load(ctx, apartmentID); err != nil {
		return models.MediaFile{}, err
	}
	previous, err := s.list(ctx, apartmentID, category)
	if err != nil {
		return models.MediaFile{}, err
	}

	key := media.ObjectKey(apartmentID, category, up.Filename, up.ContentType)
	url, err := s.Files.Put(ctx, key, up.Body, up.Size, up.ContentType)
	if err != nil {
		s.Log.LogMutation(store.CollectionMedia, "upload", apartmentID, err)
		return models.MediaFile{}, apperr.Transport("Не удалось загрузить файл", err)
	}

	rec := s.Schema.MediaRecord(models.MediaFile{
		ApartmentID: apartmentID,
		Category:    category,
		Path:        key,
		URL:         url,
		ContentType: up.ContentType,
		Size:        up.Size,
		Meta:        up.meta(),
	})
	created, err := cache.Mutate(ctx, s.Cache, func(ctx context.Context) (models.Record, error) {
		return s.Store.Create(ctx, store.CollectionMedia, rec)
	})
	if err != nil {
		s.Log.LogMutation(store.CollectionMedia, "create", apartmentID, err)
		if delErr := s.Files.Delete(context.Background(), key); delErr != nil {
			s.Log.WithFields(map[string]interface{}{"key": key}).WithError(delErr).Error("media: orphaned object")
		}
		return models.MediaFile{}, storeErr(err, "Файл не найден", "Не удалось сохранить файл")
	}
	file := mapper.ToMediaFile(created)
	s.Log.LogMutation(store.CollectionMedia, "create", file.ID, nil)

	for _, old := range previous {
		if err := s.remove(ctx, old); err != nil {
			s.Log.LogMutation(store.CollectionMedia, "replace", old.ID, err)
		}
	}

	cache.UpdateLists(s.Cache, entityMedia, func(k cache.Key, items []models.MediaFile) []models.MediaFile {
		if k.Param("apartment_id") != apartmentID {
			return items
		}
		for _, old := range previous {
			items = cache.RemoveByID(items, old.ID, mediaID)
		}
		return cache.Upsert(items, file, mediaID)
	})
	s.Cache.Invalidate(entityMedia)
	return file, nil
}

// UploadDataURL accepts a base64 data URL instead of a multipart file.
func (s *MediaService) UploadDataURL(ctx context.Context, apartmentID, category, filename, dataURL string) (models.MediaFile, error) {
	data, contentType, err := media.DecodeDataURL(dataURL)
	if err != nil {
		return models.MediaFile{}, apperr.Validation("Не удалось прочитать файл", map[string]string{"file": "Неверный формат файла"})
	}
	return s.Upload(ctx, apartmentID, category, Upload{
		Filename:    filename,
		ContentType: contentType,
		Size:        int64(len(data)),
		Body:        bytes.NewReader(data),
		Source:      models.MediaSourceDataURL,
	})
}

func (s *MediaService) remove(ctx context.Context, file models.MediaFile) error {
	if file.Path != "" {
		if err := s.Files.Delete(ctx, file.Path); err != nil {
			return err
		}
	}
	_, err := s.Cache.Mutate(ctx, func(ctx context.Context) (any, error) {
		return nil, s.Store.Delete(ctx, store.CollectionMedia, file.ID)
	})
	return err
}

func (s *MediaService) Delete(ctx context.Context, id string) error {
	rec, err := s.Store.Get(ctx, store.CollectionMedia, id)
	if err != nil {
		return storeErr(err, "Файл не найден", "Не удалось загрузить файл")
	}
	if err := s.remove(ctx, mapper.ToMediaFile(rec)); err != nil {
		s.Log.LogMutation(store.CollectionMedia, "delete", id, err)
		return storeErr(err, "Файл не найден", "Не удалось удалить файл")
	}
	s.Log.LogMutation(store.CollectionMedia, "delete", id, nil)
	cache.UpdateLists(s.Cache, entityMedia, func(_ cache.Key, items []models.MediaFile) []models.MediaFile {
		return cache.RemoveByID(items, id, mediaID)
	})
	s.Cache.Invalidate(entityMedia)
	return nil
}
