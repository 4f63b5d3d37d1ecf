package models

import "gorm.io/datatypes"

// Media categories shown on the guest guide.
const (
	MediaPhotoEntrance  = "photo_entrance"
	MediaVideoEntrance  = "video_entrance"
	MediaPhotoBuilding  = "photo_building"
	MediaVideoApartment = "video_apartment"
	MediaPhotoLock      = "photo_lock"
	MediaPhotoParking   = "photo_parking"
)

var MediaCategories = []string{
	MediaPhotoEntrance,
	MediaVideoEntrance,
	MediaPhotoBuilding,
	MediaVideoApartment,
	MediaPhotoLock,
	MediaPhotoParking,
}

func IsMediaCategory(c string) bool {
	for _, known := range MediaCategories {
		if known == c {
			return true
		}
	}
	return false
}

// MediaFile is an uploaded photo or video. Path is the storage key.
type MediaFile struct {
	ID          string `json:"id"`
	ApartmentID string `json:"apartment_id"`
	Category    string `json:"category"`
	Path        string `json:"path"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`

	// Meta holds upload details: the original filename and the source.
	Meta      datatypes.JSONMap `json:"meta,omitempty"`
	CreatedAt string            `json:"created_at,omitempty"`
}

// Upload sources recorded in MediaFile.Meta.
const (
	MediaSourceMultipart = "multipart"
	MediaSourceDataURL   = "data_url"
)
