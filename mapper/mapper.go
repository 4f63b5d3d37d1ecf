package mapper

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"checkin-guide/models"

	"gorm.io/datatypes"
)

// timestamp layouts a date field may arrive in; all collapse to YYYY-MM-DD.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.000Z",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05.999999999-07:00",
}

// lookup returns the value of the first key present with a non-nil value.
func lookup(rec models.Record, keys []string) (any, bool) {
	for _, k := range keys {
		if v, ok := rec[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func stringOf(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	case time.Time:
		return t.UTC().Format(time.RFC3339)
	default:
		return fmt.Sprint(t)
	}
}

func str(rec models.Record, keys []string) string {
	v, ok := lookup(rec, keys)
	if !ok {
		return ""
	}
	return stringOf(v)
}

// optional maps missing and blank values to nil.
func optional(rec models.Record, keys []string) *string {
	s := str(rec, keys)
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// jsonMap reads an object field. Backends hand it back decoded or as JSON
// text; anything unreadable is treated as absent.
func jsonMap(rec models.Record, keys []string) datatypes.JSONMap {
	v, ok := lookup(rec, keys)
	if !ok {
		return nil
	}
	switch t := v.(type) {
	case datatypes.JSONMap:
		return t
	case map[string]interface{}:
		return datatypes.JSONMap(t)
	case string, []byte:
		m := datatypes.JSONMap{}
		if err := m.Scan(t); err != nil {
			return nil
		}
		return m
	}
	return nil
}

// date renders timestamps as YYYY-MM-DD and leaves anything else as stored.
func date(rec models.Record, keys []string) string {
	v, ok := lookup(rec, keys)
	if !ok {
		return ""
	}
	if t, isTime := v.(time.Time); isTime {
		return t.Format("2006-01-02")
	}
	s := strings.TrimSpace(stringOf(v))
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return s
}

func integer(rec models.Record, keys []string) int64 {
	v, ok := lookup(rec, keys)
	if !ok {
		return 0
	}
	switch t := v.(type) {
	case float64:
		return int64(t)
	case int64:
		return t
	case int:
		return int64(t)
	default:
		n, _ := strconv.ParseInt(stringOf(v), 10, 64)
		return n
	}
}

func ToApartment(rec models.Record) models.Apartment {
	a := apartmentAliases
	return models.Apartment{
		ID:              str(rec, idKeys),
		Title:           str(rec, a[models.FieldTitle]),
		ApartmentNumber: str(rec, a[models.FieldApartmentNumber]),
		BuildingNumber:  str(rec, a[models.FieldBuildingNumber]),
		HousingComplex:  optional(rec, a[models.FieldHousingComplex]),
		BaseAddress:     str(rec, a[models.FieldBaseAddress]),
		Description:     str(rec, a[models.FieldDescription]),
		WifiName:        optional(rec, a[models.FieldWifiName]),
		WifiPassword:    optional(rec, a[models.FieldWifiPassword]),
		EntranceCode:    optional(rec, a[models.FieldEntranceCode]),
		LockCode:        optional(rec, a[models.FieldLockCode]),
		ManagerName:     optional(rec, a[models.FieldManagerName]),
		ManagerPhone:    optional(rec, a[models.FieldManagerPhone]),
		ManagerEmail:    optional(rec, a[models.FieldManagerEmail]),
		FAQCheckin:      optional(rec, a[models.FieldFAQCheckin]),
		FAQApartment:    optional(rec, a[models.FieldFAQApartment]),
		FAQArea:         optional(rec, a[models.FieldFAQArea]),
		MapEmbedCode:    optional(rec, a[models.FieldMapEmbedCode]),
		CreatedAt:       str(rec, createdKeys),
		UpdatedAt:       str(rec, updatedKeys),
	}
}

func ToBooking(rec models.Record) models.Booking {
	return models.Booking{
		ID:           str(rec, idKeys),
		GuestName:    str(rec, bookingAliases.guestName),
		ApartmentID:  str(rec, apartmentKeys),
		CheckInDate:  date(rec, bookingAliases.checkIn),
		CheckOutDate: date(rec, bookingAliases.checkOut),
		LockCode:     optional(rec, bookingAliases.lockCode),
		Slug:         optional(rec, bookingAliases.slug),
		CreatedAt:    str(rec, createdKeys),
	}
}

func ToGuest(rec models.Record) models.Guest {
	return models.Guest{
		ID:          str(rec, idKeys),
		ApartmentID: str(rec, apartmentKeys),
		Name:        str(rec, guestAliases.name),
		Phone:       optional(rec, guestAliases.phone),
		Email:       optional(rec, guestAliases.email),
		CreatedAt:   str(rec, createdKeys),
	}
}

func ToMediaFile(rec models.Record) models.MediaFile {
	return models.MediaFile{
		ID:          str(rec, idKeys),
		ApartmentID: str(rec, apartmentKeys),
		Category:    str(rec, mediaAliases.category),
		Path:        str(rec, mediaAliases.path),
		URL:         str(rec, mediaAliases.url),
		ContentType: str(rec, mediaAliases.contentType),
		Size:        integer(rec, mediaAliases.size),
		Meta:        jsonMap(rec, mediaAliases.meta),
		CreatedAt:   str(rec, createdKeys),
	}
}

// ApartmentRecord writes the touched fields of p. Values are never nil.
func (s Schema) ApartmentRecord(p models.ApartmentPatch) models.Record {
	rec := models.Record{}
	for f, v := range p.Values() {
		if key, ok := s.Apartment[f]; ok {
			rec[key] = v
		}
	}
	return rec
}

func (s Schema) BookingRecord(p models.BookingPatch) models.Record {
	rec := models.Record{}
	set := func(key string, v *string) {
		if v != nil {
			rec[key] = *v
		}
	}
	set(s.Booking.GuestName, p.GuestName)
	set(s.Booking.ApartmentID, p.ApartmentID)
	set(s.Booking.CheckIn, p.CheckInDate)
	set(s.Booking.CheckOut, p.CheckOutDate)
	set(s.Booking.LockCode, p.LockCode)
	set(s.Booking.Slug, p.Slug)
	return rec
}

func (s Schema) GuestRecord(in models.GuestInput) models.Record {
	rec := models.Record{
		s.Guest.ApartmentID: in.ApartmentID,
		s.Guest.Name:        in.Name,
	}
	if in.Phone != nil {
		rec[s.Guest.Phone] = *in.Phone
	}
	if in.Email != nil {
		rec[s.Guest.Email] = *in.Email
	}
	return rec
}

func (s Schema) MediaRecord(m models.MediaFile) models.Record {
	rec := models.Record{
		s.Media.ApartmentID: m.ApartmentID,
		s.Media.Category:    m.Category,
		s.Media.Path:        m.Path,
		s.Media.URL:         m.URL,
		s.Media.ContentType: m.ContentType,
		s.Media.Size:        m.Size,
	}
	if len(m.Meta) > 0 {
		rec[s.Media.Meta] = map[string]interface{}(m.Meta)
	}
	return rec
}

// ID returns the record id, whatever the scheme.
func ID(rec models.Record) string {
	return str(rec, idKeys)
}
