package guestlink

import (
	"strings"

	"checkin-guide/models"
	"checkin-guide/utils"
)

const (
	PlaceholderCode  = "Код не указан"
	PlaceholderDate  = "Дата не указана"
	PlaceholderGuest = "Гость"

	DefaultCheckInTime  = "15:00"
	DefaultCheckOutTime = "12:00"
)

type FAQ struct {
	CheckIn   string `json:"checkin,omitempty"`
	Apartment string `json:"apartment,omitempty"`
	Area      string `json:"area,omitempty"`
}

// Contact is nil on the guide when the apartment has no manager data.
type Contact struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

type MediaItem struct {
	Category    string `json:"category"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
}

// Guide is what a guest sees for one apartment.
type Guide struct {
	ApartmentID     string      `json:"apartment_id"`
	Title           string      `json:"title"`
	ApartmentNumber string      `json:"apartment_number"`
	BuildingNumber  string      `json:"building_number"`
	HousingComplex  string      `json:"housing_complex,omitempty"`
	Address         string      `json:"address"`
	Description     string      `json:"description,omitempty"`
	GuestName       string      `json:"guest_name"`
	CheckIn         string      `json:"checkin"`
	CheckOut        string      `json:"checkout"`
	EntranceCode    string      `json:"entrance_code"`
	LockCode        string      `json:"lock_code"`
	WifiName        string      `json:"wifi_name,omitempty"`
	WifiPassword    string      `json:"wifi_password"`
	Contact         *Contact    `json:"contact,omitempty"`
	FAQ             FAQ         `json:"faq"`
	MapEmbed        string      `json:"map_embed,omitempty"`
	Media           []MediaItem `json:"media"`
}

// pick prefers a non-empty override, then the stored value, then the
// placeholder.
func pick(override string, stored *string, placeholder string) string {
	if v := strings.TrimSpace(override); v != "" {
		return v
	}
	if v := strings.TrimSpace(models.Deref(stored)); v != "" {
		return v
	}
	return placeholder
}

// Resolve merges apartment data with link overrides. The apartment is
// not modified.
func Resolve(apt models.Apartment, o Overrides) Guide {
	g := Guide{
		ApartmentID:     apt.ID,
		Title:           apt.Title,
		ApartmentNumber: apt.ApartmentNumber,
		BuildingNumber:  apt.BuildingNumber,
		HousingComplex:  models.Deref(apt.HousingComplex),
		Address:         apt.BaseAddress,
		Description:     apt.Description,
		GuestName:       pick(o.GuestName, nil, PlaceholderGuest),
		CheckIn:         PlaceholderDate,
		CheckOut:        PlaceholderDate,
		EntranceCode:    pick(o.EntranceCode, apt.EntranceCode, PlaceholderCode),
		LockCode:        pick(o.LockCode, apt.LockCode, PlaceholderCode),
		WifiName:        models.Deref(apt.WifiName),
		WifiPassword:    pick(o.WifiPassword, apt.WifiPassword, PlaceholderCode),
		FAQ: FAQ{
			CheckIn:   models.Deref(apt.FAQCheckin),
			Apartment: models.Deref(apt.FAQApartment),
			Area:      models.Deref(apt.FAQArea),
		},
		MapEmbed: models.Deref(apt.MapEmbedCode),
		Media:    []MediaItem{},
	}
	if o.CheckIn != "" {
		g.CheckIn = FormatCheckIn(o.CheckIn)
	}
	if o.CheckOut != "" {
		g.CheckOut = FormatCheckOut(o.CheckOut)
	}
	if apt.ManagerName != nil || apt.ManagerPhone != nil || apt.ManagerEmail != nil {
		g.Contact = &Contact{
			Name:  models.Deref(apt.ManagerName),
			Phone: models.Deref(apt.ManagerPhone),
			Email: models.Deref(apt.ManagerEmail),
		}
	}
	return g
}

// FormatCheckIn shows a bare date with the default check-in time. A value
// that already has a time is returned unchanged.
func FormatCheckIn(raw string) string {
	return withDefaultTime(raw, DefaultCheckInTime)
}

func FormatCheckOut(raw string) string {
	return withDefaultTime(raw, DefaultCheckOutTime)
}

func withDefaultTime(raw, hhmm string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || utils.HasTime(raw) {
		return raw
	}
	return raw + " " + hhmm
}

// ToDisplayDate turns YYYY-MM-DD into DD.MM.YYYY. Other input is returned
// as is.
func ToDisplayDate(iso string) string {
	t, ok := utils.ParseDate(iso)
	if !ok {
		return iso
	}
	if utils.HasTime(iso) {
		return t.Format("02.01.2006 15:04")
	}
	return t.Format("02.01.2006")
}
