// Package guestlink builds personalized guest URLs and resolves the guide
// a guest sees from apartment data plus URL overrides.
package guestlink

import (
	"net/url"
	"strings"
)

// Query parameter names of a guest link.
const (
	ParamGuest    = "guest"
	ParamCheckIn  = "checkin"
	ParamCheckOut = "checkout"
	ParamEntrance = "entrance"
	ParamLock     = "lock"
	ParamWifi     = "wifi"
)

type Params struct {
	ApartmentID  string `json:"apartment_id"`
	GuestName    string `json:"guest_name"`
	CheckIn      string `json:"checkin"`
	CheckOut     string `json:"checkout"`
	EntranceCode string `json:"entrance_code"`
	LockCode     string `json:"lock_code"`
	WifiPassword string `json:"wifi_password"`
}

// Generate returns {base}/apartment/{id} with the non-empty params appended
// in a fixed order. Equal inputs give byte-identical output.
func Generate(baseURL string, p Params) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(baseURL, "/"))
	b.WriteString("/apartment/")
	b.WriteString(url.PathEscape(p.ApartmentID))

	pairs := [...]struct{ key, value string }{
		{ParamGuest, p.GuestName},
		{ParamCheckIn, p.CheckIn},
		{ParamCheckOut, p.CheckOut},
		{ParamEntrance, p.EntranceCode},
		{ParamLock, p.LockCode},
		{ParamWifi, p.WifiPassword},
	}
	sep := "?"
	for _, kv := range pairs {
		v := strings.TrimSpace(kv.value)
		if v == "" {
			continue
		}
		b.WriteString(sep)
		b.WriteString(kv.key)
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(v))
		sep = "&"
	}
	return b.String()
}

// Overrides are the values a guest link carries in its query string.
type Overrides struct {
	GuestName    string
	CheckIn      string
	CheckOut     string
	EntranceCode string
	LockCode     string
	WifiPassword string
}

func ParseOverrides(q url.Values) Overrides {
	get := func(k string) string { return strings.TrimSpace(q.Get(k)) }
	return Overrides{
		GuestName:    get(ParamGuest),
		CheckIn:      get(ParamCheckIn),
		CheckOut:     get(ParamCheckOut),
		EntranceCode: get(ParamEntrance),
		LockCode:     get(ParamLock),
		WifiPassword: get(ParamWifi),
	}
}
