package models

// Booking ties a guest stay to an apartment. Dates are kept as entered,
// usually YYYY-MM-DD, optionally with a time.
type Booking struct {
	ID           string  `json:"id"`
	GuestName    string  `json:"guest_name"`
	ApartmentID  string  `json:"apartment_id"`
	CheckInDate  string  `json:"checkin_date"`
	CheckOutDate string  `json:"checkout_date"`
	LockCode     *string `json:"lock_code"`
	Slug         *string `json:"slug"`
	CreatedAt    string  `json:"created_at,omitempty"`
}

type BookingPatch struct {
	GuestName    *string `json:"guest_name,omitempty"`
	ApartmentID  *string `json:"apartment_id,omitempty"`
	CheckInDate  *string `json:"checkin_date,omitempty"`
	CheckOutDate *string `json:"checkout_date,omitempty"`
	LockCode     *string `json:"lock_code,omitempty"`
	Slug         *string `json:"slug,omitempty"`
}

// Apply returns b with the touched fields of p.
func (p BookingPatch) Apply(b Booking) Booking {
	if p.GuestName != nil {
		b.GuestName = *p.GuestName
	}
	if p.ApartmentID != nil {
		b.ApartmentID = *p.ApartmentID
	}
	if p.CheckInDate != nil {
		b.CheckInDate = *p.CheckInDate
	}
	if p.CheckOutDate != nil {
		b.CheckOutDate = *p.CheckOutDate
	}
	if p.LockCode != nil {
		b.LockCode = p.LockCode
	}
	if p.Slug != nil {
		b.Slug = p.Slug
	}
	return b
}

func (p BookingPatch) IsEmpty() bool {
	return p.GuestName == nil && p.ApartmentID == nil && p.CheckInDate == nil &&
		p.CheckOutDate == nil && p.LockCode == nil && p.Slug == nil
}

// ValidationValues flattens b for the validation rules.
func (b Booking) ValidationValues() map[string]string {
	return map[string]string{
		"guest_name":    b.GuestName,
		"apartment_id":  b.ApartmentID,
		"checkin_date":  b.CheckInDate,
		"checkout_date": b.CheckOutDate,
		"lock_code":     Deref(b.LockCode),
	}
}
