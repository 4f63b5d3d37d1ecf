package models

// Apartment is a rental unit and everything a guest needs to enter it.
// Pointer fields are optional; nil means "not configured".
type Apartment struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	ApartmentNumber string  `json:"apartment_number"`
	BuildingNumber  string  `json:"building_number"`
	HousingComplex  *string `json:"housing_complex"`
	BaseAddress     string  `json:"base_address"`
	Description     string  `json:"description"`
	WifiName        *string `json:"wifi_name"`
	WifiPassword    *string `json:"wifi_password"`
	EntranceCode    *string `json:"entrance_code"`
	LockCode        *string `json:"lock_code"`
	ManagerName     *string `json:"manager_name"`
	ManagerPhone    *string `json:"manager_phone"`
	ManagerEmail    *string `json:"manager_email"`
	FAQCheckin      *string `json:"faq_checkin"`
	FAQApartment    *string `json:"faq_apartment"`
	FAQArea         *string `json:"faq_area"`
	MapEmbedCode    *string `json:"map_embed_code"`
	CreatedAt       string  `json:"created_at,omitempty"`
	UpdatedAt       string  `json:"updated_at,omitempty"`
}

// ApartmentPatch is a partial apartment. Nil fields are left untouched.
type ApartmentPatch struct {
	Title           *string `json:"title,omitempty"`
	ApartmentNumber *string `json:"apartment_number,omitempty"`
	BuildingNumber  *string `json:"building_number,omitempty"`
	HousingComplex  *string `json:"housing_complex,omitempty"`
	BaseAddress     *string `json:"base_address,omitempty"`
	Description     *string `json:"description,omitempty"`
	WifiName        *string `json:"wifi_name,omitempty"`
	WifiPassword    *string `json:"wifi_password,omitempty"`
	EntranceCode    *string `json:"entrance_code,omitempty"`
	LockCode        *string `json:"lock_code,omitempty"`
	ManagerName     *string `json:"manager_name,omitempty"`
	ManagerPhone    *string `json:"manager_phone,omitempty"`
	ManagerEmail    *string `json:"manager_email,omitempty"`
	FAQCheckin      *string `json:"faq_checkin,omitempty"`
	FAQApartment    *string `json:"faq_apartment,omitempty"`
	FAQArea         *string `json:"faq_area,omitempty"`
	MapEmbedCode    *string `json:"map_embed_code,omitempty"`
}

type apartmentField struct {
	name  Field
	value func(a *Apartment) *string
	patch func(p *ApartmentPatch) **string
}

// apartmentFields lists every writable setting in display order.
var apartmentFields = []apartmentField{
	{FieldTitle, func(a *Apartment) *string { return &a.Title }, func(p *ApartmentPatch) **string { return &p.Title }},
	{FieldApartmentNumber, func(a *Apartment) *string { return &a.ApartmentNumber }, func(p *ApartmentPatch) **string { return &p.ApartmentNumber }},
	{FieldBuildingNumber, func(a *Apartment) *string { return &a.BuildingNumber }, func(p *ApartmentPatch) **string { return &p.BuildingNumber }},
	{FieldHousingComplex, func(a *Apartment) *string { return a.HousingComplex }, func(p *ApartmentPatch) **string { return &p.HousingComplex }},
	{FieldBaseAddress, func(a *Apartment) *string { return &a.BaseAddress }, func(p *ApartmentPatch) **string { return &p.BaseAddress }},
	{FieldDescription, func(a *Apartment) *string { return &a.Description }, func(p *ApartmentPatch) **string { return &p.Description }},
	{FieldWifiName, func(a *Apartment) *string { return a.WifiName }, func(p *ApartmentPatch) **string { return &p.WifiName }},
	{FieldWifiPassword, func(a *Apartment) *string { return a.WifiPassword }, func(p *ApartmentPatch) **string { return &p.WifiPassword }},
	{FieldEntranceCode, func(a *Apartment) *string { return a.EntranceCode }, func(p *ApartmentPatch) **string { return &p.EntranceCode }},
	{FieldLockCode, func(a *Apartment) *string { return a.LockCode }, func(p *ApartmentPatch) **string { return &p.LockCode }},
	{FieldManagerName, func(a *Apartment) *string { return a.ManagerName }, func(p *ApartmentPatch) **string { return &p.ManagerName }},
	{FieldManagerPhone, func(a *Apartment) *string { return a.ManagerPhone }, func(p *ApartmentPatch) **string { return &p.ManagerPhone }},
	{FieldManagerEmail, func(a *Apartment) *string { return a.ManagerEmail }, func(p *ApartmentPatch) **string { return &p.ManagerEmail }},
	{FieldFAQCheckin, func(a *Apartment) *string { return a.FAQCheckin }, func(p *ApartmentPatch) **string { return &p.FAQCheckin }},
	{FieldFAQApartment, func(a *Apartment) *string { return a.FAQApartment }, func(p *ApartmentPatch) **string { return &p.FAQApartment }},
	{FieldFAQArea, func(a *Apartment) *string { return a.FAQArea }, func(p *ApartmentPatch) **string { return &p.FAQArea }},
	{FieldMapEmbedCode, func(a *Apartment) *string { return a.MapEmbedCode }, func(p *ApartmentPatch) **string { return &p.MapEmbedCode }},
}

// CopyableFields are the settings a manager may copy between apartments.
// Identity fields (title, number, building) never travel.
var CopyableFields = []Field{
	FieldHousingComplex,
	FieldBaseAddress,
	FieldDescription,
	FieldWifiName,
	FieldWifiPassword,
	FieldEntranceCode,
	FieldLockCode,
	FieldManagerName,
	FieldManagerPhone,
	FieldManagerEmail,
	FieldFAQCheckin,
	FieldFAQApartment,
	FieldFAQArea,
	FieldMapEmbedCode,
}

func IsCopyable(f Field) bool {
	for _, c := range CopyableFields {
		if c == f {
			return true
		}
	}
	return false
}

func lookupField(f Field) (apartmentField, bool) {
	for _, af := range apartmentFields {
		if af.name == f {
			return af, true
		}
	}
	return apartmentField{}, false
}

// Value returns the stored value of f, with ok=false when the setting is
// unknown or not configured.
func (a *Apartment) Value(f Field) (string, bool) {
	af, ok := lookupField(f)
	if !ok {
		return "", false
	}
	v := af.value(a)
	if v == nil {
		return "", false
	}
	return *v, true
}

// Set marks f as touched with value v. It reports false for unknown fields.
func (p *ApartmentPatch) Set(f Field, v string) bool {
	af, ok := lookupField(f)
	if !ok {
		return false
	}
	*af.patch(p) = &v
	return true
}

// Values returns the touched fields only.
func (p *ApartmentPatch) Values() map[Field]string {
	out := make(map[Field]string)
	for _, af := range apartmentFields {
		if v := *af.patch(p); v != nil {
			out[af.name] = *v
		}
	}
	return out
}

func (p *ApartmentPatch) IsEmpty() bool {
	return len(p.Values()) == 0
}

func StringPtr(s string) *string { return &s }

// Deref returns "" for nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
