// Package mapper converts raw store records into domain values and domain
// patches into raw records. Reads tolerate every field naming scheme the
// backends have used; writes use the naming of the active backend.
package mapper

import "checkin-guide/models"

type BookingKeys struct {
	GuestName   string
	ApartmentID string
	CheckIn     string
	CheckOut    string
	LockCode    string
	Slug        string
}

type GuestKeys struct {
	ApartmentID string
	Name        string
	Phone       string
	Email       string
}

type MediaKeys struct {
	ApartmentID string
	Category    string
	Path        string
	URL         string
	ContentType string
	Size        string
	Meta        string
}

// Schema names the raw keys a backend expects on write.
type Schema struct {
	Name      string
	Apartment map[models.Field]string
	Booking   BookingKeys
	Guest     GuestKeys
	Media     MediaKeys
}

// ContentSchema is the naming of the content API collections.
var ContentSchema = Schema{
	Name: "content",
	Apartment: map[models.Field]string{
		models.FieldTitle:           "title",
		models.FieldApartmentNumber: "apartment_number",
		models.FieldBuildingNumber:  "building_number",
		models.FieldHousingComplex:  "housing_complex",
		models.FieldBaseAddress:     "base_address",
		models.FieldDescription:     "description",
		models.FieldWifiName:        "wifi_name",
		models.FieldWifiPassword:    "wifi_password",
		models.FieldEntranceCode:    "entrance_code",
		models.FieldLockCode:        "lock_code",
		models.FieldManagerName:     "manager_name",
		models.FieldManagerPhone:    "manager_phone",
		models.FieldManagerEmail:    "manager_email",
		models.FieldFAQCheckin:      "faq_checkin",
		models.FieldFAQApartment:    "faq_apartment",
		models.FieldFAQArea:         "faq_area",
		models.FieldMapEmbedCode:    "map_embed_code",
	},
	Booking: BookingKeys{
		GuestName:   "guest_name",
		ApartmentID: "apartment_id",
		CheckIn:     "checkin_date",
		CheckOut:    "checkout_date",
		LockCode:    "lock_code",
		Slug:        "slug",
	},
	Guest: GuestKeys{
		ApartmentID: "apartment_id",
		Name:        "name",
		Phone:       "phone",
		Email:       "email",
	},
	Media: MediaKeys{
		ApartmentID: "apartment_id",
		Category:    "category",
		Path:        "path",
		URL:         "url",
		ContentType: "content_type",
		Size:        "size",
		Meta:        "meta",
	},
}

// TableSchema is the naming of the SQL tables.
var TableSchema = Schema{
	Name: "table",
	Apartment: map[models.Field]string{
		models.FieldTitle:           "name",
		models.FieldApartmentNumber: "number",
		models.FieldBuildingNumber:  "building",
		models.FieldHousingComplex:  "complex",
		models.FieldBaseAddress:     "address",
		models.FieldDescription:     "description",
		models.FieldWifiName:        "wifi_name",
		models.FieldWifiPassword:    "wifi_password",
		models.FieldEntranceCode:    "entrance_code",
		models.FieldLockCode:        "electronic_lock_code",
		models.FieldManagerName:     "contact_name",
		models.FieldManagerPhone:    "contact_phone",
		models.FieldManagerEmail:    "contact_email",
		models.FieldFAQCheckin:      "faq_checkin",
		models.FieldFAQApartment:    "faq_apartment",
		models.FieldFAQArea:         "faq_area",
		models.FieldMapEmbedCode:    "map_embed",
	},
	Booking: BookingKeys{
		GuestName:   "guest_name",
		ApartmentID: "apartment",
		CheckIn:     "check_in_date",
		CheckOut:    "check_out_date",
		LockCode:    "lock_code_override",
		Slug:        "slug",
	},
	Guest: GuestKeys{
		ApartmentID: "apartment",
		Name:        "name",
		Phone:       "phone",
		Email:       "email",
	},
	Media: MediaKeys{
		ApartmentID: "apartment",
		Category:    "category",
		Path:        "path",
		URL:         "url",
		ContentType: "content_type",
		Size:        "size",
		Meta:        "meta",
	},
}

// SchemaFor returns the write naming for a store driver.
func SchemaFor(driver string) Schema {
	if driver == "sql" {
		return TableSchema
	}
	return ContentSchema
}
