package mapper

import "checkin-guide/models"

// Candidate raw keys per logical field, highest priority first.

var (
	idKeys        = []string{"id"}
	createdKeys   = []string{"created", "created_at"}
	updatedKeys   = []string{"updated", "updated_at"}
	apartmentKeys = []string{"apartment_id", "apartment"}
)

var apartmentAliases = map[models.Field][]string{
	models.FieldTitle:           {"title", "name"},
	models.FieldApartmentNumber: {"apartment_number", "number"},
	models.FieldBuildingNumber:  {"building_number", "building"},
	models.FieldHousingComplex:  {"housing_complex", "complex", "residential_complex"},
	models.FieldBaseAddress:     {"base_address", "address"},
	models.FieldDescription:     {"description"},
	models.FieldWifiName:        {"wifi_name", "wifi_network", "wifi_ssid"},
	models.FieldWifiPassword:    {"wifi_password"},
	models.FieldEntranceCode:    {"entrance_code", "door_code"},
	models.FieldLockCode:        {"lock_code", "electronic_lock_code"},
	models.FieldManagerName:     {"manager_name", "contact_name"},
	models.FieldManagerPhone:    {"manager_phone", "contact_phone"},
	models.FieldManagerEmail:    {"manager_email", "contact_email"},
	models.FieldFAQCheckin:      {"faq_checkin"},
	models.FieldFAQApartment:    {"faq_apartment"},
	models.FieldFAQArea:         {"faq_area"},
	models.FieldMapEmbedCode:    {"map_embed_code", "map_embed"},
}

var bookingAliases = struct {
	guestName, checkIn, checkOut, lockCode, slug []string
}{
	guestName: []string{"guest_name", "guest"},
	checkIn:   []string{"checkin_date", "check_in_date", "check_in"},
	checkOut:  []string{"checkout_date", "check_out_date", "check_out"},
	lockCode:  []string{"lock_code", "lock_code_override", "electronic_lock_code"},
	slug:      []string{"slug"},
}

var guestAliases = struct {
	name, phone, email []string
}{
	name:  []string{"name", "full_name", "guest_name"},
	phone: []string{"phone", "phone_number"},
	email: []string{"email"},
}

var mediaAliases = struct {
	category, path, url, contentType, size, meta []string
}{
	category:    []string{"category", "type"},
	path:        []string{"path", "key", "file"},
	url:         []string{"url", "file_url"},
	contentType: []string{"content_type", "mime_type"},
	size:        []string{"size"},
	meta:        []string{"meta", "metadata"},
}
