package models

// Record is a raw, loosely typed row as the record backend returns it.
// Values may be nil, strings, numbers or booleans.
type Record map[string]any

// Field is the logical name of an apartment setting.
type Field string

const (
	FieldTitle           Field = "title"
	FieldApartmentNumber Field = "apartment_number"
	FieldBuildingNumber  Field = "building_number"
	FieldHousingComplex  Field = "housing_complex"
	FieldBaseAddress     Field = "base_address"
	FieldDescription     Field = "description"
	FieldWifiName        Field = "wifi_name"
	FieldWifiPassword    Field = "wifi_password"
	FieldEntranceCode    Field = "entrance_code"
	FieldLockCode        Field = "lock_code"
	FieldManagerName     Field = "manager_name"
	FieldManagerPhone    Field = "manager_phone"
	FieldManagerEmail    Field = "manager_email"
	FieldFAQCheckin      Field = "faq_checkin"
	FieldFAQApartment    Field = "faq_apartment"
	FieldFAQArea         Field = "faq_area"
	FieldMapEmbedCode    Field = "map_embed_code"
)
