package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Row models describe the SQL tables. JSON tags match column names so a row
// converts to and from a Record without a field table.

type ApartmentRow struct {
	ID                 string    `gorm:"primaryKey;size:36" json:"id"`
	Name               string    `gorm:"column:name;size:200;not null" json:"name"`
	Number             string    `gorm:"column:number;size:50;index:idx_apartment_number" json:"number"`
	Building           string    `gorm:"column:building;size:50;index:idx_apartment_number" json:"building"`
	Complex            *string   `gorm:"column:complex;size:200;index" json:"complex"`
	Address            string    `gorm:"column:address;type:text" json:"address"`
	Description        string    `gorm:"column:description;type:text" json:"description"`
	WifiName           *string   `gorm:"column:wifi_name;size:100" json:"wifi_name"`
	WifiPassword       *string   `gorm:"column:wifi_password;size:100" json:"wifi_password"`
	EntranceCode       *string   `gorm:"column:entrance_code;size:50" json:"entrance_code"`
	ElectronicLockCode *string   `gorm:"column:electronic_lock_code;size:50" json:"electronic_lock_code"`
	ContactName        *string   `gorm:"column:contact_name;size:100" json:"contact_name"`
	ContactPhone       *string   `gorm:"column:contact_phone;size:30" json:"contact_phone"`
	ContactEmail       *string   `gorm:"column:contact_email;size:200" json:"contact_email"`
	FAQCheckin         *string   `gorm:"column:faq_checkin;type:text" json:"faq_checkin"`
	FAQApartment       *string   `gorm:"column:faq_apartment;type:text" json:"faq_apartment"`
	FAQArea            *string   `gorm:"column:faq_area;type:text" json:"faq_area"`
	MapEmbed           *string   `gorm:"column:map_embed;type:text" json:"map_embed"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (ApartmentRow) TableName() string { return "apartments" }

type BookingRow struct {
	ID               string    `gorm:"primaryKey;size:36" json:"id"`
	GuestName        string    `gorm:"column:guest_name;size:100" json:"guest_name"`
	Apartment        string    `gorm:"column:apartment;size:36;index" json:"apartment"`
	CheckInDate      string    `gorm:"column:check_in_date;size:32" json:"check_in_date"`
	CheckOutDate     string    `gorm:"column:check_out_date;size:32" json:"check_out_date"`
	LockCodeOverride *string   `gorm:"column:lock_code_override;size:50" json:"lock_code_override"`
	Slug             *string   `gorm:"column:slug;size:100;index" json:"slug"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (BookingRow) TableName() string { return "bookings" }

type GuestRow struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Apartment string    `gorm:"column:apartment;size:36;index" json:"apartment"`
	Name      string    `gorm:"column:name;size:100" json:"name"`
	Phone     *string   `gorm:"column:phone;size:30" json:"phone"`
	Email     *string   `gorm:"column:email;size:200" json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (GuestRow) TableName() string { return "guests" }

type MediaFileRow struct {
	ID          string            `gorm:"primaryKey;size:36" json:"id"`
	Apartment   string            `gorm:"column:apartment;size:36;index" json:"apartment"`
	Category    string            `gorm:"column:category;size:50;index" json:"category"`
	Path        string            `gorm:"column:path;size:500" json:"path"`
	URL         string            `gorm:"column:url;size:1000" json:"url"`
	ContentType string            `gorm:"column:content_type;size:100" json:"content_type"`
	Size        int64             `gorm:"column:size" json:"size"`
	Meta        datatypes.JSONMap `gorm:"column:meta" json:"meta,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func (MediaFileRow) TableName() string { return "media_files" }

// AutoMigrate creates or updates every table, parents first.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&ApartmentRow{},
		&BookingRow{},
		&GuestRow{},
		&MediaFileRow{},
	)
}
