package models

// Guest is a contact attached to an apartment.
type Guest struct {
	ID          string  `json:"id"`
	ApartmentID string  `json:"apartment_id"`
	Name        string  `json:"name"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	CreatedAt   string  `json:"created_at,omitempty"`
}

type GuestInput struct {
	ApartmentID string  `json:"apartment_id"`
	Name        string  `json:"name"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
}

func (g GuestInput) ValidationValues() map[string]string {
	return map[string]string{
		"apartment_id": g.ApartmentID,
		"name":         g.Name,
		"phone":        Deref(g.Phone),
		"email":        Deref(g.Email),
	}
}
