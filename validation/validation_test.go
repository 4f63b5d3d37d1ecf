package validation

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateOrder(t *testing.T) {
	rule := Rule{
		Required:  true,
		MinLength: 3,
		MaxLength: 5,
		Pattern:   regexp.MustCompile(`^[a-z]+$`),
		Custom: func(v string) string {
			if v == "bad" {
				return "custom"
			}
			return ""
		},
	}

	assert.Equal(t, "Обязательное поле", Validate("", rule))
	assert.Equal(t, "Обязательное поле", Validate("   ", rule))
	assert.Equal(t, "Минимум 3 символов", Validate("ab", rule))
	assert.Equal(t, "Максимум 5 символов", Validate("abcdef", rule))
	assert.Equal(t, "Неверный формат", Validate("ABC", rule))
	assert.Equal(t, "custom", Validate("bad", rule))
	assert.Equal(t, "", Validate("good", rule))
}

func TestOptionalEmptyPasses(t *testing.T) {
	assert.Equal(t, "", Validate("", Rule{MinLength: 8, Tag: "email"}))
}

func TestLengthCountsRunes(t *testing.T) {
	assert.Equal(t, "", Validate("Ёж", Rule{MinLength: 2, MaxLength: 2}))
}

func TestTagRule(t *testing.T) {
	assert.Equal(t, "Неверный формат email", Validate("nope", emailRule))
	assert.Equal(t, "", Validate("host@example.com", emailRule))
}

func TestBookingCrossField(t *testing.T) {
	res := ValidateAll(map[string]string{
		"guest_name":    "Anna",
		"apartment_id":  "a1",
		"checkin_date":  "2024-05-03",
		"checkout_date": "2024-05-01",
	}, BookingRules)
	assert.False(t, res.IsValid)
	assert.Equal(t, map[string]string{"checkout_date": "Дата выезда должна быть позже даты заезда"}, res.Errors)

	res = ValidateAll(map[string]string{
		"guest_name":    "Anna",
		"apartment_id":  "a1",
		"checkin_date":  "2024-05-01",
		"checkout_date": "2024-05-03",
	}, BookingRules)
	assert.True(t, res.IsValid)
	assert.Empty(t, res.Errors)
}

func TestCrossFieldWaitsForIndividualChecks(t *testing.T) {
	res := ValidateAll(map[string]string{
		"guest_name":    "Anna",
		"apartment_id":  "a1",
		"checkin_date":  "not a date",
		"checkout_date": "2024-05-01",
	}, BookingRules)
	assert.Equal(t, map[string]string{"checkin_date": "Формат даты: ГГГГ-ММ-ДД"}, res.Errors)

	res = ValidateAll(map[string]string{
		"guest_name":    "Anna",
		"apartment_id":  "a1",
		"checkin_date":  "2024-02-30",
		"checkout_date": "2024-05-01",
	}, BookingRules)
	assert.Equal(t, map[string]string{"checkin_date": "Некорректная дата"}, res.Errors)
}

func TestDateWithSingleDigitHour(t *testing.T) {
	res := ValidateAll(map[string]string{
		"guest_name":    "Anna",
		"apartment_id":  "a1",
		"checkin_date":  "2024-05-01 9:00",
		"checkout_date": "2024-05-03 12:00",
	}, BookingRules)
	assert.True(t, res.IsValid, res.Errors)
}

func TestValidatePartial(t *testing.T) {
	res := ValidatePartial(map[string]string{"apartment_number": "123456789012345678901"}, ApartmentRules)
	assert.Equal(t, map[string]string{"apartment_number": "Максимум 20 символов"}, res.Errors)

	res = ValidatePartial(map[string]string{"manager_phone": "+7 (900) 123-45-67"}, ApartmentRules)
	assert.True(t, res.IsValid)

	res = ValidateAll(map[string]string{}, ApartmentRules)
	assert.Contains(t, res.Errors, "title")
	assert.Contains(t, res.Errors, "apartment_number")
	assert.Len(t, res.Errors, 2)
}

func TestForm(t *testing.T) {
	f := NewForm(GuestRules)
	assert.Equal(t, "Обязательное поле", f.ValidateField("name", ""))
	assert.True(t, f.HasErrors())
	assert.Equal(t, "", f.ValidateField("name", "Ivan"))
	_, present := f.Errors()["name"]
	assert.False(t, present)
	assert.False(t, f.HasErrors())

	res := f.ValidateAll(map[string]string{"name": "Ivan", "email": "x"})
	assert.False(t, res.IsValid)
	assert.Equal(t, map[string]string{"apartment_id": "Обязательное поле", "email": "Неверный формат email"}, f.Errors())

	f.ClearError("email")
	assert.Equal(t, map[string]string{"apartment_id": "Обязательное поле"}, f.Errors())
}
