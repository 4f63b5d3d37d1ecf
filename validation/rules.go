package validation

import (
	"regexp"

	"checkin-guide/utils"
)

var (
	phonePattern = regexp.MustCompile(`^\+?[0-9\s\-()]{7,20}$`)
	datePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}([ T]\d{1,2}:\d{2}(:\d{2})?)?$`)
)

func validDate(value string) string {
	if _, ok := utils.ParseDate(value); !ok {
		return "Некорректная дата"
	}
	return ""
}

var phoneRule = Rule{Pattern: phonePattern, PatternMessage: "Неверный формат телефона"}

var emailRule = Rule{MaxLength: 200, Tag: "email", TagMessage: "Неверный формат email"}

var ApartmentRules = RuleSet{
	Fields: map[string]Rule{
		"title":            {Required: true, MaxLength: 200},
		"apartment_number": {Required: true, MaxLength: 20},
		"building_number":  {MaxLength: 20},
		"housing_complex":  {MaxLength: 200},
		"base_address":     {MaxLength: 500},
		"description":      {MaxLength: 5000},
		"wifi_name":        {MaxLength: 100},
		"wifi_password":    {MaxLength: 63},
		"entrance_code":    {MaxLength: 50},
		"lock_code":        {MaxLength: 50},
		"manager_name":     {MaxLength: 100},
		"manager_phone":    phoneRule,
		"manager_email":    emailRule,
		"faq_checkin":      {MaxLength: 5000},
		"faq_apartment":    {MaxLength: 5000},
		"faq_area":         {MaxLength: 5000},
		"map_embed_code":   {MaxLength: 5000},
	},
}

var BookingRules = RuleSet{
	Fields: map[string]Rule{
		"guest_name":    {Required: true, MinLength: 2, MaxLength: 100},
		"apartment_id":  {Required: true},
		"checkin_date":  {Required: true, Pattern: datePattern, PatternMessage: "Формат даты: ГГГГ-ММ-ДД", Custom: validDate},
		"checkout_date": {Required: true, Pattern: datePattern, PatternMessage: "Формат даты: ГГГГ-ММ-ДД", Custom: validDate},
		"lock_code":     {MaxLength: 50},
	},
	CrossField: []CrossFieldRule{
		{
			Fields: []string{"checkin_date", "checkout_date"},
			Target: "checkout_date",
			Check: func(values map[string]string) string {
				in, _ := utils.ParseDate(values["checkin_date"])
				out, _ := utils.ParseDate(values["checkout_date"])
				if !out.After(in) {
					return "Дата выезда должна быть позже даты заезда"
				}
				return ""
			},
		},
	},
}

var GuestRules = RuleSet{
	Fields: map[string]Rule{
		"apartment_id": {Required: true},
		"name":         {Required: true, MinLength: 2, MaxLength: 100},
		"phone":        phoneRule,
		"email":        emailRule,
	},
}

// Forms names the rule sets a client can check field by field.
var Forms = map[string]RuleSet{
	"apartment": ApartmentRules,
	"booking":   BookingRules,
	"guest":     GuestRules,
}
