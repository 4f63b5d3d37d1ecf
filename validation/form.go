package validation

// Form tracks the current error per field while a manager edits a form.
// A field without an error has no key at all.
type Form struct {
	rules  RuleSet
	errors map[string]string
}

func NewForm(rules RuleSet) *Form {
	return &Form{rules: rules, errors: make(map[string]string)}
}

// ValidateField re-checks one field and updates its entry.
func (f *Form) ValidateField(name, value string) string {
	rule, ok := f.rules.Fields[name]
	if !ok {
		f.ClearError(name)
		return ""
	}
	msg := Validate(value, rule)
	f.SetError(name, msg)
	return msg
}

// SetError records msg for name; an empty msg clears it.
func (f *Form) SetError(name, msg string) {
	if msg == "" {
		delete(f.errors, name)
		return
	}
	f.errors[name] = msg
}

func (f *Form) ClearError(name string) {
	delete(f.errors, name)
}

// ValidateAll replaces the error map with the result of a full check.
func (f *Form) ValidateAll(values map[string]string) Result {
	res := ValidateAll(values, f.rules)
	f.errors = make(map[string]string, len(res.Errors))
	for k, v := range res.Errors {
		f.errors[k] = v
	}
	return res
}

func (f *Form) Errors() map[string]string {
	out := make(map[string]string, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

func (f *Form) HasErrors() bool {
	return len(f.errors) > 0
}
