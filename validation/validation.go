// Package validation checks form values against declarative rules.
package validation

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var tagValidator = validator.New()

// Rule describes the constraints on one field. Rules run in a fixed order:
// required, min length, max length, pattern, tag, custom. The first failure
// wins. An empty value that is not required skips everything else.
type Rule struct {
	Required  bool
	MinLength int
	MaxLength int
	Pattern   *regexp.Regexp
	// Tag is a go-playground/validator tag such as "email".
	Tag    string
	Custom func(value string) string

	RequiredMessage string
	PatternMessage  string
	TagMessage      string
}

// CrossFieldRule runs only when every field in Fields passed on its own.
// The message is attached to Target.
type CrossFieldRule struct {
	Fields []string
	Target string
	Check  func(values map[string]string) string
}

type RuleSet struct {
	Fields     map[string]Rule
	CrossField []CrossFieldRule
}

type Result struct {
	IsValid bool              `json:"is_valid"`
	Errors  map[string]string `json:"errors"`
}

// Validate returns "" when value satisfies rule, or the first failing
// rule's message.
func Validate(value string, rule Rule) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		if rule.Required {
			return orDefault(rule.RequiredMessage, "Обязательное поле")
		}
		return ""
	}

	length := utf8.RuneCountInString(trimmed)
	if rule.MinLength > 0 && length < rule.MinLength {
		return fmt.Sprintf("Минимум %d символов", rule.MinLength)
	}
	if rule.MaxLength > 0 && length > rule.MaxLength {
		return fmt.Sprintf("Максимум %d символов", rule.MaxLength)
	}
	if rule.Pattern != nil && !rule.Pattern.MatchString(trimmed) {
		return orDefault(rule.PatternMessage, "Неверный формат")
	}
	if rule.Tag != "" {
		if err := tagValidator.Var(trimmed, rule.Tag); err != nil {
			return orDefault(rule.TagMessage, "Неверный формат")
		}
	}
	if rule.Custom != nil {
		return rule.Custom(trimmed)
	}
	return ""
}

// ValidateAll checks every field of rs. Missing values count as empty.
func ValidateAll(values map[string]string, rs RuleSet) Result {
	return run(values, rs, false)
}

// ValidatePartial checks only the fields present in values, as for a patch.
func ValidatePartial(values map[string]string, rs RuleSet) Result {
	return run(values, rs, true)
}

func run(values map[string]string, rs RuleSet, partial bool) Result {
	errs := make(map[string]string)

	names := make([]string, 0, len(rs.Fields))
	for name := range rs.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value, present := values[name]
		if partial && !present {
			continue
		}
		if msg := Validate(value, rs.Fields[name]); msg != "" {
			errs[name] = msg
		}
	}

	for _, cf := range rs.CrossField {
		if _, failed := errs[cf.Target]; failed {
			continue
		}
		ready := true
		for _, f := range cf.Fields {
			_, present := values[f]
			if _, failed := errs[f]; failed || (partial && !present) {
				ready = false
				break
			}
		}
		if !ready {
			continue
		}
		if msg := cf.Check(values); msg != "" {
			errs[cf.Target] = msg
		}
	}

	return Result{IsValid: len(errs) == 0, Errors: errs}
}

func orDefault(msg, def string) string {
	if msg != "" {
		return msg
	}
	return def
}
