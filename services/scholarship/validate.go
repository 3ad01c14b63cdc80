package scholarship

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/exp/slices"
)

// Validate returns a *ValidationError for the first field, in form order,
// whose value is not allowed.
func Validate(q Query) error {
	features := q.Features()
	enums := enumerations()
	for _, field := range InputFields() {
		value := features[field]
		if field == FieldFieldOfStudy {
			if strings.TrimSpace(value) == "" {
				return &ValidationError{Field: field, Value: value, Reason: "required"}
			}
			if utf8.RuneCountInString(value) > MaxFieldOfStudyLength {
				return &ValidationError{Field: field, Value: value, Reason: "too long"}
			}
			continue
		}
		if !slices.Contains(enums[field], value) {
			return &ValidationError{Field: field, Value: value, Reason: "not one of the allowed values"}
		}
	}
	return nil
}
