package validator

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// clockRegex matches 24-hour wall-clock values such as "07:30" or "23:59".
var clockRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// Required fails when the trimmed value is empty.
func Required(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: ValidationError{
			Field:   field,
			Message: "is required",
		},
	}
}

// OneOf fails when the value is not in the allowed list.
func OneOf(field, value string, allowed []string) Rule {
	return Rule{
		Check: func() bool {
			return slices.Contains(allowed, value)
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")),
		},
	}
}

// EachOneOf fails when any element of values is not in the allowed list.
// The error message names every offending element.
func EachOneOf(field string, values, allowed []string) Rule {
	var invalid []string
	for _, v := range values {
		if !slices.Contains(allowed, v) {
			invalid = append(invalid, v)
		}
	}

	return Rule{
		Check: func() bool {
			return len(invalid) == 0
		},
		Error: ValidationError{
			Field: field,
			Message: fmt.Sprintf("contains invalid values: %s (allowed: %s)",
				strings.Join(invalid, ", "), strings.Join(allowed, ", ")),
		},
	}
}

// ClockTime fails unless the value matches 24-hour "HH:MM".
func ClockTime(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return clockRegex.MatchString(value)
		},
		Error: ValidationError{
			Field:   field,
			Message: `must be a 24-hour time in "HH:MM" format`,
		},
	}
}

// BothOrNeither fails when exactly one of the two values is set.
func BothOrNeither(field, a, b string) Rule {
	return Rule{
		Check: func() bool {
			return (a == "") == (b == "")
		},
		Error: ValidationError{
			Field:   field,
			Message: "fields must be provided together or not at all",
		},
	}
}
