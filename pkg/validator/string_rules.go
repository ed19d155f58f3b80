package validator

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Required validates that a string is not empty after trimming whitespace.
func Required(field, value string) Rule {
	return Rule{
		Check: func() bool { return strings.TrimSpace(value) != "" },
		Error: ValidationError{
			Field:             field,
			Message:           "field is required",
			TranslationKey:    "validation.required",
			TranslationValues: map[string]any{"field": field},
		},
	}
}

// LenBetween validates that the string has between min and max characters.
func LenBetween(field, value string, min, max int) Rule {
	return Rule{
		Check: func() bool {
			n := utf8.RuneCountInString(value)
			return n >= min && n <= max
		},
		Error: ValidationError{
			Field:             field,
			Message:           fmt.Sprintf("must be between %d and %d characters long", min, max),
			TranslationKey:    "validation.length_between",
			TranslationValues: map[string]any{"field": field, "min": min, "max": max},
		},
	}
}

// Matches validates the value against a precompiled pattern.
func Matches(field, value string, re *regexp.Regexp, description string) Rule {
	return Rule{
		Check: func() bool { return re.MatchString(value) },
		Error: ValidationError{
			Field:             field,
			Message:           "must contain only " + description,
			TranslationKey:    "validation.pattern",
			TranslationValues: map[string]any{"field": field, "description": description},
		},
	}
}

// Equal validates that two values match, e.g. a password and its confirmation.
func Equal(field, value, other string) Rule {
	return Rule{
		Check: func() bool { return value == other },
		Error: ValidationError{
			Field:             field,
			Message:           "values do not match",
			TranslationKey:    "validation.mismatch",
			TranslationValues: map[string]any{"field": field},
		},
	}
}

func containsRune(value string, pred func(rune) bool) bool {
	return strings.IndexFunc(value, pred) >= 0
}

// ContainsUppercase validates that the value has at least one uppercase letter.
func ContainsUppercase(field, value string) Rule {
	return Rule{
		Check: func() bool { return containsRune(value, unicode.IsUpper) },
		Error: ValidationError{
			Field:             field,
			Message:           "must contain at least one uppercase letter",
			TranslationKey:    "validation.password_uppercase",
			TranslationValues: map[string]any{"field": field},
		},
	}
}

// ContainsLowercase validates that the value has at least one lowercase letter.
func ContainsLowercase(field, value string) Rule {
	return Rule{
		Check: func() bool { return containsRune(value, unicode.IsLower) },
		Error: ValidationError{
			Field:             field,
			Message:           "must contain at least one lowercase letter",
			TranslationKey:    "validation.password_lowercase",
			TranslationValues: map[string]any{"field": field},
		},
	}
}

// ContainsDigit validates that the value has at least one decimal digit.
func ContainsDigit(field, value string) Rule {
	return Rule{
		Check: func() bool { return containsRune(value, unicode.IsDigit) },
		Error: ValidationError{
			Field:             field,
			Message:           "must contain at least one digit",
			TranslationKey:    "validation.password_digit",
			TranslationValues: map[string]any{"field": field},
		},
	}
}
