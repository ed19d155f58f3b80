package validator

import "fmt"

// Numeric is the set of types accepted by the numeric rules.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Between validates that min <= value <= max.
func Between[T Numeric](field string, value, min, max T) Rule {
	return Rule{
		Check: func() bool { return value >= min && value <= max },
		Error: ValidationError{
			Field:             field,
			Message:           fmt.Sprintf("must be between %v and %v", min, max),
			TranslationKey:    "validation.between",
			TranslationValues: map[string]any{"field": field, "min": min, "max": max},
		},
	}
}
