// Package validator provides composable validation rules.
//
// A Rule pairs a check with the error reported when it fails. Apply runs all
// rules and returns ValidationErrors listing every failure:
//
//	err := validator.Apply(
//		validator.Required("userName", f.UserName),
//		validator.LenBetween("userName", f.UserName, 3, 20),
//		validator.Matches("userName", f.UserName, userNameRe, "letters, digits and underscores"),
//	)
//
// Optional fields use When:
//
//	rules = append(rules, validator.When(f.Email != "", validator.ValidEmail("email", f.Email))...)
//
// ValidationErrors classifies as core.KindValidation and exposes per-field
// messages through FieldErrors, so the JSON error renderer reports them
// without knowing this package.
package validator
