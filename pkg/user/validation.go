package user

import (
	"regexp"

	"github.com/dmitrymomot/benefitskit/pkg/validator"
)

var userNamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// SignupForm is the signup input as submitted by a client.
type SignupForm struct {
	UserName  string `form:"userName" json:"userName"`
	FirstName string `form:"firstName" json:"firstName"`
	LastName  string `form:"lastName" json:"lastName"`
	Email     string `form:"email" json:"email"`
	Password  string `form:"password" json:"password"`
	Verify    string `form:"verify" json:"verify"`
}

// NewUser converts a validated form into CreateUser input.
func (f SignupForm) NewUser() NewUser {
	return NewUser{
		UserName:  f.UserName,
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Password:  f.Password,
		Email:     f.Email,
	}
}

// LoginForm is the login input as submitted by a client.
type LoginForm struct {
	UserName string `form:"userName" json:"userName"`
	Password string `form:"password" json:"password"`
}

// ValidateSignup applies the signup input rules and reports every failure.
func ValidateSignup(f SignupForm) error {
	rules := []validator.Rule{
		validator.Required("userName", f.UserName),
		validator.LenBetween("userName", f.UserName, 3, 20),
		validator.Matches("userName", f.UserName, userNamePattern, "letters, digits and underscores"),
		validator.Required("firstName", f.FirstName),
		validator.LenBetween("firstName", f.FirstName, 1, 100),
		validator.Required("lastName", f.LastName),
		validator.LenBetween("lastName", f.LastName, 1, 100),
		validator.LenBetween("password", f.Password, 8, 20),
		validator.ContainsLowercase("password", f.Password),
		validator.ContainsUppercase("password", f.Password),
		validator.ContainsDigit("password", f.Password),
		validator.Equal("verify", f.Verify, f.Password),
	}
	rules = append(rules, validator.When(f.Email != "", validator.ValidEmail("email", f.Email))...)
	return validator.Apply(rules...)
}

// ValidateLoginForm requires both credentials to be present.
func ValidateLoginForm(f LoginForm) error {
	return validator.Apply(
		validator.Required("userName", f.UserName),
		validator.Required("password", f.Password),
	)
}
