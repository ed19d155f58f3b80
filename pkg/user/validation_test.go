package user_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/benefitskit/core"
	"github.com/dmitrymomot/benefitskit/pkg/user"
	"github.com/dmitrymomot/benefitskit/pkg/validator"
)

func validSignup() user.SignupForm {
	return user.SignupForm{
		UserName:  "ada_99",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Password:  "Secret123",
		Verify:    "Secret123",
	}
}

func TestValidateSignup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mutate    func(*user.SignupForm)
		wantField string
	}{
		{name: "valid", mutate: func(*user.SignupForm) {}},
		{name: "valid with email", mutate: func(f *user.SignupForm) { f.Email = "ada@example.com" }},
		{name: "short user name", mutate: func(f *user.SignupForm) { f.UserName = "ad" }, wantField: "userName"},
		{name: "long user name", mutate: func(f *user.SignupForm) { f.UserName = "abcdefghijklmnopqrstu" }, wantField: "userName"},
		{name: "user name with dash", mutate: func(f *user.SignupForm) { f.UserName = "ada-l" }, wantField: "userName"},
		{name: "missing first name", mutate: func(f *user.SignupForm) { f.FirstName = "" }, wantField: "firstName"},
		{name: "missing last name", mutate: func(f *user.SignupForm) { f.LastName = " " }, wantField: "lastName"},
		{name: "bad email", mutate: func(f *user.SignupForm) { f.Email = "not-an-email" }, wantField: "email"},
		{name: "short password", mutate: func(f *user.SignupForm) { f.Password, f.Verify = "Sec1", "Sec1" }, wantField: "password"},
		{name: "no uppercase", mutate: func(f *user.SignupForm) { f.Password, f.Verify = "secret123", "secret123" }, wantField: "password"},
		{name: "no lowercase", mutate: func(f *user.SignupForm) { f.Password, f.Verify = "SECRET123", "SECRET123" }, wantField: "password"},
		{name: "no digit", mutate: func(f *user.SignupForm) { f.Password, f.Verify = "SecretPass", "SecretPass" }, wantField: "password"},
		{name: "verify mismatch", mutate: func(f *user.SignupForm) { f.Verify = "Secret124" }, wantField: "verify"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := validSignup()
			tt.mutate(&f)
			err := user.ValidateSignup(f)

			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, core.KindValidation, core.KindOf(err))
			assert.True(t, validator.ExtractValidationErrors(err).Has(tt.wantField))
		})
	}
}

func TestValidateSignup_ReportsAllFields(t *testing.T) {
	t.Parallel()

	errs := validator.ExtractValidationErrors(user.ValidateSignup(user.SignupForm{}))
	for _, field := range []string{"userName", "firstName", "lastName", "password"} {
		assert.True(t, errs.Has(field), field)
	}
	assert.False(t, errs.Has("email"), "email is optional")
}

func TestValidateLoginForm(t *testing.T) {
	t.Parallel()

	assert.NoError(t, user.ValidateLoginForm(user.LoginForm{UserName: "ada", Password: "x"}))

	errs := validator.ExtractValidationErrors(user.ValidateLoginForm(user.LoginForm{}))
	assert.True(t, errs.Has("userName"))
	assert.True(t, errs.Has("password"))
}

func TestSignupForm_NewUser(t *testing.T) {
	t.Parallel()

	f := validSignup()
	f.Email = "ada@example.com"
	nu := f.NewUser()
	assert.Equal(t, user.NewUser{
		UserName:  "ada_99",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Password:  "Secret123",
		Email:     "ada@example.com",
	}, nu)
}
