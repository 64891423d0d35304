package utils

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Password string `json:"password" validate:"required,min=8,max=12,strongpassword"`
	Confirm  string `json:"confirm_password" validate:"required,eqfield=Password"`
	Born     string `json:"dob" validate:"required,isodate"`
	Zipcode  int    `json:"zipcode" validate:"required,gte=11111,lte=99999"`
	Category string `json:"category" validate:"omitempty,musecategory"`
}

func newValidator(t *testing.T) *validator.Validate {
	v := validator.New()
	require.NoError(t, RegisterValidators(v, []string{"Data Science"}, []string{"Entry level"}))
	return v
}

func TestStrongPassword(t *testing.T) {
	v := newValidator(t)

	ok := signup{Password: "Passw0rd", Confirm: "Passw0rd", Born: "1995-02-01", Zipcode: 22030}
	assert.NoError(t, v.Struct(ok))

	weak := ok
	weak.Password, weak.Confirm = "password1", "password1"
	msgs := ValidationMessages(v.Struct(weak))
	assert.Contains(t, msgs, "password")
}

func TestValidationMessages_UsesJSONNames(t *testing.T) {
	v := newValidator(t)

	msgs := ValidationMessages(v.Struct(signup{
		Password: "Passw0rd",
		Confirm:  "Different1",
		Born:     "01/02/1995",
		Zipcode:  123,
		Category: "Astrology",
	}))

	assert.Equal(t, "Field must be equal to password.", msgs["confirm_password"])
	assert.Equal(t, "Use the format YYYY-MM-DD.", msgs["dob"])
	assert.Equal(t, "Please include a valid ZipCode", msgs["zipcode"])
	assert.Equal(t, "Not a valid job category.", msgs["category"])
}

func TestValidationMessages_NonValidationError(t *testing.T) {
	assert.Nil(t, ValidationMessages(assert.AnError))
}

func TestEduEmail(t *testing.T) {
	v := newValidator(t)
	type form struct {
		Email string `json:"email" validate:"required,email,edu"`
	}

	assert.NoError(t, v.Struct(form{Email: "ada@MIT.EDU"}))

	msgs := ValidationMessages(v.Struct(form{Email: "ada@gmail.com"}))
	assert.Equal(t, "Only .edu emails are accepted", msgs["email"])
}
