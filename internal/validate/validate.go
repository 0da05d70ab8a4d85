// Package validate checks request payloads against their struct tag rules
// before they reach storage.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// ErrValidation is matched by every Errors value.
var ErrValidation = errors.New("validation failed")

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)

// FieldError describes a single rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is the list of field violations for one payload.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e Errors) Is(target error) bool {
	return target == ErrValidation
}

// Validator wraps a configured go-playground validator.
type Validator struct {
	v               *validator.Validate
	strongPasswords bool
}

// New returns a Validator with the custom rules registered. strongPasswords
// turns on the character-class policy checked by Password.
func New(strongPasswords bool) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// Registration only fails for an empty tag or a nil func.
	_ = v.RegisterValidation("simple_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})

	return &Validator{v: v, strongPasswords: strongPasswords}
}

// Struct validates s against its validate tags. Violations are returned as
// Errors; anything else indicates a programming error in the tags.
func (val *Validator) Struct(s any) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

// Password applies the strong password policy when it is enabled: at least
// eight characters with a lowercase letter, an uppercase letter, a digit and
// a symbol.
func (val *Validator) Password(password string) error {
	if !val.strongPasswords {
		return nil
	}

	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case !unicode.IsSpace(r) && !unicode.IsLetter(r) && r != '_':
			symbol = true
		}
	}

	if len([]rune(password)) < 8 || !lower || !upper || !digit || !symbol {
		return Errors{{
			Field: "password",
			Message: "must be at least 8 characters long and contain at least one uppercase letter, " +
				"one lowercase letter, one digit, and one special character",
		}}
	}
	return nil
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "simple_email":
		return "invalid email address"
	default:
		return "is invalid"
	}
}
