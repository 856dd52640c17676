// Package validation converts raw, untrusted request input into typed
// records. It is the only place where a map decoded from a request body
// becomes a models.Credentials or models.NewCard.
package validation

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mmynk/cardstash/internal/models"
)

// RawInput is a request body decoded without any shape guarantees.
type RawInput map[string]any

// FieldError describes one rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors is the list of problems found in a single input.
// An empty list means the input was accepted.
type FieldErrors []FieldError

// Error implements error so callers can pass the list along as one value.
func (e FieldErrors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Field + ": " + fe.Message
	}
	return strings.Join(msgs, "; ")
}

// First returns the message of the first error, or "" when there is none.
func (e FieldErrors) First() string {
	if len(e) == 0 {
		return ""
	}
	return e[0].Message
}

// labels maps JSON field names to the text used in messages.
var labels = map[string]string{
	"username": "Username",
	"password": "Password",
	"name":     "Name",
	"userId":   "User ID",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Credentials validates a sign-up or sign-in body.
func Credentials(raw RawInput) (models.Credentials, FieldErrors) {
	var out models.Credentials
	var errs FieldErrors
	out.Username = stringField(raw, "username", &errs)
	out.Password = stringField(raw, "password", &errs)
	return out, collect(out, errs, "username", "password")
}

// NewCard validates a card creation body.
func NewCard(raw RawInput) (models.NewCard, FieldErrors) {
	var out models.NewCard
	var errs FieldErrors
	out.Name = stringField(raw, "name", &errs)
	out.UserID = stringField(raw, "userId", &errs)
	return out, collect(out, errs, "name", "userId")
}

// collect merges type errors with struct rule failures, ordered as the
// fields are declared.
func collect(target any, typeErrs FieldErrors, fields ...string) FieldErrors {
	errs := append(typeErrs, check(target, typeErrs)...)
	if len(errs) == 0 {
		return nil
	}
	slices.SortStableFunc(errs, func(a, b FieldError) int {
		return cmp.Compare(slices.Index(fields, a.Field), slices.Index(fields, b.Field))
	})
	return errs
}

// stringField reads key from raw. Missing and null values read as "" and
// are left to the struct rules; non-strings and strings holding NUL are
// type errors.
func stringField(raw RawInput, key string, errs *FieldErrors) string {
	v, ok := raw[key]
	if !ok || v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		*errs = append(*errs, FieldError{Field: key, Message: labels[key] + " must be a string"})
		return ""
	}
	if HasNUL(s) {
		*errs = append(*errs, FieldError{Field: key, Message: labels[key] + " must not contain NUL characters"})
		return ""
	}
	return s
}

// HasNUL reports whether s contains a NUL byte. PostgreSQL text columns
// cannot store one, so no stored record ever contains it.
func HasNUL(s string) bool {
	return strings.IndexByte(s, 0) >= 0
}

// check runs the struct tags and converts failures to FieldErrors, skipping
// fields that already failed the type check.
func check(target any, already FieldErrors) FieldErrors {
	err := validate.Struct(target)
	if err == nil {
		return nil
	}
	// Struct only fails with something else for nil or non-struct targets.
	verrs := err.(validator.ValidationErrors)

	var out FieldErrors
	for _, fe := range verrs {
		if already.has(fe.Field()) {
			continue
		}
		out = append(out, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

func (e FieldErrors) has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

func message(fe validator.FieldError) string {
	label, ok := labels[fe.Field()]
	if !ok {
		label = fe.Field()
	}
	switch fe.Tag() {
	case "required":
		return label + " is required"
	default:
		return fmt.Sprintf("%s failed %q check", label, fe.Tag())
	}
}
