package validation

import (
	"errors"
	"reflect"

	"github.com/go-playground/validator/v10"

	"github.com/danbfiorotto/brunatorellidelivery-sub002/internal/domain"
)

// Result is the outcome of a validation pass.
type Result struct {
	IsValid bool              `json:"is_valid"`
	Errors  map[string]string `json:"errors"`
}

func newResult() *Result {
	return &Result{IsValid: true, Errors: map[string]string{}}
}

// add records the first message reported for a field.
func (r *Result) add(field, message string) {
	if _, exists := r.Errors[field]; exists {
		return
	}
	r.Errors[field] = message
	r.IsValid = false
}

// GeneralField is the Result key for errors that carry no field name.
const GeneralField = "_"

// FromError converts a construction error into a Result. A domain.FieldError
// is keyed by its field; any other error is keyed by GeneralField. A nil
// error yields a valid Result.
func FromError(err error) Result {
	r := newResult()
	if err == nil {
		return *r
	}
	var fe *domain.FieldError
	if errors.As(err, &fe) {
		r.add(fe.Field, fe.Err.Error())
		return *r
	}
	r.add(GeneralField, err.Error())
	return *r
}

// presence is a validator instance that names fields by their `field` tag so
// its errors map directly onto Result keys.
var presence = newPresenceValidator()

func newPresenceValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("field"); name != "" {
			return name
		}
		return fld.Name
	})
	return v
}

// checkPresence runs struct tag validation on s and folds every failure into r.
func checkPresence(r *Result, s any) {
	err := presence.Struct(s)
	if err == nil {
		return
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		r.add(GeneralField, err.Error())
		return
	}
	for _, fe := range verrs {
		r.add(fe.Field(), tagMessage(fe.Field(), fe.Tag()))
	}
}

// tagMessage maps validation tags to user-friendly error messages
func tagMessage(field, tag string) string {
	switch tag {
	case "required", "required_without":
		return field + " is required"
	case "max":
		return field + " is too long"
	default:
		return field + " is invalid"
	}
}
