package http

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var rePhone = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()

	// E.164-ish phone number, optional leading +
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return rePhone.MatchString(fl.Field().String())
	})

	return &CustomValidator{v: v}
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// Map validator.ValidationErrors → []FieldError with readable messages.
func ToFieldErrors(err error) []FieldError {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		field := e.Field()
		switch e.Tag() {
		case "required":
			out = append(out, FieldError{Field: field, Message: "is required"})
		case "phone":
			out = append(out, FieldError{Field: field, Message: "must be a valid phone number"})
		case "min":
			out = append(out, FieldError{Field: field, Message: "must be at least " + e.Param()})
		case "max":
			out = append(out, FieldError{Field: field, Message: "must be at most " + e.Param()})
		case "oneof":
			out = append(out, FieldError{Field: field, Message: "must be one of: " + e.Param()})
		case "email":
			out = append(out, FieldError{Field: field, Message: "must be a valid email address"})
		default:
			out = append(out, FieldError{Field: field, Message: e.Tag() + " validation failed"})
		}
	}
	return out
}
