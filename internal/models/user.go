package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// User statuses and genders accepted by the users API
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
	GenderMale         = "male"
	GenderFemale       = "female"
)

// User is a record of the users API
type User struct {
	ID     int64  `json:"id"`
	Name   string `json:"name" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
	Gender string `json:"gender" validate:"required,oneof=male female"`
	Status string `json:"status" validate:"required,oneof=active inactive"`
}

// FieldError is a single validation failure, keyed by JSON field name
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email has already been taken")
	ErrUnknownField = errors.New("unknown user field")
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate returns one FieldError per invalid field, or nil
func (u *User) Validate() []FieldError {
	err := validate.Struct(u)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "user", Message: err.Error()}}
	}

	fieldErrs := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fieldErrs = append(fieldErrs, FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return fieldErrs
}

func fieldMessage(fe validator.FieldError) string {
	switch {
	case fe.Tag() == "required":
		return "can't be blank"
	case fe.Field() == "gender":
		return "can't be blank, can be male of female"
	case fe.Tag() == "oneof":
		return "is not included in the list"
	default:
		return "is invalid"
	}
}

// Apply overwrites the named fields. Unknown names are rejected before any
// field changes.
func (u *User) Apply(fields map[string]string) error {
	for name := range fields {
		switch name {
		case "name", "email", "gender", "status":
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, name)
		}
	}
	for name, value := range fields {
		switch name {
		case "name":
			u.Name = value
		case "email":
			u.Email = NormalizeEmail(value)
		case "gender":
			u.Gender = value
		case "status":
			u.Status = value
		}
	}
	return nil
}
