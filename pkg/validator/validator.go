package validator

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	"hospital-management/internal/domain/entity"

	"github.com/go-playground/validator/v10"
)

// MaxPasswordBytes is the longest input bcrypt will hash.
const MaxPasswordBytes = 72

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// "role" accepts only the closed set of account roles
	v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return entity.Role(fl.Field().String()).IsValid()
	})
	// "bcryptlen" caps a password at the bcrypt input limit, counted in bytes
	v.RegisterValidation("bcryptlen", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= MaxPasswordBytes
	})

	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return errs
	}

	for _, e := range validationErrors {
		field := e.Field()
		switch e.Tag() {
		case "required":
			errs[field] = field + " is required"
		case "min":
			errs[field] = field + " must be at least " + e.Param() + " characters"
		case "max":
			errs[field] = field + " must be at most " + e.Param() + " characters"
		case "gte":
			errs[field] = field + " must be greater than or equal to " + e.Param()
		case "lte":
			errs[field] = field + " must be less than or equal to " + e.Param()
		case "role":
			errs[field] = "Invalid role"
		case "bcryptlen":
			errs[field] = field + " must be at most " + strconv.Itoa(MaxPasswordBytes) + " bytes"
		default:
			errs[field] = field + " is invalid"
		}
	}

	return errs
}

// FormatValidationMessage joins the field errors into one line, ordered by field name
func (cv *CustomValidator) FormatValidationMessage(err error) string {
	errs := cv.FormatValidationErrors(err)
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	messages := make([]string, 0, len(fields))
	for _, field := range fields {
		messages = append(messages, errs[field])
	}
	return strings.Join(messages, "; ")
}
