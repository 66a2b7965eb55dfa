package validator

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"doctor-portal/internal/domain/entity"

	"github.com/go-playground/validator/v10"
)

const (
	KindMissingField  = "MissingField"
	KindInvalidFormat = "InvalidFormat"
)

// ValidationError is the first failing field of a payload, classified as either a
// missing field or a malformed one. Fields holds a message for every failing field.
type ValidationError struct {
	Kind    string
	Field   string
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func MissingField(field string) *ValidationError {
	msg := field + " is required"
	return &ValidationError{Kind: KindMissingField, Field: field, Message: msg, Fields: map[string]string{field: msg}}
}

func InvalidFormat(field, msg string) *ValidationError {
	if msg == "" {
		msg = field + " is invalid"
	}
	return &ValidationError{Kind: KindInvalidFormat, Field: field, Message: msg, Fields: map[string]string{field: msg}}
}

type CustomValidator struct {
	validator *validator.Validate
	now       func() time.Time
}

func NewValidator() *CustomValidator {
	cv := &CustomValidator{
		validator: validator.New(),
		now:       time.Now,
	}

	// report json names so errors match the request payload
	cv.validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	cv.validator.RegisterValidation("specialization", func(fl validator.FieldLevel) bool {
		return entity.IsValidSpecialization(fl.Field().String())
	})
	cv.validator.RegisterValidation("notfutureyear", func(fl validator.FieldLevel) bool {
		return fl.Field().Int() <= int64(cv.now().Year())
	})

	return cv
}

// Validate checks i against its struct tags. The returned error, if any, is a
// *ValidationError: missing fields are reported before malformed ones.
func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	var firstMissing, firstInvalid *ValidationError
	fields := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		field := fieldPath(e)
		msg := message(field, e)
		fields[field] = msg

		if isMissing(e) {
			if firstMissing == nil {
				firstMissing = &ValidationError{Kind: KindMissingField, Field: field, Message: msg}
			}
		} else if firstInvalid == nil {
			firstInvalid = &ValidationError{Kind: KindInvalidFormat, Field: field, Message: msg}
		}
	}

	result := firstMissing
	if result == nil {
		result = firstInvalid
	}
	result.Fields = fields
	return result
}

// FormatValidationErrors flattens err into field -> message pairs.
func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	if verr, ok := err.(*ValidationError); ok {
		return verr.Fields
	}
	return map[string]string{}
}

func isMissing(e validator.FieldError) bool {
	if e.Tag() == "required" || strings.HasPrefix(e.Tag(), "required_") {
		return true
	}
	// an empty list fails "min" but is reported as absent
	kind := e.Kind()
	if (kind == reflect.Slice || kind == reflect.Array) && e.Tag() == "min" {
		return reflect.ValueOf(e.Value()).Len() == 0
	}
	return false
}

// fieldPath strips the top-level struct name from the namespace, so nested
// fields read as "medications[0].dosage".
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return e.Field()
}

func message(field string, e validator.FieldError) string {
	switch e.Tag() {
	case "required", "required_with":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "min":
		if e.Kind() == reflect.Slice || e.Kind() == reflect.Array {
			return fmt.Sprintf("%s must contain at least %s item(s)", field, e.Param())
		}
		return field + " must be at least " + e.Param() + " characters"
	case "max":
		return field + " must be at most " + e.Param() + " characters"
	case "len":
		return field + " must be exactly " + e.Param() + " characters"
	case "numeric", "number":
		return field + " must contain digits only"
	case "gte":
		return field + " must be greater than or equal to " + e.Param()
	case "lte":
		return field + " must be less than or equal to " + e.Param()
	case "oneof":
		return field + " must be one of: " + e.Param()
	case "uuid":
		return field + " must be a valid UUID"
	case "datetime":
		return field + " must use the format YYYY-MM-DD"
	case "specialization":
		return field + " must be one of: " + strings.Join(entity.Specializations, ", ")
	case "notfutureyear":
		return field + " cannot be in the future"
	default:
		return field + " is invalid"
	}
}
