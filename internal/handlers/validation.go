package handlers

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"agritrack/internal/models"
	"agritrack/internal/services"

	"github.com/go-playground/validator/v10"
)

// newValidator configures validator with the request tags used by the models
// package. Errors are reported under the JSON field name.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Number is validated as its textual form: absent is nil, so omitempty and
	// required behave as for pointers, and 0 stays distinguishable from unset.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		n, ok := field.Interface().(models.Number)
		if !ok || !n.Present {
			return nil
		}
		if n.Invalid {
			return "invalid"
		}
		return strconv.FormatFloat(n.Value, 'f', -1, 64)
	}, models.Number{})

	mustRegister(v, "numeric_value", func(fl validator.FieldLevel) bool {
		_, err := strconv.ParseFloat(fl.Field().String(), 64)
		return err == nil
	})
	mustRegister(v, "positive", func(fl validator.FieldLevel) bool {
		f, err := strconv.ParseFloat(fl.Field().String(), 64)
		return err == nil && f > 0
	})
	mustRegister(v, "not_blank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	mustRegister(v, "calendar_date", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		_, err := models.ParseDate(s)
		return err == nil
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s: %v", tag, err))
	}
}

// validateRequest runs the struct tags of req and returns a *services.ValidationError
// listing every failing field.
func validateRequest(v *validator.Validate, req interface{}) error {
	err := v.Struct(req)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	details := make([]services.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, services.FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return &services.ValidationError{Details: details}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "not_blank":
		return "is required"
	case "required_if":
		return "is required when time_frame is custom"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "numeric_value":
		return "must be a number"
	case "positive":
		return "must be greater than 0"
	case "calendar_date":
		return "must be a date (YYYY-MM-DD)"
	}
	return "is invalid"
}
