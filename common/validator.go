package common

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reports field errors by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateAndDecode decodes the JSON request body into payload and runs the
// struct's validate tags over it.
func ValidateAndDecode(r *http.Request, payload interface{}) *AppError {
	if r.Body == nil || r.Body == http.NoBody {
		return BadRequest("Request body is required", nil)
	}
	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		return BadRequest("Invalid request body", err)
	}

	if err := validate.Struct(payload); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return BadRequest(validationMessage(validationErrors), err)
		}
		return BadRequest("Invalid request body", err)
	}

	return nil
}

func validationMessage(errs validator.ValidationErrors) string {
	fe := errs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return "Missing required field: " + field
	case "min":
		return "Field " + field + " is too short"
	case "max":
		return "Field " + field + " is too long"
	default:
		return "Invalid value for field: " + field
	}
}
