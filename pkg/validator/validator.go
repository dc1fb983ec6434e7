// Package validator decodes and validates JSON request bodies with
// go-playground/validator. Field errors are reported by their JSON name.
package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/tocampus/governance/pkg/httpx"
)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	// notblank rejects whitespace-only strings such as a rejection reason of "  ".
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// Validate runs struct-level validation.
func Validate(s any) error {
	return validate.Struct(s)
}

// FormatValidationErrors maps each failing field to a readable message. Any
// error that is not a validator.ValidationErrors yields an empty map.
func FormatValidationErrors(err error) map[string]string {
	errs := make(map[string]string)
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return errs
	}
	for _, e := range ve {
		errs[fieldPath(e)] = formatFieldError(e)
	}
	return errs
}

// fieldPath keeps the index of dive errors, e.g. "share_to[1]".
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return e.Field()
}

func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "notblank":
		return "Must not be blank"
	case "uuid", "uuid4":
		return "Must be a valid UUID"
	case "min":
		if e.Kind() == reflect.Slice {
			return fmt.Sprintf("Must contain at least %s items", e.Param())
		}
		return fmt.Sprintf("Minimum length is %s", e.Param())
	case "max":
		if e.Kind() == reflect.Slice {
			return fmt.Sprintf("Must contain at most %s items", e.Param())
		}
		return fmt.Sprintf("Maximum length is %s", e.Param())
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", e.Param())
	case "lte":
		return fmt.Sprintf("Must be less than or equal to %s", e.Param())
	case "oneof", "oneofci":
		return fmt.Sprintf("Must be one of: %s", e.Param())
	default:
		return fmt.Sprintf("Validation failed on '%s'", e.Tag())
	}
}

// ValidateRequest decodes the JSON body into T and validates it. On failure
// it writes the response itself and returns (nil, false): 413 when the body
// exceeds the router's cap, 400 for malformed JSON and 422 with per-field
// messages for validation errors.
func ValidateRequest[T any](w http.ResponseWriter, r *http.Request) (*T, bool) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httpx.JSONError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return nil, false
		}
		httpx.JSONError(w, http.StatusBadRequest, "Invalid JSON")
		return nil, false
	}
	if err := Validate(&req); err != nil {
		httpx.JSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "Validation failed",
			"fields": FormatValidationErrors(err),
		})
		return nil, false
	}
	return &req, true
}
