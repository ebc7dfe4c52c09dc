package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/cliptube/backend/internal/apierr"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// decodeJSON parses the request body into a validator-tagged command struct
// and checks it, so handlers only ever see well-formed input.
func decodeJSON(r *http.Request, dst any) error {
	if err := decodeBody(r, dst); err != nil {
		return err
	}
	return validateStruct(dst)
}

// decodeBody parses without validating, for handlers that normalize fields
// before the validator runs.
func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apierr.Validation("invalid request body").WithCause(err)
	}
	return nil
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		first := fieldErrs[0]
		switch first.Tag() {
		case "required":
			return apierr.Validation(fmt.Sprintf("%s is required", fieldName(first)))
		case "email":
			return apierr.Validation("invalid email address")
		case "min":
			return apierr.Validation(fmt.Sprintf("%s must be at least %s characters", fieldName(first), first.Param()))
		}
		return apierr.Validation(fmt.Sprintf("%s is invalid", fieldName(first)))
	}

	return apierr.Validation("invalid request").WithCause(err)
}

func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	if name == "" {
		return "field"
	}
	// Lower-case the leading rune so messages use the JSON field spelling.
	return string(name[0]|0x20) + name[1:]
}
