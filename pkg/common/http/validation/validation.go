package validation

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/huynhanx03/batchcollector/pkg/common/http/response"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// IsRequestValid validates req with its `validate` tags.
func IsRequestValid(req any) (bool, []response.FieldError) {
	err := validate.Struct(req)
	if err == nil {
		return true, nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return false, response.ToFieldErrors(ve)
	}
	return false, []response.FieldError{{Field: "", Rule: err.Error()}}
}
