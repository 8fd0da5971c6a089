package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateRequest checks a request struct before it hits the wire, so a
// form with an obviously bad field fails fast with the same error shape
// the backend would produce.
func validateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, strings.ToLower(fe.Field()))
	}
	return &Error{
		StatusCode: http.StatusBadRequest,
		Code:       "validation_error",
		Message:    fmt.Sprintf("invalid field(s): %s", strings.Join(fields, ", ")),
	}
}
