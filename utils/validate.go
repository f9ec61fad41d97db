package utils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct runs validator tags on a request payload and returns one
// readable message listing every failing field.
func ValidateStruct(payload interface{}) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	var fields []string
	for _, fieldErr := range err.(validator.ValidationErrors) {
		fields = append(fields, fmt.Sprintf("%s (%s)", fieldErr.Field(), fieldErr.Tag()))
	}
	return fmt.Errorf("invalid fields: %s", strings.Join(fields, ", "))
}
