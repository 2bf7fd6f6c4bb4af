package dto

import (
	"github.com/go-playground/validator/v10"

	apperrors "github.com/spec-kit/placement-portal/pkg/util"
)

var validate = validator.New()

// Validate checks struct tags and converts failures into a validation error
// carrying the offending fields.
func Validate(s any) error {
	if err := validate.Struct(s); err != nil {
		fields := map[string]any{}
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				fields[fe.Field()] = fe.Tag()
			}
		}
		return apperrors.NewValidationError("request validation failed", fields)
	}
	return nil
}
