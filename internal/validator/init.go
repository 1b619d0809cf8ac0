package validator

import (
	"github.com/go-playground/validator/v10"
)

// validate is the shared instance. validator.Validate caches struct
// metadata, so one instance serves the whole process.
var validate = validator.New(validator.WithRequiredStructEnabled())

func GetValidator() *validator.Validate {
	return validate
}
