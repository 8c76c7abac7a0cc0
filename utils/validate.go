package utils

import "github.com/go-playground/validator/v10"

// Validate checks the `validate:` tags on request structs.
var Validate = validator.New()
