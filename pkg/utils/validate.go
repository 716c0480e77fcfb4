package utils

import "github.com/go-playground/validator/v10"

// Validate is the shared validator instance used for request bodies and
// models before they hit the database.
var Validate = validator.New()
