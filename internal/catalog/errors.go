package catalog

import "errors"

// ErrValidation marks a draft or product that is missing required fields.
// Callers match it with errors.Is; the wrapped message names the field.
var ErrValidation = errors.New("validation failed")
