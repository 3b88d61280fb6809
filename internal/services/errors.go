package services

import "errors"

// Error taxonomy surfaced to the API layer. Handlers map these to
// response codes; everything else is treated as a storage failure.
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation failed")
)
