package document

import "errors"

// Business errors; handlers map them to HTTP status codes.
var (
	ErrNotFound   = errors.New("not_found")  // 404
	ErrValidation = errors.New("validation") // 400
	ErrForbidden  = errors.New("forbidden")  // 403
	ErrUpstream   = errors.New("upstream")   // 500, storage or database failure
)
