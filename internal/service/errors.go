package service

import "errors"

// Error kinds surfaced to the HTTP layer. Access checks themselves are
// boolean predicates; services translate a false result into ErrAccessDenied
// so handlers can map it to a 403.
var (
	ErrAccessDenied = errors.New("access denied")
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
)
