package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConflict indicates that the request is incompatible with the current
// state of the resource (e.g. a loan that was already processed).
var ErrConflict = errors.New("conflicting state")

// ErrForbidden indicates that the authenticated actor lacks the role
// required for the requested operation.
var ErrForbidden = errors.New("forbidden")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInternal indicates an unexpected failure that should not be exposed in detail.
var ErrInternal = errors.New("internal error")
