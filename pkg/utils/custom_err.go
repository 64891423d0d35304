package utils

import "errors"

var (
	ErrInvalidPage     = errors.New("invalid page parameter")
	ErrInvalidPageSize = errors.New("invalid page size parameter")
	ErrDatabaseError   = errors.New("database error")
	ErrDuplicateEntry  = errors.New("duplicate entry")

	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already taken")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidImage       = errors.New("unsupported picture format")

	ErrNotAdmin         = errors.New("acting user is not an admin")
	ErrUnknownSource    = errors.New("unknown job source")
	ErrJobNotFound      = errors.New("job not found")
	ErrSearchNotFound   = errors.New("saved search not found")
	ErrNothingToUpdate  = errors.New("no fields to update")
	ErrCheckoutDisabled = errors.New("checkout is not configured")
)

// FieldError is a validation failure tied to one form field. Message is
// shown to the user as is.
type FieldError struct {
	Field   string
	Message string
	Err     error
}

func NewFieldError(field, message string, err error) *FieldError {
	return &FieldError{Field: field, Message: message, Err: err}
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
