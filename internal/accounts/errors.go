package accounts

import "errors"

// Validation failures terminate registration before any remote call.
var (
	ErrFieldsRequired   = errors.New("all fields are required")
	ErrInvalidEmail     = errors.New("enter a valid email address")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters long")
)

// ErrUserNotFound reports a provider account with no local counterpart; by
// the time a caller sees it the orphaned remote account has already been
// compensated away.
var ErrUserNotFound = errors.New("user does not exist")

// SignupError carries the local store's rejection of an otherwise valid
// registration. FieldErrors is keyed by field name, mirroring the response
// payload shape.
type SignupError struct {
	FieldErrors map[string][]string
	Err         error
}

func (e *SignupError) Error() string {
	return "user signup failed"
}

func (e *SignupError) Unwrap() error {
	return e.Err
}
