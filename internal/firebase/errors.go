package firebase

import "errors"

// Closed error surface of the identity provider. Callers branch with
// errors.Is; the provider's own message text is preserved by wrapping.
var (
	ErrRemoteUnavailable       = errors.New("identity provider unavailable")
	ErrDuplicateEmail          = errors.New("email already registered with identity provider")
	ErrInvalidCredentialFormat = errors.New("identity provider rejected credential format")
	ErrInvalidCredentials      = errors.New("invalid email or password")
	ErrNotFound                = errors.New("account not found at identity provider")
)
