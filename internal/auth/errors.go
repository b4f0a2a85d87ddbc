package auth

import "errors"

// sentinel errors for the flat failure modes of the auth flows
var (
	// ErrInvalidCredentials covers both unknown email and password
	// mismatch at login. The two causes are never distinguished in a
	// response, to avoid account enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailTaken means the normalized email already exists.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidToken covers missing, malformed, expired or
	// bad-signature tokens, and tokens whose subject user no longer
	// exists. Callers see one flat failure regardless of cause.
	ErrInvalidToken = errors.New("invalid token")
)

// ValidationError reports malformed or missing registration/login input.
// Details enumerates the failing fields when more than one can be named.
type ValidationError struct {
	Message string
	Details map[string]string
}

func (e *ValidationError) Error() string { return e.Message }
