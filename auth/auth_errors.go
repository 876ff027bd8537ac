package auth

import "errors"

// Error kinds for the authentication service. All are client-caused and
// terminal for the current operation.
var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrWithdrawnEmail     = errors.New("email previously withdrawn")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("incorrect password")
	ErrTokenInvalidated   = errors.New("token invalidated")
)

// Error pairs a kind with the offending email so callers can log and
// build precise client messages. Raw passwords and password hashes never
// appear in an error payload.
type Error struct {
	Kind  error
	Email string
}

func (e *Error) Error() string {
	if e.Email == "" {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Email
}

func (e *Error) Unwrap() error { return e.Kind }

func emailError(kind error, email string) error {
	return &Error{Kind: kind, Email: email}
}
