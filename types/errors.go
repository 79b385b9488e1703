package types

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Callers match with errors.Is; StorageError and
// ValidationFailed usually arrive wrapped with detail.
var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrValidationFailed     = errors.New("validation failed")
	ErrStorageError         = errors.New("storage error")
	ErrNotFound             = errors.New("not found")
)

// User-facing message constants shared by the auth service and handlers.
// Wrong password and unknown username deliberately share one message.
const (
	MsgInvalidCredentials = "invalid username or password"
	MsgAccountLocked      = "account temporarily locked, try again later"
	MsgNoUserLoggedIn     = "no user logged in"
	MsgWrongOldPassword   = "current password incorrect"
)

// StorageErr wraps a driver failure so errors.Is(err, ErrStorageError) holds
// while the underlying cause stays inspectable.
func StorageErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStorageError, err)
}
