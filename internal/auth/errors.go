package auth

import (
	"errors"
	"fmt"
)

// Errors surfaced by the auth service. Callers map these onto the
// result envelope; nothing panics across this boundary.
var (
	ErrWeakPassword         = errors.New("password too short")
	ErrDuplicateUser        = errors.New("username or email already in use")
	ErrUserNotFound         = errors.New("invalid credentials")
	ErrAccountInactive      = errors.New("account is deactivated")
	ErrAdminPasswordWrong   = errors.New("admin bootstrap password required")
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionExpired       = errors.New("session expired")
	ErrUserInactive         = errors.New("user is deactivated")
	ErrOldPasswordIncorrect = errors.New("old password incorrect")
	ErrTokenMissing         = errors.New("token missing")
)

// LockedError reports a locked account with the remaining lockout window,
// so callers can show an actionable countdown instead of a generic denial.
type LockedError struct {
	Seconds int64
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("account locked, retry in %d seconds", e.Seconds)
}
