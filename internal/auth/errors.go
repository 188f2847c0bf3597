package auth

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountLocked      = errors.New("account temporarily locked")
	ErrAccountLockedNow   = errors.New("too many failed login attempts")
)

// InvalidCredentialsError is a wrong password for a known user.
type InvalidCredentialsError struct {
	AttemptsRemaining int
}

func (e *InvalidCredentialsError) Error() string {
	return fmt.Sprintf("incorrect password (%d attempts remaining)", e.AttemptsRemaining)
}

func (e *InvalidCredentialsError) Is(target error) bool { return target == ErrInvalidCredentials }

// AccountLockedError is returned while a lockout is still running.
type AccountLockedError struct {
	Remaining time.Duration
}

// RemainingSeconds rounds up, so a lock with 200ms left reports 1 second.
func (e *AccountLockedError) RemainingSeconds() int {
	return int(math.Ceil(e.Remaining.Seconds()))
}

func (e *AccountLockedError) Error() string {
	return fmt.Sprintf("account temporarily locked, try again in %d seconds", e.RemainingSeconds())
}

func (e *AccountLockedError) Is(target error) bool { return target == ErrAccountLocked }

// AccountLockedNowError is the failed attempt that started a lockout.
type AccountLockedNowError struct {
	Duration time.Duration
}

func (e *AccountLockedNowError) Error() string {
	return fmt.Sprintf("too many failed login attempts, account locked for %s", e.Duration)
}

func (e *AccountLockedNowError) Is(target error) bool { return target == ErrAccountLockedNow }
