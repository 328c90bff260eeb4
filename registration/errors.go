package registration

import (
	"errors"
	"fmt"
)

// Fields reported by DuplicateAccountError.
const (
	FieldEmail          = "email"
	FieldEmployeeNumber = "employeeNumber"
)

var (
	// ErrNotFound is returned by the PendingStore when no entry exists for an email.
	ErrNotFound = errors.New("pending registration not found")
	// ErrNoPendingRegistration means the email has no live pending registration.
	ErrNoPendingRegistration = errors.New("no pending registration found for this email, please register again")
	// ErrOTPExpired means the verification code outlived its TTL. The pending entry is gone.
	ErrOTPExpired = errors.New("verification code has expired, please register again")
	// ErrAttemptsExhausted means too many wrong codes were submitted. The pending entry is gone.
	ErrAttemptsExhausted = errors.New("too many invalid attempts, please register again")
)

// ValidationError is malformed input rejected before any state changes.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "invalid input: " + e.Message
}

// DuplicateAccountError is returned when a committed account already holds
// the email or the employee number.
type DuplicateAccountError struct {
	Field string
}

func (e *DuplicateAccountError) Error() string {
	if e.Field == FieldEmployeeNumber {
		return "an account with this employee number already exists"
	}
	return "an account with this email already exists"
}

// InvalidCodeError is a wrong code submission.
type InvalidCodeError struct {
	Remaining int
}

func (e *InvalidCodeError) Error() string {
	return fmt.Sprintf("invalid verification code, %d attempts remaining", e.Remaining)
}

// NotificationError wraps a failed outbound email.
type NotificationError struct {
	Op  string
	Err error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *NotificationError) Unwrap() error { return e.Err }

// StoreError wraps a persistent store failure.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Outcome names a result for metrics and logs.
func Outcome(err error) string {
	var (
		invalid      *ValidationError
		duplicate    *DuplicateAccountError
		wrongCode    *InvalidCodeError
		notification *NotificationError
		store        *StoreError
	)
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &invalid):
		return "invalid"
	case errors.As(err, &duplicate):
		return "duplicate"
	case errors.As(err, &wrongCode):
		return "wrong_code"
	case errors.As(err, &notification):
		return "notification_failed"
	case errors.As(err, &store):
		return "store_error"
	case errors.Is(err, ErrNoPendingRegistration):
		return "no_pending"
	case errors.Is(err, ErrOTPExpired):
		return "expired"
	case errors.Is(err, ErrAttemptsExhausted):
		return "exhausted"
	}
	return "error"
}
