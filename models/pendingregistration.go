package models

import "time"

// PendingRegistration is a candidate account waiting for its email to be
// verified with a one-time code. It only ever lives in process memory.
type PendingRegistration struct {
	Name           string
	Email          string
	EmployeeNumber int
	PasswordHash   string
	Code           string
	ExpiresAt      time.Time
	AttemptCount   int
}
