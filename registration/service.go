// Package registration turns a sign-up request into a verified account in
// two steps: a pending entry holding a one-time code, then code verification.
package registration

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/linesmerrill/training-calendar-api/models"
	"github.com/linesmerrill/training-calendar-api/otp"
	"github.com/linesmerrill/training-calendar-api/validate"
)

// DefaultPasswordCost is the bcrypt cost used when Policy leaves it unset.
const DefaultPasswordCost = 10

const (
	opRegister = "register"
	opVerify   = "verify"
	opResend   = "resend"
)

// AccountStore is the committed account collection
type AccountStore interface {
	AccountExistsByEmail(ctx context.Context, email string) (bool, error)
	AccountExistsByEmployeeNumber(ctx context.Context, employeeNumber int) (bool, error)
	InsertVerifiedAccount(ctx context.Context, name, email string, employeeNumber int, passwordHash string) (string, error)
}

// Notifier delivers the registration emails
type Notifier interface {
	SendCode(ctx context.Context, email, name, code string) error
	SendWelcome(ctx context.Context, name, email string, employeeNumber int) error
}

// Recorder receives operation outcomes. Nil is allowed.
type Recorder interface {
	RegistrationOutcome(op, outcome string)
	PendingRegistrations(n int)
}

// Policy holds the code lifetime, the wrong-code budget and the hash cost.
type Policy struct {
	CodeTTL      time.Duration
	MaxAttempts  int
	PasswordCost int
}

// RegisterInput is a sign-up request
type RegisterInput struct {
	Name           string `json:"name" validate:"required,max=100"`
	Email          string `json:"email" validate:"required,email,max=100"`
	EmployeeNumber int    `json:"employeeNumber" validate:"gt=0"`
	Password       string `json:"password" validate:"required,min=8,max=72"`
}

// VerifyInput is a code submission
type VerifyInput struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,number"`
}

// ResendInput asks for a fresh code
type ResendInput struct {
	Email string `json:"email" validate:"required,email"`
}

// RegisterResult describes the pending entry after register or resend.
type RegisterResult struct {
	Email     string
	ExpiresAt time.Time
}

// VerifyResult describes the committed account.
type VerifyResult struct {
	AccountID string
	Email     string
}

// Service runs the registration state machine. The exported fields may be
// replaced before first use.
type Service struct {
	Store    *PendingStore
	Accounts AccountStore
	Notifier Notifier
	Policy   Policy
	Codes    otp.Generator
	Now      func() time.Time
	Recorder Recorder
}

// NewService builds a Service with an empty pending store and the real clock
func NewService(accounts AccountStore, notifier Notifier, policy Policy) *Service {
	if policy.PasswordCost == 0 {
		policy.PasswordCost = DefaultPasswordCost
	}
	return &Service{
		Store:    NewPendingStore(),
		Accounts: accounts,
		Notifier: notifier,
		Policy:   policy,
		Codes:    otp.NewGenerator(policy.CodeTTL),
		Now:      time.Now,
	}
}

// Register validates the request, stores a pending entry and mails the code.
// If the code cannot be sent the pending entry is discarded again.
func (s *Service) Register(ctx context.Context, in RegisterInput) (res RegisterResult, err error) {
	defer func() { s.observe(opRegister, err) }()

	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	if err := validate.Struct(in); err != nil {
		return RegisterResult{}, &ValidationError{Message: err.Error()}
	}

	exists, err := s.Accounts.AccountExistsByEmail(ctx, in.Email)
	if err != nil {
		return RegisterResult{}, &StoreError{Op: "check email", Err: err}
	}
	if exists {
		return RegisterResult{}, &DuplicateAccountError{Field: FieldEmail}
	}
	exists, err = s.Accounts.AccountExistsByEmployeeNumber(ctx, in.EmployeeNumber)
	if err != nil {
		return RegisterResult{}, &StoreError{Op: "check employee number", Err: err}
	}
	if exists {
		return RegisterResult{}, &DuplicateAccountError{Field: FieldEmployeeNumber}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.Policy.PasswordCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return RegisterResult{}, &ValidationError{Message: "password must be at most 72 bytes"}
		}
		return RegisterResult{}, fmt.Errorf("hashing password: %w", err)
	}

	code, expiresAt := s.Codes.Issue(s.Now())
	s.Store.Put(in.Email, models.PendingRegistration{
		Name:           in.Name,
		Email:          in.Email,
		EmployeeNumber: in.EmployeeNumber,
		PasswordHash:   string(hash),
		Code:           code,
		ExpiresAt:      expiresAt,
	})

	if err := s.Notifier.SendCode(ctx, in.Email, in.Name, code); err != nil {
		s.Store.Discard(in.Email, code)
		return RegisterResult{}, &NotificationError{Op: "send verification code", Err: err}
	}

	zap.S().Infow("pending registration created", "email", in.Email, "expiresAt", expiresAt)
	return RegisterResult{Email: in.Email, ExpiresAt: expiresAt}, nil
}

// VerifyOTP checks a submitted code and commits the account on a match.
// At most one verification of a pending entry commits an account.
func (s *Service) VerifyOTP(ctx context.Context, in VerifyInput) (res VerifyResult, err error) {
	defer func() { s.observe(opVerify, err) }()

	in.Email = normalizeEmail(in.Email)
	in.Code = strings.TrimSpace(in.Code)
	if err := validate.Struct(in); err != nil {
		return VerifyResult{}, &ValidationError{Message: err.Error()}
	}

	rec, ok := s.Store.Get(in.Email)
	if !ok {
		return VerifyResult{}, ErrNoPendingRegistration
	}
	if otp.IsExpired(rec.ExpiresAt, s.Now()) {
		s.Store.Discard(in.Email, rec.Code)
		return VerifyResult{}, ErrOTPExpired
	}
	if rec.AttemptCount >= s.Policy.MaxAttempts {
		s.Store.Discard(in.Email, rec.Code)
		return VerifyResult{}, ErrAttemptsExhausted
	}

	if subtle.ConstantTimeCompare([]byte(in.Code), []byte(rec.Code)) != 1 {
		n, err := s.Store.IncrementAttempt(in.Email)
		if err != nil {
			return VerifyResult{}, ErrNoPendingRegistration
		}
		remaining := s.Policy.MaxAttempts - n
		if remaining < 0 {
			remaining = 0
		}
		return VerifyResult{}, &InvalidCodeError{Remaining: remaining}
	}

	// claim the entry; a concurrent verify or resend may have taken it
	if !s.Store.Discard(in.Email, rec.Code) {
		return VerifyResult{}, ErrNoPendingRegistration
	}

	id, err := s.Accounts.InsertVerifiedAccount(ctx, rec.Name, rec.Email, rec.EmployeeNumber, rec.PasswordHash)
	if err != nil {
		var dup interface{ DuplicateField() string }
		if errors.As(err, &dup) {
			return VerifyResult{}, &DuplicateAccountError{Field: dup.DuplicateField()}
		}
		s.Store.Restore(rec)
		return VerifyResult{}, &StoreError{Op: "create account", Err: err}
	}

	zap.S().Infow("account verified", "accountId", id, "email", rec.Email)

	// the account is committed, a failed welcome email is only logged
	if err := s.Notifier.SendWelcome(ctx, rec.Name, rec.Email, rec.EmployeeNumber); err != nil {
		zap.S().Warnw("failed to send welcome email", "accountId", id, "email", rec.Email, "error", err)
	}

	return VerifyResult{AccountID: id, Email: rec.Email}, nil
}

// ResendOTP replaces the code of a pending entry, resets its attempts and
// mails the new code. The new code stays stored even if mailing fails.
func (s *Service) ResendOTP(ctx context.Context, in ResendInput) (res RegisterResult, err error) {
	defer func() { s.observe(opResend, err) }()

	in.Email = normalizeEmail(in.Email)
	if err := validate.Struct(in); err != nil {
		return RegisterResult{}, &ValidationError{Message: err.Error()}
	}

	code, expiresAt := s.Codes.Issue(s.Now())
	rec, err := s.Store.Reissue(in.Email, code, expiresAt)
	if err != nil {
		return RegisterResult{}, ErrNoPendingRegistration
	}

	if err := s.Notifier.SendCode(ctx, rec.Email, rec.Name, code); err != nil {
		return RegisterResult{}, &NotificationError{Op: "resend verification code", Err: err}
	}

	zap.S().Infow("verification code reissued", "email", rec.Email, "expiresAt", expiresAt)
	return RegisterResult{Email: rec.Email, ExpiresAt: expiresAt}, nil
}

func (s *Service) observe(op string, err error) {
	if err != nil {
		zap.S().Debugw("registration operation failed", "op", op, "error", err)
	}
	if s.Recorder == nil {
		return
	}
	s.Recorder.RegistrationOutcome(op, Outcome(err))
	s.Recorder.PendingRegistrations(s.Store.Len())
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
