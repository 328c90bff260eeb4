package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/linesmerrill/training-calendar-api/api"
	"github.com/linesmerrill/training-calendar-api/config"
	"github.com/linesmerrill/training-calendar-api/models"
	"github.com/linesmerrill/training-calendar-api/registration"
)

// Registration exposes the sign-up flow over HTTP
type Registration struct {
	Service *registration.Service
}

// RegisterHandler starts a registration and mails the verification code
func (h Registration) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var in registration.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeBadBody(w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	res, err := h.Service.Register(ctx, in)
	if err != nil {
		writeRegistrationError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, models.APIResponse{
		Success:   true,
		Message:   "Verification code sent to " + res.Email,
		ExpiresAt: res.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

// VerifyOTPHandler checks the code and creates the account
func (h Registration) VerifyOTPHandler(w http.ResponseWriter, r *http.Request) {
	var in registration.VerifyInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeBadBody(w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	res, err := h.Service.VerifyOTP(ctx, in)
	if err != nil {
		writeRegistrationError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, models.APIResponse{
		Success:   true,
		Message:   "Email verified, account created",
		AccountID: res.AccountID,
	})
}

// ResendOTPHandler issues a fresh code for a pending registration
func (h Registration) ResendOTPHandler(w http.ResponseWriter, r *http.Request) {
	var in registration.ResendInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeBadBody(w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	res, err := h.Service.ResendOTP(ctx, in)
	if err != nil {
		writeRegistrationError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, models.APIResponse{
		Success:   true,
		Message:   "A new verification code was sent to " + res.Email,
		ExpiresAt: res.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

func writeBadBody(w http.ResponseWriter, err error) {
	zap.S().Debugw("failed to decode request body", "error", err)
	api.WriteJSON(w, http.StatusBadRequest, models.APIResponse{
		Success: false,
		Message: "invalid request body",
	})
}

// writeRegistrationError maps the registration error taxonomy onto status codes
func writeRegistrationError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		invalid      *registration.ValidationError
		duplicate    *registration.DuplicateAccountError
		wrongCode    *registration.InvalidCodeError
		notification *registration.NotificationError
		store        *registration.StoreError
	)
	resp := models.APIResponse{Success: false, Message: err.Error()}
	requestID := api.RequestID(r.Context())

	switch {
	case errors.As(err, &invalid):
		api.WriteJSON(w, http.StatusBadRequest, resp)
	case errors.As(err, &duplicate):
		resp.Field = duplicate.Field
		api.WriteJSON(w, http.StatusConflict, resp)
	case errors.As(err, &wrongCode):
		remaining := wrongCode.Remaining
		resp.RemainingAttempts = &remaining
		api.WriteJSON(w, http.StatusBadRequest, resp)
	case errors.Is(err, registration.ErrNoPendingRegistration):
		api.WriteJSON(w, http.StatusNotFound, resp)
	case errors.Is(err, registration.ErrOTPExpired):
		api.WriteJSON(w, http.StatusGone, resp)
	case errors.Is(err, registration.ErrAttemptsExhausted):
		api.WriteJSON(w, http.StatusForbidden, resp)
	case errors.As(err, &notification):
		zap.S().Errorw("email delivery failed", "op", notification.Op, "error", notification.Err, "requestId", requestID)
		resp.Message = "failed to send email, please try again"
		api.WriteJSON(w, http.StatusBadGateway, resp)
	case errors.As(err, &store):
		zap.S().Errorw("account store failed", "op", store.Op, "error", store.Err, "requestId", requestID)
		resp.Message = "internal server error"
		api.WriteJSON(w, http.StatusInternalServerError, resp)
	default:
		config.ErrorStatus("registration failed", http.StatusInternalServerError, w, err)
	}
}
