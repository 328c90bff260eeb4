// Package docs Training Calendar API.
//
// Documentation of Training Calendar API.
//
//     Schemes: https
//     BasePath: /
//     Version: 1.0.0
//
//     Consumes:
//     - application/json
//
//     Produces:
//     - application/json
//
// swagger:meta
package docs

import (
	"github.com/linesmerrill/training-calendar-api/models"
	"github.com/linesmerrill/training-calendar-api/registration"
)

// swagger:route GET /health health healthEndpointID
// Lists the healthchex of the web service api.
// responses:
//   200: healthResponse

// Shows the current health of the api. true means it is alive, false means it is not.
// swagger:response healthResponse
type healthResponseWrapper struct {
	// in:body
	Body models.HealthCheckResponse
}

// swagger:route POST /api/v1/users/register users registerUser
// Starts a registration and emails a six digit verification code.
// responses:
//   201: registrationResponse
//   400: registrationResponse
//   409: registrationResponse
//   429: registrationResponse
//   502: registrationResponse

// swagger:parameters registerUser
type registerParamsWrapper struct {
	// in:body
	Body registration.RegisterInput
}

// swagger:route POST /api/v1/users/verify-otp users verifyOTP
// Verifies the emailed code and creates the account.
// responses:
//   201: registrationResponse
//   400: registrationResponse
//   403: registrationResponse
//   404: registrationResponse
//   409: registrationResponse
//   410: registrationResponse

// swagger:parameters verifyOTP
type verifyParamsWrapper struct {
	// in:body
	Body registration.VerifyInput
}

// swagger:route POST /api/v1/users/resend-otp users resendOTP
// Sends a fresh code for a pending registration and resets its attempts.
// responses:
//   200: registrationResponse
//   404: registrationResponse
//   502: registrationResponse

// swagger:parameters resendOTP
type resendParamsWrapper struct {
	// in:body
	Body registration.ResendInput
}

// Result of a registration call. remainingAttempts is set on a wrong code,
// field on a duplicate account.
// swagger:response registrationResponse
type registrationResponseWrapper struct {
	// in:body
	Body models.APIResponse
}
