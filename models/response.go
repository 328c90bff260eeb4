package models

// HealthCheckResponse is returned by the health endpoint
type HealthCheckResponse struct {
	Alive bool `json:"alive"`
}

// APIResponse is the envelope used by the registration endpoints
type APIResponse struct {
	Success           bool   `json:"success"`
	Message           string `json:"message"`
	Field             string `json:"field,omitempty"`
	RemainingAttempts *int   `json:"remainingAttempts,omitempty"`
	AccountID         string `json:"accountId,omitempty"`
	ExpiresAt         string `json:"expiresAt,omitempty"`
}
