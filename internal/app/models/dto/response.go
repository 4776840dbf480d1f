// Package dto defines the request and response shapes of the HTTP API.
package dto

import (
	"time"

	"github.com/teamthree/jobapply/internal/app/models"
)

// ErrorResponse is the envelope for every failed request: a stable category
// string plus a human-readable detail.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// MessageResponse is the envelope for mutating endpoints that return no
// resource body.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SubmitApplicationResponse reports the outcome of an application submission.
// Success=false covers expected business refusals (closed role, no open
// positions), which are 200s rather than errors.
type SubmitApplicationResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	ApplicationID int64  `json:"applicationID,omitempty"`
}

// AutoCloseResponse reports the result of a close sweep.
type AutoCloseResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	ClosedCount int64  `json:"closedCount"`
}

// AuthResponse carries the issued token and the sanitized user.
type AuthResponse struct {
	Success   bool         `json:"success"`
	Message   string       `json:"message"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *models.User `json:"user"`
}

// HealthResponse is the liveness probe body.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}
