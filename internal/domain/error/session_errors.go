package error

import "errors"

// Session domain errors.
var (
	// ErrSessionNotFound is returned when a session id is unknown or has expired.
	ErrSessionNotFound = errors.New("session not found")

	// ErrMissingToken is returned when a request carries no session token.
	ErrMissingToken = errors.New("missing session token")

	// ErrInvalidToken is returned when a session token is malformed, forged or expired.
	ErrInvalidToken = errors.New("invalid session token")

	// ErrRateLimited is returned when a client exceeds the upload rate limit.
	ErrRateLimited = errors.New("rate limited")
)

// SessionErrorCode defines error codes for session errors.
type SessionErrorCode string

const (
	ErrCodeSessionNotFound SessionErrorCode = "SES-010001"
	ErrCodeMissingToken    SessionErrorCode = "SES-020001"
	ErrCodeInvalidToken    SessionErrorCode = "SES-020002"
	ErrCodeRateLimited     SessionErrorCode = "SES-030001"
	ErrCodeInternalError   SessionErrorCode = "SES-990001"
)

// SessionError represents a session error with code and message.
type SessionError struct {
	Code    SessionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *SessionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *SessionError) Unwrap() error {
	return e.Err
}

// NewSessionError creates a new SessionError with the given code and message.
func NewSessionError(code SessionErrorCode, message string, err error) *SessionError {
	return &SessionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
