package httpclient

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	apperrors "github.com/kbukum/assemblyai-mcp/errors"
)

// ErrorCode classifies HTTP client errors.
type ErrorCode int

const (
	// ErrCodeTimeout indicates a request or connection timeout.
	ErrCodeTimeout ErrorCode = iota
	// ErrCodeConnection indicates a connection failure (refused, DNS, etc).
	ErrCodeConnection
	// ErrCodeAuth indicates an authentication/authorization failure (401/403).
	ErrCodeAuth
	// ErrCodeNotFound indicates the resource was not found (404).
	ErrCodeNotFound
	// ErrCodeRateLimit indicates rate limiting (429).
	ErrCodeRateLimit
	// ErrCodeValidation indicates a client-side validation error (400).
	ErrCodeValidation
	// ErrCodeServer indicates a server-side error (5xx).
	ErrCodeServer
)

// String returns the error code name.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeTimeout:
		return "timeout"
	case ErrCodeConnection:
		return "connection"
	case ErrCodeAuth:
		return "auth"
	case ErrCodeNotFound:
		return "not_found"
	case ErrCodeRateLimit:
		return "rate_limit"
	case ErrCodeValidation:
		return "validation"
	case ErrCodeServer:
		return "server"
	default:
		return "unknown"
	}
}

// Error is a structured HTTP client error with classification.
type Error struct {
	// StatusCode is the HTTP status code (0 for connection-level errors).
	StatusCode int
	// Code classifies the error.
	Code ErrorCode
	// Message describes the error. For HTTP errors it carries the message
	// the remote service put in its JSON error body, when there is one.
	Message string
	// Retryable indicates whether the operation could be retried.
	Retryable bool
	// Body is the original response body (may be nil).
	Body []byte
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("httpclient: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("httpclient: %s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// AppError converts the error into the application taxonomy.
func (e *Error) AppError(service string) *apperrors.AppError {
	var code apperrors.ErrorCode
	switch e.Code {
	case ErrCodeTimeout:
		code = apperrors.ErrCodeTimeout
	case ErrCodeConnection:
		code = apperrors.ErrCodeConnectionFailed
	case ErrCodeRateLimit:
		code = apperrors.ErrCodeRateLimited
	default:
		code = apperrors.ErrCodeExternalService
	}
	appErr := apperrors.New(code, e.Message).WithCause(e).WithDetail("service", service)
	appErr.Retryable = e.Retryable
	if e.StatusCode > 0 {
		appErr.WithDetail("status", e.StatusCode)
	}
	return appErr
}

// NewTimeoutError creates a timeout error.
func NewTimeoutError(err error) *Error {
	return &Error{
		Code:      ErrCodeTimeout,
		Message:   err.Error(),
		Retryable: true,
		Err:       err,
	}
}

// NewConnectionError creates a connection error.
func NewConnectionError(err error) *Error {
	return &Error{
		Code:      ErrCodeConnection,
		Message:   err.Error(),
		Retryable: true,
		Err:       err,
	}
}

// NewValidationError creates a client-side validation error.
func NewValidationError(msg string) *Error {
	return &Error{
		Code:      ErrCodeValidation,
		Message:   msg,
		Retryable: false,
	}
}

// maxBodyText caps how much of a non-JSON error body ends up in a message.
const maxBodyText = 512

// newStatusError builds an HTTP status error. The message is the remote
// JSON error message, else the body text, else the bare status.
func newStatusError(statusCode int, code ErrorCode, retryable bool, body []byte) *Error {
	msg := BodyMessage(body)
	if msg == "" {
		msg = bodyText(body)
	}
	if msg == "" {
		msg = fmt.Sprintf("HTTP %d", statusCode)
	}
	return &Error{
		StatusCode: statusCode,
		Code:       code,
		Message:    msg,
		Retryable:  retryable,
		Body:       body,
	}
}

// ClassifyStatusCode converts an HTTP status code into a typed error.
// Returns nil for 2xx status codes.
func ClassifyStatusCode(statusCode int, body []byte) *Error {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return nil
	case statusCode == 401 || statusCode == 403:
		return newStatusError(statusCode, ErrCodeAuth, false, body)
	case statusCode == 404:
		return newStatusError(statusCode, ErrCodeNotFound, false, body)
	case statusCode == 429:
		return newStatusError(statusCode, ErrCodeRateLimit, true, body)
	case statusCode >= 400 && statusCode < 500:
		return newStatusError(statusCode, ErrCodeValidation, false, body)
	case statusCode >= 500:
		return newStatusError(statusCode, ErrCodeServer, true, body)
	default:
		return newStatusError(statusCode, ErrCodeServer, false, body)
	}
}

// BodyMessage extracts a human-readable message from a JSON error body of
// the shape {"error": "..."} or {"message": "..."}. It returns "" when the
// body carries neither.
func BodyMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var payload struct {
		Error   json.RawMessage `json:"error"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if len(payload.Error) > 0 {
		var s string
		if err := json.Unmarshal(payload.Error, &s); err == nil && s != "" {
			return s
		}
		var nested struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(payload.Error, &nested); err == nil && nested.Message != "" {
			return nested.Message
		}
	}
	return strings.TrimSpace(payload.Message)
}

// bodyText returns the trimmed body, cut to maxBodyText bytes on a rune
// boundary.
func bodyText(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= maxBodyText {
		return text
	}
	cut := maxBodyText
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "..."
}
