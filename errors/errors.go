package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// RPCCode returns the JSON-RPC error code for this error.
func (e *AppError) RPCCode() int { return RPCCode(e.Code) }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// --- Protocol Error Constructors ---

// UnknownTool creates a new AppError for a tool name absent from the registry.
func UnknownTool(name string) *AppError {
	return &AppError{
		Code: ErrCodeMethodNotFound, Message: fmt.Sprintf("Unknown tool: %s", name),
		Details: map[string]any{"tool": name},
	}
}

// InvalidParams creates a new AppError for arguments that failed validation.
func InvalidParams(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidParams, Message: message,
	}
}

// MissingField creates a new AppError for a missing or wrongly typed required argument.
func MissingField(field string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidParams, Message: fmt.Sprintf("Missing or invalid required argument: %s", field),
		Details: map[string]any{"field": field},
	}
}

// --- Execution Error Constructors ---

// Classified is implemented by errors that know their place in the
// application taxonomy, such as a failed remote call.
type Classified interface {
	AppError() *AppError
}

// ToolExecution creates a new AppError for a tool whose backend call failed.
// The message embeds both the tool name and the cause so hosts can show it
// as-is. When the cause is Classified, its code, retryable flag and details
// are carried over.
func ToolExecution(tool string, cause error) *AppError {
	msg := "An unknown error occurred"
	if cause != nil {
		msg = cause.Error()
	}
	appErr := &AppError{
		Code: ErrCodeToolExecution, Message: fmt.Sprintf("Error executing tool %s: %s", tool, msg),
		Cause: cause,
	}

	var classified Classified
	if stderrors.As(cause, &classified) {
		if inner := classified.AppError(); inner != nil {
			appErr.Code = inner.Code
			appErr.Retryable = inner.Retryable
			appErr.WithDetails(inner.Details)
		}
	}
	return appErr.WithDetail("tool", tool)
}

// Internal creates a new AppError for an internal error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		Retryable: false, Cause: cause,
	}
}

// ExternalServiceError creates a new AppError for an error from an external service.
func ExternalServiceError(service string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeExternalService, Message: fmt.Sprintf("The %s service encountered an error.", service),
		Retryable: true, Details: map[string]any{"service": service}, Cause: cause,
	}
}

// MissingConfig creates a new AppError for a required configuration value.
func MissingConfig(key string) *AppError {
	return &AppError{
		Code: ErrCodeMissingConfig, Message: fmt.Sprintf("%s is required", key),
		Details: map[string]any{"key": key},
	}
}
