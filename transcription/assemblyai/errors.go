package assemblyai

import (
	"errors"
	"fmt"

	apperrors "github.com/kbukum/assemblyai-mcp/errors"
	"github.com/kbukum/assemblyai-mcp/httpclient"
)

// APIError is a failed AssemblyAI call. Message carries the text from the
// remote {"error": "..."} body when the service sent one.
type APIError struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("assemblyai %s failed (HTTP %d): %s", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("assemblyai %s failed: %s", e.Op, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// AppError converts the failure into the application taxonomy.
func (e *APIError) AppError() *apperrors.AppError {
	var httpErr *httpclient.Error
	if errors.As(e.Err, &httpErr) {
		return httpErr.AppError(ProviderName).WithDetail("operation", e.Op)
	}
	return apperrors.ExternalServiceError(ProviderName, e).WithDetail("operation", e.Op)
}

// newAPIError wraps an adapter failure for op.
func newAPIError(op string, err error) *APIError {
	apiErr := &APIError{Op: op, Message: err.Error(), Err: err}
	var httpErr *httpclient.Error
	if errors.As(err, &httpErr) {
		apiErr.StatusCode = httpErr.StatusCode
		apiErr.Message = httpErr.Message
	}
	return apiErr
}
