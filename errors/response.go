package errors

import (
	stderrors "errors"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
)

// ErrorData is the data member of a JSON-RPC error sent to the host. It
// carries the application code alongside the protocol code.
type ErrorData struct {
	Code      ErrorCode      `json:"code"`
	Retryable bool           `json:"retryable,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
}

// ToRPC converts an AppError to the JSON-RPC error object.
func (e *AppError) ToRPC() mcpgo.JSONRPCErrorDetails {
	return mcpgo.NewJSONRPCErrorDetails(e.RPCCode(), e.Message, &ErrorData{
		Code:      e.Code,
		Retryable: e.Retryable,
		Details:   e.Details,
	})
}

// ToRPC converts any error into a JSON-RPC error object.
// Errors that are not AppErrors become internal errors carrying their message.
func ToRPC(err error) mcpgo.JSONRPCErrorDetails {
	if appErr, ok := AsAppError(err); ok {
		return appErr.ToRPC()
	}
	msg := "An unexpected error occurred."
	if err != nil {
		msg = err.Error()
	}
	return mcpgo.NewJSONRPCErrorDetails(mcpgo.INTERNAL_ERROR, msg, &ErrorData{Code: ErrCodeInternal})
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err is an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}
