package errors

import (
	mcpgo "github.com/mark3labs/mcp-go/mcp"
)

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Protocol errors. These map onto JSON-RPC 2.0 reserved codes; framing
// errors (parse, invalid request) are answered by the transport itself.
const (
	// ErrCodeMethodNotFound indicates an unknown method or tool name.
	ErrCodeMethodNotFound ErrorCode = "METHOD_NOT_FOUND"
	// ErrCodeInvalidParams indicates missing or wrongly typed arguments.
	ErrCodeInvalidParams ErrorCode = "INVALID_PARAMS"
)

// Execution errors
const (
	// ErrCodeToolExecution indicates a tool ran but its backend call failed.
	ErrCodeToolExecution ErrorCode = "TOOL_EXECUTION_FAILED"
	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
	// ErrCodeExternalService indicates an error from an external service.
	ErrCodeExternalService ErrorCode = "EXTERNAL_SERVICE_ERROR"
)

// Connection/Availability errors (retryable)
const (
	// ErrCodeConnectionFailed indicates a failed connection to a service.
	ErrCodeConnectionFailed ErrorCode = "CONNECTION_FAILED"
	// ErrCodeTimeout indicates the request timed out.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeRateLimited indicates the client is rate limited.
	ErrCodeRateLimited ErrorCode = "RATE_LIMITED"
)

// Configuration errors
const (
	// ErrCodeMissingConfig indicates a required configuration value is absent.
	ErrCodeMissingConfig ErrorCode = "MISSING_CONFIG"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeConnectionFailed: true,
	ErrCodeTimeout:          true,
	ErrCodeRateLimited:      true,
	ErrCodeExternalService:  true,
	ErrCodeInternal:         false,
}

var rpcCodes = map[ErrorCode]int{
	ErrCodeMethodNotFound: mcpgo.METHOD_NOT_FOUND,
	ErrCodeInvalidParams:  mcpgo.INVALID_PARAMS,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}

// RPCCode returns the JSON-RPC error code for an ErrorCode.
// Everything outside the protocol family is reported as an internal error.
func RPCCode(code ErrorCode) int {
	if c, ok := rpcCodes[code]; ok {
		return c
	}
	return mcpgo.INTERNAL_ERROR
}
