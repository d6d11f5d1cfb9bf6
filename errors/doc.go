// Package errors provides unified error handling for the bridge.
// It implements structured error types with error codes, JSON-RPC code
// mapping, and retryable detection.
package errors
