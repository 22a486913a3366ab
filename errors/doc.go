// Package errors provides structured error handling for the reactive kit:
// machine-readable error codes, HTTP status mapping for the demo service
// edge, and retryable detection.
package errors
