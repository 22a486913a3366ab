// Package middleware provides the standard Gin middleware stack:
// panic recovery, request IDs, CORS, request logging, and telemetry.
package middleware

// RequestIDKey is the Gin context key under which the request ID is stored.
const RequestIDKey = "request_id"
