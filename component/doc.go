// Package component defines the lifecycle contract for long-running
// parts of the demo service (HTTP server, SSE hub) and a registry that
// starts them in order and stops them in reverse.
package component
