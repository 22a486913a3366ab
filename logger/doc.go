// Package logger provides structured logging built on zerolog.
//
// It supports a global logger for package-level convenience functions and
// per-component instances created with New or WithComponent. Output format
// is either machine-readable JSON or a colorized console format for
// development.
package logger
