// Package validation provides struct tag validation for configuration
// and request payloads, mapping validator errors into the kit's
// structured error type.
package validation
