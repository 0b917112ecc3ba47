// Package errors provides the structured error type shared by the picoview
// client, the sandbox backend and the CLI.
//
// AppError carries a machine-readable code, an HTTP status, a retryable hint
// and free-form details. The sandbox renders it as a JSON envelope with
// ToResponse; the CLI converts REST client failures into it for display.
package errors
