// Package errors provides foundational, type-safe error primitives used across mublog.
//
// This package contains classified error types and helpers for robust error handling,
// including a fluent builder API for constructing ClassifiedError values with context.
//
// Key features:
//   - ErrorCategory: Broad error classification (config, parse, invariant, filesystem, feature, etc.)
//   - ErrorSeverity: Impact level (fatal, error, warning, info)
//   - ClassifiedError: Structured error with category, severity, and context
//   - ErrorBuilder: Fluent API for creating classified errors
//   - CLIErrorAdapter: exit codes and presentation for the command line
//
// Example usage:
//
//	err := errors.WrapError(cause, errors.CategoryFileSystem, "posts directory is missing").
//		WithContext("path", dir).
//		Build()
package errors
