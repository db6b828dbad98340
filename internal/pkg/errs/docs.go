// Package errs provides standardized error types for the AGU application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the domain model and the persistence adapters.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For numeric values outside of their bounds
//   - ValueIsDuplicatedError: For values that break a uniqueness rule inside an aggregate
//   - ObjectNotFoundError: For when an object cannot be found
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel
//
// Expected business failures of application services do not use these types; they are
// returned through either.Either with an operation specific error kind.
package errs
