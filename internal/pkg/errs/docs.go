// Package errs provides standardized error types for the pricing pipeline.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used by every stage handler and adapter.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is malformed
//   - ValueIsOutOfRangeError: For when a value falls outside its bounds
//   - ObjectNotFoundError: For when a referenced record cannot be found
//   - DownstreamDispatchError: For when a store write or event emission fails
//   - NotificationDispatchError: For when the notification channel rejects a message
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// The required/invalid/out-of-range errors also match ErrValidation, which lets
// StatusCode and IsRetryable classify any error produced by a handler:
//
//	400 validation    never retried
//	404 not found     retried by the transport (eventual consistency)
//	500 downstream    retried by the transport
//	500 notification  terminal, logged only
package errs
