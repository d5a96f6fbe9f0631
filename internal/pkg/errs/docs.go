// Package errs provides standardized error types for the fulfillment application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes error types for the failure classes the order lifecycle,
// route batching, and refund components report:
//   - ObjectNotFoundError: an entity is missing
//   - ValueIsRequiredError / ValueIsInvalidError: malformed input
//   - InvalidStateError: an operation is not legal for the current order/route status
//   - ForbiddenError: ownership or role violation
//   - ReturnWindowExpiredError: a return was requested after the allowed window
//   - VersionIsInvalidError: an optimistic-concurrency conflict on write
//   - UpstreamGatewayError: the payment gateway failed; local state is never mutated
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrInvalidState)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Callers classify failures with errors.Is against the sentinels; only
// ErrUpstreamGateway is retryable as-is, all other classes require a changed
// request.
package errs
