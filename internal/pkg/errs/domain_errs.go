package errs

import "fmt"

// InvalidStateError reports that an operation is not legal for the entity's
// current status. The current status is always part of the message so an
// operator can decide the next step without inspecting internal state.
type InvalidStateError struct {
	Operation     string
	CurrentStatus string
	Detail        string
}

func NewInvalidStateError(operation, currentStatus string) *InvalidStateError {
	return &InvalidStateError{Operation: operation, CurrentStatus: currentStatus}
}

// NewInvalidStateErrorWithDetail attaches an operator-facing explanation, e.g.
// "order is already cancelled" vs. a generic transition refusal.
func NewInvalidStateErrorWithDetail(operation, currentStatus, detail string) *InvalidStateError {
	return &InvalidStateError{Operation: operation, CurrentStatus: currentStatus, Detail: detail}
}

func (e *InvalidStateError) Error() string {
	if e.Detail != "" {
		return sanitize(fmt.Sprintf("%s: %s: %s (current status: %s)",
			ErrInvalidState, e.Operation, e.Detail, e.CurrentStatus))
	}
	return sanitize(fmt.Sprintf("%s: %s (current status: %s)",
		ErrInvalidState, e.Operation, e.CurrentStatus))
}

func (e *InvalidStateError) Unwrap() error { return ErrInvalidState }

// ForbiddenError reports an ownership or role violation.
type ForbiddenError struct {
	Operation string
	Detail    string
}

func NewForbiddenError(operation, detail string) *ForbiddenError {
	return &ForbiddenError{Operation: operation, Detail: detail}
}

func (e *ForbiddenError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s: %s", ErrForbidden, e.Operation, e.Detail))
}

func (e *ForbiddenError) Unwrap() error { return ErrForbidden }

// ReturnWindowExpiredError reports that a return was requested too long after
// delivery.
type ReturnWindowExpiredError struct {
	DaysSinceDelivery int
	WindowDays        int
}

func NewReturnWindowExpiredError(daysSinceDelivery, windowDays int) *ReturnWindowExpiredError {
	return &ReturnWindowExpiredError{DaysSinceDelivery: daysSinceDelivery, WindowDays: windowDays}
}

func (e *ReturnWindowExpiredError) Error() string {
	return sanitize(fmt.Sprintf("%s: %d days since delivery, window is %d days",
		ErrReturnWindowExpired, e.DaysSinceDelivery, e.WindowDays))
}

func (e *ReturnWindowExpiredError) Unwrap() error { return ErrReturnWindowExpired }

// UpstreamGatewayError reports a payment gateway failure. Handlers returning
// it guarantee no local state was mutated, so the caller may retry as-is.
type UpstreamGatewayError struct {
	Operation string
	Outcome   string
	Cause     error
}

func NewUpstreamGatewayError(operation, outcome string) *UpstreamGatewayError {
	return &UpstreamGatewayError{Operation: operation, Outcome: outcome}
}

func NewUpstreamGatewayErrorWithCause(operation string, cause error) *UpstreamGatewayError {
	return &UpstreamGatewayError{Operation: operation, Cause: cause}
}

func (e *UpstreamGatewayError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrUpstreamGateway, e.Operation, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s (outcome: %s)", ErrUpstreamGateway, e.Operation, e.Outcome))
}

func (e *UpstreamGatewayError) Unwrap() error { return ErrUpstreamGateway }
