package ports

import "context"

// RefundOutcome is the gateway's verdict on a refund request.
type RefundOutcome string

const (
	RefundSucceeded RefundOutcome = "succeeded"
	RefundPending   RefundOutcome = "pending"
	RefundFailed    RefundOutcome = "failed"
	RefundCanceled  RefundOutcome = "canceled"
)

// Accepted reports whether the outcome counts as a successful refund
// initiation. The gateway may settle asynchronously, so pending is accepted.
func (o RefundOutcome) Accepted() bool {
	return o == RefundSucceeded || o == RefundPending
}

// RefundResult is the gateway's response to a refund request.
type RefundResult struct {
	RefundID string
	Outcome  RefundOutcome
}

// PaymentGateway is the external card gateway contract. Implementations
// must respect the context deadline; the refund command reports a timeout
// as a retryable upstream failure without mutating local state.
type PaymentGateway interface {
	// Refund requests a refund of the full charge referenced by
	// paymentIntentID.
	Refund(ctx context.Context, paymentIntentID string) (RefundResult, error)
}
