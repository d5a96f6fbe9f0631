// Package stripegw implements the payment gateway port on top of the Stripe
// API.
package stripegw

import (
	"context"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

// Gateway issues full refunds against Stripe payment intents.
type Gateway struct {
	api *client.API
}

// NewGateway creates a gateway with its own Stripe client, so the global
// stripe key stays untouched.
func NewGateway(apiKey string) *Gateway {
	api := &client.API{}
	api.Init(apiKey, nil)

	return &Gateway{api: api}
}

// Refund requests a full refund of the charge behind paymentIntentID. The
// context deadline set by the caller bounds the HTTP call.
func (g *Gateway) Refund(ctx context.Context, paymentIntentID string) (ports.RefundResult, error) {
	if paymentIntentID == "" {
		return ports.RefundResult{}, errs.NewValueIsRequiredError("paymentIntentID")
	}

	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(paymentIntentID),
	}
	params.Context = ctx

	result, err := g.api.Refunds.New(params)
	if err != nil {
		return ports.RefundResult{}, err
	}

	return ports.RefundResult{
		RefundID: result.ID,
		Outcome:  outcomeFromStatus(result.Status),
	}, nil
}

// outcomeFromStatus maps Stripe refund statuses onto the port's vocabulary.
// requires_action refunds settle after the customer acts, so they count as
// pending rather than failed.
func outcomeFromStatus(status stripe.RefundStatus) ports.RefundOutcome {
	switch status {
	case stripe.RefundStatusSucceeded:
		return ports.RefundSucceeded
	case stripe.RefundStatusPending, stripe.RefundStatusRequiresAction:
		return ports.RefundPending
	case stripe.RefundStatusCanceled:
		return ports.RefundCanceled
	case stripe.RefundStatusFailed:
		return ports.RefundFailed
	default:
		return ports.RefundOutcome(status)
	}
}
