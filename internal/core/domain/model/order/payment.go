package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// PaymentMethod is how the customer paid for the order. Only card payments
// go through the external gateway and are therefore refundable through it.
type PaymentMethod int

const (
	PaymentMethodUnknown PaymentMethod = iota

	// PaymentMethodCard is a card payment processed by the external gateway.
	PaymentMethodCard

	// PaymentMethodCashOnDelivery is settled with the driver; refunds are
	// handled outside the system.
	PaymentMethodCashOnDelivery
)

func getPaymentMethodStrings() map[PaymentMethod]string {
	return map[PaymentMethod]string{
		PaymentMethodUnknown:        "unknown",
		PaymentMethodCard:           "card",
		PaymentMethodCashOnDelivery: "cash_on_delivery",
	}
}

// PaymentMethodFromString parses the persisted representation.
func PaymentMethodFromString(s string) (PaymentMethod, error) {
	for method, str := range getPaymentMethodStrings() {
		if str == s && method != PaymentMethodUnknown {
			return method, nil
		}
	}
	return PaymentMethodUnknown, errs.NewValueIsInvalidErrorWithCause("paymentMethod",
		fmt.Errorf("%q is not a valid payment method", s))
}

// Validate checks that the method is one of the defined values.
func (m PaymentMethod) Validate() error {
	if m != PaymentMethodCard && m != PaymentMethodCashOnDelivery {
		return errs.NewValueIsInvalidErrorWithCause("paymentMethod",
			fmt.Errorf("%d is not a valid payment method", m))
	}
	return nil
}

// String returns the lowercase name of the method.
func (m PaymentMethod) String() string {
	if str, ok := getPaymentMethodStrings()[m]; ok {
		return str
	}
	return "unknown"
}

// PaymentStatus is the settlement state of the order's payment.
type PaymentStatus int

const (
	PaymentStatusUnknown PaymentStatus = iota

	// PaymentPending: checkout completed, payment not yet confirmed.
	PaymentPending

	// PaymentPaid: the gateway confirmed the charge.
	PaymentPaid

	// PaymentFailed: the charge was declined.
	PaymentFailed

	// PaymentRefunded: a refund was issued after cancellation or return.
	PaymentRefunded
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentStatusUnknown: "unknown",
		PaymentPending:       "pending",
		PaymentPaid:          "paid",
		PaymentFailed:        "failed",
		PaymentRefunded:      "refunded",
	}
}

// PaymentStatusFromString parses the persisted representation.
func PaymentStatusFromString(s string) (PaymentStatus, error) {
	for status, str := range getPaymentStatusStrings() {
		if str == s && status != PaymentStatusUnknown {
			return status, nil
		}
	}
	return PaymentStatusUnknown, errs.NewValueIsInvalidErrorWithCause("paymentStatus",
		fmt.Errorf("%q is not a valid payment status", s))
}

// Validate checks that the status is one of the defined values.
func (s PaymentStatus) Validate() error {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus",
			fmt.Errorf("%d is not a valid payment status", s))
	}
}

// String returns the lowercase name of the status.
func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}
