package commands

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Resolution is an administrator's verdict on a pending cancellation or
// return request.
type Resolution int

const (
	// ResolutionUnknown represents an invalid or undefined resolution.
	ResolutionUnknown Resolution = iota

	// ResolutionApprove grants the request.
	ResolutionApprove

	// ResolutionReject denies the request and restores the order.
	ResolutionReject
)

// ResolutionFromString parses the API representation of a resolution
// ("approve" or "reject").
func ResolutionFromString(s string) (Resolution, error) {
	switch s {
	case "approve":
		return ResolutionApprove, nil
	case "reject":
		return ResolutionReject, nil
	default:
		return ResolutionUnknown, errs.NewValueIsInvalidErrorWithCause("resolution",
			fmt.Errorf("%q is not a valid resolution, expected approve or reject", s))
	}
}

// Validate checks that the Resolution is approve or reject.
func (r Resolution) Validate() error {
	if r != ResolutionApprove && r != ResolutionReject {
		return errs.NewValueIsInvalidErrorWithCause("resolution",
			fmt.Errorf("%d is not a valid resolution", r))
	}
	return nil
}

// String returns the lowercase name of the resolution.
func (r Resolution) String() string {
	switch r {
	case ResolutionApprove:
		return "approve"
	case ResolutionReject:
		return "reject"
	default:
		return "unknown"
	}
}
