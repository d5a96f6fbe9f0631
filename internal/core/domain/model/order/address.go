package order

import (
	"fulfillment/internal/pkg/errs"
)

// Address is the delivery destination snapshot taken at checkout. It is
// frozen on the order so later address-book edits do not move a scheduled
// delivery. City is the batching key for route assignment; it is free text
// and may normalize to nothing, in which case the order is simply never
// grouped (see services.NormalizeCity).
type Address struct {
	line1    string
	city     string
	postcode string
	country  string
}

// NewAddress creates a validated address snapshot. Only line1 is mandatory;
// city is free text on purpose (orders with a blank city stay unassigned
// rather than failing checkout).
func NewAddress(line1, city, postcode, country string) (Address, error) {
	if line1 == "" {
		return Address{}, errs.NewValueIsRequiredError("line1")
	}

	return Address{
		line1:    line1,
		city:     city,
		postcode: postcode,
		country:  country,
	}, nil
}

// Line1 returns the street line.
func (a Address) Line1() string { return a.line1 }

// City returns the raw city text used as the batching key.
func (a Address) City() string { return a.city }

// Postcode returns the postal code.
func (a Address) Postcode() string { return a.postcode }

// Country returns the country.
func (a Address) Country() string { return a.country }
