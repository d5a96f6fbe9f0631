package order

import (
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Item is a line of an order: a product reference, quantity, the unit price
// captured at purchase time (minor currency units), and the customizations
// chosen by the customer (fabric, finish, dimensions and the like).
// Item is an immutable value object.
type Item struct {
	productID      kernel.UUID
	quantity       int
	unitPrice      int64
	customizations map[string]string
}

// NewItem creates a validated order line.
func NewItem(productID kernel.UUID, quantity int, unitPrice int64, customizations map[string]string) (Item, error) {
	if err := productID.Validate(); err != nil {
		return Item{}, err
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	if unitPrice < 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("unitPrice",
			fmt.Errorf("%d is negative", unitPrice))
	}

	copied := make(map[string]string, len(customizations))
	for k, v := range customizations {
		copied[k] = v
	}

	return Item{
		productID:      productID,
		quantity:       quantity,
		unitPrice:      unitPrice,
		customizations: copied,
	}, nil
}

// ProductID returns the purchased product's identifier.
func (i Item) ProductID() kernel.UUID {
	return i.productID
}

// Quantity returns the number of units purchased.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the per-unit price at purchase, in minor currency units.
func (i Item) UnitPrice() int64 {
	return i.unitPrice
}

// Customizations returns a copy of the chosen customizations.
func (i Item) Customizations() map[string]string {
	copied := make(map[string]string, len(i.customizations))
	for k, v := range i.customizations {
		copied[k] = v
	}
	return copied
}
