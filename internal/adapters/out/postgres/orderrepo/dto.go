// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. This package implements the repository pattern for the
// order domain aggregate, handling the conversion between domain entities
// and database representations.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order
// aggregates. Statuses are stored as their string names so the partial
// indexes and raw queries read naturally.
//
// Timestamps are owned by the domain, so GORM's automatic tracking is
// disabled on them.
type OrderDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;index"`
	Status string    `gorm:"type:varchar(32);index"`

	PaymentMethod   string `gorm:"type:varchar(32)"`
	PaymentStatus   string `gorm:"type:varchar(32)"`
	PaymentIntentID string

	Items ItemsDTO `gorm:"type:jsonb;serializer:json"`

	Shipping AddressDTO `gorm:"embedded;embeddedPrefix:ship_"`

	RouteID      *uuid.UUID `gorm:"type:uuid;index"`
	DeliveryDate *time.Time

	CancellationReason      string
	CancellationRequestedAt *time.Time
	CancelledBy             *string `gorm:"type:varchar(16)"`

	ReturnReason      string
	ReturnRequestedAt *time.Time
	ReturnApprovedAt  *time.Time

	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is one order line inside the items JSON document. Order lines are
// immutable after checkout, so a document column beats a join table here.
type ItemDTO struct {
	ProductID      string            `json:"product_id"`
	Quantity       int               `json:"quantity"`
	UnitPrice      int64             `json:"unit_price"`
	Customizations map[string]string `json:"customizations,omitempty"`
}

// ItemsDTO is the JSON-serialized list of order lines.
type ItemsDTO []ItemDTO

// AddressDTO represents the embedded shipping destination within the orders
// table. The city column drives route batching.
type AddressDTO struct {
	Line1    string
	City     string `gorm:"index"`
	Postcode string
	Country  string
}

// fromDomain converts an order domain aggregate to its database
// representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var routeID *uuid.UUID
	if id := aggregate.RouteID(); id != nil {
		raw := id.Bytes()
		routeID = &raw
	}

	var cancelledBy *string
	if actor := aggregate.CancelledBy(); actor != nil {
		name := actor.String()
		cancelledBy = &name
	}

	items := make(ItemsDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			ProductID:      item.ProductID().String(),
			Quantity:       item.Quantity(),
			UnitPrice:      item.UnitPrice(),
			Customizations: item.Customizations(),
		})
	}

	address := aggregate.ShippingAddress()

	return OrderDTO{
		ID:              aggregate.ID().Bytes(),
		UserID:          aggregate.UserID().Bytes(),
		Status:          aggregate.Status().String(),
		PaymentMethod:   aggregate.PaymentMethod().String(),
		PaymentStatus:   aggregate.PaymentStatus().String(),
		PaymentIntentID: aggregate.PaymentIntentID(),
		Items:           items,
		Shipping: AddressDTO{
			Line1:    address.Line1(),
			City:     address.City(),
			Postcode: address.Postcode(),
			Country:  address.Country(),
		},
		RouteID:                 routeID,
		DeliveryDate:            aggregate.DeliveryDate(),
		CancellationReason:      aggregate.CancellationReason(),
		CancellationRequestedAt: aggregate.CancellationRequestedAt(),
		CancelledBy:             cancelledBy,
		ReturnReason:            aggregate.ReturnReason(),
		ReturnRequestedAt:       aggregate.ReturnRequestedAt(),
		ReturnApprovedAt:        aggregate.ReturnApprovedAt(),
		CreatedAt:               aggregate.CreatedAt(),
		UpdatedAt:               aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO back to an order domain aggregate via
// RestoreOrder, which revalidates the persisted state.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	status, err := kernel.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	paymentMethod, err := order.PaymentMethodFromString(dto.PaymentMethod)
	if err != nil {
		return nil, err
	}

	paymentStatus, err := order.PaymentStatusFromString(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		productID, itemErr := kernel.UUIDFromString(itemDTO.ProductID)
		if itemErr != nil {
			return nil, itemErr
		}
		item, itemErr := order.NewItem(productID, itemDTO.Quantity, itemDTO.UnitPrice, itemDTO.Customizations)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	address, err := order.NewAddress(dto.Shipping.Line1, dto.Shipping.City, dto.Shipping.Postcode, dto.Shipping.Country)
	if err != nil {
		return nil, err
	}

	var routeID *kernel.UUID
	if dto.RouteID != nil {
		rID, routeErr := kernel.UUIDFromBytes((*dto.RouteID)[:])
		if routeErr != nil {
			return nil, routeErr
		}
		routeID = &rID
	}

	var cancelledBy *kernel.Actor
	if dto.CancelledBy != nil {
		actor, actorErr := kernel.ActorFromString(*dto.CancelledBy)
		if actorErr != nil {
			return nil, actorErr
		}
		cancelledBy = &actor
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:                      id,
		UserID:                  userID,
		Status:                  status,
		PaymentMethod:           paymentMethod,
		PaymentStatus:           paymentStatus,
		PaymentIntentID:         dto.PaymentIntentID,
		Items:                   items,
		ShippingAddress:         address,
		RouteID:                 routeID,
		DeliveryDate:            dto.DeliveryDate,
		CancellationReason:      dto.CancellationReason,
		CancellationRequestedAt: dto.CancellationRequestedAt,
		CancelledBy:             cancelledBy,
		ReturnReason:            dto.ReturnReason,
		ReturnRequestedAt:       dto.ReturnRequestedAt,
		ReturnApprovedAt:        dto.ReturnApprovedAt,
		CreatedAt:               dto.CreatedAt,
		UpdatedAt:               dto.UpdatedAt,
	})
}
