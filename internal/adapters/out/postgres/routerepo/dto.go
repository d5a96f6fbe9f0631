// Package routerepo provides data transfer objects and mapping functions for
// delivery route persistence.
package routerepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/route"

	"github.com/google/uuid"
)

// RouteDTO represents the database structure for persisting delivery routes.
// A partial unique index on lower(city), created in the migration step,
// enforces at most one active route per city.
type RouteDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	City         string    `gorm:"index"`
	DeliveryDate time.Time
	Status       string `gorm:"type:varchar(32);index"`
}

// TableName specifies the database table name for route entities.
func (RouteDTO) TableName() string {
	return "delivery_routes"
}

// fromDomain converts a route domain aggregate to its database
// representation.
func fromDomain(aggregate *route.DeliveryRoute) RouteDTO {
	return RouteDTO{
		ID:           aggregate.ID().Bytes(),
		City:         aggregate.City(),
		DeliveryDate: aggregate.DeliveryDate(),
		Status:       aggregate.Status().String(),
	}
}

// toDomain converts a database DTO back to a route domain aggregate.
func toDomain(dto RouteDTO) (*route.DeliveryRoute, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := kernel.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return route.RestoreRoute(id, dto.City, dto.DeliveryDate, status)
}
