package postgres

import (
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/routerepo"

	"gorm.io/gorm"
)

// activeRouteIndexSQL enforces at most one pending/processing route per
// normalized city. Concurrent batch runs racing to create a city's route hit
// this index; the loser gets a duplicate-key error and reuses the winner's
// route.
const activeRouteIndexSQL = `
	CREATE UNIQUE INDEX IF NOT EXISTS uniq_active_route_per_city
	ON delivery_routes (lower(trim(city)))
	WHERE status IN ('pending', 'processing')
`

// Migrate creates or updates the schema for both aggregates and installs the
// partial unique index AutoMigrate cannot express.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&orderrepo.OrderDTO{}, &routerepo.RouteDTO{}); err != nil {
		return err
	}

	return db.Exec(activeRouteIndexSQL).Error
}
