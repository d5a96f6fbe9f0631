package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PreviewRouteAssignmentQueryHandler reads the assignable orders and active
// routes straight from the database and feeds them to the domain planner.
// The handler holds no transaction: the preview is advisory and the executor
// re-reads everything anyway.
type PreviewRouteAssignmentQueryHandler struct {
	db *gorm.DB
}

// NewPreviewRouteAssignmentQueryHandler creates a handler for assignment
// previews.
func NewPreviewRouteAssignmentQueryHandler(db *gorm.DB) PreviewRouteAssignmentQueryHandler {
	return PreviewRouteAssignmentQueryHandler{db: db}
}

// Handle executes the preview. Orders without usable city text are excluded
// from grouping; results are sorted by city for stable output.
func (h PreviewRouteAssignmentQueryHandler) Handle(
	ctx context.Context,
	query PreviewRouteAssignmentQuery,
) (PreviewRouteAssignmentQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return PreviewRouteAssignmentQueryResponse{}, err
	}

	orders, err := h.readEligibleOrders(ctx)
	if err != nil {
		return PreviewRouteAssignmentQueryResponse{}, err
	}

	routes, err := h.readActiveRoutes(ctx)
	if err != nil {
		return PreviewRouteAssignmentQueryResponse{}, err
	}

	plan := services.NewRoutePlanner().Plan(orders, routes, query.SuggestedDate())

	response := PreviewRouteAssignmentQueryResponse{}
	for _, proposed := range plan.NewRoutes {
		response.NewRoutes = append(response.NewRoutes, ProposedRouteResponse{
			City:          proposed.City,
			OrderCount:    proposed.OrderCount,
			SuggestedDate: proposed.SuggestedDate,
		})
	}
	for _, reusable := range plan.ExistingRoutes {
		response.ExistingRoutes = append(response.ExistingRoutes, ReusableRouteResponse{
			RouteID:      reusable.RouteID,
			City:         reusable.City,
			OrderCount:   reusable.OrderCount,
			DeliveryDate: reusable.DeliveryDate,
			Status:       reusable.Status,
		})
	}

	return response, nil
}

func (h PreviewRouteAssignmentQueryHandler) readEligibleOrders(ctx context.Context) ([]services.EligibleOrder, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			ship_city
		FROM orders
		WHERE route_id IS NULL
		  AND status IN ('pending', 'processing')
		ORDER BY id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]services.EligibleOrder, 0)
	for rows.Next() {
		var id uuid.UUID
		var city string

		if err = rows.Scan(&id, &city); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		orders = append(orders, services.EligibleOrder{ID: orderID, City: city})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

func (h PreviewRouteAssignmentQueryHandler) readActiveRoutes(ctx context.Context) ([]services.ActiveRoute, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			city,
			delivery_date,
			status
		FROM delivery_routes
		WHERE status IN ('pending', 'processing')
		ORDER BY city
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	routes := make([]services.ActiveRoute, 0)
	for rows.Next() {
		var active services.ActiveRoute
		var id uuid.UUID
		var statusText string

		if err = rows.Scan(&id, &active.City, &active.DeliveryDate, &statusText); err != nil {
			return nil, err
		}

		routeID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		active.ID = routeID

		status, statusErr := kernel.StatusFromString(statusText)
		if statusErr != nil {
			return nil, statusErr
		}
		active.Status = status

		routes = append(routes, active)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return routes, nil
}
