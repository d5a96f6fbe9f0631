package services

import (
	"sort"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// NormalizeCity produces the batching key for a shipping city: trimmed and
// lowercased. Two differently-capitalized spellings of a city collapse to
// one key. An empty result means the city has no usable text and the order
// is excluded from grouping entirely.
func NormalizeCity(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}

// EligibleOrder is the slice of an order the planner needs: its id and raw
// shipping city. Eligibility (no route, status pending/processing) is the
// caller's responsibility; the stores filter for it.
type EligibleOrder struct {
	ID   kernel.UUID
	City string
}

// ActiveRoute is the slice of a delivery route the planner matches against:
// a route in pending/processing status.
type ActiveRoute struct {
	ID           kernel.UUID
	City         string
	DeliveryDate time.Time
	Status       kernel.Status
}

// ProposedRoute is a preview entry for a city with no active route: a route
// the executor would create, with the caller-supplied date as suggestion.
type ProposedRoute struct {
	City          string
	OrderCount    int
	SuggestedDate time.Time
}

// ReusableRoute is a preview entry for a city that already has an active
// route. The route's own date and status win over the caller-supplied date.
type ReusableRoute struct {
	RouteID      kernel.UUID
	City         string
	OrderCount   int
	DeliveryDate time.Time
	Status       kernel.Status
}

// AssignmentPlan is the advisory output of a dry run. Both lists are sorted
// by city so repeated previews over unchanged data are byte-identical.
type AssignmentPlan struct {
	NewRoutes      []ProposedRoute
	ExistingRoutes []ReusableRoute
}

// RoutePlanner groups eligible orders into delivery-route batches by
// normalized shipping city and matches each group against existing active
// routes. It is a pure domain service: it never mutates anything, so the
// preview built on it is safe to call repeatedly.
type RoutePlanner struct{}

// NewRoutePlanner creates a route planner.
func NewRoutePlanner() *RoutePlanner {
	return &RoutePlanner{}
}

// cityGroup accumulates one batch during grouping. The display city is the
// first trimmed spelling seen, so "London" beats "  london " if it arrived
// first.
type cityGroup struct {
	display string
	orders  []kernel.UUID
}

func (p *RoutePlanner) groupByCity(orders []EligibleOrder) map[string]*cityGroup {
	groups := make(map[string]*cityGroup)
	for _, o := range orders {
		key := NormalizeCity(o.City)
		if key == "" {
			continue
		}
		group, ok := groups[key]
		if !ok {
			group = &cityGroup{display: strings.TrimSpace(o.City)}
			groups[key] = group
		}
		group.orders = append(group.orders, o.ID)
	}
	return groups
}

// FindActiveRoute returns the active route matching the city
// (trim + case-insensitive), or nil.
func (p *RoutePlanner) FindActiveRoute(city string, routes []ActiveRoute) *ActiveRoute {
	key := NormalizeCity(city)
	if key == "" {
		return nil
	}
	for i := range routes {
		if NormalizeCity(routes[i].City) == key && routes[i].Status.IsActiveRoute() {
			return &routes[i]
		}
	}
	return nil
}

// Plan produces the dry-run view: eligible orders grouped by city, each
// group matched against the active routes, split into routes to reuse and
// routes to create (with suggestedDate as the proposed date).
func (p *RoutePlanner) Plan(orders []EligibleOrder, routes []ActiveRoute, suggestedDate time.Time) AssignmentPlan {
	groups := p.groupByCity(orders)

	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var plan AssignmentPlan
	for _, key := range keys {
		group := groups[key]
		if existing := p.FindActiveRoute(key, routes); existing != nil {
			plan.ExistingRoutes = append(plan.ExistingRoutes, ReusableRoute{
				RouteID:      existing.ID,
				City:         existing.City,
				OrderCount:   len(group.orders),
				DeliveryDate: existing.DeliveryDate,
				Status:       existing.Status,
			})
			continue
		}
		plan.NewRoutes = append(plan.NewRoutes, ProposedRoute{
			City:          group.display,
			OrderCount:    len(group.orders),
			SuggestedDate: suggestedDate,
		})
	}

	return plan
}
