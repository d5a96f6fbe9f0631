package commands_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/route"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetEligibleByCity(ctx context.Context, city string) ([]*order.Order, error) {
	args := m.Called(ctx, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllByRoute(ctx context.Context, routeID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, routeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockRouteRepository struct{ mock.Mock }

func (m *MockRouteRepository) Add(ctx context.Context, r *route.DeliveryRoute) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRouteRepository) Update(ctx context.Context, r *route.DeliveryRoute) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRouteRepository) Get(ctx context.Context, id kernel.UUID) (*route.DeliveryRoute, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*route.DeliveryRoute), args.Error(1)
}

func (m *MockRouteRepository) GetActiveByCity(ctx context.Context, city string) (*route.DeliveryRoute, error) {
	args := m.Called(ctx, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*route.DeliveryRoute), args.Error(1)
}

func (m *MockRouteRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) RouteRepository() ports.RouteRepository {
	args := m.Called()
	return args.Get(0).(ports.RouteRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockPaymentGateway struct{ mock.Mock }

func (m *MockPaymentGateway) Refund(ctx context.Context, paymentIntentID string) (ports.RefundResult, error) {
	args := m.Called(ctx, paymentIntentID)
	return args.Get(0).(ports.RefundResult), args.Error(1)
}

// Aggregate builders shared by the handler tests.

var fixedNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

// nowUTC is for fixtures whose age matters relative to the handler's real
// clock, e.g. the return window.
func nowUTC() time.Time {
	return time.Now().UTC()
}

func testItems(t *testing.T) []order.Item {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), 1, 14900, nil)
	require.NoError(t, err)
	return []order.Item{item}
}

func testAddress(t *testing.T, city string) order.Address {
	t.Helper()
	addr, err := order.NewAddress("1 Market Square", city, "LS1 4DT", "GB")
	require.NoError(t, err)
	return addr
}

// restoreOrder builds a persisted-looking order and applies mutate to the
// restore params before reconstruction.
func restoreOrder(t *testing.T, mutate func(*order.RestoreOrderParams)) *order.Order {
	t.Helper()

	params := order.RestoreOrderParams{
		ID:              kernel.NewUUID(),
		UserID:          kernel.NewUUID(),
		Status:          kernel.Pending,
		PaymentMethod:   order.PaymentMethodCard,
		PaymentStatus:   order.PaymentPaid,
		PaymentIntentID: "pi_test_123",
		Items:           testItems(t),
		ShippingAddress: testAddress(t, "Leeds"),
		CreatedAt:       fixedNow.AddDate(0, 0, -10),
		UpdatedAt:       fixedNow.AddDate(0, 0, -10),
	}
	if mutate != nil {
		mutate(&params)
	}

	aggregate, err := order.RestoreOrder(params)
	require.NoError(t, err)
	return aggregate
}

func restoreRoute(t *testing.T, city string, status kernel.Status) *route.DeliveryRoute {
	t.Helper()
	aggregate, err := route.RestoreRoute(kernel.NewUUID(), city, fixedNow.AddDate(0, 0, 2), status)
	require.NoError(t, err)
	return aggregate
}
