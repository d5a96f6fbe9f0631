package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSetRouteStatusCommand(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		routeID := kernel.NewUUID()
		cmd, err := commands.NewSetRouteStatusCommand(routeID, kernel.Shipped)
		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.True(t, routeID.IsEqual(cmd.RouteID()))
		assert.Equal(t, kernel.Shipped, cmd.Status())
	})

	t.Run("order_only_status_rejected", func(t *testing.T) {
		_, err := commands.NewSetRouteStatusCommand(kernel.NewUUID(), kernel.CancellationRequested)
		require.Error(t, err)
	})

	t.Run("invalid_route_id", func(t *testing.T) {
		_, err := commands.NewSetRouteStatusCommand(kernel.UUID{}, kernel.Shipped)
		require.Error(t, err)
	})
}
