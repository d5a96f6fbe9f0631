package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRefundOrderCommand(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		orderID := kernel.NewUUID()
		cmd, err := commands.NewRefundOrderCommand(orderID)
		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.True(t, orderID.IsEqual(cmd.OrderID()))
	})

	t.Run("invalid_order_id", func(t *testing.T) {
		_, err := commands.NewRefundOrderCommand(kernel.UUID{})
		require.Error(t, err)
	})
}

func TestRefundOrderCommand_Validate_ZeroValue(t *testing.T) {
	var cmd commands.RefundOrderCommand
	require.ErrorIs(t, cmd.Validate(), commands.ErrRefundOrderCommandIsNotConstructed)
}
