package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSubmitCancellationCommand(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		orderID := kernel.NewUUID()
		userID := kernel.NewUUID()
		cmd, err := commands.NewSubmitCancellationCommand(orderID, userID, kernel.ActorUser, "changed my mind")
		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.True(t, orderID.IsEqual(cmd.OrderID()))
		assert.True(t, userID.IsEqual(cmd.UserID()))
		assert.Equal(t, kernel.ActorUser, cmd.Actor())
		assert.Equal(t, "changed my mind", cmd.Reason())
	})

	t.Run("invalid_order_id", func(t *testing.T) {
		_, err := commands.NewSubmitCancellationCommand(kernel.UUID{}, kernel.NewUUID(), kernel.ActorUser, "reason")
		require.Error(t, err)
	})

	t.Run("invalid_user_id", func(t *testing.T) {
		_, err := commands.NewSubmitCancellationCommand(kernel.NewUUID(), kernel.UUID{}, kernel.ActorUser, "reason")
		require.Error(t, err)
	})

	t.Run("invalid_actor", func(t *testing.T) {
		_, err := commands.NewSubmitCancellationCommand(kernel.NewUUID(), kernel.NewUUID(), kernel.ActorUnknown, "reason")
		require.Error(t, err)
	})

	t.Run("empty_reason_is_accepted", func(t *testing.T) {
		cmd, err := commands.NewSubmitCancellationCommand(kernel.NewUUID(), kernel.NewUUID(), kernel.ActorUser, "")
		require.NoError(t, err)
		assert.Empty(t, cmd.Reason())
	})
}

func TestSubmitCancellationCommand_Validate_ZeroValue(t *testing.T) {
	var cmd commands.SubmitCancellationCommand
	require.ErrorIs(t, cmd.Validate(), commands.ErrSubmitCancellationCommandIsNotConstructed)
}
