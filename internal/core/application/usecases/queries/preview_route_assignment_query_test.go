package queries_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPreviewRouteAssignmentQuery(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
		query, err := queries.NewPreviewRouteAssignmentQuery(date)
		require.NoError(t, err)
		require.NoError(t, query.Validate())
		assert.True(t, date.Equal(query.SuggestedDate()))
	})

	t.Run("zero_date", func(t *testing.T) {
		_, err := queries.NewPreviewRouteAssignmentQuery(time.Time{})
		require.ErrorIs(t, err, queries.ErrSuggestedDateIsRequired)
	})
}

func TestPreviewRouteAssignmentQuery_Validate_ZeroValue(t *testing.T) {
	var query queries.PreviewRouteAssignmentQuery
	require.ErrorIs(t, query.Validate(), queries.ErrPreviewRouteAssignmentQueryIsNotConstructed)
}

func TestGetPendingRequestsQuery_Validate(t *testing.T) {
	query := queries.NewGetPendingRequestsQuery()
	require.NoError(t, query.Validate())

	var zero queries.GetPendingRequestsQuery
	require.ErrorIs(t, zero.Validate(), queries.ErrGetPendingRequestsQueryIsNotConstructed)
}
