package queries

import (
	"context"
	"database/sql"
	"time"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPendingRequestsQueryHandler reads the triage queue from the database.
type GetPendingRequestsQueryHandler struct {
	db *gorm.DB
}

// NewGetPendingRequestsQueryHandler creates a handler for triage queue
// queries.
func NewGetPendingRequestsQueryHandler(db *gorm.DB) GetPendingRequestsQueryHandler {
	return GetPendingRequestsQueryHandler{db: db}
}

// Handle executes the query. Results are ordered by request age, oldest
// first, so the queue front is what has waited longest.
func (h GetPendingRequestsQueryHandler) Handle(
	ctx context.Context,
	query GetPendingRequestsQuery,
) ([]GetPendingRequestsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			user_id,
			status,
			cancellation_reason,
			cancellation_requested_at,
			return_reason,
			return_requested_at
		FROM orders
		WHERE status IN ('cancellation_requested', 'return_requested')
		ORDER BY COALESCE(cancellation_requested_at, return_requested_at), id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]GetPendingRequestsQueryResponse, 0)
	for rows.Next() {
		var id, userID uuid.UUID
		var status string
		var cancellationReason, returnReason sql.NullString
		var cancellationRequestedAt, returnRequestedAt sql.NullTime

		if err = rows.Scan(
			&id,
			&userID,
			&status,
			&cancellationReason,
			&cancellationRequestedAt,
			&returnReason,
			&returnRequestedAt,
		); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		ownerID, idErr := kernel.UUIDFromBytes(userID[:])
		if idErr != nil {
			return nil, idErr
		}

		entry := GetPendingRequestsQueryResponse{
			OrderID:     orderID,
			UserID:      ownerID,
			RequestType: status,
		}
		if status == kernel.CancellationRequested.String() {
			entry.Reason = cancellationReason.String
			entry.RequestedAt = nullableTime(cancellationRequestedAt)
		} else {
			entry.Reason = returnReason.String
			entry.RequestedAt = nullableTime(returnRequestedAt)
		}

		requests = append(requests, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}

func nullableTime(t sql.NullTime) time.Time {
	if t.Valid {
		return t.Time
	}
	return time.Time{}
}
