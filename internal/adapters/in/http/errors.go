package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the JSON error body returned by every endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// respondError maps a use-case error to its HTTP status and writes the error
// body.
func respondError(ctx echo.Context, err error) error {
	status := statusFromError(err)
	return ctx.JSON(status, Error{
		Code:    status,
		Message: err.Error(),
	})
}

// statusFromError translates the error taxonomy into HTTP statuses. Version
// conflicts and state conflicts both land on 409: the client's view of the
// order is stale either way.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsInvalid), errors.Is(err, errs.ErrValueIsRequired):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrReturnWindowExpired):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrInvalidState),
		errors.Is(err, errs.ErrVersionIsInvalid),
		errors.Is(err, errs.ErrObjectAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, errs.ErrUpstreamGateway):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
