// Package handler exposes the management API over HTTP. Handlers translate
// between the transport and the application services and own the mapping
// from service errors to status codes.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jovz/residence-hub/internal/application/workflow"
	"github.com/jovz/residence-hub/internal/domain/announcement"
	"github.com/jovz/residence-hub/internal/domain/room"
	"github.com/jovz/residence-hub/internal/domain/tenant"
	"github.com/jovz/residence-hub/internal/domain/validation"
	"github.com/jovz/residence-hub/internal/infra/storage/upstream"
)

// errorResponse is the uniform error body. Step is only present when a
// multi-step workflow aborted partway, so clients can tell "nothing
// happened" from "the tenant was written but the room flag was not".
type errorResponse struct {
	Error string `json:"error"`
	Step  string `json:"step,omitempty"`
}

// fieldErrorResponse carries per-field validation messages.
type fieldErrorResponse struct {
	Errors validation.FieldErrors `json:"errors"`
}

func respondFieldErrors(c *gin.Context, ferrs validation.FieldErrors) {
	c.JSON(http.StatusUnprocessableEntity, fieldErrorResponse{Errors: ferrs})
}

// respondError maps a service error onto a status code. Not-found sentinels
// become 404, an occupied-room conflict 409, upstream persistence failures
// 502, anything else 500.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	var step string
	var stepErr *workflow.StepError
	if errors.As(err, &stepErr) {
		step = stepErr.Step
	}

	switch {
	case errors.Is(err, tenant.ErrTenantNotFound),
		errors.Is(err, room.ErrRoomNotFound),
		errors.Is(err, announcement.ErrAnnouncementNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: err.Error(), Step: step})
	case errors.Is(err, announcement.ErrInvalidTitle):
		c.JSON(http.StatusUnprocessableEntity, fieldErrorResponse{
			Errors: validation.FieldErrors{"title": "Title is required."},
		})
	case errors.Is(err, room.ErrRoomOccupied):
		c.JSON(http.StatusConflict, errorResponse{Error: err.Error(), Step: step})
	case isUpstream(err):
		c.JSON(http.StatusBadGateway, errorResponse{Error: err.Error(), Step: step})
	default:
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error(), Step: step})
	}
}

func isUpstream(err error) bool {
	var ue *upstream.Error
	return errors.As(err, &ue)
}

func respondBadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, errorResponse{Error: msg})
}
