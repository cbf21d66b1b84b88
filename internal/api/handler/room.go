package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jovz/residence-hub/internal/application/query"
	"github.com/jovz/residence-hub/internal/application/refresh"
	roomApp "github.com/jovz/residence-hub/internal/application/room"
	"github.com/jovz/residence-hub/internal/domain/validation"
)

// RoomHandler serves the room collection endpoints.
type RoomHandler struct {
	service *roomApp.Service
	store   *refresh.Store
}

// NewRoomHandler creates a RoomHandler.
func NewRoomHandler(service *roomApp.Service, store *refresh.Store) *RoomHandler {
	return &RoomHandler{service: service, store: store}
}

// List serves GET /api/rooms. Each room is returned with its derived
// occupancy alongside the stored flag.
func (h *RoomHandler) List(c *gin.Context) {
	q := query.RoomQuery{
		Search: c.Query("q"),
		Status: c.Query("status"),
		SortBy: c.Query("sort"),
		Desc:   c.Query("order") == "desc",
	}

	rooms := query.Rooms(h.store.Current(), q)
	c.JSON(http.StatusOK, gin.H{"rooms": rooms, "total": len(rooms)})
}

// Create serves POST /api/rooms.
func (h *RoomHandler) Create(c *gin.Context) {
	var in validation.RoomInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBadRequest(c, "request body must be a JSON room")
		return
	}

	created, ferrs, err := h.service.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(ferrs) > 0 {
		respondFieldErrors(c, ferrs)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// Update serves PUT /api/rooms/:id.
func (h *RoomHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "room id must be an integer")
		return
	}

	var in validation.RoomInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBadRequest(c, "request body must be a JSON room")
		return
	}

	updated, ferrs, err := h.service.Update(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(ferrs) > 0 {
		respondFieldErrors(c, ferrs)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// Delete serves DELETE /api/rooms/:id.
func (h *RoomHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "room id must be an integer")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Assign serves PUT /api/rooms/:id/assign/:tenantId.
func (h *RoomHandler) Assign(c *gin.Context) {
	roomID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "room id must be an integer")
		return
	}
	tenantID, err := strconv.ParseInt(c.Param("tenantId"), 10, 64)
	if err != nil {
		respondBadRequest(c, "tenant id must be an integer")
		return
	}

	if err := h.service.Assign(c.Request.Context(), roomID, tenantID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Vacate serves PUT /api/rooms/:id/vacate.
func (h *RoomHandler) Vacate(c *gin.Context) {
	roomID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "room id must be an integer")
		return
	}

	if err := h.service.Vacate(c.Request.Context(), roomID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
