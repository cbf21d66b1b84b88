package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	announcementApp "github.com/jovz/residence-hub/internal/application/announcement"
)

// AnnouncementHandler serves the notice board endpoints.
type AnnouncementHandler struct {
	service *announcementApp.Service
}

// NewAnnouncementHandler creates an AnnouncementHandler.
func NewAnnouncementHandler(service *announcementApp.Service) *AnnouncementHandler {
	return &AnnouncementHandler{service: service}
}

type announcementInput struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// List serves GET /api/announcements.
func (h *AnnouncementHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"announcements": items, "total": len(items)})
}

// Create serves POST /api/announcements.
func (h *AnnouncementHandler) Create(c *gin.Context) {
	var in announcementInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBadRequest(c, "request body must be a JSON announcement")
		return
	}

	created, err := h.service.Post(c.Request.Context(), in.Title, in.Body)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// Update serves PUT /api/announcements/:id.
func (h *AnnouncementHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "announcement id must be an integer")
		return
	}

	var in announcementInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBadRequest(c, "request body must be a JSON announcement")
		return
	}

	updated, err := h.service.Edit(c.Request.Context(), id, in.Title, in.Body)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// Delete serves DELETE /api/announcements/:id.
func (h *AnnouncementHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "announcement id must be an integer")
		return
	}

	if err := h.service.Remove(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
