package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jovz/residence-hub/internal/application/query"
	"github.com/jovz/residence-hub/internal/application/refresh"
	tenantApp "github.com/jovz/residence-hub/internal/application/tenant"
	"github.com/jovz/residence-hub/internal/domain/validation"
)

// TenantHandler serves the tenant collection endpoints.
type TenantHandler struct {
	service *tenantApp.Service
	store   *refresh.Store
}

// NewTenantHandler creates a TenantHandler.
func NewTenantHandler(service *tenantApp.Service, store *refresh.Store) *TenantHandler {
	return &TenantHandler{service: service, store: store}
}

// List serves GET /api/tenants. Reads come from the snapshot, never from the
// upstream service directly.
func (h *TenantHandler) List(c *gin.Context) {
	q := query.TenantQuery{
		Search: c.Query("q"),
		SortBy: c.Query("sort"),
		Desc:   c.Query("order") == "desc",
	}

	tenants := query.Tenants(h.store.Current(), q)
	c.JSON(http.StatusOK, gin.H{"tenants": tenants, "total": len(tenants)})
}

// Create serves POST /api/tenants.
func (h *TenantHandler) Create(c *gin.Context) {
	var in validation.TenantInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBadRequest(c, "request body must be a JSON tenant")
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

// Update serves PUT /api/tenants/:id.
func (h *TenantHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "tenant id must be an integer")
		return
	}

	var in validation.TenantInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBadRequest(c, "request body must be a JSON tenant")
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

// Delete serves DELETE /api/tenants/:id.
func (h *TenantHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "tenant id must be an integer")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
