package handler

import (
	"github.com/gin-gonic/gin"

	maintenanceapp "github.com/transitops/backend/internal/application/maintenance"
	"github.com/transitops/backend/internal/interfaces/http/dto"
)

// VersionRequest carries the version the client loaded, for transitions that
// take no other input.
type VersionRequest struct {
	Version int `json:"version"`
}

// MaintenanceHandler handles maintenance record endpoints
type MaintenanceHandler struct {
	BaseHandler
	service *maintenanceapp.Service
}

// NewMaintenanceHandler creates a new MaintenanceHandler
func NewMaintenanceHandler(service *maintenanceapp.Service) *MaintenanceHandler {
	return &MaintenanceHandler{service: service}
}

// RegisterRoutes registers maintenance routes
func (h *MaintenanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/maintenance")
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.POST("/:id/approve", h.Approve)
	g.DELETE("/:id", h.Delete)
	g.GET("/:id/history", h.History)
}

// Create registers a new maintenance record
func (h *MaintenanceHandler) Create(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	var req maintenanceapp.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List returns maintenance records
func (h *MaintenanceHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	filter := req.ToFilter()

	records, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, records, total, filter.Page, filter.PageSize)
}

// Get returns one maintenance record
func (h *MaintenanceHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update edits an open maintenance record
func (h *MaintenanceHandler) Update(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req maintenanceapp.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Approve moves a maintenance record to the approved stage
func (h *MaintenanceHandler) Approve(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req VersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.service.Approve(c.Request.Context(), actor, id, req.Version)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes a maintenance record at the initial stage
func (h *MaintenanceHandler) Delete(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), actor, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// History returns the audit trail for a maintenance record
func (h *MaintenanceHandler) History(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	entries, err := h.service.History(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}
