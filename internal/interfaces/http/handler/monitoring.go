package handler

import (
	"github.com/gin-gonic/gin"

	monitoringapp "github.com/transitops/backend/internal/application/monitoring"
	"github.com/transitops/backend/internal/interfaces/http/dto"
)

// MonitoringHandler handles monitoring record endpoints
type MonitoringHandler struct {
	BaseHandler
	service *monitoringapp.Service
}

// NewMonitoringHandler creates a new MonitoringHandler
func NewMonitoringHandler(service *monitoringapp.Service) *MonitoringHandler {
	return &MonitoringHandler{service: service}
}

// RegisterRoutes registers monitoring routes
func (h *MonitoringHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/monitoring")
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.PUT("/:id/inspection", h.RecordInspection)
	g.POST("/:id/approve", h.Approve)
	g.POST("/:id/reprove", h.Reprove)
	g.DELETE("/:id", h.Delete)
	g.GET("/:id/history", h.History)
}

// Create registers a new monitoring record
func (h *MonitoringHandler) Create(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	var req monitoringapp.CreateRequest
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

// List returns monitoring records
func (h *MonitoringHandler) List(c *gin.Context) {
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

// Get returns one monitoring record
func (h *MonitoringHandler) Get(c *gin.Context) {
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

// Update edits a monitoring record that has not completed
func (h *MonitoringHandler) Update(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req monitoringapp.UpdateRequest
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

// RecordInspection fills the inspector stage fields
func (h *MonitoringHandler) RecordInspection(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req monitoringapp.InspectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.service.RecordInspection(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Approve advances a monitoring record one stage
func (h *MonitoringHandler) Approve(c *gin.Context) {
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

// Reprove sends a monitoring record one stage back
func (h *MonitoringHandler) Reprove(c *gin.Context) {
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

	resp, err := h.service.Reprove(c.Request.Context(), actor, id, req.Version)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes a monitoring record at the initial stage
func (h *MonitoringHandler) Delete(c *gin.Context) {
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

// History returns the audit trail for a monitoring record
func (h *MonitoringHandler) History(c *gin.Context) {
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
