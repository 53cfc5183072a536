package handler

import (
	"github.com/gin-gonic/gin"

	occurrenceapp "github.com/transitops/backend/internal/application/occurrence"
	"github.com/transitops/backend/internal/interfaces/http/dto"
)

// OccurrenceHandler handles occurrence report (R.O.) endpoints
type OccurrenceHandler struct {
	BaseHandler
	service *occurrenceapp.Service
}

// NewOccurrenceHandler creates a new OccurrenceHandler
func NewOccurrenceHandler(service *occurrenceapp.Service) *OccurrenceHandler {
	return &OccurrenceHandler{service: service}
}

// RegisterRoutes registers occurrence report routes
func (h *OccurrenceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/occurrences")
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.POST("/:id/close", h.Close)
	g.POST("/:id/assign", h.Assign)
	g.POST("/:id/change-type", h.ChangeType)
	g.DELETE("/:id", h.Delete)
	g.GET("/:id/history", h.History)
}

// Create registers a new open report
func (h *OccurrenceHandler) Create(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	var req occurrenceapp.CreateRequest
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

// List returns reports
func (h *OccurrenceHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	filter := req.ToFilter()

	reports, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, reports, total, filter.Page, filter.PageSize)
}

// Get returns one report
func (h *OccurrenceHandler) Get(c *gin.Context) {
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

// Update edits an open report
func (h *OccurrenceHandler) Update(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req occurrenceapp.UpdateRequest
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

// Close resolves a report
func (h *OccurrenceHandler) Close(c *gin.Context) {
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

	resp, err := h.service.Close(c.Request.Context(), actor, id, req.Version)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Assign hands a report to another user
func (h *OccurrenceHandler) Assign(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req occurrenceapp.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.service.Assign(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ChangeType reclassifies a non-occurrence report
func (h *OccurrenceHandler) ChangeType(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req occurrenceapp.ChangeTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.service.ChangeType(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes an open report
func (h *OccurrenceHandler) Delete(c *gin.Context) {
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

// History returns the audit trail for a report
func (h *OccurrenceHandler) History(c *gin.Context) {
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
