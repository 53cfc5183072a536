package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	referenceapp "github.com/transitops/backend/internal/application/reference"
)

// ReferenceHandler serves the portal's lookup lists
type ReferenceHandler struct {
	BaseHandler
	service *referenceapp.Service
}

// NewReferenceHandler creates a new ReferenceHandler
func NewReferenceHandler(service *referenceapp.Service) *ReferenceHandler {
	return &ReferenceHandler{service: service}
}

// RegisterRoutes registers reference routes
func (h *ReferenceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/reference")
	g.GET("/lists/:key", h.List)
	g.GET("/motives", h.MotivesForType)
	g.GET("/occurrences", h.OccurrencesForSector)
	g.GET("/assignees", h.ReportAssignees)
	g.DELETE("/lists/:key", h.Invalidate)
	g.DELETE("/lists", h.InvalidateAll)
}

// List returns the lookup list for the key
func (h *ReferenceHandler) List(c *gin.Context) {
	payload, err := h.service.List(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payload)
}

// MotivesForType returns the motives applicable to an occurrence type
func (h *ReferenceHandler) MotivesForType(c *gin.Context) {
	occurrenceType, err := strconv.Atoi(c.Query("occurrence_type"))
	if err != nil || occurrenceType <= 0 {
		h.BadRequest(c, "Invalid occurrence_type")
		return
	}

	motives, err := h.service.MotivesForType(c.Request.Context(), occurrenceType)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, motives)
}

// OccurrencesForSector returns the catalog occurrences applicable to a sector
func (h *ReferenceHandler) OccurrencesForSector(c *gin.Context) {
	sector, err := strconv.Atoi(c.Query("sector"))
	if err != nil || sector <= 0 {
		h.BadRequest(c, "Invalid sector")
		return
	}

	items, err := h.service.OccurrencesForSector(c.Request.Context(), sector)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// ReportAssignees returns the users occurrence reports can be assigned to
func (h *ReferenceHandler) ReportAssignees(c *gin.Context) {
	users, err := h.service.ReportAssignees(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, users)
}

// Invalidate drops one lookup list from the cache
func (h *ReferenceHandler) Invalidate(c *gin.Context) {
	if err := h.service.Invalidate(c.Request.Context(), c.Param("key")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// InvalidateAll drops every lookup list from the cache
func (h *ReferenceHandler) InvalidateAll(c *gin.Context) {
	if err := h.service.InvalidateAll(c.Request.Context()); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
