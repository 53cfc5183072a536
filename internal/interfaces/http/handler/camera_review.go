package handler

import (
	"github.com/gin-gonic/gin"

	camerareviewapp "github.com/transitops/backend/internal/application/camerareview"
	"github.com/transitops/backend/internal/interfaces/http/dto"
)

// CameraReviewHandler handles camera review endpoints
type CameraReviewHandler struct {
	BaseHandler
	service *camerareviewapp.Service
}

// NewCameraReviewHandler creates a new CameraReviewHandler
func NewCameraReviewHandler(service *camerareviewapp.Service) *CameraReviewHandler {
	return &CameraReviewHandler{service: service}
}

// RegisterRoutes registers camera review routes
func (h *CameraReviewHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/camera-reviews")
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.PUT("/:id/review", h.RecordReview)
	g.POST("/:id/approve", h.Approve)
	g.POST("/:id/reprove", h.Reprove)
	g.DELETE("/:id", h.Delete)
	g.GET("/:id/history", h.History)
}

// Create registers a new camera review record
func (h *CameraReviewHandler) Create(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	var req camerareviewapp.CreateRequest
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

// List returns camera review records
func (h *CameraReviewHandler) List(c *gin.Context) {
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

// Get returns one camera review record
func (h *CameraReviewHandler) Get(c *gin.Context) {
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

// Update edits a camera review record that has not finished
func (h *CameraReviewHandler) Update(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req camerareviewapp.UpdateRequest
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

// RecordReview fills the review stage fields
func (h *CameraReviewHandler) RecordReview(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req camerareviewapp.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.service.RecordReview(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Approve advances a camera review record one stage
func (h *CameraReviewHandler) Approve(c *gin.Context) {
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

// Reprove sends a camera review record one stage back
func (h *CameraReviewHandler) Reprove(c *gin.Context) {
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

// Delete removes a camera review record not yet reviewed
func (h *CameraReviewHandler) Delete(c *gin.Context) {
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

// History returns the audit trail for a camera review record
func (h *CameraReviewHandler) History(c *gin.Context) {
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
