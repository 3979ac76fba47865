package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appcatalog "github.com/scentlab/crm-backend/internal/application/catalog"
	"github.com/scentlab/crm-backend/internal/interfaces/http/dto"
)

// FragranceHandler serves the in-house fragrance catalog
type FragranceHandler struct {
	BaseHandler
	fragranceService *appcatalog.FragranceService
}

// NewFragranceHandler creates a fragrance handler
func NewFragranceHandler(fragranceService *appcatalog.FragranceService, logger *zap.Logger) *FragranceHandler {
	return &FragranceHandler{
		BaseHandler:      NewBaseHandler(logger),
		fragranceService: fragranceService,
	}
}

// List handles GET /fragrances
func (h *FragranceHandler) List(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	var req dto.FragranceListRequest
	if !h.BindQuery(c, &req) {
		return
	}

	result, err := h.fragranceService.List(c.Request.Context(), actor, appcatalog.ListFragrancesInput{
		Search:          req.Search,
		IncludeArchived: req.IncludeArchived,
		Filter:          req.ToFilter(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, dto.NewFragranceListResponse(result.Items), dto.MetaFrom(result))
}

// Get handles GET /fragrances/:id
func (h *FragranceHandler) Get(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	fragrance, err := h.fragranceService.Get(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.NewFragranceResponse(fragrance))
}

// Create handles POST /fragrances
func (h *FragranceHandler) Create(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	var req dto.CreateFragranceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	fragrance, err := h.fragranceService.Create(c.Request.Context(), actor, req.ToInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, dto.NewFragranceResponse(fragrance))
}

// Update handles PATCH /fragrances/:id
func (h *FragranceHandler) Update(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateFragranceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	fragrance, err := h.fragranceService.Update(c.Request.Context(), actor, id, req.ToInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.NewFragranceResponse(fragrance))
}

// Archive handles POST /fragrances/:id/archive
func (h *FragranceHandler) Archive(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.fragranceService.Archive(c.Request.Context(), actor, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Restore handles POST /fragrances/:id/restore
func (h *FragranceHandler) Restore(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.fragranceService.Restore(c.Request.Context(), actor, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Delete handles DELETE /fragrances/:id
func (h *FragranceHandler) Delete(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.fragranceService.Delete(c.Request.Context(), actor, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
