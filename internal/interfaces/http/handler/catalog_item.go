package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appcatalog "github.com/scentlab/crm-backend/internal/application/catalog"
	"github.com/scentlab/crm-backend/internal/interfaces/http/dto"
)

// CatalogItemHandler serves the curated storefront catalog
type CatalogItemHandler struct {
	BaseHandler
	itemService *appcatalog.CatalogItemService
}

// NewCatalogItemHandler creates a catalog item handler
func NewCatalogItemHandler(itemService *appcatalog.CatalogItemService, logger *zap.Logger) *CatalogItemHandler {
	return &CatalogItemHandler{
		BaseHandler: NewBaseHandler(logger),
		itemService: itemService,
	}
}

// List handles GET /catalog-items.
// Managers see all entries, partner users only visible ones.
func (h *CatalogItemHandler) List(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	var req dto.ListRequest
	if !h.BindQuery(c, &req) {
		return
	}

	result, err := h.itemService.List(c.Request.Context(), actor, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, dto.NewCatalogItemListResponse(result.Items), dto.MetaFrom(result))
}

// Get handles GET /catalog-items/:id
func (h *CatalogItemHandler) Get(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	item, err := h.itemService.Get(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.NewCatalogItemResponse(item))
}

// Create handles POST /catalog-items
func (h *CatalogItemHandler) Create(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	var req dto.CreateCatalogItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item, err := h.itemService.Create(c.Request.Context(), actor, req.ToInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, dto.NewCatalogItemResponse(item))
}

// Update handles PATCH /catalog-items/:id
func (h *CatalogItemHandler) Update(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCatalogItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item, err := h.itemService.Update(c.Request.Context(), actor, id, req.ToInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.NewCatalogItemResponse(item))
}

// Delete handles DELETE /catalog-items/:id
func (h *CatalogItemHandler) Delete(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.itemService.Delete(c.Request.Context(), actor, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
