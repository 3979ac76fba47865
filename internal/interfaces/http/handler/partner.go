package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appcrm "github.com/scentlab/crm-backend/internal/application/crm"
	"github.com/scentlab/crm-backend/internal/domain/shared/valueobject"
	"github.com/scentlab/crm-backend/internal/interfaces/http/dto"
)

// PartnerHandler serves partner administration endpoints including
// markup policy and per-client markup overrides
type PartnerHandler struct {
	BaseHandler
	partnerService *appcrm.PartnerService
}

// NewPartnerHandler creates a partner handler
func NewPartnerHandler(partnerService *appcrm.PartnerService, logger *zap.Logger) *PartnerHandler {
	return &PartnerHandler{
		BaseHandler:    NewBaseHandler(logger),
		partnerService: partnerService,
	}
}

// List handles GET /partners
func (h *PartnerHandler) List(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	var req dto.ListRequest
	if !h.BindQuery(c, &req) {
		return
	}

	result, err := h.partnerService.List(c.Request.Context(), actor, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, dto.NewPartnerListResponse(result.Items), dto.MetaFrom(result))
}

// Get handles GET /partners/:id
func (h *PartnerHandler) Get(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	partner, err := h.partnerService.Get(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.NewPartnerResponse(partner))
}

// Create handles POST /partners
func (h *PartnerHandler) Create(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	var req dto.CreatePartnerRequest
	if !h.BindJSON(c, &req) {
		return
	}

	partner, err := h.partnerService.Create(c.Request.Context(), actor, req.ToInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, dto.NewPartnerResponse(partner))
}

// Update handles PATCH /partners/:id
func (h *PartnerHandler) Update(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdatePartnerRequest
	if !h.BindJSON(c, &req) {
		return
	}

	partner, err := h.partnerService.Update(c.Request.Context(), actor, id, req.ToInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.NewPartnerResponse(partner))
}

// SetMarkupPolicy handles PUT /partners/:id/markup
func (h *PartnerHandler) SetMarkupPolicy(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.MarkupPolicyRequest
	if !h.BindJSON(c, &req) {
		return
	}

	partner, err := h.partnerService.SetMarkupPolicy(c.Request.Context(), actor, id, req.ToInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.NewPartnerResponse(partner))
}

// ListClientMarkups handles GET /partners/:id/client-markups
func (h *PartnerHandler) ListClientMarkups(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	markups, err := h.partnerService.ListClientMarkups(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.NewClientMarkupListResponse(markups))
}

// SetClientMarkup handles PUT /partners/:id/client-markups/:clientId
func (h *PartnerHandler) SetClientMarkup(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	partnerID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	clientID, ok := h.ParseID(c, "clientId")
	if !ok {
		return
	}

	var req dto.ClientMarkupRequest
	if !h.BindJSON(c, &req) {
		return
	}

	markup, err := h.partnerService.SetClientMarkup(c.Request.Context(), actor,
		partnerID, clientID, valueobject.NewPercentFromFloat(req.Markup))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.NewClientMarkupResponse(markup))
}

// RemoveClientMarkup handles DELETE /partners/:id/client-markups/:clientId
func (h *PartnerHandler) RemoveClientMarkup(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	partnerID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	clientID, ok := h.ParseID(c, "clientId")
	if !ok {
		return
	}

	if err := h.partnerService.RemoveClientMarkup(c.Request.Context(), actor, partnerID, clientID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Delete handles DELETE /partners/:id
func (h *PartnerHandler) Delete(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.partnerService.Delete(c.Request.Context(), actor, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
